package quant

import (
	"testing"

	"github.com/sprocketlab/rlcodec/internal/block"
)

// TestOneColorCollapse exercises S6: a block whose channel spread is within
// the threshold in every channel collapses to a single averaged color, and
// that color matches spec S4.8's literal write-back formula
// ((r>>3)<<11 | (g>>2)<<5 | (b>>3)), not the flipped PNG-boundary contract
// internal/rgb uses for its own To565.
func TestOneColorCollapse(t *testing.T) {
	near := func(base uint8, delta int) uint8 {
		v := int(base) + delta
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}

	b := block.Block{
		to565(near(100, 0), near(100, 0), near(100, 0)),
		to565(near(100, 8), near(100, -8), near(100, 4)),
		to565(near(100, -8), near(100, 8), near(100, -4)),
		to565(near(100, 4), near(100, -4), near(100, 8)),
	}

	Block4(&b)

	// After the RGB565 round trip the channels are R 96,104,88,104 (avg 98),
	// G 100,92,108,96 (avg 99), B 96,104,96,104 (avg 100). to565(98, 99, 100)
	// packs to the same pixel as to565(101, 99, 102), the averages of the
	// 8-bit inputs.
	want := to565(101, 99, 102)
	for i, p := range b {
		if p != want {
			t.Fatalf("pixel %d = %#04x, want the averaged color %#04x", i, p, want)
		}
	}
}

// TestFourColorFallsThrough verifies a block with channel spread beyond the
// one-color threshold in every channel is not collapsed to a single color.
func TestFourColorFallsThrough(t *testing.T) {
	b := block.Block{
		to565(0, 0, 0),
		to565(255, 0, 0),
		to565(0, 255, 0),
		to565(0, 0, 255),
	}
	orig := b

	Block4(&b)

	allSame := true
	for _, p := range b {
		if p != b[0] {
			allSame = false
		}
	}
	if allSame {
		t.Error("expected a high-spread block to avoid the one-color collapse")
	}
	_ = orig
}

// TestQuantizeIdempotent checks property 7: quantizing an already-quantized
// block is a no-op.
func TestQuantizeIdempotent(t *testing.T) {
	b := block.Block{
		to565(10, 200, 30),
		to565(250, 20, 220),
		to565(5, 5, 5),
		to565(128, 64, 192),
	}
	Block4(&b)
	once := b
	Block4(&b)
	if b != once {
		t.Errorf("second quantize pass changed the block: %v -> %v", once, b)
	}
}

func TestPlaneQuantizesAllBlocks(t *testing.T) {
	width, height := 4, 2
	plane := make([]uint16, width*height)
	for i := range plane {
		plane[i] = to565(uint8(i*10), uint8(i*5), uint8(i*3))
	}
	if err := Plane(plane, width, height); err != nil {
		t.Fatal(err)
	}
}
