package frame

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sprocketlab/rlcodec/internal/container"
)

// TestRoundTripSolidBlock exercises S1: a single solid 2x2 frame round-trips
// exactly and produces the literal expected frame size.
func TestRoundTripSolidBlock(t *testing.T) {
	width, height := 2, 2
	plane := []uint16{0xF800, 0xF800, 0xF800, 0xF800}

	var enc Codec
	out, err := enc.EncodeFrame(plane, width, height, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(out), 522; got != want {
		t.Errorf("frame size = %d, want %d", got, want)
	}

	got := make([]uint16, width*height)
	var dec Codec
	n, err := dec.DecodeFrame(out, width, height, got)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(out) {
		t.Errorf("consumed %d bytes, want %d", n, len(out))
	}
	if diff := cmp.Diff(plane, got); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

// TestRoundTripChecker exercises S2: a two-color checkerboard block.
func TestRoundTripChecker(t *testing.T) {
	width, height := 2, 2
	plane := []uint16{0xF800, 0x001F, 0x001F, 0xF800}

	var enc Codec
	out, err := enc.EncodeFrame(plane, width, height, nil)
	if err != nil {
		t.Fatal(err)
	}

	got := make([]uint16, width*height)
	var dec Codec
	if _, err := dec.DecodeFrame(out, width, height, got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(plane, got); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

// TestRoundTripAlphaKey exercises S3: a block with two alpha-keyed pixels
// and two fresh colors routed entirely through the extended palette.
func TestRoundTripAlphaKey(t *testing.T) {
	const alpha uint16 = 0x0000
	width, height := 2, 2
	plane := []uint16{0xF800, alpha, alpha, 0x07E0}

	var enc Codec
	out, err := enc.EncodeFrame(plane, width, height, &alpha)
	if err != nil {
		t.Fatal(err)
	}

	got := make([]uint16, width*height)
	var dec Codec
	if _, err := dec.DecodeFrame(out, width, height, got); err != nil {
		t.Fatal(err)
	}
	// Alpha-marked pixels decode as 0 and are written as such; only the two
	// EP-sourced pixels are checked.
	if got[0] != 0xF800 {
		t.Errorf("pixel 0 = %#04x, want 0xF800", got[0])
	}
	if got[3] != 0x07E0 {
		t.Errorf("pixel 3 = %#04x, want 0x07E0", got[3])
	}
}

// TestSizeOrdering checks property 4: frame_size == 512 + 4 + ep_bytes + 4 + data_bytes.
func TestSizeOrdering(t *testing.T) {
	width, height := 4, 4
	plane := make([]uint16, width*height)
	for i := range plane {
		plane[i] = uint16(i * 37)
	}

	var enc Codec
	out, err := enc.EncodeFrame(plane, width, height, nil)
	if err != nil {
		t.Fatal(err)
	}

	epBytes := enc.EP.Len() * 2
	cols, rows := (width+1)/2, (height+1)/2
	_ = cols
	_ = rows

	want := container.StdPaletteBytes + 4 + epBytes + 4
	if len(out) < want {
		t.Fatalf("frame too short: got %d, want at least %d", len(out), want)
	}
	dataBytes := int(binary.LittleEndian.Uint32(out[want-4 : want]))
	if len(out) != want+dataBytes {
		t.Errorf("frame size = %d, want %d", len(out), want+dataBytes)
	}
}

// TestNullOutputModePreservesCursor exercises the skip-decode contract: a
// decode with a nil plane must consume exactly the same number of bytes as
// a materializing decode.
func TestNullOutputModePreservesCursor(t *testing.T) {
	width, height := 4, 4
	plane := make([]uint16, width*height)
	for i := range plane {
		plane[i] = uint16(i * 101)
	}

	var enc Codec
	out, err := enc.EncodeFrame(plane, width, height, nil)
	if err != nil {
		t.Fatal(err)
	}

	var skip Codec
	skipN, err := skip.DecodeFrame(out, width, height, nil)
	if err != nil {
		t.Fatal(err)
	}

	var full Codec
	got := make([]uint16, width*height)
	fullN, err := full.DecodeFrame(out, width, height, got)
	if err != nil {
		t.Fatal(err)
	}

	if skipN != fullN {
		t.Errorf("null-output consumed %d bytes, materializing decode consumed %d", skipN, fullN)
	}
}

// TestMultiFrameSkipDecode exercises S5: decoding frame index 2 of a
// 3-frame stream must skip frames 0 and 1 via null-output mode before
// materializing frame 2.
func TestMultiFrameSkipDecode(t *testing.T) {
	width, height := 2, 2
	frames := [][]uint16{
		{0xF800, 0xF800, 0xF800, 0xF800},
		{0x001F, 0x001F, 0x001F, 0x001F},
		{0x07E0, 0xF800, 0x001F, 0x0000},
	}

	var stream []byte
	enc := &Codec{}
	for _, p := range frames {
		b, err := enc.EncodeFrame(p, width, height, nil)
		if err != nil {
			t.Fatal(err)
		}
		stream = append(stream, b...)
	}

	pos := 0
	dec := &Codec{}
	for i := 0; i < 2; i++ {
		n, err := dec.DecodeFrame(stream[pos:], width, height, nil)
		if err != nil {
			t.Fatalf("skip frame %d: %v", i, err)
		}
		pos += n
	}

	got := make([]uint16, width*height)
	if _, err := dec.DecodeFrame(stream[pos:], width, height, got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(frames[2], got); diff != "" {
		t.Errorf("frame 2 mismatch after skip-decode (-want +got):\n%s", diff)
	}
}
