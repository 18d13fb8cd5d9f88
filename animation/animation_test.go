package animation

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func solidImage(width, height int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, 4, 4, nil)

	red := solidImage(4, 4, color.NRGBA{R: 0xf8, G: 0x00, B: 0x00, A: 0xff})
	blue := solidImage(4, 4, color.NRGBA{R: 0x00, G: 0x00, B: 0xf8, A: 0xff})

	if err := enc.AddFrame(red); err != nil {
		t.Fatal(err)
	}
	if err := enc.AddFrame(blue); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	dec, err := NewDecoder(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if dec.FrameCount() != 2 {
		t.Fatalf("FrameCount() = %d, want 2", dec.FrameCount())
	}

	var got []image.Image
	for dec.HasNext() {
		img, err := dec.NextFrame()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, img)
	}
	if len(got) != 2 {
		t.Fatalf("decoded %d frames, want 2", len(got))
	}

	r, g, b, _ := got[0].At(0, 0).RGBA()
	if uint8(r>>8) < 0xf0 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("frame 0 pixel = (%d,%d,%d), want near-red", r>>8, g>>8, b>>8)
	}
}

func TestDecoderSkip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, 2, 2, nil)
	for i := 0; i < 3; i++ {
		c := color.NRGBA{R: uint8(i * 50), G: 0, B: 0, A: 0xff}
		if err := enc.AddFrame(solidImage(2, 2, c)); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	dec, err := NewDecoder(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if err := dec.Skip(); err != nil {
		t.Fatal(err)
	}
	if err := dec.Skip(); err != nil {
		t.Fatal(err)
	}
	if !dec.HasNext() {
		t.Fatal("expected one frame remaining after two skips")
	}
	if _, err := dec.NextFrame(); err != nil {
		t.Fatal(err)
	}
	if dec.HasNext() {
		t.Error("expected no frames remaining")
	}
}

func TestFramesHelper(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, 2, 2, nil)
	if err := enc.AddFrame(solidImage(2, 2, color.NRGBA{A: 0xff})); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	frames, err := Frames(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 1 || frames[0].Index != 0 {
		t.Fatalf("Frames() = %+v, want one frame at index 0", frames)
	}
}

func TestAddFrameRejectsWrongSize(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, 4, 4, nil)
	if err := enc.AddFrame(solidImage(2, 2, color.NRGBA{A: 0xff})); err == nil {
		t.Error("expected an error adding a mismatched-size frame")
	}
}
