package rlcodec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	frames := []Frame{
		{Width: 2, Height: 2, Pix: []uint16{0xF800, 0xF800, 0xF800, 0xF800}},
		{Width: 2, Height: 2, Pix: []uint16{0x001F, 0x001F, 0x001F, 0x001F}},
	}

	data, err := Encode(frames, nil)
	if err != nil {
		t.Fatal(err)
	}

	info, headerSize, err := GetInfo(data)
	if err != nil {
		t.Fatal(err)
	}
	if headerSize != 12 {
		t.Fatalf("header size = %d, want 12", headerSize)
	}
	if info.Frames != 2 || info.Width != 2 || info.Height != 2 {
		t.Fatalf("info = %+v, want 2 frames of 2x2", info)
	}

	for i, want := range frames {
		got, err := Decode(data, i)
		if err != nil {
			t.Fatalf("decode frame %d: %v", i, err)
		}
		if diff := cmp.Diff(want.Pix, got.Pix); diff != "" {
			t.Errorf("frame %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

// TestVersionSelection exercises S4: dimensions within a byte pick the
// compact header, anything larger picks the extended one.
func TestVersionSelection(t *testing.T) {
	small := []Frame{{Width: 200, Height: 200, Pix: make([]uint16, 200*200)}}
	data, err := Encode(small, nil)
	if err != nil {
		t.Fatal(err)
	}
	info, _, err := GetInfo(data)
	if err != nil {
		t.Fatal(err)
	}
	if info.Version != 0x1210 {
		t.Errorf("200x200 picked version %#04x, want 0x1210", uint16(info.Version))
	}

	wide := []Frame{{Width: 300, Height: 10, Pix: make([]uint16, 300*10)}}
	data, err = Encode(wide, nil)
	if err != nil {
		t.Fatal(err)
	}
	info, _, err = GetInfo(data)
	if err != nil {
		t.Fatal(err)
	}
	if info.Version != 0x1013 {
		t.Errorf("300x10 picked version %#04x, want 0x1013", uint16(info.Version))
	}
}

func TestDecodeFrameIndexOutOfRange(t *testing.T) {
	frames := []Frame{{Width: 2, Height: 2, Pix: []uint16{0, 0, 0, 0}}}
	data, err := Encode(frames, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(data, 1); err == nil {
		t.Error("expected an error decoding a frame index beyond the frame count")
	}
}

func FuzzDecode(f *testing.F) {
	frames := []Frame{{Width: 2, Height: 2, Pix: []uint16{0xF800, 0x001F, 0x07E0, 0x0000}}}
	seed, err := Encode(frames, nil)
	if err == nil {
		f.Add(seed)
	}
	f.Add([]byte{})
	f.Add([]byte{0x52, 0x4C})

	f.Fuzz(func(t *testing.T, data []byte) {
		info, _, err := GetInfo(data)
		if err != nil {
			return
		}
		if info.Frames <= 0 {
			return
		}
		_, _ = Decode(data, 0)
	})
}
