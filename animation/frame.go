package animation

import "image"

// DecodedFrame pairs a decoded animation frame with its sequential index.
// Unlike the offset/dispose/blend metadata an overlay-style animation
// format needs, RL frames are always full-canvas and strictly sequential
// (spec.md S4.6), so this is the entire per-frame record a caller needs.
type DecodedFrame struct {
	Index int
	Image image.Image
}

// Frames decodes every frame in data in order and returns them as a slice.
// Most callers that just want "give me all the frames" should use this
// instead of driving a Decoder by hand.
func Frames(data []byte) ([]DecodedFrame, error) {
	dec, err := NewDecoder(data)
	if err != nil {
		return nil, err
	}
	out := make([]DecodedFrame, 0, dec.FrameCount())
	for dec.HasNext() {
		idx := dec.frame
		img, err := dec.NextFrame()
		if err != nil {
			return nil, err
		}
		out = append(out, DecodedFrame{Index: idx, Image: img})
	}
	return out, nil
}
