package rlcodec

import (
	"github.com/pkg/errors"

	"github.com/sprocketlab/rlcodec/internal/container"
	"github.com/sprocketlab/rlcodec/internal/frame"
)

// Errors returned by Encode/Decode, in addition to the wrapped sentinels
// from internal/container and internal/frame that callers may match with
// errors.Is.
var (
	// ErrFrameIndex is returned when Decode is asked for a frame index
	// beyond the container's declared frame count.
	ErrFrameIndex = errors.New("rlcodec: frame index out of range")
)

// Info mirrors container.Info: the parsed fields of a container header.
type Info = container.Info

// GetInfo parses a container header from the front of data without
// decoding any frame. header_size is 12 on success, 0 on a bad magic or
// unsupported pixel format (matching the reference GetInfo contract).
func GetInfo(data []byte) (Info, int, error) {
	return container.GetInfo(data)
}

// Frame is one decoded image plane plus its dimensions.
type Frame struct {
	Width, Height int
	Pix           []uint16
}

// Encode packs frames (each already quantized to RGB565 by the caller, see
// the quant package) into a complete RL container: a header sized for the
// frames' dimensions followed by each frame's standard palette, extended
// palette, and block stream, in order. alphaKey is optional and applies to
// every frame identically.
func Encode(frames []Frame, alphaKey *uint16) ([]byte, error) {
	if len(frames) == 0 || len(frames) > container.MaxFrames {
		return nil, errors.New("rlcodec: frame count must be 1..255")
	}
	width, height := frames[0].Width, frames[0].Height

	var fc frame.Codec
	var body []byte
	rawTotal := 0
	for i, f := range frames {
		if f.Width != width || f.Height != height {
			return nil, errors.Errorf("rlcodec: frame %d size %dx%d does not match frame 0's %dx%d", i, f.Width, f.Height, width, height)
		}
		enc, err := fc.EncodeFrame(f.Pix, f.Width, f.Height, alphaKey)
		if err != nil {
			return nil, errors.Wrapf(err, "rlcodec: encode frame %d", i)
		}
		body = append(body, enc...)
		rawTotal += f.Width * f.Height * container.PixelBytes
	}

	savings := container.CalcSaving(rawTotal, len(body))
	header, err := container.MakeInfo(len(frames), width, height, savings, 0)
	if err != nil {
		return nil, errors.Wrap(err, "rlcodec: make header")
	}

	out := make([]byte, 0, len(header)+len(body))
	out = append(out, header...)
	out = append(out, body...)
	return out, nil
}

// Decode parses data's header and materializes frame index target (0-based),
// skipping frames 0..target-1 via the frame codec's null-output mode
// without writing to any output plane, per spec.md S5. The returned Frame's
// Pix is freshly allocated.
func Decode(data []byte, target int) (Frame, error) {
	info, headerSize, err := container.GetInfo(data)
	if err != nil {
		return Frame{}, errors.Wrap(err, "rlcodec: parse header")
	}
	if target < 0 || target >= info.Frames {
		return Frame{}, ErrFrameIndex
	}

	cursor := data[headerSize:]
	var fc frame.Codec
	for i := 0; i < target; i++ {
		n, err := fc.DecodeFrame(cursor, info.Width, info.Height, nil)
		if err != nil {
			return Frame{}, errors.Wrapf(err, "rlcodec: skip frame %d", i)
		}
		cursor = cursor[n:]
	}

	pix := make([]uint16, info.Width*info.Height)
	if _, err := fc.DecodeFrame(cursor, info.Width, info.Height, pix); err != nil {
		return Frame{}, errors.Wrapf(err, "rlcodec: decode frame %d", target)
	}

	return Frame{Width: info.Width, Height: info.Height, Pix: pix}, nil
}
