// Package animation provides an image.Image-oriented encoder and decoder
// for RL animations. Callers add and receive ordinary image.Image values;
// this package handles RGB565 conversion, quantization, and the RL
// container format underneath.
package animation

import (
	"image"
	"image/color"
	"io"

	"github.com/pkg/errors"

	"github.com/sprocketlab/rlcodec"
	"github.com/sprocketlab/rlcodec/internal/container"
	"github.com/sprocketlab/rlcodec/internal/frame"
	"github.com/sprocketlab/rlcodec/internal/quant"
	"github.com/sprocketlab/rlcodec/internal/rgb"
)

// EncodeOptions configures an Encoder.
type EncodeOptions struct {
	// AlphaKey, if non-nil, is the RGB565 color keyed out via the block
	// codec's alpha path (spec.md S4.4) in every frame.
	AlphaKey *uint16
}

// Encoder accumulates frames added via AddFrame and serializes them to its
// io.Writer on Close. The RL container's header carries a whole-stream
// savings estimate and frame count, so frames are buffered until Close
// rather than written incrementally.
type Encoder struct {
	w             io.Writer
	width, height int
	opts          EncodeOptions
	frames        []rlcodec.Frame
	closed        bool
}

// NewEncoder returns an Encoder for a canvas of the given dimensions.
// opts may be nil to accept the defaults (no alpha key).
func NewEncoder(w io.Writer, width, height int, opts *EncodeOptions) *Encoder {
	e := &Encoder{w: w, width: width, height: height}
	if opts != nil {
		e.opts = *opts
	}
	return e
}

// AddFrame quantizes img and queues it as the next frame. img must have the
// Encoder's exact canvas dimensions.
func (e *Encoder) AddFrame(img image.Image) error {
	if e.closed {
		return errors.New("animation: AddFrame after Close")
	}
	b := img.Bounds()
	if b.Dx() != e.width || b.Dy() != e.height {
		return errors.Errorf("animation: frame is %dx%d, want %dx%d", b.Dx(), b.Dy(), e.width, e.height)
	}
	if len(e.frames) >= container.MaxFrames {
		return errors.Errorf("animation: cannot exceed %d frames", container.MaxFrames)
	}

	plane := planeTo565(img, e.width, e.height)
	if err := quant.Plane(plane, e.width, e.height); err != nil {
		return errors.Wrap(err, "animation: quantize frame")
	}
	e.frames = append(e.frames, rlcodec.Frame{Width: e.width, Height: e.height, Pix: plane})
	return nil
}

// Close serializes every queued frame into an RL container and writes it
// to the Encoder's writer. It is an error to Close an Encoder with no
// frames.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	data, err := rlcodec.Encode(e.frames, e.opts.AlphaKey)
	if err != nil {
		return errors.Wrap(err, "animation: encode")
	}
	if _, err := e.w.Write(data); err != nil {
		return errors.Wrap(err, "animation: write")
	}
	return nil
}

// Decoder sequentially decodes frames out of an RL container, matching the
// format's strictly-ordered access pattern (spec.md S4.6): each NextFrame
// call decodes the next frame and advances, keeping its byte cursor so a
// full forward pass over the animation never re-skips already-consumed
// frames the way random access to a single late frame would.
type Decoder struct {
	data   []byte
	info   container.Info
	cursor int
	frame  int
	codec  frame.Codec
}

// NewDecoder parses data's container header and returns a Decoder
// positioned before frame 0.
func NewDecoder(data []byte) (*Decoder, error) {
	info, headerSize, err := container.GetInfo(data)
	if err != nil {
		return nil, errors.Wrap(err, "animation: parse header")
	}
	return &Decoder{data: data, info: info, cursor: headerSize}, nil
}

// FrameCount returns the number of frames the container declares.
func (d *Decoder) FrameCount() int { return d.info.Frames }

// Width and Height return the decoder's canvas dimensions.
func (d *Decoder) Width() int  { return d.info.Width }
func (d *Decoder) Height() int { return d.info.Height }

// HasNext reports whether at least one more frame remains to decode.
func (d *Decoder) HasNext() bool { return d.frame < d.info.Frames }

// NextFrame decodes and returns the next frame as an image.Image, in
// order, advancing the Decoder past it.
func (d *Decoder) NextFrame() (image.Image, error) {
	if !d.HasNext() {
		return nil, errors.New("animation: no more frames")
	}
	if d.cursor > len(d.data) {
		return nil, errors.Wrap(frame.ErrTruncated, "animation: frame data")
	}

	pix := make([]uint16, d.info.Width*d.info.Height)
	n, err := d.codec.DecodeFrame(d.data[d.cursor:], d.info.Width, d.info.Height, pix)
	if err != nil {
		return nil, errors.Wrapf(err, "animation: decode frame %d", d.frame)
	}

	d.cursor += n
	d.frame++
	return imageFrom565(pix, d.info.Width, d.info.Height), nil
}

// Skip advances the Decoder past the next frame without materializing its
// pixels, using the block codec's null-output mode. It still advances the
// palette cursors identically to NextFrame (spec.md S4.6).
func (d *Decoder) Skip() error {
	if !d.HasNext() {
		return errors.New("animation: no more frames")
	}
	n, err := d.codec.DecodeFrame(d.data[d.cursor:], d.info.Width, d.info.Height, nil)
	if err != nil {
		return errors.Wrapf(err, "animation: skip frame %d", d.frame)
	}
	d.cursor += n
	d.frame++
	return nil
}

func planeTo565(img image.Image, width, height int) []uint16 {
	plane := make([]uint16, width*height)
	b := img.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			plane[y*width+x] = rgb.To565(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
		}
	}
	return plane
}

func imageFrom565(plane []uint16, width, height int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// planeTo565 packs with rgb.To565, which puts blue in the high
			// bits; To888 reads the high bits as red, so swap them back.
			b, g, r := rgb.To888(plane[y*width+x])
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 0xff})
		}
	}
	return img
}
