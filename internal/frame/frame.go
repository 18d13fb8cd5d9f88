// Package frame implements the RL codec's per-frame encode/decode: building
// the standard palette, running every block through the block codec in
// raster order, and laying out the resulting standard palette, extended
// palette, and block stream into the frame's wire format.
package frame

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/sprocketlab/rlcodec/internal/block"
	"github.com/sprocketlab/rlcodec/internal/container"
	"github.com/sprocketlab/rlcodec/internal/palette"
	"github.com/sprocketlab/rlcodec/internal/pool"
)

// Errors returned by DecodeFrame.
var (
	ErrTruncated       = errors.New("frame: truncated data")
	ErrPaletteOverflow = errors.New("frame: declared extended palette too large")
)

// Codec holds the live standard and extended palettes for successive
// frame operations. Per spec.md S5 this state is instance-local, not a
// process global, so a Codec may be reused across frames of one stream or
// discarded after a single call; either way the two Reset calls at the top
// of EncodeFrame/DecodeFrame make each frame independent of the last.
type Codec struct {
	SP palette.Std
	EP palette.Ext
}

// EncodeFrame encodes one quantized RGB565 plane into the wire format
// described by spec.md S4.6: a 512-byte standard palette, a length-prefixed
// extended palette, and a length-prefixed block stream. alphaKey is
// optional; pass nil when the frame has no alpha-keyed color.
func (c *Codec) EncodeFrame(plane []uint16, width, height int, alphaKey *uint16) ([]byte, error) {
	c.SP.Reset()
	c.EP.Reset()
	palette.BuildStd(&c.SP, plane, width, height)

	cols := block.Cols(width)
	rows := block.Rows(height)

	scratch := pool.Get(pool.Size4K)[:0]
	defer pool.Put(scratch)

	for by := 0; by < rows; by++ {
		for bx := 0; bx < cols; bx++ {
			b, err := block.Extract(plane, width, height, bx, by)
			if err != nil {
				return nil, errors.Wrap(err, "frame: extract block")
			}
			scratch, err = block.EncodeBlock(scratch, b, alphaKey, &c.SP, &c.EP)
			if err != nil {
				return nil, errors.Wrap(err, "frame: encode block")
			}
		}
	}

	epBytes := c.EP.Bytes()
	dataOffset := container.StdPaletteBytes + 4 + len(epBytes) + 4
	out := make([]byte, dataOffset+len(scratch))

	copy(out, c.SP.Bytes())
	binary.LittleEndian.PutUint32(out[container.StdPaletteBytes:container.StdPaletteBytes+4], uint32(len(epBytes)))
	copy(out[container.StdPaletteBytes+4:], epBytes)

	dataLenOff := dataOffset - 4
	binary.LittleEndian.PutUint32(out[dataLenOff:dataOffset], uint32(len(scratch)))
	copy(out[dataOffset:], scratch)

	return out, nil
}

// DecodeFrame decodes one frame from the front of data. If plane is nil,
// blocks are decoded for their EP/SP cursor side effects only and never
// written anywhere -- the null-output mode spec.md S4.6 mandates for
// skipping past frames a caller doesn't want materialized. It returns the
// number of bytes consumed from data.
func (c *Codec) DecodeFrame(data []byte, width, height int, plane []uint16) (int, error) {
	if len(data) < container.StdPaletteBytes+4 {
		return 0, errors.Wrap(ErrTruncated, "standard palette")
	}
	c.SP.Reset()
	if err := c.SP.Load(data[:container.StdPaletteBytes]); err != nil {
		return 0, errors.Wrap(err, "frame: load SP")
	}
	cursor := container.StdPaletteBytes

	epLen := int(binary.LittleEndian.Uint32(data[cursor : cursor+4]))
	cursor += 4
	if epLen > container.ExtPaletteMaxBytes {
		return 0, ErrPaletteOverflow
	}
	if len(data) < cursor+epLen {
		return 0, errors.Wrap(ErrTruncated, "extended palette")
	}
	c.EP.Reset()
	if err := c.EP.Load(data[cursor:cursor+epLen], epLen); err != nil {
		return 0, errors.Wrap(err, "frame: load EP")
	}
	cursor += epLen

	if len(data) < cursor+4 {
		return 0, errors.Wrap(ErrTruncated, "data length")
	}
	dataBytes := int(binary.LittleEndian.Uint32(data[cursor : cursor+4]))
	cursor += 4
	if len(data) < cursor+dataBytes {
		return 0, errors.Wrap(ErrTruncated, "block stream")
	}
	dataEnd := cursor + dataBytes

	cols := block.Cols(width)
	rows := block.Rows(height)

	pos := cursor
	for by := 0; by < rows && pos < dataEnd; by++ {
		for bx := 0; bx < cols && pos < dataEnd; bx++ {
			b, n, err := block.DecodeBlock(data[pos:dataEnd], &c.SP, &c.EP)
			if err != nil {
				return 0, errors.Wrap(err, "frame: decode block")
			}
			pos += n
			if plane != nil {
				if err := block.Write(plane, width, height, bx, by, b); err != nil {
					return 0, errors.Wrap(err, "frame: write block")
				}
			}
		}
	}

	return dataEnd, nil
}
