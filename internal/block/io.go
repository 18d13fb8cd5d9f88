package block

import "github.com/pkg/errors"

// ErrBounds is returned when block coordinates fall outside the image's
// block grid. This is treated as a fatal programming error by callers --
// it never arises from untrusted input, only from a miscomputed loop bound.
var ErrBounds = errors.New("block: coordinates out of range")

// ceilDiv2 returns ceil(n/2) without floating point.
func ceilDiv2(n int) int {
	return (n + 1) / 2
}

// Cols returns the number of block columns for an image of the given width.
func Cols(width int) int { return ceilDiv2(width) }

// Rows returns the number of block rows for an image of the given height.
func Rows(height int) int { return ceilDiv2(height) }

// Extract reads the 2x2 block at block coordinates (bx, by) from plane (a
// row-major width x height RGB565 image). Edge blocks on odd width/height
// replicate the single available pixel per spec.md S4.1:
//
//   - odd column (2*bx+1 == width): the right pixels mirror the left ones.
//   - odd row (2*by+1 == height): the bottom pixels mirror the top ones.
//   - both: all four pixels equal the one real pixel.
func Extract(plane []uint16, width, height, bx, by int) (Block, error) {
	if bx >= Cols(width) || by >= Rows(height) {
		return Block{}, ErrBounds
	}
	x, y := bx*2, by*2
	oddCol := 2*bx+1 == width
	oddRow := 2*by+1 == height

	tl := plane[y*width+x]
	var b Block
	switch {
	case oddCol && oddRow:
		b = Block{tl, tl, tl, tl}
	case oddCol:
		bl := plane[(y+1)*width+x]
		b = Block{tl, tl, bl, bl}
	case oddRow:
		tr := plane[y*width+x+1]
		b = Block{tl, tr, tl, tr}
	default:
		tr := plane[y*width+x+1]
		bl := plane[(y+1)*width+x]
		br := plane[(y+1)*width+x+1]
		b = Block{tl, tr, bl, br}
	}
	return b, nil
}

// Write stores b's pixels back into plane at block coordinates (bx, by).
// Edge pixels that have no backing storage (the mirrored right column or
// bottom row on odd dimensions) are silently discarded.
func Write(plane []uint16, width, height, bx, by int, b Block) error {
	if bx >= Cols(width) || by >= Rows(height) {
		return ErrBounds
	}
	x, y := bx*2, by*2
	oddCol := 2*bx+1 == width
	oddRow := 2*by+1 == height

	plane[y*width+x] = b[0]
	switch {
	case oddCol && oddRow:
		// only the single real pixel exists; already written above.
	case oddCol:
		plane[(y+1)*width+x] = b[2]
	case oddRow:
		plane[y*width+x+1] = b[1]
	default:
		plane[y*width+x+1] = b[1]
		plane[(y+1)*width+x] = b[2]
		plane[(y+1)*width+x+1] = b[3]
	}
	return nil
}
