package block

import (
	"github.com/pkg/errors"

	"github.com/sprocketlab/rlcodec/internal/palette"
)

// ErrShortBlock is returned when a block header or its trailing SP-index
// bytes run past the end of the supplied data.
var ErrShortBlock = errors.New("block: short data")

// DecodeBlock reads one coded block from the front of data: a header byte
// (pattern index low nibble, source bitmap high nibble) followed by zero or
// more standard-palette index bytes. It consumes SP by direct index and EP
// by reading the next entry at ep's read cursor, and returns the decoded
// Block plus the number of bytes consumed from data.
//
// Pattern 15's source_bitmap carries a dual meaning depending on whether
// the stream was produced with an alpha key: bit 0 always means "take the
// next EP entry"; bit 1 means "leave this pixel unset" (its value in the
// returned Block is 0). Non-alpha encoders never set bit 1 under pattern
// 15 (see EncodeBlock), so decode does not need to know whether alpha was
// in play to do the right thing.
func DecodeBlock(data []byte, sp *palette.Std, ep *palette.Ext) (Block, int, error) {
	if len(data) < 1 {
		return Block{}, 0, ErrShortBlock
	}
	header := data[0]
	pattern := int(header & 0x0F)
	sourceBitmap := header >> 4

	var b Block
	if pattern == PatternAll {
		for p := 0; p < 4; p++ {
			if bitAt4(sourceBitmap, p) == 0 {
				v, err := ep.Next()
				if err != nil {
					return Block{}, 0, errors.Wrap(err, "block: pattern 15 EP read")
				}
				b[p] = v
			}
		}
		return b, 1, nil
	}

	reuse := Reuse(pattern)
	index := Index(pattern)
	n := 1
	for p := 0; p < 4; p++ {
		if p > 0 && bitAt4(reuse, p) == 0 {
			src := pairAt8(index, p)
			b[p] = b[src]
			continue
		}
		if bitAt4(sourceBitmap, p) == 1 {
			if n >= len(data) {
				return Block{}, 0, ErrShortBlock
			}
			b[p] = sp.At(int(data[n]))
			n++
		} else {
			v, err := ep.Next()
			if err != nil {
				return Block{}, 0, errors.Wrap(err, "block: EP read")
			}
			b[p] = v
		}
	}
	return b, n, nil
}

// EncodeBlock classifies b and appends its coded form to dst, returning the
// extended slice. If alphaKey is non-nil and any of b's pixels equals it,
// the block is coded under pattern 15 with the alpha-keying convention:
// pixels equal to *alphaKey get source bit 1 (no data emitted for them) and
// all others are appended to ep with source bit 0. Otherwise the regular
// path applies: an earliest-match reuse scan, a PatternTable lookup, and a
// fallback to pattern 15 (all four pixels appended to ep) if no tabled
// pattern fits.
func EncodeBlock(dst []byte, b Block, alphaKey *uint16, sp *palette.Std, ep *palette.Ext) ([]byte, error) {
	if alphaKey != nil && hasAlpha(b, *alphaKey) {
		return encodeAlpha(dst, b, *alphaKey, ep)
	}

	reuseBitmap, indexField := classify(b)
	if pattern, ok := Lookup(reuseBitmap, indexField); ok {
		return encodeTabled(dst, b, pattern, reuseBitmap, sp, ep)
	}
	return encodeAllEP(dst, b, ep)
}

func hasAlpha(b Block, key uint16) bool {
	for _, p := range b {
		if p == key {
			return true
		}
	}
	return false
}

func encodeAlpha(dst []byte, b Block, key uint16, ep *palette.Ext) ([]byte, error) {
	var sourceBitmap uint8
	for p := 0; p < 4; p++ {
		if b[p] == key {
			setBitAt4(&sourceBitmap, 1, p)
			continue
		}
		if err := ep.Append(b[p]); err != nil {
			return nil, errors.Wrap(err, "block: alpha EP append")
		}
	}
	header := sourceBitmap<<4 | PatternAll
	return append(dst, header), nil
}

func encodeAllEP(dst []byte, b Block, ep *palette.Ext) ([]byte, error) {
	for p := 0; p < 4; p++ {
		if err := ep.Append(b[p]); err != nil {
			return nil, errors.Wrap(err, "block: fallback EP append")
		}
	}
	header := uint8(0)<<4 | PatternAll
	return append(dst, header), nil
}

func encodeTabled(dst []byte, b Block, pattern int, reuseBitmap uint8, sp *palette.Std, ep *palette.Ext) ([]byte, error) {
	var sourceBitmap uint8
	var spIndices []uint8
	for p := 0; p < 4; p++ {
		if bitAt4(reuseBitmap, p) == 0 {
			continue
		}
		if idx, ok := sp.IndexOf(b[p]); ok {
			setBitAt4(&sourceBitmap, 1, p)
			spIndices = append(spIndices, uint8(idx))
			continue
		}
		if err := ep.Append(b[p]); err != nil {
			return nil, errors.Wrap(err, "block: EP append")
		}
	}
	header := sourceBitmap<<4 | uint8(pattern)
	dst = append(dst, header)
	dst = append(dst, spIndices...)
	return dst, nil
}

// classify computes the reuse bitmap and index field for b by scanning
// pixels 0..3. A pixel that matches an earlier pixel in the block gets
// reuse-bit 0 and its index_field pair set to that earlier pixel's own
// position. A fresh pixel gets reuse-bit 1 and its index_field pair set to
// a running count of fresh pixels seen so far (not zero) -- this is what
// the reference encoder's baBkIdx actually stores for "don't care"
// positions, and the PatternTable's literal entries were generated against
// it, so Lookup needs the same convention to ever hit a tabled pattern.
func classify(b Block) (reuseBitmap, indexField uint8) {
	var freshCount uint8
	for p := 0; p < 4; p++ {
		matched := false
		for q := 0; q < p; q++ {
			if b[p] == b[q] {
				setPairAt8(&indexField, uint8(q), p)
				matched = true
				break
			}
		}
		if !matched {
			setBitAt4(&reuseBitmap, 1, p)
			setPairAt8(&indexField, freshCount, p)
			freshCount++
		}
	}
	return reuseBitmap, indexField
}
