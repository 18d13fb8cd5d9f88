package block

// The 16 enumerated intra-block pixel patterns. Indices 0..14 are looked
// up by (reuseBitmap, indexField); index 15 is reserved ("no SP reference,
// all fresh pixels come from EP") and is never looked up in these tables --
// callers special-case it.
//
// reuseBitmap[i] has bit 3 for pixel 0 down to bit 0 for pixel 3: a 1 means
// the pixel is a fresh palette reference, a 0 means it reuses an earlier
// pixel in the same block. Bit 3 (pixel 0) is always 1.
//
// indexField[i] packs two bits per pixel (pixel 0 in the high pair, pixel 3
// in the low pair): for a reused pixel, which earlier pixel index (0..3) to
// copy. For a fresh pixel the pair holds the running count of fresh pixels
// before it in the block (the convention classify in codec.go follows).
//
// Values are taken verbatim from the reference encoder's pattern tables.
// Lookup compares the whole indexField byte, fresh-pixel pairs included, so
// those pairs are not normalized.
var reuseBitmap = [16]uint8{
	0b1000, 0b1100, 0b1100, 0b1010,
	0b1001, 0b1100, 0b1010, 0b1100,
	0b1101, 0b1011, 0b1110, 0b1110,
	0b1110, 0b1101, 0b1111, 0b1111,
}

var indexField = [16]uint8{
	0b00000000, 0b00010101, 0b00010000, 0b00000100,
	0b00000001, 0b00010001, 0b00000110, 0b00010100,
	0b00010010, 0b00000110, 0b00011000, 0b00011001,
	0b00011010, 0b00010110, 0b00011011, 0b11111111,
}

// PatternAll is the reserved "all pixels from EP" pattern index.
const PatternAll = 15

// bitAt4 reads the bit for pixel p (0..3) from a 4-bit field, pixel 0 at
// the high bit.
func bitAt4(v uint8, p int) uint8 {
	return (v >> uint(3-p)) & 1
}

// setBitAt4 sets the bit for pixel p in a 4-bit field being built up.
func setBitAt4(v *uint8, bit uint8, p int) {
	*v |= (bit & 1) << uint(3-p)
}

// pairAt8 reads the 2-bit group for pixel p (0..3) from an 8-bit field,
// pixel 0 in the high pair.
func pairAt8(v uint8, p int) uint8 {
	return (v >> uint((3-p)*2)) & 3
}

// setPairAt8 sets the 2-bit group for pixel p in an 8-bit field being built.
func setPairAt8(v *uint8, val uint8, p int) {
	*v |= (val & 3) << uint((3-p)*2)
}

// Reuse returns the reuse bitmap for pattern i (0..14).
func Reuse(i int) uint8 { return reuseBitmap[i] }

// Index returns the index field for pattern i (0..14).
func Index(i int) uint8 { return indexField[i] }

// Lookup returns the smallest pattern index in 0..14 whose (reuseBitmap,
// indexField) pair matches the given bitmap/field observed while encoding
// a block, and true. If none match, it returns (0, false); the caller must
// then fall back to PatternAll, which always applies.
func Lookup(reuse, index uint8) (int, bool) {
	for i := 0; i < PatternAll; i++ {
		if reuseBitmap[i] == reuse && indexField[i] == index {
			return i, true
		}
	}
	return 0, false
}
