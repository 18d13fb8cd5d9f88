// Package rgb implements the RGB565 <-> RGB888 channel conversions the RL
// codec treats as an external, trivial contract (the bit shifts are fixed
// by the container's producer, not by the codec itself).
package rgb

// To888 splits a little-endian RGB565 pixel into 8-bit r, g, b components.
func To888(p uint16) (r, g, b uint8) {
	r = uint8(p>>11) << 3
	g = uint8(p>>5&0x3f) << 2
	b = uint8(p&0x1f) << 3
	return
}

// To565 packs 8-bit r, g, b components into a 16-bit 5-6-5 pixel with blue
// in the high five bits and red in the low five, the reverse of the layout
// To888 reads.
func To565(r, g, b uint8) uint16 {
	return (uint16(b>>3) << 11) | (uint16(g>>2) << 5) | uint16(r>>3)
}

// PlaneTo888 converts a full RGB565 plane to three parallel byte slices,
// one per channel, matching RLS_Convert_565to888's element-wise contract.
func PlaneTo888(src []uint16) (r, g, b []uint8) {
	r = make([]uint8, len(src))
	g = make([]uint8, len(src))
	b = make([]uint8, len(src))
	for i, p := range src {
		r[i], g[i], b[i] = To888(p)
	}
	return
}

// PlaneTo565 converts parallel r/g/b byte slices back into an RGB565 plane.
// All three slices must have equal length.
func PlaneTo565(r, g, b []uint8) []uint16 {
	out := make([]uint16, len(r))
	for i := range out {
		out[i] = To565(r[i], g[i], b[i])
	}
	return out
}
