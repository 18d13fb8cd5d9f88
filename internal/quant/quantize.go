// Package quant implements the RL codec's pre-encode quantizer: per 2x2
// block, it collapses near-uniform color to a flat fill, or fits a 4-entry
// interpolated ramp along the block's dominant color channel and snaps
// every pixel to it. Quantizing conditions input so most blocks land on
// one of the 16 enumerated intra-block patterns instead of falling through
// to the extended palette.
package quant

import (
	"gonum.org/v1/gonum/stat"

	"github.com/sprocketlab/rlcodec/internal/block"
	"github.com/sprocketlab/rlcodec/internal/rgb"
)

// oneColorThreshold and fitErrorThreshold are the two tolerances the
// quantizer's block classification is built around (spec S6).
const (
	oneColorThreshold = 16
	fitErrorThreshold = 8
)

// Block4 quantizes a single 2x2 block in place, operating in RGB888 space
// internally and writing back RGB565 pixels.
func Block4(b *block.Block) {
	r, g, bl := splitChannels(*b)

	if collapsed, ok := tryOneColor(r, g, bl); ok {
		for i := range b {
			b[i] = collapsed
		}
		return
	}

	tryFourColor(b, r, g, bl)
}

// Plane quantizes every block of a W x H RGB565 plane in place.
func Plane(plane []uint16, width, height int) error {
	cols := block.Cols(width)
	rows := block.Rows(height)
	for by := 0; by < rows; by++ {
		for bx := 0; bx < cols; bx++ {
			b, err := block.Extract(plane, width, height, bx, by)
			if err != nil {
				return err
			}
			Block4(&b)
			if err := block.Write(plane, width, height, bx, by, b); err != nil {
				return err
			}
		}
	}
	return nil
}

func splitChannels(b block.Block) (r, g, bl [4]uint8) {
	for i, p := range b {
		r[i], g[i], bl[i] = rgb.To888(p)
	}
	return
}

func channelSpread(c [4]uint8) (min, max uint8, avg float64) {
	min, max = c[0], c[0]
	sum := 0
	for _, v := range c {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += int(v)
	}
	avg = float64(sum) / 4
	return
}

// tryOneColor implements spec S4.8 step 1: if every channel's spread around
// its average is within oneColorThreshold, the block collapses to the
// rounded average color.
func tryOneColor(r, g, bl [4]uint8) (uint16, bool) {
	rMin, rMax, rAvg := channelSpread(r)
	gMin, gMax, gAvg := channelSpread(g)
	bMin, bMax, bAvg := channelSpread(bl)

	if !withinThreshold(rMin, rMax, rAvg) || !withinThreshold(gMin, gMax, gAvg) || !withinThreshold(bMin, bMax, bAvg) {
		return 0, false
	}

	return to565(round8(rAvg), round8(gAvg), round8(bAvg)), true
}

func withinThreshold(min, max uint8, avg float64) bool {
	return float64(max)-avg <= oneColorThreshold && avg-float64(min) <= oneColorThreshold
}

func round8(v float64) uint8 {
	return uint8(v + 0.5)
}

// channel identifies one of R, G, B for dominant-channel selection.
type channel int

const (
	channelR channel = iota
	channelG
	channelB
)

// tryFourColor implements spec S4.8 step 2. It finds the channel with the
// widest spread, fits the other two channels as affine functions of it via
// least squares, and -- if both fits are accurate enough -- builds a
// 4-entry interpolated ramp and snaps every pixel to its nearest entry. If
// the fit error is too large the block is left untouched.
func tryFourColor(b *block.Block, r, g, bl [4]uint8) {
	rMin, rMax, _ := channelSpread(r)
	gMin, gMax, _ := channelSpread(g)
	bMin, bMax, _ := channelSpread(bl)

	rSpread := int(rMax) - int(rMin)
	gSpread := int(gMax) - int(gMin)
	bSpread := int(bMax) - int(bMin)

	dom := channelR
	domSpread := rSpread
	if gSpread > domSpread {
		dom = channelG
		domSpread = gSpread
	}
	if bSpread > domSpread {
		dom = channelB
		domSpread = bSpread
	}

	domVals, otherA, otherB := selectChannels(dom, r, g, bl)
	domMin, domMax, _ := channelSpread(domVals)

	aSlope, aIntercept, aErr := fitAffine(domVals, otherA)
	bSlope, bIntercept, bErr := fitAffine(domVals, otherB)
	if aErr+bErr > fitErrorThreshold {
		return
	}

	aMin := clip8(float64(domMin)*aSlope + aIntercept)
	aMax := clip8(float64(domMax)*aSlope + aIntercept)
	bMinD := clip8(float64(domMin)*bSlope + bIntercept)
	bMaxD := clip8(float64(domMax)*bSlope + bIntercept)

	ramp := buildRamp(dom, domMin, domMax, aMin, aMax, bMinD, bMaxD)

	for i := range b {
		rp, gp, blp := rgb.To888(b[i])
		best := nearest(ramp, rp, gp, blp)
		b[i] = to565(best[0], best[1], best[2])
	}
}

// to565 packs 8-bit r, g, b components per spec S4.8's write-back formula:
// (r>>3)<<11 | (g>>2)<<5 | (b>>3). This is the opposite channel order from
// rgb.To565, which implements the container's external, deliberately
// flipped PNG-boundary contract (spec S6) -- the two must never be mixed,
// since rgb.To888 (used above and by Block4's channel split) always
// extracts with red in the high bits.
func to565(r, g, b uint8) uint16 {
	return (uint16(r>>3) << 11) | (uint16(g>>2) << 5) | uint16(b>>3)
}

// selectChannels returns the dominant channel's per-pixel values plus the
// other two channels in a fixed order, so fitAffine and
// buildRamp can stay channel-agnostic.
func selectChannels(dom channel, r, g, bl [4]uint8) (domVals, otherA, otherB [4]uint8) {
	switch dom {
	case channelR:
		return r, g, bl
	case channelG:
		return g, r, bl
	default:
		return bl, r, g
	}
}

// fitAffine least-squares fits other as an affine function of dom via
// gonum's LinearRegression, returning slope, intercept, and the maximum
// absolute residual across the four samples.
func fitAffine(dom, other [4]uint8) (slope, intercept, maxErr float64) {
	x := make([]float64, 4)
	y := make([]float64, 4)
	for i := range dom {
		x[i] = float64(dom[i])
		y[i] = float64(other[i])
	}
	intercept, slope = stat.LinearRegression(x, y, nil, false)
	for i := range x {
		fit := x[i]*slope + intercept
		if diff := abs(fit - y[i]); diff > maxErr {
			maxErr = diff
		}
	}
	return slope, intercept, maxErr
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func clip8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// buildRamp assembles the 4-entry RGB888 palette interpolated between the
// dominant channel's min and max, placing the two intermediate entries at
// +/- (max-min+1)/3 per spec S4.8.
func buildRamp(dom channel, domMin, domMax, aMin, aMax, bMin, bMax uint8) [4][3]uint8 {
	step := (int(domMax) - int(domMin) + 1) / 3

	domPoints := [4]uint8{
		domMin,
		clip8(float64(int(domMin) + step)),
		clip8(float64(int(domMax) - step)),
		domMax,
	}
	aPoints := lerp4(aMin, aMax)
	bPoints := lerp4(bMin, bMax)

	var ramp [4][3]uint8
	for i := 0; i < 4; i++ {
		ramp[i] = assembleColor(dom, domPoints[i], aPoints[i], bPoints[i])
	}
	return ramp
}

func lerp4(lo, hi uint8) [4]uint8 {
	return [4]uint8{
		lo,
		clip8(float64(lo) + float64(int(hi)-int(lo))/3),
		clip8(float64(hi) - float64(int(hi)-int(lo))/3),
		hi,
	}
}

func assembleColor(dom channel, domVal, aVal, bVal uint8) [3]uint8 {
	switch dom {
	case channelR:
		return [3]uint8{domVal, aVal, bVal}
	case channelG:
		return [3]uint8{aVal, domVal, bVal}
	default:
		return [3]uint8{aVal, bVal, domVal}
	}
}

func nearest(ramp [4][3]uint8, r, g, b uint8) [3]uint8 {
	best := ramp[0]
	bestDist := dist2(best, r, g, b)
	for _, c := range ramp[1:] {
		if d := dist2(c, r, g, b); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func dist2(c [3]uint8, r, g, b uint8) int {
	dr := int(c[0]) - int(r)
	dg := int(c[1]) - int(g)
	db := int(c[2]) - int(b)
	return dr*dr + dg*dg + db*db
}
