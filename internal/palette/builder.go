package palette

import "sort"

// BuildStd populates std (which must already be Reset) from plane's
// top-left block pixels, row by row, per spec.md S4.5:
//
//  1. collect the top-left pixel of every block in a row of blocks.
//  2. sort the row ascending.
//  3. drop consecutive duplicates and anything already in std.
//  4. append survivors until std holds 256 entries, then stop.
//
// The top-left pixel of a block is always a fresh palette reference (pixel
// 0 is never a reuse target), so these are the colors block encoding is
// most likely to look up.
func BuildStd(std *Std, plane []uint16, width, height int) {
	cols := (width + 1) / 2
	rows := (height + 1) / 2

	row := make([]uint16, cols)
	for by := 0; by < rows; by++ {
		y := by * 2
		for bx := 0; bx < cols; bx++ {
			row[bx] = plane[y*width+bx*2]
		}
		survivors := dedupeSorted(row)
		survivors = excludeExisting(std, survivors)
		if std.Append(survivors) < len(survivors) || std.Used() >= StdSize {
			break
		}
	}
}

// excludeExisting drops values already present in std's populated prefix.
func excludeExisting(std *Std, row []uint16) []uint16 {
	n := 0
	for _, v := range row {
		if _, found := std.IndexOf(v); !found {
			row[n] = v
			n++
		}
	}
	return row[:n]
}

// dedupeSorted sorts a copy of row ascending and removes consecutive
// duplicates in place, returning the surviving prefix.
func dedupeSorted(row []uint16) []uint16 {
	tmp := append([]uint16(nil), row...)
	sort.Slice(tmp, func(i, j int) bool { return tmp[i] < tmp[j] })

	n := 0
	for i, v := range tmp {
		if i == 0 || v != tmp[i-1] {
			tmp[n] = v
			n++
		}
	}
	return tmp[:n]
}
