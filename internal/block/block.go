// Package block implements the RL codec's block encoding engine: a static
// table of the 16 enumerated intra-block pixel-reuse patterns, extraction
// and write-back of 2x2 pixel blocks from/to an RGB565 plane (honoring
// odd-width/odd-height edges), and the header+index byte encoding of a
// single block against live standard/extended palettes.
package block

// Block holds the four pixels of a 2x2 tile: [top-left, top-right,
// bottom-left, bottom-right]. Index 0 is always a fresh palette reference;
// it is never a reuse target's source for itself.
type Block [4]uint16
