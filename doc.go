// Package rlcodec implements a decoder and encoder for the RL image codec,
// a small multi-frame format for 16-bit RGB565 animations. Each frame is
// split into 2x2 pixel blocks and coded against a per-frame standard
// palette (256 entries, always serialized) plus an overflow extended
// palette (variable length, consumed in append order).
//
// The package does not do its own PNG I/O; callers convert to/from
// image.Image (see the rgb subpackage for the RGB565 <-> RGB888 contract)
// and hand rlcodec raw RGB565 planes. The animation subpackage wraps this
// with an image.Image-based Encoder/Decoder pair and the quantizer that
// pre-conditions input so blocks fit the codec's 16 enumerated patterns.
package rlcodec
