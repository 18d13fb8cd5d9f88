// Package palette implements the RL codec's two per-frame palettes: the
// fixed 256-entry standard palette (always serialized as 512 bytes) and
// the variable-length extended palette (length-prefixed, consumed in
// strict append order via a cursor). Both are scoped to a single frame
// and reset at frame boundaries.
package palette

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// StdSize is the fixed entry count of the standard palette.
const StdSize = 256

// StdBytes is the fixed serialized size of the standard palette.
const StdBytes = StdSize * 2

// ErrShortBuffer is returned when a Load call is given fewer bytes than
// the palette requires.
var ErrShortBuffer = errors.New("palette: short buffer")

// Std is the per-frame standard palette: an ordered array of up to 256
// RGB565 values. Used tracks how many leading entries are populated; the
// tail is zero but carries no meaning and must not be scanned or decoded
// against.
type Std struct {
	entries [StdSize]uint16
	used    int
}

// Reset clears the palette for a new frame.
func (s *Std) Reset() {
	s.entries = [StdSize]uint16{}
	s.used = 0
}

// Used returns the number of populated leading entries.
func (s *Std) Used() int { return s.used }

// At returns the palette entry at idx (0..255). Valid for any idx once the
// palette has been Load()ed (decode side) or partially filled by Append
// (encode side) -- decode never consults Used.
func (s *Std) At(idx int) uint16 { return s.entries[idx] }

// Append appends colors to the palette, stopping once StdSize entries are
// populated. It returns the number of colors actually appended.
func (s *Std) Append(colors []uint16) int {
	room := StdSize - s.used
	if room <= 0 {
		return 0
	}
	n := len(colors)
	if n > room {
		n = room
	}
	copy(s.entries[s.used:s.used+n], colors[:n])
	s.used += n
	return n
}

// IndexOf scans the populated prefix [0:Used) for color and returns its
// index, or (0, false) if absent. Unlike a full 256-entry scan, this never
// matches against the zero-initialized, semantically empty tail.
func (s *Std) IndexOf(color uint16) (int, bool) {
	for i := 0; i < s.used; i++ {
		if s.entries[i] == color {
			return i, true
		}
	}
	return 0, false
}

// Bytes serializes the palette as the fixed 512-byte wire form, including
// the zero-initialized (semantically empty) tail.
func (s *Std) Bytes() []byte {
	buf := make([]byte, StdBytes)
	for i, v := range s.entries {
		binary.LittleEndian.PutUint16(buf[i*2:i*2+2], v)
	}
	return buf
}

// Load replaces the palette's full 256 entries from data, which must be at
// least StdBytes long. Used is set to StdSize: on decode, every entry is
// valid storage (even if semantically unused by the encoder), since
// BlockDecoder indexes into it by raw byte value.
func (s *Std) Load(data []byte) error {
	if len(data) < StdBytes {
		return ErrShortBuffer
	}
	for i := 0; i < StdSize; i++ {
		s.entries[i] = binary.LittleEndian.Uint16(data[i*2 : i*2+2])
	}
	s.used = StdSize
	return nil
}
