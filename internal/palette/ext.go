package palette

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// MaxEntries is the largest number of entries a single frame's extended
// palette may hold.
const MaxEntries = 1 << 15

// MaxBytes is MaxEntries expressed in bytes.
const MaxBytes = MaxEntries * 2

// ErrOverflow is returned when an encode-side Append would exceed
// MaxEntries, or a decode-side Next reads past the loaded entries.
var ErrOverflow = errors.New("palette: extended palette overflow")

// ErrTooLarge is returned when Load is given a declared byte length beyond
// MaxBytes.
var ErrTooLarge = errors.New("palette: declared length exceeds limit")

// Ext is the per-frame extended (overflow) palette. It is a single
// variable-length buffer with two cursors sharing its lifetime: a write
// cursor used while encoding (index of the next free slot) and a read
// cursor used while decoding (index of the next unread slot). Both reset
// to 0 at every frame boundary.
type Ext struct {
	entries     []uint16
	writeCursor int
	readCursor  int
}

// Reset clears the palette and both cursors for a new frame.
func (e *Ext) Reset() {
	e.entries = e.entries[:0]
	e.writeCursor = 0
	e.readCursor = 0
}

// Len returns the number of entries currently held.
func (e *Ext) Len() int { return len(e.entries) }

// Append adds color to the palette in append order, advancing the write
// cursor. It fails once MaxEntries would be exceeded.
func (e *Ext) Append(color uint16) error {
	if e.writeCursor >= MaxEntries {
		return ErrOverflow
	}
	e.entries = append(e.entries, color)
	e.writeCursor++
	return nil
}

// Next consumes and returns the entry at the read cursor, advancing it.
// Decode must consult entries strictly in the order they were appended.
func (e *Ext) Next() (uint16, error) {
	if e.readCursor >= len(e.entries) {
		return 0, ErrOverflow
	}
	v := e.entries[e.readCursor]
	e.readCursor++
	return v, nil
}

// ReadCursor returns the number of entries consumed so far this frame.
func (e *Ext) ReadCursor() int { return e.readCursor }

// Bytes serializes the held entries as little-endian RGB565 values.
func (e *Ext) Bytes() []byte {
	buf := make([]byte, len(e.entries)*2)
	for i, v := range e.entries {
		binary.LittleEndian.PutUint16(buf[i*2:i*2+2], v)
	}
	return buf
}

// Load replaces the held entries by parsing byteLen bytes of little-endian
// RGB565 values from data, and resets both cursors. byteLen must be even
// and at most MaxBytes.
func (e *Ext) Load(data []byte, byteLen int) error {
	if byteLen > MaxBytes {
		return ErrTooLarge
	}
	if byteLen < 0 || byteLen%2 != 0 || len(data) < byteLen {
		return ErrShortBuffer
	}
	n := byteLen / 2
	if cap(e.entries) < n {
		e.entries = make([]uint16, n)
	} else {
		e.entries = e.entries[:n]
	}
	for i := 0; i < n; i++ {
		e.entries[i] = binary.LittleEndian.Uint16(data[i*2 : i*2+2])
	}
	e.writeCursor = n
	e.readCursor = 0
	return nil
}
