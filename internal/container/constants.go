// Package container implements the RL container header: magic, version
// selection between the compact (8-bit dimension) and extended (16-bit
// dimension) info headers, and the attributes word each header carries.
package container

import "github.com/pkg/errors"

// Magic is the two-byte container signature, stored little-endian as 'R''L'.
const Magic uint16 = 0x4C52

// Version selects the info header layout. The encoder picks the compact
// form unless either dimension exceeds what a byte can hold.
type Version uint16

const (
	// VersionCompact uses 8-bit width/height and a 32-bit attributes word.
	VersionCompact Version = 0x1210
	// VersionExtended uses 16-bit width/height and a 16-bit attributes word.
	VersionExtended Version = 0x1013
)

const (
	// BaseHeaderSize is the size of the magic+version+frame-count header.
	BaseHeaderSize = 5
	// InfoHeaderSize is the size of the per-version info header that
	// immediately follows the base header, for both versions.
	InfoHeaderSize = 7
	// HeaderSize is the total container header size returned by GetInfo
	// on success (base header + info header).
	HeaderSize = BaseHeaderSize + InfoHeaderSize

	// PixelBytes is the only pixel size this codec accepts (RGB565).
	PixelBytes = 2

	// StdPaletteEntries is the fixed entry count of the standard palette.
	StdPaletteEntries = 256
	// StdPaletteBytes is the fixed serialized size of the standard palette.
	StdPaletteBytes = StdPaletteEntries * PixelBytes

	// ExtPaletteMaxEntries is the largest number of extended palette entries
	// a single frame may declare.
	ExtPaletteMaxEntries = 1 << 15
	// ExtPaletteMaxBytes is ExtPaletteMaxEntries expressed in bytes.
	ExtPaletteMaxBytes = ExtPaletteMaxEntries * PixelBytes

	// MaxFrames is the largest frame count a container may declare (the
	// frame count field is a single byte).
	MaxFrames = 255
)

// Errors returned by GetInfo/MakeInfo. Wrapped with context via
// github.com/pkg/errors at the call site.
var (
	ErrBadMagic         = errors.New("container: bad magic")
	ErrUnknownVersion   = errors.New("container: unknown version")
	ErrBadPixelBytes    = errors.New("container: pixel_bytes != 2")
	ErrInvalidDimension = errors.New("container: width/height must be > 0")
	ErrTruncated        = errors.New("container: truncated header")
)
