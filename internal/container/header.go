package container

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Info holds everything GetInfo extracts from a container header.
type Info struct {
	Version    Version
	Frames     int
	Width      int
	Height     int
	PixelBytes int
	Savings    uint8
	WOdd       bool
	HOdd       bool
	Reserved   uint32
}

// GetInfo parses the container header at the start of data. It returns the
// parsed Info and the header size consumed (always HeaderSize on success).
// header size is 0 and err is non-nil on magic mismatch, an unknown version,
// or pixel_bytes != 2 -- matching RLS_Common_GetInfo's "12 or 0" contract.
func GetInfo(data []byte) (Info, int, error) {
	if len(data) < BaseHeaderSize {
		return Info{}, 0, errors.Wrap(ErrTruncated, "base header")
	}
	if binary.LittleEndian.Uint16(data[0:2]) != Magic {
		return Info{}, 0, ErrBadMagic
	}
	version := Version(binary.LittleEndian.Uint16(data[2:4]))
	frames := int(data[4])

	if len(data) < HeaderSize {
		return Info{}, 0, errors.Wrap(ErrTruncated, "info header")
	}
	info := Info{Version: version, Frames: frames}
	body := data[BaseHeaderSize:HeaderSize]

	switch version {
	case VersionCompact:
		info.Width = int(body[0])
		info.Height = int(body[1])
		info.PixelBytes = int(body[2])
		attr := binary.LittleEndian.Uint32(body[3:7])
		info.Savings = uint8(attr & 0xff)
		info.WOdd = attr&(1<<8) != 0
		info.HOdd = attr&(1<<9) != 0
		info.Reserved = attr >> 10
	case VersionExtended:
		info.Width = int(binary.LittleEndian.Uint16(body[0:2]))
		info.Height = int(binary.LittleEndian.Uint16(body[2:4]))
		info.PixelBytes = int(body[4])
		attr := binary.LittleEndian.Uint16(body[5:7])
		info.Savings = uint8(attr & 0xff)
		info.WOdd = attr&(1<<8) != 0
		info.HOdd = attr&(1<<9) != 0
		info.Reserved = uint32(attr >> 10)
	default:
		return Info{}, 0, errors.Wrapf(ErrUnknownVersion, "0x%04x", uint16(version))
	}

	if info.PixelBytes != PixelBytes {
		return Info{}, 0, ErrBadPixelBytes
	}
	return info, HeaderSize, nil
}

// ChooseVersion picks VersionCompact when both dimensions fit in a byte,
// else VersionExtended (spec.md S4 / S5).
func ChooseVersion(width, height int) Version {
	if width <= 0xff && height <= 0xff {
		return VersionCompact
	}
	return VersionExtended
}

// MakeInfo serializes a container header for frames frames of size
// width x height into a fresh HeaderSize-byte buffer. savings is the
// caller-computed compression estimate (container.CalcSaving).
func MakeInfo(frames, width, height int, savings uint8, reserved uint32) ([]byte, error) {
	if frames <= 0 || frames > MaxFrames || width <= 0 || height <= 0 {
		return nil, ErrInvalidDimension
	}

	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint16(buf[0:2], Magic)
	version := ChooseVersion(width, height)
	binary.LittleEndian.PutUint16(buf[2:4], uint16(version))
	buf[4] = byte(frames)

	wOdd := width & 1
	hOdd := height & 1
	body := buf[BaseHeaderSize:HeaderSize]

	switch version {
	case VersionCompact:
		body[0] = byte(width)
		body[1] = byte(height)
		body[2] = PixelBytes
		attr := uint32(savings) | uint32(wOdd)<<8 | uint32(hOdd)<<9 | (reserved&0x3fffff)<<10
		binary.LittleEndian.PutUint32(body[3:7], attr)
	case VersionExtended:
		binary.LittleEndian.PutUint16(body[0:2], uint16(width))
		binary.LittleEndian.PutUint16(body[2:4], uint16(height))
		body[4] = PixelBytes
		attr := uint16(savings) | uint16(wOdd)<<8 | uint16(hOdd)<<9 | uint16(reserved&0x3f)<<10
		binary.LittleEndian.PutUint16(body[5:7], attr)
	}

	return buf, nil
}

// CalcSaving implements spec.md's savings formula: ceil(((rawTotal -
// encodedTotal) / 2) / StdPaletteEntries), clamped to fit a byte.
func CalcSaving(rawTotal, encodedTotal int) uint8 {
	diff := rawTotal - encodedTotal
	if diff <= 0 {
		return 0
	}
	half := diff / 2
	saving := (half + StdPaletteEntries - 1) / StdPaletteEntries
	if saving > 0xff {
		saving = 0xff
	}
	return uint8(saving)
}
