package pvr

import (
	"encoding/binary"
	"fmt"
	"image/color"
)

// Palette is an ordered color table, either loaded from an external PVP
// file or read inline from a palettized PVR texture.
type Palette struct {
	Format PixelFormat
	Colors []color.NRGBA
}

const pvpHeaderSize = 0x10

// DecodePVP parses a PVPL palette block.
//
// Layout: "PVPL" magic, u32 data size, pixel format byte at 0x08, entry
// count u16 at 0x0E, then entry_count raw samples (2 or 4 bytes each,
// per the declared pixel format).
func DecodePVP(data []byte) (*Palette, error) {
	if len(data) < pvpHeaderSize {
		return nil, fmt.Errorf("pvr: PVP header: %w", ErrTruncated)
	}
	if string(data[0:4]) != "PVPL" {
		return nil, fmt.Errorf("pvr: PVP magic %q: %w", data[0:4], ErrBadMagic)
	}

	format := PixelFormat(data[0x08])
	count := int(binary.LittleEndian.Uint16(data[0x0E:]))

	size := format.sampleSize()
	if size == 0 {
		return nil, fmt.Errorf("pvr: PVP pixel format 0x%02x: %w", uint8(format), ErrUnsupported)
	}
	if pvpHeaderSize+count*size > len(data) {
		return nil, fmt.Errorf("pvr: PVP entries (%d × %d bytes): %w", count, size, ErrTruncated)
	}

	pal := &Palette{Format: format, Colors: make([]color.NRGBA, count)}
	for i := 0; i < count; i++ {
		off := pvpHeaderSize + i*size
		var raw uint32
		if size == 2 {
			raw = uint32(binary.LittleEndian.Uint16(data[off:]))
		} else {
			raw = binary.LittleEndian.Uint32(data[off:])
		}
		c, err := decodePixel(format, raw)
		if err != nil {
			return nil, err
		}
		pal.Colors[i] = c
	}
	return pal, nil
}

// Lookup returns the color at index, bounds-checked.
func (p *Palette) Lookup(index int) (color.NRGBA, error) {
	if index < 0 || index >= len(p.Colors) {
		return color.NRGBA{}, fmt.Errorf("pvr: palette index %d of %d: %w", index, len(p.Colors), ErrIndexRange)
	}
	return p.Colors[index], nil
}

// readInlinePalette decodes a palette stored directly ahead of the index
// data of a palettized texture.
func readInlinePalette(data []byte, format PixelFormat, entries int) (*Palette, int, error) {
	size := format.sampleSize()
	if size == 0 {
		return nil, 0, fmt.Errorf("pvr: pixel format 0x%02x: %w", uint8(format), ErrUnsupported)
	}
	if entries*size > len(data) {
		return nil, 0, fmt.Errorf("pvr: inline palette (%d entries): %w", entries, ErrTruncated)
	}
	pal := &Palette{Format: format, Colors: make([]color.NRGBA, entries)}
	for i := 0; i < entries; i++ {
		var raw uint32
		if size == 2 {
			raw = uint32(binary.LittleEndian.Uint16(data[i*size:]))
		} else {
			raw = binary.LittleEndian.Uint32(data[i*size:])
		}
		c, err := decodePixel(format, raw)
		if err != nil {
			return nil, 0, err
		}
		pal.Colors[i] = c
	}
	return pal, entries * size, nil
}
