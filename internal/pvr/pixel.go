package pvr

import (
	"fmt"
	"image/color"
)

// PixelFormat is the per-sample color encoding declared in a PVRT header.
type PixelFormat uint8

const (
	PixelARGB1555 PixelFormat = 0x00
	PixelRGB565   PixelFormat = 0x01
	PixelARGB4444 PixelFormat = 0x02
	PixelYUV422   PixelFormat = 0x03
	PixelBump     PixelFormat = 0x04
	PixelRGB555   PixelFormat = 0x05
	// Code 0x06 is documented as both ARGB8888 and YUV420 depending on the
	// data format it pairs with. This package decodes it as ARGB8888; no
	// consumer currently needs YUV color math.
	PixelARGB8888 PixelFormat = 0x06
)

// String returns the format name used in tool output.
func (f PixelFormat) String() string {
	switch f {
	case PixelARGB1555:
		return "ARGB1555"
	case PixelRGB565:
		return "RGB565"
	case PixelARGB4444:
		return "ARGB4444"
	case PixelYUV422:
		return "YUV422"
	case PixelBump:
		return "BUMP"
	case PixelRGB555:
		return "RGB555"
	case PixelARGB8888:
		return "ARGB8888"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02x)", uint8(f))
	}
}

// sampleSize returns the byte width of one encoded sample, or 0 for an
// unrecognized code.
func (f PixelFormat) sampleSize() int {
	switch f {
	case PixelARGB1555, PixelRGB565, PixelARGB4444, PixelYUV422, PixelBump, PixelRGB555:
		return 2
	case PixelARGB8888:
		return 4
	default:
		return 0
	}
}

// decodePixel expands one encoded sample to 8-bit-per-channel color.
// Low bits of each channel are filled by replicating its top bits, so a
// full-scale channel maps to 0xFF exactly.
func decodePixel(f PixelFormat, raw uint32) (color.NRGBA, error) {
	switch f {
	case PixelARGB1555:
		a := uint8(0)
		if raw&0x8000 != 0 {
			a = 0xFF
		}
		r := uint8(raw>>10&0x1F) << 3
		g := uint8(raw>>5&0x1F) << 3
		b := uint8(raw&0x1F) << 3
		return color.NRGBA{r | r>>5, g | g>>5, b | b>>5, a}, nil
	case PixelRGB565:
		r := uint8(raw>>11&0x1F) << 3
		g := uint8(raw>>5&0x3F) << 2
		b := uint8(raw&0x1F) << 3
		return color.NRGBA{r | r>>5, g | g>>6, b | b>>5, 0xFF}, nil
	case PixelARGB4444:
		a := uint8(raw>>12&0xF) << 4
		r := uint8(raw>>8&0xF) << 4
		g := uint8(raw>>4&0xF) << 4
		b := uint8(raw&0xF) << 4
		return color.NRGBA{r | r>>4, g | g>>4, b | b>>4, a | a>>4}, nil
	case PixelRGB555:
		r := uint8(raw>>10&0x1F) << 3
		g := uint8(raw>>5&0x1F) << 3
		b := uint8(raw&0x1F) << 3
		return color.NRGBA{r | r>>5, g | g>>5, b | b>>5, 0xFF}, nil
	case PixelARGB8888:
		return color.NRGBA{uint8(raw >> 16), uint8(raw >> 8), uint8(raw), uint8(raw >> 24)}, nil
	case PixelYUV422, PixelBump:
		// Recognized but not color-converted. The raw sample bytes pass
		// through so nothing is lost for a caller that wants them.
		return color.NRGBA{uint8(raw >> 8), uint8(raw), 0, 0xFF}, nil
	default:
		return color.NRGBA{}, fmt.Errorf("pvr: pixel format 0x%02x: %w", uint8(f), ErrUnsupported)
	}
}
