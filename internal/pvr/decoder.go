package pvr

import (
	"encoding/binary"
	"fmt"
	"image"
)

// DataFormat is the storage layout declared in a PVRT header.
type DataFormat uint8

const (
	FormatTwiddled      DataFormat = 0x01
	FormatTwiddledMM    DataFormat = 0x02
	FormatVQ            DataFormat = 0x03
	FormatVQMM          DataFormat = 0x04
	FormatPalette4      DataFormat = 0x05
	FormatPalette4MM    DataFormat = 0x06
	FormatPalette8      DataFormat = 0x07
	FormatPalette8MM    DataFormat = 0x08
	FormatRectangle     DataFormat = 0x09
	FormatStride        DataFormat = 0x0B
	FormatTwiddledRect  DataFormat = 0x0D
	FormatABGR          DataFormat = 0x0E
	FormatABGRMM        DataFormat = 0x0F
	FormatSmallVQ       DataFormat = 0x10
	FormatSmallVQMM     DataFormat = 0x11
	FormatTwiddledMMAlt DataFormat = 0x12
)

// String returns the format name used in tool output.
func (f DataFormat) String() string {
	switch f {
	case FormatTwiddled:
		return "TWIDDLED"
	case FormatTwiddledMM:
		return "TWIDDLED_MM"
	case FormatVQ:
		return "VQ"
	case FormatVQMM:
		return "VQ_MM"
	case FormatPalette4:
		return "PALETTIZE4"
	case FormatPalette4MM:
		return "PALETTIZE4_MM"
	case FormatPalette8:
		return "PALETTIZE8"
	case FormatPalette8MM:
		return "PALETTIZE8_MM"
	case FormatRectangle:
		return "RECTANGLE"
	case FormatStride:
		return "STRIDE"
	case FormatTwiddledRect:
		return "TWIDDLED_RECTANGLE"
	case FormatABGR:
		return "ABGR"
	case FormatABGRMM:
		return "ABGR_MM"
	case FormatSmallVQ:
		return "SMALLVQ"
	case FormatSmallVQMM:
		return "SMALLVQ_MM"
	case FormatTwiddledMMAlt:
		return "TWIDDLED_MM_ALT"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02x)", uint8(f))
	}
}

// mipmapped reports whether the format stores a mip chain (smallest level
// first, each level self-contained).
func (f DataFormat) mipmapped() bool {
	switch f {
	case FormatTwiddledMM, FormatTwiddledMMAlt, FormatVQMM, FormatPalette4MM,
		FormatPalette8MM, FormatABGRMM, FormatSmallVQMM:
		return true
	}
	return false
}

// Header is the fixed 8-byte descriptor following the PVRT magic and size.
type Header struct {
	PixelFormat PixelFormat
	DataFormat  DataFormat
	Width       int
	Height      int
}

// Texture is the result of decoding one PVR file or PVRT block.
type Texture struct {
	Header  Header
	Image   *image.NRGBA   // full-resolution level
	Mipmaps []*image.NRGBA // smallest to largest when mipmapped, else nil

	GlobalIndex    uint32
	HasGlobalIndex bool
}

// Options adjusts decoding of formats whose inputs are not fully
// self-contained.
type Options struct {
	// Palette overrides the inline palette of palettized formats, e.g. a
	// table loaded from a companion PVP file.
	Palette *Palette
	// Stride is the row pitch in pixels for the stride format. Zero means
	// the texture width.
	Stride int
}

const pvrtHeaderSize = 16 // magic + size + 8-byte texture header

// Decode parses an optional GBIX section followed by a PVRT texture block
// and returns the decoded image (plus the full mip chain for mipmapped
// formats). opts may be nil.
func Decode(data []byte, opts *Options) (*Texture, error) {
	if opts == nil {
		opts = &Options{}
	}

	tex := &Texture{}
	off := 0

	if len(data) >= 8 && string(data[0:4]) == "GBIX" {
		secLen := int(binary.LittleEndian.Uint32(data[4:]))
		if 8+secLen > len(data) {
			return nil, fmt.Errorf("pvr: GBIX section (%d bytes): %w", secLen, ErrTruncated)
		}
		if secLen >= 4 {
			tex.GlobalIndex = binary.LittleEndian.Uint32(data[8:])
			tex.HasGlobalIndex = true
		}
		// PVRT begins at the next 8-byte boundary after the section.
		off = (8 + secLen + 7) &^ 7
	}

	if off+pvrtHeaderSize > len(data) {
		return nil, fmt.Errorf("pvr: PVRT header: %w", ErrTruncated)
	}
	if string(data[off:off+4]) != "PVRT" {
		return nil, fmt.Errorf("pvr: PVRT magic %q: %w", data[off:off+4], ErrBadMagic)
	}
	// Declared data size; a sanity bound only, never a read length.
	declared := int(binary.LittleEndian.Uint32(data[off+4:]))
	if declared < 8 {
		return nil, fmt.Errorf("pvr: declared size %d: %w", declared, ErrTruncated)
	}

	tex.Header = Header{
		PixelFormat: PixelFormat(data[off+8]),
		DataFormat:  DataFormat(data[off+9]),
		Width:       int(binary.LittleEndian.Uint16(data[off+12:])),
		Height:      int(binary.LittleEndian.Uint16(data[off+14:])),
	}
	if tex.Header.Width == 0 || tex.Header.Height == 0 {
		return nil, fmt.Errorf("pvr: zero texture dimension: %w", ErrUnsupported)
	}
	if tex.Header.PixelFormat.sampleSize() == 0 {
		return nil, fmt.Errorf("pvr: pixel format 0x%02x: %w", uint8(tex.Header.PixelFormat), ErrUnsupported)
	}

	if err := decodeBody(tex, data[off+pvrtHeaderSize:], opts); err != nil {
		return nil, err
	}
	return tex, nil
}

// mipDims lists level dimensions smallest first, ending at (w, h).
func mipDims(w, h int) [][2]int {
	var dims [][2]int
	for {
		dims = append(dims, [2]int{w, h})
		if w == 1 && h == 1 {
			break
		}
		if w > 1 {
			w /= 2
		}
		if h > 1 {
			h /= 2
		}
	}
	for i, j := 0, len(dims)-1; i < j; i, j = i+1, j-1 {
		dims[i], dims[j] = dims[j], dims[i]
	}
	return dims
}

func decodeBody(tex *Texture, body []byte, opts *Options) error {
	h := tex.Header
	levels := [][2]int{{h.Width, h.Height}}
	if h.DataFormat.mipmapped() {
		levels = mipDims(h.Width, h.Height)
	}

	switch h.DataFormat {
	case FormatTwiddled, FormatTwiddledMM, FormatTwiddledMMAlt, FormatTwiddledRect:
		return decodeLevels(tex, levels, func(data []byte, w, hh int) (*image.NRGBA, int, error) {
			img, err := decodeTwiddledLevel(data, h.PixelFormat, w, hh)
			return img, w * hh * h.PixelFormat.sampleSize(), err
		}, body)

	case FormatRectangle, FormatStride:
		stride := h.Width
		if h.DataFormat == FormatStride && opts.Stride > h.Width {
			stride = opts.Stride
		}
		img, err := decodeLinearLevel(body, h.PixelFormat, h.Width, h.Height, stride, false)
		if err != nil {
			return err
		}
		tex.Image = img
		return nil

	case FormatABGR, FormatABGRMM:
		return decodeLevels(tex, levels, func(data []byte, w, hh int) (*image.NRGBA, int, error) {
			img, err := decodeLinearLevel(data, h.PixelFormat, w, hh, w, true)
			return img, w * hh * h.PixelFormat.sampleSize(), err
		}, body)

	case FormatVQ, FormatVQMM, FormatSmallVQ, FormatSmallVQMM:
		small := h.DataFormat == FormatSmallVQ || h.DataFormat == FormatSmallVQMM
		entries := codebookSize(h.Width, h.Height, small)
		book, consumed, err := readCodebook(body, h.PixelFormat, entries)
		if err != nil {
			return err
		}
		body = body[consumed:]
		return decodeLevels(tex, levels, func(data []byte, w, hh int) (*image.NRGBA, int, error) {
			n := vqIndexLen(w, hh)
			if n > len(data) {
				return nil, 0, fmt.Errorf("pvr: VQ index stream (%d bytes): %w", n, ErrTruncated)
			}
			img, err := decodeVQLevel(data[:n], book, w, hh)
			return img, n, err
		}, body)

	case FormatPalette4, FormatPalette4MM, FormatPalette8, FormatPalette8MM:
		wide := h.DataFormat == FormatPalette8 || h.DataFormat == FormatPalette8MM
		entries := 16
		if wide {
			entries = 256
		}
		pal := opts.Palette
		if pal == nil {
			var consumed int
			var err error
			pal, consumed, err = readInlinePalette(body, h.PixelFormat, entries)
			if err != nil {
				return err
			}
			body = body[consumed:]
		}
		return decodeLevels(tex, levels, func(data []byte, w, hh int) (*image.NRGBA, int, error) {
			img, n, err := decodePalettizedLevel(data, pal, w, hh, wide)
			return img, n, err
		}, body)

	default:
		return fmt.Errorf("pvr: data format 0x%02x: %w", uint8(h.DataFormat), ErrUnsupported)
	}
}

// decodeLevels walks the mip chain smallest first, decoding each level with
// decode and advancing by the consumed byte count it reports.
func decodeLevels(tex *Texture, levels [][2]int, decode func([]byte, int, int) (*image.NRGBA, int, error), body []byte) error {
	imgs := make([]*image.NRGBA, 0, len(levels))
	for _, d := range levels {
		img, n, err := decode(body, d[0], d[1])
		if err != nil {
			return err
		}
		imgs = append(imgs, img)
		if n > len(body) {
			return fmt.Errorf("pvr: mip level %dx%d: %w", d[0], d[1], ErrTruncated)
		}
		body = body[n:]
	}
	tex.Image = imgs[len(imgs)-1]
	if len(levels) > 1 {
		tex.Mipmaps = imgs
	}
	return nil
}

// decodeTwiddledLevel reads Morton-ordered samples. Non-square textures are
// stored as a run of min(w,h)-sized twiddled square tiles along the longer
// axis, so the Morton index is computed per tile.
func decodeTwiddledLevel(data []byte, format PixelFormat, width, height int) (*image.NRGBA, error) {
	size := format.sampleSize()
	tile := width
	if height < tile {
		tile = height
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tileIdx := x/tile + y/tile*(width/tile)
			m := mortonIndex(uint32(x%tile), uint32(y%tile))
			if int(m) >= tile*tile {
				return nil, fmt.Errorf("pvr: twiddled index %d of %d: %w", m, tile*tile, ErrIndexRange)
			}
			off := (tileIdx*tile*tile + int(m)) * size
			if off+size > len(data) {
				return nil, fmt.Errorf("pvr: twiddled sample at %d: %w", off, ErrTruncated)
			}
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
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}

// decodeLinearLevel reads row-major samples with the given row pitch.
// swapRB reverses the channel order for ABGR layouts.
func decodeLinearLevel(data []byte, format PixelFormat, width, height, stride int, swapRB bool) (*image.NRGBA, error) {
	size := format.sampleSize()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := (y*stride + x) * size
			if off+size > len(data) {
				return nil, fmt.Errorf("pvr: sample at %d: %w", off, ErrTruncated)
			}
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
			if swapRB {
				c.R, c.B = c.B, c.R
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}

// decodePalettizedLevel expands 4- or 8-bit palette indices, low nibble
// first for the 4-bit layout. Returns the image and bytes consumed.
func decodePalettizedLevel(data []byte, pal *Palette, width, height int, wide bool) (*image.NRGBA, int, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	total := width * height

	var n int
	if wide {
		n = total
	} else {
		n = (total + 1) / 2
	}
	if n > len(data) {
		return nil, 0, fmt.Errorf("pvr: palette indices (%d bytes): %w", n, ErrTruncated)
	}

	for i := 0; i < total; i++ {
		var index int
		if wide {
			index = int(data[i])
		} else {
			b := data[i/2]
			if i%2 == 0 {
				index = int(b & 0x0F)
			} else {
				index = int(b >> 4)
			}
		}
		c, err := pal.Lookup(index)
		if err != nil {
			return nil, 0, err
		}
		img.SetNRGBA(i%width, i/width, c)
	}
	return img, n, nil
}
