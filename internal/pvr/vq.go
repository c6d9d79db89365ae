package pvr

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
)

// codebookEntry is one 2×2 block of decoded pixels in raster order:
// top-left, top-right, bottom-left, bottom-right.
type codebookEntry [4]color.NRGBA

// codebookSize returns the entry count for a VQ texture. SMALLVQ variants
// shrink the codebook for small textures; plain VQ always carries 256.
func codebookSize(width, height int, small bool) int {
	if !small {
		return 256
	}
	dim := width
	if height > dim {
		dim = height
	}
	switch {
	case dim <= 16:
		return 16
	case dim <= 32:
		return 32
	case dim <= 64:
		return 128
	default:
		return 256
	}
}

// readCodebook decodes entries×4 samples from the head of data and returns
// the codebook plus the number of bytes consumed.
func readCodebook(data []byte, format PixelFormat, entries int) ([]codebookEntry, int, error) {
	size := format.sampleSize()
	if size == 0 {
		return nil, 0, fmt.Errorf("pvr: pixel format 0x%02x: %w", uint8(format), ErrUnsupported)
	}
	total := entries * 4 * size
	if total > len(data) {
		return nil, 0, fmt.Errorf("pvr: VQ codebook (%d entries): %w", entries, ErrTruncated)
	}

	book := make([]codebookEntry, entries)
	off := 0
	for i := range book {
		for j := 0; j < 4; j++ {
			var raw uint32
			if size == 2 {
				raw = uint32(binary.LittleEndian.Uint16(data[off:]))
			} else {
				raw = binary.LittleEndian.Uint32(data[off:])
			}
			c, err := decodePixel(format, raw)
			if err != nil {
				return nil, 0, err
			}
			book[i][j] = c
			off += size
		}
	}
	return book, off, nil
}

// vqIndexLen returns the byte length of one mip level's block index stream.
func vqIndexLen(width, height int) int {
	n := (width * height) / 4
	if n < 1 {
		n = 1
	}
	return n
}

// decodeVQLevel expands one mip level from its block index stream. The
// texture is addressed as (width/2)×(height/2) blocks whose coordinates are
// twiddled; each index byte selects a codebook block copied to the block's
// linear pixel position.
func decodeVQLevel(indexData []byte, book []codebookEntry, width, height int) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	blocksW := (width + 1) / 2
	blocksH := (height + 1) / 2

	for by := 0; by < blocksH; by++ {
		for bx := 0; bx < blocksW; bx++ {
			idx := mortonIndex(uint32(bx), uint32(by))
			if int(idx) >= len(indexData) {
				return nil, fmt.Errorf("pvr: VQ block index offset %d of %d: %w", idx, len(indexData), ErrTruncated)
			}
			entry := int(indexData[idx])
			if entry >= len(book) {
				return nil, fmt.Errorf("pvr: VQ codebook index %d of %d: %w", entry, len(book), ErrIndexRange)
			}
			block := book[entry]
			for p := 0; p < 4; p++ {
				x := bx*2 + p%2
				y := by*2 + p/2
				if x < width && y < height {
					img.SetNRGBA(x, y, block[p])
				}
			}
		}
	}
	return img, nil
}
