// Package nj decodes the Ninja (NJ) chunk model format: texture-name
// tables (NJTL), object/bone trees with chunked mesh data (NJCM), and the
// presence of motion sections (NMDM). All offsets inside a section are
// relative to that section's payload, and every seek is bounds-checked
// against the input buffer.
package nj

import (
	"encoding/binary"
	"fmt"
)

// Parse walks the section list of an NJ file. Unknown section types
// (including POF0 pointer-fixup blocks) are skipped by their declared
// length.
func Parse(data []byte) (*Model, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("nj: file header: %w", ErrTruncated)
	}

	m := &Model{}
	seen := false

	off := 0
	for off+8 <= len(data) {
		magic := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4:]))
		if off+8+size > len(data) {
			return nil, fmt.Errorf("nj: section %q (%d bytes): %w", magic, size, ErrTruncated)
		}
		payload := data[off+8 : off+8+size]

		switch magic {
		case "NJTL":
			names, err := readTextureTable(payload)
			if err != nil {
				return nil, err
			}
			m.TextureNames = names
			seen = true
		case "NJCM":
			bones, err := readObjectTree(payload)
			if err != nil {
				return nil, err
			}
			m.Bones = bones
			seen = true
		case "NMDM":
			m.HasMotion = true
			seen = true
		case "POF0":
			// pointer fixup table, irrelevant when parsing in place
		default:
			// tolerate trailing padding or foreign sections
		}
		off += 8 + size
	}

	if !seen {
		return nil, fmt.Errorf("nj: no NJTL/NJCM/NMDM section: %w", ErrBadMagic)
	}
	return m, nil
}
