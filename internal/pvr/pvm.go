package pvr

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// PVM entry-table flags, shared by every entry of one file.
const (
	pvmHasGlobalIndex = 0x01
	pvmHasDimensions  = 0x02
	pvmHasFormat      = 0x04
	pvmHasName        = 0x08
)

// Entry is one texture slot of a PVM container. Data holds the raw PVRT
// block; decoding it is deferred to the caller so unneeded textures cost
// nothing.
type Entry struct {
	Index uint16
	Name  string // empty when the container carries no names

	Format    DataFormat
	HasFormat bool

	Width  int // zero when the container carries no dimensions
	Height int

	GlobalIndex    uint32
	HasGlobalIndex bool

	Data []byte
}

// DecodePVM parses a PVMH container and returns its entries in table order.
func DecodePVM(data []byte) ([]Entry, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("pvr: PVM header: %w", ErrTruncated)
	}
	if string(data[0:4]) != "PVMH" {
		return nil, fmt.Errorf("pvr: PVM magic %q: %w", data[0:4], ErrBadMagic)
	}
	headerSize := int(binary.LittleEndian.Uint32(data[4:]))
	flags := binary.LittleEndian.Uint16(data[8:])
	count := int(binary.LittleEndian.Uint16(data[10:]))

	entries := make([]Entry, count)
	off := 12
	for i := range entries {
		e := &entries[i]

		if off+2 > len(data) {
			return nil, fmt.Errorf("pvr: PVM entry %d: %w", i, ErrTruncated)
		}
		e.Index = binary.LittleEndian.Uint16(data[off:])
		off += 2

		if flags&pvmHasName != 0 {
			if off+28 > len(data) {
				return nil, fmt.Errorf("pvr: PVM entry %d name: %w", i, ErrTruncated)
			}
			e.Name = string(bytes.TrimRight(data[off:off+28], "\x00"))
			off += 28
		}
		if flags&pvmHasFormat != 0 {
			if off+2 > len(data) {
				return nil, fmt.Errorf("pvr: PVM entry %d format: %w", i, ErrTruncated)
			}
			// High byte is the data format code; low byte is reserved.
			e.Format = DataFormat(data[off+1])
			e.HasFormat = true
			off += 2
		}
		if flags&pvmHasDimensions != 0 {
			if off+2 > len(data) {
				return nil, fmt.Errorf("pvr: PVM entry %d size: %w", i, ErrTruncated)
			}
			size := binary.LittleEndian.Uint16(data[off:])
			e.Width = 1 << ((size & 0xF) + 2)
			e.Height = 1 << ((size >> 4 & 0xF) + 2)
			off += 2
		}
		if flags&pvmHasGlobalIndex != 0 {
			if off+4 > len(data) {
				return nil, fmt.Errorf("pvr: PVM entry %d global index: %w", i, ErrTruncated)
			}
			e.GlobalIndex = binary.LittleEndian.Uint32(data[off:])
			e.HasGlobalIndex = true
			off += 4
		}
	}

	// Embedded texture data begins after the declared header region; the
	// entry table may end earlier than that.
	if dataStart := 8 + headerSize; dataStart > off && dataStart <= len(data) {
		off = dataStart
	}

	for i := range entries {
		rel := bytes.Index(data[off:], []byte("PVRT"))
		if rel < 0 {
			return nil, fmt.Errorf("pvr: PVM declares %d textures, found %d: %w", count, i, ErrEntryCount)
		}
		start := off + rel
		if start+8 > len(data) {
			return nil, fmt.Errorf("pvr: PVM texture %d header: %w", i, ErrTruncated)
		}
		// Block length is the declared data size plus the 8-byte header.
		blockLen := int(binary.LittleEndian.Uint32(data[start+4:])) + 8
		if start+blockLen > len(data) {
			return nil, fmt.Errorf("pvr: PVM texture %d (%d bytes): %w", i, blockLen, ErrTruncated)
		}
		entries[i].Data = data[start : start+blockLen]
		off = start + blockLen
	}

	return entries, nil
}
