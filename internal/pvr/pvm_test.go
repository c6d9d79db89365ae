package pvr

import (
	"encoding/binary"
	"errors"
	"testing"
)

// buildPVM assembles a one-entry container with all four flag fields set.
func buildPVM(count int, textures ...[]byte) []byte {
	var table []byte
	for i := 0; i < count; i++ {
		table = binary.LittleEndian.AppendUint16(table, uint16(i))
		name := make([]byte, 28)
		copy(name, "TEX_1")
		table = append(table, name...)
		table = append(table, 0x00, byte(FormatTwiddled)) // format in the high byte
		table = append(table, 0x34, 0x00)                 // 64x32
		table = binary.LittleEndian.AppendUint32(table, 777)
	}

	buf := []byte("PVMH")
	buf = binary.LittleEndian.AppendUint32(buf, uint32(4+len(table)))
	buf = binary.LittleEndian.AppendUint16(buf, 0x0F)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(count))
	buf = append(buf, table...)
	for _, tex := range textures {
		buf = append(buf, tex...)
	}
	return buf
}

func TestDecodePVM(t *testing.T) {
	tex := buildPVRT(PixelRGB565, FormatRectangle, 2, 2, make([]byte, 8))
	entries, err := DecodePVM(buildPVM(1, tex))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries: got %d, want 1", len(entries))
	}

	e := entries[0]
	if e.Name != "TEX_1" {
		t.Errorf("name: got %q, want \"TEX_1\"", e.Name)
	}
	if !e.HasFormat || e.Format != FormatTwiddled {
		t.Errorf("format: got (%v, %s)", e.HasFormat, e.Format)
	}
	if e.Width != 64 || e.Height != 32 {
		t.Errorf("size: got %dx%d, want 64x32", e.Width, e.Height)
	}
	if !e.HasGlobalIndex || e.GlobalIndex != 777 {
		t.Errorf("global index: got (%v, %d)", e.HasGlobalIndex, e.GlobalIndex)
	}

	// The payload slice covers the declared data size plus the block header.
	if len(e.Data) != len(tex) {
		t.Errorf("payload: got %d bytes, want %d", len(e.Data), len(tex))
	}
	if _, err := Decode(e.Data, nil); err != nil {
		t.Errorf("payload does not decode: %v", err)
	}
}

func TestDecodePVMEntryCount(t *testing.T) {
	// Two declared entries, one embedded texture.
	tex := buildPVRT(PixelRGB565, FormatRectangle, 2, 2, make([]byte, 8))
	_, err := DecodePVM(buildPVM(2, tex))
	if !errors.Is(err, ErrEntryCount) {
		t.Errorf("expected ErrEntryCount, got %v", err)
	}
}

func TestDecodePVMBadMagic(t *testing.T) {
	_, err := DecodePVM([]byte("XXXX01234567"))
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("expected ErrBadMagic, got %v", err)
	}
}

func TestDecodePVMTruncated(t *testing.T) {
	_, err := DecodePVM([]byte("PVMH"))
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}
