package nj

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestReadTextureTable(t *testing.T) {
	// Two entries whose name pointers reference the string heap out of
	// order; the result must keep table order.
	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, 8) // table pointer
	buf = binary.LittleEndian.AppendUint32(buf, 2) // count

	// table at 8: name pointer + 8 attribute bytes per entry
	buf = binary.LittleEndian.AppendUint32(buf, 37) // "SHIP"
	buf = append(buf, make([]byte, 8)...)
	buf = binary.LittleEndian.AppendUint32(buf, 32) // "HULL"
	buf = append(buf, make([]byte, 8)...)

	// string heap at 32
	buf = append(buf, "HULL\x00SHIP\x00"...)

	names, err := readTextureTable(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "SHIP" || names[1] != "HULL" {
		t.Errorf("names: got %q", names)
	}
}

func TestReadTextureTableHostileCount(t *testing.T) {
	// A tiny payload declaring the maximum entry count must fail cleanly
	// before anything is sized by the count.
	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, 8)
	buf = binary.LittleEndian.AppendUint32(buf, 0xFFFFFFFF)
	buf = append(buf, make([]byte, 4)...)

	_, err := readTextureTable(buf)
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestReadTextureTableTruncated(t *testing.T) {
	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, 8)
	buf = binary.LittleEndian.AppendUint32(buf, 1000) // count overruns the table

	_, err := readTextureTable(buf)
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestReadTextureTableBadNamePointer(t *testing.T) {
	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, 8)
	buf = binary.LittleEndian.AppendUint32(buf, 1)
	buf = binary.LittleEndian.AppendUint32(buf, 5000) // past the payload
	buf = append(buf, make([]byte, 8)...)

	_, err := readTextureTable(buf)
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}
