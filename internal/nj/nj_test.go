package nj

import (
	"encoding/binary"
	"errors"
	"testing"
)

func section(magic string, payload []byte) []byte {
	buf := []byte(magic)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(payload)))
	return append(buf, payload...)
}

func TestParse(t *testing.T) {
	// Texture table with one name.
	var njtl []byte
	njtl = binary.LittleEndian.AppendUint32(njtl, 8)
	njtl = binary.LittleEndian.AppendUint32(njtl, 1)
	njtl = binary.LittleEndian.AppendUint32(njtl, 20)
	njtl = append(njtl, make([]byte, 8)...)
	njtl = append(njtl, "WING\x00"...)

	// Single transform-only bone.
	njcm := objRec{scale: [3]float32{1, 1, 1}}.append(nil)

	var file []byte
	file = append(file, section("NJTL", njtl)...)
	file = append(file, section("POF0", make([]byte, 4))...)
	file = append(file, section("NJCM", njcm)...)
	file = append(file, section("NMDM", make([]byte, 16))...)

	m, err := Parse(file)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.TextureNames) != 1 || m.TextureNames[0] != "WING" {
		t.Errorf("texture names: got %q", m.TextureNames)
	}
	if len(m.Bones) != 1 {
		t.Errorf("bones: got %d, want 1", len(m.Bones))
	}
	if !m.HasMotion {
		t.Error("motion section not flagged")
	}
}

func TestParseUnknownSectionsOnly(t *testing.T) {
	file := section("XXXX", make([]byte, 8))
	_, err := Parse(file)
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("expected ErrBadMagic, got %v", err)
	}
}

func TestParseTruncatedSection(t *testing.T) {
	var file []byte
	file = append(file, "NJCM"...)
	file = binary.LittleEndian.AppendUint32(file, 1000) // longer than the file

	_, err := Parse(file)
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestParseShortFile(t *testing.T) {
	_, err := Parse([]byte("NJ"))
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}
