package pvr

import (
	"encoding/binary"
	"errors"
	"testing"
)

func buildPVP(format PixelFormat, samples []uint16) []byte {
	buf := []byte("PVPL")
	buf = binary.LittleEndian.AppendUint32(buf, uint32(8+len(samples)*2))
	buf = append(buf, byte(format), 0, 0, 0, 0, 0)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(samples)))
	for _, s := range samples {
		buf = binary.LittleEndian.AppendUint16(buf, s)
	}
	return buf
}

func TestDecodePVP(t *testing.T) {
	pal, err := DecodePVP(buildPVP(PixelRGB565, []uint16{0xF800, 0x07E0, 0x001F}))
	if err != nil {
		t.Fatal(err)
	}
	if pal.Format != PixelRGB565 {
		t.Errorf("format: got %s", pal.Format)
	}
	if len(pal.Colors) != 3 {
		t.Fatalf("entries: got %d, want 3", len(pal.Colors))
	}

	red, _ := decodePixel(PixelRGB565, 0xF800)
	if pal.Colors[0] != red {
		t.Errorf("entry 0: got %v, want %v", pal.Colors[0], red)
	}
}

func TestDecodePVPErrors(t *testing.T) {
	if _, err := DecodePVP([]byte("NOPE000000000000")); !errors.Is(err, ErrBadMagic) {
		t.Errorf("bad magic: got %v", err)
	}
	if _, err := DecodePVP([]byte("PVPL")); !errors.Is(err, ErrTruncated) {
		t.Errorf("short header: got %v", err)
	}

	// Declared count overruns the buffer.
	short := buildPVP(PixelRGB565, []uint16{0xF800})
	binary.LittleEndian.PutUint16(short[0x0E:], 50)
	if _, err := DecodePVP(short); !errors.Is(err, ErrTruncated) {
		t.Errorf("short entries: got %v", err)
	}
}

func TestPaletteLookup(t *testing.T) {
	pal, err := DecodePVP(buildPVP(PixelRGB565, []uint16{0xFFFF, 0x0000}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pal.Lookup(1); err != nil {
		t.Errorf("index 1: %v", err)
	}
	if _, err := pal.Lookup(2); !errors.Is(err, ErrIndexRange) {
		t.Errorf("index 2: got %v, want ErrIndexRange", err)
	}
	if _, err := pal.Lookup(-1); !errors.Is(err, ErrIndexRange) {
		t.Errorf("index -1: got %v, want ErrIndexRange", err)
	}
}
