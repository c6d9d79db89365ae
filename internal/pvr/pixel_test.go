package pvr

import (
	"errors"
	"image/color"
	"testing"
)

func TestDecodePixel(t *testing.T) {
	tests := []struct {
		format PixelFormat
		raw    uint32
		want   color.NRGBA
	}{
		{PixelRGB565, 0xFFFF, color.NRGBA{255, 255, 255, 255}},
		{PixelRGB565, 0x0000, color.NRGBA{0, 0, 0, 255}},
		{PixelRGB565, 0xF800, color.NRGBA{255, 0, 0, 255}},
		{PixelRGB565, 0x07E0, color.NRGBA{0, 255, 0, 255}},
		{PixelRGB565, 0x001F, color.NRGBA{0, 0, 255, 255}},
		{PixelARGB1555, 0x8000, color.NRGBA{0, 0, 0, 255}},
		{PixelARGB1555, 0x7FFF, color.NRGBA{255, 255, 255, 0}},
		{PixelARGB1555, 0xFFFF, color.NRGBA{255, 255, 255, 255}},
		{PixelARGB4444, 0xF000, color.NRGBA{0, 0, 0, 255}},
		{PixelARGB4444, 0xFFFF, color.NRGBA{255, 255, 255, 255}},
		{PixelARGB4444, 0x0F00, color.NRGBA{255, 0, 0, 0}},
		{PixelRGB555, 0x7FFF, color.NRGBA{255, 255, 255, 255}},
		{PixelRGB555, 0x001F, color.NRGBA{0, 0, 255, 255}},
		{PixelARGB8888, 0xFF102030, color.NRGBA{0x10, 0x20, 0x30, 0xFF}},
		{PixelARGB8888, 0x00000000, color.NRGBA{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		got, err := decodePixel(tt.format, tt.raw)
		if err != nil {
			t.Errorf("%s %#x: unexpected error: %v", tt.format, tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s %#x: got %v, want %v", tt.format, tt.raw, got, tt.want)
		}
	}
}

func TestDecodePixelLowBitFill(t *testing.T) {
	// 5-bit channels replicate their top 3 bits into the low bits.
	got, err := decodePixel(PixelRGB565, 0x0841) // r=1, g=2, b=1
	if err != nil {
		t.Fatal(err)
	}
	if got.R != 0x08 || got.G != 0x08 || got.B != 0x08 {
		t.Errorf("low-bit fill: got %v", got)
	}
}

func TestDecodePixelUnsupported(t *testing.T) {
	_, err := decodePixel(PixelFormat(0x42), 0)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestDecodePixelPassthrough(t *testing.T) {
	// YUV and bump samples are recognized but not color-converted.
	for _, f := range []PixelFormat{PixelYUV422, PixelBump} {
		got, err := decodePixel(f, 0xABCD)
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if got.R != 0xAB || got.G != 0xCD || got.A != 0xFF {
			t.Errorf("%s: got %v", f, got)
		}
	}
}
