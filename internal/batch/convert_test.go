package batch

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/DashGL/ikaruga-asset-viewer/internal/config"
	"github.com/DashGL/ikaruga-asset-viewer/internal/pvr"

	"github.com/cespare/xxhash/v2"
)

func solidTexture(c color.NRGBA) *pvr.Texture {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, c)
	return &pvr.Texture{
		Header: pvr.Header{
			PixelFormat: pvr.PixelRGB565,
			DataFormat:  pvr.FormatRectangle,
			Width:       1,
			Height:      1,
		},
		Image: img,
	}
}

func TestWriteImageScaledManifest(t *testing.T) {
	red := color.NRGBA{255, 0, 0, 255}
	cfg := config.Config{OutputDir: t.TempDir(), Format: "png", Scale: 2}

	out, err := writeImage(cfg, "solid", "", solidTexture(red))
	if err != nil {
		t.Fatal(err)
	}
	if out.Width != 2 || out.Height != 2 {
		t.Errorf("manifest dimensions: got %dx%d, want 2x2", out.Width, out.Height)
	}

	// The digest must cover the written (scaled) pixels.
	want := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			want.SetNRGBA(x, y, red)
		}
	}
	if wantHash := fmt.Sprintf("%016x", xxhash.Sum64(want.Pix)); out.Hash != wantHash {
		t.Errorf("hash: got %s, want %s", out.Hash, wantHash)
	}

	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "solid.png")); err != nil {
		t.Errorf("output file: %v", err)
	}
}

func TestWriteImageUnscaled(t *testing.T) {
	tex := solidTexture(color.NRGBA{0, 255, 0, 255})
	cfg := config.Config{OutputDir: t.TempDir(), Format: "png", Scale: 1}

	out, err := writeImage(cfg, "solid", "", tex)
	if err != nil {
		t.Fatal(err)
	}
	if out.Width != 1 || out.Height != 1 {
		t.Errorf("manifest dimensions: got %dx%d, want 1x1", out.Width, out.Height)
	}
	if wantHash := fmt.Sprintf("%016x", xxhash.Sum64(tex.Image.Pix)); out.Hash != wantHash {
		t.Errorf("hash: got %s, want %s", out.Hash, wantHash)
	}
}
