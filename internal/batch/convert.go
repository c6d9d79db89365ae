package batch

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DashGL/ikaruga-asset-viewer/internal/config"
	"github.com/DashGL/ikaruga-asset-viewer/internal/pvr"

	"github.com/HugoSmits86/nativewebp"
	"github.com/cespare/xxhash/v2"
	"github.com/ftrvxmtrx/tga"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/image/draw"
)

// ReadAsset loads an asset file, transparently inflating a trailing .gz
// layer, and returns the payload plus the effective extension.
func ReadAsset(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("batch: read %s: %w", path, err)
	}

	name := path
	if strings.EqualFold(filepath.Ext(name), ".gz") {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("batch: gzip %s: %w", path, err)
		}
		defer zr.Close()
		data, err = io.ReadAll(zr)
		if err != nil {
			return nil, "", fmt.Errorf("batch: inflate %s: %w", path, err)
		}
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	return data, strings.ToLower(filepath.Ext(name)), nil
}

func convertFile(cfg config.Config, path string) Result {
	data, ext, err := ReadAsset(path)
	if err != nil {
		return Result{Source: path, Error: err.Error()}
	}

	switch ext {
	case ".pvr":
		return convertPVR(cfg, path, data)
	case ".pvm":
		return convertPVM(cfg, path, data)
	default:
		return Result{Source: path, Error: fmt.Sprintf("unrecognized extension %q", ext)}
	}
}

func convertPVR(cfg config.Config, path string, data []byte) Result {
	tex, err := pvr.Decode(data, &pvr.Options{Palette: companionPalette(cfg, path)})
	if err != nil {
		return Result{Source: path, Error: err.Error()}
	}

	out, err := writeImage(cfg, stem(path), "", tex)
	if err != nil {
		return Result{Source: path, Error: err.Error()}
	}
	return Result{Source: path, Outputs: []Output{out}, Success: true}
}

func convertPVM(cfg config.Config, path string, data []byte) Result {
	entries, err := pvr.DecodePVM(data)
	if err != nil {
		return Result{Source: path, Error: err.Error()}
	}

	// One bad entry does not abort the container; its error is recorded
	// and the remaining entries still convert.
	var errs []string
	outputs := make([]Output, 0, len(entries))
	for _, e := range entries {
		tex, err := pvr.Decode(e.Data, nil)
		if err != nil {
			errs = append(errs, fmt.Sprintf("entry %d: %v", e.Index, err))
			continue
		}
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("%03d", e.Index)
		}
		out, err := writeImage(cfg, stem(path), name, tex)
		if err != nil {
			return Result{Source: path, Error: err.Error()}
		}
		out.Name = e.Name
		outputs = append(outputs, out)
	}
	if len(errs) > 0 {
		return Result{Source: path, Outputs: outputs, Error: strings.Join(errs, "; "), Success: len(outputs) > 0}
	}
	return Result{Source: path, Outputs: outputs, Success: true}
}

// companionPalette loads <stem>.pvp from the palette directory, matched by
// naming convention, for palettized textures. Absence is not an error.
func companionPalette(cfg config.Config, path string) *pvr.Palette {
	pvpPath := filepath.Join(cfg.PaletteDir, stem(path)+".pvp")
	data, err := os.ReadFile(pvpPath)
	if err != nil {
		return nil
	}
	pal, err := pvr.DecodePVP(data)
	if err != nil {
		return nil
	}
	return pal
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writeImage(cfg config.Config, fileStem, entryName string, tex *pvr.Texture) (Output, error) {
	img := tex.Image
	if cfg.Scale > 1 {
		b := img.Bounds()
		scaled := image.NewNRGBA(image.Rect(0, 0, b.Dx()*cfg.Scale, b.Dy()*cfg.Scale))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
		img = scaled
	}

	name := fileStem
	if entryName != "" {
		name = filepath.Join(fileStem, entryName)
	}
	outPath := filepath.Join(cfg.OutputDir, name+"."+cfg.Format)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return Output{}, fmt.Errorf("batch: mkdir: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return Output{}, fmt.Errorf("batch: create %s: %w", outPath, err)
	}
	defer f.Close()

	switch cfg.Format {
	case "webp":
		err = nativewebp.Encode(f, img, nil)
	case "tga":
		err = tga.Encode(f, img)
	case "png":
		err = png.Encode(f, img)
	default:
		err = fmt.Errorf("unknown output format %q", cfg.Format)
	}
	if err != nil {
		return Output{}, fmt.Errorf("batch: encode %s: %w", outPath, err)
	}

	// The manifest describes the written file, so dimensions and digest
	// come from the scaled image, not the decoded source.
	return Output{
		Path:   outPath,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		Pixel:  tex.Header.PixelFormat.String(),
		Data:   tex.Header.DataFormat.String(),
		Hash:   fmt.Sprintf("%016x", xxhash.Sum64(img.Pix)),
	}, nil
}
