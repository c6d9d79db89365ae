package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"asset_dir": "/assets", "format": "png", "scale": 2}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolve(Flags{Format: "tga"})

	if cfg.Format != "tga" {
		t.Errorf("flag must override file: got %q", cfg.Format)
	}
	if cfg.Scale != 2 {
		t.Errorf("scale: got %d, want 2", cfg.Scale)
	}
	if cfg.OutputDir != filepath.Join("/assets", "converted") {
		t.Errorf("output dir: got %q", cfg.OutputDir)
	}
	if cfg.PaletteDir != "/assets" {
		t.Errorf("palette dir: got %q", cfg.PaletteDir)
	}
	if cfg.Workers <= 0 {
		t.Errorf("workers: got %d", cfg.Workers)
	}
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{AssetDir: "/data"})

	if cfg.Format != "webp" || cfg.Scale != 1 {
		t.Errorf("defaults: format=%q scale=%d", cfg.Format, cfg.Scale)
	}
	if cfg.OutputDir != filepath.Join("/data", "converted") {
		t.Errorf("output dir: got %q", cfg.OutputDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
