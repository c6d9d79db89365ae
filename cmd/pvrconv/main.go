package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DashGL/ikaruga-asset-viewer/internal/batch"
	"github.com/DashGL/ikaruga-asset-viewer/internal/config"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	assetDir := flag.String("data", "", "Directory scanned for PVR/PVM files (default: cwd)")
	outputDir := flag.String("output", "", "Output directory (default: <data>/converted)")
	format := flag.String("format", "", "Output image format: webp, tga or png (default: webp)")
	scale := flag.Int("scale", 0, "Integer upscale factor for output images")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Convert only first N files for testing")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg.Resolve(config.Flags{
		AssetDir:  *assetDir,
		OutputDir: *outputDir,
		Format:    *format,
		Scale:     *scale,
		Workers:   *workers,
	})

	files := scanAssets(cfg.AssetDir)
	if *testN > 0 && *testN < len(files) {
		files = files[:*testN]
	}
	if len(files) == 0 {
		fmt.Println("No PVR/PVM files found.")
		os.Exit(0)
	}

	fmt.Printf("Dreamcast PVR texture converter → %s\n", strings.ToUpper(cfg.Format))
	fmt.Printf("Files: %d, Workers: %d\n", len(files), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(cfg, files)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		}
		if r.Error != "" {
			failed++
			errors = append(errors, r)
		}
	}
	fmt.Printf("Converted: %d/%d\n", success, len(files))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", filepath.Base(e.Source), e.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// scanAssets lists every .pvr/.pvm file under dir, including gzipped ones.
func scanAssets(dir string) []string {
	var files []string
	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		name := strings.ToLower(path)
		name = strings.TrimSuffix(name, ".gz")
		if strings.HasSuffix(name, ".pvr") || strings.HasSuffix(name, ".pvm") {
			files = append(files, path)
		}
		return nil
	})
	return files
}
