package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/DashGL/ikaruga-asset-viewer/internal/nj"
	"github.com/DashGL/ikaruga-asset-viewer/internal/pvr"
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: inspect file.pvr|file.pvm|file.pvp|file.nj ...")
		os.Exit(2)
	}

	exit := 0
	for _, path := range flag.Args() {
		if err := inspect(path); err != nil {
			fmt.Fprintf(os.Stderr, "inspect: %s: %v\n", path, err)
			exit = 1
		}
	}
	os.Exit(exit)
}

func inspect(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(data) < 4 {
		return fmt.Errorf("file too short")
	}

	fmt.Printf("== %s (%d bytes)\n", path, len(data))
	switch string(data[0:4]) {
	case "GBIX", "PVRT":
		return inspectPVR(data)
	case "PVMH":
		return inspectPVM(data)
	case "PVPL":
		return inspectPVP(data)
	case "NJTL", "NJCM", "NMDM":
		return inspectNJ(data)
	default:
		return fmt.Errorf("unrecognized magic %q", data[0:4])
	}
}

func inspectPVR(data []byte) error {
	tex, err := pvr.Decode(data, nil)
	if err != nil {
		return err
	}
	fmt.Printf("  PVR %dx%d pixel=%s data=%s",
		tex.Header.Width, tex.Header.Height, tex.Header.PixelFormat, tex.Header.DataFormat)
	if tex.HasGlobalIndex {
		fmt.Printf(" gbix=%d", tex.GlobalIndex)
	}
	if len(tex.Mipmaps) > 0 {
		fmt.Printf(" mips=%d", len(tex.Mipmaps))
	}
	fmt.Println()
	return nil
}

func inspectPVM(data []byte) error {
	entries, err := pvr.DecodePVM(data)
	if err != nil {
		return err
	}
	fmt.Printf("  PVM container, %d textures\n", len(entries))
	for _, e := range entries {
		fmt.Printf("  [%3d] %-28s", e.Index, e.Name)
		if e.HasFormat {
			fmt.Printf(" %s", e.Format)
		}
		if e.Width > 0 {
			fmt.Printf(" %dx%d", e.Width, e.Height)
		}
		if e.HasGlobalIndex {
			fmt.Printf(" gbix=%d", e.GlobalIndex)
		}
		fmt.Printf(" (%d bytes)\n", len(e.Data))
	}
	return nil
}

func inspectPVP(data []byte) error {
	pal, err := pvr.DecodePVP(data)
	if err != nil {
		return err
	}
	fmt.Printf("  PVP palette, %d entries, pixel=%s\n", len(pal.Colors), pal.Format)
	return nil
}

func inspectNJ(data []byte) error {
	model, err := nj.Parse(data)
	if err != nil {
		return err
	}
	fmt.Printf("  NJ model: %d bones, %d texture names", len(model.Bones), len(model.TextureNames))
	if model.HasMotion {
		fmt.Printf(", motion data present")
	}
	fmt.Println()
	for i, name := range model.TextureNames {
		fmt.Printf("  tex[%d] %s\n", i, name)
	}
	verts, strips := 0, 0
	for _, b := range model.Bones {
		if b.Mesh != nil {
			verts += len(b.Mesh.Vertices)
			strips += len(b.Mesh.Strips)
		}
	}
	fmt.Printf("  %d vertices, %d strips\n", verts, strips)
	return nil
}
