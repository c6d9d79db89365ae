package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DashGL/ikaruga-asset-viewer/internal/nj"
	"github.com/DashGL/ikaruga-asset-viewer/internal/skeleton"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func main() {
	outPath := flag.String("o", "", "Output GLB path (default: input name with .glb)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: njexport [-o out.glb] model.nj")
		os.Exit(2)
	}
	inPath := flag.Arg(0)
	if *outPath == "" {
		base := strings.TrimSuffix(inPath, filepath.Ext(inPath))
		*outPath = base + ".glb"
	}

	if err := run(inPath, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "njexport: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *outPath)
}

// matKey groups strips that can share one glTF material.
type matKey struct {
	textureID   int
	useAlpha    bool
	doubleSided bool
	diffuse     [4]float32
}

// group accumulates triangulated geometry for one material. Normals are
// emitted only when every corner in the group carries one.
type group struct {
	positions [][3]float32
	normals   [][3]float32
	uvs       [][2]float32
	indices   []uint32
	noNormals bool
}

func run(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	model, err := nj.Parse(data)
	if err != nil {
		return err
	}
	if len(model.Bones) == 0 {
		return fmt.Errorf("%s: no NJCM model section", inPath)
	}

	worlds := skeleton.WorldMatrices(model.Bones)

	groups := make(map[matKey]*group)
	var order []matKey

	for bi, bone := range model.Bones {
		if bone.Mesh == nil {
			continue
		}
		baked := make([][3]float32, len(bone.Mesh.Vertices))
		bakedNorm := make([][3]float32, len(bone.Mesh.Vertices))
		hasNorm := make([]bool, len(bone.Mesh.Vertices))
		for vi, v := range bone.Mesh.Vertices {
			baked[vi] = skeleton.BakeVertex(worlds[bi], v)
			if v.HasNormal {
				bakedNorm[vi] = skeleton.BakeNormal(worlds[bi], v)
				hasNorm[vi] = true
			}
		}

		for _, strip := range bone.Mesh.Strips {
			key := matKey{
				textureID:   strip.Material.TextureID,
				useAlpha:    strip.Material.UseAlpha,
				doubleSided: strip.Material.DoubleSided,
				diffuse:     strip.Material.Diffuse,
			}
			g := groups[key]
			if g == nil {
				g = &group{}
				groups[key] = g
				order = append(order, key)
			}
			if err := appendStrip(g, strip, baked, bakedNorm, hasNorm); err != nil {
				return fmt.Errorf("%s bone %d: %w", inPath, bi, err)
			}
		}
	}
	if len(order) == 0 {
		return fmt.Errorf("%s: model has no geometry", inPath)
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "ikaruga-asset-viewer njexport"

	var prims []*gltf.Primitive
	for _, key := range order {
		g := groups[key]

		posAccessor := modeler.WritePosition(doc, g.positions)
		uvAccessor := modeler.WriteTextureCoord(doc, g.uvs)
		indicesAccessor := modeler.WriteIndices(doc, g.indices)

		prim := &gltf.Primitive{
			Attributes: map[string]uint32{
				gltf.POSITION:   uint32(posAccessor),
				gltf.TEXCOORD_0: uint32(uvAccessor),
			},
			Indices: gltf.Index(uint32(indicesAccessor)),
		}
		if !g.noNormals {
			prim.Attributes[gltf.NORMAL] = uint32(modeler.WriteNormal(doc, g.normals))
		}

		name := ""
		if key.textureID >= 0 && key.textureID < len(model.TextureNames) {
			name = model.TextureNames[key.textureID]
		}
		material := &gltf.Material{
			Name:        name,
			DoubleSided: key.doubleSided,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float32{key.diffuse[0], key.diffuse[1], key.diffuse[2], key.diffuse[3]},
				MetallicFactor:  gltf.Float(0),
				RoughnessFactor: gltf.Float(1),
			},
		}
		if key.useAlpha {
			material.AlphaMode = gltf.AlphaBlend
		} else {
			material.AlphaMode = gltf.AlphaOpaque
		}
		doc.Materials = append(doc.Materials, material)
		prim.Material = gltf.Index(uint32(len(doc.Materials) - 1))
		prims = append(prims, prim)
	}

	meshName := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	doc.Meshes = []*gltf.Mesh{{Name: meshName, Primitives: prims}}
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(0))

	return gltf.SaveBinary(doc, outPath)
}

// appendStrip triangulates one strip into the group's index list, emitting
// each corner as a fresh vertex so per-strip UVs stay intact.
func appendStrip(g *group, strip nj.Strip, baked, normals [][3]float32, hasNormal []bool) error {
	base := uint32(len(g.positions))
	for _, sv := range strip.Vertices {
		if int(sv.Index) >= len(baked) {
			return fmt.Errorf("strip index %d outside vertex buffer of %d", sv.Index, len(baked))
		}
		g.positions = append(g.positions, baked[sv.Index])
		g.normals = append(g.normals, normals[sv.Index])
		if !hasNormal[sv.Index] {
			g.noNormals = true
		}
		g.uvs = append(g.uvs, sv.UV)
	}

	for i := 0; i+2 < len(strip.Vertices); i++ {
		a, b, c := base+uint32(i), base+uint32(i+1), base+uint32(i+2)
		flip := i%2 == 1
		if strip.Clockwise {
			flip = !flip
		}
		if flip {
			a, b = b, a
		}
		g.indices = append(g.indices, a, b, c)
	}
	return nil
}
