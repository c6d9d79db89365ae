package nj

import "fmt"

// Object record layout: flags, mesh pointer, position, rotation, scale,
// child pointer, sibling pointer. 52 bytes, 14 fields.
const objectRecordSize = 52

// readObjectTree builds the bone arena from the NJCM payload, root record
// at offset 0. Traversal is an explicit work list rather than recursion,
// and a visited-offset set turns malformed child/sibling pointers that
// revisit an entered record into ErrCyclic instead of runaway traversal.
func readObjectTree(payload []byte) ([]Bone, error) {
	type task struct {
		off       uint32
		parent    int
		linkFrom  int // arena index whose Child/Sibling field to set, -1 for root
		asSibling bool
	}

	visited := make(map[uint32]bool)
	var bones []Bone

	// LIFO with the sibling pushed first, so the child subtree completes
	// before the sibling: depth-first, child before sibling.
	stack := []task{{off: 0, parent: -1, linkFrom: -1}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[t.off] {
			return nil, fmt.Errorf("nj: object at offset %d entered twice: %w", t.off, ErrCyclic)
		}
		visited[t.off] = true

		c := &cursor{data: payload}
		c.seek(t.off)

		b := Bone{Parent: t.parent, Child: -1, Sibling: -1}
		b.Flags = c.u32()
		meshOff := c.u32()
		for i := range b.Position {
			b.Position[i] = c.f32()
		}
		for i := range b.Rotation {
			b.Rotation[i] = c.i32()
		}
		for i := range b.Scale {
			b.Scale[i] = c.f32()
		}
		childOff := c.u32()
		siblingOff := c.u32()
		if c.err != nil {
			return nil, c.err
		}

		// Suppressed components are read to keep the record aligned but
		// not carried into the bone; scale falls back to neutral.
		if b.Flags&EvalSkipPosition != 0 {
			b.Position = [3]float32{}
		}
		if b.Flags&EvalSkipRotation != 0 {
			b.Rotation = [3]int32{}
		}
		if b.Flags&EvalSkipScale != 0 {
			b.Scale = [3]float32{1, 1, 1}
		}
		b.ZXY = b.Flags&EvalZXYRotation != 0

		if meshOff != 0 {
			mesh, err := readMesh(payload, meshOff)
			if err != nil {
				return nil, err
			}
			b.Mesh = mesh
		}

		idx := len(bones)
		bones = append(bones, b)
		if t.linkFrom >= 0 {
			if t.asSibling {
				bones[t.linkFrom].Sibling = idx
			} else {
				bones[t.linkFrom].Child = idx
			}
		}

		if siblingOff != 0 {
			stack = append(stack, task{off: siblingOff, parent: t.parent, linkFrom: idx, asSibling: true})
		}
		if childOff != 0 {
			stack = append(stack, task{off: childOff, parent: idx, linkFrom: idx})
		}
	}

	return bones, nil
}

// readMesh parses the model struct a bone's mesh pointer targets: vertex
// list pointer, polygon list pointer, bounding center and radius. Either
// pointer may be zero.
func readMesh(payload []byte, off uint32) (*MeshPayload, error) {
	c := &cursor{data: payload}
	c.seek(off)

	vlistOff := c.u32()
	plistOff := c.u32()
	mesh := &MeshPayload{}
	for i := range mesh.Center {
		mesh.Center[i] = c.f32()
	}
	mesh.Radius = c.f32()
	if c.err != nil {
		return nil, c.err
	}

	if vlistOff != 0 {
		verts, err := readVertexList(payload, vlistOff)
		if err != nil {
			return nil, err
		}
		mesh.Vertices = verts
	}
	if plistOff != 0 {
		strips, anomalous, err := readChunkStream(payload, plistOff)
		if err != nil {
			return nil, err
		}
		mesh.Strips = strips
		mesh.AnomalousChunks += anomalous
	}
	return mesh, nil
}
