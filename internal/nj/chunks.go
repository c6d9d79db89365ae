package nj

import "fmt"

// Vertex chunk types carried in a mesh's vertex list. Each chunk is
// u8 type, u8 flags, u16 size (4-byte words following), u16 index offset,
// u16 count, then count records.
const (
	vertexSH     = 0x20 // x, y, z, 1.0
	vertexVNSH   = 0x21 // position and normal, 4 floats each
	vertexXYZ    = 0x22 // position only
	vertexD8     = 0x23 // position + ARGB color
	vertexS8     = 0x24 // position + specular color
	vertexNF     = 0x25 // position + ninja flags (skin weight)
	vertexVN     = 0x29 // position + normal
	vertexVND8   = 0x2A // position + normal + ARGB color
	vertexVNNF   = 0x2C // position + normal + ninja flags
	chunkEnd     = 0xFF
	chunkNullOff = 0x00
)

// readVertexList fills the mesh vertex buffer from the chunk list at off.
// Records land at their declared index offset, so several chunks may build
// one buffer; the list ends at an end chunk.
func readVertexList(payload []byte, off uint32) ([]Vertex, error) {
	c := &cursor{data: payload}
	c.seek(off)

	var verts []Vertex
	for {
		chunkType := c.u8()
		if c.err != nil {
			return nil, c.err
		}
		if chunkType == chunkEnd {
			return verts, nil
		}
		if chunkType == chunkNullOff {
			c.skip(3) // remainder of the header word
			continue
		}

		_ = c.u8() // chunk flags (weight status), unused here
		size := c.u16()
		next := c.off + int(size)*4
		indexOffset := int(c.u16())
		count := int(c.u16())
		if c.err != nil {
			return nil, c.err
		}

		if need := indexOffset + count; need > len(verts) {
			grown := make([]Vertex, need)
			copy(grown, verts)
			verts = grown
		}

		for i := 0; i < count; i++ {
			var v Vertex
			v.Position[0] = c.f32()
			v.Position[1] = c.f32()
			v.Position[2] = c.f32()

			switch chunkType {
			case vertexSH:
				c.skip(4) // constant 1.0
			case vertexVNSH:
				c.skip(4)
				v.Normal[0] = c.f32()
				v.Normal[1] = c.f32()
				v.Normal[2] = c.f32()
				v.HasNormal = true
				c.skip(4)
			case vertexXYZ:
			case vertexD8, vertexS8:
				v.Color = unpackARGB(c.u32())
				v.HasColor = true
			case vertexNF:
				v.Weight = float32(c.u32()&0xFF) / 255
				v.HasWeight = true
			case vertexVN:
				v.Normal[0] = c.f32()
				v.Normal[1] = c.f32()
				v.Normal[2] = c.f32()
				v.HasNormal = true
			case vertexVND8:
				v.Normal[0] = c.f32()
				v.Normal[1] = c.f32()
				v.Normal[2] = c.f32()
				v.HasNormal = true
				v.Color = unpackARGB(c.u32())
				v.HasColor = true
			case vertexVNNF:
				v.Normal[0] = c.f32()
				v.Normal[1] = c.f32()
				v.Normal[2] = c.f32()
				v.HasNormal = true
				v.Weight = float32(c.u32()&0xFF) / 255
				v.HasWeight = true
			default:
				return nil, fmt.Errorf("nj: vertex chunk 0x%02x: %w", chunkType, ErrUnsupported)
			}
			if c.err != nil {
				return nil, c.err
			}
			verts[indexOffset+i] = v
		}

		// The size field is authoritative for chunk extent.
		c.seek(uint32(next))
		if c.err != nil {
			return nil, c.err
		}
	}
}

// Strip chunk flag bits, applied to the emitted material snapshot.
const (
	stripUseAlpha    = 0x08
	stripDoubleSided = 0x10
)

// readChunkStream interprets the polygon chunk list at off: a run of
// (head, flag) records updating blend, texture and color state, with strip
// chunks emitting geometry tagged with a snapshot of that state. The
// stream ends at head 0xFF with no flag byte following it.
func readChunkStream(payload []byte, off uint32) ([]Strip, int, error) {
	c := &cursor{data: payload}
	c.seek(off)

	state := Material{
		TextureID: -1,
		Diffuse:   [4]float32{1, 1, 1, 1},
	}
	var strips []Strip
	anomalous := 0

	for {
		head := c.u8()
		if c.err != nil {
			return nil, 0, c.err
		}
		if head == 0xFF {
			return strips, anomalous, nil
		}
		flag := c.u8()

		switch {
		case head == 0x00:
			// null chunk, nothing to do

		case head <= 0x07:
			// bits chunks: only blend-alpha carries state we keep
			if head == 0x01 {
				state.SrcAlpha = flag >> 3 & 0x07
				state.DstAlpha = flag & 0x07
			}

		case head <= 0x0F:
			// tiny chunk: texture id plus addressing/filtering bits
			v := c.u16()
			state.TextureID = int(v & 0x1FFF)
			state.FilterMode = uint8(v >> 13 & 0x03)
			state.SuperSample = v&0x8000 != 0
			state.FlipU = flag&0x80 != 0
			state.FlipV = flag&0x40 != 0
			state.ClampU = flag&0x20 != 0
			state.ClampV = flag&0x10 != 0

		case head <= 0x1F:
			// material chunk: head bits select which colors follow
			size := c.u16()
			next := c.off + int(size)*2
			if head&0x01 != 0 {
				state.Diffuse = unpackARGBFloat(c.u32())
			}
			if head&0x02 != 0 {
				state.Ambient = unpackARGBFloat(c.u32())
			}
			if head&0x04 != 0 {
				state.Specular = unpackARGBFloat(c.u32())
			}
			c.seek(uint32(next))

		case head <= 0x3F:
			// vertex chunk in a polygon list: anomalous, skipped by size
			size := c.u16()
			c.skip(int(size) * 4)
			anomalous++

		default:
			// strip chunk
			size := c.u16()
			next := c.off + int(size)*2
			emitted, skipped, err := readStrips(c, head, flag, state)
			if err != nil {
				return nil, 0, err
			}
			strips = append(strips, emitted...)
			anomalous += skipped
			c.seek(uint32(next))
		}

		if c.err != nil {
			return nil, 0, c.err
		}
	}
}

// readStrips parses the strip run of one strip chunk. The head selects the
// per-corner payload: plain indices, UVs in 1/255 or 1/1023 units, and for
// the higher families packed normals or vertex colors (skipped). Strip
// lengths are signed; the sign is the winding orientation.
func readStrips(c *cursor, head, flag uint8, state Material) ([]Strip, int, error) {
	base := int(head) - 0x40
	var uvMode, extraWords int
	switch {
	case base < 3:
		uvMode = base
	case base < 6:
		uvMode, extraWords = base-3, 3 // packed corner normals
	case base < 9:
		uvMode, extraWords = base-6, 2 // corner colors
	default:
		// unhandled strip variant; the caller skips it by its size field
		return nil, 1, nil
	}

	snapshot := state
	snapshot.UseAlpha = snapshot.UseAlpha || flag&stripUseAlpha != 0
	snapshot.DoubleSided = flag&stripDoubleSided != 0

	info := c.u16()
	count := int(info & 0x3FFF)
	userWords := int(info >> 14) // per-corner user flag words, third corner on

	strips := make([]Strip, 0, count)
	for s := 0; s < count; s++ {
		length := int(c.i16())
		clockwise := length < 0
		if clockwise {
			length = -length
		}

		strip := Strip{
			Material:  snapshot,
			Clockwise: clockwise,
			Vertices:  make([]StripVertex, length),
		}
		for i := 0; i < length; i++ {
			sv := StripVertex{Index: c.u16()}
			switch uvMode {
			case 1:
				sv.UV[0] = float32(c.i16()) / 255
				sv.UV[1] = float32(c.i16()) / 255
			case 2:
				sv.UV[0] = float32(c.i16()) / 1023
				sv.UV[1] = float32(c.i16()) / 1023
			}
			c.skip(extraWords * 2)
			if i >= 2 {
				c.skip(userWords * 2)
			}
			strip.Vertices[i] = sv
		}
		if c.err != nil {
			return nil, 0, c.err
		}
		strips = append(strips, strip)
	}
	return strips, 0, nil
}

func unpackARGB(v uint32) [4]uint8 {
	return [4]uint8{uint8(v >> 16), uint8(v >> 8), uint8(v), uint8(v >> 24)}
}

func unpackARGBFloat(v uint32) [4]float32 {
	c := unpackARGB(v)
	return [4]float32{
		float32(c[0]) / 255,
		float32(c[1]) / 255,
		float32(c[2]) / 255,
		float32(c[3]) / 255,
	}
}
