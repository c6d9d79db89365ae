package nj

// Bone evaluation flags. The skip bits suppress applying a transform
// component; the field is still present in the stream.
const (
	EvalSkipPosition = 0x01
	EvalSkipRotation = 0x02
	EvalSkipScale    = 0x04
	EvalHidden       = 0x08
	EvalBreak        = 0x10
	EvalZXYRotation  = 0x20
)

// AngleUnitsPerTurn is the device-native rotation scale: a full revolution
// is 65536 angle units.
const AngleUnitsPerTurn = 65536

// Bone is one node of the object tree. Links are arena indices into
// Model.Bones, -1 when absent; the arena is in depth-first order with
// children before siblings.
type Bone struct {
	Flags    uint32
	Position [3]float32
	Rotation [3]int32 // angle units, see AngleUnitsPerTurn
	Scale    [3]float32

	// ZXY selects Z-X-Y Euler composition instead of the default X-Y-Z.
	ZXY bool

	Mesh *MeshPayload // nil for transform-only nodes

	Parent  int
	Child   int
	Sibling int
}

// Vertex is one entry of a mesh's shared vertex buffer.
type Vertex struct {
	Position [3]float32

	Normal    [3]float32
	HasNormal bool

	Color    [4]uint8 // RGBA
	HasColor bool

	Weight    float32 // 0..1 skin weight
	HasWeight bool
}

// Material is the accumulated draw state captured when a strip is emitted.
// Colors are RGBA in 0..1.
type Material struct {
	TextureID int // index into the texture-name table, -1 when unset

	Diffuse  [4]float32
	Specular [4]float32
	Ambient  [4]float32

	UseAlpha    bool
	DoubleSided bool
	SrcAlpha    uint8 // blend factor selectors from the blend-alpha chunk
	DstAlpha    uint8

	ClampU, ClampV bool
	FlipU, FlipV   bool
	FilterMode     uint8
	SuperSample    bool
}

// StripVertex is one corner of a triangle strip: an index into the mesh's
// vertex buffer plus its UV coordinate.
type StripVertex struct {
	Index uint16
	UV    [2]float32
}

// Strip is one triangle strip tagged with the material state that was
// active when its chunk was interpreted.
type Strip struct {
	Material  Material
	Clockwise bool // winding from the sign of the strip length
	Vertices  []StripVertex
}

// MeshPayload is the geometry attached to one bone: a vertex buffer and
// the strips produced by its chunk stream.
type MeshPayload struct {
	Vertices []Vertex
	Strips   []Strip

	Center [3]float32
	Radius float32

	// AnomalousChunks counts chunk records that were skipped because their
	// type is not expected in this stream (vertex chunks inside a polygon
	// list, unhandled strip variants).
	AnomalousChunks int
}

// Model is a fully parsed NJ file.
type Model struct {
	TextureNames []string
	Bones        []Bone // empty only if the file carries no NJCM section
	HasMotion    bool   // an NMDM section was present (layout not parsed)
}
