package skeleton

import (
	"github.com/DashGL/ikaruga-asset-viewer/internal/mathutil"
	"github.com/DashGL/ikaruga-asset-viewer/internal/nj"
)

// WorldMatrices computes the bind-pose world transform for each bone in
// the arena. The arena is depth-first so a parent always precedes its
// children; each local transform is translate × rotate × scale with the
// rotation order taken from the bone's flags.
func WorldMatrices(bones []nj.Bone) []mathutil.Mat4 {
	worlds := make([]mathutil.Mat4, len(bones))
	for i, bone := range bones {
		rot := mathutil.EulerNinja(bone.Rotation[0], bone.Rotation[1], bone.Rotation[2], bone.ZXY)
		scale := mathutil.Mat3Diag(float64(bone.Scale[0]), float64(bone.Scale[1]), float64(bone.Scale[2]))
		pos := mathutil.Vec3{float64(bone.Position[0]), float64(bone.Position[1]), float64(bone.Position[2])}
		local := mathutil.FromMat3Translation(mathutil.Mat3Mul(rot, scale), pos)

		if bone.Parent >= 0 && bone.Parent < i {
			worlds[i] = mathutil.Mat4Mul(worlds[bone.Parent], local)
		} else {
			worlds[i] = local
		}
	}
	return worlds
}

// BakeVertex returns the world-space position of a mesh vertex under its
// owning bone's transform. Rigid skinning: one bone per mesh, weight 1.
func BakeVertex(world mathutil.Mat4, v nj.Vertex) [3]float32 {
	p := world.MulPoint(mathutil.Vec3{float64(v.Position[0]), float64(v.Position[1]), float64(v.Position[2])})
	return [3]float32{float32(p[0]), float32(p[1]), float32(p[2])}
}

// BakeNormal rotates a vertex normal into world space and renormalizes.
func BakeNormal(world mathutil.Mat4, v nj.Vertex) [3]float32 {
	n := world.MulDir(mathutil.Vec3{float64(v.Normal[0]), float64(v.Normal[1]), float64(v.Normal[2])}).Normalize()
	return [3]float32{float32(n[0]), float32(n[1]), float32(n[2])}
}
