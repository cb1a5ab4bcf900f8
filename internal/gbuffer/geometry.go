package gbuffer

import (
	"deferred-pbr-renderer/internal/mathutil"
	"deferred-pbr-renderer/internal/texture"
)

// Vertex is one model-space mesh vertex. Owned by the mesh asset and
// read-only to the pass.
type Vertex struct {
	Position mathutil.Vec3
	Normal   mathutil.Vec3
	Tangent  mathutil.Vec3
	UV       [2]float64
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []int // triples
}

// DrawParams is the small per-draw constant record. Supplied fresh per
// draw call, never persisted.
type DrawParams struct {
	Model        mathutil.Mat4
	NormalMatrix mathutil.Mat4 // inverse-transpose of Model
	TextureIndex int           // selects the material's texture set
}

// shadedVertex is the per-vertex stage output handed to rasterization.
type shadedVertex struct {
	clip    mathutil.Vec4 // clip-space position
	world   mathutil.Vec3
	uv      [2]float64
	tangent mathutil.Vec3 // TBN basis columns, world space
	bitan   mathutil.Vec3
	normal  mathutil.Vec3
}

// shadeVertex transforms one vertex: clip position through viewProj×model,
// normal and tangent through the normal matrix, tangent re-orthogonalized
// against the normal (Gram-Schmidt), bitangent = −(n×t).
func shadeVertex(v Vertex, draw DrawParams, cam Camera) shadedVertex {
	world := draw.Model.MulPoint(v.Position)
	clip := cam.ViewProj.MulVec4(mathutil.Point4(world))

	n := draw.NormalMatrix.MulDir(v.Normal).Normalize()
	t := draw.NormalMatrix.MulDir(v.Tangent).Normalize()
	t = t.Sub(n.Scale(n.Dot(t))).Normalize()
	b := n.Cross(t).Neg()

	return shadedVertex{
		clip:    clip,
		world:   world,
		uv:      v.UV,
		tangent: t,
		bitan:   b,
		normal:  n,
	}
}

// DrawMesh rasterizes one draw call into the G-buffer. No lighting is
// computed; covered pixels are overwritten with surface attributes.
func (g *GBuffer) DrawMesh(mesh *Mesh, draw DrawParams, cam Camera, textures texture.Array, smp texture.Sampler) {
	set := textures[draw.TextureIndex]
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		v0 := shadeVertex(mesh.Vertices[mesh.Indices[i]], draw, cam)
		v1 := shadeVertex(mesh.Vertices[mesh.Indices[i+1]], draw, cam)
		v2 := shadeVertex(mesh.Vertices[mesh.Indices[i+2]], draw, cam)
		g.rasterizeTriangle(v0, v1, v2, set, smp)
	}
}
