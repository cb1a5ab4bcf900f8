package scene

import (
	"fmt"
	"math"

	"deferred-pbr-renderer/internal/gbuffer"
	"deferred-pbr-renderer/internal/mathutil"
)

// BuildMesh constructs a unit procedural mesh by name. Front faces wind
// counter-clockwise viewed from outside.
func BuildMesh(name string) (*gbuffer.Mesh, error) {
	switch name {
	case "sphere":
		return Sphere(32, 48), nil
	case "cube":
		return Cube(), nil
	case "plane":
		return Plane(), nil
	default:
		return nil, fmt.Errorf("scene: unknown mesh %q", name)
	}
}

// Sphere builds a unit UV sphere with the given latitude and longitude
// segment counts.
func Sphere(latSegs, lonSegs int) *gbuffer.Mesh {
	m := &gbuffer.Mesh{}

	for i := 0; i <= latSegs; i++ {
		theta := math.Pi * float64(i) / float64(latSegs)
		sinT, cosT := math.Sincos(theta)
		for j := 0; j <= lonSegs; j++ {
			phi := 2 * math.Pi * float64(j) / float64(lonSegs)
			sinP, cosP := math.Sincos(phi)

			pos := mathutil.Vec3{sinT * cosP, cosT, sinT * sinP}
			// dP/dφ, the direction of increasing longitude
			tangent := mathutil.Vec3{-sinP, 0, cosP}
			m.Vertices = append(m.Vertices, gbuffer.Vertex{
				Position: pos,
				Normal:   pos,
				Tangent:  tangent,
				UV:       [2]float64{float64(j) / float64(lonSegs), float64(i) / float64(latSegs)},
			})
		}
	}

	stride := lonSegs + 1
	for i := 0; i < latSegs; i++ {
		for j := 0; j < lonSegs; j++ {
			v00 := i*stride + j
			v10 := (i+1)*stride + j
			v01 := i*stride + j + 1
			v11 := (i+1)*stride + j + 1
			m.Indices = append(m.Indices,
				v00, v11, v10,
				v00, v01, v11,
			)
		}
	}
	return m
}

// Cube builds a unit cube spanning [-1,1]³ with per-face normals, tangents
// and UVs.
func Cube() *gbuffer.Mesh {
	type face struct {
		normal  mathutil.Vec3
		tangent mathutil.Vec3 // maps UV u axis
	}
	faces := []face{
		{normal: mathutil.Vec3{1, 0, 0}, tangent: mathutil.Vec3{0, 0, -1}},
		{normal: mathutil.Vec3{-1, 0, 0}, tangent: mathutil.Vec3{0, 0, 1}},
		{normal: mathutil.Vec3{0, 1, 0}, tangent: mathutil.Vec3{1, 0, 0}},
		{normal: mathutil.Vec3{0, -1, 0}, tangent: mathutil.Vec3{1, 0, 0}},
		{normal: mathutil.Vec3{0, 0, 1}, tangent: mathutil.Vec3{1, 0, 0}},
		{normal: mathutil.Vec3{0, 0, -1}, tangent: mathutil.Vec3{-1, 0, 0}},
	}

	m := &gbuffer.Mesh{}
	for _, f := range faces {
		bitan := f.normal.Cross(f.tangent)
		base := len(m.Vertices)
		// Corners in UV order: (0,0) (1,0) (1,1) (0,1)
		corners := [4][2]float64{{-1, 1}, {1, 1}, {1, -1}, {-1, -1}}
		uvs := [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
		for ci, c := range corners {
			pos := f.normal.Add(f.tangent.Scale(c[0])).Add(bitan.Scale(c[1]))
			m.Vertices = append(m.Vertices, gbuffer.Vertex{
				Position: pos,
				Normal:   f.normal,
				Tangent:  f.tangent,
				UV:       uvs[ci],
			})
		}
		m.Indices = append(m.Indices,
			base, base+2, base+1,
			base, base+3, base+2,
		)
	}
	return m
}

// Plane builds a unit quad in the XZ plane facing +Y.
func Plane() *gbuffer.Mesh {
	n := mathutil.Vec3{0, 1, 0}
	t := mathutil.Vec3{1, 0, 0}
	verts := []gbuffer.Vertex{
		{Position: mathutil.Vec3{-1, 0, -1}, Normal: n, Tangent: t, UV: [2]float64{0, 0}},
		{Position: mathutil.Vec3{1, 0, -1}, Normal: n, Tangent: t, UV: [2]float64{1, 0}},
		{Position: mathutil.Vec3{1, 0, 1}, Normal: n, Tangent: t, UV: [2]float64{1, 1}},
		{Position: mathutil.Vec3{-1, 0, 1}, Normal: n, Tangent: t, UV: [2]float64{0, 1}},
	}
	return &gbuffer.Mesh{
		Vertices: verts,
		Indices:  []int{0, 3, 2, 0, 2, 1},
	}
}
