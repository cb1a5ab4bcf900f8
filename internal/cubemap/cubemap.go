// Package cubemap implements the six-face directional map: texel direction
// reconstruction from the fixed face-rotation table, direction sampling, and
// the equirectangular-panorama projection pass.
package cubemap

import (
	"math"

	"deferred-pbr-renderer/internal/mathutil"
)

// Face indices. Order matches the rotation table below.
const (
	FacePosX = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
	FaceCount
)

// FaceRotations maps the canonical +Z face basis into each face's frame.
// Immutable configuration data; index by face constant.
var FaceRotations = [FaceCount]mathutil.Mat4{
	// +X: RotY(+π/2)
	{
		0, 0, 1, 0,
		0, 1, 0, 0,
		-1, 0, 0, 0,
		0, 0, 0, 1,
	},
	// -X: RotY(-π/2)
	{
		0, 0, -1, 0,
		0, 1, 0, 0,
		1, 0, 0, 0,
		0, 0, 0, 1,
	},
	// +Y: RotX(-π/2)
	{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, -1, 0, 0,
		0, 0, 0, 1,
	},
	// -Y: RotX(+π/2)
	{
		1, 0, 0, 0,
		0, 0, -1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	},
	// +Z: identity
	{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	},
	// -Z: RotY(π)
	{
		-1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, -1, 0,
		0, 0, 0, 1,
	},
}

// TexelDirection reconstructs the unit direction of texel (x, y) on a face
// of the given edge size. The texel center maps to [0,1]² within the face,
// then to the canonical face plane (top-left corner, right and down axes in
// [-1,1]), then through the face rotation.
func TexelDirection(face, x, y, size int) mathutil.Vec3 {
	u := (float64(x) + 0.5) / float64(size)
	v := (float64(y) + 0.5) / float64(size)
	local := mathutil.Vec3{2*u - 1, 1 - 2*v, 1}
	return FaceRotations[face].MulDir(local).Normalize()
}

// CubeMap is a six-face square directional map of linear HDR texels,
// RGBA float32 interleaved per face.
type CubeMap struct {
	Size  int
	Faces [FaceCount][]float32
}

// New allocates a zeroed cube map with the given face edge size.
func New(size int) *CubeMap {
	cm := &CubeMap{Size: size}
	for f := range cm.Faces {
		cm.Faces[f] = make([]float32, size*size*4)
	}
	return cm
}

// At returns the RGB of a texel.
func (cm *CubeMap) At(face, x, y int) mathutil.Vec3 {
	i := (y*cm.Size + x) * 4
	p := cm.Faces[face]
	return mathutil.Vec3{float64(p[i]), float64(p[i+1]), float64(p[i+2])}
}

// Set stores an RGB texel (alpha forced to 1).
func (cm *CubeMap) Set(face, x, y int, c mathutil.Vec3) {
	i := (y*cm.Size + x) * 4
	p := cm.Faces[face]
	p[i] = float32(c[0])
	p[i+1] = float32(c[1])
	p[i+2] = float32(c[2])
	p[i+3] = 1
}

// SampleFace bilinearly filters a face at uv in [0,1]², clamp-to-edge.
func (cm *CubeMap) SampleFace(face int, u, v float64) mathutil.Vec3 {
	n := cm.Size
	fx := u*float64(n) - 0.5
	fy := v*float64(n) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	clampIdx := func(i int) int {
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}
	x1, y1 := clampIdx(x0+1), clampIdx(y0+1)
	x0, y0 = clampIdx(x0), clampIdx(y0)

	c00 := cm.At(face, x0, y0)
	c10 := cm.At(face, x1, y0)
	c01 := cm.At(face, x0, y1)
	c11 := cm.At(face, x1, y1)

	top := c00.Lerp(c10, dx)
	bot := c01.Lerp(c11, dx)
	return top.Lerp(bot, dy)
}

// SampleDirection samples the cube map along a world direction: major-axis
// face selection, then bilinear within the face. Always the finest (only)
// mip.
func (cm *CubeMap) SampleDirection(dir mathutil.Vec3) mathutil.Vec3 {
	face := FaceForDirection(dir)
	// The face rotation is orthonormal, so its transpose brings the
	// direction back into the canonical +Z frame.
	local := FaceRotations[face].Transpose().MulDir(dir)
	u := (local[0]/local[2] + 1) / 2
	v := (1 - local[1]/local[2]) / 2
	return cm.SampleFace(face, u, v)
}

// FaceForDirection picks the face whose axis dominates the direction.
func FaceForDirection(dir mathutil.Vec3) int {
	ax, ay, az := math.Abs(dir[0]), math.Abs(dir[1]), math.Abs(dir[2])
	switch {
	case ax >= ay && ax >= az:
		if dir[0] >= 0 {
			return FacePosX
		}
		return FaceNegX
	case ay >= az:
		if dir[1] >= 0 {
			return FacePosY
		}
		return FaceNegY
	default:
		if dir[2] >= 0 {
			return FacePosZ
		}
		return FaceNegZ
	}
}
