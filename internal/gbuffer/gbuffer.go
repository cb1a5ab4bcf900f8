// Package gbuffer implements the deferred geometry stage: four co-resident
// attachment images plus depth, overwritten every frame by rasterizing scene
// draws, and consumed read-only by the lighting resolver.
package gbuffer

import (
	"math"

	"deferred-pbr-renderer/internal/mathutil"
)

// GBuffer holds the per-pixel surface attributes of one frame. All
// attachments share one resolution. Allocated once per viewport size;
// contents never survive a Clear.
type GBuffer struct {
	W, H int

	Albedo   []float32 // RGBA, alpha unused
	Position []float32 // world position, RGBA, alpha unused
	Normal   []float32 // world-space unit normal, RGBA, alpha unused
	Material []float32 // metallic/roughness/AO in RGB, alpha unused
	Depth    []float64 // NDC depth in [0,1], +Inf where uncovered
}

// New allocates a cleared G-buffer.
func New(w, h int) *GBuffer {
	g := &GBuffer{
		W:        w,
		H:        h,
		Albedo:   make([]float32, w*h*4),
		Position: make([]float32, w*h*4),
		Normal:   make([]float32, w*h*4),
		Material: make([]float32, w*h*4),
		Depth:    make([]float64, w*h),
	}
	g.Clear()
	return g
}

// Clear resets all attachments for a new frame.
func (g *GBuffer) Clear() {
	for i := range g.Albedo {
		g.Albedo[i] = 0
		g.Position[i] = 0
		g.Normal[i] = 0
		g.Material[i] = 0
	}
	for i := range g.Depth {
		g.Depth[i] = math.Inf(1)
	}
}

// Texel is one pixel's recovered surface attributes.
type Texel struct {
	Albedo    mathutil.Vec3
	Position  mathutil.Vec3
	Normal    mathutil.Vec3
	Metallic  float64
	Roughness float64
	AO        float64
	Depth     float64
}

// At fetches the surface attributes of pixel (x, y).
func (g *GBuffer) At(x, y int) Texel {
	i := (y*g.W + x) * 4
	return Texel{
		Albedo:    mathutil.Vec3{float64(g.Albedo[i]), float64(g.Albedo[i+1]), float64(g.Albedo[i+2])},
		Position:  mathutil.Vec3{float64(g.Position[i]), float64(g.Position[i+1]), float64(g.Position[i+2])},
		Normal:    mathutil.Vec3{float64(g.Normal[i]), float64(g.Normal[i+1]), float64(g.Normal[i+2])},
		Metallic:  float64(g.Material[i]),
		Roughness: float64(g.Material[i+1]),
		AO:        float64(g.Material[i+2]),
		Depth:     g.Depth[y*g.W+x],
	}
}

// Covered reports whether any geometry wrote to pixel (x, y) this frame.
func (g *GBuffer) Covered(x, y int) bool {
	return !math.IsInf(g.Depth[y*g.W+x], 1)
}

// writeTexel stores one covered pixel. Straight overwrite, no blending.
func (g *GBuffer) writeTexel(x, y int, albedo, pos, normal mathutil.Vec3, metallic, roughness, ao, depth float64) {
	i := (y*g.W + x) * 4
	g.Albedo[i] = float32(albedo[0])
	g.Albedo[i+1] = float32(albedo[1])
	g.Albedo[i+2] = float32(albedo[2])
	g.Albedo[i+3] = 1

	g.Position[i] = float32(pos[0])
	g.Position[i+1] = float32(pos[1])
	g.Position[i+2] = float32(pos[2])
	g.Position[i+3] = 1

	g.Normal[i] = float32(normal[0])
	g.Normal[i+1] = float32(normal[1])
	g.Normal[i+2] = float32(normal[2])
	g.Normal[i+3] = 1

	g.Material[i] = float32(metallic)
	g.Material[i+1] = float32(roughness)
	g.Material[i+2] = float32(ao)
	g.Material[i+3] = 1

	g.Depth[y*g.W+x] = depth
}

// Camera is the per-frame view info, owned by the host, read-only here.
type Camera struct {
	ViewProj mathutil.Mat4
	Position mathutil.Vec3
}
