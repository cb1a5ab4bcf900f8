// Package irradiance pre-filters an environment cube map into a diffuse
// irradiance map: every output texel holds the cosine-weighted hemispherical
// integral of incoming radiance around that texel's direction.
package irradiance

import (
	"math"

	"deferred-pbr-renderer/internal/cubemap"
	"deferred-pbr-renderer/internal/dispatch"
	"deferred-pbr-renderer/internal/mathutil"
)

// SampleDelta is the fixed angular step of the hemisphere quadrature, in
// radians. Smaller steps trade compute for integration error; the cost is
// deterministic, not data-dependent.
const SampleDelta = 0.01

var worldUp = mathutil.Vec3{0, 1, 0}

// fallbackRight replaces the tangent when the normal is colinear with
// world-up and the cross product degenerates.
var fallbackRight = mathutil.Vec3{1, 0, 0}

// Options control the parallel dispatch of the convolution pass.
type Options struct {
	BlockSize int     // block edge in texels, 0 = dispatch.DefaultBlockSize
	Workers   int     // 0 = NumCPU
	Delta     float64 // angular step override, 0 = SampleDelta
}

// Convolve integrates the source environment over the hemisphere around
// every output texel direction. Fixed-step quadrature over azimuth [0,2π)
// and elevation [0,π/2), each sample weighted by cosθ·sinθ, normalized by
// π/count. Deterministic for a given step.
func Convolve(src *cubemap.CubeMap, size int, opts Options) *cubemap.CubeMap {
	delta := opts.Delta
	if delta <= 0 {
		delta = SampleDelta
	}

	out := cubemap.New(size)
	dispatch.Run3D(size, size, cubemap.FaceCount, opts.BlockSize, opts.Workers, func(b dispatch.Block) {
		for y := b.Y0; y < b.Y1; y++ {
			for x := b.X0; x < b.X1; x++ {
				normal := cubemap.TexelDirection(b.Layer, x, y, size)
				out.Set(b.Layer, x, y, convolveTexel(src, normal, delta))
			}
		}
	})
	return out
}

// convolveTexel evaluates the integral for a single normal.
func convolveTexel(src *cubemap.CubeMap, normal mathutil.Vec3, delta float64) mathutil.Vec3 {
	right := worldUp.Cross(normal)
	if right.Len() < 1e-9 {
		right = fallbackRight
	}
	right = right.Normalize()
	up := normal.Cross(right).Normalize()

	var sum mathutil.Vec3
	count := 0
	for phi := 0.0; phi < 2*math.Pi; phi += delta {
		sinPhi, cosPhi := math.Sincos(phi)
		for theta := 0.0; theta < math.Pi/2; theta += delta {
			sinTheta, cosTheta := math.Sincos(theta)

			// Tangent-space hemisphere sample into world space.
			tx := sinTheta * cosPhi
			ty := sinTheta * sinPhi
			dir := right.Scale(tx).Add(up.Scale(ty)).Add(normal.Scale(cosTheta))

			radiance := src.SampleDirection(dir)
			sum = sum.Add(radiance.Scale(cosTheta * sinTheta))
			count++
		}
	}

	// Closed-form normalization of the cosθ·sinθ-weighted discretization.
	return sum.Scale(math.Pi / float64(count))
}
