// Package brdf implements the physically-based shading math shared by the
// lighting passes: Schlick Fresnel, GGX microfacet distribution, Smith
// geometric shadowing, and the filmic tone-map curve. All functions are pure.
package brdf

import (
	"math"

	"deferred-pbr-renderer/internal/mathutil"
)

// DielectricF0 is the base reflectance of a dielectric surface at normal
// incidence. Metals blend from this toward their albedo.
const DielectricF0 = 0.04

// FresnelSchlick approximates the fraction of light reflected at an
// interface. cosTheta is the cosine between the halfway vector and the view
// direction, clamped into [0,1] before the exponent.
func FresnelSchlick(cosTheta float64, f0 mathutil.Vec3) mathutil.Vec3 {
	c := mathutil.Clamp(cosTheta, 0, 1)
	p := math.Pow(1-c, 5)
	return mathutil.Vec3{
		f0[0] + (1-f0[0])*p,
		f0[1] + (1-f0[1])*p,
		f0[2] + (1-f0[2])*p,
	}
}

// DistributionGGX evaluates the Trowbridge-Reitz normal distribution at the
// halfway vector h, with alpha = roughness².
func DistributionGGX(n, h mathutil.Vec3, roughness float64) float64 {
	a := roughness * roughness
	a2 := a * a
	nDotH := math.Max(n.Dot(h), 0)
	d := nDotH*nDotH*(a2-1) + 1
	return a2 / (math.Pi * d * d)
}

// GeometrySchlickGGX is the single-direction Schlick-GGX occlusion term with
// the direct-lighting remapping k = (roughness+1)²/8.
func GeometrySchlickGGX(nDotX, roughness float64) float64 {
	r := roughness + 1
	k := r * r / 8
	return nDotX / (nDotX*(1-k)+k)
}

// GeometrySmith combines the view and light occlusion terms.
func GeometrySmith(n, v, l mathutil.Vec3, roughness float64) float64 {
	nDotV := math.Max(n.Dot(v), 0)
	nDotL := math.Max(n.Dot(l), 0)
	return GeometrySchlickGGX(nDotV, roughness) * GeometrySchlickGGX(nDotL, roughness)
}

// BaseReflectance derives f0 from albedo and metalness: dielectric baseline
// blended toward albedo for metals.
func BaseReflectance(albedo mathutil.Vec3, metallic float64) mathutil.Vec3 {
	return mathutil.Splat(DielectricF0).Lerp(albedo, metallic)
}
