package lighting

import (
	"image"
	"math"

	"deferred-pbr-renderer/internal/brdf"
	"deferred-pbr-renderer/internal/cubemap"
	"deferred-pbr-renderer/internal/dispatch"
	"deferred-pbr-renderer/internal/gbuffer"
	"deferred-pbr-renderer/internal/mathutil"
)

const (
	// ambientFactor is the flat ambient term applied when no irradiance
	// map is attached.
	ambientFactor = 0.03

	// specularEps keeps the Cook-Torrance denominator finite at grazing
	// angles.
	specularEps = 1e-4
)

// Options control the resolve dispatch and the ambient source.
type Options struct {
	BlockSize int
	Workers   int

	// AmbientMap, when set, replaces the flat ambient constant with a
	// lookup of the pre-convolved irradiance map by the surface normal.
	AmbientMap *cubemap.CubeMap
}

// Resolve shades every covered G-buffer pixel and returns the tone-mapped
// display image. Uncovered pixels stay transparent black.
func Resolve(g *gbuffer.GBuffer, cam gbuffer.Camera, lights *Lights, opts Options) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, g.W, g.H))
	dispatch.Run2D(g.W, g.H, opts.BlockSize, opts.Workers, func(b dispatch.Block) {
		for y := b.Y0; y < b.Y1; y++ {
			for x := b.X0; x < b.X1; x++ {
				if !g.Covered(x, y) {
					continue
				}
				c := ShadePixel(g.At(x, y), cam, lights, opts.AmbientMap)
				i := out.PixOffset(x, y)
				out.Pix[i] = clamp255(c[0] * 255)
				out.Pix[i+1] = clamp255(c[1] * 255)
				out.Pix[i+2] = clamp255(c[2] * 255)
				out.Pix[i+3] = 255
			}
		}
	})
	return out
}

// ShadePixel evaluates the full lighting model for one G-buffer texel:
// Lambert diffuse per directional light, Cook-Torrance per point light,
// ambient, then the filmic tone map.
func ShadePixel(t gbuffer.Texel, cam gbuffer.Camera, lights *Lights, ambientMap *cubemap.CubeMap) mathutil.Vec3 {
	view := cam.Position.Sub(t.Position).Normalize()

	color := DirectionalContribution(t, lights)
	color = color.Add(PointContribution(t, view, lights))

	// Ambient: flat constant, or the irradiance map sampled by the
	// surface normal when one is attached.
	if ambientMap != nil {
		irr := ambientMap.SampleDirection(t.Normal)
		color = color.Add(irr.Mul(t.Albedo).Scale(t.AO))
	} else {
		color = color.Add(t.Albedo.Scale(ambientFactor * t.AO))
	}

	return brdf.ToneMapFilmic(color)
}

// DirectionalContribution accumulates Lambertian diffuse over the active
// directional lights. Entries at index ≥ Count are never read.
func DirectionalContribution(t gbuffer.Texel, lights *Lights) mathutil.Vec3 {
	var sum mathutil.Vec3
	n := lights.Directional.Count
	if n > MaxLights {
		n = MaxLights
	}
	for i := 0; i < n; i++ {
		l := &lights.Directional.Lights[i]
		nDotL := math.Max(t.Normal.Dot(l.Direction.Neg()), 0)
		sum = sum.Add(l.Color.XYZ().Scale(nDotL))
	}
	return sum
}

// PointContribution accumulates the Cook-Torrance reflectance over the
// active point lights.
func PointContribution(t gbuffer.Texel, view mathutil.Vec3, lights *Lights) mathutil.Vec3 {
	f0 := brdf.BaseReflectance(t.Albedo, t.Metallic)

	var sum mathutil.Vec3
	n := lights.Point.Count
	if n > MaxLights {
		n = MaxLights
	}
	for i := 0; i < n; i++ {
		l := &lights.Point.Lights[i]

		toLight := l.Position.Sub(t.Position)
		dist := toLight.Len()
		lightDir := toLight.Scale(1 / dist)
		halfway := lightDir.Add(view).Normalize()
		attenuation := 1 / (dist * dist)

		f := brdf.FresnelSchlick(halfway.Dot(view), f0)
		ndf := brdf.DistributionGGX(t.Normal, halfway, t.Roughness)
		geo := brdf.GeometrySmith(t.Normal, view, lightDir, t.Roughness)

		nDotV := math.Max(t.Normal.Dot(view), 0)
		nDotL := math.Max(t.Normal.Dot(lightDir), 0)
		specular := f.Scale(ndf * geo / (4*nDotV*nDotL + specularEps))

		// Energy split: metals have no diffuse component.
		kd := mathutil.Splat(1).Sub(f).Scale(1 - t.Metallic)

		radiance := l.Color.XYZ().Scale(attenuation)
		contrib := kd.Mul(t.Albedo).Scale(1 / math.Pi).Add(specular).Mul(radiance).Scale(nDotL)
		sum = sum.Add(contrib)
	}
	return sum
}

// ResolveDepth is the stripped depth-debug variant: the raw depth value
// replicated across the color channels for visualization.
func ResolveDepth(g *gbuffer.GBuffer, opts Options) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, g.W, g.H))
	dispatch.Run2D(g.W, g.H, opts.BlockSize, opts.Workers, func(b dispatch.Block) {
		for y := b.Y0; y < b.Y1; y++ {
			for x := b.X0; x < b.X1; x++ {
				d := g.Depth[y*g.W+x]
				v := uint8(0)
				if !math.IsInf(d, 1) {
					v = clamp255(d * 255)
				}
				i := out.PixOffset(x, y)
				out.Pix[i] = v
				out.Pix[i+1] = v
				out.Pix[i+2] = v
				out.Pix[i+3] = 255
			}
		}
	})
	return out
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
