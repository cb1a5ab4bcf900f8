package cubemap

import (
	"image"
	"math"

	"deferred-pbr-renderer/internal/mathutil"
)

// Panorama is an equirectangular environment image in linear HDR space,
// RGBA float32 interleaved.
type Panorama struct {
	W, H int
	Pix  []float32
}

// NewPanorama allocates a zeroed panorama.
func NewPanorama(w, h int) *Panorama {
	return &Panorama{W: w, H: h, Pix: make([]float32, w*h*4)}
}

// PanoramaFromImage decodes an LDR image into a linear panorama
// (sRGB 2.2 decode per channel).
func PanoramaFromImage(img image.Image) *Panorama {
	b := img.Bounds()
	p := NewPanorama(b.Dx(), b.Dy())
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			p.SetRGB(x, y, mathutil.Vec3{
				math.Pow(float64(r)/65535, 2.2),
				math.Pow(float64(g)/65535, 2.2),
				math.Pow(float64(bl)/65535, 2.2),
			})
		}
	}
	return p
}

// SetRGB stores one texel (alpha forced to 1).
func (p *Panorama) SetRGB(x, y int, c mathutil.Vec3) {
	i := (y*p.W + x) * 4
	p.Pix[i] = float32(c[0])
	p.Pix[i+1] = float32(c[1])
	p.Pix[i+2] = float32(c[2])
	p.Pix[i+3] = 1
}

// AtRGB returns one texel.
func (p *Panorama) AtRGB(x, y int) mathutil.Vec3 {
	i := (y*p.W + x) * 4
	return mathutil.Vec3{float64(p.Pix[i]), float64(p.Pix[i+1]), float64(p.Pix[i+2])}
}

// Sample bilinearly filters the panorama at uv in [0,1]², wrapping
// horizontally (the longitude seam) and clamping vertically.
func (p *Panorama) Sample(u, v float64) mathutil.Vec3 {
	fx := u*float64(p.W) - 0.5
	fy := v*float64(p.H) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	wrap := func(i int) int {
		i %= p.W
		if i < 0 {
			i += p.W
		}
		return i
	}
	clamp := func(i int) int {
		if i < 0 {
			return 0
		}
		if i >= p.H {
			return p.H - 1
		}
		return i
	}
	x1 := wrap(x0 + 1)
	x0 = wrap(x0)
	y1 := clamp(y0 + 1)
	y0 = clamp(y0)

	c00 := p.AtRGB(x0, y0)
	c10 := p.AtRGB(x1, y0)
	c01 := p.AtRGB(x0, y1)
	c11 := p.AtRGB(x1, y1)

	top := c00.Lerp(c10, dx)
	bot := c01.Lerp(c11, dx)
	return top.Lerp(bot, dy)
}

// DirectionToEquirectUV converts a unit direction to equirectangular uv:
// longitude from atan2(x, z), latitude directly from y.
func DirectionToEquirectUV(d mathutil.Vec3) (u, v float64) {
	u = math.Atan2(d[0], d[2])/(2*math.Pi) + 0.5
	v = d[1]*0.5 + 0.5
	return u, v
}
