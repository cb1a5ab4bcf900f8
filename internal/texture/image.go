// Package texture holds material images in linear float space and the
// shared bilinear sampler used by every image read in the pipeline.
package texture

import (
	"image"
	"math"
)

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// Image is a linear-space RGBA float32 image, flat interleaved slice.
type Image struct {
	W, H int
	Pix  []float32
}

// NewImage allocates a zeroed image.
func NewImage(w, h int) *Image {
	return &Image{W: w, H: h, Pix: make([]float32, w*h*4)}
}

// Constant returns a 1×1 image of a fixed RGBA value. Used when a material
// supplies scalar parameters instead of a map.
func Constant(r, g, b, a float64) *Image {
	return &Image{W: 1, H: 1, Pix: []float32{float32(r), float32(g), float32(b), float32(a)}}
}

// FromNRGBA converts a decoded 8-bit image. When srgb is set, color
// channels are decoded to linear via the LUT; alpha stays linear. Normal
// and material-parameter maps must be converted with srgb=false.
func FromNRGBA(src *image.NRGBA, srgb bool) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := NewImage(w, h)
	for y := 0; y < h; y++ {
		so := (y+b.Min.Y)*src.Stride + b.Min.X*4
		do := y * w * 4
		for x := 0; x < w; x++ {
			for c := 0; c < 3; c++ {
				v := src.Pix[so+x*4+c]
				if srgb {
					dst.Pix[do+x*4+c] = float32(srgbToLinear[v])
				} else {
					dst.Pix[do+x*4+c] = float32(v) / 255
				}
			}
			dst.Pix[do+x*4+3] = float32(src.Pix[so+x*4+3]) / 255
		}
	}
	return dst
}
