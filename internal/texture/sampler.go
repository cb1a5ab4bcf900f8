package texture

import (
	"math"

	"deferred-pbr-renderer/internal/mathutil"
)

// Sampler is the shared sampling configuration applied to all image reads.
// Filtering is always bilinear at the finest (only) mip level.
type Sampler struct {
	WrapU bool // repeat horizontally instead of clamp-to-edge
	WrapV bool
}

// DefaultSampler repeats in both directions, matching material UV tiling.
var DefaultSampler = Sampler{WrapU: true, WrapV: true}

// Sample bilinearly filters img at (u, v). RGBA result as a Vec4.
func (s Sampler) Sample(img *Image, u, v float64) mathutil.Vec4 {
	w, h := img.W, img.H
	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	x1 := s.index(x0+1, w, s.WrapU)
	y1 := s.index(y0+1, h, s.WrapV)
	x0 = s.index(x0, w, s.WrapU)
	y0 = s.index(y0, h, s.WrapV)

	p := img.Pix
	i00 := (y0*w + x0) * 4
	i10 := (y0*w + x1) * 4
	i01 := (y1*w + x0) * 4
	i11 := (y1*w + x1) * 4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var out mathutil.Vec4
	for c := 0; c < 4; c++ {
		out[c] = float64(p[i00+c])*w00 + float64(p[i10+c])*w10 +
			float64(p[i01+c])*w01 + float64(p[i11+c])*w11
	}
	return out
}

// SampleRGB is Sample without the alpha channel.
func (s Sampler) SampleRGB(img *Image, u, v float64) mathutil.Vec3 {
	return s.Sample(img, u, v).XYZ()
}

func (s Sampler) index(i, n int, wrap bool) int {
	if wrap {
		i %= n
		if i < 0 {
			i += n
		}
		return i
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
