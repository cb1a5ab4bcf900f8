package brdf

import (
	"math"

	"deferred-pbr-renderer/internal/mathutil"
)

// Filmic tone-map constants. The toe clip forces pure black to stay black.
const (
	filmicToe    = 0.004
	displayGamma = 2.2
)

// ToneMapChannel compresses one linear HDR channel to a display value via
// the filmic rational curve, then applies the 2.2 display power.
func ToneMapChannel(c float64) float64 {
	x := math.Max(0, c-filmicToe)
	y := (x * (6.2*x + 0.5)) / (x*(6.2*x+1.7) + 0.06)
	return math.Pow(y, displayGamma)
}

// ToneMapFilmic applies ToneMapChannel per channel.
func ToneMapFilmic(c mathutil.Vec3) mathutil.Vec3 {
	return mathutil.Vec3{
		ToneMapChannel(c[0]),
		ToneMapChannel(c[1]),
		ToneMapChannel(c[2]),
	}
}
