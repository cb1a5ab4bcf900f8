package irradiance

import (
	"testing"

	"deferred-pbr-renderer/internal/cubemap"
	"deferred-pbr-renderer/internal/mathutil"
)

func uniformEnv(size int, c mathutil.Vec3) *cubemap.CubeMap {
	cm := cubemap.New(size)
	for face := 0; face < cubemap.FaceCount; face++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				cm.Set(face, x, y, c)
			}
		}
	}
	return cm
}

func TestConvolve_UniformEnvironment(t *testing.T) {
	// A uniform environment must convolve to (approximately) the same
	// color everywhere: the cosine-weighted quadrature is normalized so
	// that constant radiance c integrates back to c, up to step error.
	c := mathutil.Vec3{0.3, 0.6, 0.9}
	env := uniformEnv(4, c)

	for _, delta := range []float64{0.05, 0.025} {
		out := Convolve(env, 2, Options{Workers: 2, Delta: delta})
		for face := 0; face < cubemap.FaceCount; face++ {
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					got := out.At(face, x, y)
					for ch := 0; ch < 3; ch++ {
						rel := (got[ch] - c[ch]) / c[ch]
						if rel < -0.03 || rel > 0.03 {
							t.Fatalf("delta %v face %d texel (%d,%d) ch %d: got %v, want %v within 3%%",
								delta, face, x, y, ch, got[ch], c[ch])
						}
					}
				}
			}
		}
	}
}

func TestConvolve_PoleNormals(t *testing.T) {
	// The ±Y faces put normals colinear with world-up, exercising the
	// tangent fallback. Output must stay finite and positive.
	env := uniformEnv(4, mathutil.Vec3{1, 1, 1})
	out := Convolve(env, 1, Options{Delta: 0.05})
	for _, face := range []int{cubemap.FacePosY, cubemap.FaceNegY} {
		got := out.At(face, 0, 0)
		for ch := 0; ch < 3; ch++ {
			if !(got[ch] > 0.9 && got[ch] < 1.1) {
				t.Errorf("face %d ch %d = %v, want near 1", face, ch, got[ch])
			}
		}
	}
}

func TestConvolve_Deterministic(t *testing.T) {
	env := uniformEnv(4, mathutil.Vec3{0.2, 0.4, 0.8})
	// Vary only worker count; texel values must be bit-identical.
	a := Convolve(env, 2, Options{Workers: 1, Delta: 0.05})
	b := Convolve(env, 2, Options{Workers: 4, Delta: 0.05})
	for face := 0; face < cubemap.FaceCount; face++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				if a.At(face, x, y) != b.At(face, x, y) {
					t.Fatalf("face %d texel (%d,%d) differs across worker counts", face, x, y)
				}
			}
		}
	}
}
