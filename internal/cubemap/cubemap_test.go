package cubemap

import (
	"math"
	"testing"

	"deferred-pbr-renderer/internal/mathutil"
)

func TestTexelDirection_UnitLength(t *testing.T) {
	const size = 8
	for face := 0; face < FaceCount; face++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				d := TexelDirection(face, x, y, size)
				if math.Abs(d.Len()-1) > 1e-12 {
					t.Fatalf("face %d texel (%d,%d): |dir| = %v", face, x, y, d.Len())
				}
			}
		}
	}
}

func TestTexelDirection_FaceAxisDominates(t *testing.T) {
	const size = 8
	for face := 0; face < FaceCount; face++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				d := TexelDirection(face, x, y, size)
				if got := FaceForDirection(d); got != face {
					t.Fatalf("face %d texel (%d,%d): FaceForDirection = %d", face, x, y, got)
				}
			}
		}
	}
}

func TestTexelDirection_CenterHitsAxis(t *testing.T) {
	// A 1x1 face has its single texel at the face center, so the
	// reconstructed direction is the face axis itself.
	axes := [FaceCount]mathutil.Vec3{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
	for face, want := range axes {
		got := TexelDirection(face, 0, 0, 1)
		if got.Sub(want).Len() > 1e-12 {
			t.Errorf("face %d center direction = %v, want %v", face, got, want)
		}
	}
}

func TestFaceForDirection(t *testing.T) {
	cases := []struct {
		dir  mathutil.Vec3
		face int
	}{
		{mathutil.Vec3{1, 0.2, -0.3}, FacePosX},
		{mathutil.Vec3{-1, 0.2, 0.3}, FaceNegX},
		{mathutil.Vec3{0.1, 1, 0.3}, FacePosY},
		{mathutil.Vec3{0.1, -1, 0.3}, FaceNegY},
		{mathutil.Vec3{0.1, 0.2, 1}, FacePosZ},
		{mathutil.Vec3{0.1, 0.2, -1}, FaceNegZ},
	}
	for _, c := range cases {
		if got := FaceForDirection(c.dir); got != c.face {
			t.Errorf("FaceForDirection(%v) = %d, want %d", c.dir, got, c.face)
		}
	}
}

func TestSampleDirection_RecoversTexel(t *testing.T) {
	// Fill each face with a distinct constant; sampling along any texel
	// direction must land on that texel's face and return its color.
	const size = 4
	cm := New(size)
	for face := 0; face < FaceCount; face++ {
		c := mathutil.Vec3{float64(face) * 0.1, 0.5, 1 - float64(face)*0.1}
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				cm.Set(face, x, y, c)
			}
		}
	}
	for face := 0; face < FaceCount; face++ {
		want := cm.At(face, 0, 0)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dir := TexelDirection(face, x, y, size)
				got := cm.SampleDirection(dir)
				if got.Sub(want).Len() > 1e-6 {
					t.Fatalf("face %d texel (%d,%d): sampled %v, want %v", face, x, y, got, want)
				}
			}
		}
	}
}

func TestSampleDirection_InvertsTexelDirection(t *testing.T) {
	// Bringing a texel direction back through the face rotation must
	// reproduce the texel-center uv used to build it.
	const size = 8
	for face := 0; face < FaceCount; face++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dir := TexelDirection(face, x, y, size)
				local := FaceRotations[face].Transpose().MulDir(dir)
				u := (local[0]/local[2] + 1) / 2
				v := (1 - local[1]/local[2]) / 2
				wantU := (float64(x) + 0.5) / size
				wantV := (float64(y) + 0.5) / size
				if math.Abs(u-wantU) > 1e-12 || math.Abs(v-wantV) > 1e-12 {
					t.Fatalf("face %d texel (%d,%d): uv (%v,%v), want (%v,%v)",
						face, x, y, u, v, wantU, wantV)
				}
			}
		}
	}
}

func TestDirectionToEquirectUV(t *testing.T) {
	cases := []struct {
		dir  mathutil.Vec3
		u, v float64
	}{
		{mathutil.Vec3{0, 0, 1}, 0.5, 0.5},  // forward: image center
		{mathutil.Vec3{1, 0, 0}, 0.75, 0.5}, // right: quarter turn
		{mathutil.Vec3{-1, 0, 0}, 0.25, 0.5},
		{mathutil.Vec3{0, 1, 0}, 0.5, 1}, // up: top row
		{mathutil.Vec3{0, -1, 0}, 0.5, 0},
	}
	for _, c := range cases {
		u, v := DirectionToEquirectUV(c.dir)
		if math.Abs(u-c.u) > 1e-12 || math.Abs(v-c.v) > 1e-12 {
			t.Errorf("DirectionToEquirectUV(%v) = (%v,%v), want (%v,%v)", c.dir, u, v, c.u, c.v)
		}
	}
}

func TestPanoramaSample_WrapsLongitude(t *testing.T) {
	p := NewPanorama(4, 2)
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			p.SetRGB(x, y, mathutil.Vec3{float64(x), 0, 0})
		}
	}
	// Sampling at u=0 sits on the seam between the last and first columns
	left := p.Sample(0, 0.5)
	want := (0.0 + 3.0) / 2
	if math.Abs(left[0]-want) > 1e-6 {
		t.Errorf("seam sample = %v, want %v", left[0], want)
	}
}

func TestProject_RoundTrip(t *testing.T) {
	// Every projected texel must equal one bilinear read of the panorama
	// at the texel direction's equirectangular uv.
	pano := NewPanorama(64, 32)
	for y := 0; y < pano.H; y++ {
		for x := 0; x < pano.W; x++ {
			pano.SetRGB(x, y, mathutil.Vec3{
				float64(x) / float64(pano.W),
				float64(y) / float64(pano.H),
				float64(x+y) / float64(pano.W+pano.H),
			})
		}
	}

	const size = 8
	out := Project(pano, size, ProjectOptions{Workers: 2})
	for face := 0; face < FaceCount; face++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dir := TexelDirection(face, x, y, size)
				u, v := DirectionToEquirectUV(dir)
				want := pano.Sample(u, v)
				got := out.At(face, x, y)
				if got.Sub(want).Len() > 1e-6 {
					t.Fatalf("face %d texel (%d,%d): got %v, want %v", face, x, y, got, want)
				}
			}
		}
	}
}

func TestProject_UniformPanorama(t *testing.T) {
	pano := NewPanorama(16, 8)
	c := mathutil.Vec3{0.25, 0.5, 0.75}
	for y := 0; y < pano.H; y++ {
		for x := 0; x < pano.W; x++ {
			pano.SetRGB(x, y, c)
		}
	}
	out := Project(pano, 4, ProjectOptions{})
	for face := 0; face < FaceCount; face++ {
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				if got := out.At(face, x, y); got.Sub(c).Len() > 1e-6 {
					t.Fatalf("face %d texel (%d,%d) = %v, want %v", face, x, y, got, c)
				}
			}
		}
	}
}
