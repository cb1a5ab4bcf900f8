package export

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"deferred-pbr-renderer/internal/cubemap"
	"deferred-pbr-renderer/internal/mathutil"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func TestWriteWebP_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "render.webp")
	if err := WriteWebP(path, testImage()); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("wrote empty file")
	}
}

func TestWritePNG_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depth.png")
	if err := WritePNG(path, testImage()); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := decoded.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("decoded bounds = %v, want 8x8", b)
	}
}

func TestFaceImage_GammaEndpoints(t *testing.T) {
	cm := cubemap.New(2)
	cm.Set(0, 0, 0, mathutil.Vec3{0, 0, 0})
	cm.Set(0, 1, 0, mathutil.Vec3{1, 1, 1})
	cm.Set(0, 0, 1, mathutil.Vec3{0.5, 0.5, 0.5})
	cm.Set(0, 1, 1, mathutil.Vec3{10, 10, 10}) // HDR clamps to white

	img := FaceImage(cm, 0)
	if got := img.NRGBAAt(0, 0).R; got != 0 {
		t.Errorf("black texel = %d, want 0", got)
	}
	if got := img.NRGBAAt(1, 0).R; got != 255 {
		t.Errorf("white texel = %d, want 255", got)
	}
	mid := img.NRGBAAt(0, 1).R
	// Gamma encoding lifts mid values above linear
	if mid <= 128 || mid >= 255 {
		t.Errorf("mid texel = %d, want gamma-lifted gray", mid)
	}
	if got := img.NRGBAAt(1, 1).R; got != 255 {
		t.Errorf("HDR texel = %d, want clamped 255", got)
	}
}

func TestCrossImage_Layout(t *testing.T) {
	const n = 2
	cm := cubemap.New(n)
	for face := 0; face < cubemap.FaceCount; face++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				cm.Set(face, x, y, mathutil.Vec3{1, 1, 1})
			}
		}
	}

	img := CrossImage(cm)
	if b := img.Bounds(); b.Dx() != 4*n || b.Dy() != 3*n {
		t.Fatalf("bounds = %v, want %dx%d", b, 4*n, 3*n)
	}
	// +Y occupies the top middle cell, corners stay empty
	if got := img.NRGBAAt(n, 0); got.A != 255 || got.R != 255 {
		t.Errorf("top cell = %v, want opaque white", got)
	}
	if got := img.NRGBAAt(0, 0); got.A != 0 {
		t.Errorf("top-left corner alpha = %d, want 0", got.A)
	}
}
