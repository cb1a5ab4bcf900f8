// Package export writes finished images and cube-map faces to disk.
package export

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"

	"deferred-pbr-renderer/internal/cubemap"
)

// WriteWebP encodes img to path, creating parent directories.
func WriteWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("export: webp encode %s: %w", path, err)
	}
	return nil
}

// WritePNG encodes img to path, creating parent directories.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("export: png encode %s: %w", path, err)
	}
	return nil
}

// FaceImage converts one linear HDR cube-map face to a display image
// (2.2 gamma encode, clamped).
func FaceImage(cm *cubemap.CubeMap, face int) *image.NRGBA {
	n := cm.Size
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := cm.At(face, x, y)
			i := img.PixOffset(x, y)
			img.Pix[i] = encode(c[0])
			img.Pix[i+1] = encode(c[1])
			img.Pix[i+2] = encode(c[2])
			img.Pix[i+3] = 255
		}
	}
	return img
}

// CrossImage lays the six faces out as a horizontal cross:
//
//	    +Y
//	-X  +Z  +X  -Z
//	    -Y
func CrossImage(cm *cubemap.CubeMap) *image.NRGBA {
	n := cm.Size
	img := image.NewNRGBA(image.Rect(0, 0, 4*n, 3*n))
	place := map[int][2]int{
		cubemap.FacePosY: {1, 0},
		cubemap.FaceNegX: {0, 1},
		cubemap.FacePosZ: {1, 1},
		cubemap.FacePosX: {2, 1},
		cubemap.FaceNegZ: {3, 1},
		cubemap.FaceNegY: {1, 2},
	}
	for face, cell := range place {
		ox, oy := cell[0]*n, cell[1]*n
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				c := cm.At(face, x, y)
				i := img.PixOffset(ox+x, oy+y)
				img.Pix[i] = encode(c[0])
				img.Pix[i+1] = encode(c[1])
				img.Pix[i+2] = encode(c[2])
				img.Pix[i+3] = 255
			}
		}
	}
	return img
}

func encode(v float64) uint8 {
	e := math.Pow(math.Max(v, 0), 1/2.2) * 255
	if e > 255 {
		return 255
	}
	return uint8(e + 0.5)
}
