package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"deferred-pbr-renderer/internal/cubemap"
	"deferred-pbr-renderer/internal/export"
	"deferred-pbr-renderer/internal/irradiance"
	"deferred-pbr-renderer/internal/logger"
	"deferred-pbr-renderer/internal/texture"
)

var faceNames = [cubemap.FaceCount]string{"posx", "negx", "posy", "negy", "posz", "negz"}

func main() {
	panoPath := flag.String("pano", "", "Equirectangular panorama image (required)")
	outputDir := flag.String("output", "out/ibl", "Output directory")
	size := flag.Int("size", 256, "Environment cube-map face size")
	irrSize := flag.Int("irradiance-size", 32, "Irradiance cube-map face size")
	blockSize := flag.Int("block", 0, "Dispatch block edge (default: 16)")
	workers := flag.Int("workers", 0, "Worker goroutines (default: NumCPU)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")

	flag.Parse()

	logger.Init(*logLevel, "")
	defer logger.Sync()

	if *panoPath == "" {
		logger.Sugar.Fatal("missing -pano")
	}

	img, err := texture.LoadNRGBA(*panoPath)
	if err != nil {
		logger.Sugar.Fatalf("load panorama: %v", err)
	}
	pano := cubemap.PanoramaFromImage(img)
	logger.Log.Info("panorama loaded",
		zap.String("path", *panoPath),
		zap.Int("width", pano.W),
		zap.Int("height", pano.H),
	)

	start := time.Now()
	env := cubemap.Project(pano, *size, cubemap.ProjectOptions{
		BlockSize: *blockSize,
		Workers:   *workers,
	})
	logger.Log.Info("environment projected",
		zap.Int("size", *size),
		zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	irr := irradiance.Convolve(env, *irrSize, irradiance.Options{
		BlockSize: *blockSize,
		Workers:   *workers,
	})
	logger.Log.Info("irradiance convolved",
		zap.Int("size", *irrSize),
		zap.Duration("elapsed", time.Since(start)))

	if err := writeCubeMap(*outputDir, "env", env); err != nil {
		logger.Sugar.Fatalf("write environment: %v", err)
	}
	if err := writeCubeMap(*outputDir, "irradiance", irr); err != nil {
		logger.Sugar.Fatalf("write irradiance: %v", err)
	}
	logger.Log.Info("wrote cube maps", zap.String("dir", *outputDir))
}

// writeCubeMap dumps the six faces as WebP plus a PNG contact sheet.
func writeCubeMap(dir, name string, cm *cubemap.CubeMap) error {
	for face := 0; face < cubemap.FaceCount; face++ {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.webp", name, faceNames[face]))
		if err := export.WriteWebP(path, export.FaceImage(cm, face)); err != nil {
			return err
		}
	}
	return export.WritePNG(filepath.Join(dir, name+"_cross.png"), export.CrossImage(cm))
}
