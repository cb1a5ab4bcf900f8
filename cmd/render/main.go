package main

import (
	"flag"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"deferred-pbr-renderer/internal/config"
	"deferred-pbr-renderer/internal/cubemap"
	"deferred-pbr-renderer/internal/export"
	"deferred-pbr-renderer/internal/gbuffer"
	"deferred-pbr-renderer/internal/irradiance"
	"deferred-pbr-renderer/internal/lighting"
	"deferred-pbr-renderer/internal/logger"
	"deferred-pbr-renderer/internal/postprocess"
	"deferred-pbr-renderer/internal/scene"
	"deferred-pbr-renderer/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to render.yaml config file")
	sceneFile := flag.String("scene", "", "Scene YAML file (default: built-in sphere grid)")
	outName := flag.String("name", "render", "Base name of the output file")
	width := flag.Int("width", 0, "Viewport width (default: 960)")
	height := flag.Int("height", 0, "Viewport height (default: 540)")
	workers := flag.Int("workers", 0, "Worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: out)")
	depthDebug := flag.Bool("depth", false, "Also write the depth-debug image")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			logger.Init("info", "")
			logger.Sugar.Fatalf("load config: %v", err)
		}
	}
	cfg.Resolve(config.Flags{
		Width:     *width,
		Height:    *height,
		OutputDir: *outputDir,
		Workers:   *workers,
		LogLevel:  *logLevel,
	})

	logger.Init(cfg.LogLevel, cfg.LogFile)
	defer logger.Sync()

	sc := scene.Default()
	if *sceneFile != "" {
		var err error
		sc, err = scene.Load(*sceneFile)
		if err != nil {
			logger.Sugar.Fatalf("load scene: %v", err)
		}
	}

	logger.Log.Info("render settings",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("supersample", cfg.Supersample),
		zap.Int("workers", cfg.Workers),
		zap.Int("draws", len(sc.Draws)),
	)

	// IBL precompute: projection then convolution, once per environment.
	var ambient *cubemap.CubeMap
	if sc.Environment != "" && sc.AmbientIBL {
		img, err := texture.LoadNRGBA(sc.Environment)
		if err != nil {
			logger.Sugar.Fatalf("load environment: %v", err)
		}
		pano := cubemap.PanoramaFromImage(img)

		start := time.Now()
		env := cubemap.Project(pano, cfg.CubemapSize, cubemap.ProjectOptions{
			BlockSize: cfg.BlockSize,
			Workers:   cfg.Workers,
		})
		logger.Log.Info("environment projected",
			zap.Int("size", cfg.CubemapSize),
			zap.Duration("elapsed", time.Since(start)))

		start = time.Now()
		ambient = irradiance.Convolve(env, cfg.IrradianceSize, irradiance.Options{
			BlockSize: cfg.BlockSize,
			Workers:   cfg.Workers,
		})
		logger.Log.Info("irradiance convolved",
			zap.Int("size", cfg.IrradianceSize),
			zap.Duration("elapsed", time.Since(start)))
	}

	aspect := float64(cfg.Width) / float64(cfg.Height)
	cache := texture.NewCache()
	built, err := sc.Build(aspect, cache)
	if err != nil {
		logger.Sugar.Fatalf("build scene: %v", err)
	}

	// Geometry pass at supersampled resolution
	rw := cfg.Width * cfg.Supersample
	rh := cfg.Height * cfg.Supersample
	g := gbuffer.New(rw, rh)

	start := time.Now()
	for _, d := range built.Draws {
		g.DrawMesh(d.Mesh, d.Params, built.Camera, built.Textures, texture.DefaultSampler)
	}
	logger.Log.Info("geometry pass done", zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	img := lighting.Resolve(g, built.Camera, &built.Lights, lighting.Options{
		BlockSize:  cfg.BlockSize,
		Workers:    cfg.Workers,
		AmbientMap: ambient,
	})
	logger.Log.Info("lighting resolved", zap.Duration("elapsed", time.Since(start)))

	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}

	outPath := filepath.Join(cfg.OutputDir, *outName+".webp")
	if err := export.WriteWebP(outPath, img); err != nil {
		logger.Sugar.Fatalf("write output: %v", err)
	}
	logger.Log.Info("wrote render", zap.String("path", outPath))

	if *depthDebug {
		depth := lighting.ResolveDepth(g, lighting.Options{
			BlockSize: cfg.BlockSize,
			Workers:   cfg.Workers,
		})
		depthPath := filepath.Join(cfg.OutputDir, *outName+"_depth.png")
		if err := export.WritePNG(depthPath, depth); err != nil {
			logger.Sugar.Fatalf("write depth: %v", err)
		}
		logger.Log.Info("wrote depth debug", zap.String("path", depthPath))
	}
}
