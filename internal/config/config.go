// Package config handles render settings: built-in defaults, an optional
// YAML file, and CLI flag overrides, in that priority order.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable render settings.
type Config struct {
	// Viewport
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	Supersample int `yaml:"supersample"`

	// IBL precompute
	CubemapSize    int `yaml:"cubemap_size"`
	IrradianceSize int `yaml:"irradiance_size"`

	// Dispatch
	BlockSize int `yaml:"block_size"`
	Workers   int `yaml:"workers"`

	// Output
	OutputDir string `yaml:"output_dir"`

	// Logging
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width     int
	Height    int
	OutputDir string
	Workers   int
	LogLevel  string
}

// Load reads a YAML config file. Fields not set in the file keep their
// zero values until Resolve fills defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI flag overrides, then fills any remaining empty
// fields with defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.Width <= 0 {
		c.Width = 960
	}
	if c.Height <= 0 {
		c.Height = 540
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.CubemapSize <= 0 {
		c.CubemapSize = 256
	}
	if c.IrradianceSize <= 0 {
		c.IrradianceSize = 32
	}
	if c.BlockSize <= 0 {
		c.BlockSize = 16
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
