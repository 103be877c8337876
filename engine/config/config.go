// Package config handles engine configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all engine settings.
type Config struct {
	Application ApplicationConfig `toml:"application"`
	Projection  ProjectionConfig  `toml:"projection"`
	Camera      CameraConfig      `toml:"camera"`
	Logging     LoggingConfig     `toml:"logging"`
	Renderer    RendererConfig    `toml:"renderer"`
	Scene       SceneConfig       `toml:"scene"`
}

// ApplicationConfig holds window and update loop settings.
type ApplicationConfig struct {
	Name             string  `toml:"name"`
	Width            int     `toml:"width"`
	Height           int     `toml:"height"`
	UpdatesPerSecond float64 `toml:"updates_per_second"`
	MaxFrames        uint64  `toml:"max_frames"` // 0 runs until quit
	Headless         bool    `toml:"headless"`
}

// ProjectionConfig holds perspective settings. The viewport comes from the window size.
type ProjectionConfig struct {
	FieldOfView float32 `toml:"field_of_view"`
	ZNear       float32 `toml:"z_near"`
	ZFar        float32 `toml:"z_far"`
}

// CameraConfig holds the initial camera and its controller speeds.
type CameraConfig struct {
	Position    [3]float32 `toml:"position"`
	Forward     [3]float32 `toml:"forward"`
	Up          [3]float32 `toml:"up"`
	MoveSpeed   float32    `toml:"move_speed"`   // units per second
	RotateSpeed float32    `toml:"rotate_speed"` // degrees per second
	MaxPitch    float32    `toml:"max_pitch"`    // degrees
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// RendererConfig holds settings of the frame build and the headless backend.
type RendererConfig struct {
	Snapshot          string  `toml:"snapshot"` // PNG written by the headless backend, empty for none
	Workers           int     `toml:"workers"`
	ParallelThreshold int     `toml:"parallel_threshold"`
	LineWidth         float32 `toml:"line_width"`
}

// SceneConfig points at the scene description to load.
type SceneConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Application: ApplicationConfig{
			Name:             "lumen",
			Width:            800,
			Height:           800,
			UpdatesPerSecond: 60,
			MaxFrames:        0,
			Headless:         false,
		},
		Projection: ProjectionConfig{
			FieldOfView: 90,
			ZNear:       0.5,
			ZFar:        -0.5,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 0},
			Forward:     [3]float32{0, 0, 1},
			Up:          [3]float32{0, 1, 0},
			MoveSpeed:   5,
			RotateSpeed: 90,
			MaxPitch:    89,
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		Renderer: RendererConfig{
			Snapshot:          "",
			Workers:           4,
			ParallelThreshold: 64,
			LineWidth:         1.5,
		},
		Scene: SceneConfig{
			Path:  "",
			Watch: false,
		},
	}
}

// Validate reports every setting the engine cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Application.Width <= 0 || c.Application.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Application.Width, c.Application.Height))
	}
	if c.Application.UpdatesPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("updates_per_second %.2f must be positive", c.Application.UpdatesPerSecond))
	}
	if err := c.ToProjection().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := core.ParseLogLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Renderer.Workers <= 0 {
		errs = append(errs, fmt.Errorf("renderer workers %d must be positive", c.Renderer.Workers))
	}
	if c.Camera.MaxPitch <= 0 || c.Camera.MaxPitch >= 90 {
		errs = append(errs, fmt.Errorf("camera max_pitch %.2f must be in (0, 90)", c.Camera.MaxPitch))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// ToProjection builds the projection for the configured window.
func (c *Config) ToProjection() math.Projection {
	return math.Projection{
		FieldOfView: c.Projection.FieldOfView,
		Width:       float32(c.Application.Width),
		Height:      float32(c.Application.Height),
		ZNear:       c.Projection.ZNear,
		ZFar:        c.Projection.ZFar,
	}
}

// ToLogConfig converts the logging section for core.InitializeLogging.
func (c *Config) ToLogConfig() (core.LogConfig, error) {
	level, err := core.ParseLogLevel(c.Logging.Level)
	if err != nil {
		return core.LogConfig{}, err
	}
	return core.LogConfig{
		Level:      level,
		File:       c.Logging.File,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
		MaxAgeDays: c.Logging.MaxAgeDays,
		Compress:   c.Logging.Compress,
	}, nil
}

// CameraVectors returns the configured camera position, forward and up.
func (c *Config) CameraVectors() (position, forward, up math.Vec3) {
	v := func(a [3]float32) math.Vec3 { return math.NewVec3(a[0], a[1], a[2]) }
	return v(c.Camera.Position), v(c.Camera.Forward), v(c.Camera.Up)
}
