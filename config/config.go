// Package config loads carousel engine settings from the environment
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/tilt-carousel/parameter"
	"github.com/lixenwraith/tilt-carousel/sensor"
)

// Config is the engine configuration surface
type Config struct {
	Variation              string  `env:"CAROUSEL_VARIATION" envDefault:"moderate"`
	SensorSampleIntervalMs int     `env:"CAROUSEL_SENSOR_SAMPLE_INTERVAL_MS" envDefault:"20"`
	FPS                    int     `env:"CAROUSEL_FPS" envDefault:"60"`
	Stiffness              float64 `env:"CAROUSEL_STIFFNESS" envDefault:"100"`
	Platform               string  `env:"CAROUSEL_PLATFORM" envDefault:"ios"`
	Perspective            float64 `env:"CAROUSEL_PERSPECTIVE" envDefault:"1000"`
	ItemWidth              float64 `env:"CAROUSEL_ITEM_WIDTH" envDefault:"300"`
	Debug                  bool    `env:"CAROUSEL_DEBUG" envDefault:"false"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Variation:              parameter.DefaultVariation,
		SensorSampleIntervalMs: int(parameter.DefaultSensorSampleInterval / time.Millisecond),
		FPS:                    60,
		Stiffness:              parameter.DefaultStiffness,
		Platform:               sensor.PlatformIOS.String(),
		Perspective:            parameter.DefaultPerspective,
		ItemWidth:              parameter.DefaultItemWidth,
	}
}

// Load parses the process environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFrom parses an explicit environment map, used by tests and embedding hosts
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot run with
// Unknown variation names are not an error: they resolve to the default preset
func (c Config) Validate() error {
	if c.SensorSampleIntervalMs <= 0 {
		return fmt.Errorf("invalid sensor sample interval %dms: must be positive", c.SensorSampleIntervalMs)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("invalid fps %d: must be positive", c.FPS)
	}
	if c.Stiffness <= 0 {
		return fmt.Errorf("invalid stiffness %v: must be positive", c.Stiffness)
	}
	if c.ItemWidth <= 0 {
		return fmt.Errorf("invalid item width %v: must be positive", c.ItemWidth)
	}
	if _, err := sensor.ParsePlatform(c.Platform); err != nil {
		return fmt.Errorf("invalid platform: %w", err)
	}
	return nil
}

// SensorSampleInterval returns the polling interval as a duration
func (c Config) SensorSampleInterval() time.Duration {
	return time.Duration(c.SensorSampleIntervalMs) * time.Millisecond
}

// FrameInterval returns the frame period for the configured FPS
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// SensorPlatform returns the parsed platform, ios when invalid
func (c Config) SensorPlatform() sensor.Platform {
	p, _ := sensor.ParsePlatform(c.Platform)
	return p
}

// ResolvedVariation returns the preset the engine will use
func (c Config) ResolvedVariation() parameter.Variation {
	return parameter.Lookup(c.Variation)
}
