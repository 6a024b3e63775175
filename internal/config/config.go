// Package config provides YAML-based configuration loading for Deep Field,
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains all configuration for a session.
type Config struct {
	TickInterval   time.Duration `yaml:"tick_interval" env:"DEEPFIELD_TICK_INTERVAL"`
	Seed           int64         `yaml:"seed" env:"DEEPFIELD_SEED"`
	StartTelescope string        `yaml:"start_telescope" env:"DEEPFIELD_START_TELESCOPE"`
	CatalogPath    string        `yaml:"catalog_path" env:"DEEPFIELD_CATALOG"`
	DBPath         string        `yaml:"db_path" env:"DEEPFIELD_DB"`
	UpgradeEvery   uint64        `yaml:"upgrade_every" env:"DEEPFIELD_UPGRADE_EVERY"`
	Sky            SkyConfig     `yaml:"sky"`
}

// SkyConfig defines the painted scene. Dimensions are in canvas pixels and
// are scaled to the terminal when drawn.
type SkyConfig struct {
	CanvasWidth  float64 `yaml:"canvas_width"`
	CanvasHeight float64 `yaml:"canvas_height"`
	GroundHeight float64 `yaml:"ground_height"`
	Stars        int     `yaml:"stars"`
	Seed         int64   `yaml:"seed" env:"DEEPFIELD_SKY_SEED"`
}

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		TickInterval:   time.Second,
		Seed:           0,
		StartTelescope: "eye",
		DBPath:         "~/.deepfield/logbook.db",
		UpgradeEvery:   0,
		Sky: SkyConfig{
			CanvasWidth:  800,
			CanvasHeight: 600,
			GroundHeight: 50,
			Stars:        800,
			Seed:         29292929,
		},
	}
}

// ApplyEnv overrides fields from DEEPFIELD_* environment variables.
// Variables that are not set leave the field unchanged.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.TickInterval <= 0:
		return fmt.Errorf("config: tick_interval must be positive, got %s", c.TickInterval)
	case c.StartTelescope == "":
		return errors.New("config: start_telescope must be set")
	case c.Sky.CanvasWidth < 1 || c.Sky.CanvasHeight < 1:
		return fmt.Errorf("config: sky canvas must be at least 1x1, got %.0fx%.0f", c.Sky.CanvasWidth, c.Sky.CanvasHeight)
	case c.Sky.GroundHeight < 0 || c.Sky.GroundHeight > c.Sky.CanvasHeight:
		return fmt.Errorf("config: sky ground_height %.0f outside canvas", c.Sky.GroundHeight)
	case c.Sky.Stars < 0:
		return fmt.Errorf("config: sky stars must not be negative, got %d", c.Sky.Stars)
	}
	return nil
}
