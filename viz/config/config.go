// Package config loads and validates the visualization engine's YAML
// configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SchedulerConfig tunes the shared animation clock.
type SchedulerConfig struct {
	// FrameIntervalMS is the nominal tick interval in milliseconds.
	FrameIntervalMS int `yaml:"frame_interval_ms" validate:"gte=1,lte=1000"`

	// DroppedFactor is the multiple of the frame budget past which a tick
	// delta counts as a dropped frame.
	DroppedFactor float64 `yaml:"dropped_factor" validate:"gte=1"`
}

// EngineConfig tunes the engine facade.
type EngineConfig struct {
	// Debug enables the observational diagnostics surface.
	Debug bool `yaml:"debug"`

	// Session names the session; empty means a generated id.
	Session string `yaml:"session"`
}

// LoggingConfig tunes structured logging.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
}

// Config is the full engine configuration.
type Config struct {
	Version   int             `yaml:"version"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Engine    EngineConfig    `yaml:"engine"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Version: 1,
		Scheduler: SchedulerConfig{
			FrameIntervalMS: 16,
			DroppedFactor:   2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads, defaults, and validates a YAML config file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d", cfg.Version)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills zero values that validation would otherwise reject.
func (c *Config) applyDefaults() {
	if c.Scheduler.FrameIntervalMS == 0 {
		c.Scheduler.FrameIntervalMS = 16
	}
	if c.Scheduler.DroppedFactor == 0 {
		c.Scheduler.DroppedFactor = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// FrameInterval returns the scheduler tick interval as a duration.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.Scheduler.FrameIntervalMS) * time.Millisecond
}
