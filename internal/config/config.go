// Package config is the yaml-backed run description shared by the CLI
// commands. Values left out of a file fall back to DefaultConfig.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hydrolab/swe1d/internal/swe"
)

const (
	DefaultN          = 100
	DefaultHalfLength = 10.0
	DefaultDuration   = 10.0
	DefaultFPS        = 20
)

type Config struct {
	Scenario   string  `yaml:"scenario"`
	Spatial    string  `yaml:"spatial"`
	Integrator string  `yaml:"integrator"`
	N          int     `yaml:"n"`
	HalfLength float64 `yaml:"half_length"`
	Duration   float64 `yaml:"duration"`
	FPS        int     `yaml:"fps"`
	// Dt of zero lets the driver derive a safe step from the wave speed.
	Dt      float64 `yaml:"dt"`
	Gravity float64 `yaml:"gravity"`
	// InitH/InitHU override the scenario with an explicit per-cell state.
	// Either both are set with length N, or neither.
	InitH  []float64 `yaml:"init_h,omitempty"`
	InitHU []float64 `yaml:"init_hu,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:   "hump",
		Spatial:    "central",
		Integrator: "euler",
		N:          DefaultN,
		HalfLength: DefaultHalfLength,
		Duration:   DefaultDuration,
		FPS:        DefaultFPS,
		Gravity:    swe.DefaultGravity,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.N < 4 {
		return fmt.Errorf("n=%d: %w", c.N, swe.ErrGridTooSmall)
	}
	if c.HalfLength <= 0 {
		return fmt.Errorf("half_length=%g: %w", c.HalfLength, swe.ErrBadDomain)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration=%g: %w", c.Duration, swe.ErrBadTimeStep)
	}
	if c.Dt < 0 {
		return fmt.Errorf("dt=%g: %w", c.Dt, swe.ErrBadTimeStep)
	}
	if c.FPS < 0 {
		return fmt.Errorf("fps=%d: %w", c.FPS, swe.ErrBadTimeStep)
	}
	if c.Gravity <= 0 {
		return fmt.Errorf("gravity must be positive, got %g", c.Gravity)
	}
	if (c.InitH == nil) != (c.InitHU == nil) {
		return fmt.Errorf("init_h and init_hu must be given together")
	}
	if c.InitH != nil {
		if len(c.InitH) != c.N || len(c.InitHU) != c.N {
			return fmt.Errorf("state override has %d/%d cells, grid has %d: %w",
				len(c.InitH), len(c.InitHU), c.N, swe.ErrStateMismatch)
		}
	}
	return nil
}

// HasOverride reports whether the config carries an explicit initial state
// instead of a named scenario.
func (c *Config) HasOverride() bool { return c.InitH != nil }
