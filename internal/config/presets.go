package config

import "github.com/hydrolab/swe1d/internal/swe"

// Presets are named starting points keyed by scenario. Flags still win
// over preset values at the CLI layer.
var Presets = map[string]map[string]*Config{
	"hump": {
		"default": {
			Scenario: "hump", Spatial: "central", Integrator: "euler",
			N: 100, HalfLength: 10, Duration: 10, FPS: 20, Gravity: swe.DefaultGravity,
		},
		"sharp": {
			Scenario: "hump", Spatial: "weno", Integrator: "rk3",
			N: 400, HalfLength: 10, Duration: 10, FPS: 30, Gravity: swe.DefaultGravity,
		},
		"long": {
			Scenario: "hump", Spatial: "central", Integrator: "rk4",
			N: 200, HalfLength: 10, Duration: 60, FPS: 10, Gravity: swe.DefaultGravity,
		},
	},
	"dambreak": {
		"default": {
			Scenario: "dambreak", Spatial: "weno", Integrator: "rk3",
			N: 200, HalfLength: 10, Duration: 5, FPS: 30, Gravity: swe.DefaultGravity,
		},
		"fine": {
			Scenario: "dambreak", Spatial: "weno", Integrator: "rk3",
			N: 800, HalfLength: 10, Duration: 5, FPS: 30, Gravity: swe.DefaultGravity,
		},
	},
	"wave": {
		"default": {
			Scenario: "wave", Spatial: "weno", Integrator: "rk4",
			N: 200, HalfLength: 10, Duration: 20, FPS: 20, Gravity: swe.DefaultGravity,
		},
	},
	"rock": {
		"default": {
			Scenario: "rock", Spatial: "central", Integrator: "rk2",
			N: 100, HalfLength: 10, Duration: 20, FPS: 20, Gravity: swe.DefaultGravity,
		},
		"splash": {
			Scenario: "rock", Spatial: "weno", Integrator: "rk3",
			N: 400, HalfLength: 10, Duration: 10, FPS: 30, Gravity: swe.DefaultGravity,
		},
	},
}

func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	out := *cfg
	return &out
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}
