package config

import "sort"

// RacePlayerDrag holds the race player back harder than the global default.
var RacePlayerDrag = DragConfig{K1: 0.5, K2: 0.1}

var Presets = map[string]map[string]*Config{
	"fountain": {
		"gentle": withDefaults(func(c *Config) {
			c.Scenario = "fountain"
			c.Duration = 15
			c.Fountain.MaxParticles = 100
			c.Fountain.SpawnInterval = 0.05
			c.Fountain.ForceMin, c.Fountain.ForceMax = 200, 400
		}),
		"burst": withDefaults(func(c *Config) {
			c.Scenario = "fountain"
			c.Duration = 8
			c.Fountain.MaxParticles = 1000
			c.Fountain.SpawnInterval = 0.005
			c.Fountain.LifeMin, c.Fountain.LifeMax = 1, 3
		}),
	},
	"eruption": {
		"default": withDefaults(func(c *Config) {
			c.Scenario = "eruption"
			c.Fountain.SpawnPoint = [3]float64{0, -30, 0}
			c.Fountain.MaxParticles = 300
			c.Fountain.LifeMin, c.Fountain.LifeMax = 1, 2
			c.Fountain.ForceMin, c.Fountain.ForceMax = 500, 1500
			c.Fountain.SizeMin, c.Fountain.SizeMax = 2, 10
		}),
	},
	"race": {
		"default": withDefaults(func(c *Config) {
			c.Scenario = "race"
			c.Drag = RacePlayerDrag
		}),
		"sprint": withDefaults(func(c *Config) {
			c.Scenario = "race"
			c.Duration = 60
			c.Drag = RacePlayerDrag
			c.Race.TrackLength = 250
		}),
	},
	"bounce": {
		"elastic": withDefaults(func(c *Config) {
			c.Scenario = "bounce"
			c.Damping = 1
			c.Restitution = 1
		}),
		"dead": withDefaults(func(c *Config) {
			c.Scenario = "bounce"
			c.Restitution = 0.2
		}),
	},
}

func withDefaults(apply func(*Config)) *Config {
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
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
	sort.Strings(names)
	return names
}
