package config

import (
	"fmt"
	"sort"
)

// params maps tunable names to the field they set.
var params = map[string]func(c *Config) *float64{
	"dt":             func(c *Config) *float64 { return &c.Dt },
	"duration":       func(c *Config) *float64 { return &c.Duration },
	"damping":        func(c *Config) *float64 { return &c.Damping },
	"restitution":    func(c *Config) *float64 { return &c.Restitution },
	"gravity_y":      func(c *Config) *float64 { return &c.Gravity[1] },
	"drag_k1":        func(c *Config) *float64 { return &c.Drag.K1 },
	"drag_k2":        func(c *Config) *float64 { return &c.Drag.K2 },
	"spawn_interval": func(c *Config) *float64 { return &c.Fountain.SpawnInterval },
	"track_length":   func(c *Config) *float64 { return &c.Race.TrackLength },
	"press_force":    func(c *Config) *float64 { return &c.Race.PressForce },
	"press_rate":     func(c *Config) *float64 { return &c.Race.PressRate },
	"bounce_height":  func(c *Config) *float64 { return &c.Bounce.Height },
}

// SetParam sets a named tunable. The result is not validated.
func (c *Config) SetParam(name string, v float64) error {
	field, ok := params[name]
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidConfig, name)
	}
	*field(c) = v
	return nil
}

func (c *Config) GetParam(name string) (float64, error) {
	field, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown parameter %q", ErrInvalidConfig, name)
	}
	return *field(c), nil
}

// ParamNames lists every tunable accepted by SetParam.
func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
