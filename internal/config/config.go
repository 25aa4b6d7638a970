package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 1.0 / 60
	DefaultDuration    = 10.0
	DefaultSampleEvery = 6
	DefaultDamping     = 0.9
	DefaultRestitution = 0.8
	DefaultDragK1      = 0.2
	DefaultDragK2      = 0.01
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Scenario    string         `yaml:"scenario"`
	Dt          float64        `yaml:"dt"`
	Duration    float64        `yaml:"duration"`
	Seed        int64          `yaml:"seed"`
	SampleEvery int            `yaml:"sample_every"`
	Gravity     [3]float64     `yaml:"gravity"`
	Damping     float64        `yaml:"damping"`
	Restitution float64        `yaml:"restitution"`
	Drag        DragConfig     `yaml:"drag"`
	Fountain    FountainConfig `yaml:"fountain"`
	Race        RaceConfig     `yaml:"race"`
	Bounce      BounceConfig   `yaml:"bounce"`
}

type DragConfig struct {
	K1 float64 `yaml:"k1"`
	K2 float64 `yaml:"k2"`
}

// FountainConfig drives both the fountain and the eruption scenarios.
type FountainConfig struct {
	MaxParticles  int        `yaml:"max_particles"`
	SpawnInterval float64    `yaml:"spawn_interval"`
	SpawnPoint    [3]float64 `yaml:"spawn_point"`
	LifeMin       float64    `yaml:"life_min"`
	LifeMax       float64    `yaml:"life_max"`
	ForceMin      float64    `yaml:"force_min"`
	ForceMax      float64    `yaml:"force_max"`
	SizeMin       float64    `yaml:"size_min"`
	SizeMax       float64    `yaml:"size_max"`
}

type RaceConfig struct {
	TrackLength float64 `yaml:"track_length"`
	BoostAt     float64 `yaml:"boost_at"`
	AccelMin    float64 `yaml:"accel_min"`
	AccelMax    float64 `yaml:"accel_max"`
	BoostMin    float64 `yaml:"boost_min"`
	BoostMax    float64 `yaml:"boost_max"`
	PressForce  float64 `yaml:"press_force"`
	PressRate   float64 `yaml:"press_rate"`
}

type BounceConfig struct {
	Height float64 `yaml:"height"`
	Count  int     `yaml:"count"`
	Spread float64 `yaml:"spread"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:    "fountain",
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		SampleEvery: DefaultSampleEvery,
		Gravity:     [3]float64{0, -9.8, 0},
		Damping:     DefaultDamping,
		Restitution: DefaultRestitution,
		Drag:        DragConfig{K1: DefaultDragK1, K2: DefaultDragK2},
		Fountain: FountainConfig{
			MaxParticles:  200,
			SpawnInterval: 0.02,
			SpawnPoint:    [3]float64{0, -80, 0},
			LifeMin:       1,
			LifeMax:       10,
			ForceMin:      800,
			ForceMax:      1200,
			SizeMin:       1,
			SizeMax:       5,
		},
		Race: RaceConfig{
			TrackLength: 500,
			BoostAt:     0.6,
			AccelMin:    20,
			AccelMax:    30,
			BoostMin:    1.1,
			BoostMax:    8,
			PressForce:  400,
			PressRate:   6,
		},
		Bounce: BounceConfig{
			Height: 40,
			Count:  5,
			Spread: 8,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto reads a YAML file over a copy of base, so keys absent from the
// file keep base's values.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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

// Validate rejects tunables the kernel cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, c.Dt)
	case c.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, c.Duration)
	case c.Damping < 0 || c.Damping > 1:
		return fmt.Errorf("%w: damping must be in [0,1], got %f", ErrInvalidConfig, c.Damping)
	case c.Restitution < 0 || c.Restitution > 1:
		return fmt.Errorf("%w: restitution must be in [0,1], got %f", ErrInvalidConfig, c.Restitution)
	case c.SampleEvery <= 0:
		return fmt.Errorf("%w: sample_every must be positive, got %d", ErrInvalidConfig, c.SampleEvery)
	case c.Race.PressRate < 0:
		return fmt.Errorf("%w: race press_rate must not be negative", ErrInvalidConfig)
	case c.Fountain.LifeMax < c.Fountain.LifeMin:
		return fmt.Errorf("%w: fountain life_max below life_min", ErrInvalidConfig)
	}
	return nil
}

// Clone returns a deep copy; presets are shared and must not be mutated.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
