package sim

import (
	"fmt"

	"github.com/san-kum/sparks/internal/config"
	"github.com/san-kum/sparks/internal/physics"
	"github.com/san-kum/sparks/internal/scenario"
)

type Metric interface {
	Name() string
	Observe(w *physics.World, sprites []scenario.Sprite, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(w *physics.World, sprites []scenario.Sprite, t float64)
}

type ObserverFunc func(w *physics.World, sprites []scenario.Sprite, t float64)

func (f ObserverFunc) OnStep(w *physics.World, sprites []scenario.Sprite, t float64) {
	f(w, sprites, t)
}

type Config struct {
	Dt            float64
	Duration      float64
	Seed          int64
	SampleEvery   int
	World         physics.WorldConfig
	ValidateState bool
	StopWhenDone  bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            config.DefaultDt,
		Duration:      config.DefaultDuration,
		SampleEvery:   config.DefaultSampleEvery,
		World:         physics.DefaultWorldConfig(),
		ValidateState: true,
		StopWhenDone:  true,
	}
}

// FromConfig maps a file configuration onto runner settings.
func FromConfig(c *config.Config) Config {
	cfg := DefaultConfig()
	cfg.Dt = c.Dt
	cfg.Duration = c.Duration
	cfg.Seed = c.Seed
	cfg.SampleEvery = c.SampleEvery
	cfg.World = scenario.WorldConfig(c)
	return cfg
}

// Frame is a sampled snapshot of every visible sprite.
type Frame struct {
	Time    float64
	Sprites []scenario.Sprite
}

type Result struct {
	Frames     []Frame
	Times      []float64
	Series     map[string][]float64
	Metrics    map[string]float64
	StepsTaken int
	Finished   bool
	Errors     []error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
