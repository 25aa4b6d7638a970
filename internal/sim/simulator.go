package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/san-kum/sparks/internal/logging"
	"github.com/san-kum/sparks/internal/physics"
	"github.com/san-kum/sparks/internal/scenario"
)

type Simulator struct {
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
}

func New(logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    logger,
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run sets up sc on a fresh world and steps it for cfg.Duration, or until the
// scenario reports Done when cfg.StopWhenDone is set. On cancellation the
// partial result is returned together with ctx.Err().
func (s *Simulator) Run(ctx context.Context, sc scenario.Scenario, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration/cfg.Dt + 0.5)
	samples := steps/cfg.SampleEvery + 1
	result := &Result{
		Frames:  make([]Frame, 0, samples),
		Times:   make([]float64, 0, samples),
		Series:  make(map[string][]float64),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	w := physics.NewWorld(cfg.World)
	sc.Setup(w, rand.New(rand.NewSource(cfg.Seed)))

	t := 0.0
	dt := cfg.Dt
	sprites := sc.Sprites()
	s.observe(w, sprites, t)
	s.sample(result, sprites, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		sc.Step(w, dt)
		w.Update(dt)
		t += dt

		if cfg.ValidateState {
			if err := w.Validate(); err != nil {
				result.Errors = append(result.Errors, SimError{Time: t, Step: i, Message: err.Error()})
				s.logger.Debug("stopping on invalid state", "scenario", sc.Name(), "step", i, "err", err)
				break
			}
		}
		result.StepsTaken++

		sprites = sc.Sprites()
		s.observe(w, sprites, t)

		done := cfg.StopWhenDone && sc.Done()
		if (i+1)%cfg.SampleEvery == 0 || done {
			s.sample(result, sprites, t)
		}
		if done {
			result.Finished = true
			break
		}
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.SampleEvery <= 0 {
		return fmt.Errorf("sample interval must be positive, got %d", cfg.SampleEvery)
	}
	if !cfg.World.Gravity.IsValid() {
		return fmt.Errorf("gravity must be finite, got %v", cfg.World.Gravity)
	}
	return nil
}

func (s *Simulator) observe(w *physics.World, sprites []scenario.Sprite, t float64) {
	for _, m := range s.metrics {
		m.Observe(w, sprites, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(w, sprites, t)
	}
}

func (s *Simulator) sample(result *Result, sprites []scenario.Sprite, t float64) {
	frame := Frame{Time: t, Sprites: make([]scenario.Sprite, len(sprites))}
	copy(frame.Sprites, sprites)
	result.Frames = append(result.Frames, frame)
	result.Times = append(result.Times, t)
	for _, m := range s.metrics {
		result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
	}
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
