package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/sparks/internal/config"
	"github.com/san-kum/sparks/internal/scenario"
	"github.com/san-kum/sparks/internal/sim"
)

// Experiment binds one scenario, its configuration and a simulator.
type Experiment struct {
	name      string
	preset    string
	cfg       *config.Config
	registry  *scenario.Registry
	sc        scenario.Scenario
	simulator *sim.Simulator
}

func New(name, preset string, cfg *config.Config, registry *scenario.Registry) *Experiment {
	return &Experiment{
		name:     name,
		preset:   preset,
		cfg:      cfg,
		registry: registry,
	}
}

func (e *Experiment) Setup(metrics []sim.Metric, logger *slog.Logger) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	sc, err := e.registry.Get(e.name, e.cfg)
	if err != nil {
		return err
	}
	e.sc = sc
	e.simulator = sim.New(logger)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.sc, e.SimConfig())
}

func (e *Experiment) SimConfig() sim.Config { return sim.FromConfig(e.cfg) }

func (e *Experiment) Name() string                { return e.name }
func (e *Experiment) Preset() string              { return e.preset }
func (e *Experiment) Config() *config.Config      { return e.cfg }
func (e *Experiment) Scenario() scenario.Scenario { return e.sc }

// Simulator is nil until Setup succeeds.
func (e *Experiment) Simulator() *sim.Simulator {
	return e.simulator
}

// ResolveConfig builds the configuration for a scenario. A named preset
// replaces the defaults, a scenario's "default" preset is used when none is
// named, and a config file is applied last.
func ResolveConfig(name, preset, path string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	switch {
	case preset != "":
		cfg = config.GetPreset(name, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
	case config.GetPreset(name, "default") != nil:
		cfg = config.GetPreset(name, "default")
	}

	if path != "" {
		loaded, err := config.LoadInto(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.Scenario = name
	return cfg, nil
}
