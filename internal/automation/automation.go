package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/sparks/internal/config"
	"github.com/san-kum/sparks/internal/experiment"
	"github.com/san-kum/sparks/internal/logging"
	"github.com/san-kum/sparks/internal/metrics"
	"github.com/san-kum/sparks/internal/scenario"
	"github.com/san-kum/sparks/internal/sim"
	"github.com/san-kum/sparks/internal/storage"
	"gopkg.in/yaml.v3"
)

// Script is a YAML-defined sequence of runs.
type Script struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Steps       []ScriptStep `yaml:"steps"`
}

// ScriptStep is one run in a script. Params are applied with
// config.SetParam on top of the preset.
type ScriptStep struct {
	Scenario string             `yaml:"scenario"`
	Preset   string             `yaml:"preset"`
	Duration float64            `yaml:"duration"`
	Dt       float64            `yaml:"dt"`
	Seed     int64              `yaml:"seed"`
	Params   map[string]float64 `yaml:"params"`
	Save     bool               `yaml:"save"`
}

type StepResult struct {
	Scenario string
	RunID    string
	Result   *sim.Result
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("script %s has no steps", path)
	}

	return &script, nil
}

func (s ScriptStep) config() (*config.Config, error) {
	cfg, err := experiment.ResolveConfig(s.Scenario, s.Preset, "")
	if err != nil {
		return nil, err
	}
	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	if s.Dt > 0 {
		cfg.Dt = s.Dt
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	for k, v := range s.Params {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func runOne(ctx context.Context, name, preset string, cfg *config.Config, registry *scenario.Registry, logger *slog.Logger) (*experiment.Experiment, *sim.Result, error) {
	exp := experiment.New(name, preset, cfg, registry)
	if err := exp.Setup(metrics.Standard(), logger); err != nil {
		return nil, nil, err
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return nil, nil, err
	}
	return exp, result, nil
}

// RunScript executes all steps in order. Steps marked save are written to
// store, which may be nil when nothing is saved.
func RunScript(ctx context.Context, script *Script, registry *scenario.Registry, store *storage.Store, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	results := make([]StepResult, 0, len(script.Steps))

	for i, step := range script.Steps {
		logger.Info("script step", "script", script.Name, "step", i+1, "of", len(script.Steps), "scenario", step.Scenario)

		cfg, err := step.config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp, result, err := runOne(ctx, step.Scenario, step.Preset, cfg, registry, logger)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		sr := StepResult{Scenario: step.Scenario, Result: result}
		if step.Save {
			if store == nil {
				return results, fmt.Errorf("step %d: save requested without a store", i+1)
			}
			runID, err := store.Save(step.Scenario, step.Preset, exp.SimConfig(), result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.RunID = runID
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs one scenario across evenly spaced values of a single
// tunable.
type ParameterSweep struct {
	Scenario  string
	Preset    string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Duration  float64
	Seed      int64
}

type SweepResult struct {
	ParamValue float64
	Steps      int
	Finished   bool
	Metrics    map[string]float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *scenario.Registry, logger *slog.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	base, err := experiment.ResolveConfig(sweep.Scenario, sweep.Preset, "")
	if err != nil {
		return nil, err
	}
	if sweep.Duration > 0 {
		base.Duration = sweep.Duration
	}
	base.Seed = sweep.Seed
	baseVal, err := base.GetParam(sweep.ParamName)
	if err != nil {
		return nil, err
	}
	logger.Info("sweep", "scenario", sweep.Scenario, "param", sweep.ParamName, "base", baseVal, "min", sweep.ParamMin, "max", sweep.ParamMax)

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := base.Clone()
		if err := cfg.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		_, result, err := runOne(ctx, sweep.Scenario, sweep.Preset, cfg, registry, logger)
		if err != nil {
			return results, fmt.Errorf("%s=%.4f: %w", sweep.ParamName, paramVal, err)
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Steps:      result.StepsTaken,
			Finished:   result.Finished,
			Metrics:    result.Metrics,
		})

		logger.Debug("sweep step", "param", sweep.ParamName, "value", paramVal, "step", i+1, "of", sweep.NumSteps)
	}

	return results, nil
}
