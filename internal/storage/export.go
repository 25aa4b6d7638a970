package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/sparks/internal/sim"
)

type ExportSprite struct {
	Handle   string     `json:"handle"`
	Position [3]float64 `json:"position"`
	Scale    float64    `json:"scale"`
	Alpha    float64    `json:"alpha"`
}

type ExportFrame struct {
	Time    float64        `json:"time"`
	Sprites []ExportSprite `json:"sprites"`
}

type ExportData struct {
	Scenario string               `json:"scenario"`
	Preset   string               `json:"preset,omitempty"`
	Seed     int64                `json:"seed"`
	Dt       float64              `json:"dt"`
	Duration float64              `json:"duration"`
	Steps    int                  `json:"steps"`
	Finished bool                 `json:"finished"`
	Times    []float64            `json:"times"`
	Series   map[string][]float64 `json:"series"`
	Metrics  map[string]float64   `json:"metrics"`
	Frames   []ExportFrame        `json:"frames"`
}

func exportFrames(frames []sim.Frame) []ExportFrame {
	out := make([]ExportFrame, len(frames))
	for i, f := range frames {
		out[i] = ExportFrame{Time: f.Time, Sprites: make([]ExportSprite, len(f.Sprites))}
		for j, sp := range f.Sprites {
			out[i].Sprites[j] = ExportSprite{
				Handle:   sp.Handle.String(),
				Position: [3]float64{sp.Position.X, sp.Position.Y, sp.Position.Z},
				Scale:    sp.Scale,
				Alpha:    sp.Alpha,
			}
		}
	}
	return out
}

// NewExport assembles export data straight from an in-memory run.
func NewExport(scenarioName, preset string, cfg sim.Config, result *sim.Result) *ExportData {
	return &ExportData{
		Scenario: scenarioName,
		Preset:   preset,
		Seed:     cfg.Seed,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Steps:    result.StepsTaken,
		Finished: result.Finished,
		Times:    result.Times,
		Series:   result.Series,
		Metrics:  result.Metrics,
		Frames:   exportFrames(result.Frames),
	}
}

// Export assembles export data for a stored run.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return nil, err
	}
	times, series, err := s.LoadSeries(runID)
	if err != nil {
		return nil, err
	}

	return &ExportData{
		Scenario: meta.Scenario,
		Preset:   meta.Preset,
		Seed:     meta.Seed,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Steps:    meta.Steps,
		Finished: meta.Finished,
		Times:    times,
		Series:   series,
		Metrics:  meta.Metrics,
		Frames:   exportFrames(frames),
	}, nil
}

func WriteJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}

func ExportJSONStdout(data *ExportData) error {
	return WriteJSON(os.Stdout, data)
}
