package metrics

import (
	"math"

	"github.com/san-kum/sparks/internal/physics"
	"github.com/san-kum/sparks/internal/scenario"
)

// PeakHeight is the highest sprite Y seen over a run.
type PeakHeight struct {
	name string
	peak float64
	seen bool
}

func NewPeakHeight() *PeakHeight {
	return &PeakHeight{name: "peak_height"}
}

func (h *PeakHeight) Name() string { return h.name }

func (h *PeakHeight) Observe(w *physics.World, sprites []scenario.Sprite, t float64) {
	for _, s := range sprites {
		if !h.seen || s.Position.Y > h.peak {
			h.peak = s.Position.Y
			h.seen = true
		}
	}
}

func (h *PeakHeight) Value() float64 {
	if !h.seen {
		return 0
	}
	return h.peak
}

func (h *PeakHeight) Reset() {
	h.peak = 0
	h.seen = false
}

// Escape is the fraction of observations in which any sprite sat farther
// than radius from the origin.
type Escape struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewEscape(radius float64) *Escape {
	return &Escape{
		name:   "escape",
		radius: radius,
	}
}

func (e *Escape) Name() string { return e.name }

func (e *Escape) Observe(w *physics.World, sprites []scenario.Sprite, t float64) {
	e.samples++
	r2 := e.radius * e.radius
	for _, s := range sprites {
		if s.Position.SquareMagnitude() > r2 || math.IsNaN(s.Position.X) {
			e.violations++
			break
		}
	}
}

func (e *Escape) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.violations) / float64(e.samples)
}

func (e *Escape) Reset() {
	e.violations = 0
	e.samples = 0
}
