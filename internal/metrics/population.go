package metrics

import (
	"github.com/san-kum/sparks/internal/physics"
	"github.com/san-kum/sparks/internal/scenario"
)

type LiveCount struct {
	name  string
	count int
}

func NewLiveCount() *LiveCount {
	return &LiveCount{name: "live_count"}
}

func (c *LiveCount) Name() string { return c.name }

func (c *LiveCount) Observe(w *physics.World, sprites []scenario.Sprite, t float64) {
	c.count = len(sprites)
}

func (c *LiveCount) Value() float64 { return float64(c.count) }

func (c *LiveCount) Reset() { c.count = 0 }

type PeakCount struct {
	name string
	peak int
}

func NewPeakCount() *PeakCount {
	return &PeakCount{name: "peak_count"}
}

func (c *PeakCount) Name() string { return c.name }

func (c *PeakCount) Observe(w *physics.World, sprites []scenario.Sprite, t float64) {
	if n := len(sprites); n > c.peak {
		c.peak = n
	}
}

func (c *PeakCount) Value() float64 { return float64(c.peak) }

func (c *PeakCount) Reset() { c.peak = 0 }
