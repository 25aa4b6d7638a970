package metrics

import (
	"github.com/san-kum/sparks/internal/physics"
	"github.com/san-kum/sparks/internal/scenario"
)

// KineticEnergy reports the total kinetic energy of the world at the most
// recent observation. Immovable particles carry none.
type KineticEnergy struct {
	name   string
	energy float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(w *physics.World, sprites []scenario.Sprite, t float64) {
	e.energy = Kinetic(w)
}

func (e *KineticEnergy) Value() float64 { return e.energy }

func (e *KineticEnergy) Reset() { e.energy = 0 }

// Kinetic sums 0.5*m*|v|^2 over every movable particle in w.
func Kinetic(w *physics.World) float64 {
	total := 0.0
	w.Each(func(_ physics.Handle, p *physics.Particle) {
		if p.IsImmovable() {
			return
		}
		total += 0.5 * p.Mass * p.Velocity.SquareMagnitude()
	})
	return total
}

// PeakEnergy tracks the largest total kinetic energy seen over a run.
type PeakEnergy struct {
	name string
	peak float64
}

func NewPeakEnergy() *PeakEnergy {
	return &PeakEnergy{name: "peak_energy"}
}

func (e *PeakEnergy) Name() string { return e.name }

func (e *PeakEnergy) Observe(w *physics.World, sprites []scenario.Sprite, t float64) {
	if k := Kinetic(w); k > e.peak {
		e.peak = k
	}
}

func (e *PeakEnergy) Value() float64 { return e.peak }

func (e *PeakEnergy) Reset() { e.peak = 0 }
