// Package scenario holds the effect drivers that sit on top of the physics
// kernel. A scenario decides when particles are spawned and destroyed,
// detects its own contacts and exposes sprites for whatever draws them; the
// kernel itself never sees any of that.
package scenario

import (
	"math/rand"

	"github.com/san-kum/sparks/internal/config"
	"github.com/san-kum/sparks/internal/physics"
)

// Sprite is the render-facing view of one particle.
type Sprite struct {
	Handle   physics.Handle
	Position physics.Vector3
	Scale    float64
	Alpha    float64
}

// Scenario drives a World. Step runs before World.Update on every tick.
type Scenario interface {
	Name() string
	Setup(w *physics.World, rng *rand.Rand)
	Step(w *physics.World, dt float64)
	Sprites() []Sprite
	Done() bool
}

// WorldConfig builds the kernel configuration from a run configuration.
func WorldConfig(cfg *config.Config) physics.WorldConfig {
	return physics.WorldConfig{Gravity: vec(cfg.Gravity)}
}

func vec(a [3]float64) physics.Vector3 { return physics.Vec3(a[0], a[1], a[2]) }

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
