package physics

import (
	"fmt"
	"math"
)

// DefaultDamping matches the drag approximation the effects were tuned with.
const DefaultDamping = 0.9

// Particle is a point mass integrated once per tick.
//
// Acceleration is carried into the position step of the next Update and
// zeroed at the end of every Update. Since pending force is only folded into
// Acceleration after the position step, position always trails velocity by
// one tick: a particle at rest under gravity does not move on its first
// tick, it only gains velocity. Callers that want a constant acceleration
// applied to position can set Acceleration before each Update.
type Particle struct {
	Mass         float64
	Position     Vector3
	Velocity     Vector3
	Acceleration Vector3
	Damping      float64

	force     Vector3
	destroyed bool
}

func NewParticle(mass float64) *Particle {
	return &Particle{Mass: mass, Damping: DefaultDamping}
}

// InverseMass returns 1/Mass, or 0 for the immovable sentinel (Mass <= 0).
func (p *Particle) InverseMass() float64 {
	if p.Mass <= 0 {
		return 0
	}
	return 1 / p.Mass
}

func (p *Particle) IsImmovable() bool { return p.Mass <= 0 }

// AddForce adds f to the force pending for this tick.
func (p *Particle) AddForce(f Vector3) { p.force.AddInPlace(f) }

// Force returns the force accumulated since the last Update.
func (p *Particle) Force() Vector3 { return p.force }

// ClearAccumulator zeroes the pending force and the carried acceleration.
func (p *Particle) ClearAccumulator() {
	p.force = Vector3{}
	p.Acceleration = Vector3{}
}

// Update advances the particle by dt seconds.
func (p *Particle) Update(dt float64) {
	p.Position = p.Position.AddScaled(p.Velocity, dt).AddScaled(p.Acceleration, 0.5*dt*dt)

	p.Acceleration.AddInPlace(p.force.Scale(p.InverseMass()))
	p.Velocity = p.Velocity.AddScaled(p.Acceleration, dt).Scale(math.Pow(p.Damping, dt))

	p.ClearAccumulator()
}

// Destroy flags the particle; the World drops it on its next Update.
func (p *Particle) Destroy()          { p.destroyed = true }
func (p *Particle) IsDestroyed() bool { return p.destroyed }

// AtCenter reports whether every coordinate lies strictly within threshold
// of the origin.
func (p *Particle) AtCenter(threshold float64) bool {
	return math.Abs(p.Position.X) < threshold &&
		math.Abs(p.Position.Y) < threshold &&
		math.Abs(p.Position.Z) < threshold
}

// Validate checks the tunables a caller set on the particle.
func (p *Particle) Validate() error {
	if math.IsNaN(p.Mass) || math.IsInf(p.Mass, 0) {
		return fmt.Errorf("%w: mass %v", ErrInvalidParticle, p.Mass)
	}
	if p.Damping < 0 || p.Damping > 1 || math.IsNaN(p.Damping) {
		return fmt.Errorf("%w: damping %v outside [0,1]", ErrInvalidParticle, p.Damping)
	}
	return nil
}

// stateField names the first non-finite kinematic field, or "".
func (p *Particle) stateField() string {
	switch {
	case !p.Position.IsValid():
		return "position"
	case !p.Velocity.IsValid():
		return "velocity"
	case !p.Acceleration.IsValid():
		return "acceleration"
	case !p.force.IsValid():
		return "force"
	}
	return ""
}
