package physics

// ForceGenerator contributes force to a particle once per association per
// tick. Implementations only ever call AddForce, so the order generators run
// in does not change the summed force.
type ForceGenerator interface {
	UpdateForce(p *Particle, dt float64)
}

// StandardGravity is the acceleration the effects assume by default.
var StandardGravity = Vector3{Y: -9.8}

// Gravity applies a constant acceleration scaled by mass.
type Gravity struct {
	G Vector3
}

func NewGravity(g Vector3) *Gravity { return &Gravity{G: g} }

func (g *Gravity) UpdateForce(p *Particle, dt float64) {
	if p.IsImmovable() {
		return
	}
	p.AddForce(g.G.Scale(p.Mass))
}

// Drag opposes velocity with magnitude (K1+K2)*|v|. Both terms are linear
// in speed; K2 is not a quadratic coefficient here.
type Drag struct {
	K1, K2 float64
}

func NewDrag(k1, k2 float64) *Drag { return &Drag{K1: k1, K2: k2} }

func (d *Drag) UpdateForce(p *Particle, dt float64) {
	speed := p.Velocity.Magnitude()
	if speed <= 0 {
		return
	}
	drag := d.K1*speed + d.K2*speed
	p.AddForce(p.Velocity.Direction().Scale(-drag))
}

// Thrust pushes a particle along Direction with a constant acceleration.
type Thrust struct {
	Direction    Vector3
	Acceleration float64
}

func NewThrust(dir Vector3, accel float64) *Thrust {
	return &Thrust{Direction: dir.Direction(), Acceleration: accel}
}

func (t *Thrust) UpdateForce(p *Particle, dt float64) {
	if p.IsImmovable() {
		return
	}
	p.AddForce(t.Direction.Scale(t.Acceleration * p.Mass))
}

// Boost is a Thrust whose acceleration is multiplied by Factor from the
// first tick a particle reaches Threshold along Axis. The latch is kept per
// particle, so each particle is boosted at most once in its lifetime. A World
// resets the latch when the particle is destroyed or removed; particles
// driven outside a World must be Reset by hand.
type Boost struct {
	Thrust
	Axis      Axis
	Threshold float64
	Factor    float64

	boosted map[*Particle]bool
}

func NewBoost(dir Vector3, accel float64, axis Axis, threshold, factor float64) *Boost {
	return &Boost{
		Thrust:    Thrust{Direction: dir.Direction(), Acceleration: accel},
		Axis:      axis,
		Threshold: threshold,
		Factor:    factor,
		boosted:   make(map[*Particle]bool),
	}
}

func (b *Boost) UpdateForce(p *Particle, dt float64) {
	if p.IsImmovable() {
		return
	}
	accel := b.Acceleration
	if !b.boosted[p] && p.Position.Component(b.Axis) >= b.Threshold {
		b.boosted[p] = true
	}
	if b.boosted[p] {
		accel *= b.Factor
	}
	p.AddForce(b.Direction.Scale(accel * p.Mass))
}

// Boosted reports whether p has already crossed the threshold.
func (b *Boost) Boosted(p *Particle) bool { return b.boosted[p] }

// Reset forgets the latch for p.
func (b *Boost) Reset(p *Particle) { delete(b.boosted, p) }

// EffectiveAcceleration is the acceleration currently applied to p.
func (b *Boost) EffectiveAcceleration(p *Particle) float64 {
	if b.boosted[p] {
		return b.Acceleration * b.Factor
	}
	return b.Acceleration
}
