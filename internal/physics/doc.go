// Package physics provides the particle kernel behind the effect scenarios.
//
// The kernel is deliberately small:
//
//   - [Vector3]: value-type 3D vector math
//   - [Particle]: point mass with damping and a per-tick force accumulator
//   - [ForceGenerator]: per-tick force contribution ([Gravity], [Drag], [Thrust], [Boost])
//   - [Registry]: association table between particle handles and generators
//   - [World]: owns the handle arena and the registry and orders each tick
//   - [Contact]: velocity-level impulse between one or two particles
//
// # Tick Ordering
//
// [World.Update] prunes destroyed particles, sweeps registry associations
// whose handle died, applies every generator, then integrates. Contacts are
// not part of the tick; callers that detect a collision build a [Contact]
// and resolve it directly.
//
//	w := physics.NewWorld(physics.DefaultWorldConfig())
//	h := w.AddParticle(physics.NewParticle(1.0))
//	w.Registry().Add(h, physics.NewDrag(0.2, 0.01))
//	w.Update(1.0 / 60)
//
// # Mass
//
// A mass of zero or less marks a particle as immovable. Every path that
// needs 1/m goes through [Particle.InverseMass], which returns 0 for such
// particles, so no force or impulse can move them.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. Run one World per
// goroutine.
package physics
