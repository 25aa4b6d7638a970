package physics

// WorldConfig holds the tunables a World is built from.
type WorldConfig struct {
	Gravity Vector3
}

func DefaultWorldConfig() WorldConfig {
	return WorldConfig{Gravity: StandardGravity}
}

// World tracks particles through an Arena, owns the force Registry and one
// built-in Gravity generator that every added particle is subscribed to.
type World struct {
	arena    *Arena
	registry *Registry
	gravity  *Gravity
	tracked  []Handle
}

func NewWorld(cfg WorldConfig) *World {
	arena := NewArena()
	return &World{
		arena:    arena,
		registry: NewRegistry(arena),
		gravity:  NewGravity(cfg.Gravity),
		tracked:  make([]Handle, 0),
	}
}

func (w *World) Registry() *Registry { return w.registry }
func (w *World) Gravity() *Gravity   { return w.gravity }

// AddParticle starts tracking p and subscribes it to the built-in gravity.
func (w *World) AddParticle(p *Particle) Handle {
	h := w.arena.Insert(p)
	w.tracked = append(w.tracked, h)
	w.registry.Add(h, w.gravity)
	return h
}

// RemoveParticle stops tracking h and invalidates it. Registry associations
// for h stop firing and are dropped on the next Update.
func (w *World) RemoveParticle(h Handle) bool {
	p, ok := w.arena.Get(h)
	if !ok {
		return false
	}
	w.registry.release(h, p)
	w.arena.Release(h)
	for i, t := range w.tracked {
		if t == h {
			w.tracked = append(w.tracked[:i], w.tracked[i+1:]...)
			break
		}
	}
	return true
}

func (w *World) Particle(h Handle) (*Particle, bool) { return w.arena.Get(h) }

func (w *World) Len() int { return len(w.tracked) }

// Handles returns a copy of the tracked handles in insertion order.
func (w *World) Handles() []Handle {
	out := make([]Handle, len(w.tracked))
	copy(out, w.tracked)
	return out
}

// Each calls fn for every tracked particle in insertion order.
func (w *World) Each(fn func(Handle, *Particle)) {
	for _, h := range w.tracked {
		if p, ok := w.arena.Get(h); ok {
			fn(h, p)
		}
	}
}

// Update advances the world by dt: destroyed particles are pruned, dead
// associations swept, forces applied, then every remaining particle is
// integrated.
func (w *World) Update(dt float64) {
	w.prune()
	w.registry.Sweep()
	w.registry.UpdateForces(dt)
	for _, h := range w.tracked {
		if p, ok := w.arena.Get(h); ok {
			p.Update(dt)
		}
	}
}

func (w *World) prune() {
	kept := w.tracked[:0]
	for _, h := range w.tracked {
		p, ok := w.arena.Get(h)
		if !ok {
			continue
		}
		if p.IsDestroyed() {
			w.registry.release(h, p)
			w.arena.Release(h)
			continue
		}
		kept = append(kept, h)
	}
	w.tracked = kept
}

// Validate returns a *StateError for the first tracked particle whose
// kinematic state holds NaN or Inf.
func (w *World) Validate() error {
	for _, h := range w.tracked {
		p, ok := w.arena.Get(h)
		if !ok {
			continue
		}
		if field := p.stateField(); field != "" {
			return &StateError{Handle: h, Field: field}
		}
	}
	return nil
}
