package physics

type association struct {
	handle    Handle
	generator ForceGenerator
}

// Registry associates particle handles with the generators acting on them.
// Many-to-many and duplicate pairs are allowed; a duplicate pair applies its
// force twice. Associations whose handle has been released are dropped the
// next time the registry is swept or updated.
//
// Generators are compared with ==, so they must be comparable values; the
// built-in generators are all pointers.
type Registry struct {
	arena   *Arena
	entries []association
}

// Resetter is implemented by generators that keep per-particle state. The
// World calls Reset for every associated generator when a particle leaves.
type Resetter interface {
	Reset(p *Particle)
}

func NewRegistry(arena *Arena) *Registry {
	return &Registry{
		arena:   arena,
		entries: make([]association, 0),
	}
}

func (r *Registry) Add(h Handle, g ForceGenerator) {
	r.entries = append(r.entries, association{handle: h, generator: g})
}

// Remove drops one matching pair. It reports whether a pair was found.
func (r *Registry) Remove(h Handle, g ForceGenerator) bool {
	for i, a := range r.entries {
		if a.handle == h && a.generator == g {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll drops every association for h and returns how many went.
func (r *Registry) RemoveAll(h Handle) int {
	return r.filter(func(a association) bool { return a.handle != h })
}

func (r *Registry) Clear() { r.entries = r.entries[:0] }

func (r *Registry) Len() int { return len(r.entries) }

// Generators returns the generators associated with h, in insertion order.
func (r *Registry) Generators(h Handle) []ForceGenerator {
	var out []ForceGenerator
	for _, a := range r.entries {
		if a.handle == h {
			out = append(out, a.generator)
		}
	}
	return out
}

// Sweep drops associations whose handle no longer resolves.
func (r *Registry) Sweep() int {
	return r.filter(func(a association) bool { return r.arena.Alive(a.handle) })
}

// release hands p to every stateful generator associated with h.
func (r *Registry) release(h Handle, p *Particle) {
	for _, a := range r.entries {
		if a.handle != h {
			continue
		}
		if rs, ok := a.generator.(Resetter); ok {
			rs.Reset(p)
		}
	}
}

// UpdateForces runs every live association once.
func (r *Registry) UpdateForces(dt float64) {
	kept := r.entries[:0]
	for _, a := range r.entries {
		p, ok := r.arena.Get(a.handle)
		if !ok {
			continue
		}
		a.generator.UpdateForce(p, dt)
		kept = append(kept, a)
	}
	r.truncate(kept)
}

func (r *Registry) filter(keep func(association) bool) int {
	kept := r.entries[:0]
	for _, a := range r.entries {
		if keep(a) {
			kept = append(kept, a)
		}
	}
	return r.truncate(kept)
}

func (r *Registry) truncate(kept []association) int {
	dropped := len(r.entries) - len(kept)
	for i := len(kept); i < len(r.entries); i++ {
		r.entries[i] = association{}
	}
	r.entries = kept
	return dropped
}
