package physics

import "fmt"

// Handle is a stable reference to a particle tracked by an Arena. A handle
// stops resolving once its particle is released, even if the slot is later
// reused. The zero Handle never resolves.
type Handle struct {
	index uint32
	gen   uint32
}

func (h Handle) IsZero() bool   { return h.gen == 0 }
func (h Handle) Index() int     { return int(h.index) }
func (h Handle) String() string { return fmt.Sprintf("#%d.%d", h.index, h.gen) }

// ParseHandle reverses Handle.String. It only restores the value; whether
// the handle still resolves depends on the arena it came from.
func ParseHandle(s string) (Handle, error) {
	var h Handle
	n, err := fmt.Sscanf(s, "#%d.%d", &h.index, &h.gen)
	if err != nil || n != 2 || h.gen == 0 || h.String() != s {
		return Handle{}, fmt.Errorf("%w: %q", ErrInvalidHandle, s)
	}
	return h, nil
}

type slot struct {
	p   *Particle
	gen uint32
}

// Arena maps handles to particles. It holds references only; the particles
// themselves belong to the caller.
type Arena struct {
	slots []slot
	free  []uint32
	live  int
}

func NewArena() *Arena {
	return &Arena{
		slots: make([]slot, 0),
		free:  make([]uint32, 0),
	}
}

// Insert stores p and returns its handle. Freed slots are reused with a
// bumped generation.
func (a *Arena) Insert(p *Particle) Handle {
	a.live++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.p = p
		return Handle{index: idx, gen: s.gen}
	}
	a.slots = append(a.slots, slot{p: p, gen: 1})
	return Handle{index: uint32(len(a.slots) - 1), gen: 1}
}

func (a *Arena) Get(h Handle) (*Particle, bool) {
	if h.gen == 0 || int(h.index) >= len(a.slots) {
		return nil, false
	}
	s := a.slots[h.index]
	if s.gen != h.gen || s.p == nil {
		return nil, false
	}
	return s.p, true
}

func (a *Arena) Alive(h Handle) bool {
	_, ok := a.Get(h)
	return ok
}

// Release invalidates h. It reports false if h was already dead.
func (a *Arena) Release(h Handle) bool {
	if !a.Alive(h) {
		return false
	}
	s := &a.slots[h.index]
	s.p = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	a.free = append(a.free, h.index)
	a.live--
	return true
}

func (a *Arena) Len() int { return a.live }
