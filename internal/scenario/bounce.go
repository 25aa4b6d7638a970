package scenario

import (
	"math/rand"

	"github.com/san-kum/sparks/internal/config"
	"github.com/san-kum/sparks/internal/physics"
)

var groundNormal = physics.Vec3(0, 1, 0)

// Bounce drops balls onto the y=0 plane. Ground hits are detected here and
// resolved as anchor contacts; balls that sink below the plane are left
// there, only their velocity is corrected.
type Bounce struct {
	bc          config.BounceConfig
	damping     float64
	restitution float64

	resolver *physics.ContactResolver
	balls    []*physics.Particle
	handles  []physics.Handle
	contacts []*physics.Contact
	hits     int
}

func NewBounce(cfg *config.Config) *Bounce {
	return &Bounce{
		bc:          cfg.Bounce,
		damping:     cfg.Damping,
		restitution: cfg.Restitution,
		resolver:    physics.NewContactResolver(0),
	}
}

func (b *Bounce) Name() string { return "bounce" }

func (b *Bounce) Setup(w *physics.World, rng *rand.Rand) {
	b.balls = b.balls[:0]
	b.handles = b.handles[:0]
	b.hits = 0

	for i := 0; i < b.bc.Count; i++ {
		p := physics.NewParticle(uniform(rng, 0.5, 2))
		p.Damping = b.damping
		x := (float64(i) - float64(b.bc.Count-1)/2) * b.bc.Spread
		p.Position = physics.Vec3(x, b.bc.Height+uniform(rng, 0, b.bc.Height/4), 0)
		b.balls = append(b.balls, p)
		b.handles = append(b.handles, w.AddParticle(p))
	}
}

func (b *Bounce) Step(w *physics.World, dt float64) {
	b.contacts = b.contacts[:0]
	for _, p := range b.balls {
		if p.Position.Y > 0 {
			continue
		}
		b.contacts = append(b.contacts, &physics.Contact{
			A:           p,
			Restitution: b.restitution,
			Normal:      groundNormal,
		})
	}
	if len(b.contacts) > 0 {
		b.hits += b.resolver.Resolve(b.contacts, dt)
	}
}

func (b *Bounce) Sprites() []Sprite {
	out := make([]Sprite, 0, len(b.balls))
	for i, p := range b.balls {
		out = append(out, Sprite{Handle: b.handles[i], Position: p.Position, Scale: p.Mass, Alpha: 1})
	}
	return out
}

func (b *Bounce) Done() bool { return false }

// Hits counts resolved ground contacts so far.
func (b *Bounce) Hits() int { return b.hits }
