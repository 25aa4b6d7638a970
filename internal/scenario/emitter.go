package scenario

import (
	"math"
	"math/rand"

	"github.com/san-kum/sparks/internal/config"
	"github.com/san-kum/sparks/internal/physics"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type spark struct {
	handle physics.Handle
	p      *physics.Particle
	life   float64
	alpha  float64
	scale  float64
	fade   *gween.Tween
	shrink *gween.Tween
}

// launchFunc picks mass and launch force for a new spark.
type launchFunc func(rng *rand.Rand, fc config.FountainConfig) (mass, size float64, force physics.Vector3)

// Emitter spawns sparks at a fixed point, gives each a one-off launch force
// and destroys it when its lifetime runs out. Alpha and scale fade to zero
// over the lifetime.
//
// In wave mode the emitter stops once MaxParticles have been spawned and
// starts a new wave only after every spark of the previous one is gone. In
// continuous mode MaxParticles caps the number alive at once.
type Emitter struct {
	name    string
	fc      config.FountainConfig
	damping float64
	wave    bool
	launch  launchFunc

	rng        *rand.Rand
	sparks     []*spark
	spawnTimer float64
	spawned    int
	waves      int
}

// NewFountain is the upward fountain: unit masses launched in a narrow cone.
func NewFountain(cfg *config.Config) *Emitter {
	return &Emitter{
		name:    "fountain",
		fc:      cfg.Fountain,
		damping: cfg.Damping,
		wave:    true,
		launch:  fountainLaunch,
	}
}

// NewEruption is the sideways burst: heavy sparks thrown up and to the left.
func NewEruption(cfg *config.Config) *Emitter {
	return &Emitter{
		name:    "eruption",
		fc:      cfg.Fountain,
		damping: cfg.Damping,
		launch:  eruptionLaunch,
	}
}

func fountainLaunch(rng *rand.Rand, fc config.FountainConfig) (float64, float64, physics.Vector3) {
	theta := uniform(rng, 0, 2*math.Pi)
	phi := uniform(rng, 0, 2*math.Pi) * 0.25
	magnitude := 3000 + uniform(rng, fc.ForceMin, fc.ForceMax)

	dir := physics.Vec3(
		math.Sin(phi)*math.Cos(theta)*0.4,
		math.Cos(phi)*2,
		math.Sin(phi)*math.Sin(theta)*0.4,
	)
	return 1, uniform(rng, fc.SizeMin, fc.SizeMax), dir.Scale(magnitude)
}

func eruptionLaunch(rng *rand.Rand, fc config.FountainConfig) (float64, float64, physics.Vector3) {
	mass := uniform(rng, fc.SizeMin, fc.SizeMax)
	force := physics.Vec3(
		uniform(rng, fc.ForceMin, fc.ForceMax)*0.2-100,
		uniform(rng, fc.ForceMin, fc.ForceMax),
		0,
	)
	return mass, mass, force
}

func (e *Emitter) Name() string { return e.name }

func (e *Emitter) Setup(w *physics.World, rng *rand.Rand) {
	e.rng = rng
	e.sparks = e.sparks[:0]
	e.spawnTimer = 0
	e.spawned = 0
	e.waves = 0
}

func (e *Emitter) Step(w *physics.World, dt float64) {
	e.expire(dt)

	if e.wave && e.spawned >= e.fc.MaxParticles && len(e.sparks) == 0 {
		e.spawned = 0
		e.waves++
	}

	e.spawnTimer += dt
	if e.spawnTimer < e.fc.SpawnInterval {
		return
	}
	if e.wave && e.spawned >= e.fc.MaxParticles {
		return
	}
	if !e.wave && len(e.sparks) >= e.fc.MaxParticles {
		return
	}
	e.spawnTimer = 0
	e.spawn(w)
}

func (e *Emitter) spawn(w *physics.World) {
	mass, size, force := e.launch(e.rng, e.fc)

	p := physics.NewParticle(mass)
	p.Damping = e.damping
	p.Position = vec(e.fc.SpawnPoint)
	p.AddForce(force)

	life := uniform(e.rng, e.fc.LifeMin, e.fc.LifeMax)
	s := &spark{
		handle: w.AddParticle(p),
		p:      p,
		life:   life,
		alpha:  1,
		scale:  size,
		fade:   gween.New(1, 0, float32(life), ease.Linear),
		shrink: gween.New(float32(size), 0, float32(life), ease.OutQuad),
	}
	e.sparks = append(e.sparks, s)
	e.spawned++
}

// expire ages every spark and destroys the ones whose lifetime ran out.
func (e *Emitter) expire(dt float64) {
	kept := e.sparks[:0]
	for _, s := range e.sparks {
		s.life -= dt
		if s.life <= 0 {
			s.p.Destroy()
			continue
		}
		alpha, _ := s.fade.Update(float32(dt))
		size, _ := s.shrink.Update(float32(dt))
		s.alpha = float64(alpha)
		s.scale = float64(size)
		kept = append(kept, s)
	}
	for i := len(kept); i < len(e.sparks); i++ {
		e.sparks[i] = nil
	}
	e.sparks = kept
}

func (e *Emitter) Sprites() []Sprite {
	out := make([]Sprite, 0, len(e.sparks))
	for _, s := range e.sparks {
		out = append(out, Sprite{
			Handle:   s.handle,
			Position: s.p.Position,
			Scale:    s.scale,
			Alpha:    s.alpha,
		})
	}
	return out
}

// Done is always false; emitters run until the caller stops them.
func (e *Emitter) Done() bool { return false }

// Alive is the number of sparks currently in flight.
func (e *Emitter) Alive() int { return len(e.sparks) }

// Waves counts completed fountain waves.
func (e *Emitter) Waves() int { return e.waves }
