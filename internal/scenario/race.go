package scenario

import (
	"math/rand"
	"sort"

	"github.com/san-kum/sparks/internal/config"
	"github.com/san-kum/sparks/internal/physics"
)

var runnerNames = [4]string{"Red", "Blue", "Green", "Purple"}

// laneY keeps runners apart; the race runs along +X.
var laneY = [4]float64{150, 50, -50, -150}

const playerIndex = 3

type Finish struct {
	Name string
	Time float64
}

type runner struct {
	name     string
	handle   physics.Handle
	p        *physics.Particle
	boost    *physics.Boost
	finished bool
}

// Race pits three boosted AI runners against a player held back by the
// configured drag, whose button presses are simulated at a fixed rate.
// Runners are detached from world gravity since the track holds them up.
type Race struct {
	rc      config.RaceConfig
	drag    config.DragConfig
	damping float64

	runners  [4]*runner
	elapsed  float64
	presses  float64
	manual   int
	finishes []Finish
}

func NewRace(cfg *config.Config) *Race {
	return &Race{rc: cfg.Race, drag: cfg.Drag, damping: cfg.Damping}
}

func (r *Race) Name() string { return "race" }

func (r *Race) Setup(w *physics.World, rng *rand.Rand) {
	r.elapsed, r.presses, r.manual = 0, 0, 0
	r.finishes = r.finishes[:0]
	boostLine := r.rc.BoostAt * r.rc.TrackLength

	for i := range r.runners {
		p := physics.NewParticle(1)
		p.Damping = r.damping
		p.Position = physics.Vec3(0, laneY[i], 0)
		h := w.AddParticle(p)
		w.Registry().Remove(h, w.Gravity())

		rn := &runner{name: runnerNames[i], handle: h, p: p}
		if i == playerIndex {
			w.Registry().Add(h, physics.NewDrag(r.drag.K1, r.drag.K2))
		} else {
			rn.boost = physics.NewBoost(
				physics.AxisX.Unit(),
				uniform(rng, r.rc.AccelMin, r.rc.AccelMax),
				physics.AxisX,
				boostLine,
				uniform(rng, r.rc.BoostMin, r.rc.BoostMax),
			)
			w.Registry().Add(h, rn.boost)
		}
		r.runners[i] = rn
	}
}

func (r *Race) Step(w *physics.World, dt float64) {
	r.elapsed += dt
	r.press(dt)

	for _, rn := range r.runners {
		if rn.finished || rn.p.Position.X < r.rc.TrackLength {
			continue
		}
		rn.finished = true
		r.finishes = append(r.finishes, Finish{Name: rn.name, Time: r.elapsed})
	}
}

// Press queues one manual button press for the player. Queued presses are
// applied on the next Step along with the simulated ones.
func (r *Race) Press() { r.manual++ }

// press folds whole simulated presses into a single force this tick.
func (r *Race) press(dt float64) {
	r.presses += r.rc.PressRate * dt
	auto := float64(int(r.presses))
	r.presses -= auto
	count := auto + float64(r.manual)
	r.manual = 0
	if count == 0 {
		return
	}
	player := r.runners[playerIndex].p
	player.AddForce(physics.Vec3(r.rc.PressForce*count*player.Mass, 0, 0))
}

func (r *Race) Sprites() []Sprite {
	out := make([]Sprite, 0, len(r.runners))
	for _, rn := range r.runners {
		out = append(out, Sprite{Handle: rn.handle, Position: rn.p.Position, Scale: 20, Alpha: 1})
	}
	return out
}

func (r *Race) Done() bool { return len(r.finishes) == len(r.runners) }

// Standings returns finishers ordered by time.
func (r *Race) Standings() []Finish {
	out := make([]Finish, len(r.finishes))
	copy(out, r.finishes)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// Boosted reports, per runner, whether its boost has fired. The player has
// no boost and always reports false.
func (r *Race) Boosted() map[string]bool {
	out := make(map[string]bool, len(r.runners))
	for _, rn := range r.runners {
		out[rn.name] = rn.boost != nil && rn.boost.Boosted(rn.p)
	}
	return out
}

type RunnerStatus struct {
	Name     string
	Distance float64
	Boosted  bool
	Finished bool
	Player   bool
}

// Runners reports every runner in lane order.
func (r *Race) Runners() []RunnerStatus {
	out := make([]RunnerStatus, 0, len(r.runners))
	for i, rn := range r.runners {
		if rn == nil {
			continue
		}
		out = append(out, RunnerStatus{
			Name:     rn.name,
			Distance: rn.p.Position.X,
			Boosted:  rn.boost != nil && rn.boost.Boosted(rn.p),
			Finished: rn.finished,
			Player:   i == playerIndex,
		})
	}
	return out
}

func (r *Race) TrackLength() float64 { return r.rc.TrackLength }
