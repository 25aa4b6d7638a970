package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/sparks/internal/physics"
	"github.com/san-kum/sparks/internal/scenario"
)

func movingWorld() *physics.World {
	w := physics.NewWorld(physics.WorldConfig{})

	a := physics.NewParticle(2)
	a.Velocity = physics.Vec3(3, 0, 0)
	w.AddParticle(a)

	b := physics.NewParticle(1)
	b.Velocity = physics.Vec3(0, 4, 0)
	w.AddParticle(b)

	anchor := physics.NewParticle(0)
	anchor.Velocity = physics.Vec3(100, 0, 0)
	w.AddParticle(anchor)

	return w
}

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy()
	m.Observe(movingWorld(), nil, 0)

	expected := 0.5*2*9 + 0.5*1*16
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected zero after reset, got %f", m.Value())
	}
}

func TestPeakEnergy(t *testing.T) {
	m := NewPeakEnergy()
	w := movingWorld()
	m.Observe(w, nil, 0)
	peak := m.Value()

	m.Observe(physics.NewWorld(physics.WorldConfig{}), nil, 1)
	if m.Value() != peak {
		t.Errorf("peak dropped from %f to %f", peak, m.Value())
	}
}

func TestPopulation(t *testing.T) {
	live := NewLiveCount()
	peak := NewPeakCount()

	three := make([]scenario.Sprite, 3)
	one := make([]scenario.Sprite, 1)

	for _, sprites := range [][]scenario.Sprite{three, one} {
		live.Observe(nil, sprites, 0)
		peak.Observe(nil, sprites, 0)
	}

	if live.Value() != 1 {
		t.Errorf("expected live count 1, got %f", live.Value())
	}
	if peak.Value() != 3 {
		t.Errorf("expected peak count 3, got %f", peak.Value())
	}
}

func TestPeakHeight(t *testing.T) {
	m := NewPeakHeight()
	if m.Value() != 0 {
		t.Errorf("expected 0 before observations, got %f", m.Value())
	}

	m.Observe(nil, []scenario.Sprite{
		{Position: physics.Vec3(0, -80, 0)},
		{Position: physics.Vec3(0, -20, 0)},
	}, 0)
	if m.Value() != -20 {
		t.Errorf("expected peak -20, got %f", m.Value())
	}

	m.Observe(nil, []scenario.Sprite{{Position: physics.Vec3(0, 15, 0)}}, 1)
	if m.Value() != 15 {
		t.Errorf("expected peak 15, got %f", m.Value())
	}
}

func TestEscape(t *testing.T) {
	m := NewEscape(10)
	m.Observe(nil, []scenario.Sprite{{Position: physics.Vec3(1, 1, 1)}}, 0)
	m.Observe(nil, []scenario.Sprite{{Position: physics.Vec3(20, 0, 0)}}, 1)

	if m.Value() != 0.5 {
		t.Errorf("expected escape ratio 0.5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestStandard(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range Standard() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
	for _, name := range []string{"live_count", "peak_height", "kinetic_energy"} {
		if !seen[name] {
			t.Errorf("missing metric %s", name)
		}
	}
}
