package sim

import (
	"testing"

	"github.com/san-kum/sparks/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("DefaultConfig has invalid Dt")
	}
	if cfg.Duration <= 0 {
		t.Error("DefaultConfig has invalid Duration")
	}
	if cfg.SampleEvery <= 0 {
		t.Error("DefaultConfig has invalid SampleEvery")
	}
	if !cfg.ValidateState {
		t.Error("DefaultConfig should validate state")
	}
}

func TestFromConfig(t *testing.T) {
	c := config.DefaultConfig()
	c.Dt = 0.02
	c.Seed = 9
	c.Gravity = [3]float64{0, -3, 0}

	cfg := FromConfig(c)
	if cfg.Dt != 0.02 || cfg.Seed != 9 {
		t.Errorf("FromConfig dropped fields: %+v", cfg)
	}
	if cfg.World.Gravity.Y != -3 {
		t.Errorf("expected gravity -3, got %f", cfg.World.Gravity.Y)
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Time: 1.5, Step: 150, Message: "test error"}
	expected := "step 150 (t=1.5000): test error"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}
}
