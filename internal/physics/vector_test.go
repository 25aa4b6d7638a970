package physics

import (
	"math"
	"testing"
)

func TestVector3_Arithmetic(t *testing.T) {
	a := Vec3(1, 2, 3)
	b := Vec3(4, 5, 6)

	if got := a.Add(b); got != Vec3(5, 7, 9) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != Vec3(3, 3, 3) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != Vec3(2, 4, 6) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := a.Mul(b); got != Vec3(4, 10, 18) {
		t.Errorf("Mul failed: got %v", got)
	}
	if got := a.AddScaled(b, 0.5); got != Vec3(3, 4.5, 6) {
		t.Errorf("AddScaled failed: got %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot failed: got %v", got)
	}
	if got := Vec3(1, 0, 0).Cross(Vec3(0, 1, 0)); got != Vec3(0, 0, 1) {
		t.Errorf("Cross failed: got %v", got)
	}
}

func TestVector3_InPlace(t *testing.T) {
	v := Vec3(1, 1, 1)
	v.AddInPlace(Vec3(1, 2, 3))
	v.SubInPlace(Vec3(0, 1, 0))
	v.ScaleInPlace(2)
	if v != Vec3(4, 4, 8) {
		t.Errorf("compound ops failed: got %v", v)
	}
}

func TestVector3_Magnitude(t *testing.T) {
	tests := []struct {
		v        Vector3
		expected float64
	}{
		{Vec3(3, 4, 0), 5},
		{Vec3(0, 0, 0), 0},
		{Vec3(1, 2, 2), 3},
		{Vec3(-2, 0, 0), 2},
	}

	for _, tt := range tests {
		if got := tt.v.Magnitude(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Magnitude(%v) = %v, want %v", tt.v, got, tt.expected)
		}
	}
}

func TestVector3_Direction(t *testing.T) {
	d := Vec3(0, 3, 4).Direction()
	if math.Abs(d.Magnitude()-1) > 1e-12 {
		t.Errorf("expected unit direction, got magnitude %v", d.Magnitude())
	}
	if math.Abs(d.Y-0.6) > 1e-12 || math.Abs(d.Z-0.8) > 1e-12 {
		t.Errorf("unexpected direction %v", d)
	}

	if got := (Vector3{}).Direction(); !got.IsZero() {
		t.Errorf("zero vector direction should be zero, got %v", got)
	}
}

func TestVector3_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vector3
		valid bool
	}{
		{"zero", Vector3{}, true},
		{"normal", Vec3(1, -2, 3), true},
		{"NaN", Vec3(math.NaN(), 0, 0), false},
		{"+Inf", Vec3(0, math.Inf(1), 0), false},
		{"-Inf", Vec3(0, 0, math.Inf(-1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestAxis(t *testing.T) {
	v := Vec3(1, 2, 3)
	for axis, want := range map[Axis]float64{AxisX: 1, AxisY: 2, AxisZ: 3} {
		if got := v.Component(axis); got != want {
			t.Errorf("Component(%d) = %v, want %v", axis, got, want)
		}
		if got := axis.Unit().Dot(v); got != want {
			t.Errorf("Unit(%d).Dot = %v, want %v", axis, got, want)
		}
	}
}
