package physics

import "math"

// Vector3 is a 3-component vector with value semantics.
type Vector3 struct {
	X, Y, Z float64
}

func Vec3(x, y, z float64) Vector3 { return Vector3{X: x, Y: y, Z: z} }

func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Mul is the component-wise product.
func (v Vector3) Mul(o Vector3) Vector3 { return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

// AddScaled returns v + o*s.
func (v Vector3) AddScaled(o Vector3, s float64) Vector3 {
	return Vector3{v.X + o.X*s, v.Y + o.Y*s, v.Z + o.Z*s}
}

func (v Vector3) Dot(o Vector3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) SquareMagnitude() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vector3) Magnitude() float64       { return math.Sqrt(v.SquareMagnitude()) }

// Direction returns the unit vector along v, or the zero vector when v has
// no length.
func (v Vector3) Direction() Vector3 {
	mag := v.Magnitude()
	if mag <= 0 {
		return Vector3{}
	}
	return Vector3{v.X / mag, v.Y / mag, v.Z / mag}
}

func (v Vector3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// IsValid reports whether every component is finite.
func (v Vector3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// AddInPlace is the compound form of Add.
func (v *Vector3) AddInPlace(o Vector3) {
	v.X += o.X
	v.Y += o.Y
	v.Z += o.Z
}

func (v *Vector3) SubInPlace(o Vector3) {
	v.X -= o.X
	v.Y -= o.Y
	v.Z -= o.Z
}

func (v *Vector3) ScaleInPlace(s float64) {
	v.X *= s
	v.Y *= s
	v.Z *= s
}

// Component returns the component selected by axis (0=X, 1=Y, 2=Z).
func (v Vector3) Component(axis Axis) float64 {
	switch axis {
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	default:
		return v.X
	}
}

// Axis names one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) Unit() Vector3 {
	switch a {
	case AxisY:
		return Vector3{Y: 1}
	case AxisZ:
		return Vector3{Z: 1}
	default:
		return Vector3{X: 1}
	}
}
