// Package vector2 implements 2D double-precision vector arithmetic and
// the axis-aligned bounding rectangle used by the quadtree package.
package vector2

import "math"

// Vector2 is a 2D vector in astronomical-unit / au-per-day space.
type Vector2 struct {
	X, Y float64
}

// Add returns the component-wise sum of v and other.
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the component-wise difference v - other.
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale returns v scaled by the given factor.
func (v Vector2) Scale(factor float64) Vector2 {
	return Vector2{X: v.X * factor, Y: v.Y * factor}
}

// Div returns v divided component-wise by the given scalar. Dividing by
// zero returns the zero vector rather than propagating Inf/NaN.
func (v Vector2) Div(scalar float64) Vector2 {
	if scalar == 0 {
		return Vector2{}
	}
	return Vector2{X: v.X / scalar, Y: v.Y / scalar}
}

// Dot returns the dot product of v and other.
func (v Vector2) Dot(other Vector2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// MagnitudeSquared returns the squared length of v.
func (v Vector2) MagnitudeSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Magnitude returns the length of v.
func (v Vector2) Magnitude() float64 {
	return math.Sqrt(v.MagnitudeSquared())
}

// Normalized returns v scaled to unit length, or the zero vector when v
// itself has zero magnitude.
func (v Vector2) Normalized() Vector2 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vector2{}
	}
	return v.Scale(1 / mag)
}

// DistanceToSquared returns the squared distance between v and other.
func (v Vector2) DistanceToSquared(other Vector2) float64 {
	return v.Sub(other).MagnitudeSquared()
}
