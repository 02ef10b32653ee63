package vector2_test

import (
	"testing"

	"github.com/orbitalsandbox/core/pkg/vector2"
	"github.com/stretchr/testify/assert"
)

func TestVector2_Add(t *testing.T) {
	a := vector2.Vector2{X: 1, Y: 2}
	b := vector2.Vector2{X: 3, Y: -1}
	assert.Equal(t, vector2.Vector2{X: 4, Y: 1}, a.Add(b))
}

func TestVector2_Sub(t *testing.T) {
	a := vector2.Vector2{X: 1, Y: 2}
	b := vector2.Vector2{X: 3, Y: -1}
	assert.Equal(t, vector2.Vector2{X: -2, Y: 3}, a.Sub(b))
}

func TestVector2_Scale(t *testing.T) {
	a := vector2.Vector2{X: 2, Y: -4}
	assert.Equal(t, vector2.Vector2{X: 5, Y: -10}, a.Scale(2.5))
}

func TestVector2_Div(t *testing.T) {
	a := vector2.Vector2{X: 10, Y: -4}
	assert.Equal(t, vector2.Vector2{X: 5, Y: -2}, a.Div(2))
}

func TestVector2_Div_ByZero(t *testing.T) {
	a := vector2.Vector2{X: 10, Y: -4}
	assert.Equal(t, vector2.Vector2{}, a.Div(0))
}

func TestVector2_Dot(t *testing.T) {
	a := vector2.Vector2{X: 1, Y: 2}
	b := vector2.Vector2{X: 3, Y: 4}
	assert.Equal(t, 11.0, a.Dot(b))
}

func TestVector2_MagnitudeSquared(t *testing.T) {
	a := vector2.Vector2{X: 3, Y: 4}
	assert.Equal(t, 25.0, a.MagnitudeSquared())
}

func TestVector2_Magnitude(t *testing.T) {
	a := vector2.Vector2{X: 3, Y: 4}
	assert.Equal(t, 5.0, a.Magnitude())
}

func TestVector2_Normalized(t *testing.T) {
	a := vector2.Vector2{X: 3, Y: 4}
	n := a.Normalized()
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Y, 1e-12)
}

func TestVector2_Normalized_ZeroVector(t *testing.T) {
	assert.Equal(t, vector2.Vector2{}, vector2.Vector2{}.Normalized())
}

func TestVector2_DistanceToSquared(t *testing.T) {
	a := vector2.Vector2{X: 0, Y: 0}
	b := vector2.Vector2{X: 3, Y: 4}
	assert.Equal(t, 25.0, a.DistanceToSquared(b))
}

func TestVector2_DistanceToSquared_Self(t *testing.T) {
	a := vector2.Vector2{X: 7, Y: -3}
	assert.Equal(t, 0.0, a.DistanceToSquared(a))
}
