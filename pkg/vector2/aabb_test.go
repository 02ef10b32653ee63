package vector2_test

import (
	"testing"

	"github.com/orbitalsandbox/core/pkg/vector2"
	"github.com/stretchr/testify/assert"
)

func TestNewAABB_CoercesNegativeHalfDim(t *testing.T) {
	b := vector2.NewAABB(vector2.Vector2{}, vector2.Vector2{X: -1, Y: -2})
	assert.Equal(t, vector2.Vector2{}, b.HalfDim)
}

func TestAABB_MinMax(t *testing.T) {
	b := vector2.NewAABB(vector2.Vector2{X: 1, Y: 1}, vector2.Vector2{X: 2, Y: 3})
	assert.Equal(t, vector2.Vector2{X: -1, Y: -2}, b.Min())
	assert.Equal(t, vector2.Vector2{X: 3, Y: 4}, b.Max())
}

func TestAABB_MaxDimension(t *testing.T) {
	b := vector2.NewAABB(vector2.Vector2{}, vector2.Vector2{X: 2, Y: 5})
	assert.Equal(t, 10.0, b.MaxDimension())
}

func TestAABB_Contains_InclusiveMinExclusiveMax(t *testing.T) {
	b := vector2.NewAABB(vector2.Vector2{}, vector2.Vector2{X: 1, Y: 1})
	assert.True(t, b.Contains(vector2.Vector2{X: -1, Y: -1}), "min corner is inclusive")
	assert.False(t, b.Contains(vector2.Vector2{X: 1, Y: 1}), "max corner is exclusive")
	assert.True(t, b.Contains(vector2.Vector2{X: 0, Y: 0}))
	assert.False(t, b.Contains(vector2.Vector2{X: 1.0001, Y: 0}))
}

func TestAABB_Quadrant_BoundaryBelongsToExactlyOneChild(t *testing.T) {
	b := vector2.NewAABB(vector2.Vector2{}, vector2.Vector2{X: 2, Y: 2})

	assert.Equal(t, vector2.QuadrantNE, b.Quadrant(vector2.Vector2{X: 0, Y: 0}), "center is east+north")
	assert.Equal(t, vector2.QuadrantNW, b.Quadrant(vector2.Vector2{X: -0.5, Y: 0.5}))
	assert.Equal(t, vector2.QuadrantSW, b.Quadrant(vector2.Vector2{X: -0.5, Y: -0.5}))
	assert.Equal(t, vector2.QuadrantSE, b.Quadrant(vector2.Vector2{X: 0.5, Y: -0.5}))
}

func TestAABB_Split_ChildrenPartitionParent(t *testing.T) {
	b := vector2.NewAABB(vector2.Vector2{}, vector2.Vector2{X: 2, Y: 2})

	for _, q := range []int{vector2.QuadrantNW, vector2.QuadrantNE, vector2.QuadrantSW, vector2.QuadrantSE} {
		child := b.Split(q)
		assert.Equal(t, 1.0, child.HalfDim.X)
		assert.Equal(t, 1.0, child.HalfDim.Y)
		assert.True(t, b.Contains(child.Center))
	}
}
