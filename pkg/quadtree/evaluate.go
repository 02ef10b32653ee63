package quadtree

import (
	"context"

	"github.com/orbitalsandbox/core/pkg/vector2"
	"gonum.org/v1/gonum/floats"
)

// Evaluate recursively aggregates mass and center of mass bottom-up
// across the whole tree, caching each node's bounds.maxDimension² for
// the opening-angle test CalcAcceleration applies on the walk down.
// It panics if called before Reset or a second time without an
// intervening Reset.
func (q *QuadTree) Evaluate() {
	if err := q.fsm.Event(context.Background(), eventEvaluate); err != nil {
		panic(ProgrammerError{Op: "Evaluate", Msg: err.Error()})
	}
	q.evaluateAt(0)
	q.log.Debug("quadtree evaluated", "nodes", len(q.nodes), "rootMass", q.nodes[0].mass)
}

func (q *QuadTree) evaluateAt(idx int) (mass float64, centerOfMass vector2.Vector2) {
	n := q.nodes[idx]

	switch {
	case n.crowded != -1:
		list := q.crowdedLists[n.crowded]
		masses := make([]float64, len(list))
		xs := make([]float64, len(list))
		ys := make([]float64, len(list))
		for i, b := range list {
			m := b.Mass()
			p := b.Position()
			masses[i] = m
			xs[i] = m * p.X
			ys[i] = m * p.Y
		}
		mass = floats.Sum(masses)
		if mass != 0 {
			centerOfMass = vector2.Vector2{X: floats.Sum(xs) / mass, Y: floats.Sum(ys) / mass}
		}

	case n.isInternal():
		var masses [4]float64
		var xs [4]float64
		var ys [4]float64
		for i, childIdx := range n.children {
			m, com := q.evaluateAt(childIdx)
			masses[i] = m
			xs[i] = m * com.X
			ys[i] = m * com.Y
		}
		mass = floats.Sum(masses[:])
		if mass != 0 {
			centerOfMass = vector2.Vector2{X: floats.Sum(xs[:]) / mass, Y: floats.Sum(ys[:]) / mass}
		}

	case n.body != nil:
		mass = n.body.Mass()
		centerOfMass = n.body.Position()

	default:
		mass = 0
	}

	maxDim := n.bounds.MaxDimension()
	n.mass = mass
	n.centerOfMass = centerOfMass
	n.maxDimSq = maxDim * maxDim
	n.evaluated = true
	q.nodes[idx] = n

	return mass, centerOfMass
}
