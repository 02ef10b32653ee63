package quadtree

import (
	"github.com/orbitalsandbox/core/pkg/calculator"
	"github.com/orbitalsandbox/core/pkg/vector2"
)

// CalcAcceleration walks the evaluated tree computing the acceleration
// p experiences under calc's gravitational constant and softening,
// descending into a node when its opening angle s²/d² meets or exceeds
// calc.ThetaSquared(), or when its aggregate mass is zero; otherwise the
// node's aggregate mass and center of mass stand in for every body
// beneath it. It satisfies
// calculator.AccelerationSource. It panics if the tree has not been
// evaluated since the last Reset.
func (q *QuadTree) CalcAcceleration(p calculator.Probe, calc *calculator.Calculator) vector2.Vector2 {
	if !q.fsm.Is(stateEvaluated) {
		panic(ProgrammerError{Op: "CalcAcceleration", Msg: "query before evaluate"})
	}
	return q.calcAccelAt(0, p, calc)
}

func (q *QuadTree) calcAccelAt(idx int, p calculator.Probe, calc *calculator.Calculator) vector2.Vector2 {
	n := q.nodes[idx]

	isEmptyLeaf := !n.isInternal() && n.crowded == -1 && n.body == nil
	if isEmptyLeaf {
		return vector2.Vector2{}
	}

	if !n.isInternal() && n.crowded == -1 && n.body != nil && n.body.Id() == p.Id() {
		return vector2.Vector2{}
	}

	// A non-empty node whose aggregate mass nets to zero (opposite-sign
	// masses cancelling) cannot be safely approximated as a distant
	// point mass at any finite range — its monopole moment vanishes but
	// its individual bodies still exert force on each other. Force a
	// descent into its actual contents instead of consulting the
	// opening-angle test, which would otherwise compare against a
	// meaningless centerOfMass of (0,0).
	if n.mass != 0 {
		d2 := calc.DistanceSquaredSoftened(p.Position(), n.centerOfMass)
		if n.maxDimSq/d2 < calc.ThetaSquared() {
			return calc.Acceleration(p.Position(), n.centerOfMass, n.mass, &d2)
		}
	}

	if n.isInternal() {
		var total vector2.Vector2
		for _, childIdx := range n.children {
			total = total.Add(q.calcAccelAt(childIdx, p, calc))
		}
		return total
	}

	if n.crowded != -1 {
		var total vector2.Vector2
		for _, b := range q.crowdedLists[n.crowded] {
			if b.Id() == p.Id() {
				continue
			}
			total = total.Add(calc.Acceleration(p.Position(), b.Position(), b.Mass(), nil))
		}
		return total
	}

	return calc.Acceleration(p.Position(), n.body.Position(), n.body.Mass(), nil)
}
