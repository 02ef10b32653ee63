// Package quadtree implements a pooled, index-addressed Barnes-Hut
// quadtree. Callers drive it through an explicit Reset → Insert* →
// Evaluate → Query* state machine (enforced by looplab/fsm, the same
// library the teacher uses for its motor-ignition state machine); the
// node arena and crowded-body lists are recycled step to step so a
// long-running simulation does not allocate a fresh tree every tick.
package quadtree

import (
	"context"
	"math"

	"github.com/looplab/fsm"
	"github.com/orbitalsandbox/core/pkg/vector2"
	"github.com/zerodha/logf"
)

const (
	stateNew       = "new"
	stateBuilding  = "building"
	stateEvaluated = "evaluated"

	eventReset    = "reset"
	eventEvaluate = "evaluate"
)

// QuadTree is a single reusable Barnes-Hut tree. It is not safe for
// concurrent use; Simulation drives exactly one tree from its own
// goroutine each step.
type QuadTree struct {
	nodes     []node
	freeStack []int

	crowdedLists [][]Inserted
	crowdedFree  []int

	fsm *fsm.FSM
	log logf.Logger
}

// New builds an empty tree in the "new" state: it must be Reset before
// anything may be inserted into it.
func New(log logf.Logger) *QuadTree {
	q := &QuadTree{log: log}
	q.fsm = fsm.NewFSM(
		stateNew,
		fsm.Events{
			{Name: eventReset, Src: []string{stateNew, stateBuilding, stateEvaluated}, Dst: stateBuilding},
			{Name: eventEvaluate, Src: []string{stateBuilding}, Dst: stateEvaluated},
		},
		fsm.Callbacks{},
	)
	return q
}

// Reset discards the previous tree's contents, recycling its arena
// slots and crowded-body lists, and opens a fresh root covering
// [minX,maxX) x [minY,maxY) padded by max(width,height)*PaddingMult +
// PaddingFlat. expectedBodies sizes the arena's reserved capacity
// (4*expectedBodies + 16 node slots) so a typical step does not grow
// the backing slice.
func (q *QuadTree) Reset(minX, minY, maxX, maxY float64, expectedBodies int) {
	if !(minX < maxX) || !(minY < maxY) {
		panic(ProgrammerError{Op: "Reset", Msg: "bounds must satisfy minX < maxX and minY < maxY"})
	}
	if expectedBodies <= 0 {
		panic(ProgrammerError{Op: "Reset", Msg: "expectedBodies must be positive"})
	}

	if err := q.fsm.Event(context.Background(), eventReset); err != nil {
		panic(ProgrammerError{Op: "Reset", Msg: err.Error()})
	}

	needed := 4*expectedBodies + 16
	if cap(q.nodes) < needed {
		grown := make([]node, len(q.nodes), needed)
		copy(grown, q.nodes)
		q.nodes = grown
	}
	q.freeStack = q.freeStack[:0]
	for i := len(q.nodes) - 1; i >= 0; i-- {
		q.freeStack = append(q.freeStack, i)
	}

	for i := range q.crowdedLists {
		q.crowdedLists[i] = q.crowdedLists[i][:0]
	}
	q.crowdedFree = q.crowdedFree[:0]
	for i := len(q.crowdedLists) - 1; i >= 0; i-- {
		q.crowdedFree = append(q.crowdedFree, i)
	}

	width := maxX - minX
	height := maxY - minY
	padding := math.Max(width, height)*PaddingMult + PaddingFlat
	center := vector2.Vector2{X: minX + width/2, Y: minY + height/2}
	halfDim := vector2.Vector2{X: width/2 + padding, Y: height/2 + padding}

	root := q.allocateNode()
	q.nodes[root] = node{bounds: vector2.NewAABB(center, halfDim), depth: 0, crowded: -1, children: emptyChildren()}
}

// Insert adds b to the tree, subdividing or crowding leaves as needed.
// It panics if called before Reset, after Evaluate, or with a body
// outside the root's bounds.
func (q *QuadTree) Insert(b Inserted) {
	switch q.fsm.Current() {
	case stateNew:
		panic(ProgrammerError{Op: "Insert", Msg: "insert before reset"})
	case stateEvaluated:
		panic(ProgrammerError{Op: "Insert", Msg: "already evaluated"})
	}

	if !q.nodes[0].bounds.Contains(b.Position()) {
		panic(ProgrammerError{Op: "Insert", Msg: "body position outside root bounds"})
	}

	q.insertAt(0, b)
}

func (q *QuadTree) insertAt(idx int, b Inserted) {
	n := q.nodes[idx]

	switch {
	case n.crowded != -1:
		q.crowdedLists[n.crowded] = append(q.crowdedLists[n.crowded], b)

	case !n.isInternal() && n.body == nil:
		n.body = b
		q.nodes[idx] = n

	case !n.isInternal() && n.depth >= MaxDepth:
		crowdedIdx := q.allocateCrowded()
		q.crowdedLists[crowdedIdx] = append(q.crowdedLists[crowdedIdx], n.body, b)
		n.crowded = crowdedIdx
		n.body = nil
		q.nodes[idx] = n

	case !n.isInternal():
		existing := n.body
		bounds := n.bounds
		depth := n.depth

		var children [4]int
		for quadrant := 0; quadrant < 4; quadrant++ {
			childIdx := q.allocateNode()
			q.nodes[childIdx] = node{bounds: bounds.Split(quadrant), depth: depth + 1, crowded: -1, children: emptyChildren()}
			children[quadrant] = childIdx
		}

		n.body = nil
		n.children = children
		q.nodes[idx] = n

		q.insertAt(children[bounds.Quadrant(existing.Position())], existing)
		q.insertAt(children[bounds.Quadrant(b.Position())], b)

	default:
		quadrant := n.bounds.Quadrant(b.Position())
		q.insertAt(n.children[quadrant], b)
	}
}

func (q *QuadTree) allocateNode() int {
	if len(q.freeStack) > 0 {
		idx := q.freeStack[len(q.freeStack)-1]
		q.freeStack = q.freeStack[:len(q.freeStack)-1]
		return idx
	}
	q.nodes = append(q.nodes, node{})
	return len(q.nodes) - 1
}

func (q *QuadTree) allocateCrowded() int {
	if len(q.crowdedFree) > 0 {
		idx := q.crowdedFree[len(q.crowdedFree)-1]
		q.crowdedFree = q.crowdedFree[:len(q.crowdedFree)-1]
		return idx
	}
	q.crowdedLists = append(q.crowdedLists, nil)
	return len(q.crowdedLists) - 1
}
