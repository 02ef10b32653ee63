package quadtree

import "github.com/orbitalsandbox/core/pkg/vector2"

// MaxDepth bounds how many times a leaf will subdivide before it starts
// crowding bodies into a shared list instead. PaddingMult and
// PaddingFlat enlarge the bounds Reset is given so a body sitting
// exactly on the original boundary still falls strictly inside the
// root (AABB.Contains is half-open on the max edge).
const (
	MaxDepth    = 32
	PaddingMult = 0.01
	PaddingFlat = 1e-10
)

// Inserted is the minimal view of a point mass the tree needs: identity
// and position (via calculator.Probe) plus mass for center-of-mass
// aggregation. *body.Body satisfies this without either package
// importing the other.
type Inserted interface {
	Id() int
	Position() vector2.Vector2
	Mass() float64
}

// node is one arena slot. A node is exactly one of: an empty leaf
// (body == nil, crowded == -1, children[0] == -1), a single-body leaf
// (body != nil), a crowded leaf (crowded != -1, reached only at
// MaxDepth), or an internal node (children[0] != -1, body == nil).
type node struct {
	bounds vector2.AABB
	depth  int

	body    Inserted
	crowded int

	children [4]int

	mass         float64
	centerOfMass vector2.Vector2
	maxDimSq     float64
	evaluated    bool
}

func (n node) isInternal() bool {
	return n.children[0] != -1
}

func emptyChildren() [4]int {
	return [4]int{-1, -1, -1, -1}
}
