// Package simulation coordinates one Kick-Drift-Kick Velocity-Verlet
// step across the Timer, BodyManager, QuadTree and Calculator — the
// step coordinator called out in the physics engine's component list.
package simulation

import (
	"github.com/orbitalsandbox/core/pkg/body"
	"github.com/orbitalsandbox/core/pkg/calculator"
	"github.com/orbitalsandbox/core/pkg/quadtree"
	"github.com/orbitalsandbox/core/pkg/timer"
	"github.com/orbitalsandbox/core/pkg/vector2"
	"github.com/zerodha/logf"
)

// boundsSlop widens a degenerate (zero-width or zero-height) drifted
// bounding rectangle before handing it to QuadTree.Reset, whose own
// contract rejects minX >= maxX. A single body, or several perfectly
// coincident bodies, is an ordinary case (see the "single body
// constant velocity" and "coincident bodies with softening" scenarios)
// rather than a programmer error — only Reset's own padding needs a
// nonzero input to pad further.
const boundsSlop = 1.0

// Simulation owns one complete dynamical system: its clock, its
// bodies, the spatial index used to approximate their mutual gravity,
// and the calculator that turns that approximation into forces.
type Simulation struct {
	timer      *timer.Timer
	bodies     *body.Manager
	tree       *quadtree.QuadTree
	calculator *calculator.Calculator

	// vHalf is a reused scratch slice holding each enabled body's
	// half-step velocity between the drift and the second half-kick,
	// index-aligned with the slice returned by bodies.EnabledBodies()
	// for the duration of one Step call — Simulation's own scratch
	// storage rather than a field on Body (see the design notes on
	// half-step velocity storage).
	vHalf []vector2.Vector2

	log logf.Logger
}

// New builds a Simulation with an empty BodyManager, a fresh QuadTree,
// and a Calculator at its documented defaults.
func New(log logf.Logger, timeStep float64) *Simulation {
	return &Simulation{
		timer:      timer.New(timeStep),
		bodies:     body.NewManager(log),
		tree:       quadtree.New(log),
		calculator: calculator.New(log),
		log:        log,
	}
}

// Timer returns the simulation clock.
func (s *Simulation) Timer() *timer.Timer { return s.timer }

// Bodies returns the body manager.
func (s *Simulation) Bodies() *body.Manager { return s.bodies }

// Calculator returns the force/integration calculator.
func (s *Simulation) Calculator() *calculator.Calculator { return s.calculator }

// Step advances the simulation by one Kick-Drift-Kick Velocity-Verlet
// step: an empty enabled set only advances the clock; otherwise every
// enabled body completes its first half-kick and drift before the tree
// is rebuilt, and the tree is fully evaluated before any body's second
// half-kick queries it.
func (s *Simulation) Step() {
	dt := s.timer.TimeStep()
	enabled := s.bodies.EnabledBodies()

	if len(enabled) == 0 {
		s.timer.Advance()
		return
	}

	if cap(s.vHalf) < len(enabled) {
		s.vHalf = make([]vector2.Vector2, len(enabled))
	} else {
		s.vHalf = s.vHalf[:len(enabled)]
	}

	min := enabled[0].Position()
	max := min

	for i, b := range enabled {
		vHalf := b.Velocity().Add(b.Acceleration().Scale(dt / 2))
		xNew := b.Position().Add(vHalf.Scale(dt))

		b.SetPosition(xNew)
		s.vHalf[i] = vHalf

		if xNew.X < min.X {
			min.X = xNew.X
		}
		if xNew.Y < min.Y {
			min.Y = xNew.Y
		}
		if xNew.X > max.X {
			max.X = xNew.X
		}
		if xNew.Y > max.Y {
			max.Y = xNew.Y
		}
	}

	if max.X <= min.X {
		max.X = min.X + boundsSlop
	}
	if max.Y <= min.Y {
		max.Y = min.Y + boundsSlop
	}

	s.tree.Reset(min.X, min.Y, max.X, max.Y, len(enabled))
	for _, b := range enabled {
		s.tree.Insert(b)
	}
	s.tree.Evaluate()

	for i, b := range enabled {
		aNew := s.tree.CalcAcceleration(b, s.calculator)
		vNew := s.vHalf[i].Add(aNew.Scale(dt / 2))

		b.SetAcceleration(aNew)
		b.SetVelocity(vNew)
	}

	s.timer.Advance()
	s.log.Debug("simulation step", "bodies", len(enabled), "dt", dt, "t", s.timer.SimulationTime())
}
