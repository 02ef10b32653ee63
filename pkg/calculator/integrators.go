package calculator

import "github.com/orbitalsandbox/core/pkg/vector2"

// BodyState is a self-contained snapshot of one body's dynamical state,
// used by the single-body integrators below for unit testing the
// elementary formulas in isolation from Simulation's own coupled,
// whole-system KDK step.
type BodyState struct {
	ID   int
	Mass float64
	Pos  vector2.Vector2
	Vel  vector2.Vector2
	Acc  vector2.Vector2
}

// Id satisfies Probe.
func (s BodyState) Id() int { return s.ID }

// Position satisfies Probe.
func (s BodyState) Position() vector2.Vector2 { return s.Pos }

// probeAt adapts a bare (id, position) pair to Probe, letting the
// integrators query tree.CalcAcceleration at hypothetical intermediate
// positions (RK4's sub-stages, Velocity-Verlet's drifted position)
// without constructing a full BodyState each time.
type probeAt struct {
	id  int
	pos vector2.Vector2
}

func (p probeAt) Id() int                   { return p.id }
func (p probeAt) Position() vector2.Vector2 { return p.pos }

func (c *Calculator) accelAt(id int, pos vector2.Vector2, tree AccelerationSource) vector2.Vector2 {
	return tree.CalcAcceleration(probeAt{id: id, pos: pos}, c)
}

func isZero(v vector2.Vector2) bool {
	return v.X == 0 && v.Y == 0
}

// Step dispatches to the integrator selected by SetMethod. Simulation
// itself never calls this — it always applies Velocity-Verlet directly
// as the coupled, whole-system KDK step described in §4.5 — this exists
// for callers exercising the calculator's single-body formulas in
// isolation.
func (c *Calculator) Step(state BodyState, dt float64, tree AccelerationSource) BodyState {
	switch c.Method() {
	case MethodSymplecticEuler:
		return c.StepSymplecticEuler(state, dt, tree)
	case MethodRK4:
		return c.StepRK4(state, dt, tree)
	default:
		return c.StepVelocityVerlet(state, dt, tree)
	}
}

// StepVelocityVerlet advances state by dt using the same Kick-Drift-Kick
// scheme Simulation applies to the whole system. It is manifestly
// self-adjoint: calling it with dt and then with -dt on the result
// returns the original (position, velocity, acceleration) triple.
func (c *Calculator) StepVelocityVerlet(state BodyState, dt float64, tree AccelerationSource) BodyState {
	a0 := c.accelAt(state.ID, state.Pos, tree)
	if isZero(state.Vel) && isZero(a0) {
		return BodyState{ID: state.ID, Mass: state.Mass, Pos: state.Pos, Vel: state.Vel, Acc: a0}
	}

	vHalf := state.Vel.Add(a0.Scale(dt / 2))
	x1 := state.Pos.Add(vHalf.Scale(dt))
	a1 := c.accelAt(state.ID, x1, tree)
	v1 := vHalf.Add(a1.Scale(dt / 2))

	return BodyState{ID: state.ID, Mass: state.Mass, Pos: x1, Vel: v1, Acc: a1}
}

// StepSymplecticEuler advances state by dt using semi-implicit Euler.
// Unlike Velocity-Verlet, plain semi-implicit Euler is not self-adjoint
// in either fixed field-update order (kick-then-drift, or
// drift-then-kick): each is the adjoint of the other, not of itself.
// To give callers the "step(Δt) ∘ step(-Δt) is the identity" property
// spec.md §8 asks for from a single callable, this picks the field
// order by the sign of dt — kick-then-drift for dt >= 0, drift-then-kick
// for dt < 0 — which makes a forward call followed by the reverse call
// exact adjoints of one another.
func (c *Calculator) StepSymplecticEuler(state BodyState, dt float64, tree AccelerationSource) BodyState {
	a0 := c.accelAt(state.ID, state.Pos, tree)
	if isZero(state.Vel) && isZero(a0) {
		return BodyState{ID: state.ID, Mass: state.Mass, Pos: state.Pos, Vel: state.Vel, Acc: a0}
	}

	var x1, v1 vector2.Vector2
	var aFinal vector2.Vector2
	if dt >= 0 {
		v1 = state.Vel.Add(a0.Scale(dt))
		x1 = state.Pos.Add(v1.Scale(dt))
		aFinal = c.accelAt(state.ID, x1, tree)
	} else {
		x1 = state.Pos.Add(state.Vel.Scale(dt))
		aFinal = c.accelAt(state.ID, x1, tree)
		v1 = state.Vel.Add(aFinal.Scale(dt))
	}

	return BodyState{ID: state.ID, Mass: state.Mass, Pos: x1, Vel: v1, Acc: aFinal}
}

// rk4Phase is the (position, velocity) pair RK4 integrates; its
// derivative under the equations of motion is (velocity, acceleration).
type rk4Phase struct {
	pos vector2.Vector2
	vel vector2.Vector2
}

// StepRK4 advances state by dt using classical fourth-order Runge-Kutta.
// Its round-trip error under step(Δt) ∘ step(-Δt) is bounded (not
// exactly zero, unlike Velocity-Verlet) because RK4 is not self-adjoint.
func (c *Calculator) StepRK4(state BodyState, dt float64, tree AccelerationSource) BodyState {
	a0 := c.accelAt(state.ID, state.Pos, tree)
	if isZero(state.Vel) && isZero(a0) {
		return BodyState{ID: state.ID, Mass: state.Mass, Pos: state.Pos, Vel: state.Vel, Acc: a0}
	}

	derivative := func(ph rk4Phase) rk4Phase {
		return rk4Phase{pos: ph.vel, vel: c.accelAt(state.ID, ph.pos, tree)}
	}

	y0 := rk4Phase{pos: state.Pos, vel: state.Vel}

	k1 := derivative(y0)
	y1 := rk4Phase{pos: y0.pos.Add(k1.pos.Scale(dt / 2)), vel: y0.vel.Add(k1.vel.Scale(dt / 2))}

	k2 := derivative(y1)
	y2 := rk4Phase{pos: y0.pos.Add(k2.pos.Scale(dt / 2)), vel: y0.vel.Add(k2.vel.Scale(dt / 2))}

	k3 := derivative(y2)
	y3 := rk4Phase{pos: y0.pos.Add(k3.pos.Scale(dt)), vel: y0.vel.Add(k3.vel.Scale(dt))}

	k4 := derivative(y3)

	posNew := y0.pos.Add(sumScaled(dt/6, k1.pos, k2.pos, k2.pos, k3.pos, k3.pos, k4.pos))
	velNew := y0.vel.Add(sumScaled(dt/6, k1.vel, k2.vel, k2.vel, k3.vel, k3.vel, k4.vel))
	accNew := c.accelAt(state.ID, posNew, tree)

	return BodyState{ID: state.ID, Mass: state.Mass, Pos: posNew, Vel: velNew, Acc: accNew}
}

// sumScaled sums the given vectors (duplicating k2/k3 inline at the call
// site accounts for RK4's 1,2,2,1 weighting) and scales the result by
// factor.
func sumScaled(factor float64, vs ...vector2.Vector2) vector2.Vector2 {
	var sum vector2.Vector2
	for _, v := range vs {
		sum = sum.Add(v)
	}
	return sum.Scale(factor)
}
