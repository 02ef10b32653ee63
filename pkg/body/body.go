// Package body owns the per-body simulation state and the manager that
// tracks every body in a simulation, maintaining a dense contiguous view
// of the enabled subset for tight iteration during a step.
package body

import "github.com/orbitalsandbox/core/pkg/vector2"

// enabledIndexDisabled is the sentinel stored in a disabled body's
// enabledIndex field.
const enabledIndexDisabled = -1

// Body is a single point-mass entity. Its fields are unexported so that
// mutations go through Manager.TryUpdateBody, which keeps the dense
// enabled list and the signals consistent; the only exceptions are the
// SetPosition/SetVelocity/SetAcceleration setters below, which change
// state without that bookkeeping.
type Body struct {
	id           int
	enabled      bool
	mass         float64
	position     vector2.Vector2
	velocity     vector2.Vector2
	acceleration vector2.Vector2

	enabledIndex int
}

// New builds a Body value with the given id and initial state. Intended
// for use inside a Manager.CreateBody factory or as the argument to
// Manager.TryAddBody.
func New(id int, enabled bool, mass float64, position, velocity, acceleration vector2.Vector2) Body {
	return Body{
		id:           id,
		enabled:      enabled,
		mass:         mass,
		position:     position,
		velocity:     velocity,
		acceleration: acceleration,
		enabledIndex: enabledIndexDisabled,
	}
}

// Id returns the body's stable, unique, non-negative identifier.
func (b *Body) Id() int { return b.id }

// Enabled reports whether the body currently participates in force
// evaluation and integration.
func (b *Body) Enabled() bool { return b.enabled }

// Mass returns the body's mass in solar masses (M☉). May be zero or
// negative.
func (b *Body) Mass() float64 { return b.mass }

// Position returns the body's position in astronomical units (au).
func (b *Body) Position() vector2.Vector2 { return b.position }

// Velocity returns the body's velocity in au/day.
func (b *Body) Velocity() vector2.Vector2 { return b.velocity }

// Acceleration returns the body's acceleration, in au/day², as of the
// most recent force evaluation.
func (b *Body) Acceleration() vector2.Vector2 { return b.acceleration }

// SetPosition overwrites the body's position without going through
// Manager.TryUpdateBody, and so without emitting enabledContentModified.
// This is the hot path Simulation uses every step to propagate the KDK
// drift and the two half-kicks; external callers should use
// Manager.TryUpdateBody instead, which keeps signals and the dense
// enabled list consistent.
func (b *Body) SetPosition(p vector2.Vector2) { b.position = p }

// SetVelocity overwrites the body's velocity. See SetPosition.
func (b *Body) SetVelocity(v vector2.Vector2) { b.velocity = v }

// SetAcceleration overwrites the body's acceleration. See SetPosition.
func (b *Body) SetAcceleration(a vector2.Vector2) { b.acceleration = a }
