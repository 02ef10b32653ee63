package engine

import "github.com/orbitalsandbox/core/pkg/vector2"

// BodyView is a read-only snapshot of one body's live state, built
// fresh on every View() call. It aliases nothing internal — it is safe
// to retain — but it does not update: call View() again to observe
// the next step's state.
type BodyView struct {
	ID           int
	Enabled      bool
	Mass         float64
	Position     vector2.Vector2
	Velocity     vector2.Vector2
	Acceleration vector2.Vector2
}

// EngineView is a value snapshot of the whole simulation — clock,
// calculator parameters, and every body — built fresh by each View()
// call. It owns its own data and aliases no internal storage, so it
// stays valid across a later Tick(); it simply won't reflect anything
// that Tick() changed. Call View() again to observe the new state.
type EngineView struct {
	SimulationTime float64
	TimeStep       float64
	GSI            float64
	Theta          float64
	Epsilon        float64
	Bodies         []BodyView
}
