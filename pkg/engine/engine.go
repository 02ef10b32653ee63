// Package engine is the public facade over one Simulation: import and
// export base-data snapshots, create/update/delete bodies, update
// simulation-wide parameters, advance one step, and expose a live
// read-only view. It performs no scheduling of its own — callers decide
// when to call Tick.
package engine

import (
	"github.com/orbitalsandbox/core/internal/logger"
	"github.com/orbitalsandbox/core/pkg/body"
	"github.com/orbitalsandbox/core/pkg/simulation"
	"github.com/orbitalsandbox/core/pkg/vector2"
	"github.com/zerodha/logf"
)

// Engine wraps a Simulation with the serialization- and
// mutation-friendly API external collaborators (a UI, a bridge, a
// script host) actually need, translating to and from the base-data
// DTOs in data.go.
type Engine struct {
	sim *simulation.Simulation
	log logf.Logger
}

// New builds an Engine around a fresh Simulation with no bodies and
// the given time step.
func New(log logf.Logger, timeStep float64) *Engine {
	return &Engine{sim: simulation.New(log, timeStep), log: log}
}

// NewWithFileLogging builds an Engine whose logger is the
// internal/logger singleton, configured to persist diagnostics under
// ~/.orbital-sandbox/logs in addition to stdout. It is the constructor
// path for a standalone host with no logging setup of its own; a host
// that already manages its own logf.Logger should call New directly.
func NewWithFileLogging(level, appName string, timeStep float64) (*Engine, error) {
	log, err := logger.InitFileLogger(level, appName)
	if err != nil {
		return nil, err
	}
	return New(*log, timeStep), nil
}

// View returns a live read-only snapshot of the whole simulation.
func (e *Engine) View() EngineView {
	calc := e.sim.Calculator()
	enabled := e.sim.Bodies().AllBodies()

	bodies := make([]BodyView, 0, len(enabled))
	for _, b := range enabled {
		bodies = append(bodies, BodyView{
			ID:           b.Id(),
			Enabled:      b.Enabled(),
			Mass:         b.Mass(),
			Position:     b.Position(),
			Velocity:     b.Velocity(),
			Acceleration: b.Acceleration(),
		})
	}

	return EngineView{
		SimulationTime: e.sim.Timer().SimulationTime(),
		TimeStep:       e.sim.Timer().TimeStep(),
		GSI:            calc.GSI(),
		Theta:          calc.Theta(),
		Epsilon:        calc.Epsilon(),
		Bodies:         bodies,
	}
}

// Tick runs one Simulation step.
func (e *Engine) Tick() {
	e.sim.Step()
}

// CreateBody adds a new, disabled body at the origin with zero mass,
// velocity and acceleration, returning its assigned id. Callers
// configure it into the dynamics with UpdateBody.
func (e *Engine) CreateBody() int {
	b := e.sim.Bodies().CreateBody(func(id int) body.Body {
		return body.New(id, false, 0, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})
	})
	return b.Id()
}

// DeleteBody removes the body with the given id, reporting whether it
// existed.
func (e *Engine) DeleteBody(id int) bool {
	return e.sim.Bodies().TryDeleteBody(id)
}

// UpdateBody applies a partial update to the body with the given id,
// reporting whether it existed.
func (e *Engine) UpdateBody(id int, u BodyDataUpdates) bool {
	return e.sim.Bodies().TryUpdateBody(id, body.Updates{
		Enabled: u.Enabled,
		Mass:    u.Mass,
		PosX:    u.PosX,
		PosY:    u.PosY,
		VelX:    u.VelX,
		VelY:    u.VelY,
		AccX:    u.AccX,
		AccY:    u.AccY,
	})
}

// UpdateSimulation applies a partial update to the timer's time step
// and the calculator's G_SI/theta/epsilon. Theta and epsilon are
// clamped by the calculator, not rejected.
func (e *Engine) UpdateSimulation(u SimDataUpdates) {
	if u.TimeStep != nil {
		e.sim.Timer().SetTimeStep(*u.TimeStep)
	}
	if u.GSI != nil {
		e.sim.Calculator().SetGSI(*u.GSI)
	}
	if u.Theta != nil {
		e.sim.Calculator().SetTheta(*u.Theta)
	}
	if u.Epsilon != nil {
		e.sim.Calculator().SetEpsilon(*u.Epsilon)
	}
}

// Export returns the full state as base-data DTOs, suitable for
// serialization by external collaborators.
func (e *Engine) Export() (SimDataBase, []BodyDataBase) {
	calc := e.sim.Calculator()
	allBodies := e.sim.Bodies().AllBodies()

	sim := SimDataBase{
		SimulationTime: e.sim.Timer().SimulationTime(),
		TimeStep:       e.sim.Timer().TimeStep(),
		Theta:          calc.Theta(),
		GSI:            calc.GSI(),
		Epsilon:        calc.Epsilon(),
	}

	bodies := make([]BodyDataBase, 0, len(allBodies))
	for _, b := range allBodies {
		bodies = append(bodies, BodyDataBase{
			ID:      b.Id(),
			Enabled: b.Enabled(),
			Mass:    b.Mass(),
			PosX:    b.Position().X,
			PosY:    b.Position().Y,
			VelX:    b.Velocity().X,
			VelY:    b.Velocity().Y,
			AccX:    b.Acceleration().X,
			AccY:    b.Acceleration().Y,
		})
	}

	return sim, bodies
}

// Import replaces the entire engine state — every existing body is
// discarded — with the given base-data snapshot.
func (e *Engine) Import(sim SimDataBase, bodies []BodyDataBase) {
	newSim := simulation.New(e.log, sim.TimeStep)
	newSim.Timer().SetSimulationTime(sim.SimulationTime)
	newSim.Calculator().SetGSI(sim.GSI)
	newSim.Calculator().SetTheta(sim.Theta)
	newSim.Calculator().SetEpsilon(sim.Epsilon)

	for _, b := range bodies {
		newSim.Bodies().TryAddBody(body.New(
			b.ID,
			b.Enabled,
			b.Mass,
			vector2.Vector2{X: b.PosX, Y: b.PosY},
			vector2.Vector2{X: b.VelX, Y: b.VelY},
			vector2.Vector2{X: b.AccX, Y: b.AccY},
		))
	}

	e.sim = newSim
}
