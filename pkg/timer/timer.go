// Package timer tracks the simulation's own clock, independent of wall
// time: simulationTime accumulates by timeStep each call to Advance.
package timer

// Timer holds the simulation clock. A zero TimeStep is valid — it
// means the caller has paused the simulation — and Advance is then a
// no-op against simulationTime.
type Timer struct {
	simulationTime float64
	timeStep       float64
}

// New builds a Timer starting at t=0 with the given time step.
func New(timeStep float64) *Timer {
	return &Timer{timeStep: timeStep}
}

// SimulationTime returns the accumulated simulation time.
func (t *Timer) SimulationTime() float64 {
	return t.simulationTime
}

// TimeStep returns the current per-step advance.
func (t *Timer) TimeStep() float64 {
	return t.timeStep
}

// SetTimeStep changes the per-step advance used by future calls to
// Advance. It does not retroactively affect simulationTime.
func (t *Timer) SetTimeStep(timeStep float64) {
	t.timeStep = timeStep
}

// SetSimulationTime overwrites the accumulated simulation time, used by
// Engine.Import to restore a saved run.
func (t *Timer) SetSimulationTime(simulationTime float64) {
	t.simulationTime = simulationTime
}

// Advance moves the clock forward by the current time step. With
// TimeStep == 0 this leaves simulationTime unchanged.
func (t *Timer) Advance() {
	t.simulationTime += t.timeStep
}
