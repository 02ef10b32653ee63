// Package calculator holds the physical constants and elementary
// Newtonian-gravity formulas shared by the quadtree's Barnes-Hut walk
// and the Simulation step coordinator, plus a handful of self-contained
// single-body integrators used for unit testing.
package calculator

import (
	"sync"

	"github.com/orbitalsandbox/core/pkg/vector2"
	"github.com/zerodha/logf"
)

// Unit conversion constants (§4.4). AU is the astronomical unit in
// meters, SolarMass is M☉ in kilograms, Day is one day in seconds.
const (
	AU        = 149597870700.0
	SolarMass = 1.988416e30
	Day       = 86400.0

	// GSIPerAC converts a gravitational constant expressed in SI units
	// into the internal au / M☉ / day unit system: G_AC = G_SI / GSIPerAC.
	GSIPerAC = AU * AU * AU / SolarMass / (Day * Day)

	DefaultGSI     = 6.67430e-11
	DefaultTheta   = 0.5
	DefaultEpsilon = 0.001

	// MinEpsilon is the smallest Plummer softening length Epsilon will
	// clamp down to.
	MinEpsilon = 1e-4
)

// Method selects which integration scheme Calculator.Step applies.
// Simulation's coupled, tree-driven step does not consult it and always
// applies Velocity-Verlet; the methods exist for the self-contained
// single-body integrators.
type Method int

const (
	MethodVelocityVerlet Method = iota
	MethodSymplecticEuler
	MethodRK4
)

// Probe is the minimal view of a point mass the Barnes-Hut walk needs
// to identify it (for the self-interaction skip) and locate it.
type Probe interface {
	Id() int
	Position() vector2.Vector2
}

// AccelerationSource computes the acceleration a gravity probe
// experiences from whatever mass distribution it represents. A
// *quadtree.QuadTree satisfies this interface once Evaluate has run;
// defining it here (rather than importing quadtree) keeps calculator
// free of a dependency cycle.
type AccelerationSource interface {
	CalcAcceleration(p Probe, calc *Calculator) vector2.Vector2
}

// Calculator holds the gravitational constant, Barnes-Hut opening
// angle, and Plummer softening length, each cached alongside a
// precomputed square to avoid repeated multiplication on the hot path.
// A sync.RWMutex guards updates the way pkg/barrowman.CPCalculator
// guards its own pure-function parameters, even though a single
// Simulation drives this struct from one goroutine: future embeddings
// may legitimately call UpdateSimulation from elsewhere.
type Calculator struct {
	mu sync.RWMutex

	gSI float64
	gAC float64

	theta   float64
	thetaSq float64

	epsilon   float64
	epsilonSq float64

	method Method

	log logf.Logger
}

// New builds a Calculator with the spec's documented defaults.
func New(log logf.Logger) *Calculator {
	c := &Calculator{log: log, method: MethodVelocityVerlet}
	c.SetGSI(DefaultGSI)
	c.SetTheta(DefaultTheta)
	c.SetEpsilon(DefaultEpsilon)
	return c
}

// SetGSI sets the gravitational constant in SI units, recomputing the
// cached internal-units value G_AC.
func (c *Calculator) SetGSI(gSI float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gSI = gSI
	c.gAC = gSI / GSIPerAC
}

// GSI returns the gravitational constant in SI units.
func (c *Calculator) GSI() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gSI
}

// GAC returns the gravitational constant in internal au/M☉/day units.
func (c *Calculator) GAC() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gAC
}

// SetTheta sets the Barnes-Hut opening angle, clamped to [0, 1].
func (c *Calculator) SetTheta(theta float64) {
	if theta < 0 {
		theta = 0
	}
	if theta > 1 {
		theta = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theta = theta
	c.thetaSq = theta * theta
}

// Theta returns the current opening angle.
func (c *Calculator) Theta() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.theta
}

// ThetaSquared returns the cached square of the opening angle.
func (c *Calculator) ThetaSquared() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.thetaSq
}

// SetEpsilon sets the Plummer softening length, clamped to at least
// MinEpsilon.
func (c *Calculator) SetEpsilon(epsilon float64) {
	if epsilon < MinEpsilon {
		epsilon = MinEpsilon
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epsilon = epsilon
	c.epsilonSq = epsilon * epsilon
}

// Epsilon returns the current softening length.
func (c *Calculator) Epsilon() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.epsilon
}

// EpsilonSquared returns the cached square of the softening length.
func (c *Calculator) EpsilonSquared() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.epsilonSq
}

// SetMethod selects the integration scheme used by the single-body
// Step helpers' default dispatch (Step). It has no effect on
// Simulation's own KDK Velocity-Verlet step, which always applies that
// scheme directly.
func (c *Calculator) SetMethod(m Method) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.method = m
}

// Method returns the currently selected integration scheme.
func (c *Calculator) Method() Method {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.method
}

// DistanceSquaredSoftened returns the Plummer-softened squared distance
// between a and b: ‖a - b‖² + ε².
func (c *Calculator) DistanceSquaredSoftened(a, b vector2.Vector2) float64 {
	return a.DistanceToSquared(b) + c.EpsilonSquared()
}

// Acceleration returns the acceleration a unit test mass at pTarget
// experiences from a mass mSource located at pSource. dSquared, when
// non-nil, is a caller-precomputed softened squared distance (avoiding
// a second computation on the quadtree's hot path); when nil it is
// computed from pTarget and pSource directly.
//
// A zero softened distance — reachable only through a caller-supplied
// zero dSquared, since SetEpsilon forbids ε == 0 — returns the zero
// vector rather than dividing by zero.
func (c *Calculator) Acceleration(pTarget, pSource vector2.Vector2, mSource float64, dSquared *float64) vector2.Vector2 {
	d2 := 0.0
	if dSquared != nil {
		d2 = *dSquared
	} else {
		d2 = c.DistanceSquaredSoftened(pTarget, pSource)
	}
	if d2 == 0 {
		return vector2.Vector2{}
	}

	magnitude := c.GAC() * mSource / d2
	direction := pSource.Sub(pTarget).Normalized()
	return direction.Scale(magnitude)
}
