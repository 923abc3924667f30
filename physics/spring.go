package physics

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// SpringAxis is the integrated state of one smoothed value
// Persists for the owner's lifetime and is never reset
type SpringAxis struct {
	Value    float64
	Velocity float64
}

// SpringModel holds damped-oscillator coefficients for a fixed step
// Axis state lives outside the model, so swapping damping leaves it untouched
type SpringModel struct {
	Stiffness float64
	Mass      float64
	Damping   float64
	Step      time.Duration

	spring harmonica.Spring
}

// NewSpringModel precomputes coefficients for the given step and physical constants
// Non-positive mass is treated as unit mass, negative damping as zero
func NewSpringModel(step time.Duration, stiffness, mass, damping float64) SpringModel {
	if mass <= 0 {
		mass = 1
	}
	if damping < 0 {
		damping = 0
	}
	if stiffness < 0 {
		stiffness = 0
	}
	m := SpringModel{
		Stiffness: stiffness,
		Mass:      mass,
		Damping:   damping,
		Step:      step,
	}
	m.spring = harmonica.NewSpring(step.Seconds(), m.AngularFrequency(), m.DampingRatio())
	return m
}

// AngularFrequency returns sqrt(k/m) in rad/s
func (m SpringModel) AngularFrequency() float64 {
	return math.Sqrt(m.Stiffness / m.Mass)
}

// DampingRatio returns c / (2*sqrt(k*m)); 1 is critical, above is overdamped
func (m SpringModel) DampingRatio() float64 {
	crit := 2 * math.Sqrt(m.Stiffness*m.Mass)
	if crit == 0 {
		return 0
	}
	return m.Damping / crit
}

// Advance moves the axis one fixed step toward target using the exact oscillator solution
func (a *SpringAxis) Advance(m *SpringModel, target float64) {
	a.Value, a.Velocity = m.spring.Update(a.Value, a.Velocity, target)
}

// IntegrateEuler advances the axis by dt with semi-implicit (symplectic) Euler
// v += (-k(x-target) - c*v)/m * dt; x += v * dt
// Reference integrator for traces and cross-checks; stable only for small dt
func IntegrateEuler(a *SpringAxis, m *SpringModel, target float64, dt time.Duration) {
	h := dt.Seconds()
	accel := (-m.Stiffness*(a.Value-target) - m.Damping*a.Velocity) / m.Mass
	a.Velocity += accel * h
	a.Value += a.Velocity * h
}

// Settled reports whether the axis is at rest on target within eps
func (a SpringAxis) Settled(target, eps float64) bool {
	return math.Abs(a.Value-target) <= eps && math.Abs(a.Velocity) <= eps
}
