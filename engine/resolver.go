package engine

import (
	"time"

	"github.com/lixenwraith/tilt-carousel/parameter"
	"github.com/lixenwraith/tilt-carousel/physics"
	"github.com/lixenwraith/tilt-carousel/sensor"
	"github.com/lixenwraith/tilt-carousel/vmath"
)

// Resolver turns orientation samples into spring-smoothed tilt
// Owned by the frame goroutine: every mutation and read happens there
type Resolver struct {
	variation parameter.Variation
	stiffness float64
	model     physics.SpringModel

	rotateY    physics.SpringAxis
	rotateX    physics.SpringAxis
	translateX physics.SpringAxis
	translateY physics.SpringAxis

	// Targets of the most recent Advance
	targetY float64
	targetX float64

	// Unconsumed frame time, always below one step
	accumulator time.Duration
	steps       uint64
}

// NewResolver creates a resolver at rest on zero tilt
// Non-positive stiffness uses parameter.DefaultStiffness
func NewResolver(v parameter.Variation, stiffness float64) *Resolver {
	if stiffness <= 0 {
		stiffness = parameter.DefaultStiffness
	}
	r := &Resolver{stiffness: stiffness}
	r.SetVariation(v)
	return r
}

// Variation returns the active preset
func (r *Resolver) Variation() parameter.Variation {
	return r.variation
}

// Stiffness returns the shared spring constant
func (r *Resolver) Stiffness() float64 {
	return r.stiffness
}

// Model returns the active spring coefficients
func (r *Resolver) Model() physics.SpringModel {
	return r.model
}

// SetVariation swaps ranges and damping for subsequent steps
// Spring values and velocities carry over unchanged
func (r *Resolver) SetVariation(v parameter.Variation) {
	r.variation = v
	r.model = physics.NewSpringModel(parameter.SpringStep, r.stiffness, parameter.SpringMass, v.Damping)
}

// Targets returns the rotateY/rotateX targets for a sample under the active preset
// Visual tilt opposes physical tilt; missing samples resolve to level
func (r *Resolver) Targets(s sensor.Sample, ok bool) (rotateY, rotateX float64) {
	roll, pitch := 0.0, 0.0
	if ok && s.Valid() {
		roll = s.Roll
		pitch = s.Pitch - parameter.BiasAngle
	}
	// Missing samples give zero targets directly; bias applies only to real pitch
	rotateY = -vmath.Clamp(roll, r.variation.RotateYRange[0], r.variation.RotateYRange[1])
	rotateX = -vmath.Clamp(pitch, r.variation.RotateXRange[0], r.variation.RotateXRange[1])
	return rotateY, rotateX
}

// Advance integrates dt of frame time toward the sample's targets in fixed steps
// dt is capped at parameter.MaxFrameDelta; negative dt is ignored
// Returns the number of steps taken
func (r *Resolver) Advance(dt time.Duration, s sensor.Sample, ok bool) int {
	r.targetY, r.targetX = r.Targets(s, ok)

	if dt <= 0 {
		return 0
	}
	if dt > parameter.MaxFrameDelta {
		dt = parameter.MaxFrameDelta
	}

	r.accumulator += dt
	n := 0
	for r.accumulator >= parameter.SpringStep {
		r.step()
		r.accumulator -= parameter.SpringStep
		n++
	}
	r.steps += uint64(n)
	return n
}

// step advances all four axes once
// Translation follows the already-smoothed rotation, giving a second smoothing stage
func (r *Resolver) step() {
	r.rotateY.Advance(&r.model, r.targetY)
	r.rotateX.Advance(&r.model, r.targetX)

	tf := r.variation.TranslateFactor
	r.translateX.Advance(&r.model, -r.rotateY.Value*tf)
	r.translateY.Advance(&r.model, r.rotateX.Value*tf)
}

// State returns the current smoothed values
func (r *Resolver) State() AngleState {
	return AngleState{
		RotateY:    r.rotateY.Value,
		RotateX:    r.rotateX.Value,
		TranslateX: r.translateX.Value,
		TranslateY: r.translateY.Value,
	}
}

// Steps returns the total number of integration steps taken
func (r *Resolver) Steps() uint64 {
	return r.steps
}

// AtRest reports whether every axis sits on its target with negligible velocity
func (r *Resolver) AtRest(eps float64) bool {
	tf := r.variation.TranslateFactor
	return r.rotateY.Settled(r.targetY, eps) &&
		r.rotateX.Settled(r.targetX, eps) &&
		r.translateX.Settled(-r.rotateY.Value*tf, eps) &&
		r.translateY.Settled(r.rotateX.Value*tf, eps)
}
