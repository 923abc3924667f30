package main

import (
	"math"
	"time"

	"github.com/lixenwraith/tilt-carousel/engine"
	"github.com/lixenwraith/tilt-carousel/parameter"
	"github.com/lixenwraith/tilt-carousel/physics"
	"github.com/lixenwraith/tilt-carousel/sensor"
)

// settleBand is the fraction of the step size the response must stay within to count as settled
const settleBand = 0.02

type integrator string

const (
	integratorExact integrator = "harmonica"
	integratorEuler integrator = "euler"
)

type traceOptions struct {
	variation  parameter.Variation
	stiffness  float64
	roll       float64
	duration   time.Duration
	integrator integrator
}

type traceRow struct {
	step     int
	at       time.Duration
	value    float64
	velocity float64
}

type traceResult struct {
	target      float64
	rows        []traceRow
	overshoot   float64 // peak excursion past target as a fraction of the step
	settle      time.Duration
	settled     bool
	ratio       float64
	angularFreq float64
}

// runTrace drives one rotateY axis from rest toward the target produced by a constant roll
// Uses the resolver's targets and spring model so the trace matches a running engine
func runTrace(opts traceOptions) traceResult {
	r := engine.NewResolver(opts.variation, opts.stiffness)
	sample := sensor.Sample{Roll: opts.roll, Pitch: parameter.BiasAngle}
	target, _ := r.Targets(sample, true)

	model := r.Model()
	res := traceResult{
		target:      target,
		ratio:       model.DampingRatio(),
		angularFreq: model.AngularFrequency(),
	}

	steps := int(opts.duration / parameter.SpringStep)
	var axis physics.SpringAxis
	lastOutside := -1

	for i := 1; i <= steps; i++ {
		switch opts.integrator {
		case integratorEuler:
			physics.IntegrateEuler(&axis, &model, target, parameter.SpringStep)
		default:
			axis.Advance(&model, target)
		}
		res.rows = append(res.rows, traceRow{
			step:     i,
			at:       time.Duration(i) * parameter.SpringStep,
			value:    axis.Value,
			velocity: axis.Velocity,
		})

		if target != 0 {
			past := (axis.Value - target) / target
			if past > res.overshoot {
				res.overshoot = past
			}
			if math.Abs(past) > settleBand {
				lastOutside = i
			}
		}
	}

	if target == 0 {
		res.settled = true
		return res
	}
	if lastOutside < steps {
		res.settled = true
		res.settle = time.Duration(lastOutside+1) * parameter.SpringStep
	}
	return res
}
