package physics

import (
	"math"
	"testing"
	"time"
)

const testStep = time.Second / 120

// runSpring steps an axis from 0 toward target and reports the maximum overshoot and monotonicity
func runSpring(damping float64, target float64, steps int) (final SpringAxis, overshoot float64, monotonic bool) {
	m := NewSpringModel(testStep, 100, 1, damping)
	var a SpringAxis
	monotonic = true
	prev := a.Value
	for i := 0; i < steps; i++ {
		a.Advance(&m, target)
		if a.Value-target > overshoot {
			overshoot = a.Value - target
		}
		if a.Value < prev-1e-12 {
			monotonic = false
		}
		prev = a.Value
	}
	return a, overshoot, monotonic
}

// TestSpringConvergesToTarget verifies every damping level settles on a constant target
func TestSpringConvergesToTarget(t *testing.T) {
	for _, damping := range []float64{12, 20, 120, 300} {
		final, _, _ := runSpring(damping, 0.5, 120*60)
		if !final.Settled(0.5, 1e-4) {
			t.Errorf("damping %v: not settled after 60s: %+v", damping, final)
		}
	}
}

// TestSpringOvershootDecreasesWithDamping verifies higher damping overshoots less
func TestSpringOvershootDecreasesWithDamping(t *testing.T) {
	dampings := []float64{5, 10, 15, 19}
	prev := math.Inf(1)
	for _, d := range dampings {
		_, over, _ := runSpring(d, 1, 120*10)
		if over <= 0 {
			t.Fatalf("damping %v: expected overshoot for underdamped spring", d)
		}
		if over >= prev {
			t.Errorf("damping %v: overshoot %v not below %v", d, over, prev)
		}
		prev = over
	}
}

// TestSpringOverdampedIsMonotonic verifies critically and overdamped springs approach without overshoot
func TestSpringOverdampedIsMonotonic(t *testing.T) {
	for _, d := range []float64{20, 100, 200} {
		_, over, mono := runSpring(d, 1, 120*30)
		if over > 1e-9 {
			t.Errorf("damping %v: unexpected overshoot %v", d, over)
		}
		if !mono {
			t.Errorf("damping %v: value did not approach monotonically", d)
		}
	}
}

// TestSpringModelRatios verifies derived oscillator constants
func TestSpringModelRatios(t *testing.T) {
	m := NewSpringModel(testStep, 100, 1, 200)
	if got := m.AngularFrequency(); math.Abs(got-10) > 1e-12 {
		t.Errorf("AngularFrequency = %v, want 10", got)
	}
	if got := m.DampingRatio(); math.Abs(got-10) > 1e-12 {
		t.Errorf("DampingRatio = %v, want 10", got)
	}

	z := NewSpringModel(testStep, 0, 0, -3)
	if z.Mass != 1 || z.Damping != 0 || z.DampingRatio() != 0 {
		t.Errorf("Expected sanitized model, got %+v", z)
	}
}

// TestEulerTracksExactSolution verifies the reference integrator agrees at small steps
func TestEulerTracksExactSolution(t *testing.T) {
	m := NewSpringModel(testStep, 100, 1, 30)
	var exact, euler SpringAxis
	sub := testStep / 16
	for i := 0; i < 240; i++ {
		exact.Advance(&m, 1)
		for j := 0; j < 16; j++ {
			IntegrateEuler(&euler, &m, 1, sub)
		}
	}
	if math.Abs(exact.Value-euler.Value) > 5e-3 {
		t.Errorf("Euler drifted: exact=%v euler=%v", exact.Value, euler.Value)
	}
}

// TestSpringStateSurvivesModelSwap verifies changing damping keeps value and velocity continuous
func TestSpringStateSurvivesModelSwap(t *testing.T) {
	soft := NewSpringModel(testStep, 100, 1, 12)
	stiff := NewSpringModel(testStep, 100, 1, 300)
	var a SpringAxis
	for i := 0; i < 30; i++ {
		a.Advance(&soft, 1)
	}
	before := a
	a.Advance(&stiff, 1)
	if math.IsNaN(a.Value) || math.IsNaN(a.Velocity) {
		t.Fatal("NaN after model swap")
	}
	// One step cannot move further than the pre-swap velocity allows plus the spring pull
	if math.Abs(a.Value-before.Value) > 0.1 {
		t.Errorf("Discontinuous jump across swap: %v -> %v", before.Value, a.Value)
	}
}
