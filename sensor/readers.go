package sensor

import (
	"math"
	"sync/atomic"
	"time"
)

// MockReader produces a smoothly wandering orientation for demos and soak tests
// Amplitudes in radians; phase advances with wall time since creation
type MockReader struct {
	start      time.Time
	now        func() time.Time
	RollAmp    float64
	PitchAmp   float64
	PitchBase  float64
	RollSpeed  float64
	PitchSpeed float64
}

// NewMockReader creates a mock reader centred on a hand-held forward tilt
func NewMockReader(now func() time.Time) *MockReader {
	if now == nil {
		now = time.Now
	}
	return &MockReader{
		start:      now(),
		now:        now,
		RollAmp:    0.35,
		PitchAmp:   0.25,
		PitchBase:  0.7,
		RollSpeed:  1.0,
		PitchSpeed: 0.7,
	}
}

// Read implements Reader
func (m *MockReader) Read() (Sample, error) {
	now := m.now()
	elapsed := now.Sub(m.start).Seconds()
	return Sample{
		Roll:  m.RollAmp * math.Sin(elapsed*m.RollSpeed),
		Pitch: m.PitchBase + m.PitchAmp*math.Cos(elapsed*m.PitchSpeed),
		At:    now,
	}, nil
}

// StaticReader always returns the same reading
type StaticReader struct {
	Roll, Pitch float64
}

// Read implements Reader
func (r StaticReader) Read() (Sample, error) {
	return Sample{Roll: r.Roll, Pitch: r.Pitch, At: time.Now()}, nil
}

// UnavailableReader models a device without orientation hardware
type UnavailableReader struct{}

// Read implements Reader
func (UnavailableReader) Read() (Sample, error) {
	return Sample{}, ErrUnavailable
}

// ManualReader is a Reader whose angles are set from another goroutine
// Used by interactive hosts that drive tilt from keyboard or pointer input
type ManualReader struct {
	roll, pitch atomic.Uint64
	offline     atomic.Bool
}

// Set stores the raw angles in radians
func (r *ManualReader) Set(roll, pitch float64) {
	r.roll.Store(math.Float64bits(roll))
	r.pitch.Store(math.Float64bits(pitch))
}

// Nudge adds deltas to the stored angles
// Not atomic across axes; intended for a single input goroutine
func (r *ManualReader) Nudge(dRoll, dPitch float64) {
	roll, pitch := r.Angles()
	r.Set(roll+dRoll, pitch+dPitch)
}

// Angles returns the stored raw angles
func (r *ManualReader) Angles() (roll, pitch float64) {
	return math.Float64frombits(r.roll.Load()), math.Float64frombits(r.pitch.Load())
}

// SetOffline toggles simulated hardware loss
func (r *ManualReader) SetOffline(offline bool) {
	r.offline.Store(offline)
}

// Offline reports simulated hardware loss
func (r *ManualReader) Offline() bool {
	return r.offline.Load()
}

// Read implements Reader
func (r *ManualReader) Read() (Sample, error) {
	if r.offline.Load() {
		return Sample{}, ErrUnavailable
	}
	roll, pitch := r.Angles()
	return Sample{Roll: roll, Pitch: pitch, At: time.Now()}, nil
}
