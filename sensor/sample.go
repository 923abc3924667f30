// Package sensor provides device-orientation sampling for the tilt engine
// Platform adapters implement Reader; the engine consumes the Source capability
package sensor

import (
	"errors"
	"time"

	"github.com/lixenwraith/tilt-carousel/vmath"
)

// ErrUnavailable is returned by readers when orientation hardware or permission is missing
var ErrUnavailable = errors.New("orientation sensor unavailable")

// Sample is one orientation reading in radians
type Sample struct {
	Roll  float64
	Pitch float64
	At    time.Time
}

// Valid reports whether both angles are finite
func (s Sample) Valid() bool {
	return vmath.Finite(s.Roll) && vmath.Finite(s.Pitch)
}

// Reader is a platform orientation adapter
// Read returns the current raw reading or ErrUnavailable
type Reader interface {
	Read() (Sample, error)
}

// Source is the capability the engine depends on
// Latest returns false while no sample is available
type Source interface {
	Latest() (Sample, bool)
}

// Fixed is a Source with a constant reading, used for synthetic input
type Fixed struct {
	Sample    Sample
	Available bool
}

// Latest implements Source
func (f Fixed) Latest() (Sample, bool) {
	return f.Sample, f.Available
}

// None is a Source that never has a sample
var None Source = Fixed{}
