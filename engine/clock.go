package engine

import "time"

// Clock supplies the time base for frame deltas
type Clock interface {
	Now() time.Time
}

// RealClock reads the monotonic system clock
type RealClock struct{}

// Now implements Clock
func (RealClock) Now() time.Time {
	return time.Now()
}
