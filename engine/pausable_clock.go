package engine

import (
	"sync"
	"time"
)

// PausableClock freezes a base clock while paused
// Frames ticked during a pause see a zero delta, so springs hold their state
// and resume without a jump when the host comes back
type PausableClock struct {
	mu sync.Mutex

	base        Clock
	paused      bool
	pauseStart  time.Time // base time when the current pause began
	totalPaused time.Duration
}

// NewPausableClock wraps base; nil uses RealClock
func NewPausableClock(base Clock) *PausableClock {
	if base == nil {
		base = RealClock{}
	}
	return &PausableClock{base: base}
}

// Now returns base time minus all paused time, frozen during a pause
func (pc *PausableClock) Now() time.Time {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return pc.pauseStart.Add(-pc.totalPaused)
	}
	return pc.base.Now().Add(-pc.totalPaused)
}

// Pause stops time advancement; no-op if already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.base.Now()
}

// Resume continues time advancement; no-op if running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.paused {
		return
	}
	pc.totalPaused += pc.base.Now().Sub(pc.pauseStart)
	pc.paused = false
	pc.pauseStart = time.Time{}
}

// Toggle flips the pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.Paused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// Paused reports the pause state
func (pc *PausableClock) Paused() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.paused
}

// TotalPaused returns cumulative pause time including an ongoing pause
func (pc *PausableClock) TotalPaused() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	total := pc.totalPaused
	if pc.paused {
		total += pc.base.Now().Sub(pc.pauseStart)
	}
	return total
}
