package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/tilt-carousel/sensor"
	"github.com/lixenwraith/tilt-carousel/status"
)

// TestTickUsesClockDelta verifies frame deltas come from the injected clock
func TestTickUsesClockDelta(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	e := New(Options{Variation: "moderate"})
	fc := NewFrameClock(e, clock, 16*time.Millisecond, nil)
	fc.SetVisible([]int{0, 1})

	f := fc.Tick()
	if f.Seq != 1 || f.Delta != 16*time.Millisecond {
		t.Errorf("First tick seq/delta = %d/%v", f.Seq, f.Delta)
	}
	if len(f.Transforms) != 2 {
		t.Errorf("Expected 2 transforms, got %d", len(f.Transforms))
	}

	clock.Advance(20 * time.Millisecond)
	f = fc.Tick()
	if f.Seq != 2 || f.Delta != 20*time.Millisecond {
		t.Errorf("Second tick seq/delta = %d/%v", f.Seq, f.Delta)
	}
}

// TestTickCountsOverruns verifies long gaps between frames are recorded
func TestTickCountsOverruns(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	reg := status.NewRegistry()
	e := New(Options{Registry: reg})
	fc := NewFrameClock(e, clock, 16*time.Millisecond, nil)

	fc.Tick()
	clock.Advance(200 * time.Millisecond)
	fc.Tick()
	if got := reg.Ints.Get(status.KeyFrameOverruns).Load(); got != 1 {
		t.Errorf("Expected 1 overrun, got %d", got)
	}
}

// TestSetVisibleCopies verifies the host can reuse its slice after publishing
func TestSetVisibleCopies(t *testing.T) {
	fc := NewFrameClock(New(Options{}), nil, 0, nil)
	idx := []int{1, 2, 3}
	fc.SetVisible(idx)
	idx[0] = 99
	if got := fc.Visible(); got[0] != 1 {
		t.Errorf("Published slice aliased caller memory: %v", got)
	}
}

// TestFrameClockRunsAndStops verifies the loop emits frames and halts cleanly
func TestFrameClockRunsAndStops(t *testing.T) {
	src := sensor.Fixed{Sample: sensor.Sample{Roll: 0.2, Pitch: 0.7}, Available: true}
	e := New(Options{Variation: "dynamic", Source: src})

	var frames atomic.Int64
	var lastSeq atomic.Uint64
	fc := NewFrameClock(e, nil, 2*time.Millisecond, func(f Frame) {
		frames.Add(1)
		lastSeq.Store(f.Seq)
	})
	fc.SetVisible([]int{0, 1, 2})
	fc.Start()
	fc.Start()

	deadline := time.Now().Add(2 * time.Second)
	for frames.Load() < 5 {
		if time.Now().After(deadline) {
			t.Fatal("Frame loop produced no frames")
		}
		time.Sleep(time.Millisecond)
	}
	fc.Stop()
	fc.Stop()

	n := frames.Load()
	time.Sleep(10 * time.Millisecond)
	if frames.Load() != n {
		t.Error("Frames emitted after Stop")
	}
	if lastSeq.Load() != uint64(n) {
		t.Errorf("Sequence %d does not match frame count %d", lastSeq.Load(), n)
	}
}
