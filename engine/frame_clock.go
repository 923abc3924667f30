package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tilt-carousel/core"
	"github.com/lixenwraith/tilt-carousel/parameter"
	"github.com/lixenwraith/tilt-carousel/status"
)

// Frame is one evaluated frame handed to the host
type Frame struct {
	Seq        uint64
	At         time.Time
	Delta      time.Duration
	Inputs     FrameInputs
	Transforms map[int]CardTransform
}

// Sink consumes frames on the frame goroutine; it must not block
type Sink func(Frame)

// FrameClock drives an Engine on a fixed frame interval in its own goroutine
// Decouples carousel evaluation from host UI work; the host only publishes
// visible indices and consumes frames
type FrameClock struct {
	engine   *Engine
	clock    Clock
	interval time.Duration
	sink     Sink

	visible atomic.Pointer[[]int]

	// Timing, owned by the frame goroutine (or Tick caller)
	mu           sync.Mutex
	lastFrame    time.Time // engine clock
	nextDeadline time.Time // wall clock
	seq          uint64

	// Control
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	statOverruns *atomic.Int64
}

// NewFrameClock creates a stopped frame clock
// Nil clock uses RealClock, non-positive interval uses parameter.FrameInterval
func NewFrameClock(e *Engine, clock Clock, interval time.Duration, sink Sink) *FrameClock {
	if clock == nil {
		clock = RealClock{}
	}
	if interval <= 0 {
		interval = parameter.FrameInterval
	}
	fc := &FrameClock{
		engine:       e,
		clock:        clock,
		interval:     interval,
		sink:         sink,
		stopChan:     make(chan struct{}),
		statOverruns: e.Registry().Ints.Get(status.KeyFrameOverruns),
	}
	empty := []int{}
	fc.visible.Store(&empty)
	return fc
}

// SetVisible publishes the ordered set of rendered card indices
// The slice is copied; safe from any goroutine
func (fc *FrameClock) SetVisible(indices []int) {
	cp := make([]int, len(indices))
	copy(cp, indices)
	fc.visible.Store(&cp)
}

// Visible returns the currently published indices
func (fc *FrameClock) Visible() []int {
	return *fc.visible.Load()
}

// Tick evaluates one frame synchronously using the clock delta since the previous tick
// First tick advances by one interval; must not be called while the loop is running
func (fc *FrameClock) Tick() Frame {
	fc.mu.Lock()
	now := fc.clock.Now()
	dt := fc.interval
	if !fc.lastFrame.IsZero() {
		dt = now.Sub(fc.lastFrame)
	}
	fc.lastFrame = now
	fc.seq++
	seq := fc.seq
	fc.mu.Unlock()

	if dt > 2*fc.interval {
		fc.statOverruns.Add(1)
	}

	transforms := fc.engine.Frame(dt, fc.Visible())
	f := Frame{
		Seq:        seq,
		At:         now,
		Delta:      dt,
		Inputs:     fc.engine.Inputs(),
		Transforms: transforms,
	}
	if fc.sink != nil {
		fc.sink(f)
	}
	return f
}

// Start begins the frame loop
func (fc *FrameClock) Start() {
	if fc.running.CompareAndSwap(false, true) {
		fc.wg.Add(1)
		core.Go(fc.loop)
	}
}

// Stop halts the frame loop and waits for it to exit; idempotent
func (fc *FrameClock) Stop() {
	fc.stopOnce.Do(func() {
		close(fc.stopChan)
	})
	fc.wg.Wait()
	fc.running.Store(false)
}

// loop runs frames on deadlines with drift correction
func (fc *FrameClock) loop() {
	defer fc.wg.Done()

	// Deadlines follow wall time; the engine clock only supplies deltas and may be frozen
	fc.mu.Lock()
	fc.nextDeadline = time.Now().Add(fc.interval)
	fc.mu.Unlock()

	timer := time.NewTimer(fc.interval)
	defer timer.Stop()

	for {
		select {
		case <-fc.stopChan:
			return
		case <-timer.C:
		}

		fc.Tick()

		fc.mu.Lock()
		now := time.Now()
		fc.nextDeadline = fc.nextDeadline.Add(fc.interval)
		// Fell too far behind: resynchronise instead of bursting catch-up frames
		if now.Sub(fc.nextDeadline) > 2*fc.interval {
			fc.nextDeadline = now.Add(fc.interval)
		}
		sleep := fc.nextDeadline.Sub(now)
		fc.mu.Unlock()

		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}
