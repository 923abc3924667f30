package sensor

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tilt-carousel/core"
	"github.com/lixenwraith/tilt-carousel/parameter"
	"github.com/lixenwraith/tilt-carousel/status"
)

// Sampler polls a Reader on a fixed interval and publishes the latest corrected sample
// One goroutine writes, any number of readers call Latest; hand-off is an atomic pointer
type Sampler struct {
	reader   Reader
	platform atomic.Uint32
	interval time.Duration

	latest   atomic.Pointer[Sample]
	listener atomic.Pointer[func(Sample)]

	// Unavailability reporting, warn once and note recovery once
	unavailable atomic.Bool
	warned      atomic.Bool
	restored    atomic.Bool

	// Lifecycle
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Cached metric pointers
	statSamples     *atomic.Int64
	statUnavailable *atomic.Bool
	statPlatform    *status.AtomicString
}

// NewSampler creates a stopped sampler
// A nil reader behaves as UnavailableReader, non-positive interval uses the default
func NewSampler(reader Reader, platform Platform, interval time.Duration, reg *status.Registry) *Sampler {
	if reader == nil {
		reader = UnavailableReader{}
	}
	if interval <= 0 {
		interval = parameter.DefaultSensorSampleInterval
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	s := &Sampler{
		reader:          reader,
		interval:        interval,
		stopChan:        make(chan struct{}),
		statSamples:     reg.Ints.Get(status.KeySensorSamples),
		statUnavailable: reg.Bools.Get(status.KeySensorUnavailable),
		statPlatform:    reg.Strings.Get(status.KeySensorPlatform),
	}
	s.SetPlatform(platform)
	return s
}

// Interval returns the polling interval
func (s *Sampler) Interval() time.Duration {
	return s.interval
}

// Platform returns the active axis convention
func (s *Sampler) Platform() Platform {
	return Platform(s.platform.Load())
}

// SetPlatform switches the axis convention for subsequent samples
func (s *Sampler) SetPlatform(p Platform) {
	s.platform.Store(uint32(p))
	s.statPlatform.Store(p.String())
}

// Subscribe registers a listener invoked on the sampling goroutine for every published sample
// Listener must not block; nil removes it
func (s *Sampler) Subscribe(fn func(Sample)) {
	if fn == nil {
		s.listener.Store(nil)
		return
	}
	s.listener.Store(&fn)
}

// Latest implements Source
func (s *Sampler) Latest() (Sample, bool) {
	if p := s.latest.Load(); p != nil {
		return *p, true
	}
	return Sample{}, false
}

// Start begins polling, first read happens immediately
func (s *Sampler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		core.Go(s.loop)
	}
}

// Stop cancels polling and waits for the goroutine to exit
// Safe to call more than once and before Start; a stopped sampler does not restart
func (s *Sampler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	s.running.Store(false)
}

func (s *Sampler) loop() {
	defer s.wg.Done()

	select {
	case <-s.stopChan:
		return
	default:
	}
	s.poll()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.poll()
		}
	}
}

// poll reads once and publishes the result
func (s *Sampler) poll() {
	raw, err := s.reader.Read()
	if err == nil && !raw.Valid() {
		err = fmt.Errorf("%w: non-finite reading", ErrUnavailable)
	}
	if err != nil {
		s.markUnavailable(err)
		return
	}

	sample := s.Platform().Correct(raw)
	if sample.At.IsZero() {
		sample.At = time.Now()
	}
	s.latest.Store(&sample)
	s.statSamples.Add(1)

	if s.unavailable.Swap(false) {
		s.statUnavailable.Store(false)
		if s.restored.CompareAndSwap(false, true) {
			log.Printf("sensor: orientation restored, tilt enabled")
		}
	}

	if fn := s.listener.Load(); fn != nil {
		(*fn)(sample)
	}
}

func (s *Sampler) markUnavailable(err error) {
	s.latest.Store(nil)
	if !s.unavailable.Swap(true) {
		s.statUnavailable.Store(true)
	}
	if s.warned.CompareAndSwap(false, true) {
		log.Printf("sensor: WARNING %v, tilt disabled", err)
	}
}
