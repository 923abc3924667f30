// Package engine fuses scroll position and device orientation into per-card 3D transforms
package engine

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tilt-carousel/parameter"
	"github.com/lixenwraith/tilt-carousel/scroll"
	"github.com/lixenwraith/tilt-carousel/sensor"
	"github.com/lixenwraith/tilt-carousel/status"
)

// Options configures an Engine
type Options struct {
	// Variation is a preset name; unknown names resolve to the default preset
	Variation string
	// Stiffness overrides the shared spring constant when positive
	Stiffness float64
	// Source provides orientation; nil means no sensor
	Source sensor.Source
	// Registry receives metrics; nil creates a private one
	Registry *status.Registry
}

// Engine is the single evaluation context of the carousel
// Frame must be called from one goroutine; Scroll, SetVariation and the read-only
// accessors are safe from any goroutine
type Engine struct {
	scroll   scroll.Position
	source   sensor.Source
	resolver *Resolver

	// Variation hand-off: staged by any goroutine, applied at the next frame
	pending atomic.Pointer[parameter.Variation]
	current atomic.Pointer[parameter.Variation]

	// Last evaluated snapshot, published for observers
	last atomic.Pointer[FrameInputs]

	registry      *status.Registry
	statFrames    *atomic.Int64
	statCards     *atomic.Int64
	statRotateY   *status.AtomicFloat
	statRotateX   *status.AtomicFloat
	statScroll    *status.AtomicFloat
	statVariation *status.AtomicString
}

// New creates an engine at rest with zero tilt
func New(opts Options) *Engine {
	src := opts.Source
	if src == nil {
		src = sensor.None
	}
	reg := opts.Registry
	if reg == nil {
		reg = status.NewRegistry()
	}
	v := parameter.Lookup(opts.Variation)

	e := &Engine{
		source:        src,
		resolver:      NewResolver(v, opts.Stiffness),
		registry:      reg,
		statFrames:    reg.Ints.Get(status.KeyFrameCount),
		statCards:     reg.Ints.Get(status.KeyFrameCards),
		statRotateY:   reg.Floats.Get(status.KeyAngleRotateY),
		statRotateX:   reg.Floats.Get(status.KeyAngleRotateX),
		statScroll:    reg.Floats.Get(status.KeyScrollIndex),
		statVariation: reg.Strings.Get(status.KeyVariation),
	}
	e.current.Store(&v)
	e.last.Store(&FrameInputs{})
	e.statVariation.Store(v.Name)
	return e
}

// Scroll returns the scroll position source fed by the host
func (e *Engine) Scroll() *scroll.Position {
	return &e.scroll
}

// Registry returns the metrics registry
func (e *Engine) Registry() *status.Registry {
	return e.registry
}

// SetVariation stages a preset switch for the next frame and returns the resolved preset
// Unknown names resolve to the default preset
func (e *Engine) SetVariation(name string) parameter.Variation {
	v := parameter.Lookup(name)
	e.pending.Store(&v)
	return v
}

// Variation returns the preset used by the most recent frame, or the staged one before any frame
func (e *Engine) Variation() parameter.Variation {
	if p := e.pending.Load(); p != nil {
		return *p
	}
	return *e.current.Load()
}

// Inputs returns the snapshot of the most recent frame
func (e *Engine) Inputs() FrameInputs {
	return *e.last.Load()
}

// Resolver exposes the angle resolver; only the frame goroutine may use it
func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// Frame advances the simulation by dt and evaluates the given cards
// Sequence: apply staged preset, read sensor, integrate springs, snapshot, compose
func (e *Engine) Frame(dt time.Duration, indices []int) map[int]CardTransform {
	if v := e.pending.Swap(nil); v != nil {
		e.resolver.SetVariation(*v)
		e.current.Store(v)
		e.statVariation.Store(v.Name)
	}

	sample, ok := e.source.Latest()
	e.resolver.Advance(dt, sample, ok)

	in := FrameInputs{
		ScrollPosition: e.scroll.Index(),
		Angles:         e.resolver.State(),
	}
	e.last.Store(&in)

	out := Compute(in, e.resolver.Variation(), indices)

	e.statFrames.Add(1)
	e.statCards.Store(int64(len(out)))
	e.statRotateY.Set(in.Angles.RotateY)
	e.statRotateX.Set(in.Angles.RotateX)
	e.statScroll.Set(in.ScrollPosition)
	return out
}

// AtRest reports whether the springs have settled; frame goroutine only
func (e *Engine) AtRest() bool {
	return e.resolver.AtRest(parameter.RestEpsilon)
}
