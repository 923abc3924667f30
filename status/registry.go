package status

import (
	"strconv"
	"sync/atomic"
)

// Metric keys shared by engine, sampler and tools
const (
	KeyFrameCount        = "frame.count"
	KeyFrameCards        = "frame.cards"
	KeyFrameOverruns     = "frame.overruns"
	KeySensorSamples     = "sensor.samples"
	KeySensorUnavailable = "sensor.unavailable"
	KeySensorPlatform    = "sensor.platform"
	KeyAngleRotateY      = "angle.rotate_y"
	KeyAngleRotateX      = "angle.rotate_x"
	KeyScrollIndex       = "scroll.index"
	KeyVariation         = "engine.variation"
)

// Registry is the central metrics facade
// Components cache cell pointers at construction; hot paths write atomics directly
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of registered cells across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Line is one formatted metric for display
type Line struct {
	Key   string
	Value string
}

// Snapshot formats every metric, grouped by type and sorted by key within each group
func (r *Registry) Snapshot() []Line {
	out := make([]Line, 0, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) {
		out = append(out, Line{k, strconv.FormatBool(v.Load())})
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out = append(out, Line{k, strconv.FormatInt(v.Load(), 10)})
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out = append(out, Line{k, strconv.FormatFloat(v.Get(), 'f', 4, 64)})
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		out = append(out, Line{k, v.Load()})
	})
	return out
}
