package scroll

import (
	"math"
	"time"

	"github.com/lixenwraith/tilt-carousel/parameter"
	"github.com/lixenwraith/tilt-carousel/physics"
)

// Snapper animates a scroll offset toward a card slot with a critically damped spring
// Drives Position from a host without native scroll physics; not safe for concurrent use
type Snapper struct {
	pos       *Position
	itemWidth float64
	model     physics.SpringModel
	axis      physics.SpringAxis
	target    float64
	acc       time.Duration
}

// NewSnapper creates a snapper resting at the position's current offset
func NewSnapper(pos *Position, itemWidth float64) *Snapper {
	k := parameter.DefaultStiffness
	m := parameter.SpringMass
	s := &Snapper{
		pos:       pos,
		itemWidth: itemWidth,
		model:     physics.NewSpringModel(parameter.SpringStep, k, m, 2*math.Sqrt(k*m)),
	}
	s.axis.Value = pos.Offset(itemWidth)
	s.target = s.axis.Value
	return s
}

// Target returns the slot being approached
func (s *Snapper) Target() int {
	return int(math.Round(s.target / s.itemWidth))
}

// SnapTo sets the destination slot
func (s *Snapper) SnapTo(index int) {
	s.target = float64(index) * s.itemWidth
}

// Step moves the destination by delta slots relative to the current destination
func (s *Snapper) Step(delta int) {
	s.SnapTo(s.Target() + delta)
}

// Drag shifts the offset directly and retargets to the nearest slot
func (s *Snapper) Drag(pixels float64) {
	s.axis.Value += pixels
	s.axis.Velocity = 0
	s.pos.Update(s.axis.Value, s.itemWidth)
	s.target = math.Round(s.axis.Value/s.itemWidth) * s.itemWidth
}

// Advance integrates the spring by dt and writes the offset to the position
// Returns the resulting index coordinate
func (s *Snapper) Advance(dt time.Duration) float64 {
	if dt > parameter.MaxFrameDelta {
		dt = parameter.MaxFrameDelta
	}
	if dt > 0 {
		s.acc += dt
	}
	for s.acc >= s.model.Step {
		s.axis.Advance(&s.model, s.target)
		s.acc -= s.model.Step
	}
	if s.Settled() {
		s.axis.Value = s.target
		s.axis.Velocity = 0
	}
	return s.pos.Update(s.axis.Value, s.itemWidth)
}

// Settled reports whether the offset is within half a pixel of the destination
func (s *Snapper) Settled() bool {
	return s.axis.Settled(s.target, 0.5)
}
