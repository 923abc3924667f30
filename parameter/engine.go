package parameter

import (
	"math"
	"time"
)

// Frame loop & sampling timing
const (
	// FrameInterval is the frame evaluation interval (~60 FPS)
	FrameInterval = time.Second / 60

	// DefaultSensorSampleInterval is the orientation polling interval
	DefaultSensorSampleInterval = 20 * time.Millisecond

	// SpringStep is the fixed integration step used by the angle resolver
	// Frame time is accumulated and consumed in whole steps
	SpringStep = time.Second / 120

	// MaxFrameDelta caps elapsed time fed to the resolver per frame
	// A stalled host (backgrounded app, debugger) resumes smoothly instead of replaying seconds of steps
	MaxFrameDelta = 250 * time.Millisecond
)

// Spring model
const (
	// DefaultStiffness is the spring constant shared by all variations (unit mass)
	// Presets only carry damping; with k=100, m=1 the natural frequency is 10 rad/s
	DefaultStiffness = 100.0

	// SpringMass is the simulated mass of every smoothed axis
	SpringMass = 1.0

	// RestEpsilon is the value/velocity tolerance for rest detection
	RestEpsilon = 1e-4
)

// Tilt geometry
const (
	// BiasAngleDeg is the forward tilt of a device held in hand
	// Subtracted from pitch so a naturally held phone reads as level
	BiasAngleDeg = 40.0

	// BiasAngle is BiasAngleDeg in radians (~0.698)
	BiasAngle = BiasAngleDeg * math.Pi / 180
)

// Composition
const (
	// CenterZIndex is the stacking order of the centred card
	CenterZIndex = 10000

	// DefaultPerspective is the camera distance in pixels used for matrix export
	DefaultPerspective = 1000.0

	// DefaultItemWidth is the card slot width in pixels
	DefaultItemWidth = 300.0
)
