package engine

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tilt-carousel/vmath"
)

// CardTransform is the per-card output of one frame
// Rotations in radians except RotateZ (degrees); translations in pixels
type CardTransform struct {
	RotateY    float64
	RotateX    float64
	TranslateX float64
	TranslateY float64
	RotateZ    float64
	Scale      float64
	ZIndex     int
}

// AngleState is the smoothed tilt shared by every card in a frame
type AngleState struct {
	RotateY    float64
	RotateX    float64
	TranslateX float64
	TranslateY float64
}

// FrameInputs is the consistent snapshot read by the composer within one frame
type FrameInputs struct {
	ScrollPosition float64
	Angles         AngleState
}

// Matrix returns the column-major 4x4 transform for matrix-based hosts
// Order: perspective * translate * rotY * rotX * rotZ * scale; perspective <= 0 disables projection
func (t CardTransform) Matrix(perspective float64) mgl64.Mat4 {
	m := mgl64.Translate3D(t.TranslateX, t.TranslateY, 0).
		Mul4(mgl64.HomogRotate3DY(t.RotateY)).
		Mul4(mgl64.HomogRotate3DX(t.RotateX)).
		Mul4(mgl64.HomogRotate3DZ(vmath.DegToRad(t.RotateZ))).
		Mul4(mgl64.Scale3D(t.Scale, t.Scale, 1))

	if perspective > 0 {
		p := mgl64.Ident4()
		// Row 3, column 2: w' = w - z/d
		p[11] = -1 / perspective
		m = p.Mul4(m)
	}
	return m
}

// Flat reports whether the card carries no tilt or offset
func (t CardTransform) Flat() bool {
	return t.RotateY == 0 && t.RotateX == 0 && t.TranslateX == 0 && t.TranslateY == 0
}
