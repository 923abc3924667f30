package engine

import (
	"math"

	"github.com/lixenwraith/tilt-carousel/parameter"
	"github.com/lixenwraith/tilt-carousel/vmath"
)

// zIndexCurve raises the centred card above its neighbours
var zIndexCurve = vmath.Peak(parameter.CenterZIndex)

// Compose evaluates the transform of the card at slot index
// delta = index - scroll; every channel is a clamp-to-ends curve over [-1, 0, 1]
// so only cards within one slot of centre receive tilt
func Compose(index int, in FrameInputs, v parameter.Variation) CardTransform {
	delta := float64(index) - in.ScrollPosition
	return CardTransform{
		RotateY:    vmath.Peak(in.Angles.RotateY).At(delta),
		RotateX:    vmath.Peak(in.Angles.RotateX).At(delta),
		TranslateX: vmath.Peak(in.Angles.TranslateX).At(delta),
		TranslateY: vmath.Peak(in.Angles.TranslateY).At(delta),
		RotateZ:    vmath.Curve3(v.RotateZValues).At(delta),
		Scale:      vmath.Curve3(v.ScaleValues).At(delta),
		ZIndex:     int(math.Round(zIndexCurve.At(delta))),
	}
}

// Compute evaluates every requested card against one snapshot
// Pure: identical inputs always produce identical output; duplicate indices collapse
func Compute(in FrameInputs, v parameter.Variation, indices []int) map[int]CardTransform {
	out := make(map[int]CardTransform, len(indices))
	for _, idx := range indices {
		out[idx] = Compose(idx, in, v)
	}
	return out
}
