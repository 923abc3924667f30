package parameter

import (
	"math"
	"strings"
)

// DefaultVariation is the preset used for unknown names
const DefaultVariation = "moderate"

// Variation is an immutable tilt preset
// Angles in radians except RotateZValues (degrees); TranslateFactor in pixels per radian
// Curves are sampled at card deltas [-1, 0, 1]
type Variation struct {
	Name            string
	RotateYRange    [2]float64
	RotateXRange    [2]float64
	TranslateFactor float64
	RotateZValues   [3]float64
	ScaleValues     [3]float64
	// Damping is the spring damping coefficient; lower is springier, higher is stiffer and slower
	Damping float64
}

// symmetric builds a [-a, a] range
func symmetric(a float64) [2]float64 {
	return [2]float64{-a, a}
}

// edge builds a curve with value at both edges and the neutral value at centre
func edge(side, centre float64) [3]float64 {
	return [3]float64{side, centre, side}
}

// tilt builds a rotateZ curve leaning outward on both sides
func tilt(deg float64) [3]float64 {
	return [3]float64{deg, 0, -deg}
}

// variationOrder lists preset names in presentation order
var variationOrder = [...]string{
	"subtle",
	"moderate",
	"intense",
	"classic",
	"minimal",
	"dynamic",
	"smooth",
	"futuristic",
	"professional",
	"luxury",
}

// variations is the preset table, never mutated after init
var variations = map[string]Variation{
	"subtle": {
		RotateYRange:    symmetric(math.Pi / 12),
		RotateXRange:    symmetric(math.Pi / 18),
		TranslateFactor: 20,
		RotateZValues:   tilt(1),
		ScaleValues:     edge(0.95, 1),
		Damping:         150,
	},
	"moderate": {
		RotateYRange:    symmetric(math.Pi / 8),
		RotateXRange:    symmetric(math.Pi / 10),
		TranslateFactor: 30,
		RotateZValues:   tilt(2),
		ScaleValues:     edge(0.9, 1),
		Damping:         120,
	},
	"intense": {
		RotateYRange:    symmetric(math.Pi / 6),
		RotateXRange:    symmetric(math.Pi / 8),
		TranslateFactor: 40,
		RotateZValues:   tilt(5),
		ScaleValues:     edge(0.85, 1),
		Damping:         200,
	},
	"classic": {
		RotateYRange:    symmetric(math.Pi / 10),
		RotateXRange:    symmetric(math.Pi / 12),
		TranslateFactor: 25,
		RotateZValues:   tilt(0),
		ScaleValues:     edge(0.92, 1),
		Damping:         100,
	},
	"minimal": {
		RotateYRange:    symmetric(math.Pi / 24),
		RotateXRange:    symmetric(math.Pi / 36),
		TranslateFactor: 10,
		RotateZValues:   tilt(0),
		ScaleValues:     edge(0.97, 1),
		Damping:         250,
	},
	"dynamic": {
		RotateYRange:    symmetric(math.Pi / 5),
		RotateXRange:    symmetric(math.Pi / 6),
		TranslateFactor: 50,
		RotateZValues:   tilt(8),
		ScaleValues:     edge(0.8, 1),
		Damping:         12,
	},
	"smooth": {
		RotateYRange:    symmetric(math.Pi / 9),
		RotateXRange:    symmetric(math.Pi / 12),
		TranslateFactor: 25,
		RotateZValues:   tilt(2),
		ScaleValues:     edge(0.9, 1),
		Damping:         300,
	},
	"futuristic": {
		RotateYRange:    symmetric(math.Pi / 4),
		RotateXRange:    symmetric(math.Pi / 5),
		TranslateFactor: 60,
		RotateZValues:   tilt(10),
		ScaleValues:     edge(0.75, 1),
		Damping:         18,
	},
	"professional": {
		RotateYRange:    symmetric(math.Pi / 15),
		RotateXRange:    symmetric(math.Pi / 20),
		TranslateFactor: 15,
		RotateZValues:   tilt(1),
		ScaleValues:     edge(0.94, 1),
		Damping:         180,
	},
	"luxury": {
		RotateYRange:    symmetric(math.Pi / 10),
		RotateXRange:    symmetric(math.Pi / 14),
		TranslateFactor: 35,
		RotateZValues:   tilt(3),
		ScaleValues:     edge(0.88, 1),
		Damping:         260,
	},
}

func init() {
	for name, v := range variations {
		v.Name = name
		variations[name] = v
	}
}

// Lookup returns the preset for name, falling back to DefaultVariation
// Matching ignores case and surrounding whitespace
func Lookup(name string) Variation {
	if v, ok := variations[normalize(name)]; ok {
		return v
	}
	return variations[DefaultVariation]
}

// IsKnown reports whether name resolves to a preset without fallback
func IsKnown(name string) bool {
	_, ok := variations[normalize(name)]
	return ok
}

// Names returns preset names in presentation order
func Names() []string {
	out := make([]string, len(variationOrder))
	copy(out, variationOrder[:])
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
