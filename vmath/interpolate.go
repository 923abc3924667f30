package vmath

// Interpolate maps x through the piecewise-linear curve defined by xs/ys
// xs must be strictly ascending and the same length as ys (at least 2 points)
// Inputs outside [xs[0], xs[n-1]] return the boundary value, never extrapolated
func Interpolate(x float64, xs, ys []float64) float64 {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return 0
	}
	if n == 1 || x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}

	// Linear scan: curves in the engine have three points
	for i := 1; i < n; i++ {
		if x <= xs[i] {
			x0, x1 := xs[i-1], xs[i]
			span := x1 - x0
			if span <= 0 {
				return ys[i]
			}
			return Lerp(ys[i-1], ys[i], (x-x0)/span)
		}
	}
	return ys[n-1]
}

// Curve3 is a three-point curve over the unit window [-1, 0, 1]
type Curve3 [3]float64

// unitWindow is the shared domain of every Curve3
var unitWindow = [3]float64{-1, 0, 1}

// At evaluates the curve at x with clamp-to-ends policy
// Specialised form of Interpolate that avoids slicing in the per-card hot path
func (c Curve3) At(x float64) float64 {
	switch {
	case x <= unitWindow[0]:
		return c[0]
	case x >= unitWindow[2]:
		return c[2]
	case x == unitWindow[1]:
		return c[1]
	case x <= unitWindow[1]:
		return Lerp(c[0], c[1], x-unitWindow[0])
	default:
		return Lerp(c[1], c[2], x-unitWindow[1])
	}
}

// Peak builds a curve that is v at the centre and zero at both edges
func Peak(v float64) Curve3 {
	return Curve3{0, v, 0}
}
