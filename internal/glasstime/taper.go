package glasstime

import "math"

// Taper is a four-knot piecewise-cosine weighting window: zero below X1,
// cosine-ramped to one across [X1,X2], constant one across [X2,X3],
// cosine-ramped back to zero across [X3,X4], and zero above X4.
type Taper struct {
	X1, X2, X3, X4 float64
}

// NewTaper constructs a Taper, panicking if the knots are not non-decreasing.
func NewTaper(x1, x2, x3, x4 float64) Taper {
	if !(x1 <= x2 && x2 <= x3 && x3 <= x4) {
		panic("glasstime: taper knots must be non-decreasing")
	}
	return Taper{X1: x1, X2: x2, X3: x3, X4: x4}
}

// Value evaluates the taper weight at x.
func (t Taper) Value(x float64) float64 {
	switch {
	case x < t.X1:
		return 0
	case x < t.X2:
		return cosineRamp(x, t.X1, t.X2)
	case x <= t.X3:
		return 1
	case x < t.X4:
		return 1 - cosineRamp(x, t.X3, t.X4)
	default:
		return 0
	}
}

// cosineRamp returns a 0->1 cosine ramp as x moves from lo to hi.
func cosineRamp(x, lo, hi float64) float64 {
	if hi == lo {
		return 1
	}
	frac := (x - lo) / (hi - lo)
	return 0.5 * (1 - math.Cos(math.Pi*frac))
}
