package glasstime

import "math"

// sqrtMachineEpsilon is sqrt(DBL_EPSILON), used to form the stopping
// tolerance the same way the original Brent.h does.
var sqrtMachineEpsilon = math.Sqrt(math.Nextafter(1, 2) - 1)

// BrentMinimize finds the minimum of f over [a,b] to within tolerance
// epsilon, using Brent's golden-section/parabolic-interpolation algorithm
// (Brent, "Algorithms for Minimization Without Derivatives", ch. 5). It
// returns the minimal function value and the location at which it occurs.
//
// The step-size-must-exceed-tol guard and the point-must-not-be-within-tol
// of-the-endpoints guard are preserved exactly, per the reference
// implementation.
func BrentMinimize(f func(float64) float64, a, b, epsilon float64) (fMin, xMin float64) {
	const c = 0.5 * (3.0 - 2.23606797749979) // 0.5*(3-sqrt(5))

	x := a + c*(b-a)
	v := x
	w := x
	var d, e float64
	fx := f(x)
	fv := fx
	fw := fx

	for {
		m := 0.5 * (a + b)
		tol := sqrtMachineEpsilon*math.Abs(x) + epsilon
		t2 := 2.0 * tol

		if math.Abs(x-m) <= t2-0.5*(b-a) {
			break
		}

		var p, q, r float64
		useGolden := true
		if math.Abs(e) > tol {
			// fit a parabola
			r = (x - w) * (fx - fv)
			q = (x - v) * (fx - fw)
			p = (x-v)*q - (x-w)*r
			q = 2.0 * (q - r)
			if q > 0.0 {
				p = -p
			} else {
				q = -q
			}
			r = e
			e = d
			if math.Abs(p) < math.Abs(0.5*q*r) && p > q*(a-x) && p < q*(b-x) {
				useGolden = false
			}
		}

		var u float64
		if !useGolden {
			// parabolic interpolation step
			d = p / q
			u = x + d
			if u-a < t2 || b-u < t2 {
				if x < m {
					d = tol
				} else {
					d = -tol
				}
			}
		} else {
			// golden section step
			if x < m {
				e = b - x
			} else {
				e = a - x
			}
			d = c * e
		}

		if math.Abs(d) >= tol {
			u = x + d
		} else if d > 0.0 {
			u = x + tol
		} else {
			u = x - tol
		}

		fu := f(u)

		if fu <= fx {
			if u < x {
				b = x
			} else {
				a = x
			}
			v = w
			fv = fw
			w = x
			fw = fx
			x = u
			fx = fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			if fu <= fw || w == x {
				v = w
				fv = fw
				w = u
				fw = fu
			} else if fu <= fv || v == x || v == w {
				v = u
				fv = fu
			}
		}
	}

	return fx, x
}
