// Package fminbound minimizes a scalar function over a closed interval.
//
// The search combines golden-section steps with successive parabolic
// interpolation (bounded Brent), so smooth objectives converge
// superlinearly while pathological ones still shrink the bracket at the
// golden ratio.
package fminbound

import "math"

// DefaultMaxIter is the default budget of objective evaluations.
const DefaultMaxIter = 500

var (
	sqrtEps    = math.Sqrt(math.Nextafter(1, 2) - 1)
	goldenMean = 0.5 * (3.0 - math.Sqrt(5.0))
)

// Minimize finds an approximate minimizer of f on [lo, hi] to within the
// absolute tolerance xatol. It returns ok == false if the evaluation
// budget was exhausted before the bracket collapsed; the returned point is
// then the best one seen so far.
func Minimize(f func(float64) float64, lo, hi, xatol float64, maxIter int) (float64, bool) {
	a, b := lo, hi

	// Three best points seen so far: xf <= nfc <= fulc by function value.
	xf := a + goldenMean*(b-a)
	nfc, fulc := xf, xf
	fx := f(xf)
	fnfc, ffulc := fx, fx
	evals := 1

	var rat, e float64
	xm := 0.5 * (a + b)
	tol1 := sqrtEps*math.Abs(xf) + xatol/3.0
	tol2 := 2.0 * tol1

	for math.Abs(xf-xm) > tol2-0.5*(b-a) {
		useGolden := true
		if math.Abs(e) > tol1 {
			// Fit a parabola through the three best points.
			r := (xf - nfc) * (fx - ffulc)
			q := (xf - fulc) * (fx - fnfc)
			p := (xf-fulc)*q - (xf-nfc)*r
			q = 2.0 * (q - r)
			if q > 0.0 {
				p = -p
			}
			q = math.Abs(q)
			r = e
			e = rat

			// The parabolic step must fall inside the bracket and move
			// less than half the step before last.
			if math.Abs(p) < math.Abs(0.5*q*r) && p > q*(a-xf) && p < q*(b-xf) {
				useGolden = false
				rat = p / q
				if xf+rat-a < tol2 || b-(xf+rat) < tol2 {
					rat = tol1 * sign(xm-xf)
				}
			}
		}

		if useGolden {
			if xf >= xm {
				e = a - xf
			} else {
				e = b - xf
			}
			rat = goldenMean * e
		}

		// Never evaluate closer than tol1 to the current best point.
		x := xf + sign(rat)*math.Max(math.Abs(rat), tol1)
		fu := f(x)
		evals++

		if fu <= fx {
			if x >= xf {
				a = xf
			} else {
				b = xf
			}
			fulc, ffulc = nfc, fnfc
			nfc, fnfc = xf, fx
			xf, fx = x, fu
		} else {
			if x < xf {
				a = x
			} else {
				b = x
			}
			if fu <= fnfc || nfc == xf {
				fulc, ffulc = nfc, fnfc
				nfc, fnfc = x, fu
			} else if fu <= ffulc || fulc == xf || fulc == nfc {
				fulc, ffulc = x, fu
			}
		}

		xm = 0.5 * (a + b)
		tol1 = sqrtEps*math.Abs(xf) + xatol/3.0
		tol2 = 2.0 * tol1

		if evals >= maxIter {
			return xf, false
		}
	}

	return xf, true
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
