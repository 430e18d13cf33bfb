package godas

import "math"

// sinc is the normalized cardinal sine sin(pi*x)/(pi*x), with sinc(0) = 1.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// autoFNumber estimates the receive f-number from the element directivity:
// it finds the steering angle at which a rigid-baffle element of the given
// width radiates at 0.71 of its axial amplitude for the shortest wavelength
// in the band, then converts that angle to an aperture ratio.
func autoFNumber(width, lambdaMin, rxAngle float64) float64 {
	rxa := math.Abs(rxAngle)
	gap := func(th float64) float64 {
		s := math.Sin(th + rxa)
		return math.Abs(math.Cos(th+rxa)*sinc(width/lambdaMin*s) - 0.71)
	}
	alpha := goldenSectionMin(gap, 0, math.Pi/2-rxa, math.Pi/100)
	return 1 / (2 * math.Tan(alpha))
}

// goldenSectionMin minimizes f over [a, b], shrinking the bracket by the
// golden ratio until it is narrower than tol, and returns its midpoint.
func goldenSectionMin(f func(float64) float64, a, b, tol float64) float64 {
	const invPhi = 0.6180339887498949 // (sqrt(5)-1)/2
	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	fc, fd := f(c), f(d)
	for b-a > tol {
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - invPhi*(b-a)
			fc = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + invPhi*(b-a)
			fd = f(d)
		}
	}
	return (a + b) / 2
}
