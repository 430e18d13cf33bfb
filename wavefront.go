package godas

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// txFront is the densified transmit wavefront: virtual source positions and
// firing delays from which the transmit distance to a grid point is taken as
// a minimum over the front.
type txFront struct {
	x, z, delay []float64
}

// activeRun locates the transmitting elements (finite delays) and checks
// that they form a single contiguous block.
func activeRun(delays []float64) (first, n int, err error) {
	first = -1
	runs := 0
	for i, d := range delays {
		if math.IsNaN(d) {
			continue
		}
		if i == 0 || math.IsNaN(delays[i-1]) {
			runs++
		}
		if first < 0 {
			first = i
		}
		n++
	}
	if n == 0 {
		return 0, 0, cfgErrf("TXDelay", "at least one element must transmit (all delays are NaN)")
	}
	if runs > 1 {
		return 0, 0, cfgErrf("TXDelay", "transmitting elements must form one contiguous block, found %d blocks", runs)
	}
	return first, n, nil
}

// densifyFront resamples the active sub-aperture onto a grid four times
// finer, so the minimum over the front tracks the true wavefront between
// elements. Element positions are resampled with a shape-preserving cubic;
// delays and elevations with a not-a-knot spline.
func densifyFront(lay elementLayout, delays []float64, first, n int) (txFront, error) {
	xa := lay.x[first : first+n]
	za := lay.z[first : first+n]
	da := delays[first : first+n]

	if n == 1 {
		return txFront{
			x:     []float64{xa[0]},
			z:     []float64{za[0]},
			delay: []float64{da[0]},
		}, nil
	}

	t := make([]float64, n)
	floats.Span(t, 0, float64(n-1))
	ti := floats.Span(make([]float64, 4*n), 0, float64(n-1))

	xi, err := resampled(posFitter(n), t, xa, ti)
	if err != nil {
		return txFront{}, err
	}
	var zi []float64
	if flat(za) {
		zi = make([]float64, len(ti))
	} else {
		zi, err = resampled(smoothFitter(n), t, za, ti)
		if err != nil {
			return txFront{}, err
		}
	}
	di, err := resampled(smoothFitter(n), t, da, ti)
	if err != nil {
		return txFront{}, err
	}
	return txFront{x: xi, z: zi, delay: di}, nil
}

// posFitter interpolates element positions. The cubic fitters need at least
// three knots, so two transmitting elements fall back to a straight segment.
func posFitter(n int) interp.FittablePredictor {
	if n == 2 {
		return &interp.PiecewiseLinear{}
	}
	return &interp.FritschButland{}
}

func smoothFitter(n int) interp.FittablePredictor {
	if n == 2 {
		return &interp.PiecewiseLinear{}
	}
	return &interp.NotAKnotCubic{}
}

func resampled(fit interp.FittablePredictor, xs, ys, grid []float64) ([]float64, error) {
	if err := fit.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("godas: transmit front interpolation: %w", err)
	}
	out := make([]float64, len(grid))
	for i, g := range grid {
		out[i] = fit.Predict(g)
	}
	return out, nil
}

func flat(zs []float64) bool {
	for _, z := range zs {
		if z != 0 {
			return false
		}
	}
	return true
}

// distance returns the transmit path length to (x, z): the minimum over the
// front of the firing offset delay*c plus the geometric distance.
func (f txFront) distance(c, x, z float64) float64 {
	min := math.Inf(1)
	for i := range f.x {
		d := f.delay[i]*c + math.Hypot(x-f.x[i], z-f.z[i])
		if d < min {
			min = d
		}
	}
	return min
}
