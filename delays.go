package godas

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// PlaneWaveDelays returns the transmit delays that steer a plane wave at the
// given angle from the z axis across the elements, shifted so the earliest
// firing is at time zero.
func PlaneWaveDelays(xe, ze []float64, angle, c float64) ([]float64, error) {
	if err := checkElements(xe, ze); err != nil {
		return nil, err
	}
	if !(c > 0) || math.IsInf(c, 0) {
		return nil, cfgErrf("SoundSpeed", "must be positive and finite, got %v", c)
	}
	d := make([]float64, len(xe))
	sa, ca := math.Sincos(angle)
	for i := range d {
		d[i] = (xe[i]*sa + ze[i]*ca) / c
	}
	floats.AddConst(-floats.Min(d), d)
	return d, nil
}

// FocusDelays returns the transmit delays that focus the beam at (xf, zf).
// A positive zf focuses in front of the array; a negative zf places a
// virtual source behind it, producing a diverging wave. The earliest firing
// is at time zero.
func FocusDelays(xe, ze []float64, xf, zf, c float64) ([]float64, error) {
	if err := checkElements(xe, ze); err != nil {
		return nil, err
	}
	if !(c > 0) || math.IsInf(c, 0) {
		return nil, cfgErrf("SoundSpeed", "must be positive and finite, got %v", c)
	}
	if zf == 0 {
		return nil, cfgErrf("focus", "the focus depth must be nonzero; use PlaneWaveDelays for an unfocused wave")
	}
	d := make([]float64, len(xe))
	for i := range d {
		d[i] = math.Hypot(xf-xe[i], zf-ze[i])
	}
	if zf > 0 {
		far := floats.Max(d)
		for i := range d {
			d[i] = (far - d[i]) / c
		}
	} else {
		near := floats.Min(d)
		for i := range d {
			d[i] = (d[i] - near) / c
		}
	}
	return d, nil
}

func checkElements(xe, ze []float64) error {
	if len(xe) == 0 {
		return cfgErrf("Elements", "need at least one element position")
	}
	if len(xe) != len(ze) {
		return cfgErrf("Elements", "xe and ze must have the same length, got %d and %d", len(xe), len(ze))
	}
	return nil
}
