package godas

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// elementLayout is the resolved transducer geometry: element centers, the
// angle of each element normal to the z axis, and whether the array is
// curved.
type elementLayout struct {
	x, z, theta []float64
	convex      bool
}

// layoutFor resolves the geometry for n channels from resolved parameters.
func layoutFor(p Params, n int) (elementLayout, error) {
	if p.Elements != nil {
		return explicitLayout(p.Elements, n)
	}
	if math.IsInf(p.Radius, 1) {
		return linearLayout(n, p.Pitch), nil
	}
	return convexLayout(n, p.Pitch, p.Radius)
}

func linearLayout(n int, pitch float64) elementLayout {
	lay := elementLayout{
		x:     make([]float64, n),
		z:     make([]float64, n),
		theta: make([]float64, n),
	}
	half := float64(n-1) / 2
	for i := range lay.x {
		lay.x[i] = (float64(i) - half) * pitch
	}
	return lay
}

// convexLayout places n elements on an arc of the given radius. The central
// elements sit at the top of the arc and the outermost ones touch z = 0, so
// the array bulges toward the imaging region.
func convexLayout(n int, pitch, radius float64) (elementLayout, error) {
	if pitch >= 2*radius {
		return elementLayout{}, cfgErrf("Radius", "radius of curvature %v is too small for a pitch of %v", radius, pitch)
	}
	lay := elementLayout{
		x:      make([]float64, n),
		z:      make([]float64, n),
		theta:  make([]float64, n),
		convex: true,
	}
	chord := 2 * radius * math.Sin(math.Asin(pitch/(2*radius))*float64(n-1))
	h := math.Sqrt(radius*radius - chord*chord/4) // apothem of the arc
	th0 := math.Atan2(-chord/2, h)
	th1 := math.Atan2(chord/2, h)
	for i := range lay.x {
		t := th0
		if n > 1 {
			t += (th1 - th0) * float64(i) / float64(n-1)
		}
		lay.theta[i] = t
		lay.x[i] = radius * math.Sin(t)
		lay.z[i] = radius*math.Cos(t) - h
	}
	return lay, nil
}

// explicitLayout reads user-supplied element coordinates: a vector of x
// positions, a 2-row matrix of (x; z), or a 2-column matrix of (x, z). For
// the ambiguous 2x2 case the 2-row reading wins. The normals are taken
// parallel to the z axis.
func explicitLayout(e *mat.Dense, n int) (elementLayout, error) {
	r, c := e.Dims()
	lay := elementLayout{theta: make([]float64, n)}
	switch {
	case r == 2 && c == n:
		lay.x = mat.Row(nil, 0, e)
		lay.z = mat.Row(nil, 1, e)
	case c == 2 && r == n:
		lay.x = mat.Col(nil, 0, e)
		lay.z = mat.Col(nil, 1, e)
	case r == 1 && c == n:
		lay.x = mat.Row(nil, 0, e)
		lay.z = make([]float64, n)
	case c == 1 && r == n:
		lay.x = mat.Col(nil, 0, e)
		lay.z = make([]float64, n)
	default:
		return elementLayout{}, cfgErrf("Elements",
			"must be a vector, a 2-row or a 2-column matrix of element coordinates sized for %d channels, got %dx%d", n, r, c)
	}
	return lay, nil
}

// ElementPositions returns the element center coordinates implied by p for
// an n-element array. It is a convenience for computing transmit delays and
// synthesizing data; Build performs the same resolution internally.
func ElementPositions(p Params, n int) (xe, ze []float64, err error) {
	if n < 1 {
		return nil, nil, cfgErrf("Channels", "need at least one element, got %d", n)
	}
	if p.Radius == 0 {
		p.Radius = math.Inf(1)
	}
	if math.IsNaN(p.Radius) || p.Radius < 0 {
		return nil, nil, cfgErrf("Radius", "must be positive (or +Inf for a linear array), got %v", p.Radius)
	}
	if p.Elements != nil && !math.IsInf(p.Radius, 1) {
		return nil, nil, cfgErrf("Elements", "explicit element positions cannot be combined with a finite Radius")
	}
	if p.Elements == nil && (!(p.Pitch > 0) || math.IsInf(p.Pitch, 0)) {
		return nil, nil, cfgErrf("Pitch", "a positive pitch is required, got %v", p.Pitch)
	}
	lay, err := layoutFor(p, n)
	if err != nil {
		return nil, nil, err
	}
	return lay.x, lay.z, nil
}
