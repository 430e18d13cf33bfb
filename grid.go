package godas

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// CartesianGrid returns the flattened coordinates of an nx-by-nz rectangular
// imaging grid spanning [x0, x1] x [z0, z1], with depth varying fastest:
// point p sits at lateral index p/nz and depth index p%nz.
func CartesianGrid(x0, x1 float64, nx int, z0, z1 float64, nz int) (x, z []float64, err error) {
	if nx < 1 || nz < 1 {
		return nil, nil, cfgErrf("grid", "dimensions must be at least 1x1, got %dx%d", nx, nz)
	}
	xs := line(x0, x1, nx)
	zs := line(z0, z1, nz)
	x = make([]float64, 0, nx*nz)
	z = make([]float64, 0, nx*nz)
	for _, xv := range xs {
		for _, zv := range zs {
			x = append(x, xv)
			z = append(z, zv)
		}
	}
	return x, z, nil
}

// SectorGrid returns the flattened coordinates of a polar fan centered on
// the origin: nr radii spanning [r0, r1] by nth angles spanning [th0, th1]
// measured from the z axis, with radius varying fastest. Points are mapped
// as x = r*sin(th), z = r*cos(th).
func SectorGrid(r0, r1 float64, nr int, th0, th1 float64, nth int) (x, z []float64, err error) {
	if nr < 1 || nth < 1 {
		return nil, nil, cfgErrf("grid", "dimensions must be at least 1x1, got %dx%d", nr, nth)
	}
	if r0 < 0 || r1 < 0 {
		return nil, nil, cfgErrf("grid", "radii must be non-negative, got [%v, %v]", r0, r1)
	}
	rs := line(r0, r1, nr)
	ths := line(th0, th1, nth)
	x = make([]float64, 0, nr*nth)
	z = make([]float64, 0, nr*nth)
	for _, th := range ths {
		s, c := math.Sincos(th)
		for _, r := range rs {
			x = append(x, r*s)
			z = append(z, r*c)
		}
	}
	return x, z, nil
}

// line is a linspace that tolerates a single-point span.
func line(a, b float64, n int) []float64 {
	if n == 1 {
		return []float64{a}
	}
	return floats.Span(make([]float64, n), a, b)
}
