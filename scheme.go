package godas

import (
	"math"
	"strings"
)

// Scheme selects the fast-time interpolation stencil used when a computed
// travel time falls between two samples. Wider stencils reduce the
// interpolation error of the beamformed image at the cost of a denser
// operator.
type Scheme int

const (
	// Linear is the default two-tap stencil.
	Linear Scheme = iota
	// Nearest rounds to the closest sample, one tap of weight 1.
	Nearest
	// Quadratic fits a three-tap Lagrange parabola.
	Quadratic
	// Lanczos3 is a four-tap three-lobe Lanczos kernel.
	Lanczos3
	// FivePoint is a five-tap least-squares parabola, the only smoothing
	// stencil: it does not reproduce the samples exactly.
	FivePoint
	// Lanczos5 is a six-tap five-lobe Lanczos kernel.
	Lanczos5
)

var schemeNames = map[Scheme]string{
	Nearest:   "nearest",
	Linear:    "linear",
	Quadratic: "quadratic",
	Lanczos3:  "lanczos3",
	FivePoint: "5points",
	Lanczos5:  "lanczos5",
}

// ParseScheme resolves a scheme name. Names are matched case-insensitively.
func ParseScheme(name string) (Scheme, error) {
	lower := strings.ToLower(name)
	for s, n := range schemeNames {
		if n == lower {
			return s, nil
		}
	}
	return 0, cfgErrf("scheme", "unknown interpolation scheme %q", name)
}

func (s Scheme) String() string {
	if n, ok := schemeNames[s]; ok {
		return n
	}
	return "invalid"
}

func (s Scheme) valid() bool {
	_, ok := schemeNames[s]
	return ok
}

// Taps returns the stencil width in samples.
func (s Scheme) Taps() int {
	return [...]int{Linear: 2, Nearest: 1, Quadratic: 3, Lanczos3: 4, FivePoint: 5, Lanczos5: 6}[s]
}

// tailMargin is the number of samples the fast-time index must stay below
// nl-1 so the stencil's trailing taps remain inside the channel.
func (s Scheme) tailMargin() int {
	return [...]int{Linear: 1, Nearest: 0, Quadratic: 2, Lanczos3: 2, FivePoint: 2, Lanczos5: 3}[s]
}

// inRange reports whether a fractional fast-time index can be interpolated
// within a channel of nl samples.
func (s Scheme) inRange(idx float64, nl int) bool {
	if s == Nearest {
		r := math.Round(idx)
		return r >= 0 && r <= float64(nl-1)
	}
	return idx >= 0 && idx <= float64(nl-1-s.tailMargin())
}

// stencil fills w with the tap weights for fractional offset delta in [0,1)
// and returns the offset of the first tap relative to floor(idx) along with
// the tap count.
func (s Scheme) stencil(delta float64, w *[6]float64) (lead, taps int) {
	switch s {
	case Nearest:
		w[0] = 1
		return int(math.Round(delta)), 1
	case Linear:
		w[0] = 1 - delta
		w[1] = delta
		return 0, 2
	case Quadratic:
		w[0] = (delta - 1) * (delta - 2) / 2
		w[1] = -delta * (delta - 2)
		w[2] = delta * (delta - 1) / 2
		return 0, 3
	case Lanczos3:
		for k := 0; k < 4; k++ {
			u := delta - float64(k-1)
			w[k] = sinc(u) * sinc(u/2)
		}
		return -1, 4
	case FivePoint:
		d2 := delta * delta
		w[0] = d2/7 - delta/5 - 3.0/35
		w[1] = -d2/14 - delta/10 + 12.0/35
		w[2] = -d2/7 + 17.0/35
		w[3] = -d2/14 + delta/10 + 12.0/35
		w[4] = d2/7 + delta/5 - 3.0/35
		return -2, 5
	case Lanczos5:
		for k := 0; k < 6; k++ {
			u := delta - float64(k-2)
			w[k] = sinc(u) * sinc(u/2)
		}
		return -2, 6
	}
	panic("godas: invalid interpolation scheme")
}
