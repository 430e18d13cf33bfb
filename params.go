package godas

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// FNumberAuto requests automatic estimation of the receive f-number from the
// element directivity. Assign it to Params.FNumber.
var FNumberAuto = math.NaN()

// Params collects the acquisition parameters needed to build a delay-and-sum
// operator. Zero values of optional fields select the documented defaults.
// Distances are in meters, times in seconds, frequencies in hertz, angles in
// radians.
type Params struct {
	// SamplingFreq is the fast-time sampling frequency. Required.
	SamplingFreq float64

	// SoundSpeed is the propagation speed. Defaults to 1540 m/s.
	SoundSpeed float64

	// StartTime is the time of the first fast-time sample.
	StartTime float64

	// Pitch is the center-to-center element spacing. Required unless
	// Elements is set.
	Pitch float64

	// Width and Kerf are the element width and the inter-element gap.
	// Pitch = Width + Kerf must hold when both are set. At least one of
	// them is required for automatic f-number estimation. Zero means
	// unset.
	Width float64
	Kerf  float64

	// FNumber bounds the receive aperture (depth over aperture width).
	// Zero disables aperture limiting; FNumberAuto estimates the value
	// from the element directivity.
	FNumber float64

	// Bandwidth is the fractional bandwidth at -6 dB, in percent of
	// CenterFreq. Defaults to 75. Only automatic f-number estimation
	// reads it.
	Bandwidth float64

	// CenterFreq is the transducer center frequency. Required for IQ
	// signals and for automatic f-number estimation.
	CenterFreq float64

	// Radius is the radius of curvature of a convex array. Zero or +Inf
	// means a linear array.
	Radius float64

	// RXAngle steers the receive aperture off the z axis. Nonzero values
	// are valid for linear arrays only.
	RXAngle float64

	// Passive drops the transmit leg so travel times are one-way.
	Passive bool

	// Elements holds explicit element coordinates: a vector of x
	// positions, a 2-row matrix of (x; z) rows, or a 2-column matrix of
	// (x, z) columns. It overrides Pitch-based placement and is
	// incompatible with a finite Radius.
	Elements *mat.Dense

	// TXDelay holds the per-element transmit delays; NaN marks an element
	// that does not transmit. The delays may be given here or as the
	// delays argument of Build. When both are set they must be equal.
	TXDelay []float64
}

// doubleEps matches the unit roundoff used for the pitch consistency check.
const doubleEps = 2.220446049250313e-16

// resolve validates p against the signal description, fills defaults and
// derived fields, and returns the resolved copy.
func (p Params) resolve(size SignalSize) (Params, error) {
	if p.SoundSpeed == 0 {
		p.SoundSpeed = 1540
	}
	if !(p.SoundSpeed > 0) || math.IsInf(p.SoundSpeed, 0) {
		return p, cfgErrf("SoundSpeed", "must be positive and finite, got %v", p.SoundSpeed)
	}
	if !(p.SamplingFreq > 0) || math.IsInf(p.SamplingFreq, 0) {
		return p, cfgErrf("SamplingFreq", "a positive sampling frequency is required, got %v", p.SamplingFreq)
	}
	auto := math.IsNaN(p.FNumber)
	if !auto && (p.FNumber < 0 || math.IsInf(p.FNumber, 0)) {
		return p, cfgErrf("FNumber", "must be non-negative and finite, or FNumberAuto, got %v", p.FNumber)
	}
	if math.IsNaN(p.StartTime) || math.IsInf(p.StartTime, 0) {
		return p, cfgErrf("StartTime", "must be finite, got %v", p.StartTime)
	}

	if p.Radius == 0 {
		p.Radius = math.Inf(1)
	}
	if math.IsNaN(p.Radius) || p.Radius < 0 {
		return p, cfgErrf("Radius", "must be positive (or +Inf for a linear array), got %v", p.Radius)
	}
	convex := !math.IsInf(p.Radius, 1)

	if p.Elements != nil {
		if convex {
			return p, cfgErrf("Elements", "explicit element positions cannot be combined with a finite Radius")
		}
	} else if !(p.Pitch > 0) || math.IsInf(p.Pitch, 0) {
		return p, cfgErrf("Pitch", "a positive pitch is required, got %v", p.Pitch)
	}

	if math.IsNaN(p.RXAngle) {
		return p, cfgErrf("RXAngle", "must be a finite angle")
	}
	if p.RXAngle != 0 && convex {
		return p, cfgErrf("RXAngle", "must be 0 with a convex array")
	}
	if math.Abs(p.RXAngle) >= math.Pi/2 {
		return p, cfgErrf("RXAngle", "must lie strictly between -pi/2 and pi/2, got %v", p.RXAngle)
	}

	if p.Bandwidth == 0 {
		p.Bandwidth = 75
	}
	if auto && !(p.Bandwidth > 0 && p.Bandwidth < 200) {
		return p, cfgErrf("Bandwidth", "the fractional bandwidth at -6 dB must lie in (0, 200), got %v", p.Bandwidth)
	}

	if size.IQ && !(p.CenterFreq > 0) {
		return p, cfgErrf("CenterFreq", "a center frequency is required with IQ signals")
	}

	if auto {
		if !(p.CenterFreq > 0) {
			return p, cfgErrf("CenterFreq", "a center frequency is required to estimate the f-number")
		}
		if p.Width > 0 && p.Kerf > 0 && p.Pitch > 0 {
			if math.Abs(p.Pitch-p.Width-p.Kerf) >= doubleEps {
				return p, cfgErrf("Width", "Pitch must equal Width + Kerf")
			}
		}
		if p.Width == 0 {
			if p.Kerf > 0 && p.Pitch > 0 {
				p.Width = p.Pitch - p.Kerf
			} else {
				return p, cfgErrf("Width", "an element width (Width) or kerf (Kerf) is required to estimate the f-number")
			}
		}
		if p.Width <= 0 {
			return p, cfgErrf("Width", "the element width must be positive, got %v", p.Width)
		}
		if p.Kerf == 0 && p.Pitch > 0 {
			p.Kerf = p.Pitch - p.Width
		}
		lambdaMin := p.SoundSpeed / (p.CenterFreq * (1 + p.Bandwidth/200))
		p.FNumber = autoFNumber(p.Width, lambdaMin, p.RXAngle)
	}

	if p.TXDelay == nil {
		return p, cfgErrf("TXDelay", "a transmit delay vector is required (Params.TXDelay or the delays argument)")
	}
	if len(p.TXDelay) != size.Channels {
		return p, cfgErrf("TXDelay", "got %d delays for %d channels", len(p.TXDelay), size.Channels)
	}
	for _, d := range p.TXDelay {
		if math.IsInf(d, 0) {
			return p, cfgErrf("TXDelay", "delays must be finite or NaN")
		}
	}
	return p, nil
}

// sameDelays compares two delay vectors treating NaN (an element that does
// not transmit) as equal to NaN.
func sameDelays(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.IsNaN(a[i]) && math.IsNaN(b[i]) {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
