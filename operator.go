package godas

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/mreynaud/godas/sparse"
)

// Operator is a built delay-and-sum matrix. It is immutable and safe for
// concurrent use.
//
// The logical mapping is image = M * vec(signals) with M of shape
// (Points, Samples*Channels). To keep the slow dimension small the matrix
// is stored transposed whenever the point count exceeds the signal length;
// Transposed reports the stored orientation and Apply compensates for it,
// so callers that only beamform never need to care.
type Operator struct {
	points     int
	size       SignalSize
	transposed bool

	re    *sparse.COO[float64]
	reCSR *sparse.CSR[float64]
	cx    *sparse.COO[complex128]
	cxCSR *sparse.CSR[complex128]
}

// Dims returns the stored matrix dimensions.
func (o *Operator) Dims() (rows, cols int) {
	if o.transposed {
		return o.size.Len(), o.points
	}
	return o.points, o.size.Len()
}

// Points returns the number of image points the operator beamforms.
func (o *Operator) Points() int { return o.points }

// Signal returns the signal description the operator was built for.
func (o *Operator) Signal() SignalSize { return o.size }

// IsIQ reports whether the operator carries complex weights for IQ signals.
func (o *Operator) IsIQ() bool { return o.size.IQ }

// Transposed reports whether the matrix is stored as its transpose,
// (Samples*Channels, Points) instead of (Points, Samples*Channels).
func (o *Operator) Transposed() bool { return o.transposed }

// NNZ returns the number of stored entries.
func (o *Operator) NNZ() int {
	if o.size.IQ {
		return o.cx.NNZ()
	}
	return o.re.NNZ()
}

// Real returns the underlying real coordinate matrix, or nil for an IQ
// operator.
func (o *Operator) Real() *sparse.COO[float64] { return o.re }

// Complex returns the underlying complex coordinate matrix, or nil for an
// RF operator.
func (o *Operator) Complex() *sparse.COO[complex128] { return o.cx }

// RealCSR returns the compressed-row form of the real matrix, or nil for an
// IQ operator.
func (o *Operator) RealCSR() *sparse.CSR[float64] { return o.reCSR }

// ComplexCSR returns the compressed-row form of the complex matrix, or nil
// for an RF operator.
func (o *Operator) ComplexCSR() *sparse.CSR[complex128] { return o.cxCSR }

// Dense expands an RF operator to a dense matrix in its stored orientation.
// It returns nil for an IQ operator.
func (o *Operator) Dense() *mat.Dense {
	if o.re == nil {
		return nil
	}
	return sparse.Dense(o.re)
}

// CDense expands an IQ operator to a dense matrix in its stored orientation.
// It returns nil for an RF operator.
func (o *Operator) CDense() *mat.CDense {
	if o.cx == nil {
		return nil
	}
	return sparse.CDense(o.cx)
}

// Apply beamforms a flattened RF buffer (sample index fastest) and returns
// one value per image point.
func (o *Operator) Apply(rf []float64) ([]float64, error) {
	if o.size.IQ {
		return nil, fmt.Errorf("godas: operator was built for IQ signals, use ApplyIQ")
	}
	if len(rf) != o.size.Len() {
		return nil, fmt.Errorf("godas: signal length %d does not match %d samples x %d channels", len(rf), o.size.Samples, o.size.Channels)
	}
	if o.transposed {
		return o.reCSR.MulVecTrans(nil, rf), nil
	}
	return o.reCSR.MulVec(nil, rf), nil
}

// ApplyIQ beamforms a flattened IQ buffer (sample index fastest) and returns
// one complex value per image point.
func (o *Operator) ApplyIQ(iq []complex128) ([]complex128, error) {
	if !o.size.IQ {
		return nil, fmt.Errorf("godas: operator was built for RF signals, use Apply")
	}
	if len(iq) != o.size.Len() {
		return nil, fmt.Errorf("godas: signal length %d does not match %d samples x %d channels", len(iq), o.size.Samples, o.size.Channels)
	}
	if o.transposed {
		return o.cxCSR.MulVecTrans(nil, iq), nil
	}
	return o.cxCSR.MulVec(nil, iq), nil
}
