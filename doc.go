// Package godas builds sparse delay-and-sum (DAS) operators for ultrasound
// beamforming.
//
// Given the size of a sampled acquisition (fast-time samples by channels, RF
// or IQ), an imaging grid, per-element transmit delays and the acquisition
// parameters, Build returns a sparse matrix M such that
//
//	image = M * vec(signals)
//
// where vec stacks the signal buffer column by column (sample index fastest).
// Beamforming any number of frames acquired with the same settings is then a
// sparse matrix-vector product, performed either through Operator.Apply or by
// exporting the matrix.
//
// The travel time from the transmit wavefront to a grid point and back to a
// receiving element rarely lands on an integer sample, so each (point,
// element) pair contributes a small interpolation stencil of weighted
// samples. Six stencils are available, from nearest-neighbour to a six-tap
// Lanczos kernel. For IQ data the weights are rotated by the carrier phase so
// the demodulated samples beamform coherently.
//
// Linear and convex arrays are described by pitch and radius of curvature;
// arbitrary geometries can be given element by element. The receive aperture
// is bounded by an f-number, either fixed or estimated from the element
// directivity.
package godas
