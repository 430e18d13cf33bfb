package godas

import (
	"math"
	"runtime"
	"sync"

	"github.com/mreynaud/godas/sparse"
)

// Build constructs the sparse delay-and-sum operator for an acquisition of
// the given size over the imaging grid (x, z), using the per-element
// transmit delays and the acquisition parameters. delays may be nil when
// p.TXDelay is set; when both are set they must be equal.
//
// The returned operator maps the flattened signal buffer to one beamformed
// value per grid point. The second return value is the resolved parameter
// set (defaults filled, f-number estimated) that was actually used.
func Build(size SignalSize, x, z, delays []float64, p Params, scheme Scheme) (*Operator, Params, error) {
	if !scheme.valid() {
		return nil, p, cfgErrf("scheme", "invalid interpolation scheme %d", int(scheme))
	}
	if err := size.validate(); err != nil {
		return nil, p, err
	}
	if len(x) != len(z) {
		return nil, p, cfgErrf("grid", "x and z must have the same length, got %d and %d", len(x), len(z))
	}
	if len(x) == 0 {
		return nil, p, cfgErrf("grid", "at least one image point is required")
	}

	switch {
	case delays != nil && p.TXDelay != nil:
		if !sameDelays(delays, p.TXDelay) {
			return nil, p, cfgErrf("TXDelay", "the delays argument and Params.TXDelay differ")
		}
	case delays != nil:
		p.TXDelay = delays
	}
	if p.TXDelay != nil {
		p.TXDelay = append([]float64(nil), p.TXDelay...)
	}

	rp, err := p.resolve(size)
	if err != nil {
		return nil, p, err
	}
	lay, err := layoutFor(rp, size.Channels)
	if err != nil {
		return nil, rp, err
	}

	// The sub-aperture constraint holds in passive mode too, even though
	// the delays are not used there.
	first, nTX, err := activeRun(rp.TXDelay)
	if err != nil {
		return nil, rp, err
	}

	npts := len(x)
	dTX := make([]float64, npts)
	if !rp.Passive {
		front, err := densifyFront(lay, rp.TXDelay, first, nTX)
		if err != nil {
			return nil, rp, err
		}
		for i := range dTX {
			dTX[i] = front.distance(rp.SoundSpeed, x[i], z[i])
		}
	}

	blocks := assemble(size, x, z, dTX, lay, rp, scheme)

	nl, nc := size.Samples, size.Channels
	rows, cols := npts, nl*nc
	transposed := npts > nl*nc
	if transposed {
		rows, cols = cols, rows
	}
	op := &Operator{points: npts, size: size, transposed: transposed}
	total := 0
	for _, b := range blocks {
		total += len(b.rows)
	}
	if size.IQ {
		m := sparse.NewCOO[complex128](rows, cols)
		m.Grow(total)
		for _, b := range blocks {
			for k := range b.rows {
				m.Append(b.rows[k], b.cols[k], b.cw[k])
			}
		}
		op.cx, op.cxCSR = m, m.ToCSR()
	} else {
		m := sparse.NewCOO[float64](rows, cols)
		m.Grow(total)
		for _, b := range blocks {
			for k := range b.rows {
				m.Append(b.rows[k], b.cols[k], b.rw[k])
			}
		}
		op.re, op.reCSR = m, m.ToCSR()
	}
	return op, rp, nil
}

// elemBlock holds the operator entries contributed by one element, in grid
// order with stencil taps consecutive.
type elemBlock struct {
	rows, cols []int
	rw         []float64
	cw         []complex128
}

// assemble evaluates travel times, aperture tests and stencil weights for
// every (element, point) pair. Elements are processed by a bounded worker
// pool and the blocks are returned in element order, so the entry order is
// deterministic.
func assemble(size SignalSize, x, z, dTX []float64, lay elementLayout, rp Params, scheme Scheme) []elemBlock {
	nl, nc := size.Samples, size.Channels
	npts := len(x)
	nlc := nl * nc
	transposed := npts > nlc

	fNum := rp.FNumber
	useRX := rp.RXAngle != 0
	var halfAp, tanRX, cosRX float64
	if fNum > 0 {
		halfAp = math.Atan(1 / (2 * fNum))
		tanRX = math.Tan(rp.RXAngle)
		cosRX = math.Cos(rp.RXAngle)
	}
	c := rp.SoundSpeed
	fs := rp.SamplingFreq
	t0 := rp.StartTime
	wc := 2 * math.Pi * rp.CenterFreq

	emit := func(e int) elemBlock {
		var blk elemBlock
		var w [6]float64
		xe, ze, the := lay.x[e], lay.z[e], lay.theta[e]
		colBase := e * nl
		for i := 0; i < npts; i++ {
			dx := x[i] - xe
			dRX := math.Hypot(dx, z[i]-ze)
			if fNum > 0 {
				switch {
				case useRX:
					if !(math.Abs(dx-z[i]*tanRX) <= z[i]/(cosRX*2*fNum)) {
						continue
					}
				case lay.convex:
					if !(math.Abs(math.Asin(dx/dRX)-the) <= halfAp) {
						continue
					}
				default:
					if !(math.Abs(dx) <= z[i]/(2*fNum)) {
						continue
					}
				}
			}
			tau := (dTX[i] + dRX) / c
			idx := (tau - t0) * fs
			if !scheme.inRange(idx, nl) {
				continue
			}
			idxf := math.Floor(idx)
			lead, taps := scheme.stencil(idx-idxf, &w)
			base := int(idxf) + lead
			var rot complex128
			if size.IQ {
				ph := wc * tau
				rot = complex(math.Cos(ph), math.Sin(ph))
			}
			for k := 0; k < taps; k++ {
				s := base + k
				if s < 0 || s >= nl {
					// stencil tail clipped at the channel edge
					continue
				}
				r, cl := i, colBase+s
				if transposed {
					r, cl = cl, r
				}
				blk.rows = append(blk.rows, r)
				blk.cols = append(blk.cols, cl)
				if size.IQ {
					blk.cw = append(blk.cw, rot*complex(w[k], 0))
				} else {
					blk.rw = append(blk.rw, w[k])
				}
			}
		}
		return blk
	}

	workers := runtime.NumCPU()
	if workers > nc {
		workers = nc
	}
	type elemResult struct {
		elem  int
		block elemBlock
	}
	jobs := make(chan int, nc)
	results := make(chan elemResult, nc)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range jobs {
				results <- elemResult{elem: e, block: emit(e)}
			}
		}()
	}
	for e := 0; e < nc; e++ {
		jobs <- e
	}
	close(jobs)
	wg.Wait()
	close(results)

	blocks := make([]elemBlock, nc)
	for r := range results {
		blocks[r.elem] = r.block
	}
	return blocks
}
