package main

import (
	"flag"
	"log"
	"math"
	"math/cmplx"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mreynaud/godas"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	cfg, err := parseConfig(os.Args[1:], os.LookupEnv)
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}
	scheme, err := godas.ParseScheme(cfg.scheme)
	if err != nil {
		log.Fatalf("parse scheme: %v", err)
	}
	fnum, err := parseFNumber(cfg.fnumber)
	if err != nil {
		log.Fatalf("parse f-number %q: %v", cfg.fnumber, err)
	}

	p := godas.Params{
		SamplingFreq: cfg.fs,
		CenterFreq:   cfg.fc,
		SoundSpeed:   cfg.speed,
		Pitch:        cfg.pitch,
		Kerf:         cfg.kerf,
		FNumber:      fnum,
	}
	xe, ze, err := godas.ElementPositions(p, cfg.channels)
	if err != nil {
		log.Fatalf("element positions: %v", err)
	}
	angle := cfg.angle * math.Pi / 180
	delays, err := godas.PlaneWaveDelays(xe, ze, angle, cfg.speed)
	if err != nil {
		log.Fatalf("plane wave delays: %v", err)
	}
	log.Printf("[BOOT] %d-element array, pitch %.3f mm, plane wave at %.1f deg, scatterer at (%.1f, %.1f) mm",
		cfg.channels, cfg.pitch*1e3, cfg.angle, cfg.sx*1e3, cfg.sz*1e3)

	size := godas.RFSize(cfg.samples, cfg.channels)
	if cfg.iq {
		size = godas.IQSize(cfg.samples, cfg.channels)
	}
	rf, iq := synthesize(size, xe, ze, angle, cfg)

	x, z, err := godas.CartesianGrid(xe[0], xe[len(xe)-1], cfg.nx, 0.5*cfg.sz, 1.5*cfg.sz, cfg.nz)
	if err != nil {
		log.Fatalf("grid: %v", err)
	}

	start := time.Now()
	op, rp, err := godas.Build(size, x, z, delays, p, scheme)
	if err != nil {
		log.Fatalf("build operator: %v", err)
	}
	rows, cols := op.Dims()
	density := 100 * float64(op.NNZ()) / (float64(rows) * float64(cols))
	log.Printf("[INFO] %s operator %dx%d (transposed=%v), nnz=%d, density=%.4f%%, f-number=%.2f, built in %s",
		scheme, rows, cols, op.Transposed(), op.NNZ(), density, rp.FNumber, time.Since(start))

	start = time.Now()
	var mag []float64
	if cfg.iq {
		img, err := op.ApplyIQ(iq)
		if err != nil {
			log.Fatalf("beamform: %v", err)
		}
		mag = make([]float64, len(img))
		for i, v := range img {
			mag[i] = cmplx.Abs(v)
		}
	} else {
		img, err := op.Apply(rf)
		if err != nil {
			log.Fatalf("beamform: %v", err)
		}
		mag = make([]float64, len(img))
		for i, v := range img {
			mag[i] = math.Abs(v)
		}
	}
	log.Printf("[INFO] beamformed %d points in %s", len(mag), time.Since(start))

	best := 0
	for i := range mag {
		if mag[i] > mag[best] {
			best = i
		}
	}
	log.Printf("[INFO] peak %.3g at (%.2f, %.2f) mm, error (%.3f, %.3f) mm",
		mag[best], x[best]*1e3, z[best]*1e3, (x[best]-cfg.sx)*1e3, (z[best]-cfg.sz)*1e3)
}

// synthesize fills the acquisition buffer with the echo of a single point
// scatterer insonified by the configured plane wave: a two-period Gaussian
// pulse arriving at each element after its two-way travel time. For IQ the
// demodulated baseband is returned instead.
func synthesize(size godas.SignalSize, xe, ze []float64, angle float64, cfg cliConfig) ([]float64, []complex128) {
	var rf []float64
	var iq []complex128
	if size.IQ {
		iq = make([]complex128, size.Len())
	} else {
		rf = make([]float64, size.Len())
	}

	sa, ca := math.Sincos(angle)
	minProj := math.Inf(1)
	for e := range xe {
		if pr := xe[e]*sa + ze[e]*ca; pr < minProj {
			minProj = pr
		}
	}
	tHit := (cfg.sx*sa + cfg.sz*ca - minProj) / cfg.speed

	wc := 2 * math.Pi * cfg.fc
	sigma := 2 / cfg.fc
	for e := range xe {
		tau := tHit + math.Hypot(cfg.sx-xe[e], cfg.sz-ze[e])/cfg.speed
		for k := 0; k < size.Samples; k++ {
			u := float64(k)/cfg.fs - tau
			env := math.Exp(-u * u / (sigma * sigma))
			if env < 1e-12 {
				continue
			}
			if size.IQ {
				s, c := math.Sincos(-wc * tau)
				iq[e*size.Samples+k] = complex(env*c, env*s)
			} else {
				rf[e*size.Samples+k] = env * math.Cos(wc*u)
			}
		}
	}
	return rf, iq
}

type cliConfig struct {
	channels int
	samples  int
	pitch    float64
	kerf     float64
	fs       float64
	fc       float64
	speed    float64
	angle    float64
	sx       float64
	sz       float64
	nx       int
	nz       int
	scheme   string
	fnumber  string
	iq       bool
}

func parseConfig(args []string, lookup func(string) (string, bool)) (cliConfig, error) {
	cfg := cliConfig{}
	fs := flag.NewFlagSet("dasdemo", flag.ContinueOnError)
	fs.IntVar(&cfg.channels, "channels", envInt(lookup, "DASDEMO_CHANNELS", 64), "Number of array elements")
	fs.IntVar(&cfg.samples, "samples", envInt(lookup, "DASDEMO_SAMPLES", 1024), "Fast-time samples per channel")
	fs.Float64Var(&cfg.pitch, "pitch", envFloat(lookup, "DASDEMO_PITCH", 3e-4), "Element pitch in m")
	fs.Float64Var(&cfg.kerf, "kerf", envFloat(lookup, "DASDEMO_KERF", 3e-5), "Gap between elements in m")
	fs.Float64Var(&cfg.fs, "fs", envFloat(lookup, "DASDEMO_FS", 20e6), "Sampling frequency in Hz")
	fs.Float64Var(&cfg.fc, "fc", envFloat(lookup, "DASDEMO_FC", 5e6), "Transducer center frequency in Hz")
	fs.Float64Var(&cfg.speed, "c", envFloat(lookup, "DASDEMO_C", 1540), "Speed of sound in m/s")
	fs.Float64Var(&cfg.angle, "angle", envFloat(lookup, "DASDEMO_ANGLE", 0), "Plane wave tilt in degrees")
	fs.Float64Var(&cfg.sx, "sx", envFloat(lookup, "DASDEMO_SX", 0), "Scatterer lateral position in m")
	fs.Float64Var(&cfg.sz, "sz", envFloat(lookup, "DASDEMO_SZ", 0.02), "Scatterer depth in m")
	fs.IntVar(&cfg.nx, "nx", envInt(lookup, "DASDEMO_NX", 101), "Image width in pixels")
	fs.IntVar(&cfg.nz, "nz", envInt(lookup, "DASDEMO_NZ", 101), "Image depth in pixels")
	fs.StringVar(&cfg.scheme, "scheme", envString(lookup, "DASDEMO_SCHEME", "linear"), "Interpolation scheme (nearest|linear|quadratic|lanczos3|5points|lanczos5)")
	fs.StringVar(&cfg.fnumber, "fnumber", envString(lookup, "DASDEMO_FNUMBER", "auto"), "Receive f-number, or 'auto' to estimate it, or 0 for the full aperture")
	fs.BoolVar(&cfg.iq, "iq", envBool(lookup, "DASDEMO_IQ", false), "Beamform demodulated IQ instead of RF")

	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}
	return cfg, nil
}

func parseFNumber(s string) (float64, error) {
	if strings.EqualFold(s, "auto") {
		return godas.FNumberAuto, nil
	}
	return strconv.ParseFloat(s, 64)
}

func envFloat(lookup func(string) (string, bool), key string, def float64) float64 {
	if val, ok := lookup(key); ok {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}

func envInt(lookup func(string) (string, bool), key string, def int) int {
	if val, ok := lookup(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func envString(lookup func(string) (string, bool), key, def string) string {
	if val, ok := lookup(key); ok {
		return val
	}
	return def
}

func envBool(lookup func(string) (string, bool), key string, def bool) bool {
	if val, ok := lookup(key); ok {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return def
}
