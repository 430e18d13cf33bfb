package godas

import (
	"errors"
	"math"
	"testing"
)

func testArray(t *testing.T, n int) (xe, ze []float64) {
	t.Helper()
	xe, ze, err := ElementPositions(Params{Pitch: 3e-4}, n)
	if err != nil {
		t.Fatalf("ElementPositions: %v", err)
	}
	return xe, ze
}

func TestPlaneWaveDelaysNormalIncidence(t *testing.T) {
	xe, ze := testArray(t, 8)
	d, err := PlaneWaveDelays(xe, ze, 0, 1540)
	if err != nil {
		t.Fatalf("PlaneWaveDelays: %v", err)
	}
	for i, v := range d {
		if v != 0 {
			t.Fatalf("delay %d: got %v, want 0 for a flat array at normal incidence", i, v)
		}
	}
}

func TestPlaneWaveDelaysSteered(t *testing.T) {
	xe, ze := testArray(t, 8)
	d, err := PlaneWaveDelays(xe, ze, math.Pi/6, 1540)
	if err != nil {
		t.Fatalf("PlaneWaveDelays: %v", err)
	}
	if d[0] != 0 {
		t.Fatalf("earliest firing: got %v, want 0", d[0])
	}
	for i := 1; i < len(d); i++ {
		if d[i] <= d[i-1] {
			t.Fatalf("delays not increasing toward the steering side at %d: %v then %v", i, d[i-1], d[i])
		}
	}
	span := (xe[7] - xe[0]) * math.Sin(math.Pi/6) / 1540
	if math.Abs(d[7]-span) > 1e-15 {
		t.Fatalf("last delay: got %v, want %v", d[7], span)
	}
}

// A constant elevation shifts every arrival equally, which the time-zero
// normalization removes.
func TestPlaneWaveDelaysElevationOffsetCancels(t *testing.T) {
	xe, ze := testArray(t, 8)
	flat, err := PlaneWaveDelays(xe, ze, math.Pi/6, 1540)
	if err != nil {
		t.Fatalf("PlaneWaveDelays flat: %v", err)
	}
	raised := make([]float64, len(ze))
	for i := range raised {
		raised[i] = 5
	}
	shifted, err := PlaneWaveDelays(xe, raised, math.Pi/6, 1540)
	if err != nil {
		t.Fatalf("PlaneWaveDelays raised: %v", err)
	}
	for i := range flat {
		if math.Abs(flat[i]-shifted[i]) > 1e-12 {
			t.Fatalf("delay %d: flat %v, raised %v", i, flat[i], shifted[i])
		}
	}
}

func TestFocusDelaysOnAxis(t *testing.T) {
	xe, ze := testArray(t, 8)
	d, err := FocusDelays(xe, ze, 0, 0.03, 1540)
	if err != nil {
		t.Fatalf("FocusDelays: %v", err)
	}
	// The edge elements are farthest from an on-axis focus, so they fire
	// first; symmetry pairs them exactly.
	if d[0] != 0 || d[7] != 0 {
		t.Fatalf("edge delays: got %v and %v, want 0", d[0], d[7])
	}
	if d[3] != d[4] {
		t.Fatalf("center delays must pair: %v vs %v", d[3], d[4])
	}
	if !(d[3] > d[0]) {
		t.Fatalf("center must fire after the edges: center %v, edge %v", d[3], d[0])
	}
}

func TestFocusDelaysVirtualSource(t *testing.T) {
	xe, ze := testArray(t, 8)
	d, err := FocusDelays(xe, ze, 0, -0.02, 1540)
	if err != nil {
		t.Fatalf("FocusDelays: %v", err)
	}
	// A source behind the array reaches the center elements first, so the
	// diverging wave fires them at time zero and the edges last.
	if d[3] != 0 || d[4] != 0 {
		t.Fatalf("center delays: got %v and %v, want 0", d[3], d[4])
	}
	if !(d[0] > 0) || d[0] != d[7] {
		t.Fatalf("edge delays: got %v and %v, want equal and positive", d[0], d[7])
	}
}

func TestDelayErrors(t *testing.T) {
	xe, ze := testArray(t, 8)
	cases := []struct {
		name  string
		run   func() error
		param string
	}{
		{"zero focus depth", func() error { _, err := FocusDelays(xe, ze, 0, 0, 1540); return err }, "focus"},
		{"bad speed plane", func() error { _, err := PlaneWaveDelays(xe, ze, 0, 0); return err }, "SoundSpeed"},
		{"bad speed focus", func() error { _, err := FocusDelays(xe, ze, 0, 0.03, -1); return err }, "SoundSpeed"},
		{"length mismatch", func() error { _, err := PlaneWaveDelays(xe, ze[:4], 0, 1540); return err }, "Elements"},
		{"no elements", func() error { _, err := FocusDelays(nil, nil, 0, 0.03, 1540); return err }, "Elements"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			var cfg *ConfigError
			if !errors.As(err, &cfg) {
				t.Fatalf("got %v, want a ConfigError", err)
			}
			if cfg.Param != tc.param {
				t.Fatalf("Param: got %q, want %q", cfg.Param, tc.param)
			}
		})
	}
}
