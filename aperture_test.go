package godas

import (
	"math"
	"testing"
)

func TestSinc(t *testing.T) {
	if got := sinc(0); got != 1 {
		t.Fatalf("sinc(0): got %v, want 1", got)
	}
	if got := sinc(1); math.Abs(got) > 1e-15 {
		t.Fatalf("sinc(1): got %v, want 0", got)
	}
	if got, want := sinc(0.5), 2/math.Pi; math.Abs(got-want) > 1e-12 {
		t.Fatalf("sinc(0.5): got %v, want %v", got, want)
	}
	if got := sinc(-0.5) - sinc(0.5); math.Abs(got) > 1e-15 {
		t.Fatal("sinc must be even")
	}
}

func TestGoldenSectionMin(t *testing.T) {
	f := func(x float64) float64 { return (x - 1) * (x - 1) }
	got := goldenSectionMin(f, 0, 3, 1e-6)
	if math.Abs(got-1) > 1e-5 {
		t.Fatalf("minimum of (x-1)^2 on [0,3]: got %v, want 1", got)
	}

	// Minimum at the lower boundary is still bracketed.
	g := func(x float64) float64 { return x }
	got = goldenSectionMin(g, 0, 1, 1e-6)
	if got > 1e-5 {
		t.Fatalf("minimum of x on [0,1]: got %v, want ~0", got)
	}
}

// A vanishingly narrow element is an omnidirectional point source, so the
// directivity reduces to the obliquity factor cos(theta) and the 0.71
// crossing has the closed form alpha = acos(0.71).
func TestAutoFNumberNarrowElement(t *testing.T) {
	lambda := 3e-4
	got := autoFNumber(lambda/1e3, lambda, 0)
	want := 1 / (2 * math.Tan(math.Acos(0.71)))
	if math.Abs(got-want) > 0.04 {
		t.Fatalf("f-number for a narrow element: got %v, want %v", got, want)
	}
}

func TestAutoFNumberSteered(t *testing.T) {
	lambda := 3e-4
	rxa := 0.3
	got := autoFNumber(lambda/1e3, lambda, rxa)
	want := 1 / (2 * math.Tan(math.Acos(0.71)-rxa))
	if math.Abs(got-want) > 0.1 {
		t.Fatalf("f-number steered by %v: got %v, want %v", rxa, got, want)
	}
	// Steering shrinks the crossing angle, widening the f-number.
	straight := autoFNumber(lambda/1e3, lambda, 0)
	if got <= straight {
		t.Fatalf("steered f-number %v should exceed the broadside value %v", got, straight)
	}
}

// A wide, directive element reaches 0.71 at a smaller angle than a point
// source, giving a larger f-number.
func TestAutoFNumberWideElement(t *testing.T) {
	lambda := 3e-4
	wide := autoFNumber(2*lambda, lambda, 0)
	narrow := autoFNumber(lambda/1e3, lambda, 0)
	if wide <= narrow {
		t.Fatalf("wide element f-number %v should exceed narrow element value %v", wide, narrow)
	}
}
