package sparse

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCOOAppendAtDims(t *testing.T) {
	m := NewCOO[float64](2, 3)
	m.Append(0, 0, 2)
	m.Append(0, 2, 1)
	m.Append(1, 1, 3)

	if r, c := m.Dims(); r != 2 || c != 3 {
		t.Fatalf("Dims: got %dx%d, want 2x3", r, c)
	}
	if m.NNZ() != 3 {
		t.Fatalf("NNZ: got %d, want 3", m.NNZ())
	}
	if v := m.At(0, 2); v != 1 {
		t.Fatalf("At(0,2): got %v, want 1", v)
	}
	if v := m.At(1, 0); v != 0 {
		t.Fatalf("At(1,0): got %v, want 0", v)
	}
}

func TestCOODuplicatesSumInAt(t *testing.T) {
	m := NewCOO[float64](1, 1)
	m.Append(0, 0, 0.25)
	m.Append(0, 0, 0.5)
	if m.NNZ() != 2 {
		t.Fatalf("NNZ: got %d, want 2 (duplicates must not be merged)", m.NNZ())
	}
	if v := m.At(0, 0); v != 0.75 {
		t.Fatalf("At(0,0): got %v, want 0.75", v)
	}
}

func TestCOOEntriesInsertionOrder(t *testing.T) {
	m := NewCOO[float64](3, 3)
	m.Append(2, 0, 1)
	m.Append(0, 1, 2)
	m.Append(2, 2, 3)

	want := []Entry[float64]{
		{Row: 2, Col: 0, Val: 1},
		{Row: 0, Col: 1, Val: 2},
		{Row: 2, Col: 2, Val: 3},
	}
	if diff := cmp.Diff(want, m.Entries()); diff != "" {
		t.Fatalf("Entries mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Append out of range did not panic")
		}
	}()
	m := NewCOO[float64](2, 2)
	m.Append(2, 0, 1)
}

func TestCSRMulVec(t *testing.T) {
	m := NewCOO[float64](2, 3)
	m.Append(0, 0, 2)
	m.Append(0, 2, 1)
	m.Append(1, 1, 3)
	m.Append(0, 0, 0.5) // duplicate, sums during multiplication

	got := m.ToCSR().MulVec(nil, []float64{1, 2, 3})
	want := []float64{5.5, 6}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("MulVec[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCSRMulVecTrans(t *testing.T) {
	m := NewCOO[float64](2, 3)
	m.Append(0, 0, 2)
	m.Append(0, 2, 1)
	m.Append(1, 1, 3)

	got := m.ToCSR().MulVecTrans(nil, []float64{1, 1})
	want := []float64{2, 3, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("MulVecTrans[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCSRMulVecReusesDst(t *testing.T) {
	m := NewCOO[float64](2, 2)
	m.Append(0, 0, 1)
	m.Append(1, 1, 1)
	csr := m.ToCSR()

	dst := []float64{99, 99}
	out := csr.MulVec(dst, []float64{4, 7})
	if &out[0] != &dst[0] {
		t.Fatal("MulVec did not reuse the destination slice")
	}
	if out[0] != 4 || out[1] != 7 {
		t.Fatalf("MulVec: got %v, want [4 7]", out)
	}
}

func TestComplexMulVec(t *testing.T) {
	m := NewCOO[complex128](2, 2)
	m.Append(0, 0, 1i)
	m.Append(0, 1, 2)
	m.Append(1, 0, 3)

	got := m.ToCSR().MulVec(nil, []complex128{1, 1i})
	want := []complex128{1i + 2i, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MulVec[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCSRDoRowOrder(t *testing.T) {
	m := NewCOO[float64](3, 3)
	m.Append(2, 1, 1)
	m.Append(0, 2, 2)
	m.Append(2, 0, 3)

	var got []Entry[float64]
	m.ToCSR().Do(func(r, c int, v float64) {
		got = append(got, Entry[float64]{Row: r, Col: c, Val: v})
	})
	want := []Entry[float64]{
		{Row: 0, Col: 2, Val: 2},
		{Row: 2, Col: 1, Val: 1}, // insertion order within the row
		{Row: 2, Col: 0, Val: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Do order mismatch (-want +got):\n%s", diff)
	}
}

func TestDenseExport(t *testing.T) {
	m := NewCOO[float64](2, 2)
	m.Append(0, 1, 2)
	m.Append(0, 1, 1) // duplicate folds into the dense value
	m.Append(1, 0, 5)

	d := Dense(m)
	if v := d.At(0, 1); v != 3 {
		t.Fatalf("Dense At(0,1): got %v, want 3", v)
	}
	if v := d.At(1, 0); v != 5 {
		t.Fatalf("Dense At(1,0): got %v, want 5", v)
	}
	if v := d.At(0, 0); v != 0 {
		t.Fatalf("Dense At(0,0): got %v, want 0", v)
	}
}

func TestCDenseExport(t *testing.T) {
	m := NewCOO[complex128](1, 2)
	m.Append(0, 0, 1+2i)
	m.Append(0, 0, 1-1i)

	d := CDense(m)
	if v := d.At(0, 0); v != 2+1i {
		t.Fatalf("CDense At(0,0): got %v, want (2+1i)", v)
	}
}
