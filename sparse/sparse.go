// Package sparse implements minimal coordinate and compressed sparse row
// matrices over real or complex scalars. It covers exactly what a
// delay-and-sum operator needs: append-only construction, deterministic
// entry order, and matrix-vector products in both orientations.
package sparse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Value is the set of scalar kinds a matrix can hold.
type Value interface {
	~float64 | ~complex128
}

// Entry is one (row, column, value) triplet of a COO matrix.
type Entry[T Value] struct {
	Row, Col int
	Val      T
}

// COO is a sparse matrix in coordinate (triplet) form. Entries keep their
// insertion order. Duplicate coordinates are allowed and are treated as
// implicitly summed; they are never merged.
type COO[T Value] struct {
	rows, cols int
	entries    []Entry[T]
}

// NewCOO returns an empty rows-by-cols coordinate matrix.
func NewCOO[T Value](rows, cols int) *COO[T] {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("sparse: invalid dimensions %dx%d", rows, cols))
	}
	return &COO[T]{rows: rows, cols: cols}
}

// Dims returns the matrix dimensions.
func (m *COO[T]) Dims() (rows, cols int) { return m.rows, m.cols }

// NNZ returns the number of stored entries, duplicates included.
func (m *COO[T]) NNZ() int { return len(m.entries) }

// Append adds one entry. It panics if the coordinates are out of range.
func (m *COO[T]) Append(row, col int, v T) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("sparse: entry (%d,%d) out of range for %dx%d", row, col, m.rows, m.cols))
	}
	m.entries = append(m.entries, Entry[T]{Row: row, Col: col, Val: v})
}

// Grow reserves capacity for n additional entries.
func (m *COO[T]) Grow(n int) {
	if n <= 0 {
		return
	}
	if cap(m.entries)-len(m.entries) >= n {
		return
	}
	grown := make([]Entry[T], len(m.entries), len(m.entries)+n)
	copy(grown, m.entries)
	m.entries = grown
}

// At returns the effective value at (row, col), summing duplicates.
// It runs in O(nnz).
func (m *COO[T]) At(row, col int) T {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("sparse: index (%d,%d) out of range for %dx%d", row, col, m.rows, m.cols))
	}
	var acc T
	for _, e := range m.entries {
		if e.Row == row && e.Col == col {
			acc += e.Val
		}
	}
	return acc
}

// Do calls fn for every stored entry in insertion order.
func (m *COO[T]) Do(fn func(row, col int, v T)) {
	for _, e := range m.entries {
		fn(e.Row, e.Col, e.Val)
	}
}

// Entries returns the stored triplets. The slice is owned by the matrix and
// must not be modified.
func (m *COO[T]) Entries() []Entry[T] { return m.entries }

// ToCSR converts the matrix to compressed sparse row form. Entries within a
// row keep their insertion order; duplicates are carried over unmerged.
func (m *COO[T]) ToCSR() *CSR[T] {
	nnz := len(m.entries)
	csr := &CSR[T]{
		rows:   m.rows,
		cols:   m.cols,
		rowPtr: make([]int, m.rows+1),
		colIdx: make([]int, nnz),
		values: make([]T, nnz),
	}
	for _, e := range m.entries {
		csr.rowPtr[e.Row+1]++
	}
	for r := 0; r < m.rows; r++ {
		csr.rowPtr[r+1] += csr.rowPtr[r]
	}
	next := make([]int, m.rows)
	copy(next, csr.rowPtr[:m.rows])
	for _, e := range m.entries {
		p := next[e.Row]
		csr.colIdx[p] = e.Col
		csr.values[p] = e.Val
		next[e.Row]++
	}
	return csr
}

// CSR is a sparse matrix in compressed sparse row form, built from a COO.
type CSR[T Value] struct {
	rows, cols int
	rowPtr     []int
	colIdx     []int
	values     []T
}

// Dims returns the matrix dimensions.
func (m *CSR[T]) Dims() (rows, cols int) { return m.rows, m.cols }

// NNZ returns the number of stored entries, duplicates included.
func (m *CSR[T]) NNZ() int { return len(m.values) }

// MulVec computes dst = M*x. If dst is nil a new slice is allocated;
// otherwise it must have length equal to the row count. It panics on
// dimension mismatch.
func (m *CSR[T]) MulVec(dst, x []T) []T {
	if len(x) != m.cols {
		panic(fmt.Sprintf("sparse: vector length %d does not match %d columns", len(x), m.cols))
	}
	if dst == nil {
		dst = make([]T, m.rows)
	} else if len(dst) != m.rows {
		panic(fmt.Sprintf("sparse: destination length %d does not match %d rows", len(dst), m.rows))
	}
	for r := 0; r < m.rows; r++ {
		var acc T
		for p := m.rowPtr[r]; p < m.rowPtr[r+1]; p++ {
			acc += m.values[p] * x[m.colIdx[p]]
		}
		dst[r] = acc
	}
	return dst
}

// MulVecTrans computes dst = Mᵀ*x without materializing the transpose.
// If dst is nil a new slice is allocated; otherwise it must have length
// equal to the column count. It panics on dimension mismatch.
func (m *CSR[T]) MulVecTrans(dst, x []T) []T {
	if len(x) != m.rows {
		panic(fmt.Sprintf("sparse: vector length %d does not match %d rows", len(x), m.rows))
	}
	if dst == nil {
		dst = make([]T, m.cols)
	} else if len(dst) != m.cols {
		panic(fmt.Sprintf("sparse: destination length %d does not match %d columns", len(dst), m.cols))
	}
	for i := range dst {
		var zero T
		dst[i] = zero
	}
	for r := 0; r < m.rows; r++ {
		xr := x[r]
		for p := m.rowPtr[r]; p < m.rowPtr[r+1]; p++ {
			dst[m.colIdx[p]] += m.values[p] * xr
		}
	}
	return dst
}

// Do calls fn for every stored entry in row order.
func (m *CSR[T]) Do(fn func(row, col int, v T)) {
	for r := 0; r < m.rows; r++ {
		for p := m.rowPtr[r]; p < m.rowPtr[r+1]; p++ {
			fn(r, m.colIdx[p], m.values[p])
		}
	}
}

// Dense expands a real coordinate matrix into a gonum dense matrix,
// summing duplicate entries.
func Dense(m *COO[float64]) *mat.Dense {
	d := mat.NewDense(m.rows, m.cols, nil)
	for _, e := range m.entries {
		d.Set(e.Row, e.Col, d.At(e.Row, e.Col)+e.Val)
	}
	return d
}

// CDense expands a complex coordinate matrix into a gonum dense matrix,
// summing duplicate entries.
func CDense(m *COO[complex128]) *mat.CDense {
	d := mat.NewCDense(m.rows, m.cols, nil)
	for _, e := range m.entries {
		d.Set(e.Row, e.Col, d.At(e.Row, e.Col)+e.Val)
	}
	return d
}
