package cmat

import (
	"fmt"
	"strings"
)

// Matrix is a dense complex matrix in row-major storage. The element (i, j)
// lives at data[i*cols+j]. A zero-size Matrix is not constructible through
// the public constructors.
type Matrix struct {
	rows, cols int
	data       []complex128
}

var _ fmt.Stringer = (*Matrix)(nil)

// New returns an r-by-c zero matrix. r and c must be positive.
func New(r, c int) *Matrix {
	if r <= 0 || c <= 0 {
		panic(fmt.Sprintf("cmat: New(%d,%d): non-positive dimensions", r, c))
	}
	return &Matrix{rows: r, cols: c, data: make([]complex128, r*c)}
}

// Identity returns the n-by-n identity matrix.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Diagonal returns the square matrix with d on its main diagonal.
func Diagonal(d []complex128) *Matrix {
	m := New(len(d), len(d))
	for i, v := range d {
		m.data[i*len(d)+i] = v
	}
	return m
}

// FromColumn returns v as an n-by-1 column matrix.
func FromColumn(v []complex128) *Matrix {
	m := New(len(v), 1)
	copy(m.data, v)
	return m
}

// Dims returns the row and column counts.
func (m *Matrix) Dims() (r, c int) { return m.rows, m.cols }

// At returns the element at (i, j). Out-of-range indices panic.
func (m *Matrix) At(i, j int) complex128 {
	m.check(i, j)
	return m.data[i*m.cols+j]
}

// Set writes the element at (i, j). Out-of-range indices panic.
func (m *Matrix) Set(i, j int, v complex128) {
	m.check(i, j)
	m.data[i*m.cols+j] = v
}

func (m *Matrix) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("cmat: index (%d,%d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
}

// Copy returns a deep copy of m.
func (m *Matrix) Copy() *Matrix {
	out := New(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// Column returns column j as a fresh slice.
func (m *Matrix) Column(j int) []complex128 {
	m.check(0, j)
	out := make([]complex128, m.rows)
	for i := 0; i < m.rows; i++ {
		out[i] = m.data[i*m.cols+j]
	}
	return out
}

// String renders the matrix row by row, mainly for debugging small cases.
func (m *Matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.rows; i++ {
		b.WriteString("[")
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%v", m.data[i*m.cols+j])
		}
		b.WriteString("]\n")
	}
	return b.String()
}

// Mul returns the matrix product a*b. Inner dimensions must agree.
func Mul(a, b *Matrix) *Matrix {
	if a.cols != b.rows {
		panic(fmt.Sprintf("cmat: Mul dimension mismatch: %dx%d times %dx%d", a.rows, a.cols, b.rows, b.cols))
	}
	out := New(a.rows, b.cols)
	// ikj loop order keeps the inner accesses contiguous in both b and out.
	for i := 0; i < a.rows; i++ {
		arow := a.data[i*a.cols : (i+1)*a.cols]
		orow := out.data[i*b.cols : (i+1)*b.cols]
		for k, av := range arow {
			if av == 0 {
				continue
			}
			brow := b.data[k*b.cols : (k+1)*b.cols]
			for j, bv := range brow {
				orow[j] += av * bv
			}
		}
	}
	return out
}

// MulVec returns the matrix-vector product m*x.
func (m *Matrix) MulVec(x []complex128) []complex128 {
	if m.cols != len(x) {
		panic(fmt.Sprintf("cmat: MulVec dimension mismatch: %dx%d times %d", m.rows, m.cols, len(x)))
	}
	out := make([]complex128, m.rows)
	for i := 0; i < m.rows; i++ {
		row := m.data[i*m.cols : (i+1)*m.cols]
		var acc complex128
		for j, v := range row {
			acc += v * x[j]
		}
		out[i] = acc
	}
	return out
}

// Add returns a+b. Shapes must agree.
func Add(a, b *Matrix) *Matrix {
	sameShape("Add", a, b)
	out := New(a.rows, a.cols)
	for i, v := range a.data {
		out.data[i] = v + b.data[i]
	}
	return out
}

// Sub returns a-b. Shapes must agree.
func Sub(a, b *Matrix) *Matrix {
	sameShape("Sub", a, b)
	out := New(a.rows, a.cols)
	for i, v := range a.data {
		out.data[i] = v - b.data[i]
	}
	return out
}

// Scale returns s*m.
func (m *Matrix) Scale(s complex128) *Matrix {
	out := New(m.rows, m.cols)
	for i, v := range m.data {
		out.data[i] = s * v
	}
	return out
}

// ScaleRows returns diag(d)*m, i.e. row i of m scaled by d[i].
func ScaleRows(m *Matrix, d []complex128) *Matrix {
	if len(d) != m.rows {
		panic(fmt.Sprintf("cmat: ScaleRows dimension mismatch: %d scales for %d rows", len(d), m.rows))
	}
	out := New(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		s := d[i]
		for j := 0; j < m.cols; j++ {
			out.data[i*m.cols+j] = s * m.data[i*m.cols+j]
		}
	}
	return out
}

// ScaleCols returns m*diag(d), i.e. column j of m scaled by d[j].
func ScaleCols(m *Matrix, d []complex128) *Matrix {
	if len(d) != m.cols {
		panic(fmt.Sprintf("cmat: ScaleCols dimension mismatch: %d scales for %d cols", len(d), m.cols))
	}
	out := New(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[i*m.cols+j] = m.data[i*m.cols+j] * d[j]
		}
	}
	return out
}

// ConjTranspose returns the conjugate transpose of m.
func (m *Matrix) ConjTranspose() *Matrix {
	out := New(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			v := m.data[i*m.cols+j]
			out.data[j*m.rows+i] = complex(real(v), -imag(v))
		}
	}
	return out
}

// Block4 assembles the square block matrix [[a, b], [c, d]]. All four
// blocks must share the same shape.
func Block4(a, b, c, d *Matrix) *Matrix {
	sameShape("Block4", a, b)
	sameShape("Block4", a, c)
	sameShape("Block4", a, d)
	r, c0 := a.rows, a.cols
	out := New(2*r, 2*c0)
	for i := 0; i < r; i++ {
		for j := 0; j < c0; j++ {
			out.data[i*2*c0+j] = a.data[i*c0+j]
			out.data[i*2*c0+c0+j] = b.data[i*c0+j]
			out.data[(r+i)*2*c0+j] = c.data[i*c0+j]
			out.data[(r+i)*2*c0+c0+j] = d.data[i*c0+j]
		}
	}
	return out
}

func sameShape(op string, a, b *Matrix) {
	if a.rows != b.rows || a.cols != b.cols {
		panic(fmt.Sprintf("cmat: %s dimension mismatch: %dx%d vs %dx%d", op, a.rows, a.cols, b.rows, b.cols))
	}
}
