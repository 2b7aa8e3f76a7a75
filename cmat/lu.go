package cmat

import (
	"fmt"
	"math/cmplx"
)

// pivotTolerance is the absolute threshold below which a pivot is treated
// as numerically zero.
const pivotTolerance = 1e-300

// LU holds a partial-pivot LU factorization P*A = L*U of a square matrix.
// The factors share one storage buffer: U occupies the upper triangle
// including the diagonal, L the strict lower triangle (unit diagonal
// implied).
type LU struct {
	n    int
	lu   []complex128
	perm []int
}

// Factorize computes the LU factorization of the square matrix a.
// Returns ErrSingular when a pivot vanishes.
// Complexity: O(n^3) time, O(n^2) memory.
func Factorize(a *Matrix) (*LU, error) {
	if a.rows != a.cols {
		panic(fmt.Sprintf("cmat: Factorize requires a square matrix, got %dx%d", a.rows, a.cols))
	}
	n := a.rows
	f := &LU{
		n:    n,
		lu:   append([]complex128(nil), a.data...),
		perm: make([]int, n),
	}
	for i := range f.perm {
		f.perm[i] = i
	}

	for k := 0; k < n; k++ {
		// Pick the largest-magnitude pivot in column k.
		p, pmax := k, cmplx.Abs(f.lu[k*n+k])
		for i := k + 1; i < n; i++ {
			if m := cmplx.Abs(f.lu[i*n+k]); m > pmax {
				p, pmax = i, m
			}
		}
		if pmax < pivotTolerance {
			return nil, fmt.Errorf("cmat: Factorize: zero pivot at column %d: %w", k, ErrSingular)
		}
		if p != k {
			f.swapRows(p, k)
			f.perm[p], f.perm[k] = f.perm[k], f.perm[p]
		}
		pivot := f.lu[k*n+k]
		for i := k + 1; i < n; i++ {
			mult := f.lu[i*n+k] / pivot
			f.lu[i*n+k] = mult
			for j := k + 1; j < n; j++ {
				f.lu[i*n+j] -= mult * f.lu[k*n+j]
			}
		}
	}
	return f, nil
}

func (f *LU) swapRows(a, b int) {
	ra := f.lu[a*f.n : (a+1)*f.n]
	rb := f.lu[b*f.n : (b+1)*f.n]
	for j := range ra {
		ra[j], rb[j] = rb[j], ra[j]
	}
}

// Solve returns x with A*x = b, where b may have any number of columns.
func (f *LU) Solve(b *Matrix) *Matrix {
	if b.rows != f.n {
		panic(fmt.Sprintf("cmat: LU.Solve dimension mismatch: %d rows vs order %d", b.rows, f.n))
	}
	n, nrhs := f.n, b.cols
	x := New(n, nrhs)
	// Apply the row permutation to the right-hand side.
	for i := 0; i < n; i++ {
		copy(x.data[i*nrhs:(i+1)*nrhs], b.data[f.perm[i]*nrhs:(f.perm[i]+1)*nrhs])
	}
	// Forward substitution with the unit lower triangle.
	for i := 1; i < n; i++ {
		for k := 0; k < i; k++ {
			l := f.lu[i*n+k]
			if l == 0 {
				continue
			}
			for j := 0; j < nrhs; j++ {
				x.data[i*nrhs+j] -= l * x.data[k*nrhs+j]
			}
		}
	}
	// Back substitution with the upper triangle.
	for i := n - 1; i >= 0; i-- {
		for k := i + 1; k < n; k++ {
			u := f.lu[i*n+k]
			if u == 0 {
				continue
			}
			for j := 0; j < nrhs; j++ {
				x.data[i*nrhs+j] -= u * x.data[k*nrhs+j]
			}
		}
		d := f.lu[i*n+i]
		for j := 0; j < nrhs; j++ {
			x.data[i*nrhs+j] /= d
		}
	}
	return x
}

// SolveVec returns x with A*x = b for a single right-hand-side vector.
func (f *LU) SolveVec(b []complex128) []complex128 {
	return f.Solve(FromColumn(b)).Column(0)
}

// Solve returns x with a*x = b, factorizing a on the fly.
// Prefer Factorize when several systems share the same left-hand side.
func Solve(a, b *Matrix) (*Matrix, error) {
	f, err := Factorize(a)
	if err != nil {
		return nil, err
	}
	return f.Solve(b), nil
}

// Inverse returns the inverse of the square matrix a, or ErrSingular.
func Inverse(a *Matrix) (*Matrix, error) {
	f, err := Factorize(a)
	if err != nil {
		return nil, err
	}
	return f.Solve(Identity(a.rows)), nil
}
