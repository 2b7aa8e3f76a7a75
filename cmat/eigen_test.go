package cmat_test

import (
	"math/cmplx"
	"sort"
	"testing"

	"github.com/photonlattice/fmm/cmat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// residual returns max_j ||A v_j - q_j v_j||_inf over all eigenpairs.
func residual(t *testing.T, a *cmat.Matrix, values []complex128, vectors *cmat.Matrix) float64 {
	t.Helper()
	n, _ := a.Dims()
	var worst float64
	for j := 0; j < n; j++ {
		v := vectors.Column(j)
		av := a.MulVec(v)
		for i := 0; i < n; i++ {
			if r := cmplx.Abs(av[i] - values[j]*v[i]); r > worst {
				worst = r
			}
		}
	}
	return worst
}

// TestEigen_Diagonal recovers the diagonal of a complex diagonal matrix.
func TestEigen_Diagonal(t *testing.T) {
	d := []complex128{1 + 1i, -2, 3i, 0.5 - 0.25i}
	values, vectors, err := cmat.Eigen(cmat.Diagonal(d))
	require.NoError(t, err)
	require.Len(t, values, len(d))
	assert.Less(t, residual(t, cmat.Diagonal(d), values, vectors), 1e-10)

	sortByAbs := func(v []complex128) {
		sort.Slice(v, func(i, j int) bool { return cmplx.Abs(v[i]) < cmplx.Abs(v[j]) })
	}
	got := append([]complex128(nil), values...)
	want := append([]complex128(nil), d...)
	sortByAbs(got)
	sortByAbs(want)
	for i := range want {
		assert.InDelta(t, 0, cmplx.Abs(got[i]-want[i]), 1e-10)
	}
}

// TestEigen_GeneralComplex checks eigenpair residuals for a dense
// non-Hermitian complex matrix.
func TestEigen_GeneralComplex(t *testing.T) {
	const n = 6
	a := cmat.New(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, complex(float64((i*7+j*3)%5)-2, float64((i+2*j)%3)-1))
		}
	}
	values, vectors, err := cmat.Eigen(a)
	require.NoError(t, err)
	require.Len(t, values, n)
	assert.Less(t, residual(t, a, values, vectors), 1e-9)
}

// TestEigen_RealMatrix exercises the duplicated-spectrum case of the real
// embedding: a real input whose complex conjugate eigenvalue pairs must
// both be recovered exactly once.
func TestEigen_RealMatrix(t *testing.T) {
	// Rotation-like block with eigenvalues 1±2i alongside a real eigenvalue.
	a := cmat.New(3, 3)
	a.Set(0, 0, 1)
	a.Set(0, 1, -2)
	a.Set(1, 0, 2)
	a.Set(1, 1, 1)
	a.Set(2, 2, 5)

	values, vectors, err := cmat.Eigen(a)
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Less(t, residual(t, a, values, vectors), 1e-10)

	var sawPlus, sawMinus, sawReal bool
	for _, q := range values {
		switch {
		case cmplx.Abs(q-(1+2i)) < 1e-9:
			sawPlus = true
		case cmplx.Abs(q-(1-2i)) < 1e-9:
			sawMinus = true
		case cmplx.Abs(q-5) < 1e-9:
			sawReal = true
		}
	}
	assert.True(t, sawPlus, "eigenvalue 1+2i missing")
	assert.True(t, sawMinus, "eigenvalue 1-2i missing")
	assert.True(t, sawReal, "eigenvalue 5 missing")
}

// TestEigen_DegenerateEigenspace keeps two independent eigenvectors for a
// doubly degenerate eigenvalue.
func TestEigen_DegenerateEigenspace(t *testing.T) {
	d := []complex128{2 + 1i, 2 + 1i, -1}
	values, vectors, err := cmat.Eigen(cmat.Diagonal(d))
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Less(t, residual(t, cmat.Diagonal(d), values, vectors), 1e-10)

	var degenerate int
	for _, q := range values {
		if cmplx.Abs(q-(2+1i)) < 1e-9 {
			degenerate++
		}
	}
	assert.Equal(t, 2, degenerate, "degenerate eigenvalue must appear twice")
}
