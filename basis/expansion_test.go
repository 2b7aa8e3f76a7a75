package basis_test

import (
	"testing"

	"github.com/photonlattice/fmm/basis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func squareLattice(t *testing.T, pitch float64) basis.LatticeVectors {
	t.Helper()
	lv, err := basis.NewLatticeVectors(r2.Vec{X: pitch}, r2.Vec{Y: pitch})
	require.NoError(t, err)
	return lv
}

// TestNewExpansion_ZeroOrderFirst verifies that (0,0) leads the expansion
// for both truncation policies.
func TestNewExpansion_ZeroOrderFirst(t *testing.T) {
	lattice := squareLattice(t, 1.0)
	for _, trunc := range []basis.Truncation{basis.Circular, basis.Parallelogramic} {
		e, err := basis.NewExpansion(lattice, 37, trunc)
		require.NoError(t, err)
		assert.Equal(t, [2]int{0, 0}, e.Coefficient(0))
	}
}

// TestNewExpansion_Symmetry checks closure under negation: every order
// (m,n) is accompanied by (-m,-n).
func TestNewExpansion_Symmetry(t *testing.T) {
	lattice, err := basis.NewLatticeVectors(r2.Vec{X: 1.0, Y: 0.2}, r2.Vec{X: -0.1, Y: 0.8})
	require.NoError(t, err)
	for _, trunc := range []basis.Truncation{basis.Circular, basis.Parallelogramic} {
		e, err := basis.NewExpansion(lattice, 50, trunc)
		require.NoError(t, err)
		present := make(map[[2]int]bool, e.NumTerms())
		for _, c := range e.Coefficients() {
			present[c] = true
		}
		for c := range present {
			assert.True(t, present[[2]int{-c[0], -c[1]}], "missing negation of %v", c)
		}
	}
}

// TestNewExpansion_Deterministic verifies identical output across repeated
// generation with identical parameters.
func TestNewExpansion_Deterministic(t *testing.T) {
	lattice := squareLattice(t, 0.45)
	a, err := basis.NewExpansion(lattice, 100, basis.Circular)
	require.NoError(t, err)
	b, err := basis.NewExpansion(lattice, 100, basis.Circular)
	require.NoError(t, err)
	assert.True(t, a.Equal(b), "expansions from identical inputs must match exactly")
}

// TestNewExpansion_MagnitudeOrdering checks ascending reciprocal magnitude.
func TestNewExpansion_MagnitudeOrdering(t *testing.T) {
	lattice := squareLattice(t, 1.0)
	e, err := basis.NewExpansion(lattice, 60, basis.Circular)
	require.NoError(t, err)
	prev := -1.0
	for _, c := range e.Coefficients() {
		mag := float64(c[0]*c[0] + c[1]*c[1])
		assert.GreaterOrEqual(t, mag, prev, "orders must be sorted by magnitude")
		prev = mag
	}
}

// TestNewExpansion_SingleTerm covers the minimal expansion.
func TestNewExpansion_SingleTerm(t *testing.T) {
	e, err := basis.NewExpansion(squareLattice(t, 0.45), 1, basis.Circular)
	require.NoError(t, err)
	assert.Equal(t, 1, e.NumTerms())
	assert.Equal(t, [2]int{0, 0}, e.Coefficient(0))
}

// TestNewExpansion_Errors covers the configuration error cases.
func TestNewExpansion_Errors(t *testing.T) {
	lattice := squareLattice(t, 1.0)

	_, err := basis.NewExpansion(lattice, 0, basis.Circular)
	assert.ErrorIs(t, err, basis.ErrBadTermCount)

	_, err = basis.NewLatticeVectors(r2.Vec{X: 1, Y: 2}, r2.Vec{X: 2, Y: 4})
	assert.ErrorIs(t, err, basis.ErrDegenerateLattice)

	_, err = basis.NewExpansion(lattice, 10, basis.Truncation(99))
	assert.ErrorIs(t, err, basis.ErrBadTruncation)
}

// TestParallelogramic_FullRectangle verifies the rectangular index range is
// complete: counts along each axis are odd and the product matches.
func TestParallelogramic_FullRectangle(t *testing.T) {
	e, err := basis.NewExpansion(squareLattice(t, 1.0), 25, basis.Parallelogramic)
	require.NoError(t, err)
	m, n := e.MaxIndex()
	assert.Equal(t, (2*m+1)*(2*n+1), e.NumTerms(), "parallelogramic truncation keeps the full rectangle")
}

// TestMinGridShape ties the minimum sampling shape to the extreme indices.
func TestMinGridShape(t *testing.T) {
	e, err := basis.NewExpansion(squareLattice(t, 1.0), 9, basis.Parallelogramic)
	require.NoError(t, err)
	nx, ny := e.MinGridShape()
	m, n := e.MaxIndex()
	assert.Equal(t, 2*m+1, nx)
	assert.Equal(t, 2*n+1, ny)
}
