package fourier

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/photonlattice/fmm/basis"
	"github.com/photonlattice/fmm/cmat"
)

// ConvolutionMatrix returns the Toeplitz convolution matrix of the gridded
// quantity for the given expansion. Entry (i, j) holds the Fourier
// coefficient at the reciprocal vector difference G_i - G_j, following
// equation 8 of Liu and Fan (2012).
//
// The grid is a flat row-major slice of shape (nx, ny). It returns
// ErrGridTooSmall when the shape cannot resolve all difference orders.
func ConvolutionMatrix(grid []complex128, nx, ny int, e *basis.Expansion) (*cmat.Matrix, error) {
	if err := checkGrid(grid, nx, ny, e); err != nil {
		return nil, err
	}

	coeffs := forwardGrid(grid, nx, ny)

	n := e.NumTerms()
	m := cmat.New(n, n)
	for i := 0; i < n; i++ {
		ci := e.Coefficient(i)
		for j := 0; j < n; j++ {
			cj := e.Coefficient(j)
			row := wrap(ci[0]-cj[0], nx)
			col := wrap(ci[1]-cj[1], ny)
			m.Set(i, j, coeffs[row*ny+col])
		}
	}
	return m, nil
}

// Transform projects the grid onto the expansion, returning one Fourier
// coefficient per order.
func Transform(grid []complex128, nx, ny int, e *basis.Expansion) ([]complex128, error) {
	if err := checkGrid(grid, nx, ny, e); err != nil {
		return nil, err
	}

	coeffs := forwardGrid(grid, nx, ny)

	out := make([]complex128, e.NumTerms())
	for i := range out {
		c := e.Coefficient(i)
		out[i] = coeffs[wrap(c[0], nx)*ny+wrap(c[1], ny)]
	}
	return out, nil
}

// InverseTransform reconstructs a flat row-major grid of shape (nx, ny)
// from one coefficient per expansion order. Orders absent from the
// expansion contribute nothing. It is the exact inverse of Transform for
// grids band-limited to the expansion.
func InverseTransform(coeffs []complex128, e *basis.Expansion, nx, ny int) ([]complex128, error) {
	if len(coeffs) != e.NumTerms() {
		panic(fmt.Sprintf("fourier: %d coefficients for %d expansion orders", len(coeffs), e.NumTerms()))
	}
	minX, minY := e.MinGridShape()
	if nx < minX || ny < minY {
		return nil, fmt.Errorf("%w: shape (%d, %d), need at least (%d, %d)", ErrGridTooSmall, nx, ny, minX, minY)
	}

	grid := make([]complex128, nx*ny)
	for i, c := range coeffs {
		order := e.Coefficient(i)
		grid[wrap(order[0], nx)*ny+wrap(order[1], ny)] = c
	}

	// Undo the element-center phase, then apply the unnormalized inverse
	// transform along both axes.
	for i := 0; i < nx; i++ {
		fi := fftFrequency(i, nx)
		for j := 0; j < ny; j++ {
			fj := fftFrequency(j, ny)
			grid[i*ny+j] *= cmplx.Exp(complex(0, math.Pi*(fi+fj)))
		}
	}
	inverse2(grid, nx, ny)
	return grid, nil
}

func checkGrid(grid []complex128, nx, ny int, e *basis.Expansion) error {
	if len(grid) != nx*ny {
		panic(fmt.Sprintf("fourier: grid length %d does not match shape (%d, %d)", len(grid), nx, ny))
	}
	minX, minY := e.MinGridShape()
	if nx < minX || ny < minY {
		return fmt.Errorf("%w: shape (%d, %d), need at least (%d, %d)", ErrGridTooSmall, nx, ny, minX, minY)
	}
	return nil
}

// forwardGrid computes the normalized 2D transform of the grid with the
// element-center phase compensation applied.
func forwardGrid(grid []complex128, nx, ny int) []complex128 {
	out := make([]complex128, len(grid))
	copy(out, grid)
	forward2(out, nx, ny)

	scale := complex(1/float64(nx*ny), 0)
	for i := 0; i < nx; i++ {
		fi := fftFrequency(i, nx)
		for j := 0; j < ny; j++ {
			fj := fftFrequency(j, ny)
			out[i*ny+j] *= scale * cmplx.Exp(complex(0, -math.Pi*(fi+fj)))
		}
	}
	return out
}

// forward2 applies the unnormalized forward transform in place, rows first.
func forward2(grid []complex128, nx, ny int) {
	rowFFT := fourier.NewCmplxFFT(ny)
	for i := 0; i < nx; i++ {
		row := grid[i*ny : (i+1)*ny]
		rowFFT.Coefficients(row, row)
	}
	colFFT := fourier.NewCmplxFFT(nx)
	col := make([]complex128, nx)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			col[i] = grid[i*ny+j]
		}
		colFFT.Coefficients(col, col)
		for i := 0; i < nx; i++ {
			grid[i*ny+j] = col[i]
		}
	}
}

// inverse2 applies the unnormalized inverse transform in place.
func inverse2(grid []complex128, nx, ny int) {
	rowFFT := fourier.NewCmplxFFT(ny)
	for i := 0; i < nx; i++ {
		row := grid[i*ny : (i+1)*ny]
		rowFFT.Sequence(row, row)
	}
	colFFT := fourier.NewCmplxFFT(nx)
	col := make([]complex128, nx)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			col[i] = grid[i*ny+j]
		}
		colFFT.Sequence(col, col)
		for i := 0; i < nx; i++ {
			grid[i*ny+j] = col[i]
		}
	}
}

// fftFrequency returns the discrete frequency of bin i for length n, in
// cycles per sample. Bins past the midpoint alias to negative frequencies.
func fftFrequency(i, n int) float64 {
	if i <= (n-1)/2 {
		return float64(i) / float64(n)
	}
	return float64(i-n) / float64(n)
}

// wrap maps a signed order index onto grid index range [0, n).
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
