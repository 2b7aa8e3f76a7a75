package fields

import (
	"fmt"
	"math/cmplx"

	"github.com/photonlattice/fmm/basis"
	"github.com/photonlattice/fmm/fourier"
	"github.com/photonlattice/fmm/layer"
)

// GridFields holds all six field components sampled on a real-space grid
// of NX by NY points, flat row-major, together with the coordinates of
// each sample.
type GridFields struct {
	Ex, Ey, Ez []complex128
	Hx, Hy, Hz []complex128

	NX, NY int
	X, Y   []float64
}

// OnGrid evaluates field coefficients on a real-space sampling grid of
// nx-by-ny points per unit cell, tiled over cellsU-by-cellsV cells. The
// periodic part of each component is reconstructed by inverse transform
// on one cell and repeated; the Bloch phase of the in-plane wavevector is
// applied pointwise, so neighboring cells differ by the proper phase.
func OnGrid(f *Fields, r *layer.SolveResult, nx, ny, cellsU, cellsV int) (*GridFields, error) {
	x, y, err := basis.UnitCellCoordinates(r.Lattice, nx, ny, cellsU, cellsV)
	if err != nil {
		return nil, fmt.Errorf("fields: %w", err)
	}
	rows, cols := nx*cellsU, ny*cellsV

	out := &GridFields{NX: rows, NY: cols, X: x, Y: y}
	k := r.InPlaneWavevector
	for _, c := range []struct {
		coeffs []complex128
		dst    *[]complex128
	}{
		{f.Ex, &out.Ex}, {f.Ey, &out.Ey}, {f.Ez, &out.Ez},
		{f.Hx, &out.Hx}, {f.Hy, &out.Hy}, {f.Hz, &out.Hz},
	} {
		cell, err := fourier.InverseTransform(c.coeffs, r.Expansion, nx, ny)
		if err != nil {
			return nil, fmt.Errorf("fields: %w", err)
		}
		grid := make([]complex128, rows*cols)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				idx := i*cols + j
				phase := cmplx.Exp(complex(0, k.X*x[idx]+k.Y*y[idx]))
				grid[idx] = cell[(i%nx)*ny+j%ny] * phase
			}
		}
		*c.dst = grid
	}
	return out, nil
}

// OnCoordinates evaluates field coefficients directly at arbitrary
// in-plane positions by summing the expansion, including the Bloch phase.
// Intended for small point sets; use OnGrid for full-cell sampling.
func OnCoordinates(f *Fields, r *layer.SolveResult, x, y []float64) (*GridFields, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d x coordinates, %d y coordinates", ErrShapeMismatch, len(x), len(y))
	}

	out := &GridFields{NX: len(x), NY: 1, X: x, Y: y}
	sum := func(coeffs []complex128) []complex128 {
		vals := make([]complex128, len(x))
		for p := range x {
			var acc complex128
			for g, c := range coeffs {
				phase := r.Kx[g]*x[p] + r.Ky[g]*y[p]
				acc += c * cmplx.Exp(complex(0, phase))
			}
			vals[p] = acc
		}
		return vals
	}
	out.Ex, out.Ey, out.Ez = sum(f.Ex), sum(f.Ey), sum(f.Ez)
	out.Hx, out.Hy, out.Hz = sum(f.Hx), sum(f.Hy), sum(f.Hz)
	return out, nil
}

// StackGridFields samples the fields throughout a whole stack: each layer
// contributes samplesPerLayer planes at centered depth offsets, each
// evaluated on the real-space grid of OnGrid. The returned z coordinates
// are measured from the stack start and are strictly increasing when all
// thicknesses are positive.
func StackGridFields(amps []Amplitudes, layers []*layer.SolveResult, thicknesses []float64, samplesPerLayer, nx, ny, cellsU, cellsV int) ([]*GridFields, []float64, error) {
	if len(amps) != len(layers) || len(layers) != len(thicknesses) {
		return nil, nil, fmt.Errorf("%w: %d amplitude pairs, %d layers, %d thicknesses", ErrShapeMismatch, len(amps), len(layers), len(thicknesses))
	}
	if samplesPerLayer < 1 {
		return nil, nil, fmt.Errorf("%w: %d samples per layer", ErrShapeMismatch, samplesPerLayer)
	}

	grids := make([]*GridFields, 0, len(layers)*samplesPerLayer)
	zs := make([]float64, 0, len(layers)*samplesPerLayer)
	offset := 0.0
	for i, r := range layers {
		d := thicknesses[i]
		for s := 0; s < samplesPerLayer; s++ {
			z := d * (float64(s) + 0.5) / float64(samplesPerLayer)
			fwd, bwd := ColocateInLayer(amps[i].Forward, amps[i].Backward, r, d, z)
			f, err := FromAmplitudes(fwd, bwd, r)
			if err != nil {
				return nil, nil, err
			}
			g, err := OnGrid(f, r, nx, ny, cellsU, cellsV)
			if err != nil {
				return nil, nil, err
			}
			grids = append(grids, g)
			zs = append(zs, offset+z)
		}
		offset += d
	}
	return grids, zs, nil
}

// AverageGridFields returns the pointwise mean of several sampled fields,
// the reduction used when integrating over the Brillouin zone. All inputs
// must share one grid.
func AverageGridFields(list []*GridFields) (*GridFields, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no fields to average", ErrShapeMismatch)
	}
	first := list[0]
	for _, g := range list[1:] {
		if g.NX != first.NX || g.NY != first.NY {
			return nil, fmt.Errorf("%w: grids (%d, %d) and (%d, %d)", ErrShapeMismatch, first.NX, first.NY, g.NX, g.NY)
		}
	}

	out := &GridFields{
		NX: first.NX, NY: first.NY,
		X: first.X, Y: first.Y,
		Ex: make([]complex128, len(first.Ex)),
		Ey: make([]complex128, len(first.Ey)),
		Ez: make([]complex128, len(first.Ez)),
		Hx: make([]complex128, len(first.Hx)),
		Hy: make([]complex128, len(first.Hy)),
		Hz: make([]complex128, len(first.Hz)),
	}
	scale := complex(1/float64(len(list)), 0)
	for _, g := range list {
		accumulate(out.Ex, g.Ex, scale)
		accumulate(out.Ey, g.Ey, scale)
		accumulate(out.Ez, g.Ez, scale)
		accumulate(out.Hx, g.Hx, scale)
		accumulate(out.Hy, g.Hy, scale)
		accumulate(out.Hz, g.Hz, scale)
	}
	return out, nil
}

func accumulate(dst, src []complex128, scale complex128) {
	for i := range dst {
		dst[i] += scale * src[i]
	}
}
