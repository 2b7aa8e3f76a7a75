package scattering

import (
	"fmt"
	"math/cmplx"

	"github.com/photonlattice/fmm/cmat"
	"github.com/photonlattice/fmm/layer"
)

// Matrix is the scattering matrix of a layer stack, together with the
// eigensolves and thicknesses of its two terminal layers. The terminal
// data is what allows a Matrix to be extended with further layers.
type Matrix struct {
	S11, S12, S21, S22 *cmat.Matrix

	Start          *layer.SolveResult
	StartThickness float64
	End            *layer.SolveResult
	EndThickness   float64
}

// Interior pairs the scattering matrices on the two sides of one layer:
// Before spans layers 0..i inclusive, After spans layers i..N-1.
type Interior struct {
	Before, After *Matrix
}

// StackMatrix computes the scattering matrix for a stack of layers. A
// single-layer stack yields the identity matrix.
func StackMatrix(layers []*layer.SolveResult, thicknesses []float64) (*Matrix, error) {
	all, err := StackMatrices(layers, thicknesses)
	if err != nil {
		return nil, err
	}
	return all[len(all)-1], nil
}

// StackMatrices computes the scattering matrices of every substack that
// starts at layer 0: element i spans layers 0..i inclusive.
func StackMatrices(layers []*layer.SolveResult, thicknesses []float64) ([]*Matrix, error) {
	if len(layers) == 0 {
		return nil, ErrEmptyStack
	}
	if len(layers) != len(thicknesses) {
		return nil, fmt.Errorf("%w: %d layers, %d thicknesses", ErrLayerMismatch, len(layers), len(thicknesses))
	}

	n := layers[0].NumModes()
	s := &Matrix{
		S11:            cmat.Identity(n),
		S12:            cmat.New(n, n),
		S21:            cmat.New(n, n),
		S22:            cmat.Identity(n),
		Start:          layers[0],
		StartThickness: thicknesses[0],
		End:            layers[0],
		EndThickness:   thicknesses[0],
	}

	out := make([]*Matrix, len(layers))
	out[0] = s
	for i := 1; i < len(layers); i++ {
		next, err := AppendLayer(out[i-1], layers[i], thicknesses[i])
		if err != nil {
			return nil, err
		}
		out[i] = next
	}
	return out, nil
}

// StackMatricesInterior computes, for every layer, the scattering matrices
// of the substacks before and after it. The "after" matrices come from
// assembling the reversed stack and swapping the blocks of each result.
func StackMatricesInterior(layers []*layer.SolveResult, thicknesses []float64) ([]Interior, error) {
	before, err := StackMatrices(layers, thicknesses)
	if err != nil {
		return nil, err
	}

	reversedLayers := make([]*layer.SolveResult, len(layers))
	reversedThicknesses := make([]float64, len(layers))
	for i := range layers {
		j := len(layers) - 1 - i
		reversedLayers[i] = layers[j]
		reversedThicknesses[i] = thicknesses[j]
	}
	reversed, err := StackMatrices(reversedLayers, reversedThicknesses)
	if err != nil {
		return nil, err
	}

	out := make([]Interior, len(layers))
	for i := range out {
		out[i] = Interior{
			Before: before[i],
			After:  reverse(reversed[len(layers)-1-i]),
		}
	}
	return out, nil
}

// reverse returns the scattering matrix of the same stack traversed in the
// opposite direction, which is a relabeling of the blocks and terminals.
func reverse(s *Matrix) *Matrix {
	return &Matrix{
		S11:            s.S22,
		S12:            s.S21,
		S21:            s.S12,
		S22:            s.S11,
		Start:          s.End,
		StartThickness: s.EndThickness,
		End:            s.Start,
		EndThickness:   s.StartThickness,
	}
}

// AppendLayer extends the stack with one layer at its end.
func AppendLayer(s *Matrix, next *layer.SolveResult, thickness float64) (*Matrix, error) {
	n11, n12, n21, n22, err := extend(
		s.S11, s.S12, s.S21, s.S22,
		s.End, s.EndThickness, next, thickness,
	)
	if err != nil {
		return nil, err
	}
	return &Matrix{
		S11:            n11,
		S12:            n12,
		S21:            n21,
		S22:            n22,
		Start:          s.Start,
		StartThickness: s.StartThickness,
		End:            next,
		EndThickness:   thickness,
	}, nil
}

// PrependLayer extends the stack with one layer at its start. Prepending
// is appending to the reversed stack, so the blocks go in and come out
// swapped.
func PrependLayer(s *Matrix, next *layer.SolveResult, thickness float64) (*Matrix, error) {
	n22, n21, n12, n11, err := extend(
		s.S22, s.S21, s.S12, s.S11,
		s.Start, s.StartThickness, next, thickness,
	)
	if err != nil {
		return nil, err
	}
	return &Matrix{
		S11:            n11,
		S12:            n12,
		S21:            n21,
		S22:            n22,
		Start:          next,
		StartThickness: thickness,
		End:            s.End,
		EndThickness:   s.EndThickness,
	}, nil
}

// RedhefferStar combines two stack scattering matrices. The first stack is
// extended across the interface into the start layer of the second, after
// which the standard star-product composition applies.
func RedhefferStar(a, b *Matrix) (*Matrix, error) {
	aExt, err := AppendLayer(a, b.Start, b.StartThickness)
	if err != nil {
		return nil, err
	}

	n, _ := aExt.S11.Dims()
	eye := cmat.Identity(n)

	// X = (I - a12 b21)^-1, Y = (I - b21 a12)^-1.
	luX, err := cmat.Factorize(cmat.Sub(eye, cmat.Mul(aExt.S12, b.S21)))
	if err != nil {
		return nil, fmt.Errorf("scattering: star product: %w", err)
	}
	luY, err := cmat.Factorize(cmat.Sub(eye, cmat.Mul(b.S21, aExt.S12)))
	if err != nil {
		return nil, fmt.Errorf("scattering: star product: %w", err)
	}

	return &Matrix{
		S11:            cmat.Mul(b.S11, luX.Solve(aExt.S11)),
		S12:            cmat.Add(b.S12, cmat.Mul(b.S11, luX.Solve(cmat.Mul(aExt.S12, b.S22)))),
		S21:            cmat.Add(aExt.S21, cmat.Mul(aExt.S22, luY.Solve(cmat.Mul(b.S21, aExt.S11)))),
		S22:            cmat.Mul(aExt.S22, luY.Solve(b.S22)),
		Start:          a.Start,
		StartThickness: a.StartThickness,
		End:            b.End,
		EndThickness:   b.EndThickness,
	}, nil
}

// SetEndLayerThickness returns a copy of s with the end layer thickness
// changed. Backward amplitudes are referenced at the layer end, so the
// affected blocks pick up the propagation phase of the thickness change.
func SetEndLayerThickness(s *Matrix, thickness float64) *Matrix {
	fd := phases(s.End.Eigenvalues, thickness-s.EndThickness)
	out := *s
	out.S12 = cmat.ScaleCols(s.S12, fd)
	out.S22 = cmat.ScaleCols(s.S22, fd)
	out.EndThickness = thickness
	return &out
}

// SetStartLayerThickness returns a copy of s with the start layer
// thickness changed.
func SetStartLayerThickness(s *Matrix, thickness float64) *Matrix {
	fd := phases(s.Start.Eigenvalues, thickness-s.StartThickness)
	out := *s
	out.S11 = cmat.ScaleCols(s.S11, fd)
	out.S21 = cmat.ScaleCols(s.S21, fd)
	out.StartThickness = thickness
	return &out
}

// extend adds one layer at the end of a stack, per equations 5.3 and 5.4
// of Whittaker and Culshaw (1999). Both interface terms are computed as
// solves against OmegaScriptK phi, which shares one factorization and
// avoids forming any eigenvector inverse explicitly.
func extend(
	s11, s12, s21, s22 *cmat.Matrix,
	end *layer.SolveResult, endThickness float64,
	next *layer.SolveResult, nextThickness float64,
) (n11, n12, n21, n22 *cmat.Matrix, err error) {
	if end.NumModes() != next.NumModes() {
		return nil, nil, nil, nil, fmt.Errorf("%w: %d modes vs %d modes", ErrLayerMismatch, end.NumModes(), next.NumModes())
	}

	q := end.Eigenvalues
	nextQ := next.Eigenvalues

	lu, err := cmat.Factorize(cmat.Mul(end.OmegaScriptK, end.Eigenvectors))
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("scattering: interface solve: %w", err)
	}

	invNextQ := make([]complex128, len(nextQ))
	for i, v := range nextQ {
		invNextQ[i] = 1 / v
	}

	// term1 = diag(q) phi^T nextOmegaK nextPhi diag(1/nextQ)
	term1 := cmat.ScaleRows(
		lu.Solve(cmat.ScaleCols(cmat.Mul(next.OmegaScriptK, next.Eigenvectors), invNextQ)),
		q,
	)
	// term2 = phi^T omegaK nextPhi
	term2 := lu.Solve(cmat.Mul(end.OmegaScriptK, next.Eigenvectors))

	i11 := cmat.Add(term1, term2).Scale(0.5)
	i12 := cmat.Sub(term2, term1).Scale(0.5)
	i21, i22 := i12, i11

	fd := phases(q, endThickness)
	fdNext := phases(nextQ, nextThickness)

	term3 := cmat.Sub(i11, cmat.Mul(cmat.ScaleRows(s12, fd), i21))
	lu3, err := cmat.Factorize(term3)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("scattering: extension solve: %w", err)
	}

	n11 = lu3.Solve(cmat.ScaleRows(s11, fd))
	n12 = lu3.Solve(cmat.ScaleCols(
		cmat.Sub(cmat.Mul(cmat.ScaleRows(s12, fd), i22), i12),
		fdNext,
	))
	coupling := cmat.Mul(s22, i21)
	n21 = cmat.Add(cmat.Mul(coupling, n11), s21)
	n22 = cmat.Add(cmat.Mul(coupling, n12), cmat.ScaleCols(cmat.Mul(s22, i22), fdNext))
	return n11, n12, n21, n22, nil
}

// phases returns exp(i q d) per mode.
func phases(q []complex128, d float64) []complex128 {
	out := make([]complex128, len(q))
	for i, v := range q {
		out[i] = cmplx.Exp(complex(0, 1) * v * complex(d, 0))
	}
	return out
}
