package fields

import (
	"fmt"

	"github.com/photonlattice/fmm/cmat"
	"github.com/photonlattice/fmm/scattering"
	"github.com/photonlattice/fmm/sources"
)

// Amplitudes pairs the forward and backward mode amplitudes inside one
// layer, referenced at the layer start and end respectively.
type Amplitudes struct {
	Forward, Backward []complex128
}

// StackAmplitudesInterior resolves the amplitudes inside every layer of a
// stack illuminated from outside: forwardStart enters the first layer and
// backwardEnd enters the last. Element i of the result belongs to layer i
// of the interior matrices.
//
// For layer i, write B for the substack before it and A for the substack
// after it, both including the layer. The self-consistent amplitudes are
//
//	a_i = (I - B12 A21)^-1 (B11 aStart + B12 A22 bEnd)
//	b_i = A21 a_i + A22 bEnd
func StackAmplitudesInterior(interior []scattering.Interior, forwardStart, backwardEnd []complex128) ([]Amplitudes, error) {
	if len(interior) == 0 {
		return nil, scattering.ErrEmptyStack
	}
	n := interior[0].Before.Start.NumModes()
	if len(forwardStart) != n || len(backwardEnd) != n {
		return nil, fmt.Errorf("%w: got %d and %d for %d modes", ErrShapeMismatch, len(forwardStart), len(backwardEnd), n)
	}

	out := make([]Amplitudes, len(interior))
	for i, pair := range interior {
		b, a := pair.Before, pair.After

		drive := add(b.S11.MulVec(forwardStart), b.S12.MulVec(a.S22.MulVec(backwardEnd)))
		lu, err := cmat.Factorize(cmat.Sub(cmat.Identity(n), cmat.Mul(b.S12, a.S21)))
		if err != nil {
			return nil, fmt.Errorf("fields: interior solve for layer %d: %w", i, err)
		}
		fwd := lu.SolveVec(drive)
		bwd := add(a.S21.MulVec(fwd), a.S22.MulVec(backwardEnd))
		out[i] = Amplitudes{Forward: fwd, Backward: bwd}
	}
	return out, nil
}

// StackAmplitudesInteriorWithSource resolves the amplitudes inside every
// layer of a stack excited by an embedded source. The interior matrices
// describe the substacks before and after the source plane, each of which
// terminates in the source layer; the source layer therefore appears once
// in each list. Results are ordered before-substack first.
func StackAmplitudesInteriorWithSource(beforeInterior, afterInterior []scattering.Interior, amps *sources.SourceAmplitudes) ([]Amplitudes, error) {
	if len(beforeInterior) == 0 || len(afterInterior) == 0 {
		return nil, scattering.ErrEmptyStack
	}
	n := len(amps.ForwardAfterStart)
	zero := make([]complex128, n)

	// Before the source the only excitation is the backward wave leaving
	// the source plane; after it, the forward wave.
	before, err := StackAmplitudesInterior(beforeInterior, zero, amps.BackwardBeforeEnd)
	if err != nil {
		return nil, err
	}
	after, err := StackAmplitudesInterior(afterInterior, amps.ForwardAfterStart, zero)
	if err != nil {
		return nil, err
	}
	return append(before, after...), nil
}

func add(a, b []complex128) []complex128 {
	out := make([]complex128, len(a))
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}
