package sources

import (
	"fmt"
	"math/cmplx"

	"github.com/photonlattice/fmm/cmat"
	"github.com/photonlattice/fmm/layer"
	"github.com/photonlattice/fmm/scattering"
)

// SourceAmplitudes holds the mode amplitudes radiated by a current sheet,
// resolved on both sides of the source plane and at both ends of the
// stack. Forward amplitudes are referenced at layer starts and backward
// amplitudes at layer ends, matching the scattering package.
type SourceAmplitudes struct {
	// BackwardStackStart is the backward amplitude in the first layer.
	BackwardStackStart []complex128
	// ForwardBeforeStart is the forward amplitude in the source layer on
	// the side before the source, referenced at the start of that layer.
	ForwardBeforeStart []complex128
	// BackwardBeforeEnd is the backward amplitude just before the source.
	BackwardBeforeEnd []complex128
	// ForwardAfterStart is the forward amplitude just after the source.
	ForwardAfterStart []complex128
	// BackwardAfterEnd is the backward amplitude in the source layer on
	// the side after the source, referenced at the end of that layer.
	BackwardAfterEnd []complex128
	// ForwardStackEnd is the forward amplitude in the last layer.
	ForwardStackEnd []complex128
}

// AmplitudesForSource solves for the amplitudes radiated by the current
// sheet at the plane between the two scattering matrices. The end layer of
// before and the start layer of after must both be the layer containing
// the source; their thicknesses set the distance from the source plane to
// the neighboring interfaces.
//
// The sheet imposes jumps in the tangential fields. With Pa and Pb the
// round-trip reflection operators of the after and before substacks seen
// from the source plane, the radiated amplitudes a and b satisfy
//
//	Fa (I - Pa) a - Fb (Pb - I) b = de
//	phia (I + Pa) a - phib (I + Pb) b = -jt
//
// where de is the tangential electric field jump induced by Jz and jt is
// the transverse current in the magnetic field arrangement.
func AmplitudesForSource(current CurrentDensity, before, after *scattering.Matrix) (*SourceAmplitudes, error) {
	b := before.End
	a := after.Start
	if a.NumModes() != b.NumModes() {
		return nil, fmt.Errorf("%w: %d modes vs %d modes", ErrStackMismatch, b.NumModes(), a.NumModes())
	}
	n := a.NumModes() / 2
	if len(current.Jx) != n || len(current.Jy) != n || len(current.Jz) != n {
		return nil, fmt.Errorf("%w: source has %d orders, layers have %d", ErrStackMismatch, len(current.Jx), n)
	}

	// Round-trip reflections seen from the source plane. Backward
	// amplitudes are referenced at layer ends, so the after-side
	// reflection propagates across the remaining thickness of the source
	// layer; likewise for the before side.
	pa := propagated(after.S21, a.Eigenvalues, after.StartThickness)
	pb := propagated(before.S12, b.Eigenvalues, before.EndThickness)

	fa := modeEField(a)
	fb := modeEField(b)
	eye := cmat.Identity(2 * n)

	system := cmat.Block4(
		cmat.Mul(fa, cmat.Sub(eye, pa)),
		cmat.Mul(fb, cmat.Sub(eye, pb)),
		cmat.Mul(a.Eigenvectors, cmat.Add(eye, pa)),
		cmat.Mul(b.Eigenvectors, cmat.Add(eye, pb)).Scale(-1),
	)

	rhs := make([]complex128, 4*n)
	// Tangential electric field jump from the longitudinal current.
	etaJz := b.InverseZPermittivity.MulVec(current.Jz)
	invOmega := complex(1/b.Omega(), 0)
	for i := 0; i < n; i++ {
		rhs[i] = invOmega * complex(b.Kx[i], 0) * etaJz[i]
		rhs[n+i] = invOmega * complex(b.Ky[i], 0) * etaJz[i]
	}
	// Magnetic field jump from the transverse current, in the (hy, -hx)
	// arrangement.
	for i := 0; i < n; i++ {
		rhs[2*n+i] = -current.Jx[i]
		rhs[3*n+i] = -current.Jy[i]
	}

	lu, err := cmat.Factorize(system)
	if err != nil {
		return nil, fmt.Errorf("sources: source plane solve: %w", err)
	}
	solution := lu.SolveVec(rhs)
	fwd := solution[:2*n]
	bwd := solution[2*n:]

	return &SourceAmplitudes{
		BackwardStackStart: before.S22.MulVec(bwd),
		ForwardBeforeStart: before.S12.MulVec(bwd),
		BackwardBeforeEnd:  bwd,
		ForwardAfterStart:  fwd,
		BackwardAfterEnd:   after.S21.MulVec(fwd),
		ForwardStackEnd:    after.S11.MulVec(fwd),
	}, nil
}

// AmplitudesForFields inverts the mode expansion at one plane of a layer:
// given the transverse field coefficients there, it recovers the forward
// and backward amplitudes referenced at that plane.
func AmplitudesForFields(ex, ey, hx, hy []complex128, r *layer.SolveResult) (fwd, bwd []complex128, err error) {
	n := r.NumModes() / 2
	if len(ex) != n || len(ey) != n || len(hx) != n || len(hy) != n {
		return nil, nil, fmt.Errorf("%w: fields have %d orders, layer has %d", ErrStackMismatch, len(ex), n)
	}

	e := make([]complex128, 2*n)
	h := make([]complex128, 2*n)
	for i := 0; i < n; i++ {
		e[i] = ex[i]
		e[n+i] = ey[i]
		h[i] = hy[i]
		h[n+i] = -hx[i]
	}

	// e = F (a - b), h = phi (a + b).
	luF, err := cmat.Factorize(modeEField(r))
	if err != nil {
		return nil, nil, fmt.Errorf("sources: field inversion: %w", err)
	}
	luPhi, err := cmat.Factorize(r.Eigenvectors)
	if err != nil {
		return nil, nil, fmt.Errorf("sources: field inversion: %w", err)
	}
	diff := luF.SolveVec(e)
	sum := luPhi.SolveVec(h)

	fwd = make([]complex128, 2*n)
	bwd = make([]complex128, 2*n)
	for i := range fwd {
		fwd[i] = (sum[i] + diff[i]) / 2
		bwd[i] = (sum[i] - diff[i]) / 2
	}
	return fwd, bwd, nil
}

// modeEField returns the matrix mapping mode amplitude differences to
// transverse electric fields, OmegaScriptK phi / (omega q).
func modeEField(r *layer.SolveResult) *cmat.Matrix {
	invQ := make([]complex128, len(r.Eigenvalues))
	for i, q := range r.Eigenvalues {
		invQ[i] = 1 / q
	}
	f := cmat.ScaleCols(cmat.Mul(r.OmegaScriptK, r.Eigenvectors), invQ)
	return f.Scale(complex(1/r.Omega(), 0))
}

// propagated returns diag(exp(iqd)) s, the reflection operator s carried
// across thickness d of the layer with eigenvalues q.
func propagated(s *cmat.Matrix, q []complex128, d float64) *cmat.Matrix {
	fd := make([]complex128, len(q))
	for i, v := range q {
		fd[i] = cmplx.Exp(complex(0, 1) * v * complex(d, 0))
	}
	return cmat.ScaleRows(s, fd)
}
