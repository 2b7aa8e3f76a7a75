package fields

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/photonlattice/fmm/cmat"
	"github.com/photonlattice/fmm/layer"
)

// Fields holds the Fourier coefficients of the six field components on
// the expansion orders of a layer, all evaluated at one plane.
type Fields struct {
	Ex, Ey, Ez []complex128
	Hx, Hy, Hz []complex128
}

// FromAmplitudes computes the field coefficients for a colocated pair of
// forward and backward amplitudes. The transverse magnetic field is the
// sum of the eigenvector columns weighted by a+b, the transverse electric
// field follows from a-b through the OmegaScriptK operator, and the
// longitudinal components come from the z components of Maxwell's curl
// equations.
func FromAmplitudes(fwd, bwd []complex128, r *layer.SolveResult) (*Fields, error) {
	if err := checkAmplitudes(fwd, bwd, r); err != nil {
		return nil, err
	}
	n := r.NumModes() / 2
	omega := r.Omega()

	sum := make([]complex128, 2*n)
	diff := make([]complex128, 2*n)
	for i := range sum {
		sum[i] = fwd[i] + bwd[i]
		diff[i] = fwd[i] - bwd[i]
	}

	h := r.Eigenvectors.MulVec(sum)
	e := modeEField(r).MulVec(diff)

	f := &Fields{
		Ex: e[:n],
		Ey: e[n:],
		Hy: h[:n],
		Hx: negate(h[n:]),
	}

	// ez = -(1/omega) ezz^-1 (Kx hy - Ky hx)
	curlH := make([]complex128, n)
	for i := 0; i < n; i++ {
		curlH[i] = complex(r.Kx[i], 0)*f.Hy[i] - complex(r.Ky[i], 0)*f.Hx[i]
	}
	f.Ez = scaleVec(r.InverseZPermittivity.MulVec(curlH), complex(-1/omega, 0))

	// hz = (1/omega) mzz^-1 (Kx ey - Ky ex)
	curlE := make([]complex128, n)
	for i := 0; i < n; i++ {
		curlE[i] = complex(r.Kx[i], 0)*f.Ey[i] - complex(r.Ky[i], 0)*f.Ex[i]
	}
	f.Hz = scaleVec(r.InverseZPermeability.MulVec(curlE), complex(1/omega, 0))

	return f, nil
}

// Propagate carries an amplitude across the given distance of the layer,
// multiplying each mode by exp(iqd). Forward amplitudes referenced at a
// layer start move toward its end with positive distance; backward
// amplitudes referenced at a layer end move toward its start.
func Propagate(amplitude []complex128, r *layer.SolveResult, distance float64) []complex128 {
	if len(amplitude) != r.NumModes() {
		panic(fmt.Sprintf("fields: %d amplitudes for %d modes", len(amplitude), r.NumModes()))
	}
	out := make([]complex128, len(amplitude))
	for i, a := range amplitude {
		out[i] = a * cmplx.Exp(complex(0, 1)*r.Eigenvalues[i]*complex(distance, 0))
	}
	return out
}

// ColocateInLayer evaluates both amplitudes of a layer at depth z inside
// it. The forward amplitude is referenced at the layer start and the
// backward amplitude at its end, a distance thickness-z away.
func ColocateInLayer(fwd, bwd []complex128, r *layer.SolveResult, thickness, z float64) (fwdAt, bwdAt []complex128) {
	return Propagate(fwd, r, z), Propagate(bwd, r, thickness-z)
}

// AmplitudePoyntingFlux resolves the time-average z-directed Poynting flux
// order by order for a colocated amplitude pair: one value per expansion
// order, split into forward and backward parts. Interference between the
// two directions is attributed by the direction of the conjugated
// magnetic field, so the two parts always sum to the total flux. Backward
// parts are negative for power flowing toward the stack start.
func AmplitudePoyntingFlux(fwd, bwd []complex128, r *layer.SolveResult) (sFwd, sBwd []float64, err error) {
	if err := checkAmplitudes(fwd, bwd, r); err != nil {
		return nil, nil, err
	}
	n := r.NumModes() / 2

	hF := r.Eigenvectors.MulVec(fwd)
	hB := r.Eigenvectors.MulVec(bwd)
	f := modeEField(r)
	eF := f.MulVec(fwd)
	eB := negate(f.MulVec(bwd))

	sFwd = make([]float64, n)
	sBwd = make([]float64, n)
	for i := 0; i < n; i++ {
		exTot := eF[i] + eB[i]
		eyTot := eF[n+i] + eB[n+i]
		// h is arranged as (hy, -hx).
		sFwd[i] = 0.5 * real(exTot*cmplx.Conj(hF[i])+eyTot*cmplx.Conj(hF[n+i]))
		sBwd[i] = 0.5 * real(exTot*cmplx.Conj(hB[i])+eyTot*cmplx.Conj(hB[n+i]))
	}
	return sFwd, sBwd, nil
}

// TotalFlux sums a per-order flux vector.
func TotalFlux(s []float64) float64 {
	return floats.Sum(s)
}

// TimeAverageZPoyntingFlux computes the per-order z Poynting flux of a
// full field, 0.5 Re(ex conj(hy) - ey conj(hx)).
func TimeAverageZPoyntingFlux(f *Fields) []float64 {
	out := make([]float64, len(f.Ex))
	for i := range out {
		out[i] = 0.5 * real(f.Ex[i]*cmplx.Conj(f.Hy[i])-f.Ey[i]*cmplx.Conj(f.Hx[i]))
	}
	return out
}

func checkAmplitudes(fwd, bwd []complex128, r *layer.SolveResult) error {
	if len(fwd) != r.NumModes() || len(bwd) != r.NumModes() {
		return fmt.Errorf("%w: got %d and %d for %d modes", ErrShapeMismatch, len(fwd), len(bwd), r.NumModes())
	}
	return nil
}

// modeEField returns OmegaScriptK phi / (omega q), the map from amplitude
// differences to transverse electric fields.
func modeEField(r *layer.SolveResult) *cmat.Matrix {
	invQ := make([]complex128, len(r.Eigenvalues))
	for i, q := range r.Eigenvalues {
		invQ[i] = 1 / q
	}
	f := cmat.ScaleCols(cmat.Mul(r.OmegaScriptK, r.Eigenvectors), invQ)
	return f.Scale(complex(1/r.Omega(), 0))
}

func negate(v []complex128) []complex128 {
	out := make([]complex128, len(v))
	for i, x := range v {
		out[i] = -x
	}
	return out
}

func scaleVec(v []complex128, s complex128) []complex128 {
	out := make([]complex128, len(v))
	for i, x := range v {
		out[i] = s * x
	}
	return out
}
