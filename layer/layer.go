package layer

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/photonlattice/fmm/basis"
	"github.com/photonlattice/fmm/cmat"
	"github.com/photonlattice/fmm/fourier"
)

// SolveResult carries the eigenmodes of one layer together with the
// operator blocks consumed by scattering-matrix assembly and field
// reconstruction. With N expansion orders there are 2N modes.
//
// Eigenvectors stores the transverse magnetic field profile of mode m in
// column m, arranged as (hy, -hx). Eigenvalues holds the matching
// longitudinal wavenumbers q, branch-fixed so Im q >= 0 with ties broken
// toward Re q > 0.
type SolveResult struct {
	Wavelength        float64
	InPlaneWavevector r2.Vec
	Lattice           basis.LatticeVectors
	Expansion         *basis.Expansion

	// Transverse wavevectors per order, including the Bloch offset.
	Kx, Ky []float64

	Eigenvalues  []complex128
	Eigenvectors *cmat.Matrix

	// OmegaScriptK maps the magnetic eigenvector profile to the transverse
	// electric field, up to factors of omega and q.
	OmegaScriptK *cmat.Matrix

	ZPermittivity        *cmat.Matrix
	InverseZPermittivity *cmat.Matrix
	ZPermeability        *cmat.Matrix
	InverseZPermeability *cmat.Matrix
}

// NumModes returns the number of eigenmodes, twice the expansion size.
func (r *SolveResult) NumModes() int { return len(r.Eigenvalues) }

// Omega returns the angular frequency 2 pi / wavelength.
func (r *SolveResult) Omega() float64 { return 2 * math.Pi / r.Wavelength }

// SolveIsotropic computes the eigenmodes of a layer with scalar
// permittivity and unit permeability. Laterally uniform layers take a
// closed-form path: the operator is diagonal in the Fourier basis, the
// eigenvector matrix is the identity and q follows the dispersion relation
// q^2 = eps omega^2 - |k+G|^2 directly.
func SolveIsotropic(wavelength float64, inPlane r2.Vec, lattice basis.LatticeVectors, e *basis.Expansion, permittivity Medium) (*SolveResult, error) {
	if wavelength <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrBadWavelength, wavelength)
	}
	permittivity.validate()

	kx, ky := basis.TransverseWavevectors(inPlane, lattice, e)
	n := e.NumTerms()
	omega := 2 * math.Pi / wavelength
	omega2 := complex(omega*omega, 0)

	r := &SolveResult{
		Wavelength:        wavelength,
		InPlaneWavevector: inPlane,
		Lattice:           lattice,
		Expansion:         e,
		Kx:                kx,
		Ky:                ky,
		ZPermeability:     cmat.Identity(n),
	}
	r.InverseZPermeability = cmat.Identity(n)

	if permittivity.IsUniform() {
		eps := permittivity.Grid[0]
		if eps == 0 {
			return nil, fmt.Errorf("layer: uniform permittivity is zero: %w", cmat.ErrSingular)
		}
		r.ZPermittivity = cmat.Identity(n).Scale(eps)
		r.InverseZPermittivity = cmat.Identity(n).Scale(1 / eps)

		r.OmegaScriptK = cmat.Sub(scaledIdentity(2*n, omega2), quadForm(r.InverseZPermittivity, kx, ky))
		r.Eigenvectors = cmat.Identity(2 * n)
		r.Eigenvalues = make([]complex128, 2*n)
		for i := range r.Eigenvalues {
			j := i % n
			q2 := eps*omega2 - complex(kx[j]*kx[j]+ky[j]*ky[j], 0)
			r.Eigenvalues[i] = branchSqrt(q2)
		}
		return r, nil
	}

	epsConv, err := fourier.ConvolutionMatrix(permittivity.Grid, permittivity.NX, permittivity.NY, e)
	if err != nil {
		return nil, fmt.Errorf("layer: permittivity transform: %w", err)
	}
	eta, err := cmat.Inverse(epsConv)
	if err != nil {
		return nil, fmt.Errorf("layer: z permittivity not invertible: %w", err)
	}
	r.ZPermittivity = epsConv
	r.InverseZPermittivity = eta

	r.OmegaScriptK = cmat.Sub(scaledIdentity(2*n, omega2), quadForm(eta, kx, ky))

	zero := cmat.New(n, n)
	op := cmat.Sub(
		cmat.Mul(cmat.Block4(epsConv, zero, zero, epsConv), r.OmegaScriptK),
		primeForm(cmat.Identity(n), kx, ky),
	)
	if err := r.solveOperator(op); err != nil {
		return nil, err
	}
	return r, nil
}

// SolveAnisotropic computes the eigenmodes of a layer with full in-plane
// permittivity and permeability tensors, per Liu and Fan (2012). Uniform
// tensor components are promoted to scaled identities so that uniform and
// patterned anisotropic media share one operator path.
func SolveAnisotropic(wavelength float64, inPlane r2.Vec, lattice basis.LatticeVectors, e *basis.Expansion, permittivity, permeability Tensor) (*SolveResult, error) {
	if wavelength <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrBadWavelength, wavelength)
	}
	if err := permittivity.validate(); err != nil {
		return nil, fmt.Errorf("permittivity: %w", err)
	}
	if err := permeability.validate(); err != nil {
		return nil, fmt.Errorf("permeability: %w", err)
	}

	kx, ky := basis.TransverseWavevectors(inPlane, lattice, e)
	n := e.NumTerms()
	omega := 2 * math.Pi / wavelength
	omega2 := complex(omega*omega, 0)

	conv := func(m Medium, name string) (*cmat.Matrix, error) {
		c, err := convMatrix(m, e, n)
		if err != nil {
			return nil, fmt.Errorf("layer: %s transform: %w", name, err)
		}
		return c, nil
	}

	exx, err := conv(permittivity.XX, "permittivity xx")
	if err != nil {
		return nil, err
	}
	exy, err := conv(permittivity.XY, "permittivity xy")
	if err != nil {
		return nil, err
	}
	eyx, err := conv(permittivity.YX, "permittivity yx")
	if err != nil {
		return nil, err
	}
	eyy, err := conv(permittivity.YY, "permittivity yy")
	if err != nil {
		return nil, err
	}
	ezz, err := conv(permittivity.ZZ, "permittivity zz")
	if err != nil {
		return nil, err
	}
	mxx, err := conv(permeability.XX, "permeability xx")
	if err != nil {
		return nil, err
	}
	mxy, err := conv(permeability.XY, "permeability xy")
	if err != nil {
		return nil, err
	}
	myx, err := conv(permeability.YX, "permeability yx")
	if err != nil {
		return nil, err
	}
	myy, err := conv(permeability.YY, "permeability yy")
	if err != nil {
		return nil, err
	}
	mzz, err := conv(permeability.ZZ, "permeability zz")
	if err != nil {
		return nil, err
	}

	ezzInv, err := cmat.Inverse(ezz)
	if err != nil {
		return nil, fmt.Errorf("layer: z permittivity not invertible: %w", err)
	}
	mzzInv, err := cmat.Inverse(mzz)
	if err != nil {
		return nil, fmt.Errorf("layer: z permeability not invertible: %w", err)
	}

	r := &SolveResult{
		Wavelength:           wavelength,
		InPlaneWavevector:    inPlane,
		Lattice:              lattice,
		Expansion:            e,
		Kx:                   kx,
		Ky:                   ky,
		ZPermittivity:        ezz,
		InverseZPermittivity: ezzInv,
		ZPermeability:        mzz,
		InverseZPermeability: mzzInv,
	}

	// Transverse permeability enters through its rotated cofactor block.
	mt := cmat.Block4(myy, myx.Scale(-1), mxy.Scale(-1), mxx)
	r.OmegaScriptK = cmat.Sub(mt.Scale(omega2), quadForm(ezzInv, kx, ky))

	op := cmat.Sub(
		cmat.Mul(cmat.Block4(exx, exy, eyx, eyy), r.OmegaScriptK),
		cmat.Mul(primeForm(mzzInv, kx, ky), mt),
	)
	if err := r.solveOperator(op); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SolveResult) solveOperator(op *cmat.Matrix) error {
	q2, vectors, err := cmat.Eigen(op)
	if err != nil {
		return fmt.Errorf("layer: mode eigenproblem: %w", err)
	}
	r.Eigenvectors = vectors
	r.Eigenvalues = make([]complex128, len(q2))
	for i, v := range q2 {
		r.Eigenvalues[i] = branchSqrt(v)
	}
	return nil
}

// convMatrix returns the convolution matrix of a medium, promoting uniform
// media to scaled identities without touching the grid transform.
func convMatrix(m Medium, e *basis.Expansion, n int) (*cmat.Matrix, error) {
	if m.IsUniform() {
		return cmat.Identity(n).Scale(m.Grid[0]), nil
	}
	return fourier.ConvolutionMatrix(m.Grid, m.NX, m.NY, e)
}

// quadForm builds the 2N x 2N block matrix
//
//	[Kx a Kx  Kx a Ky]
//	[Ky a Kx  Ky a Ky]
//
// with Kx, Ky the diagonal transverse wavevector matrices.
func quadForm(a *cmat.Matrix, kx, ky []float64) *cmat.Matrix {
	cx, cy := cvec(kx), cvec(ky)
	return cmat.Block4(
		cmat.ScaleCols(cmat.ScaleRows(a, cx), cx),
		cmat.ScaleCols(cmat.ScaleRows(a, cx), cy),
		cmat.ScaleCols(cmat.ScaleRows(a, cy), cx),
		cmat.ScaleCols(cmat.ScaleRows(a, cy), cy),
	)
}

// primeForm builds the 2N x 2N block matrix
//
//	[ Ky a Ky  -Ky a Kx]
//	[-Kx a Ky   Kx a Kx]
func primeForm(a *cmat.Matrix, kx, ky []float64) *cmat.Matrix {
	cx, cy := cvec(kx), cvec(ky)
	return cmat.Block4(
		cmat.ScaleCols(cmat.ScaleRows(a, cy), cy),
		cmat.ScaleCols(cmat.ScaleRows(a, cy), cx).Scale(-1),
		cmat.ScaleCols(cmat.ScaleRows(a, cx), cy).Scale(-1),
		cmat.ScaleCols(cmat.ScaleRows(a, cx), cx),
	)
}

func scaledIdentity(n int, s complex128) *cmat.Matrix {
	return cmat.Identity(n).Scale(s)
}

func cvec(v []float64) []complex128 {
	out := make([]complex128, len(v))
	for i, x := range v {
		out[i] = complex(x, 0)
	}
	return out
}

// branchSqrt returns the square root of q2 on the branch with Im q >= 0,
// preferring Re q > 0 when the root is purely real.
func branchSqrt(q2 complex128) complex128 {
	q := cmplx.Sqrt(q2)
	if imag(q) < 0 || (imag(q) == 0 && real(q) < 0) {
		return -q
	}
	return q
}
