package sources

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/photonlattice/fmm/basis"
)

// Polarization holds the complex current amplitude along each axis.
type Polarization struct {
	X, Y, Z complex128
}

// CurrentDensity holds the Fourier coefficients of a current sheet on the
// expansion orders, one slice per component.
type CurrentDensity struct {
	Jx, Jy, Jz []complex128
}

// DipoleSource returns the current density of a point dipole at the given
// in-plane location. The coefficient of order G is exp(-i (k+G) . loc) / A
// with A the unit cell area, the Fourier series of a periodically repeated
// delta function with Bloch phase.
func DipoleSource(p Polarization, location r2.Vec, inPlane r2.Vec, lattice basis.LatticeVectors, e *basis.Expansion) CurrentDensity {
	return envelopeSource(p, location, inPlane, lattice, e, func(kx, ky float64) float64 {
		return 1
	})
}

// GaussianSource returns the current density of a dipole blurred by a
// Gaussian of the given intensity full width at half maximum. Each dipole
// coefficient is weighted by the Gaussian's Fourier envelope, which tapers
// high spatial frequencies and regularizes quantities that diverge for an
// ideal point source.
func GaussianSource(p Polarization, location r2.Vec, fwhm float64, inPlane r2.Vec, lattice basis.LatticeVectors, e *basis.Expansion) CurrentDensity {
	sigma := fwhm / (2 * math.Sqrt(2*math.Ln2))
	return envelopeSource(p, location, inPlane, lattice, e, func(kx, ky float64) float64 {
		return math.Exp(-(kx*kx + ky*ky) * sigma * sigma / 2)
	})
}

func envelopeSource(p Polarization, location r2.Vec, inPlane r2.Vec, lattice basis.LatticeVectors, e *basis.Expansion, envelope func(kx, ky float64) float64) CurrentDensity {
	kx, ky := basis.TransverseWavevectors(inPlane, lattice, e)
	area := math.Abs(lattice.Cross())

	n := e.NumTerms()
	out := CurrentDensity{
		Jx: make([]complex128, n),
		Jy: make([]complex128, n),
		Jz: make([]complex128, n),
	}
	for i := 0; i < n; i++ {
		phase := kx[i]*location.X + ky[i]*location.Y
		c := cmplx.Exp(complex(0, -phase)) * complex(envelope(kx[i], ky[i])/area, 0)
		out.Jx[i] = p.X * c
		out.Jy[i] = p.Y * c
		out.Jz[i] = p.Z * c
	}
	return out
}
