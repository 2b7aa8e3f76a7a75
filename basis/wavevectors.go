package basis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// TransverseWavevectors returns the per-order in-plane wavevector
// components kx and ky for the zeroth-order wavevector k: for order (m, n)
// the transverse wavevector is k + 2*pi*(m*u' + n*v').
func TransverseWavevectors(k r2.Vec, lattice LatticeVectors, expansion *Expansion) (kx, ky []float64) {
	reciprocal := lattice.Reciprocal()
	n := expansion.NumTerms()
	kx = make([]float64, n)
	ky = make([]float64, n)
	for i := 0; i < n; i++ {
		c := expansion.Coefficient(i)
		kx[i] = k.X + 2*math.Pi*(float64(c[0])*reciprocal.U.X+float64(c[1])*reciprocal.V.X)
		ky[i] = k.Y + 2*math.Pi*(float64(c[0])*reciprocal.U.Y+float64(c[1])*reciprocal.V.Y)
	}
	return kx, ky
}

// PlaneWaveWavevector returns the fundamental in-plane wavevector of a
// plane wave with the given free-space wavelength, polar and azimuthal
// angles (radians), arriving through a medium of the given real scalar
// permittivity.
func PlaneWaveWavevector(wavelength, polarAngle, azimuthalAngle, permittivity float64) r2.Vec {
	omega := 2 * math.Pi / wavelength
	kt := omega * math.Sin(polarAngle) * math.Sqrt(permittivity)
	return r2.Vec{
		X: kt * math.Cos(azimuthalAngle),
		Y: kt * math.Sin(azimuthalAngle),
	}
}

// BrillouinGrid is a rectangular sampling of the first Brillouin zone.
// Each wavevector is an independent simulation instance; the grid carries
// no coupling between cells.
type BrillouinGrid struct {
	// NU and NV are the grid dimensions along the two reciprocal axes.
	NU, NV int
	// Wavevectors holds the in-plane wavevectors, row-major with the u
	// index varying slowest.
	Wavevectors []r2.Vec
}

// At returns the wavevector of grid cell (i, j).
func (g *BrillouinGrid) At(i, j int) r2.Vec { return g.Wavevectors[i*g.NV+j] }

// CellArea returns the reciprocal-space area associated with one grid
// cell: the Brillouin-zone area divided by the cell count.
func (g *BrillouinGrid) CellArea(lattice LatticeVectors) float64 {
	reciprocal := lattice.Reciprocal()
	bzArea := (2 * math.Pi) * (2 * math.Pi) * math.Abs(reciprocal.Cross())
	return bzArea / float64(g.NU*g.NV)
}

// NewBrillouinGrid returns wavevectors evenly sampling the first Brillouin
// zone on an nu-by-nv grid. For odd dimensions the samples subdivide the
// zone symmetrically; for even dimensions they are offset so that (0, 0)
// is always included.
func NewBrillouinGrid(nu, nv int, lattice LatticeVectors) (*BrillouinGrid, error) {
	if nu <= 0 || nv <= 0 {
		return nil, fmt.Errorf("basis: NewBrillouinGrid(%d,%d): %w", nu, nv, ErrBadGridShape)
	}
	if math.Abs(lattice.Cross()) < degenerateTolerance {
		return nil, fmt.Errorf("basis: NewBrillouinGrid: %w", ErrDegenerateLattice)
	}
	reciprocal := lattice.Reciprocal()
	g := &BrillouinGrid{NU: nu, NV: nv, Wavevectors: make([]r2.Vec, nu*nv)}
	for i := 0; i < nu; i++ {
		fu := float64(i-nu/2) / float64(nu)
		for j := 0; j < nv; j++ {
			fv := float64(j-nv/2) / float64(nv)
			g.Wavevectors[i*nv+j] = r2.Vec{
				X: 2 * math.Pi * (fu*reciprocal.U.X + fv*reciprocal.V.X),
				Y: 2 * math.Pi * (fu*reciprocal.U.Y + fv*reciprocal.V.Y),
			}
		}
	}
	return g, nil
}
