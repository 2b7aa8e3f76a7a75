package farfield

import (
	"errors"
	"fmt"
	"math"

	"github.com/photonlattice/fmm/basis"
)

// ErrShapeMismatch reports flux data that does not match the zone grid
// and expansion it is paired with.
var ErrShapeMismatch = errors.New("farfield: flux shape does not match zone grid and expansion")

// Sample is the far field carried by one (zone wavevector, order) pair.
// Evanescent pairs have NaN Polar, SolidAngle and FluxDensity.
type Sample struct {
	// Polar is the angle from the z axis, in [0, pi/2).
	Polar float64
	// Azimuthal is the angle of the transverse wavevector in the plane.
	Azimuthal float64
	// SolidAngle subtended by the wavevector cell around this sample.
	SolidAngle float64
	// FluxDensity is power per solid angle.
	FluxDensity float64
}

// Profile converts per-order fluxes on a Brillouin-zone grid into angular
// far-field samples in an ambient medium with the given real
// permittivity. flux[i][g] is the z-directed flux at zone wavevector i
// and expansion order g; the result is flat with the same ordering, zone
// index major.
func Profile(flux [][]float64, grid *basis.BrillouinGrid, lattice basis.LatticeVectors, e *basis.Expansion, wavelength, permittivity float64) ([]Sample, error) {
	if len(flux) != len(grid.Wavevectors) {
		return nil, fmt.Errorf("%w: %d flux rows for %d zone points", ErrShapeMismatch, len(flux), len(grid.Wavevectors))
	}

	omega := 2 * math.Pi / wavelength
	kAmbient := math.Sqrt(permittivity) * omega
	cellArea := grid.CellArea(lattice)

	n := e.NumTerms()
	out := make([]Sample, 0, len(flux)*n)
	for i, k := range grid.Wavevectors {
		if len(flux[i]) != n {
			return nil, fmt.Errorf("%w: %d flux orders for %d expansion orders", ErrShapeMismatch, len(flux[i]), n)
		}
		kx, ky := basis.TransverseWavevectors(k, lattice, e)
		for g := 0; g < n; g++ {
			kt := math.Hypot(kx[g], ky[g])
			s := Sample{Azimuthal: math.Atan2(ky[g], kx[g])}
			if kt >= kAmbient {
				s.Polar = math.NaN()
				s.SolidAngle = math.NaN()
				s.FluxDensity = math.NaN()
			} else {
				kz := math.Sqrt(kAmbient*kAmbient - kt*kt)
				s.Polar = math.Asin(kt / kAmbient)
				s.SolidAngle = cellArea / (kAmbient * kz)
				s.FluxDensity = flux[i][g] / s.SolidAngle
			}
			out = append(out, s)
		}
	}
	return out, nil
}

// IntegratedFlux sums flux density times solid angle over all propagating
// samples, recovering the total power radiated into the half space.
func IntegratedFlux(samples []Sample) float64 {
	total := 0.0
	for _, s := range samples {
		if math.IsNaN(s.FluxDensity) {
			continue
		}
		total += s.FluxDensity * s.SolidAngle
	}
	return total
}
