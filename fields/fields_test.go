package fields_test

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/photonlattice/fmm/basis"
	"github.com/photonlattice/fmm/fields"
	"github.com/photonlattice/fmm/layer"
	"github.com/photonlattice/fmm/scattering"
	"github.com/photonlattice/fmm/sources"
)

const wavelength = 0.9

func testBasis(t *testing.T, terms int) (basis.LatticeVectors, *basis.Expansion) {
	t.Helper()
	lv, err := basis.NewLatticeVectors(r2.Vec{X: 1.0}, r2.Vec{Y: 1.0})
	require.NoError(t, err)
	e, err := basis.NewExpansion(lv, terms, basis.Circular)
	require.NoError(t, err)
	return lv, e
}

// TestFromAmplitudes_NormalPlaneWave excites the zero-order forward mode
// of vacuum at normal incidence: ex and hy are unity in order zero and the
// longitudinal components vanish.
func TestFromAmplitudes_NormalPlaneWave(t *testing.T) {
	lv, e := testBasis(t, 7)
	vacuum, err := layer.SolveIsotropic(wavelength, r2.Vec{}, lv, e, layer.Uniform(1.0))
	require.NoError(t, err)

	fwd := make([]complex128, vacuum.NumModes())
	bwd := make([]complex128, vacuum.NumModes())
	fwd[0] = 1

	f, err := fields.FromAmplitudes(fwd, bwd, vacuum)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, real(f.Hy[0]), 1e-12)
	assert.InDelta(t, 1.0, real(f.Ex[0]), 1e-12)
	assert.InDelta(t, 0.0, cmplx.Abs(f.Ey[0]), 1e-12)
	assert.InDelta(t, 0.0, cmplx.Abs(f.Ez[0]), 1e-12)
	assert.InDelta(t, 0.0, cmplx.Abs(f.Hz[0]), 1e-12)

	sFwd, sBwd, err := fields.AmplitudePoyntingFlux(fwd, bwd, vacuum)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, sFwd[0], 1e-12)
	assert.InDelta(t, 0.5, fields.TotalFlux(sFwd), 1e-12)
	assert.InDelta(t, 0.0, fields.TotalFlux(sBwd), 1e-12)
}

// TestAmplitudePoyntingFlux_SplitsTotal checks that the forward and
// backward parts always sum to the flux of the total field.
func TestAmplitudePoyntingFlux_SplitsTotal(t *testing.T) {
	lv, e := testBasis(t, 9)
	glass, err := layer.SolveIsotropic(wavelength, r2.Vec{X: 0.2}, lv, e, layer.Uniform(2.25))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	fwd := make([]complex128, glass.NumModes())
	bwd := make([]complex128, glass.NumModes())
	for i := range fwd {
		fwd[i] = complex(rng.NormFloat64(), rng.NormFloat64())
		bwd[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}

	sFwd, sBwd, err := fields.AmplitudePoyntingFlux(fwd, bwd, glass)
	require.NoError(t, err)
	f, err := fields.FromAmplitudes(fwd, bwd, glass)
	require.NoError(t, err)
	total := fields.TimeAverageZPoyntingFlux(f)

	for i := range total {
		assert.InDelta(t, total[i], sFwd[i]+sBwd[i], 1e-10)
	}
}

// TestStackAmplitudesInterior_EnergyConservation sends a plane wave
// through a lossless patterned slab and compares the net flux entering
// the stack with the net flux leaving it.
func TestStackAmplitudesInterior_EnergyConservation(t *testing.T) {
	lv, e := testBasis(t, 9)
	inPlane := r2.Vec{}

	vacuum, err := layer.SolveIsotropic(wavelength, inPlane, lv, e, layer.Uniform(1.0))
	require.NoError(t, err)

	nx, ny := e.MinGridShape()
	grid := make([]complex128, nx*ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			grid[i*ny+j] = 1
			if (i-nx/2)*(i-nx/2)+(j-ny/2)*(j-ny/2) < nx*ny/9 {
				grid[i*ny+j] = 6.25
			}
		}
	}
	patterned, err := layer.SolveIsotropic(wavelength, inPlane, lv, e, layer.Medium{Grid: grid, NX: nx, NY: ny})
	require.NoError(t, err)

	layers := []*layer.SolveResult{vacuum, patterned, vacuum}
	thicknesses := []float64{0.2, 0.4, 0.3}
	interior, err := scattering.StackMatricesInterior(layers, thicknesses)
	require.NoError(t, err)

	incident := make([]complex128, vacuum.NumModes())
	incident[0] = 1
	none := make([]complex128, vacuum.NumModes())

	amps, err := fields.StackAmplitudesInterior(interior, incident, none)
	require.NoError(t, err)
	require.Len(t, amps, 3)

	// The first layer holds the incident wave unchanged.
	for i := range incident {
		assert.InDelta(t, real(incident[i]), real(amps[0].Forward[i]), 1e-10)
		assert.InDelta(t, imag(incident[i]), imag(amps[0].Forward[i]), 1e-10)
	}

	netFlux := func(a fields.Amplitudes, r *layer.SolveResult, thickness float64) float64 {
		fwdAt, bwdAt := fields.ColocateInLayer(a.Forward, a.Backward, r, thickness, 0)
		sFwd, sBwd, err := fields.AmplitudePoyntingFlux(fwdAt, bwdAt, r)
		require.NoError(t, err)
		return fields.TotalFlux(sFwd) + fields.TotalFlux(sBwd)
	}

	in := netFlux(amps[0], vacuum, thicknesses[0])
	out := netFlux(amps[2], vacuum, thicknesses[2])
	assert.Greater(t, in, 0.0)
	assert.InDelta(t, in, out, 1e-6*math.Abs(in))
}

// TestStackAmplitudesInteriorWithSource_Consistency cross-checks the
// interior amplitudes of the source layer against the amplitudes solved
// at the source plane.
func TestStackAmplitudesInteriorWithSource_Consistency(t *testing.T) {
	lv, e := testBasis(t, 7)
	inPlane := r2.Vec{}

	glass, err := layer.SolveIsotropic(wavelength, inPlane, lv, e, layer.Uniform(2.25))
	require.NoError(t, err)
	vacuum, err := layer.SolveIsotropic(wavelength, inPlane, lv, e, layer.Uniform(1.0))
	require.NoError(t, err)

	beforeLayers := []*layer.SolveResult{glass, vacuum}
	beforeThicknesses := []float64{0.3, 0.2}
	afterLayers := []*layer.SolveResult{vacuum, glass}
	afterThicknesses := []float64{0.25, 0.3}

	before, err := scattering.StackMatrix(beforeLayers, beforeThicknesses)
	require.NoError(t, err)
	after, err := scattering.StackMatrix(afterLayers, afterThicknesses)
	require.NoError(t, err)

	current := sources.DipoleSource(sources.Polarization{X: 1, Z: 0.4}, r2.Vec{X: 0.5, Y: 0.5}, inPlane, lv, e)
	amps, err := sources.AmplitudesForSource(current, before, after)
	require.NoError(t, err)

	beforeInterior, err := scattering.StackMatricesInterior(beforeLayers, beforeThicknesses)
	require.NoError(t, err)
	afterInterior, err := scattering.StackMatricesInterior(afterLayers, afterThicknesses)
	require.NoError(t, err)

	interior, err := fields.StackAmplitudesInteriorWithSource(beforeInterior, afterInterior, amps)
	require.NoError(t, err)
	require.Len(t, interior, 4)

	closeTo := func(want, got []complex128, tol float64) {
		t.Helper()
		require.Equal(t, len(want), len(got))
		for i := range want {
			assert.InDelta(t, real(want[i]), real(got[i]), tol)
			assert.InDelta(t, imag(want[i]), imag(got[i]), tol)
		}
	}

	// Source layer, before side: the backward wave leaving the source.
	closeTo(amps.ForwardBeforeStart, interior[1].Forward, 1e-9)
	closeTo(amps.BackwardBeforeEnd, interior[1].Backward, 1e-9)
	// Source layer, after side: the forward wave leaving the source.
	closeTo(amps.ForwardAfterStart, interior[2].Forward, 1e-9)
	closeTo(amps.BackwardAfterEnd, interior[2].Backward, 1e-9)
	// Stack terminals.
	closeTo(amps.BackwardStackStart, interior[0].Backward, 1e-9)
	closeTo(amps.ForwardStackEnd, interior[3].Forward, 1e-9)
}

// TestOnGrid_BlochPhase samples a pure zero-order wave at oblique
// incidence: the real-space field is the order-zero coefficient times the
// Bloch phase. Unit amplitude normalizes hy, not ex, so the coefficient
// carries the mode's transverse-E factor.
func TestOnGrid_BlochPhase(t *testing.T) {
	lv, e := testBasis(t, 7)
	inPlane := r2.Vec{X: 0.4, Y: -0.2}
	vacuum, err := layer.SolveIsotropic(wavelength, inPlane, lv, e, layer.Uniform(1.0))
	require.NoError(t, err)

	fwd := make([]complex128, vacuum.NumModes())
	bwd := make([]complex128, vacuum.NumModes())
	fwd[0] = 1
	f, err := fields.FromAmplitudes(fwd, bwd, vacuum)
	require.NoError(t, err)

	nx, ny := e.MinGridShape()
	grid, err := fields.OnGrid(f, vacuum, nx, ny, 2, 1)
	require.NoError(t, err)
	require.Equal(t, 2*nx, grid.NX)
	require.Equal(t, ny, grid.NY)

	for idx := range grid.Ex {
		want := f.Ex[0] * cmplx.Exp(complex(0, inPlane.X*grid.X[idx]+inPlane.Y*grid.Y[idx]))
		assert.InDelta(t, real(want), real(grid.Ex[idx]), 1e-10)
		assert.InDelta(t, imag(want), imag(grid.Ex[idx]), 1e-10)
	}

	// The order-zero coefficient itself is (omega^2 - kx^2) / (omega q).
	omega := 2 * math.Pi / wavelength
	q := math.Sqrt(omega*omega - inPlane.X*inPlane.X - inPlane.Y*inPlane.Y)
	assert.InDelta(t, (omega*omega-inPlane.X*inPlane.X)/(omega*q), real(f.Ex[0]), 1e-10)
	assert.InDelta(t, 0, imag(f.Ex[0]), 1e-10)

	// Direct evaluation at the same points agrees with the grid transform.
	direct, err := fields.OnCoordinates(f, vacuum, grid.X[:5], grid.Y[:5])
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		assert.InDelta(t, real(grid.Ex[i]), real(direct.Ex[i]), 1e-10)
		assert.InDelta(t, imag(grid.Ex[i]), imag(direct.Ex[i]), 1e-10)
	}
}

// TestStackGridFields_PlaneWavePhase samples a forward vacuum plane wave
// through a two-layer stack: every plane carries the phase exp(i omega z).
func TestStackGridFields_PlaneWavePhase(t *testing.T) {
	lv, e := testBasis(t, 7)
	vacuum, err := layer.SolveIsotropic(wavelength, r2.Vec{}, lv, e, layer.Uniform(1.0))
	require.NoError(t, err)

	fwd := make([]complex128, vacuum.NumModes())
	bwd := make([]complex128, vacuum.NumModes())
	fwd[0] = 1
	amps := []fields.Amplitudes{
		{Forward: fwd, Backward: bwd},
		{Forward: fields.Propagate(fwd, vacuum, 0.3), Backward: bwd},
	}

	nx, ny := e.MinGridShape()
	grids, zs, err := fields.StackGridFields(
		amps,
		[]*layer.SolveResult{vacuum, vacuum},
		[]float64{0.3, 0.5},
		2, nx, ny, 1, 1,
	)
	require.NoError(t, err)
	require.Len(t, grids, 4)
	require.Len(t, zs, 4)
	assert.InDelta(t, 0.075, zs[0], 1e-12)
	assert.InDelta(t, 0.3+0.375, zs[3], 1e-12)

	omega := 2 * math.Pi / wavelength
	for s, g := range grids {
		want := cmplx.Exp(complex(0, omega*zs[s]))
		assert.InDelta(t, real(want), real(g.Ex[0]), 1e-10)
		assert.InDelta(t, imag(want), imag(g.Ex[0]), 1e-10)
	}

	_, _, err = fields.StackGridFields(amps, []*layer.SolveResult{vacuum}, []float64{0.3}, 2, nx, ny, 1, 1)
	assert.ErrorIs(t, err, fields.ErrShapeMismatch)
}

func TestAverageGridFields(t *testing.T) {
	mk := func(v complex128) *fields.GridFields {
		return &fields.GridFields{
			NX: 1, NY: 2,
			X:  []float64{0, 0},
			Y:  []float64{0, 1},
			Ex: []complex128{v, v}, Ey: []complex128{v, v}, Ez: []complex128{v, v},
			Hx: []complex128{v, v}, Hy: []complex128{v, v}, Hz: []complex128{v, v},
		}
	}

	avg, err := fields.AverageGridFields([]*fields.GridFields{mk(1), mk(3)})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, real(avg.Ex[0]), 1e-14)
	assert.InDelta(t, 2.0, real(avg.Hz[1]), 1e-14)

	_, err = fields.AverageGridFields(nil)
	assert.ErrorIs(t, err, fields.ErrShapeMismatch)

	other := mk(1)
	other.NX, other.NY = 2, 1
	_, err = fields.AverageGridFields([]*fields.GridFields{mk(1), other})
	assert.ErrorIs(t, err, fields.ErrShapeMismatch)
}
