package basis

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// degenerateTolerance is the |u x v| threshold below which a unit cell is
// treated as spanning no area.
const degenerateTolerance = 1e-300

// Conventional axis-aligned primitive vectors for square lattices.
var (
	// X is the unit vector along the first array axis.
	X = r2.Vec{X: 1, Y: 0}
	// Y is the unit vector along the second array axis.
	Y = r2.Vec{X: 0, Y: 1}
)

// LatticeVectors stores a pair of 2D lattice vectors. The pair may describe
// either the real-space or the reciprocal-space lattice depending on usage.
// Immutable once constructed; callers own it for the simulation lifetime.
type LatticeVectors struct {
	// U is the first primitive lattice vector.
	U r2.Vec
	// V is the second primitive lattice vector.
	V r2.Vec
}

// NewLatticeVectors validates and returns the lattice spanned by u and v.
// Returns ErrDegenerateLattice when the cell area vanishes.
func NewLatticeVectors(u, v r2.Vec) (LatticeVectors, error) {
	lv := LatticeVectors{U: u, V: v}
	if math.Abs(lv.Cross()) < degenerateTolerance {
		return LatticeVectors{}, ErrDegenerateLattice
	}
	return lv, nil
}

// Cross returns the scalar cross product U x V, i.e. the signed unit-cell
// area.
func (l LatticeVectors) Cross() float64 {
	return l.U.X*l.V.Y - l.U.Y*l.V.X
}

// Reciprocal returns the dual lattice with U'.U = 1, U'.V = 0 and
// symmetrically for V'. Note the conventional factor 2*pi is NOT folded in
// here; wavevector computations apply it explicitly.
func (l LatticeVectors) Reciprocal() LatticeVectors {
	cross := l.Cross()
	return LatticeVectors{
		U: r2.Vec{X: l.V.Y / cross, Y: -l.V.X / cross},
		V: r2.Vec{X: -l.U.Y / cross, Y: l.U.X / cross},
	}
}

// UnitCellCoordinates returns the x and y coordinates of an nx-by-ny
// sampling grid covering cellsU-by-cellsV unit cells, row-major with the
// x index varying slowest. Sample points sit at element centers, matching
// the Fourier-transform convention used by the field reconstruction.
func UnitCellCoordinates(l LatticeVectors, nx, ny, cellsU, cellsV int) (x, y []float64, err error) {
	if nx <= 0 || ny <= 0 || cellsU <= 0 || cellsV <= 0 {
		return nil, nil, ErrBadGridShape
	}
	rows := nx * cellsU
	cols := ny * cellsV
	x = make([]float64, rows*cols)
	y = make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		fu := (float64(i) + 0.5) / float64(nx)
		for j := 0; j < cols; j++ {
			fv := (float64(j) + 0.5) / float64(ny)
			x[i*cols+j] = fu*l.U.X + fv*l.V.X
			y[i*cols+j] = fu*l.U.Y + fv*l.V.Y
		}
	}
	return x, y, nil
}
