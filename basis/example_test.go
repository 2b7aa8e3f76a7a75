// Package basis_test provides examples demonstrating how to build Fourier
// expansions and wavevector grids. Each example is runnable via
// "go test -run Example", showing both code and expected output.
package basis_test

import (
	"fmt" // fmt is used to print results in examples
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/photonlattice/fmm/basis"
)

// ExampleNewExpansion demonstrates generating a circularly truncated
// Fourier basis on a square lattice. The zero order always comes first
// and the set is closed under negation.
// Complexity: O(T^2 log T) for T requested terms (candidate sort).
func ExampleNewExpansion() {
	// 1) Build a square lattice with pitch 1.
	lattice, err := basis.NewLatticeVectors(r2.Vec{X: 1}, r2.Vec{Y: 1})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 2) Request roughly nine Fourier orders with circular truncation.
	//    On a square lattice the circle of area 9 holds exactly the zero
	//    order, the four unit orders and the four diagonal orders.
	e, err := basis.NewExpansion(lattice, 9, basis.Circular)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 3) Print the term count and the first five coefficient pairs.
	//    Ties in magnitude break lexicographically, so the order is stable.
	fmt.Println("terms:", e.NumTerms())
	for i := 0; i < 5; i++ {
		fmt.Print(e.Coefficient(i), " ")
	}
	fmt.Println()
	// Output:
	// terms: 9
	// [0 0] [-1 0] [0 -1] [0 1] [1 0]
}

// ExampleExpansion_MinGridShape demonstrates querying the smallest
// real-space sampling grid able to resolve an expansion. Permittivity
// grids passed to the layer eigensolvers must be at least this large.
func ExampleExpansion_MinGridShape() {
	// 1) Nine circular terms on a square lattice reach index 1 on each axis.
	lattice, _ := basis.NewLatticeVectors(r2.Vec{X: 1}, r2.Vec{Y: 1})
	e, _ := basis.NewExpansion(lattice, 9, basis.Circular)

	// 2) The minimum shape is 2*max|index| + 1 along each axis.
	nx, ny := e.MinGridShape()
	fmt.Printf("min grid: %d x %d\n", nx, ny)
	// Output: min grid: 3 x 3
}

// ExamplePlaneWaveWavevector demonstrates converting an incidence angle
// into the fundamental in-plane wavevector used by the eigensolvers.
func ExamplePlaneWaveWavevector() {
	// 1) A wave of wavelength 1 arrives from vacuum at 30 degrees polar
	//    angle in the x-z plane. The in-plane magnitude is omega*sin(30°).
	k := basis.PlaneWaveWavevector(1.0, math.Pi/6, 0, 1.0)

	// 2) omega = 2*pi, so kx = pi and ky = 0.
	fmt.Printf("kx=%.4f ky=%.4f\n", k.X, k.Y)
	// Output: kx=3.1416 ky=0.0000
}

// ExampleNewBrillouinGrid demonstrates sampling the first Brillouin zone
// for an integration sweep. Odd grid sizes always contain the zone
// center, so the normal-incidence solution is one of the samples.
func ExampleNewBrillouinGrid() {
	// 1) Build a 3x3 grid over the zone of a unit square lattice.
	lattice, _ := basis.NewLatticeVectors(r2.Vec{X: 1}, r2.Vec{Y: 1})
	grid, err := basis.NewBrillouinGrid(3, 3, lattice)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 2) The middle sample is the zone center.
	center := grid.At(1, 1)
	fmt.Printf("center: (%.1f, %.1f)\n", center.X, center.Y)

	// 3) Each cell carries a ninth of the (2*pi)^2 zone area, used as the
	//    quadrature weight when integrating flux over the zone.
	fmt.Printf("cell area: %.4f\n", grid.CellArea(lattice))
	// Output:
	// center: (0.0, 0.0)
	// cell area: 4.3865
}
