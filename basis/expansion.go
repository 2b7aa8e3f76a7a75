package basis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Truncation selects how candidate Fourier orders are cut down to the
// finite expansion.
type Truncation int

const (
	// Circular keeps the orders whose reciprocal vectors lie inside the
	// circle of area approxTerms * |u' x v'|, truncating by total magnitude.
	Circular Truncation = iota
	// Parallelogramic keeps a full symmetric rectangular index range whose
	// size is close to the requested term count, truncating by the
	// components along the two reciprocal directions independently.
	Parallelogramic
)

// Expansion is the truncated Fourier basis: the ordered set of integer
// coefficient pairs (m, n) generating the reciprocal vectors
// 2*pi*(m*u' + n*v'). Invariants: (0, 0) is first; the set is closed under
// negation; ordering is ascending magnitude with deterministic tie-breaks.
// Immutable once constructed.
type Expansion struct {
	coeffs [][2]int
}

// NewExpansion generates the expansion for the given real-space lattice.
// approxTerms is the approximate number of terms; the actual count may
// differ to preserve the symmetry invariants and is reported by NumTerms,
// never silently reduced.
func NewExpansion(lattice LatticeVectors, approxTerms int, truncation Truncation) (*Expansion, error) {
	if approxTerms < 1 {
		return nil, fmt.Errorf("basis: NewExpansion: got %d terms: %w", approxTerms, ErrBadTermCount)
	}
	if math.Abs(lattice.Cross()) < degenerateTolerance {
		return nil, fmt.Errorf("basis: NewExpansion: %w", ErrDegenerateLattice)
	}
	reciprocal := lattice.Reciprocal()
	var coeffs [][2]int
	switch truncation {
	case Circular:
		coeffs = circularCoefficients(reciprocal, approxTerms)
	case Parallelogramic:
		coeffs = parallelogramicCoefficients(reciprocal, approxTerms)
	default:
		return nil, fmt.Errorf("basis: NewExpansion: truncation %d: %w", truncation, ErrBadTruncation)
	}
	return &Expansion{coeffs: coeffs}, nil
}

// NumTerms returns the number of Fourier orders in the expansion.
func (e *Expansion) NumTerms() int { return len(e.coeffs) }

// Coefficient returns the (m, n) index pair of order i.
func (e *Expansion) Coefficient(i int) [2]int { return e.coeffs[i] }

// Coefficients returns a copy of all index pairs in expansion order.
func (e *Expansion) Coefficients() [][2]int {
	out := make([][2]int, len(e.coeffs))
	copy(out, e.coeffs)
	return out
}

// Equal reports whether two expansions contain identical orders in
// identical order.
func (e *Expansion) Equal(o *Expansion) bool {
	if e == o {
		return true
	}
	if e == nil || o == nil || len(e.coeffs) != len(o.coeffs) {
		return false
	}
	for i := range e.coeffs {
		if e.coeffs[i] != o.coeffs[i] {
			return false
		}
	}
	return true
}

// MaxIndex returns the largest absolute m and n indices present, which set
// the minimum real-space sampling grid compatible with the expansion.
func (e *Expansion) MaxIndex() (m, n int) {
	for _, c := range e.coeffs {
		if a := abs(c[0]); a > m {
			m = a
		}
		if a := abs(c[1]); a > n {
			n = a
		}
	}
	return m, n
}

// MinGridShape returns the smallest real-space sampling shape (nx, ny)
// able to resolve every Fourier coefficient difference the expansion can
// request: 2*max|index| + 1 along each axis.
func (e *Expansion) MinGridShape() (nx, ny int) {
	m, n := e.MaxIndex()
	return 2*m + 1, 2*n + 1
}

type indexedOrder struct {
	coeff     [2]int
	magnitude float64
}

// sortOrders orders by ascending magnitude, breaking ties lexicographically
// on (m, n) so generation is reproducible across calls.
func sortOrders(orders []indexedOrder) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].magnitude != orders[j].magnitude {
			return orders[i].magnitude < orders[j].magnitude
		}
		if orders[i].coeff[0] != orders[j].coeff[0] {
			return orders[i].coeff[0] < orders[j].coeff[0]
		}
		return orders[i].coeff[1] < orders[j].coeff[1]
	})
}

func circularCoefficients(reciprocal LatticeVectors, approxTerms int) [][2]int {
	// Candidate superset: a square index range guaranteed to contain the
	// truncation circle for the requested count.
	half := approxTerms / 2
	maxMagnitude := math.Sqrt(float64(approxTerms) * math.Abs(reciprocal.Cross()) / math.Pi)

	var orders []indexedOrder
	for m := -half; m <= half; m++ {
		for n := -half; n <= half; n++ {
			g := r2.Add(r2.Scale(float64(m), reciprocal.U), r2.Scale(float64(n), reciprocal.V))
			magnitude := math.Hypot(g.X, g.Y)
			if magnitude < maxMagnitude {
				orders = append(orders, indexedOrder{coeff: [2]int{m, n}, magnitude: magnitude})
			}
		}
	}
	sortOrders(orders)
	out := make([][2]int, len(orders))
	for i, o := range orders {
		out[i] = o.coeff
	}
	return out
}

func parallelogramicCoefficients(reciprocal LatticeVectors, approxTerms int) [][2]int {
	ku := math.Hypot(reciprocal.U.X, reciprocal.U.Y)
	kv := math.Hypot(reciprocal.V.X, reciprocal.V.Y)

	// Solve (2*nu+1)*(2*nv+1) ~= approxTerms with nu/nv = kv/ku, so the
	// selected parallelogram has equal-length sides in reciprocal space.
	solveQuadratic := func(ratio float64) int {
		a := 4 * ratio
		b := 2 * (ratio + 1)
		c := 1 - float64(approxTerms)
		nu := (-b + math.Sqrt(b*b-4*a*c)) / (2 * a)
		return int(math.Round(nu))
	}
	nu := solveQuadratic(ku / kv)
	nv := solveQuadratic(kv / ku)

	var orders []indexedOrder
	for m := -nu; m <= nu; m++ {
		for n := -nv; n <= nv; n++ {
			g := r2.Add(r2.Scale(float64(m), reciprocal.U), r2.Scale(float64(n), reciprocal.V))
			orders = append(orders, indexedOrder{coeff: [2]int{m, n}, magnitude: math.Hypot(g.X, g.Y)})
		}
	}
	sortOrders(orders)
	out := make([][2]int, len(orders))
	for i, o := range orders {
		out[i] = o.coeff
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
