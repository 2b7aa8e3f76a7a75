package basis

import "errors"

// Sentinel errors for basis construction. All are configuration errors:
// surfaced immediately, never retried.
var (
	// ErrDegenerateLattice indicates lattice vectors with a vanishing cross
	// product, which span no area and admit no reciprocal lattice.
	ErrDegenerateLattice = errors.New("basis: degenerate lattice vectors")

	// ErrBadTermCount indicates a requested expansion size below one.
	ErrBadTermCount = errors.New("basis: approximate term count must be at least 1")

	// ErrBadTruncation indicates an unknown truncation policy value.
	ErrBadTruncation = errors.New("basis: unknown truncation policy")

	// ErrBadGridShape indicates a Brillouin-zone or coordinate grid with a
	// non-positive dimension.
	ErrBadGridShape = errors.New("basis: grid dimensions must be positive")
)
