// Package basis defines the geometric foundation of the Fourier modal
// method: real-space lattice vectors, their reciprocal lattice, and the
// truncated Fourier expansion over which fields and materials are
// represented.
//
// What lives here:
//   - LatticeVectors: a pair of 2D primitive vectors spanning the unit
//     cell, with Reciprocal() for the dual lattice.
//   - Expansion: the ordered, symmetric set of integer reciprocal-lattice
//     indices produced by NewExpansion under circular or parallelogramic
//     truncation. Index (0, 0) is always first, ordering is by ascending
//     reciprocal magnitude with lexicographic tie-breaks, and the set is
//     closed under negation, so generation is fully deterministic.
//   - Transverse wavevectors kx, ky per expansion order for a given
//     in-plane excitation wavevector.
//   - Brillouin-zone wavevector grids for aperiodic-source emulation, and
//     unit-cell coordinate grids for real-space reconstruction.
//
// An Expansion is built once per (lattice, term count, truncation) triple
// and shared read-only by every later stage; nothing in this package
// mutates state after construction.
//
// Errors are configuration errors only (degenerate lattice, non-positive
// term count) and use the package sentinels in errors.go.
package basis
