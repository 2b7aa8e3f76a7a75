// Package fourier moves quantities between the real-space unit-cell grid
// and the truncated Fourier basis defined by a basis.Expansion.
//
// Three operations are provided:
//
//   - ConvolutionMatrix builds the Toeplitz matrix whose (i, j) entry is the
//     Fourier coefficient at the difference of the ith and jth reciprocal
//     lattice vectors. Products of this matrix with a coefficient vector
//     realize real-space multiplication in the Fourier basis.
//   - Transform projects a gridded quantity onto the expansion orders.
//   - InverseTransform reconstructs a grid from expansion coefficients.
//
// Grids are flat row-major slices with shape (nx, ny), sampled at element
// centers in the manner of basis.UnitCellCoordinates. The half-element
// offset between element centers and element corners is compensated by a
// per-frequency phase so that coefficients refer to the corner-anchored
// unit cell.
//
// Transforms are computed with gonum's dsp/fourier package, applied along
// rows and then columns. Forward transforms carry the 1/(nx*ny)
// normalization so that the zero-order coefficient of a constant grid is
// the constant itself.
//
// Shape mismatches between a grid slice and its stated dimensions are
// programmer errors and panic. A grid too coarse to resolve the expansion
// is a configuration error and returns ErrGridTooSmall.
package fourier
