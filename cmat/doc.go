// Package cmat provides the dense complex-matrix kernel used by the
// electromagnetic solver packages: storage, products, LU-based solves and
// inverses, and eigendecomposition of general complex matrices.
//
// What lives here:
//   - Matrix: a row-major complex128 dense matrix with O(1) accessors.
//   - Products and elementwise combinations (Mul, Add, Sub, Scale,
//     ScaleRows, ScaleCols) returning fresh matrices.
//   - LU: partial-pivot factorization with Solve and Inverse.
//   - Eigen: eigenvalues and right eigenvectors of a general complex
//     matrix, computed through the real embedding [[X, -Y], [Y, X]] of
//     X + iY and gonum's real nonsymmetric eigensolver.
//
// Error contract:
//   - Shape mismatches between operands are programmer errors and panic,
//     matching gonum/mat semantics; all matrices here are built by solver
//     code, not end users.
//   - Numerical failures (singular pivot, non-converged eigensolve) are
//     reported through the package sentinels ErrSingular and
//     ErrEigenFailed, wrapped with call-site context.
//
// Derivatives: eigendecomposition is the one step of the solver pipeline
// without a well-conditioned naive derivative. Adjoint implementations
// built on top of this package should use the standard perturbation
// formula for eigenvector gradients with Lorentzian broadening of the
// inverse eigenvalue gaps, 1/(qi - qj) -> conj(qi - qj)/(|qi - qj|^2 + eps),
// with eps scaled relative to the squared spectral range. This keeps the
// rule stable at near-degeneracies, where the unregularized formula blows
// up.
//
// All functions are deterministic and side-effect-free; matrices are safe
// to share between goroutines once constructed, provided no caller writes
// to them.
package cmat
