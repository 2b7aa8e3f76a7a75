package cmat

import "errors"

// Sentinel errors for numerical failures. Shape violations panic instead;
// see the package documentation for the rationale.
var (
	// ErrSingular indicates that LU factorization hit a zero (or numerically
	// vanishing) pivot, so solves and inverses are not available.
	ErrSingular = errors.New("cmat: matrix is singular")

	// ErrEigenFailed indicates that the eigendecomposition did not converge
	// or that a full set of independent eigenvectors could not be recovered.
	ErrEigenFailed = errors.New("cmat: eigendecomposition failed")
)
