package sources

import "errors"

// ErrStackMismatch reports scattering matrices whose terminal layers are
// incompatible with each other or with the source coefficients.
var ErrStackMismatch = errors.New("sources: incompatible scattering matrices at the source plane")
