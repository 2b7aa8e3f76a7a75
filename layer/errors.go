package layer

import "errors"

var (
	// ErrBadWavelength reports a non-positive wavelength.
	ErrBadWavelength = errors.New("layer: wavelength must be positive")

	// ErrShapeMismatch reports tensor components sampled on differing grids.
	ErrShapeMismatch = errors.New("layer: tensor components have mismatched grid shapes")
)
