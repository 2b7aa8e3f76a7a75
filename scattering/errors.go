package scattering

import "errors"

var (
	// ErrEmptyStack reports a stack with no layers.
	ErrEmptyStack = errors.New("scattering: stack has no layers")

	// ErrLayerMismatch reports layers that cannot be combined: differing
	// mode counts, or thickness and solve-result slices of unequal length.
	ErrLayerMismatch = errors.New("scattering: incompatible layers")
)
