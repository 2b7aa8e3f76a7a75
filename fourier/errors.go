package fourier

import "errors"

// ErrGridTooSmall reports a grid whose shape cannot resolve every order of
// the expansion. The minimum acceptable shape is basis.Expansion.MinGridShape.
var ErrGridTooSmall = errors.New("fourier: grid shape too small for expansion")
