package fields

import "errors"

// ErrShapeMismatch reports amplitude or field slices whose lengths do not
// match the mode structure of the layer they are paired with.
var ErrShapeMismatch = errors.New("fields: amplitude shape does not match layer modes")
