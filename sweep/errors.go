package sweep

import "errors"

// ErrMixNotNormalized is returned when a Mix's components do not sum to 1
// (within a small tolerance).
var ErrMixNotNormalized = errors.New("sweep: mix components must sum to 1")
