package vrpsolver

import "errors"

// ErrEmptyView indicates a View with no order nodes was handed to the
// Model Builder; there is nothing to route.
var ErrEmptyView = errors.New("vrpsolver: view has no order nodes")
