package gc

import "errors"

// ErrNotTracked indicates a Free or Realloc of a ref that is not on the
// collector's object list.
var ErrNotTracked = errors.New("gc: ref is not a tracked object")
