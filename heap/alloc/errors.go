package alloc

import "errors"

// ErrBadFree indicates a free of a ref that is not inside any block or span
// handed out by this allocator.
var ErrBadFree = errors.New("alloc: bad free ref")
