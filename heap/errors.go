package heap

import "errors"

var (
	// ErrBadSize indicates a zero-byte or otherwise unallocatable request.
	ErrBadSize = errors.New("heap: bad allocation size")

	// ErrArenaFull indicates the 32-bit ref space is exhausted.
	ErrArenaFull = errors.New("heap: arena ref space exhausted")
)
