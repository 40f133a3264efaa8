package heap

// Ref is a stable index into the arena: a byte offset from the arena base.
type Ref = uint32

// NilRef is the null reference. The arena reserves the low offsets so no
// allocation ever sits at 0.
const NilRef Ref = 0

// RefSize is the encoded size of a Ref inside object payloads.
const RefSize = 4

// alignment is the minimum alignment of every arena region.
const alignment = 8

// AlignUp rounds n up to the arena's allocation alignment.
func AlignUp(n uint32) uint32 {
	return (n + alignment - 1) &^ (alignment - 1)
}
