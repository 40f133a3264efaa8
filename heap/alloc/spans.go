package alloc

import (
	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/buf"
)

// Free spans store bookkeeping in their own bytes: the next-span ref in the
// first word and the span size in the second. A span must therefore be at
// least minSpan bytes, and splits never leave a smaller remainder.
const (
	spanNext = 0
	spanSize = 4
	minSpan  = 16
)

// Spans is a first-fit free list of variable-sized regions for allocations
// too large to pool.
type Spans struct {
	a    *heap.Arena
	head heap.Ref
}

// NewSpans creates an empty span list backed by a.
func NewSpans(a *heap.Arena) *Spans {
	return &Spans{a: a}
}

// Alloc returns a region of exactly heap.AlignUp(n) bytes: a free span of
// that size, the front of a larger span (remainder pushed back), or fresh
// arena memory. The region may contain stale bytes.
func (s *Spans) Alloc(n uint32) (heap.Ref, error) {
	n = heap.AlignUp(n)
	if n < minSpan {
		n = minSpan
	}

	var prev heap.Ref
	ref := s.head
	for ref != heap.NilRef {
		b, ok := s.a.Slice(ref, 8)
		if !ok {
			break // corrupt list tail; stop walking
		}
		next := buf.U32LE(b[spanNext:])
		size := buf.U32LE(b[spanSize:])

		switch {
		case size == n:
			s.unlink(prev, next)
			return ref, nil
		case size >= n+minSpan:
			// Take the front, return the remainder to the list.
			s.unlink(prev, next)
			s.Free(ref+n, size-n)
			return ref, nil
		}

		prev = ref
		ref = next
	}

	return s.a.Alloc(n)
}

// Free pushes an n-byte region onto the list. n must be the exact size the
// region was allocated with.
func (s *Spans) Free(ref heap.Ref, n uint32) error {
	n = heap.AlignUp(n)
	if n < minSpan {
		n = minSpan
	}
	b, ok := s.a.Slice(ref, 8)
	if !ok {
		return ErrBadFree
	}
	buf.PutU32LE(b[spanNext:], s.head)
	buf.PutU32LE(b[spanSize:], n)
	s.head = ref
	return nil
}

// unlink removes the span after prev (or the head when prev is nil).
func (s *Spans) unlink(prev, next heap.Ref) {
	if prev == heap.NilRef {
		s.head = next
		return
	}
	if b, ok := s.a.Slice(prev, 8); ok {
		buf.PutU32LE(b[spanNext:], next)
	}
}
