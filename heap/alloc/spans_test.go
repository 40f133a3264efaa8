package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
)

func TestSpansExactReuse(t *testing.T) {
	a := heap.NewArena(0)
	defer a.Close()
	s := NewSpans(a)

	r1, err := s.Alloc(500)
	require.NoError(t, err)
	require.NoError(t, s.Free(r1, 500))

	r2, err := s.Alloc(500)
	require.NoError(t, err)
	require.Equal(t, r1, r2, "exact-size span comes back")
}

func TestSpansSplit(t *testing.T) {
	a := heap.NewArena(0)
	defer a.Close()
	s := NewSpans(a)

	big, err := s.Alloc(64)
	require.NoError(t, err)
	require.NoError(t, s.Free(big, 64))

	// 24 fits at the front of the 64-byte span; the 40-byte remainder
	// goes back on the list.
	small, err := s.Alloc(24)
	require.NoError(t, err)
	require.Equal(t, big, small)

	rem, err := s.Alloc(40)
	require.NoError(t, err)
	require.Equal(t, big+24, rem)
}

func TestSpansNoUndersizedRemainder(t *testing.T) {
	a := heap.NewArena(0)
	defer a.Close()
	s := NewSpans(a)

	r1, err := s.Alloc(24)
	require.NoError(t, err)
	require.NoError(t, s.Free(r1, 24))

	// A 16-byte cut would strand an 8-byte remainder, below the span
	// minimum; fresh memory is used instead.
	r2, err := s.Alloc(16)
	require.NoError(t, err)
	require.NotEqual(t, r1, r2)

	// The 24-byte span is still intact on the list.
	r3, err := s.Alloc(24)
	require.NoError(t, err)
	require.Equal(t, r1, r3)
}

func TestSpansMinimumSize(t *testing.T) {
	a := heap.NewArena(0)
	defer a.Close()
	s := NewSpans(a)

	r1, err := s.Alloc(1)
	require.NoError(t, err)
	r2, err := s.Alloc(1)
	require.NoError(t, err)

	// Tiny requests are padded to the span minimum so the region can
	// hold its own free-list bookkeeping later.
	require.GreaterOrEqual(t, uint32(r2-r1), uint32(minSpan))

	require.NoError(t, s.Free(r1, 1))
	r3, err := s.Alloc(1)
	require.NoError(t, err)
	require.Equal(t, r1, r3)
}

func TestSpansFirstFitOrder(t *testing.T) {
	a := heap.NewArena(0)
	defer a.Close()
	s := NewSpans(a)

	r1, err := s.Alloc(32)
	require.NoError(t, err)
	r2, err := s.Alloc(32)
	require.NoError(t, err)

	require.NoError(t, s.Free(r1, 32))
	require.NoError(t, s.Free(r2, 32))

	// Frees push onto the head, so the most recently freed span is
	// found first.
	got, err := s.Alloc(32)
	require.NoError(t, err)
	require.Equal(t, r2, got)
}

func TestSpansFreeBadRef(t *testing.T) {
	a := heap.NewArena(0)
	defer a.Close()
	s := NewSpans(a)

	require.ErrorIs(t, s.Free(0xFFFF0000, 32), ErrBadFree)
}
