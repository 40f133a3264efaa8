package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaAllocAligned(t *testing.T) {
	a := NewArena(0)
	defer a.Close()

	r1, err := a.Alloc(10)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, r1)
	require.Zero(t, r1%alignment)

	r2, err := a.Alloc(1)
	require.NoError(t, err)
	require.Equal(t, r1+16, r2, "10 bytes rounds to 16")
}

func TestArenaZeroSize(t *testing.T) {
	a := NewArena(0)
	defer a.Close()

	_, err := a.Alloc(0)
	require.ErrorIs(t, err, ErrBadSize)
}

func TestArenaSliceBounds(t *testing.T) {
	a := NewArena(0)
	defer a.Close()

	ref, err := a.Alloc(32)
	require.NoError(t, err)

	b, ok := a.Slice(ref, 32)
	require.True(t, ok)
	require.Len(t, b, 32)

	// Past the bump watermark.
	_, ok = a.Slice(ref, 33)
	require.False(t, ok)

	// Nowhere near a chunk.
	_, ok = a.Slice(0xFFFF0000, 1)
	require.False(t, ok)

	// NilRef is below the first chunk.
	_, ok = a.Slice(NilRef, 1)
	require.False(t, ok)
}

func TestArenaGrowsAcrossChunks(t *testing.T) {
	a := NewArena(64)
	defer a.Close()

	var refs []Ref
	for i := 0; i < 10; i++ {
		ref, err := a.Alloc(48)
		require.NoError(t, err)
		refs = append(refs, ref)
	}

	// Every region stays addressable after later growth.
	for i, ref := range refs {
		b, ok := a.Slice(ref, 48)
		require.True(t, ok, "region %d", i)
		b[0] = byte(i)
	}
	for i, ref := range refs {
		b, _ := a.Slice(ref, 48)
		require.Equal(t, byte(i), b[0])
	}

	require.Greater(t, a.Mapped(), uint64(64))
}

func TestArenaOversizedRequest(t *testing.T) {
	a := NewArena(64)
	defer a.Close()

	ref, err := a.Alloc(1000)
	require.NoError(t, err)

	b, ok := a.Slice(ref, 1000)
	require.True(t, ok)
	require.Len(t, b, 1000)
}

func TestHeaderRoundTrip(t *testing.T) {
	a := NewArena(0)
	defer a.Close()

	slot, err := a.Alloc(HeaderSize + 24)
	require.NoError(t, err)
	ref := slot + HeaderSize

	h, ok := a.Header(ref)
	require.True(t, ok)
	h.Reset()

	h.SetNext(0x1234)
	h.SetSize(24)
	h.SetTypeID(7)
	h.SetMarked(true)
	h.SetPooled(true)
	h.SetPoolClass(3)

	require.Equal(t, Ref(0x1234), h.Next())
	require.Equal(t, uint32(24), h.Size())
	require.Equal(t, uint32(7), h.TypeID())
	require.True(t, h.Marked())
	require.True(t, h.Pooled())
	require.Equal(t, 3, h.PoolClass())

	h.SetMarked(false)
	require.False(t, h.Marked())
	require.True(t, h.Pooled(), "clearing the mark keeps the pool flag")
}

func TestHeaderInvalidRef(t *testing.T) {
	a := NewArena(0)
	defer a.Close()

	_, ok := a.Header(4)
	require.False(t, ok, "ref below HeaderSize cannot have a header")

	_, ok = a.Header(0x4000)
	require.False(t, ok)
}

func TestArenaClose(t *testing.T) {
	a := NewArena(0)
	ref, err := a.Alloc(16)
	require.NoError(t, err)

	require.NoError(t, a.Close())

	_, ok := a.Slice(ref, 16)
	require.False(t, ok, "refs die with the arena")
	require.Zero(t, a.Mapped())
}
