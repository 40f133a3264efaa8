package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
)

func TestClassFor(t *testing.T) {
	cases := []struct {
		size uint32
		want int
	}{
		{1, 0},
		{8, 0},
		{9, 1},
		{16, 1},
		{17, 2},
		{32, 2},
		{64, 3},
		{128, 4},
		{255, 5},
		{256, 5},
		{257, -1},
		{4096, -1},
	}
	for _, c := range cases {
		require.Equal(t, c.want, ClassFor(c.size), "size %d", c.size)
	}
}

func TestPoolCarvesSequentially(t *testing.T) {
	a := heap.NewArena(0)
	defer a.Close()
	p := NewPool(a, 32)

	r1, err := p.Alloc()
	require.NoError(t, err)
	r2, err := p.Alloc()
	require.NoError(t, err)

	require.Equal(t, r1+32, r2)
	require.Equal(t, uint64(64), p.Used())
	require.Equal(t, uint32(32), p.SlotSize())
}

func TestPoolReusesFreedSlot(t *testing.T) {
	a := heap.NewArena(0)
	defer a.Close()
	p := NewPool(a, 64)

	r1, err := p.Alloc()
	require.NoError(t, err)
	r2, err := p.Alloc()
	require.NoError(t, err)

	require.NoError(t, p.Free(r1))
	require.NoError(t, p.Free(r2))

	// LIFO reuse: last freed comes back first.
	r3, err := p.Alloc()
	require.NoError(t, err)
	require.Equal(t, r2, r3)

	r4, err := p.Alloc()
	require.NoError(t, err)
	require.Equal(t, r1, r4)

	// Reuse does not carve new capacity.
	require.Equal(t, uint64(128), p.Used())
}

func TestPoolGrowsNewBlock(t *testing.T) {
	a := heap.NewArena(0)
	defer a.Close()
	p := NewPool(a, 1024)

	seen := make(map[heap.Ref]bool)
	for i := 0; i < 5; i++ {
		ref, err := p.Alloc()
		require.NoError(t, err)
		require.False(t, seen[ref], "slot %d handed out twice", i)
		seen[ref] = true
	}

	// Four slots fill the first block; the fifth forces a second one.
	require.Equal(t, uint64(5*1024), p.Used())
}

func TestPoolFreeBadRef(t *testing.T) {
	a := heap.NewArena(0)
	defer a.Close()
	p := NewPool(a, 32)

	require.ErrorIs(t, p.Free(0xFFFF0000), ErrBadFree)
}
