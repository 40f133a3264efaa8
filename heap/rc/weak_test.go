package rc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/buf"
)

func TestWeakLock(t *testing.T) {
	c := New(nil)

	h := c.NewObject([]byte{1}, nil)
	w := c.WeakNew(h)
	require.NotNil(t, w)

	got, ok := w.Lock()
	require.True(t, ok)
	require.Equal(t, h, got)

	c.Release(h)
	_, ok = w.Lock()
	require.False(t, ok, "lock fails once the target died")
	_, ok = w.Lock()
	require.False(t, ok, "detachment is permanent")

	c.WeakRelease(w)
	c.WeakRelease(w) // safe twice
}

func TestWeakStaleHandle(t *testing.T) {
	c := New(nil)

	require.Nil(t, c.WeakNew(0xDEAD))

	var w *WeakRef
	_, ok := w.Lock()
	require.False(t, ok)
	c.WeakRelease(nil)
}

func TestWeakDoesNotKeepAlive(t *testing.T) {
	c := New(nil)

	destroyed := false
	h := c.NewObject([]byte{1}, func([]byte) { destroyed = true })
	w := c.WeakNew(h)

	c.Release(h)
	require.True(t, destroyed, "a weak ref holds no strong count")
	_, ok := w.Lock()
	require.False(t, ok)
}

func TestWeakObservesCycleCollection(t *testing.T) {
	c := New(nil)

	link := linkType()
	a := c.NewTyped(make([]byte, link.Size), link, nil)
	b := c.NewTyped(make([]byte, link.Size), link, nil)
	buf.PutU32LE(c.Load(a), b)
	buf.PutU32LE(c.Load(b), a)
	c.Retain(a)
	c.Retain(b)

	w := c.WeakNew(a)
	c.Release(a)
	c.Release(b)

	require.Equal(t, 2, c.CollectCycles())
	_, ok := w.Lock()
	require.False(t, ok, "cycle collection detaches weak refs too")
}
