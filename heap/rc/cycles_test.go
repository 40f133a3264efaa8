package rc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap/typeinfo"
	"github.com/joshuapare/heapkit/internal/buf"
)

// buildRing creates n typed objects wired into a ring, each next pointer
// holding its own retain. The caller still owns one external handle per
// member.
func buildRing(c *Counter, link *typeinfo.Type, n int, dtor typeinfo.Destructor) []Handle {
	ring := make([]Handle, n)
	for i := range ring {
		ring[i] = c.NewTyped(make([]byte, link.Size), link, dtor)
	}
	for i, h := range ring {
		next := ring[(i+1)%n]
		buf.PutU32LE(c.Load(h), next)
		c.Retain(next)
	}
	return ring
}

func TestCollectCyclesRing(t *testing.T) {
	c := New(nil)
	link := linkType()

	destroyed := 0
	ring := buildRing(c, link, 3, func([]byte) { destroyed++ })
	for _, h := range ring {
		c.Release(h)
	}

	// The ring keeps itself alive; plain counting cannot reclaim it.
	s := c.Stats()
	require.Equal(t, 3, s.TotalObjects)
	require.Equal(t, 3, s.SuspectBufferSize)
	require.Zero(t, destroyed)

	require.Equal(t, 3, c.CollectCycles())
	require.Equal(t, 3, destroyed)

	s = c.Stats()
	require.Zero(t, s.TotalObjects)
	require.Zero(t, s.TotalRefs)
	require.Zero(t, s.SuspectBufferSize)
	require.Equal(t, 1, s.CyclesDetected, "one ring is one cycle")
	require.Equal(t, 1, s.CyclesCollected)
}

func TestExternallyReferencedCycleSurvives(t *testing.T) {
	c := New(nil)
	link := linkType()

	ring := buildRing(c, link, 3, nil)
	c.Release(ring[0])
	c.Release(ring[1])
	// ring[2] still has its external handle.

	require.Zero(t, c.CollectCycles())
	require.Equal(t, 3, c.Stats().TotalObjects)
	for _, h := range ring {
		require.NotNil(t, c.Load(h))
	}

	// Dropping the last external handle makes the ring collectable.
	c.Release(ring[2])
	require.Equal(t, 3, c.CollectCycles())
	require.Zero(t, c.Stats().TotalObjects)
}

func TestTwoRingsAreTwoCycles(t *testing.T) {
	c := New(nil)
	link := linkType()

	for _, n := range []int{3, 4} {
		for _, h := range buildRing(c, link, n, nil) {
			c.Release(h)
		}
	}

	require.Equal(t, 7, c.CollectCycles())
	s := c.Stats()
	require.Equal(t, 2, s.CyclesCollected, "disjoint rings count separately")
	require.Zero(t, s.TotalObjects)
}

func TestSelfCycle(t *testing.T) {
	c := New(nil)
	link := linkType()

	destroyed := 0
	h := c.NewTyped(make([]byte, link.Size), link, func([]byte) { destroyed++ })
	buf.PutU32LE(c.Load(h), h)
	c.Retain(h)
	c.Release(h)

	require.Equal(t, 1, c.CollectCycles())
	require.Equal(t, 1, destroyed)
	require.Equal(t, 1, c.Stats().CyclesCollected)
}

func TestAcyclicSuspectSurvives(t *testing.T) {
	c := New(nil)
	link := linkType()

	// parent -> child, plus a second handle to child that briefly existed;
	// child is staged but externally reachable through parent.
	parent := c.NewTyped(make([]byte, link.Size), link, nil)
	child := c.NewTyped(make([]byte, link.Size), link, nil)
	buf.PutU32LE(c.Load(parent), child)
	c.Retain(child)
	c.Release(child)

	require.Equal(t, 1, c.Stats().SuspectBufferSize)
	require.Zero(t, c.CollectCycles(), "no garbage cycle to find")
	require.NotNil(t, c.Load(child))

	c.Release(parent)
	require.NotNil(t, c.Load(child), "destroying the parent does not cascade")
	c.Release(child)
	require.Zero(t, c.Stats().TotalObjects)
}

func TestMarkSuspectWithDetectorToggled(t *testing.T) {
	c := New(&Config{DisableCycleDetection: true})
	link := linkType()

	ring := buildRing(c, link, 2, nil)
	for _, h := range ring {
		c.Release(h)
	}

	// Off: retains staged nothing and collection is a no-op.
	require.Zero(t, c.Stats().SuspectBufferSize)
	require.Zero(t, c.CollectCycles())
	require.Equal(t, 2, c.Stats().TotalObjects)

	// On again: explicit staging makes the leaked ring collectable.
	c.SetCycleDetection(true)
	require.Zero(t, c.CollectCycles(), "nothing staged yet")
	for _, h := range ring {
		c.MarkSuspect(h)
	}
	require.Equal(t, 2, c.CollectCycles())
	require.Zero(t, c.Stats().TotalObjects)
}

func TestCollectCyclesEmpty(t *testing.T) {
	c := New(nil)
	require.Zero(t, c.CollectCycles())
}

func TestSuspectBufferSurvivesFailedPass(t *testing.T) {
	c := New(nil)
	link := linkType()

	ring := buildRing(c, link, 3, nil)
	c.Release(ring[0])
	c.Release(ring[1])

	// Repeated passes while the ring is externally referenced keep the
	// suspects staged rather than forgetting them.
	require.Zero(t, c.CollectCycles())
	require.Zero(t, c.CollectCycles())
	require.Equal(t, 3, c.Stats().SuspectBufferSize)

	c.Release(ring[2])
	require.Equal(t, 3, c.CollectCycles())
}
