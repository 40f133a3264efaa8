package gc

import (
	"log/slog"

	"github.com/joshuapare/heapkit/heap"
)

// Collect runs one full mark-sweep cycle and returns the number of objects
// freed. It is a no-op while the collector is disabled. After the sweep the
// threshold adapts to bytes * GrowthFactor, floored at MinThreshold.
func (c *Collector) Collect() int {
	if !c.enabled {
		return 0
	}

	for _, root := range c.roots {
		c.mark(root)
	}
	freed := c.sweep()

	c.nextGC = uint64(float64(c.bytes) * c.cfg.GrowthFactor)
	if c.nextGC < c.cfg.MinThreshold {
		c.nextGC = c.cfg.MinThreshold
	}

	c.log.Debug("gc cycle",
		slog.Int("freed", freed),
		slog.Int("live", c.count),
		slog.Uint64("bytes", c.bytes),
		slog.Uint64("next", c.nextGC))
	return freed
}

// CollectForce collects even while the collector is disabled, restoring the
// enabled flag afterwards.
func (c *Collector) CollectForce() int {
	wasEnabled := c.enabled
	c.enabled = true
	freed := c.Collect()
	c.enabled = wasEnabled
	return freed
}

// mark sets the mark bit on ref and every object reachable from it. An
// object is visited once, guarded by its mark bit. Untyped objects are
// leaves.
func (c *Collector) mark(ref heap.Ref) {
	if ref == heap.NilRef {
		return
	}
	h, ok := c.arena.Header(ref)
	if !ok || h.Marked() {
		return
	}
	h.SetMarked(true)

	t := c.types.ByID(h.TypeID())
	if t == nil || !t.HasPointers() {
		return
	}
	t.Traverse(c, ref, func(_, target heap.Ref) {
		c.mark(target)
	})
}

// sweep walks the all-objects list, releasing unmarked objects and clearing
// the mark bit on survivors for the next cycle. Returns the freed count.
func (c *Collector) sweep() int {
	freed := 0
	var prev heap.Ref
	ref := c.objects

	for ref != heap.NilRef {
		h, ok := c.arena.Header(ref)
		if !ok {
			break
		}
		next := h.Next()

		if !h.Marked() {
			if prev == heap.NilRef {
				c.objects = next
			} else if ph, ok := c.arena.Header(prev); ok {
				ph.SetNext(next)
			}
			c.release(ref, h)
			freed++
		} else {
			h.SetMarked(false)
			prev = ref
		}

		ref = next
	}
	return freed
}
