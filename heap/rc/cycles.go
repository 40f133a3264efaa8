package rc

import (
	"log/slog"

	"github.com/joshuapare/heapkit/heap"
)

// Tri-color marking state, valid for one CollectCycles pass.
const (
	colorWhite = 0 // not visited
	colorGray  = 1 // being visited
	colorBlack = 2 // fully visited
)

// color returns o's effective color for the current pass. Colors from
// earlier passes read as white, so no reset walk over the whole registry is
// needed.
func (c *Counter) color(o *object) uint8 {
	if o.epoch != c.epoch {
		return colorWhite
	}
	return o.color
}

func (c *Counter) setColor(o *object, col uint8) {
	o.epoch = c.epoch
	o.color = col
}

// CollectCycles runs one trial-deletion pass over the whole suspect buffer
// and returns the number of objects freed.
//
// The pass recomputes every suspect's internal reference count (references
// originating inside the suspect set), tri-color marks everything reachable
// from suspects whose strong count exceeds their internal count, and
// collects the suspects left white with a positive strong count - objects
// kept alive only by an unreachable cycle. Objects reached by the mark stay
// untouched and may be re-examined on a future pass.
func (c *Counter) CollectCycles() int {
	if !c.detect || len(c.suspects) == 0 {
		return 0
	}
	c.epoch++

	// Reset: internal counts are transient, recomputed per pass.
	for _, o := range c.suspects {
		o.internal = 0
	}

	// Count references into each tracked object that originate from the
	// suspect set.
	for _, o := range c.suspects {
		if o.typ == nil || !o.typ.HasPointers() {
			continue
		}
		o.typ.Traverse(c, o.handle, func(_, target heap.Ref) {
			if t := c.objects[target]; t != nil {
				t.internal++
			}
		})
	}

	// Mark: a suspect with more strong references than internal ones is
	// reachable from outside the set; everything it reaches survives.
	for _, o := range c.suspects {
		if o.strong-o.internal > 0 {
			c.markAlive(o)
		}
	}

	// Scan: whites with a positive count are self-sustaining garbage.
	var collected []*object
	kept := c.suspects[:0]
	for _, o := range c.suspects {
		if c.color(o) == colorWhite && o.strong > 0 {
			o.buffered = false
			collected = append(collected, o)
		} else {
			kept = append(kept, o)
		}
	}
	c.suspects = kept

	if len(collected) == 0 {
		return 0
	}

	cycles := c.countCycles(collected)
	c.cyclesDetected += cycles

	for _, o := range collected {
		c.totalObjects--
		c.totalRefs -= o.strong
		c.destroy(o)
	}
	c.cyclesCollected += cycles

	c.log.Debug("cycle collection",
		slog.Int("cycles", cycles),
		slog.Int("objects", len(collected)),
		slog.Int("suspects", len(c.suspects)))
	return len(collected)
}

// markAlive colors o and everything reachable from it, guarded by
// color != white to visit each object once.
func (c *Counter) markAlive(o *object) {
	if c.color(o) != colorWhite {
		return
	}
	c.setColor(o, colorGray)
	if o.typ != nil && o.typ.HasPointers() {
		o.typ.Traverse(c, o.handle, func(_, target heap.Ref) {
			if t := c.objects[target]; t != nil {
				c.markAlive(t)
			}
		})
	}
	c.setColor(o, colorBlack)
}

// countCycles counts the connected garbage structures inside the collected
// set, so a three-object cycle reports one cycle, not three.
func (c *Counter) countCycles(collected []*object) int {
	set := make(map[Handle]*object, len(collected))
	for _, o := range collected {
		set[o.handle] = o
	}
	seen := make(map[Handle]bool, len(collected))

	var walk func(o *object)
	walk = func(o *object) {
		seen[o.handle] = true
		if o.typ == nil || !o.typ.HasPointers() {
			return
		}
		o.typ.Traverse(c, o.handle, func(_, target heap.Ref) {
			if t := set[target]; t != nil && !seen[target] {
				walk(t)
			}
		})
	}

	cycles := 0
	for _, o := range collected {
		if !seen[o.handle] {
			cycles++
			walk(o)
		}
	}
	return cycles
}
