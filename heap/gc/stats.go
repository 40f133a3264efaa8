package gc

import (
	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
)

// Stats is a point-in-time snapshot of collector state.
type Stats struct {
	// BytesAllocated is the total bytes charged to live allocations,
	// bucket-rounded for pooled objects.
	BytesAllocated uint64

	// Objects is the number of tracked objects.
	Objects int

	// NextThreshold is the bytes level that triggers the next automatic
	// collection.
	NextThreshold uint64

	// HeapBytes is the portion of BytesAllocated held by span (direct)
	// allocations, headers included.
	HeapBytes uint64

	// PoolUsed is the bytes carved per size class, free-listed slots
	// included.
	PoolUsed [alloc.NumPools]uint64

	// PointerSlots is the static reference-slot census over live typed
	// objects.
	PointerSlots int
}

// Stats walks the pools and the object list and returns a snapshot.
func (c *Collector) Stats() Stats {
	s := Stats{
		BytesAllocated: c.bytes,
		Objects:        c.count,
		NextThreshold:  c.nextGC,
	}
	for i, p := range c.pools {
		s.PoolUsed[i] = p.Used()
	}

	for ref := c.objects; ref != heap.NilRef; {
		h, ok := c.arena.Header(ref)
		if !ok {
			break
		}
		if !h.Pooled() {
			s.HeapBytes += uint64(heap.HeaderSize + h.Size())
		}
		if t := c.types.ByID(h.TypeID()); t != nil {
			s.PointerSlots += t.CountPointers()
		}
		ref = h.Next()
	}
	return s
}
