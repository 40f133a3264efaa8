package gc

import (
	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/typeinfo"
)

// ObjectInfo describes one tracked object for inspection tooling.
type ObjectInfo struct {
	Ref       heap.Ref
	Size      uint32
	Type      *typeinfo.Type // nil when untyped
	Pooled    bool
	PoolClass int
}

// Each calls fn for every tracked object, newest allocation first, stopping
// early when fn returns false.
func (c *Collector) Each(fn func(ObjectInfo) bool) {
	for ref := c.objects; ref != heap.NilRef; {
		h, ok := c.arena.Header(ref)
		if !ok {
			return
		}
		info := ObjectInfo{
			Ref:    ref,
			Size:   h.Size(),
			Type:   c.types.ByID(h.TypeID()),
			Pooled: h.Pooled(),
		}
		if info.Pooled {
			info.PoolClass = h.PoolClass()
		}
		if !fn(info) {
			return
		}
		ref = h.Next()
	}
}
