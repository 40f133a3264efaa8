package gc

import (
	"log/slog"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/typeinfo"
)

// Collector is a mark-sweep garbage collector over one arena.
type Collector struct {
	arena *heap.Arena
	types *typeinfo.Registry

	pools [alloc.NumPools]*alloc.Pool
	spans *alloc.Spans

	objects heap.Ref // head of the intrusive all-objects list
	bytes   uint64   // bytes charged to live allocations
	count   int      // tracked objects

	roots   []heap.Ref
	enabled bool
	nextGC  uint64

	cfg Config
	log *slog.Logger
}

// New creates a collector. types may be nil, in which case a private empty
// registry is used and every allocation is untyped. cfg may be nil for
// DefaultConfig.
func New(types *typeinfo.Registry, cfg *Config) *Collector {
	conf := cfg.withDefaults()
	if types == nil {
		types = typeinfo.NewRegistry()
	}
	c := &Collector{
		arena:   heap.NewArena(conf.ChunkSize),
		types:   types,
		enabled: true,
		nextGC:  conf.InitialThreshold,
		cfg:     conf,
		log:     conf.Logger,
	}
	c.spans = alloc.NewSpans(c.arena)
	for i, size := range alloc.PoolSizes {
		c.pools[i] = alloc.NewPool(c.arena, size)
	}
	return c
}

// Types returns the registry this collector resolves header type IDs
// against.
func (c *Collector) Types() *typeinfo.Registry {
	return c.types
}

// Alloc allocates size payload bytes and returns the payload ref. The
// payload is not zeroed; use AllocZero when that matters. Crossing the
// collection threshold runs Collect first.
func (c *Collector) Alloc(size uint32) (heap.Ref, error) {
	if size == 0 {
		return heap.NilRef, heap.ErrBadSize
	}

	if c.enabled && c.bytes >= c.nextGC {
		c.Collect()
	}

	total := heap.HeaderSize + size
	var (
		slot    heap.Ref
		err     error
		class   = alloc.ClassFor(total)
		charged uint64
	)
	if class >= 0 {
		slot, err = c.pools[class].Alloc()
		charged = uint64(alloc.PoolSizes[class])
	} else {
		region := heap.AlignUp(total)
		slot, err = c.spans.Alloc(region)
		charged = uint64(region)
	}
	if err != nil {
		return heap.NilRef, err
	}

	ref := slot + heap.HeaderSize
	h, ok := c.arena.Header(ref)
	if !ok {
		return heap.NilRef, ErrNotTracked
	}
	h.Reset()
	h.SetSize(size)
	h.SetNext(c.objects)
	if class >= 0 {
		h.SetPooled(true)
		h.SetPoolClass(class)
	}

	c.objects = ref
	c.bytes += charged
	c.count++
	return ref, nil
}

// AllocZero allocates size zeroed payload bytes.
func (c *Collector) AllocZero(size uint32) (heap.Ref, error) {
	ref, err := c.Alloc(size)
	if err != nil {
		return heap.NilRef, err
	}
	clear(c.Load(ref))
	return ref, nil
}

// AllocTyped allocates with type information so Collect can traverse the
// payload's references. An unregistered type leaves the object untyped.
func (c *Collector) AllocTyped(size uint32, t *typeinfo.Type) (heap.Ref, error) {
	ref, err := c.Alloc(size)
	if err != nil {
		return heap.NilRef, err
	}
	if h, ok := c.arena.Header(ref); ok {
		h.SetTypeID(t.ID())
	}
	return ref, nil
}

// AllocTypedZero allocates zeroed payload bytes with type information.
func (c *Collector) AllocTypedZero(size uint32, t *typeinfo.Type) (heap.Ref, error) {
	ref, err := c.AllocTyped(size, t)
	if err != nil {
		return heap.NilRef, err
	}
	clear(c.Load(ref))
	return ref, nil
}

// Realloc moves the object to a region of newSize bytes, copying
// min(oldSize, newSize) payload bytes and preserving type information.
// Realloc(NilRef, n) behaves like Alloc; newSize 0 frees.
func (c *Collector) Realloc(ref heap.Ref, newSize uint32) (heap.Ref, error) {
	if ref == heap.NilRef {
		return c.Alloc(newSize)
	}
	if newSize == 0 {
		return heap.NilRef, c.Free(ref)
	}

	h, ok := c.arena.Header(ref)
	if !ok {
		return heap.NilRef, ErrNotTracked
	}
	oldSize := h.Size()
	typeID := h.TypeID()

	next, err := c.Alloc(newSize)
	if err != nil {
		return heap.NilRef, err
	}
	if nh, ok := c.arena.Header(next); ok {
		nh.SetTypeID(typeID)
	}
	copy(c.Load(next), c.Load(ref)[:min(oldSize, newSize)])
	if err := c.Free(ref); err != nil {
		return heap.NilRef, err
	}
	return next, nil
}

// Free explicitly unlinks and releases one object.
func (c *Collector) Free(ref heap.Ref) error {
	if ref == heap.NilRef {
		return nil
	}
	h, ok := c.arena.Header(ref)
	if !ok {
		return ErrNotTracked
	}

	if c.objects == ref {
		c.objects = h.Next()
	} else {
		prev := c.objects
		for prev != heap.NilRef {
			ph, ok := c.arena.Header(prev)
			if !ok {
				return ErrNotTracked
			}
			if ph.Next() == ref {
				ph.SetNext(h.Next())
				break
			}
			prev = ph.Next()
		}
		if prev == heap.NilRef {
			return ErrNotTracked
		}
	}

	c.release(ref, h)
	return nil
}

// release returns the object's region to its pool or the span list and
// updates accounting. The caller has already unlinked it.
func (c *Collector) release(ref heap.Ref, h heap.Header) {
	slot := ref - heap.HeaderSize
	if h.Pooled() {
		class := h.PoolClass()
		c.bytes -= uint64(alloc.PoolSizes[class])
		c.pools[class].Free(slot) //nolint:errcheck // slot came from this pool
	} else {
		region := heap.AlignUp(heap.HeaderSize + h.Size())
		c.bytes -= uint64(region)
		c.spans.Free(slot, region) //nolint:errcheck // region came from this span list
	}
	c.count--
}

// Load returns the payload bytes of a tracked object, or nil for refs that
// do not address one. Load makes Collector a typeinfo.Memory.
func (c *Collector) Load(ref heap.Ref) []byte {
	h, ok := c.arena.Header(ref)
	if !ok {
		return nil
	}
	b, _ := c.arena.Slice(ref, h.Size())
	return b
}

// AddRoot appends ref to the root set. NilRef is ignored.
func (c *Collector) AddRoot(ref heap.Ref) {
	if ref == heap.NilRef {
		return
	}
	c.roots = append(c.roots, ref)
}

// RemoveRoot removes the first occurrence of ref from the root set. Callers
// must remove roots before the refs they name become invalid.
func (c *Collector) RemoveRoot(ref heap.Ref) {
	for i, r := range c.roots {
		if r == ref {
			c.roots = append(c.roots[:i], c.roots[i+1:]...)
			return
		}
	}
}

// Enable allows automatic and explicit collections.
func (c *Collector) Enable() { c.enabled = true }

// Disable suspends collections until Enable. Allocation keeps working and
// keeps charging bytes; nothing is reclaimed meanwhile.
func (c *Collector) Disable() { c.enabled = false }

// Close releases the arena. All refs handed out by this collector become
// invalid.
func (c *Collector) Close() error {
	c.objects = heap.NilRef
	c.roots = nil
	c.bytes = 0
	c.count = 0
	return c.arena.Close()
}
