package rc

import (
	"bytes"
	"io"
	"log/slog"
	"os"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/typeinfo"
)

// Runtime debug flag for cycle collection logging - controlled by
// HEAPKIT_LOG_RC env var.
var logRC = os.Getenv("HEAPKIT_LOG_RC") != ""

// Handle addresses one reference-counted object. Handles are never reused.
type Handle = heap.Ref

// object is the per-allocation record. The transient internal count and
// tri-color state are only meaningful during the CollectCycles pass whose
// epoch they carry.
type object struct {
	handle   Handle
	strong   int
	weak     int
	internal int // references from inside the suspect set, per pass
	typ      *typeinfo.Type
	data     []byte
	dtor     typeinfo.Destructor
	color    uint8
	epoch    uint32 // pass the color belongs to
	buffered bool   // member of the suspect buffer
}

// Config tunes a Counter.
type Config struct {
	// DisableCycleDetection starts the counter with the detector off;
	// Retain then never stages suspects. SetCycleDetection can turn it
	// back on.
	DisableCycleDetection bool

	// Logger receives debug cycle-collection logs. Nil discards them
	// unless HEAPKIT_LOG_RC is set, which logs to stderr.
	Logger *slog.Logger
}

// Counter owns a set of reference-counted objects.
type Counter struct {
	objects  map[Handle]*object
	next     Handle
	suspects []*object
	detect   bool
	epoch    uint32

	totalObjects    int
	totalRefs       int
	cyclesDetected  int
	cyclesCollected int

	log *slog.Logger
}

// New creates an empty counter. cfg may be nil.
func New(cfg *Config) *Counter {
	c := &Counter{
		objects: make(map[Handle]*object),
		detect:  true,
	}
	if cfg != nil {
		c.detect = !cfg.DisableCycleDetection
		c.log = cfg.Logger
	}
	if c.log == nil {
		if logRC {
			c.log = slog.New(slog.NewTextHandler(os.Stderr, nil))
		} else {
			c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
	}
	return c
}

// NewObject creates an object owning a copy of data, with a strong count of
// 1. dtor, when non-nil, runs over the payload at destruction.
func (c *Counter) NewObject(data []byte, dtor typeinfo.Destructor) Handle {
	return c.create(data, nil, dtor)
}

// NewTyped creates an object whose payload layout is described by t, making
// it traversable by the cycle detector. A nil dtor falls back to the type's
// destructor.
func (c *Counter) NewTyped(data []byte, t *typeinfo.Type, dtor typeinfo.Destructor) Handle {
	if dtor == nil && t != nil {
		dtor = t.Destructor
	}
	return c.create(data, t, dtor)
}

func (c *Counter) create(data []byte, t *typeinfo.Type, dtor typeinfo.Destructor) Handle {
	c.next++
	o := &object{
		handle: c.next,
		strong: 1,
		typ:    t,
		data:   bytes.Clone(data),
		dtor:   dtor,
	}
	c.objects[o.handle] = o
	c.totalObjects++
	c.totalRefs++
	return o.handle
}

// Retain increments the strong count. Once the count exceeds 1 the object
// is staged into the suspect buffer: only multiply-referenced objects can
// be cycle members. Unknown handles are ignored.
func (c *Counter) Retain(h Handle) {
	o := c.objects[h]
	if o == nil {
		return
	}
	o.strong++
	c.totalRefs++
	if c.detect && o.strong > 1 {
		c.stage(o)
	}
}

// Release decrements the strong count and destroys the object the moment
// the count reaches zero. Unknown (including already-destroyed) handles are
// ignored.
func (c *Counter) Release(h Handle) {
	o := c.objects[h]
	if o == nil {
		return
	}
	o.strong--
	c.totalRefs--
	if o.strong > 0 {
		return
	}
	if o.buffered {
		c.unstage(o)
	}
	c.totalObjects--
	c.destroy(o)
}

// StrongCount returns the current strong count, 0 for unknown handles.
func (c *Counter) StrongCount(h Handle) int {
	o := c.objects[h]
	if o == nil {
		return 0
	}
	return o.strong
}

// MarkSuspect stages an object for the next CollectCycles pass regardless
// of its count, for embedders that know a structure is cyclic before any
// second retain happens.
func (c *Counter) MarkSuspect(h Handle) {
	if o := c.objects[h]; o != nil {
		c.stage(o)
	}
}

// SetCycleDetection toggles the detector. While off, Retain stops staging
// suspects and CollectCycles is a no-op; the buffer itself is kept.
func (c *Counter) SetCycleDetection(enabled bool) {
	c.detect = enabled
}

// Load returns the payload of a live object, or nil for unknown handles.
// Load makes Counter a typeinfo.Memory.
func (c *Counter) Load(ref heap.Ref) []byte {
	o := c.objects[ref]
	if o == nil {
		return nil
	}
	return o.data
}

// stage adds o to the suspect buffer once.
func (c *Counter) stage(o *object) {
	if o.buffered {
		return
	}
	o.buffered = true
	c.suspects = append(c.suspects, o)
}

// unstage removes o from the suspect buffer.
func (c *Counter) unstage(o *object) {
	o.buffered = false
	for i, s := range c.suspects {
		if s == o {
			c.suspects = append(c.suspects[:i], c.suspects[i+1:]...)
			return
		}
	}
}

// destroy runs the destructor and unregisters the object. The strong count
// is forced to zero first so weak references observe the death even when
// destruction came from cycle collection or Close.
func (c *Counter) destroy(o *object) {
	o.strong = 0
	if o.dtor != nil && o.data != nil {
		o.dtor(o.data)
	}
	o.data = nil
	delete(c.objects, o.handle)
}

// Close destroys every still-registered object, cyclic or not, and empties
// the counter. Destruction order is unspecified.
func (c *Counter) Close() {
	for _, o := range c.objects {
		c.totalRefs -= o.strong
		c.destroy(o)
	}
	c.totalObjects = 0
	c.suspects = nil
}
