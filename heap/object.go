package heap

import "github.com/joshuapare/heapkit/internal/buf"

// HeaderSize is the number of bytes prepended to every tracked allocation.
const HeaderSize = 16

// Header field offsets. See the package doc for the full layout.
const (
	hdrNext  = 0
	hdrSize  = 4
	hdrType  = 8
	hdrFlags = 12
	hdrClass = 13
)

// Header flag bits.
const (
	flagMarked = 1 << 0
	flagPooled = 1 << 1
)

// Header is a view over the 16 header bytes in front of an object payload.
// Mutations write through to the arena.
type Header struct {
	b []byte
}

// Header returns the header view for the object whose payload starts at ref.
func (a *Arena) Header(ref Ref) (Header, bool) {
	if ref < HeaderSize {
		return Header{}, false
	}
	b, ok := a.Slice(ref-HeaderSize, HeaderSize)
	if !ok {
		return Header{}, false
	}
	return Header{b: b}, true
}

// Reset zeroes the header. Run before initializing a freshly carved slot,
// which may hold stale bytes from a previous occupant.
func (h Header) Reset() {
	clear(h.b)
}

// Next returns the payload Ref of the next object in the all-objects list.
func (h Header) Next() Ref { return buf.U32LE(h.b[hdrNext:]) }

// SetNext links the next object in the all-objects list.
func (h Header) SetNext(ref Ref) { buf.PutU32LE(h.b[hdrNext:], ref) }

// Size returns the payload size in bytes.
func (h Header) Size() uint32 { return buf.U32LE(h.b[hdrSize:]) }

// SetSize records the payload size.
func (h Header) SetSize(n uint32) { buf.PutU32LE(h.b[hdrSize:], n) }

// TypeID returns the registry ID of the payload type, 0 when untyped.
func (h Header) TypeID() uint32 { return buf.U32LE(h.b[hdrType:]) }

// SetTypeID records the registry ID of the payload type.
func (h Header) SetTypeID(id uint32) { buf.PutU32LE(h.b[hdrType:], id) }

// Marked reports the mark bit.
func (h Header) Marked() bool { return h.b[hdrFlags]&flagMarked != 0 }

// SetMarked sets or clears the mark bit.
func (h Header) SetMarked(v bool) {
	if v {
		h.b[hdrFlags] |= flagMarked
	} else {
		h.b[hdrFlags] &^= flagMarked
	}
}

// Pooled reports whether the object lives in a size-class pool slot.
func (h Header) Pooled() bool { return h.b[hdrFlags]&flagPooled != 0 }

// SetPooled records pool membership.
func (h Header) SetPooled(v bool) {
	if v {
		h.b[hdrFlags] |= flagPooled
	} else {
		h.b[hdrFlags] &^= flagPooled
	}
}

// PoolClass returns the size class index for pooled objects.
func (h Header) PoolClass() int { return int(h.b[hdrClass]) }

// SetPoolClass records the size class index.
func (h Header) SetPoolClass(class int) { h.b[hdrClass] = byte(class) }
