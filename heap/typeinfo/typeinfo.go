package typeinfo

import "github.com/joshuapare/heapkit/heap"

// Kind discriminates how a field participates in traversal.
type Kind uint8

const (
	// KindPrimitive is a non-reference scalar. Skipped by traversal.
	KindPrimitive Kind = iota

	// KindPointer is a Ref slot targeting another tracked object.
	KindPointer

	// KindArray is a Ref slot targeting a backing buffer of Count Ref
	// elements. Count 0 means dynamic length; see the package doc.
	KindArray

	// KindString is a Ref slot targeting an owned string backing buffer.
	// The buffer is kept alive and swept as its own object.
	KindString

	// KindEmbedded is a struct laid out in place; traversal recurses at
	// the field's offset using the embedded type.
	KindEmbedded
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindPointer:
		return "pointer"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindEmbedded:
		return "embedded"
	default:
		return "unknown"
	}
}

// Field describes one field of an object shape.
type Field struct {
	Name   string
	Kind   Kind
	Offset uint32 // byte offset from the payload start
	Size   uint32 // byte size of the field itself
	Elem   *Type  // referenced/embedded type; may be patched after registration
	Count  uint32 // array element count; 0 = dynamic, skipped by traversal
}

// Destructor runs over an object's payload when the object is destroyed.
type Destructor func(data []byte)

// Type describes one object shape.
type Type struct {
	Name   string
	Size   uint32
	Fields []Field

	// Destructor, when set, is the default finalizer for instances of
	// this shape. The tracing collector reclaims memory without running
	// it; the reference-counted allocator uses it when an object has no
	// destructor of its own.
	Destructor Destructor

	id         uint32
	registered bool
}

// ID returns the registry ID assigned at registration, 0 before that.
func (t *Type) ID() uint32 {
	if t == nil {
		return 0
	}
	return t.id
}

// Primitive builds a non-reference field descriptor.
func Primitive(name string, offset, size uint32) Field {
	return Field{Name: name, Kind: KindPrimitive, Offset: offset, Size: size}
}

// Pointer builds a Ref field targeting objects of type target.
func Pointer(name string, offset uint32, target *Type) Field {
	return Field{Name: name, Kind: KindPointer, Offset: offset, Size: heap.RefSize, Elem: target}
}

// Array builds a Ref field targeting a backing buffer of count elem refs.
func Array(name string, offset uint32, elem *Type, count uint32) Field {
	return Field{Name: name, Kind: KindArray, Offset: offset, Size: heap.RefSize, Elem: elem, Count: count}
}

// String builds a Ref field targeting an owned string backing buffer.
func String(name string, offset uint32) Field {
	return Field{Name: name, Kind: KindString, Offset: offset, Size: heap.RefSize}
}

// Embedded builds an in-place struct field of type embedded.
func Embedded(name string, offset uint32, embedded *Type) Field {
	size := uint32(0)
	if embedded != nil {
		size = embedded.Size
	}
	return Field{Name: name, Kind: KindEmbedded, Offset: offset, Size: size, Elem: embedded}
}

// HasPointers reports whether any field of t (recursing through embedded
// shapes) can hold a reference. A traversal over a pointer-free type is
// already a no-op; this is purely a cheap pre-check.
func (t *Type) HasPointers() bool {
	if t == nil {
		return false
	}
	for i := range t.Fields {
		f := &t.Fields[i]
		switch f.Kind {
		case KindPointer, KindArray, KindString:
			return true
		case KindEmbedded:
			if f.Elem.HasPointers() {
				return true
			}
		}
	}
	return false
}

// CountPointers returns the static number of reference slots in t, counting
// declared array lengths and recursing through embedded shapes.
func (t *Type) CountPointers() int {
	if t == nil {
		return 0
	}
	n := 0
	for i := range t.Fields {
		f := &t.Fields[i]
		switch f.Kind {
		case KindPointer, KindString:
			n++
		case KindArray:
			n += int(f.Count)
		case KindEmbedded:
			n += f.Elem.CountPointers()
		}
	}
	return n
}
