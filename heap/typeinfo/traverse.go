package typeinfo

import (
	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/buf"
)

// Memory resolves a Ref to the payload bytes of a live object. A nil result
// means the ref does not address a live object; traversal then skips
// anything behind it.
type Memory interface {
	Load(ref heap.Ref) []byte
}

// Visitor receives every outgoing reference discovered during traversal.
// owner is the object Traverse was called on, including for references found
// inside embedded fields and array buffers.
type Visitor func(owner, target heap.Ref)

// Traverse walks the payload of obj using t's field list, in field order,
// and calls visit for each non-null reference:
//
//   - Primitive fields are skipped.
//   - Pointer and String slots yield their target.
//   - Array slots yield the backing buffer itself, then each non-null
//     element ref in it. Arrays with Count 0 are skipped entirely.
//   - Embedded fields recurse in place.
//
// Malformed descriptors (offsets past the payload, counts past the buffer)
// truncate silently rather than fault; type metadata is trusted, not
// validated.
func (t *Type) Traverse(m Memory, obj heap.Ref, visit Visitor) {
	if t == nil || m == nil || visit == nil {
		return
	}
	data := m.Load(obj)
	if data == nil {
		return
	}
	t.traverse(m, obj, data, visit)
}

func (t *Type) traverse(m Memory, owner heap.Ref, data []byte, visit Visitor) {
	for i := range t.Fields {
		f := &t.Fields[i]
		switch f.Kind {
		case KindPointer, KindString:
			slot, ok := buf.Slice(data, int(f.Offset), heap.RefSize)
			if !ok {
				continue
			}
			if target := buf.U32LE(slot); target != heap.NilRef {
				visit(owner, target)
			}

		case KindArray:
			slot, ok := buf.Slice(data, int(f.Offset), heap.RefSize)
			if !ok {
				continue
			}
			aref := buf.U32LE(slot)
			if aref == heap.NilRef || f.Count == 0 {
				// Dynamic arrays carry no element count; nothing
				// safe to walk.
				continue
			}
			// The backing buffer is a tracked object in its own
			// right and must stay alive with its owner.
			visit(owner, aref)
			arr := m.Load(aref)
			if arr == nil {
				continue
			}
			end, err := buf.CheckListBounds(len(arr), 0, int(f.Count), heap.RefSize)
			if err != nil {
				end = len(arr) - len(arr)%heap.RefSize
			}
			for off := 0; off < end; off += heap.RefSize {
				if elem := buf.U32LE(arr[off:]); elem != heap.NilRef {
					visit(owner, elem)
				}
			}

		case KindEmbedded:
			if f.Elem == nil {
				continue
			}
			sub, ok := buf.Slice(data, int(f.Offset), int(f.Elem.Size))
			if !ok {
				continue
			}
			f.Elem.traverse(m, owner, sub, visit)
		}
	}
}
