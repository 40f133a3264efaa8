// Package typeinfo describes object layouts for generic traversal.
//
// # Overview
//
// The collectors have no native reflection over arena payloads, so embedders
// describe each object shape once with a Type: a name, a byte size, and an
// ordered list of Fields tagged Primitive, Pointer, Array, String, or
// Embedded. Traverse then walks any payload of that shape and reports every
// outgoing reference to a visitor. Both the tracing collector and the
// reference-counted allocator consume this engine; neither depends on the
// other.
//
// # Registration
//
// Types are registered once, at startup, before any instance is allocated:
//
//	node := &typeinfo.Type{Name: "Node", Size: 16}
//	node.Fields = []typeinfo.Field{
//	    typeinfo.Primitive("value", 0, 8),
//	    typeinfo.Pointer("next", 8, node), // self-referential is fine
//	}
//	reg.Register(node)
//
// Self-referential and mutually recursive shapes may reference types that
// are not registered yet; the Elem pointer is patched by the embedder after
// the fact. Registering a type twice is a silent no-op.
//
// # Known limitation
//
// Array fields declared with Count 0 (dynamic length) are skipped entirely
// during traversal: without an element count there is nothing safe to walk.
// Pointers held in such arrays will not keep their targets alive.
package typeinfo
