// Package heap provides the byte arena underlying the collectors.
//
// # Overview
//
// The arena is a set of anonymous memory mappings (chunks) addressed by Ref,
// a stable uint32 byte offset. Refs never move: chunks are mapped once and
// kept for the lifetime of the arena, so a Ref taken at allocation time stays
// valid until Close. The zero Ref is the null reference; no chunk ever starts
// at offset 0.
//
// The arena itself only grows. Individual regions are recycled above it by
// the size-class pools and span free lists in the alloc package, so Alloc
// here is a plain bump within the current chunk.
//
// # Object headers
//
// Every collector-tracked allocation is prepended with a fixed 16-byte
// header, encoded little-endian:
//
//	off 0  next       Ref    intrusive link in the all-objects list
//	off 4  size       uint32 payload size in bytes
//	off 8  type       uint32 registry ID of the payload type (0 = untyped)
//	off 12 flags      uint8  mark bit, pooled bit
//	off 13 pool class uint8  size class index when pooled
//	off 14 reserved
//
// Object Refs always address the payload; the header sits at ref-HeaderSize.
//
// # Thread safety
//
// Arenas are not thread-safe. Callers must synchronize access externally.
package heap
