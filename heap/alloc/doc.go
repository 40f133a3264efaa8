// Package alloc provides region reuse on top of the grow-only arena.
//
// # Overview
//
// Two allocators cover the two allocation profiles of the collectors:
//
// Pool: fixed-bucket allocator for small regions. Each Pool owns a list of
// fixed-capacity blocks carved from the arena plus a free list threaded
// through the first word of each freed slot, giving O(1) alloc and free for
// one size class. The configured buckets are 8, 16, 32, 64, 128, and 256
// bytes; ClassFor picks the smallest bucket that fits, or -1 when the
// request must fall back to a span allocation.
//
// Spans: first-fit free list of variable-sized regions for everything too
// large to pool. Freed spans are reused exactly or split, with the remainder
// pushed back on the list; spans that cannot satisfy a request stay where
// they are and fresh memory is bumped from the arena instead.
//
// # Free-list encoding
//
// A freed slot holds no live payload, so its first 4 bytes are overwritten
// with the ref of the next free slot. Spans additionally store their own
// size in the following 4 bytes.
//
// # Thread safety
//
// Allocators are not thread-safe. Callers must synchronize access
// externally.
package alloc
