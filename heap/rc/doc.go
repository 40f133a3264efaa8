// Package rc implements eager reference counting with a trial-deletion
// cycle detector.
//
// # Overview
//
// Objects are created with a strong count of 1 and destroyed the instant
// the count returns to zero - that point is reached exactly once, and it is
// the only place the destructor runs (cycle collection and Close reach the
// same point by forcing the count down). For acyclic structures this gives
// fully deterministic reclamation with no pauses, the main advantage over
// the tracing collector.
//
// Objects are addressed by Handle, a uint32 that is never reused; payloads
// store handles in their reference slots, and a stale handle simply fails
// the registry lookup instead of aliasing a newer object. Weak references
// observe an object without owning it and detach permanently once the
// strong count hits zero.
//
// # Cycle detection
//
// Pure reference counting leaks cycles. Retain stages any object whose
// count exceeds 1 into a suspect buffer - only multiply-referenced objects
// can be cycle members - and CollectCycles runs trial deletion over that
// buffer: recompute each suspect's internal reference count by traversing
// the suspect set, tri-color mark everything reachable from suspects that
// still have external references, then collect the suspects left white with
// a positive count. Those are, by construction, kept alive only by other
// members of an unreachable cycle.
//
// CollectCycles is a full pass over the whole buffer and never runs on
// allocation pressure; the embedder invokes it explicitly.
//
// Like the tracing collector, the detector can only follow references in
// objects that carry type information. Untyped cycle members are invisible
// to it.
//
// # Thread safety
//
// A Counter assumes a single logical owner; sharing one across threads
// requires external mutual exclusion.
package rc
