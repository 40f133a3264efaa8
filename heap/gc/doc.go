// Package gc implements a mark-sweep tracing collector over the arena heap.
//
// # Overview
//
// Every allocation is linked into a single intrusive all-objects list via
// its header. Collect marks everything reachable from the root set, using
// the typeinfo traversal engine for objects that carry type information,
// then sweeps the list and returns unmarked objects to their size-class
// pool or the span free list.
//
// Objects without type information are leaves: any refs stored in their
// payload will not keep targets alive. Embedders must allocate with
// AllocTyped for anything that holds references.
//
// # Pacing
//
// Alloc triggers a collection when bytesAllocated crosses the running
// threshold (while the collector is enabled). After every collection the
// threshold adapts to bytesAllocated * GrowthFactor, floored at
// MinThreshold. There is no generational or incremental mode; worst-case
// pause is proportional to the live-object count, and latency-sensitive
// embedders should Disable around critical sections and Collect
// deliberately.
//
// # Roots
//
// The root set is an explicit list of object refs. Callers add and remove
// roots themselves and must remove a root before the ref becomes invalid.
//
// # Thread safety
//
// A Collector assumes a single logical owner; sharing one across threads
// requires external mutual exclusion.
package gc
