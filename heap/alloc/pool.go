package alloc

import (
	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/buf"
)

// block is one fixed-capacity region carved from the arena.
type block struct {
	start heap.Ref
	size  uint32 // capacity
	used  uint32 // carve watermark
}

// Pool is a free-list allocator for one size class. All slots in a pool
// share the same size.
type Pool struct {
	a        *heap.Arena
	slotSize uint32
	blocks   []block
	freeHead heap.Ref // freed slots, threaded through their first word
}

// NewPool creates a pool of slotSize-byte slots backed by a.
func NewPool(a *heap.Arena, slotSize uint32) *Pool {
	return &Pool{a: a, slotSize: slotSize}
}

// SlotSize returns the size class of this pool.
func (p *Pool) SlotSize() uint32 {
	return p.slotSize
}

// Alloc returns a slot ref. The fast path pops the free list; otherwise a
// block with spare capacity is carved, mapping a fresh block when none has
// room. The slot may contain stale bytes.
func (p *Pool) Alloc() (heap.Ref, error) {
	if p.freeHead != heap.NilRef {
		ref := p.freeHead
		slot, ok := p.a.Slice(ref, heap.RefSize)
		if !ok {
			// A corrupt free list is unrecoverable; drop it and
			// fall through to carving.
			p.freeHead = heap.NilRef
		} else {
			p.freeHead = buf.U32LE(slot)
			return ref, nil
		}
	}

	for i := range p.blocks {
		b := &p.blocks[i]
		if b.size-b.used >= p.slotSize {
			ref := b.start + b.used
			b.used += p.slotSize
			return ref, nil
		}
	}

	start, err := p.a.Alloc(BlockSize)
	if err != nil {
		return heap.NilRef, err
	}
	p.blocks = append(p.blocks, block{start: start, size: BlockSize, used: p.slotSize})
	return start, nil
}

// Free pushes the slot onto the free list. The slot's first word is
// overwritten with the current list head, valid because a freed slot holds
// no live payload.
func (p *Pool) Free(ref heap.Ref) error {
	slot, ok := p.a.Slice(ref, heap.RefSize)
	if !ok {
		return ErrBadFree
	}
	buf.PutU32LE(slot, p.freeHead)
	p.freeHead = ref
	return nil
}

// Used returns the total bytes carved from this pool's blocks. Slots on the
// free list still count as carved; this mirrors the per-bucket usage figure
// in collector stats.
func (p *Pool) Used() uint64 {
	var n uint64
	for i := range p.blocks {
		n += uint64(p.blocks[i].used)
	}
	return n
}
