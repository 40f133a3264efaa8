package heap

import (
	"fmt"
	"math"
	"sort"

	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/mmem"
)

const (
	// DefaultChunkSize is the mapping granularity used when the embedder
	// does not configure one. Requests larger than the chunk size get a
	// dedicated chunk.
	DefaultChunkSize = 64 * 1024

	// baseOffset keeps the first chunk away from offset 0 so NilRef can
	// never address a valid region.
	baseOffset = 8
)

// chunk is one anonymous mapping. Chunks are sorted by start offset and
// never released before Close.
type chunk struct {
	start   Ref
	size    uint32 // mapped capacity
	used    uint32 // bump watermark
	data    []byte
	release func() error
}

// Arena is a grow-only, chunked allocation space addressed by Ref.
type Arena struct {
	chunks    []chunk
	chunkSize uint32
	mapped    uint64
}

// NewArena creates an empty arena. chunkSize 0 selects DefaultChunkSize.
// No memory is mapped until the first allocation.
func NewArena(chunkSize uint32) *Arena {
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	return &Arena{chunkSize: AlignUp(chunkSize)}
}

// Alloc reserves n bytes and returns the Ref of the region start. The region
// contents are zero on a fresh chunk but may hold stale bytes when the chunk
// was bump-extended; callers that need zeroed memory must clear it.
func (a *Arena) Alloc(n uint32) (Ref, error) {
	if n == 0 {
		return NilRef, ErrBadSize
	}
	n = AlignUp(n)

	// Bump within the newest chunk when it still has room.
	if len(a.chunks) > 0 {
		c := &a.chunks[len(a.chunks)-1]
		if c.size-c.used >= n {
			ref := c.start + c.used
			c.used += n
			return ref, nil
		}
	}

	return a.grow(n)
}

// grow maps a new chunk and carves the first n bytes from it.
func (a *Arena) grow(n uint32) (Ref, error) {
	size := a.chunkSize
	if n > size {
		size = n
	}

	start := Ref(baseOffset)
	if len(a.chunks) > 0 {
		last := a.chunks[len(a.chunks)-1]
		start = last.start + last.size
	}
	if uint64(start)+uint64(size) > math.MaxUint32 {
		return NilRef, ErrArenaFull
	}

	data, release, err := mmem.Map(int(size))
	if err != nil {
		return NilRef, fmt.Errorf("heap: map chunk: %w", err)
	}

	a.chunks = append(a.chunks, chunk{
		start:   start,
		size:    size,
		used:    n,
		data:    data,
		release: release,
	})
	a.mapped += uint64(size)
	return start, nil
}

// find locates the chunk containing ref, or nil.
func (a *Arena) find(ref Ref) *chunk {
	i := sort.Search(len(a.chunks), func(i int) bool {
		return a.chunks[i].start+a.chunks[i].size > ref
	})
	if i >= len(a.chunks) || ref < a.chunks[i].start {
		return nil
	}
	return &a.chunks[i]
}

// Slice returns the n bytes at ref, or ok = false when the range is not
// inside an allocated region.
func (a *Arena) Slice(ref Ref, n uint32) ([]byte, bool) {
	c := a.find(ref)
	if c == nil {
		return nil, false
	}
	off := ref - c.start
	if uint64(off)+uint64(n) > uint64(c.used) {
		return nil, false
	}
	return buf.Slice(c.data, int(off), int(n))
}

// Mapped returns the total number of bytes mapped from the OS.
func (a *Arena) Mapped() uint64 {
	return a.mapped
}

// Close releases every chunk. All Refs become invalid.
func (a *Arena) Close() error {
	var first error
	for i := range a.chunks {
		if err := a.chunks[i].release(); err != nil && first == nil {
			first = err
		}
		a.chunks[i].data = nil
	}
	a.chunks = nil
	a.mapped = 0
	return first
}
