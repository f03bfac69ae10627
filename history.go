package rewind

// historyChunkSize is the slot count per chunk. Chunks are allocated at full
// capacity up front so appends within a chunk never move its backing array.
const historyChunkSize = 256

// history is an append-only store of produced items, addressed by Point.
// Storage is a list of fixed-capacity chunks rather than one growing slice:
// a *T handed out for a slot must stay valid while later appends happen, and
// a contiguous array would move slots on reallocation.
//
// Three watermarks describe the live window:
//
//	head:  point of the first slot still physically present (chunk 0, slot 0)
//	floor: oldest live point; slots in [head, floor) are evicted but not
//	       yet freed because their chunk still holds live slots
//	end:   next point to assign
//
// history does no locking; Recorder uses it single-threaded and
// SharedRecorder guards it with a read/write lock.
type history[T any] struct {
	chunks [][]T
	head   Point
	floor  Point
	end    Point
}

// append stores v at the tail and returns its point.
func (h *history[T]) append(v T) Point {
	if n := len(h.chunks); n == 0 || len(h.chunks[n-1]) == historyChunkSize {
		h.chunks = append(h.chunks, make([]T, 0, historyChunkSize))
	}
	n := len(h.chunks) - 1
	h.chunks[n] = append(h.chunks[n], v)
	p := h.end
	h.end++
	return p
}

// slot returns the address of the item at p. The caller must ensure
// floor <= p < end. The returned pointer stays valid across later appends
// and evictions: chunks are never reallocated, and dropping a chunk from the
// chunk list leaves its array alive for any outstanding pointers.
func (h *history[T]) slot(p Point) *T {
	off := p - h.head
	return &h.chunks[off/historyChunkSize][off%historyChunkSize]
}

// len reports the number of live (un-evicted) items.
func (h *history[T]) len() int {
	return int(h.end - h.floor)
}

// forgetBefore evicts slots below p, clamped into [floor, end]. Whole chunks
// below the new floor are released; a partially evicted chunk is kept intact
// so surviving slot addresses and any outstanding references are unaffected.
func (h *history[T]) forgetBefore(p Point) {
	if p <= h.floor {
		return
	}
	if p > h.end {
		p = h.end
	}
	h.floor = p
	for h.floor-h.head >= historyChunkSize {
		h.chunks[0] = nil
		h.chunks = h.chunks[1:]
		h.head += historyChunkSize
	}
}

// drain removes and returns all live items in production order, leaving the
// history empty. Points keep counting from where they left off.
func (h *history[T]) drain() []T {
	out := make([]T, 0, h.len())
	for p := h.floor; p < h.end; p++ {
		out = append(out, *h.slot(p))
	}
	h.forgetBefore(h.end)
	return out
}
