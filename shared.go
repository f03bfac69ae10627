package rewind

import (
	"sync"
	"sync/atomic"
)

// poisonedMsg is the loud-failure message for a shared recorder whose source
// panicked mid-pull. State past that point is suspect, so every later
// operation refuses to run.
const poisonedMsg = "rewind: shared recorder poisoned by a panic during a source pull"

// SharedRecorder is a recorder that many goroutines may drive at once.
// Source pulls are strictly serialized under a mutex, and the history is
// guarded by a read/write lock: many concurrent replays, one brief exclusive
// hold per append. Cursors cloned from a shared recorder keep private
// positions while sharing the source and history, so independently driven
// clones replay the same history at different points and together pull each
// source item exactly once.
type SharedRecorder[T any] struct {
	srcMu     sync.Mutex // serializes pulls; guards src and exhausted
	src       Source[T]
	exhausted bool

	mu   sync.RWMutex // guards hist
	hist history[T]

	poisoned atomic.Bool
}

// NewShared wraps src with an empty shared history.
func NewShared[T any](src Source[T]) *SharedRecorder[T] {
	return &SharedRecorder[T]{src: src}
}

// Copying returns a copying cursor positioned at the oldest retained item.
func (s *SharedRecorder[T]) Copying() *SharedCursor[T] {
	s.check()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &SharedCursor[T]{rec: s, pos: s.hist.floor}
}

// Referencing returns a referencing cursor positioned at the oldest retained
// item.
func (s *SharedRecorder[T]) Referencing() *SharedRefCursor[T] {
	s.check()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &SharedRefCursor[T]{rec: s, pos: s.hist.floor}
}

// End reports the next point the recorder will assign.
func (s *SharedRecorder[T]) End() Point {
	s.check()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hist.end
}

// OldestPoint reports the current eviction floor.
func (s *SharedRecorder[T]) OldestPoint() Point {
	s.check()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hist.floor
}

// Len reports the number of items currently held in history.
func (s *SharedRecorder[T]) Len() int {
	s.check()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hist.len()
}

// ForgetBefore evicts history below point. Out-of-range points are clamped.
// Points are never renumbered, so cursors and walkbacks holding positions
// below the cut self-correct to the new floor instead of silently meaning a
// different slot; outstanding references stay valid because their chunks
// remain reachable.
func (s *SharedRecorder[T]) ForgetBefore(point Point) {
	s.check()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hist.forgetBefore(point)
}

// DrainHistory removes and returns all buffered items in production order,
// leaving the history empty without touching the source.
func (s *SharedRecorder[T]) DrainHistory() []T {
	s.check()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.drain()
}

// WalkBack returns a reverse traversal over a snapshot of the current
// history frontier.
func (s *SharedRecorder[T]) WalkBack() *SharedWalkback[T] {
	s.check()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &SharedWalkback[T]{rec: s, pos: s.hist.end, floor: s.hist.floor}
}

func (s *SharedRecorder[T]) check() {
	if s.poisoned.Load() {
		panic(poisonedMsg)
	}
}

// pull produces the item for pos when pos sits at the frontier. It holds the
// source lock for the pull and the immediately following append, nothing
// more. If another cursor advanced the frontier first, pulled=false tells
// the caller to replay instead, preserving one-pull-per-item across clones.
// The slot address is resolved while the append lock is still held: once the
// lock drops, a racing eviction may release the slot's chunk, so it must not
// be re-resolved later. A panic out of the source marks the recorder
// poisoned before unwinding.
func (s *SharedRecorder[T]) pull(pos Point) (v T, ref *T, p Point, ok bool, pulled bool) {
	s.srcMu.Lock()
	defer s.srcMu.Unlock()
	s.check()

	s.mu.RLock()
	end := s.hist.end
	s.mu.RUnlock()
	if end > pos {
		return v, nil, 0, true, false
	}
	if s.exhausted {
		return v, nil, 0, false, false
	}

	defer func() {
		if r := recover(); r != nil {
			s.poisoned.Store(true)
			panic(r)
		}
	}()
	v, ok = s.src.Next()
	if !ok {
		s.exhausted = true
		return v, nil, 0, false, false
	}
	s.mu.Lock()
	p = s.hist.append(v)
	ref = s.hist.slot(p)
	s.mu.Unlock()
	return v, ref, p, true, true
}

// SharedCursor is a copying cursor over a SharedRecorder. It is not itself
// safe for concurrent use; Clone it and give each goroutine its own.
type SharedCursor[T any] struct {
	rec *SharedRecorder[T]
	pos Point
}

// Clone returns an independent cursor at the same position, sharing the
// underlying source and history.
func (c *SharedCursor[T]) Clone() *SharedCursor[T] {
	cp := *c
	return &cp
}

// Next yields the next item: a replayed copy when the cursor is behind the
// shared frontier, a freshly pulled item otherwise.
func (c *SharedCursor[T]) Next() (T, bool) {
	c.rec.check()
	for {
		c.rec.mu.RLock()
		if c.pos < c.rec.hist.floor {
			c.pos = c.rec.hist.floor
		}
		if c.pos < c.rec.hist.end {
			v := *c.rec.hist.slot(c.pos)
			c.rec.mu.RUnlock()
			c.pos++
			return v, true
		}
		c.rec.mu.RUnlock()

		v, _, p, ok, pulled := c.rec.pull(c.pos)
		if !ok {
			var zero T
			return zero, false
		}
		if !pulled {
			continue
		}
		c.pos = p + 1
		return v, true
	}
}

// Backtrack moves the cursor to point without validation.
func (c *SharedCursor[T]) Backtrack(point Point) { c.pos = point }

// StartAgain rewinds to the oldest retained item.
func (c *SharedCursor[T]) StartAgain() { c.pos = c.rec.OldestPoint() }

// RefPoint reports the point the next call to Next will yield from.
func (c *SharedCursor[T]) RefPoint() Point { return c.pos }

// OldestPoint reports the current eviction floor.
func (c *SharedCursor[T]) OldestPoint() Point { return c.rec.OldestPoint() }

// Forget evicts everything before this cursor's position.
func (c *SharedCursor[T]) Forget() { c.rec.ForgetBefore(c.pos) }

// WalkBack returns a reverse traversal over the history recorded so far.
func (c *SharedCursor[T]) WalkBack() *SharedWalkback[T] { return c.rec.WalkBack() }

// SharedRefCursor is the referencing cursor over a SharedRecorder. Next
// resolves a slot address while holding the history lock (read lock on
// replay, the append's write lock on a fresh pull) and releases it before
// returning; the pointer stays valid because slots never move and evicted
// chunks survive as long as something points into them.
type SharedRefCursor[T any] struct {
	rec *SharedRecorder[T]
	pos Point
}

// Clone returns an independent cursor at the same position.
func (c *SharedRefCursor[T]) Clone() *SharedRefCursor[T] {
	cp := *c
	return &cp
}

// Next yields a pointer to the next item's history slot, or ok=false on
// source exhaustion.
func (c *SharedRefCursor[T]) Next() (*T, bool) {
	c.rec.check()
	for {
		c.rec.mu.RLock()
		if c.pos < c.rec.hist.floor {
			c.pos = c.rec.hist.floor
		}
		if c.pos < c.rec.hist.end {
			ref := c.rec.hist.slot(c.pos)
			c.rec.mu.RUnlock()
			c.pos++
			return ref, true
		}
		c.rec.mu.RUnlock()

		_, ref, p, ok, pulled := c.rec.pull(c.pos)
		if !ok {
			return nil, false
		}
		if !pulled {
			continue
		}
		c.pos = p + 1
		return ref, true
	}
}

// Backtrack moves the cursor to point without validation.
func (c *SharedRefCursor[T]) Backtrack(point Point) { c.pos = point }

// StartAgain rewinds to the oldest retained item.
func (c *SharedRefCursor[T]) StartAgain() { c.pos = c.rec.OldestPoint() }

// RefPoint reports the point the next call to Next will yield from.
func (c *SharedRefCursor[T]) RefPoint() Point { return c.pos }

// OldestPoint reports the current eviction floor.
func (c *SharedRefCursor[T]) OldestPoint() Point { return c.rec.OldestPoint() }

// Forget evicts everything before this cursor's position.
func (c *SharedRefCursor[T]) Forget() { c.rec.ForgetBefore(c.pos) }

// WalkBack returns a reverse traversal yielding references.
func (c *SharedRefCursor[T]) WalkBack() *SharedRefWalkback[T] {
	c.rec.check()
	c.rec.mu.RLock()
	defer c.rec.mu.RUnlock()
	return &SharedRefWalkback[T]{rec: c.rec, pos: c.rec.hist.end, floor: c.rec.hist.floor}
}

// SharedWalkback walks a shared recorder's history in reverse from the
// frontier captured at construction. Each step briefly takes the read lock;
// the walkback itself should be driven by one goroutine.
type SharedWalkback[T any] struct {
	rec   *SharedRecorder[T]
	pos   Point
	floor Point
}

// Next yields a copy of the item before the current position, or ok=false
// at the oldest retained item. Eviction racing with the walk exhausts it
// early.
func (w *SharedWalkback[T]) Next() (T, bool) {
	w.rec.check()
	w.rec.mu.RLock()
	defer w.rec.mu.RUnlock()
	floor := w.floor
	if w.rec.hist.floor > floor {
		floor = w.rec.hist.floor
	}
	if w.pos <= floor {
		var zero T
		return zero, false
	}
	w.pos--
	return *w.rec.hist.slot(w.pos), true
}

// RefPoint reports the current reverse position; feed it to Backtrack on any
// cursor of the same recorder to resume forward replay there.
func (w *SharedWalkback[T]) RefPoint() Point { return w.pos }

// SharedRefWalkback is the referencing counterpart of SharedWalkback: Next
// yields pointers into history slots, resolved under a briefly held read
// lock.
type SharedRefWalkback[T any] struct {
	rec   *SharedRecorder[T]
	pos   Point
	floor Point
}

// Next yields a pointer to the item before the current position, or
// ok=false at the oldest retained item.
func (w *SharedRefWalkback[T]) Next() (*T, bool) {
	w.rec.check()
	w.rec.mu.RLock()
	defer w.rec.mu.RUnlock()
	floor := w.floor
	if w.rec.hist.floor > floor {
		floor = w.rec.hist.floor
	}
	if w.pos <= floor {
		return nil, false
	}
	w.pos--
	return w.rec.hist.slot(w.pos), true
}

// RefPoint reports the current reverse position.
func (w *SharedRefWalkback[T]) RefPoint() Point { return w.pos }
