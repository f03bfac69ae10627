package rewind

// Cursor is the copying traversal over a Recorder: every yielded item is a
// copy, whether it came fresh from the source or out of history.
type Cursor[T any] struct {
	rec *Recorder[T]
}

// Next yields the next item. When replaying it re-emits the recorded item at
// the current position; when progressing it pulls one item from the source,
// records it, and returns it. Exhaustion of the source is reported as
// ok=false, not an error.
func (c *Cursor[T]) Next() (T, bool) {
	s, ok := c.rec.advance()
	if !ok {
		var zero T
		return zero, false
	}
	return *s, true
}

// Backtrack moves the cursor to point. The point is not validated: a point
// at or past the frontier simply resumes progressing on the next call, and a
// point below the eviction floor clamps to the floor.
func (c *Cursor[T]) Backtrack(point Point) {
	c.rec.state = cursorState{mode: replaying, pos: point}
}

// StartAgain rewinds to the oldest retained item.
func (c *Cursor[T]) StartAgain() {
	c.Backtrack(c.rec.OldestPoint())
}

// RefPoint reports the point the next call to Next will yield from.
func (c *Cursor[T]) RefPoint() Point { return c.rec.RefPoint() }

// OldestPoint reports the current eviction floor.
func (c *Cursor[T]) OldestPoint() Point { return c.rec.OldestPoint() }

// WalkBack returns a reverse traversal over the history recorded so far.
func (c *Cursor[T]) WalkBack() *Walkback[T] {
	return newWalkback(&c.rec.hist)
}

// RefCursor is the referencing traversal over a Recorder: Next yields
// pointers into history slots instead of copies. Returned pointers stay
// valid as the history grows and even after the slot is evicted, since an
// outstanding pointer keeps its chunk alive.
type RefCursor[T any] struct {
	rec *Recorder[T]
}

// Next yields a pointer to the next item's history slot, or ok=false on
// source exhaustion.
func (c *RefCursor[T]) Next() (*T, bool) {
	return c.rec.advance()
}

// Backtrack moves the cursor to point without validation; see
// Cursor.Backtrack.
func (c *RefCursor[T]) Backtrack(point Point) {
	c.rec.state = cursorState{mode: replaying, pos: point}
}

// StartAgain rewinds to the oldest retained item.
func (c *RefCursor[T]) StartAgain() {
	c.Backtrack(c.rec.OldestPoint())
}

// RefPoint reports the point the next call to Next will yield from.
func (c *RefCursor[T]) RefPoint() Point { return c.rec.RefPoint() }

// OldestPoint reports the current eviction floor.
func (c *RefCursor[T]) OldestPoint() Point { return c.rec.OldestPoint() }

// WalkBack returns a reverse traversal yielding references.
func (c *RefCursor[T]) WalkBack() *RefWalkback[T] {
	return newRefWalkback(&c.rec.hist)
}
