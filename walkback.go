package rewind

// Walkback is an independent reverse traversal over a recorder's history.
// It snapshots the frontier at construction: the first item yielded is the
// most recently recorded one, and the walk proceeds strictly backward until
// the oldest retained item. A walkback never mutates cursor or recorder
// state.
type Walkback[T any] struct {
	hist  *history[T]
	pos   Point
	floor Point
}

func newWalkback[T any](h *history[T]) *Walkback[T] {
	return &Walkback[T]{hist: h, pos: h.end, floor: h.floor}
}

// Next yields the item before the current position, or ok=false once the
// walk reaches the oldest retained item. Eviction that happens mid-walk
// exhausts the walkback early rather than touching freed slots.
func (w *Walkback[T]) Next() (T, bool) {
	floor := w.floor
	if w.hist.floor > floor {
		floor = w.hist.floor
	}
	if w.pos <= floor {
		var zero T
		return zero, false
	}
	w.pos--
	return *w.hist.slot(w.pos), true
}

// RefPoint reports the current reverse position. Feeding it to a cursor's
// Backtrack resumes forward replay at exactly the slot most recently yielded
// by this walkback.
func (w *Walkback[T]) RefPoint() Point { return w.pos }

// RefWalkback is the referencing counterpart of Walkback: Next yields
// pointers into history slots.
type RefWalkback[T any] struct {
	hist  *history[T]
	pos   Point
	floor Point
}

func newRefWalkback[T any](h *history[T]) *RefWalkback[T] {
	return &RefWalkback[T]{hist: h, pos: h.end, floor: h.floor}
}

// Next yields a pointer to the item before the current position, or
// ok=false at the oldest retained item.
func (w *RefWalkback[T]) Next() (*T, bool) {
	floor := w.floor
	if w.hist.floor > floor {
		floor = w.hist.floor
	}
	if w.pos <= floor {
		return nil, false
	}
	w.pos--
	return w.hist.slot(w.pos), true
}

// RefPoint reports the current reverse position.
func (w *RefWalkback[T]) RefPoint() Point { return w.pos }
