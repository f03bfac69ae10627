package rewind

// Recorder owns a source and the history of everything it has produced.
// Cursors spawned from a Recorder all drive the same traversal state, so in
// the sequential form at most one cursor should be used at a time; use
// NewShared for concurrent access.
type Recorder[T any] struct {
	src       Source[T]
	hist      history[T]
	state     cursorState
	exhausted bool
}

// NewRecorder wraps src with an empty history. The recorder takes exclusive
// ownership of src; pulling from it elsewhere breaks replay ordering.
func NewRecorder[T any](src Source[T]) *Recorder[T] {
	return &Recorder[T]{src: src}
}

// Copying returns a cursor that yields copies of recorded items.
func (r *Recorder[T]) Copying() *Cursor[T] {
	return &Cursor[T]{rec: r}
}

// Referencing returns a cursor that yields pointers into history slots.
// Unlike the copying cursor it never duplicates items, so it suits item
// types that are expensive or unsuitable to copy.
func (r *Recorder[T]) Referencing() *RefCursor[T] {
	return &RefCursor[T]{rec: r}
}

// advance runs one logical step of the cursor state machine and returns the
// slot for the produced item. Replaying past the recorded frontier restores
// the progressing state and pulls within the same call, so no value is ever
// skipped. Positions below the eviction floor clamp to the floor.
func (r *Recorder[T]) advance() (*T, bool) {
	for {
		switch r.state.mode {
		case replaying:
			p := r.state.pos
			if p < r.hist.floor {
				p = r.hist.floor
			}
			if p >= r.hist.end {
				r.state = cursorState{mode: progressing}
				continue
			}
			r.state = cursorState{mode: replaying, pos: p + 1}
			return r.hist.slot(p), true
		default:
			if r.exhausted {
				return nil, false
			}
			v, ok := r.src.Next()
			if !ok {
				r.exhausted = true
				return nil, false
			}
			return r.hist.slot(r.hist.append(v)), true
		}
	}
}

// RefPoint reports the point the next item will be yielded from: the history
// frontier when progressing, the replay position otherwise.
func (r *Recorder[T]) RefPoint() Point {
	if r.state.mode == replaying {
		return r.state.pos
	}
	return r.hist.end
}

// OldestPoint reports the current eviction floor, 0 if nothing was ever
// forgotten.
func (r *Recorder[T]) OldestPoint() Point {
	return r.hist.floor
}

// Len reports the number of items currently held in history.
func (r *Recorder[T]) Len() int {
	return r.hist.len()
}

// ForgetBefore evicts history below point to bound memory. Out-of-range
// points are clamped, never rejected. Cursor positions below the cut
// self-correct to the new floor on their next use.
func (r *Recorder[T]) ForgetBefore(point Point) {
	r.hist.forgetBefore(point)
}

// Forget evicts everything before the current position, keeping only the
// unconsumed tail.
func (r *Recorder[T]) Forget() {
	r.ForgetBefore(r.RefPoint())
}

// DrainHistory removes and returns all buffered items in production order,
// leaving the history empty. The source is not touched; items it has not
// yet produced remain available through the cursors.
func (r *Recorder[T]) DrainHistory() []T {
	return r.hist.drain()
}

// WalkBack returns a reverse traversal over the recorded history as it
// stands now. Any number of walkbacks may coexist; none mutates the
// recorder.
func (r *Recorder[T]) WalkBack() *Walkback[T] {
	return newWalkback(&r.hist)
}
