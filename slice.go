package rewind

// Slice is the random-access convenience form of the cursor state machine
// over an already-indexable slice: the whole slice is the history, nothing
// is pulled or recorded, and points are plain indices. It additionally
// supports range slicing over points.
type Slice[T any] struct {
	items []T
	pos   Point
}

// NewSlice returns a traversal over items starting at the first element.
// The slice is not copied; the caller must not shrink it while the
// traversal is live.
func NewSlice[T any](items []T) *Slice[T] {
	return &Slice[T]{items: items}
}

// Next yields the element at the current position, or ok=false past the
// end.
func (s *Slice[T]) Next() (T, bool) {
	if s.pos >= Point(len(s.items)) {
		var zero T
		return zero, false
	}
	v := s.items[s.pos]
	s.pos++
	return v, true
}

// Backtrack moves the traversal to point. Out-of-range points are not
// rejected; Next simply reports exhaustion until a valid Backtrack.
func (s *Slice[T]) Backtrack(point Point) { s.pos = point }

// StartAgain rewinds to the first element.
func (s *Slice[T]) StartAgain() { s.pos = 0 }

// RefPoint reports the current position.
func (s *Slice[T]) RefPoint() Point { return s.pos }

// OldestPoint reports the oldest reachable point, which for a slice is
// always 0.
func (s *Slice[T]) OldestPoint() Point { return 0 }

// Len reports the slice length.
func (s *Slice[T]) Len() int { return len(s.items) }

// Range returns the subslice covering points [from, to). An out-of-bounds
// or inverted range yields ok=false rather than panicking.
func (s *Slice[T]) Range(from, to Point) ([]T, bool) {
	if from > to || to > Point(len(s.items)) {
		return nil, false
	}
	return s.items[from:to], true
}
