package rewind

// Point names a position in a recorder's history. Points are assigned in
// pull order starting at 0 and are never re-based: eviction advances the
// recorder's floor instead of renumbering surviving slots, so a Point means
// the same logical slot for as long as the recorder lives.
//
// Points are ordinary integers and may be compared, stored, and handed
// between cursors and walkbacks of the same recorder.
type Point uint64

// Source is a single-pass item producer. Next returns the next item, or
// ok=false once the source is exhausted. A recorder polls its source at most
// once per item ever returned and never retries after exhaustion.
//
// Sources need not be safe for concurrent use; recorders serialize pulls.
type Source[T any] interface {
	Next() (T, bool)
}

// Backtracking is the traversal surface shared by every cursor flavor.
// Copying cursors satisfy Backtracking[T]; referencing cursors satisfy
// Backtracking[*T].
type Backtracking[T any] interface {
	// Next yields the next item, replaying history when behind the
	// recorded frontier and pulling from the source otherwise.
	Next() (T, bool)
	// Backtrack moves the traversal to point. Invalid points are not
	// rejected; they self-correct on the following Next call.
	Backtrack(point Point)
	// StartAgain rewinds to the oldest retained point.
	StartAgain()
	// RefPoint reports the point the next Next call will yield from.
	RefPoint() Point
	// OldestPoint reports the current eviction floor.
	OldestPoint() Point
}

// cursorMode discriminates the cursor state variant.
type cursorMode uint8

const (
	progressing cursorMode = iota
	replaying
)

// cursorState is the tagged Progressing | Replaying(pos) pair. pos is only
// meaningful when mode == replaying.
type cursorState struct {
	mode cursorMode
	pos  Point
}
