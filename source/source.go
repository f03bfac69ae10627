package source

import (
	"iter"

	"github.com/rzbill/rewind"
)

type sliceSource[T any] struct {
	items []T
	next  int
}

// FromSlice returns a source that yields the elements of items in order.
// The slice is read lazily; the caller must not mutate it while the source
// is live.
func FromSlice[T any](items []T) rewind.Source[T] {
	return &sliceSource[T]{items: items}
}

func (s *sliceSource[T]) Next() (T, bool) {
	if s.next >= len(s.items) {
		var zero T
		return zero, false
	}
	v := s.items[s.next]
	s.next++
	return v, true
}

type chanSource[T any] struct {
	ch <-chan T
}

// FromChan returns a source that receives from ch. Next blocks until a value
// arrives and reports exhaustion once ch is closed and drained.
func FromChan[T any](ch <-chan T) rewind.Source[T] {
	return chanSource[T]{ch: ch}
}

func (s chanSource[T]) Next() (T, bool) {
	v, ok := <-s.ch
	return v, ok
}

type funcSource[T any] func() (T, bool)

// FromFunc adapts fn into a source. fn is never called again after it first
// reports ok=false.
func FromFunc[T any](fn func() (T, bool)) rewind.Source[T] {
	return funcSource[T](fn)
}

func (f funcSource[T]) Next() (T, bool) { return f() }

type seqSource[T any] struct {
	next func() (T, bool)
	stop func()
}

// FromSeq adapts an iter.Seq into a source via iter.Pull. The underlying
// iterator is stopped when the source reports exhaustion; a source that is
// abandoned before exhaustion leaks the iterator's coroutine until GC.
func FromSeq[T any](seq iter.Seq[T]) rewind.Source[T] {
	next, stop := iter.Pull(seq)
	return &seqSource[T]{next: next, stop: stop}
}

func (s *seqSource[T]) Next() (T, bool) {
	v, ok := s.next()
	if !ok {
		s.stop()
	}
	return v, ok
}

type filterSource[T any] struct {
	src  rewind.Source[T]
	keep func(T) bool
}

// Filter returns a source yielding only the items of src for which keep
// returns true. Exhaustion of src exhausts the filter.
func Filter[T any](src rewind.Source[T], keep func(T) bool) rewind.Source[T] {
	return &filterSource[T]{src: src, keep: keep}
}

func (f *filterSource[T]) Next() (T, bool) {
	for {
		v, ok := f.src.Next()
		if !ok {
			var zero T
			return zero, false
		}
		if f.keep(v) {
			return v, true
		}
	}
}
