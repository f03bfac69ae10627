package source

import (
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/rzbill/rewind"
)

func drain[T any](t *testing.T, src rewind.Source[T]) []T {
	t.Helper()
	var out []T
	for {
		v, ok := src.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestFromSlice(t *testing.T) {
	src := FromSlice([]int{1, 2, 3})
	got := drain(t, src)
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("drained %v, want [1 2 3]", got)
	}
	if _, ok := src.Next(); ok {
		t.Fatal("Next() after exhaustion reported ok")
	}
}

func TestFromChan(t *testing.T) {
	ch := make(chan string, 3)
	ch <- "a"
	ch <- "b"
	close(ch)

	src := FromChan(ch)
	got := drain(t, src)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("drained %v, want [a b]", got)
	}
}

func TestFromFunc(t *testing.T) {
	n := 0
	src := FromFunc(func() (int, bool) {
		if n >= 3 {
			return 0, false
		}
		n++
		return n * 10, true
	})
	got := drain(t, src)
	if len(got) != 3 || got[2] != 30 {
		t.Fatalf("drained %v, want [10 20 30]", got)
	}
}

func TestFromSeq(t *testing.T) {
	seq := iter.Seq[int](func(yield func(int) bool) {
		for i := range 4 {
			if !yield(i) {
				return
			}
		}
	})
	got := drain(t, FromSeq(seq))
	if len(got) != 4 || got[3] != 3 {
		t.Fatalf("drained %v, want [0 1 2 3]", got)
	}
}

func TestFilter(t *testing.T) {
	src := Filter(FromSlice([]int{1, 2, 3, 4, 5, 6}), func(v int) bool { return v%2 == 0 })
	got := drain(t, src)
	if len(got) != 3 || got[0] != 2 || got[2] != 6 {
		t.Fatalf("drained %v, want [2 4 6]", got)
	}
}

func TestLines(t *testing.T) {
	src := Lines(strings.NewReader("one\ntwo\nthree\n"))
	got := drain[string](t, src)
	if len(got) != 3 || got[0] != "one" || got[2] != "three" {
		t.Fatalf("drained %v, want [one two three]", got)
	}
	if src.Err() != nil {
		t.Fatalf("Err() = %v, want nil", src.Err())
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestLinesSurfacesReadError(t *testing.T) {
	wantErr := errors.New("disk gone")
	src := Lines(failingReader{err: wantErr})
	if _, ok := src.Next(); ok {
		t.Fatal("Next() on failing reader reported ok")
	}
	if !errors.Is(src.Err(), wantErr) {
		t.Fatalf("Err() = %v, want %v", src.Err(), wantErr)
	}
}

func TestLinesFeedRecorder(t *testing.T) {
	rec := rewind.NewRecorder[string](Lines(strings.NewReader("x\ny\n")))
	cur := rec.Copying()

	if v, _ := cur.Next(); v != "x" {
		t.Fatalf("Next() = %q, want x", v)
	}
	if v, _ := cur.Next(); v != "y" {
		t.Fatalf("Next() = %q, want y", v)
	}
	cur.StartAgain()
	if v, _ := cur.Next(); v != "x" {
		t.Fatalf("replayed Next() = %q, want x", v)
	}
}
