package rewind

import "testing"

func TestSliceIterationAndBacktrack(t *testing.T) {
	s := NewSlice([]string{"a", "b", "c"})

	for _, want := range []string{"a", "b", "c"} {
		got, ok := s.Next()
		if !ok || got != want {
			t.Fatalf("Next() = %q, %v, want %q, true", got, ok, want)
		}
	}
	if _, ok := s.Next(); ok {
		t.Fatal("Next() past the end reported ok")
	}

	s.Backtrack(1)
	if got, _ := s.Next(); got != "b" {
		t.Fatalf("after Backtrack(1): Next() = %q, want b", got)
	}

	s.StartAgain()
	if got, _ := s.Next(); got != "a" {
		t.Fatalf("after StartAgain: Next() = %q, want a", got)
	}
}

func TestSliceRefPointAndLen(t *testing.T) {
	s := NewSlice([]int{10, 20, 30, 40})

	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
	if s.OldestPoint() != 0 {
		t.Fatalf("OldestPoint() = %d, want 0", s.OldestPoint())
	}
	s.Next()
	s.Next()
	if s.RefPoint() != 2 {
		t.Fatalf("RefPoint() = %d, want 2", s.RefPoint())
	}
}

func TestSliceOutOfRangeBacktrack(t *testing.T) {
	s := NewSlice([]int{1, 2})
	s.Backtrack(99)
	if _, ok := s.Next(); ok {
		t.Fatal("Next() after out-of-range Backtrack reported ok")
	}
	s.Backtrack(1)
	if got, ok := s.Next(); !ok || got != 2 {
		t.Fatalf("Next() = %d, %v, want 2, true", got, ok)
	}
}

func TestSliceRange(t *testing.T) {
	s := NewSlice([]int{1, 2, 3, 4, 5})

	sub, ok := s.Range(1, 4)
	if !ok {
		t.Fatal("Range(1, 4) not ok")
	}
	if len(sub) != 3 || sub[0] != 2 || sub[2] != 4 {
		t.Fatalf("Range(1, 4) = %v, want [2 3 4]", sub)
	}

	if sub, ok := s.Range(2, 2); !ok || len(sub) != 0 {
		t.Fatalf("Range(2, 2) = %v, %v, want empty, true", sub, ok)
	}
	if _, ok := s.Range(3, 2); ok {
		t.Fatal("inverted Range reported ok")
	}
	if _, ok := s.Range(0, 6); ok {
		t.Fatal("out-of-bounds Range reported ok")
	}
}

func TestSliceSharesBacking(t *testing.T) {
	items := []int{1, 2, 3}
	s := NewSlice(items)
	items[1] = 20

	s.Backtrack(1)
	if got, _ := s.Next(); got != 20 {
		t.Fatalf("Next() = %d, want mutation visible through shared backing", got)
	}
}

var _ Backtracking[string] = (*Slice[string])(nil)
