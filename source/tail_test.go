package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func tailFixture(t *testing.T, initial string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte(initial), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func appendLines(t *testing.T, path, data string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open for append: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(data); err != nil {
		t.Fatalf("append: %v", err)
	}
}

func nextLine(t *testing.T, src *TailSource) string {
	t.Helper()
	type result struct {
		v  string
		ok bool
	}
	ch := make(chan result, 1)
	go func() {
		v, ok := src.Next()
		ch <- result{v, ok}
	}()
	select {
	case r := <-ch:
		if !r.ok {
			t.Fatal("source exhausted while a line was expected")
		}
		return r.v
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a line")
		return ""
	}
}

func TestTailFromStart(t *testing.T) {
	path := tailFixture(t, "first\nsecond\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, err := Tail(ctx, path, TailOptions{FromStart: true, PollInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}

	if got := nextLine(t, src); got != "first" {
		t.Fatalf("line = %q, want first", got)
	}
	if got := nextLine(t, src); got != "second" {
		t.Fatalf("line = %q, want second", got)
	}
}

func TestTailFollowsAppends(t *testing.T) {
	path := tailFixture(t, "old\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, err := Tail(ctx, path, TailOptions{PollInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}

	appendLines(t, path, "fresh\n")
	if got := nextLine(t, src); got != "fresh" {
		t.Fatalf("line = %q, want fresh (pre-existing content must be skipped)", got)
	}
}

func TestTailBuffersPartialLines(t *testing.T) {
	path := tailFixture(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, err := Tail(ctx, path, TailOptions{FromStart: true, PollInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}

	appendLines(t, path, "half")
	appendLines(t, path, "-done\nnext\n")
	if got := nextLine(t, src); got != "half-done" {
		t.Fatalf("line = %q, want half-done", got)
	}
	if got := nextLine(t, src); got != "next" {
		t.Fatalf("line = %q, want next", got)
	}
}

func TestTailCancelExhausts(t *testing.T) {
	path := tailFixture(t, "")
	ctx, cancel := context.WithCancel(context.Background())

	src, err := Tail(ctx, path, TailOptions{PollInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}

	cancel()
	done := make(chan bool, 1)
	go func() {
		_, ok := src.Next()
		done <- ok
	}()
	select {
	case ok := <-done:
		if ok {
			t.Fatal("Next() reported ok after cancellation")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Next() did not observe cancellation")
	}
}

func TestTailMissingFile(t *testing.T) {
	if _, err := Tail(context.Background(), filepath.Join(t.TempDir(), "absent.log"), TailOptions{}); err == nil {
		t.Fatal("Tail on a missing file succeeded")
	}
}
