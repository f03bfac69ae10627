package source

import (
	"bufio"
	"io"
)

// LineSource yields the lines of a reader, without trailing newlines.
type LineSource struct {
	sc   *bufio.Scanner
	err  error
	done bool
}

// Lines wraps r in a line-splitting source. Lines longer than the default
// bufio.Scanner limit surface through Err after exhaustion.
func Lines(r io.Reader) *LineSource {
	return &LineSource{sc: bufio.NewScanner(r)}
}

// Next yields the next line, or ok=false at end of input or on a read
// error.
func (l *LineSource) Next() (string, bool) {
	if l.done {
		return "", false
	}
	if !l.sc.Scan() {
		l.done = true
		l.err = l.sc.Err()
		return "", false
	}
	return l.sc.Text(), true
}

// Err reports the read error that terminated the source, if any. It is nil
// on clean end of input.
func (l *LineSource) Err() error { return l.err }
