package source

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rzbill/rewind/pkg/log"
)

// TailOptions configures a file-following source.
type TailOptions struct {
	// FromStart reads the file from the beginning instead of seeking to
	// the end before following.
	FromStart bool
	// PollInterval is the fallback scan interval for filesystems where
	// change notification is unreliable. Defaults to 1s.
	PollInterval time.Duration
	// Logger receives follow diagnostics (truncation, reopen, watch
	// errors). Defaults to a nop logger.
	Logger log.Logger
}

// TailSource follows a file and yields complete lines as they are appended.
// Next blocks until a line is available and reports exhaustion once ctx is
// canceled. Truncation resets the read position to the start of the file.
type TailSource struct {
	lines chan string
}

// Tail opens path and begins following it.
func Tail(ctx context.Context, path string, opts TailOptions) (*TailSource, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}

	var offset int64
	if !opts.FromStart {
		if info, err := f.Stat(); err == nil {
			offset = info.Size()
		}
	}

	t := &TailSource{lines: make(chan string)}
	go t.follow(ctx, f, path, offset, opts)
	return t, nil
}

// Next yields the next appended line, or ok=false once the follow context
// is canceled.
func (t *TailSource) Next() (string, bool) {
	v, ok := <-t.lines
	return v, ok
}

func (t *TailSource) follow(ctx context.Context, f *os.File, path string, offset int64, opts TailOptions) {
	defer close(t.lines)
	defer f.Close()

	logger := opts.Logger.With(log.Str("path", path))

	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		if werr := watcher.Add(path); werr != nil {
			logger.Warn("watch failed, falling back to polling", log.Err(werr))
		}
		defer watcher.Close()
	} else {
		logger.Warn("fsnotify unavailable, falling back to polling", log.Err(err))
	}

	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	var partial []byte
	// Drain whatever is already past the starting offset before waiting.
	offset = t.read(ctx, f, offset, &partial, logger)

	for {
		var events chan fsnotify.Event
		var werrs chan error
		if watcher != nil {
			events = watcher.Events
			werrs = watcher.Errors
		}
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				offset = t.read(ctx, f, offset, &partial, logger)
			}
		case werr, ok := <-werrs:
			if !ok {
				return
			}
			logger.Warn("fsnotify error", log.Err(werr))
		case <-ticker.C:
			offset = t.read(ctx, f, offset, &partial, logger)
		}
	}
}

// read emits all complete lines appended since offset and returns the new
// offset. A trailing partial line is buffered until its newline arrives.
func (t *TailSource) read(ctx context.Context, f *os.File, offset int64, partial *[]byte, logger log.Logger) int64 {
	info, err := f.Stat()
	if err != nil {
		logger.Warn("stat failed during read", log.Err(err))
		return offset
	}
	if info.Size() < offset {
		logger.Info("truncation detected, resetting")
		offset = 0
		*partial = nil
	}
	if info.Size() == offset {
		return offset
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		logger.Warn("seek failed", log.Err(err))
		return offset
	}

	r := bufio.NewReader(f)
	for {
		chunk, err := r.ReadBytes('\n')
		if len(chunk) > 0 {
			offset += int64(len(chunk))
		}
		if err != nil {
			// Incomplete line; keep it for the next append.
			*partial = append(*partial, chunk...)
			return offset
		}
		line := append(*partial, chunk...)
		*partial = nil
		// Trim the newline and an optional \r before it.
		line = line[:len(line)-1]
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		select {
		case t.lines <- string(line):
		case <-ctx.Done():
			return offset
		}
	}
}
