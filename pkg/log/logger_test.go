package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func newBufLogger(opts ...LoggerOption) (Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	opts = append(opts, WithOutput(NewWriterOutput(&buf)))
	return NewLogger(opts...), &buf
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"", InfoLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
	}
	for _, c := range cases {
		got, err := ParseLevel(c.in)
		if err != nil || got != c.want {
			t.Fatalf("ParseLevel(%q) = %v, %v, want %v", c.in, got, err, c.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("ParseLevel accepted an unknown level")
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufLogger(WithLevel(WarnLevel))

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")
	logger.Error("also shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("entries below level leaked: %q", out)
	}
	if !strings.Contains(out, "WARN shown") || !strings.Contains(out, "ERROR also shown") {
		t.Fatalf("expected entries missing: %q", out)
	}
}

func TestSetLevel(t *testing.T) {
	logger, buf := newBufLogger()
	logger.Debug("dropped")
	logger.SetLevel(DebugLevel)
	logger.Debug("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
		t.Fatalf("SetLevel not applied: %q", out)
	}
}

func TestWithAttachesFields(t *testing.T) {
	logger, buf := newBufLogger()
	child := logger.With(Str("component", "replay"), Int("workers", 3))
	child.Info("starting", Bool("resume", true))

	out := buf.String()
	for _, want := range []string{"component=replay", "workers=3", "resume=true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("field %q missing from %q", want, out)
		}
	}

	// The parent logger is not mutated by With.
	buf.Reset()
	logger.Info("plain")
	if strings.Contains(buf.String(), "component=") {
		t.Fatalf("With leaked fields into the parent: %q", buf.String())
	}
}

func TestTextFormatterSortsFields(t *testing.T) {
	logger, buf := newBufLogger()
	logger.Info("msg", Str("zeta", "1"), Str("alpha", "2"), Err(errors.New("boom")))

	out := buf.String()
	if strings.Index(out, "alpha=") > strings.Index(out, "zeta=") {
		t.Fatalf("fields not sorted: %q", out)
	}
	if !strings.Contains(out, "error=boom") {
		t.Fatalf("error field missing: %q", out)
	}
}

func TestJSONFormatter(t *testing.T) {
	logger, buf := newBufLogger(WithFormatter(&JSONFormatter{}))
	logger.Info("hello", Uint64("point", 42))

	var obj map[string]any
	if err := json.Unmarshal(buf.Bytes(), &obj); err != nil {
		t.Fatalf("output not JSON: %v (%q)", err, buf.String())
	}
	if obj["msg"] != "hello" || obj["level"] != "INFO" {
		t.Fatalf("entry fields wrong: %v", obj)
	}
	if obj["point"] != float64(42) {
		t.Fatalf("point = %v, want 42", obj["point"])
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("nowhere")
	logger.With(Str("k", "v")).Error("still nowhere")
	logger.SetLevel(DebugLevel)
}
