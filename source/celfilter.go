package source

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/rzbill/rewind"
)

// CELFilter wraps a compiled CEL predicate evaluated per line. When built
// from an empty expression the filter is disabled and admits everything.
//
// Available variables:
//
//	line:   1-based line number (int)
//	text:   the raw line (string)
//	size:   line length in bytes (int)
//	json:   the line parsed as JSON, or null when it is not JSON (dyn)
//	now_ms: current wall time in ms (int)
type CELFilter struct {
	prog    cel.Program
	enabled bool
}

// NewCELFilter compiles expr into a line predicate.
func NewCELFilter(expr string) (CELFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return CELFilter{}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("line", cel.IntType),
		cel.Variable("text", cel.StringType),
		cel.Variable("size", cel.IntType),
		cel.Variable("json", cel.DynType),
		cel.Variable("now_ms", cel.IntType),
	)
	if err != nil {
		return CELFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return CELFilter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return CELFilter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return CELFilter{}, err
	}
	return CELFilter{prog: prog, enabled: true}, nil
}

// Enabled reports whether a non-empty expression was compiled.
func (f CELFilter) Enabled() bool { return f.enabled }

// Eval evaluates the predicate against line number n and its text. A filter
// built from an empty expression admits everything; evaluation errors
// reject the line.
func (f CELFilter) Eval(n int, text string) bool {
	if !f.enabled {
		return true
	}
	var jsonObj any
	_ = json.Unmarshal([]byte(text), &jsonObj)
	out, _, err := f.prog.Eval(map[string]any{
		"line":   int64(n),
		"text":   text,
		"size":   int64(len(text)),
		"json":   jsonObj,
		"now_ms": time.Now().UnixMilli(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}

// FilterLines applies f to a line source, numbering lines from 1 in source
// order (the numbering counts all lines seen, including rejected ones).
func FilterLines(src rewind.Source[string], f CELFilter) rewind.Source[string] {
	n := 0
	return Filter(src, func(text string) bool {
		n++
		return f.Eval(n, text)
	})
}
