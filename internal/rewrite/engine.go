// Package rewrite applies an ordered table of literal substitutions to the
// lines of qualifying functions and writes the result back in place.
package rewrite

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"fppatch/internal/tracker"
	"fppatch/pkg/source"
)

// Rule replaces every exact occurrence of From with To.
type Rule struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Apply returns line with the rule applied.
func (r Rule) Apply(line string) string {
	return strings.ReplaceAll(line, r.From, r.To)
}

// Change is one output line that differs from its input.
type Change struct {
	Index    int
	Function string
	Before   string
	After    string
}

// Result is the outcome of a rewrite pass.
type Result struct {
	Lines     []string // output lines, same length and order as the input
	Changes   []Change
	Functions int // headers detected
	Qualified int // headers whose classification was true
}

// Changed returns the number of lines whose text differs from the input.
// A line counts once however many rules fired on it.
func (r *Result) Changed() int {
	return len(r.Changes)
}

// Engine runs the tracker over a file and rewrites qualifying lines.
type Engine struct {
	tracker *tracker.Tracker
	rules   []Rule
	logger  *zap.Logger
}

// NewEngine creates an Engine. A nil logger discards output.
func NewEngine(t *tracker.Tracker, rules []Rule, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{tracker: t, rules: rules, logger: logger}
}

// Apply rewrites the lines of f. It does not touch f or the filesystem; the
// result is a pure function of the input lines and the rule table.
func (e *Engine) Apply(f *source.File) *Result {
	texts := f.Texts()
	res := &Result{Lines: make([]string, len(texts))}

	for i, st := range e.tracker.Scan(texts) {
		if st.Header {
			res.Functions++
			if st.Decision.Qualifies {
				res.Qualified++
			}
			e.logger.Debug("function header",
				zap.Int("line", i+1),
				zap.String("function", st.Function),
				zap.Bool("qualifies", st.Decision.Qualifies),
				zap.Stringer("reason", st.Decision.Reason))
		}

		out := texts[i]
		if st.Qualifying() {
			out = e.rewriteLine(out)
		}
		res.Lines[i] = out

		if out != texts[i] {
			res.Changes = append(res.Changes, Change{
				Index:    i,
				Function: st.Function,
				Before:   texts[i],
				After:    out,
			})
			e.logger.Debug("line rewritten", zap.Int("line", i+1), zap.String("function", st.Function))
		}
	}
	return res
}

// rewriteLine tries every rule in order; all that match are applied.
func (e *Engine) rewriteLine(line string) string {
	for _, r := range e.rules {
		line = r.Apply(line)
	}
	return line
}

// Render feeds the changes to rw, which must be positioned at the first
// original line, and returns the assembled buffer. Only changed lines are
// replaced; the rest are copied verbatim.
func (r *Result) Render(rw LineRewriter) ([]byte, error) {
	for _, c := range r.Changes {
		if err := rw.ReplaceLine(c.Index, c.After); err != nil {
			return nil, fmt.Errorf("failed to render line %d: %w", c.Index+1, err)
		}
	}
	if err := rw.CopyRemainingLines(); err != nil {
		return nil, fmt.Errorf("failed to render remaining lines: %w", err)
	}
	return rw.Bytes(), nil
}
