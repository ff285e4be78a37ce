// Package tracker follows function boundaries through brace-delimited source
// one line at a time, without building a syntax tree.
//
// Braces are counted literally: a '{' or '}' inside a string or comment counts
// the same as a structural one, so inputs whose literal text holds unbalanced
// braces will desynchronize the depth. Masking string and comment spans before
// counting would be required for stricter tracking.
package tracker

import (
	"strings"

	"fppatch/internal/classify"
	"fppatch/internal/parser"
)

const (
	openDelim  = "{"
	closeDelim = "}"
)

// Scope is where the scan currently sits relative to a detected function.
type Scope int

const (
	Outside Scope = iota
	Header        // header seen, body brace not reached yet
	Inside
)

func (s Scope) String() string {
	switch s {
	case Header:
		return "header"
	case Inside:
		return "inside"
	default:
		return "outside"
	}
}

// State is the whole tracker state between two lines. It is a plain value:
// Step never mutates its input, so a scan is a fold over the line sequence.
type State struct {
	Scope    Scope
	Function string            // identifier of the current function, empty before the first header
	Decision classify.Decision // fixed when the header is seen
	Depth    int               // unmatched '{' minus '}' since the header
	Parens   int               // unmatched '(' minus ')' since the header, tracked in Header scope
	Params   bool              // the header's parameter list has closed
	Header   bool              // the line just stepped was a header
}

// Qualifying reports whether the line just stepped lies inside the body of
// a function whose classification is true. Header lines before the body
// brace never qualify.
func (s State) Qualifying() bool {
	return s.Scope == Inside && s.Decision.Qualifies
}

// Classifier is the subset of classify.Classifier the tracker needs.
type Classifier interface {
	Classify(id string) classify.Decision
}

// Tracker holds the immutable inputs of a scan: how to spot a header and how
// to classify the function it opens.
type Tracker struct {
	header     *parser.HeaderPattern
	classifier Classifier
}

// New creates a Tracker.
func New(header *parser.HeaderPattern, classifier Classifier) *Tracker {
	return &Tracker{header: header, classifier: classifier}
}

// Step advances st over one line and returns the state that applies to it.
//
// A header starts a new scope, superseding any scope still open: depth resets
// and the classification is computed once. Braces are then counted. The scope
// ends when depth is at or below zero and the line has no opening brace.
//
// Until the body brace the scope stays in Header, so a parameter list spread
// over several lines does not close it. A ';' or '}' seen before the body
// means the header was only a declaration. Once the parameter list has
// closed, a later brace opens the body only when it starts its line; any
// other braced line means the header had no body here and the scope ends.
func (t *Tracker) Step(st State, line string) State {
	st.Header = false
	if id, ok := t.header.Match(line); ok {
		st = State{
			Scope:    Header,
			Function: id,
			Decision: t.classifier.Classify(id),
			Header:   true,
		}
	}

	opens := strings.Contains(line, openDelim)
	st.Depth += strings.Count(line, openDelim)
	st.Depth -= strings.Count(line, closeDelim)

	switch st.Scope {
	case Header:
		closedBefore := st.Params
		st.Parens += strings.Count(line, "(") - strings.Count(line, ")")
		closesHere := !closedBefore && st.Parens <= 0 && strings.Contains(line, ")")
		if closesHere {
			st.Params = true
		}
		switch {
		case opens && (closesHere || strings.HasPrefix(strings.TrimLeft(line, " \t"), openDelim)):
			st.Scope = Inside
		case opens && closedBefore:
			st.Scope = Outside
		case opens:
			// brace inside the parameter list, e.g. a default argument
		case strings.Contains(line, ";"), strings.Contains(line, closeDelim):
			st.Scope = Outside
		}
	case Inside:
		if st.Depth <= 0 && !opens {
			st.Scope = Outside
		}
	}
	return st
}

// Scan steps through lines from the zero State and returns the state that
// applies to each line. It is the fold the rewrite engine runs.
func (t *Tracker) Scan(lines []string) []State {
	states := make([]State, len(lines))
	var st State
	for i, line := range lines {
		st = t.Step(st, line)
		states[i] = st
	}
	return states
}
