package rewrite

import (
	"bytes"
	"fmt"
)

var _ LineRewriter = (*BufferRewriter)(nil)

// BufferRewriter implements LineRewriter over lines already held in memory.
type BufferRewriter struct {
	lines  []string
	output bytes.Buffer
	lineNo int // how many original lines have been consumed so far
}

// NewBufferRewriter constructs a BufferRewriter over the original lines.
func NewBufferRewriter(lines []string) *BufferRewriter {
	return &BufferRewriter{lines: lines}
}

// CopyLinesUntil writes original lines up to lineIndex (exclusive).
func (rw *BufferRewriter) CopyLinesUntil(lineIndex int) error {
	if lineIndex > len(rw.lines) {
		return fmt.Errorf("line %d out of range (%d lines)", lineIndex, len(rw.lines))
	}
	for rw.lineNo < lineIndex {
		rw.writeLine(rw.lines[rw.lineNo])
		rw.lineNo++
	}
	return nil
}

// ReplaceLine writes text instead of original line lineIndex.
func (rw *BufferRewriter) ReplaceLine(lineIndex int, text string) error {
	if lineIndex < rw.lineNo {
		return fmt.Errorf("line %d already written", lineIndex)
	}
	if lineIndex >= len(rw.lines) {
		return fmt.Errorf("line %d out of range (%d lines)", lineIndex, len(rw.lines))
	}
	if err := rw.CopyLinesUntil(lineIndex); err != nil {
		return err
	}
	rw.writeLine(text)
	rw.lineNo++
	return nil
}

// CopyRemainingLines writes all lines from the current position through the end.
func (rw *BufferRewriter) CopyRemainingLines() error {
	return rw.CopyLinesUntil(len(rw.lines))
}

// Bytes returns the rewritten buffer. An empty input still yields a single
// newline so the output always ends with exactly one.
func (rw *BufferRewriter) Bytes() []byte {
	if rw.output.Len() == 0 {
		return []byte("\n")
	}
	return rw.output.Bytes()
}

func (rw *BufferRewriter) writeLine(text string) {
	rw.output.WriteString(text)
	rw.output.WriteByte('\n')
}
