// Package diff renders the line changes made by a rewrite using the
// sergi/go-diff library.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineType represents the type of diff line
type LineType int

const (
	LineContext LineType = iota // Unchanged line
	LineAdded                   // Added line
	LineRemoved                 // Removed line
)

// Line represents a single line in the diff
type Line struct {
	OldNum  int // 1-based, 0 for added lines
	NewNum  int // 1-based, 0 for removed lines
	Content string
	Type    LineType
}

// Lines computes a line-level diff between old and new.
func Lines(oldLines, newLines []string) []Line {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	oldText := strings.Join(oldLines, "\n") + "\n"
	newText := strings.Join(newLines, "\n") + "\n"
	a, b, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var out []Line
	oldNum, newNum := 1, 1
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				out = append(out, Line{OldNum: oldNum, NewNum: newNum, Content: text, Type: LineContext})
				oldNum++
				newNum++
			case diffmatchpatch.DiffDelete:
				out = append(out, Line{OldNum: oldNum, Content: text, Type: LineRemoved})
				oldNum++
			case diffmatchpatch.DiffInsert:
				out = append(out, Line{NewNum: newNum, Content: text, Type: LineAdded})
				newNum++
			}
		}
	}
	return out
}

// Write prints only the changed lines of a diff, "-" for removed and "+" for
// added, each prefixed with its line number.
func Write(w io.Writer, lines []Line) error {
	for _, l := range lines {
		var err error
		switch l.Type {
		case LineRemoved:
			_, err = fmt.Fprintf(w, "-%5d  %s\n", l.OldNum, l.Content)
		case LineAdded:
			_, err = fmt.Fprintf(w, "+%5d  %s\n", l.NewNum, l.Content)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// splitLines splits a diff chunk, which always ends in '\n', into lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
