package source

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Line is one line of a source file, without its line terminator.
type Line struct {
	Index int    // 0-based ordinal position in the file
	Text  string // raw text, trailing whitespace preserved
}

// File is the in-memory image of a source file, read once before any rewriting.
type File struct {
	Path            string
	Lines           []Line
	TrailingNewline bool // whether the input ended with '\n'
}

// Texts returns the raw text of every line, in order.
func (f *File) Texts() []string {
	texts := make([]string, len(f.Lines))
	for i, l := range f.Lines {
		texts[i] = l.Text
	}
	return texts
}

// Hash returns a hex sha256 of the file content as it would be written back.
func (f *File) Hash() string {
	sum := sha256.Sum256([]byte(Content(f.Texts())))
	return hex.EncodeToString(sum[:])
}

// Content joins lines and terminates the result with exactly one newline,
// whatever the convention of the original input was.
func Content(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

// NewFile builds a File from already split lines.
func NewFile(path string, texts []string, trailingNewline bool) *File {
	lines := make([]Line, len(texts))
	for i, t := range texts {
		lines[i] = Line{Index: i, Text: t}
	}
	return &File{Path: path, Lines: lines, TrailingNewline: trailingNewline}
}
