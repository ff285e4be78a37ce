package parser

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"fppatch/pkg/source"
)

// DefaultHeader matches the opening line of an interpreter opcode handler,
// e.g. "void dppc_interpreter::ppc_fadds(uint32_t opcode) {".
// Group 1: handler identifier without the "ppc_" prefix.
const DefaultHeader = `^void\s+dppc_interpreter::ppc_(\w+)\s*\(`

// ParseSourceFile reads the whole file into memory and splits it into lines.
// Nothing is written back here; see rewrite.UpdateFile.
func ParseSourceFile(filename string) (*source.File, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ParseSource(filename, string(content)), nil
}

// ParseSource splits content on '\n'. A final newline does not produce an
// extra empty line; any '\r' before a newline stays part of the line text.
func ParseSource(path, content string) *source.File {
	if content == "" {
		return source.NewFile(path, nil, false)
	}
	trailing := strings.HasSuffix(content, "\n")
	texts := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	return source.NewFile(path, texts, trailing)
}

// HeaderPattern recognizes function headers. The pattern is tested against
// the line with leading whitespace removed, so "^" anchors at the first token.
type HeaderPattern struct {
	re *regexp.Regexp
}

// CompileHeader compiles expr, which must contain at least one capture group;
// the first group is taken as the function identifier.
func CompileHeader(expr string) (*HeaderPattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid header pattern %q: %w", expr, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("header pattern %q has no capture group for the identifier", expr)
	}
	return &HeaderPattern{re: re}, nil
}

// MustCompileHeader is like CompileHeader but panics on error.
func MustCompileHeader(expr string) *HeaderPattern {
	h, err := CompileHeader(expr)
	if err != nil {
		panic(err)
	}
	return h
}

// Match reports whether line starts a function and returns its identifier.
func (h *HeaderPattern) Match(line string) (string, bool) {
	matches := h.re.FindStringSubmatch(strings.TrimLeft(line, " \t"))
	if len(matches) < 2 {
		return "", false
	}
	return matches[1], true
}

// String returns the source expression.
func (h *HeaderPattern) String() string {
	return h.re.String()
}
