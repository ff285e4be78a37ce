package rewrite

// LineRewriter assembles output at the granularity of whole lines.
type LineRewriter interface {
	// CopyLinesUntil writes original lines [pos..lineIndex-1], positioning the
	// rewriter at lineIndex.
	CopyLinesUntil(lineIndex int) error

	// ReplaceLine copies up to lineIndex, then writes text in place of the
	// original line lineIndex and moves past it.
	ReplaceLine(lineIndex int, text string) error

	// CopyRemainingLines writes all leftover original lines.
	CopyRemainingLines() error

	// Bytes returns the rewritten buffer. Every line, including the last,
	// is terminated by exactly one '\n'.
	Bytes() []byte
}
