package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferRewriter(t *testing.T) {
	rw := NewBufferRewriter([]string{"a", "b", "c", "d"})

	require.NoError(t, rw.ReplaceLine(1, "B"))
	require.NoError(t, rw.ReplaceLine(3, "D"))
	require.NoError(t, rw.CopyRemainingLines())
	assert.Equal(t, "a\nB\nc\nD\n", string(rw.Bytes()))
}

func TestBufferRewriter_Errors(t *testing.T) {
	rw := NewBufferRewriter([]string{"a", "b"})
	require.NoError(t, rw.ReplaceLine(1, "B"))
	assert.Error(t, rw.ReplaceLine(0, "A"))
	assert.Error(t, rw.ReplaceLine(2, "C"))
	assert.Error(t, rw.CopyLinesUntil(5))
}

func TestBufferRewriter_EmptyInput(t *testing.T) {
	rw := NewBufferRewriter(nil)
	require.NoError(t, rw.CopyRemainingLines())
	assert.Equal(t, "\n", string(rw.Bytes()))
}
