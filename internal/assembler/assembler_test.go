package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedSimpleLine(t *testing.T) {
	a := New()
	line, done := a.Feed("x = 1")
	require.True(t, done)
	assert.Equal(t, "x = 1", line)
}

func TestFeedBlankAndCommentOnlyLinesAreDropped(t *testing.T) {
	a := New()
	line, done := a.Feed("   ")
	require.True(t, done)
	assert.Equal(t, "", line)

	line, done = a.Feed("# a comment")
	require.True(t, done)
	assert.Equal(t, "", line)
}

func TestFeedBracketContinuation(t *testing.T) {
	a := New()
	_, done := a.Feed("items = [1, 2,")
	require.False(t, done)
	assert.Equal(t, PromptContinuation, a.Prompt())

	line, done := a.Feed("3]")
	require.True(t, done)
	assert.Equal(t, "items = [1, 2,\n3]", line)
	assert.Equal(t, PromptPrimary, a.Prompt())
}

func TestFeedTrailingCommaContinuation(t *testing.T) {
	a := New()
	_, done := a.Feed("f(1,")
	require.False(t, done)

	line, done := a.Feed("2)")
	require.True(t, done)
	assert.Equal(t, "f(1,\n2)", line)
}

func TestFeedBackslashContinuation(t *testing.T) {
	a := New()
	_, done := a.Feed("x = 1 + \\")
	require.False(t, done)

	line, done := a.Feed("2")
	require.True(t, done)
	assert.Equal(t, "x = 1 + \\\n2", line)
}

func TestFeedIgnoresBracketsInsideQuotes(t *testing.T) {
	a := New()
	line, done := a.Feed(`s = "(not a bracket"`)
	require.True(t, done)
	assert.Equal(t, `s = "(not a bracket"`, line)
}

func TestFeedStripsCRLF(t *testing.T) {
	a := New()
	line, done := a.Feed("x = 1\r\n")
	require.True(t, done)
	assert.Equal(t, "x = 1", line)
}

func TestIndent(t *testing.T) {
	assert.Equal(t, 0, Indent("x = 1"))
	assert.Equal(t, 4, Indent("    x = 1"))
	assert.Equal(t, 2, Indent("\t\tx = 1"))
}
