package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photon-lang/photon/internal/grammar"
)

func parseLine(t *testing.T, src string) *Node {
	t.Helper()
	p := New(grammar.Default)
	toks := Lex(src, "f.w", 1)
	n, err := p.ParseLine(toks)
	require.NoError(t, err)
	require.NotNil(t, n)
	return n
}

func TestParseAssignment(t *testing.T) {
	n := parseLine(t, "x = 1")
	assert.Equal(t, "Assign", n.Reduces)
}

func TestParseIfReducesConditionChild(t *testing.T) {
	n := parseLine(t, "if x:")
	require.Equal(t, "If", n.Reduces)
	require.Len(t, n.Children, 1)
	assert.Equal(t, "Var", n.Children[0].Reduces)
}

func TestParseForExtractsVarsAndIterable(t *testing.T) {
	n := parseLine(t, "for i in items:")
	require.Equal(t, "For", n.Reduces)
	require.Len(t, n.Children, 2)
	assert.Equal(t, "Var", n.Children[0].Reduces)
	assert.Equal(t, "i", n.Children[0].Value())
	assert.Equal(t, "Var", n.Children[1].Reduces)
}

func TestParseForTwoVars(t *testing.T) {
	n := parseLine(t, "for k, v in items:")
	require.Equal(t, "For", n.Reduces)
	require.Len(t, n.Children, 3)
}

func TestParseForWithoutInIsSyntaxError(t *testing.T) {
	p := New(grammar.Default)
	toks := Lex("for i items:", "f.w", 1)
	_, err := p.ParseLine(toks)
	assert.Error(t, err)
}

func TestParsePrintCallArgs(t *testing.T) {
	n := parseLine(t, "print(1, x)")
	require.Equal(t, "Print", n.Reduces)
	require.Len(t, n.Children, 2)
}

func TestParseReturnWithValue(t *testing.T) {
	n := parseLine(t, "return x + 1")
	require.Equal(t, "Return", n.Reduces)
	require.Len(t, n.Children, 1)
	assert.Equal(t, "Expr", n.Children[0].Reduces)
}

func TestParseReturnBare(t *testing.T) {
	n := parseLine(t, "return")
	require.Equal(t, "Return", n.Reduces)
	assert.Empty(t, n.Children)
}

func TestParseBreak(t *testing.T) {
	n := parseLine(t, "break")
	assert.Equal(t, "Break", n.Reduces)
}

func TestParseCommentIsRecognized(t *testing.T) {
	n := parseLine(t, "# a remark")
	assert.Equal(t, "Comment", n.Reduces)
}

func TestHasBeginBlock(t *testing.T) {
	toks := Lex("if x:", "f.w", 1)
	assert.True(t, HasBeginBlock(toks))

	toks = Lex("x = 1", "f.w", 1)
	assert.False(t, HasBeginBlock(toks))
}

func TestParsePrecedenceBindsMultiplyTighterThanAdd(t *testing.T) {
	p := New(grammar.Default)
	toks := Lex("1 + 2 * 3", "f.w", 1)
	toks = stripTrailing(toks, toks[len(toks)-1].Kind)
	n, err := p.reduceExprTokens(toks)
	require.NoError(t, err)
	require.Equal(t, "Expr", n.Reduces)
	assert.Equal(t, "+", n.Value())
	assert.Equal(t, "Expr", n.Children[1].Reduces, "multiplication nests as the right operand")
	assert.Equal(t, "*", n.Children[1].Value())
}

func TestParseDotAccessChain(t *testing.T) {
	p := New(grammar.Default)
	toks := Lex("a.b.c", "f.w", 1)
	toks = stripTrailing(toks, toks[len(toks)-1].Kind)
	n, err := p.reduceExprTokens(toks)
	require.NoError(t, err)
	require.Equal(t, "DotAccess", n.Reduces)
	assert.Equal(t, "c", n.Value())
	assert.Equal(t, "DotAccess", n.Children[0].Reduces)
	assert.Equal(t, "b", n.Children[0].Value())
}

func TestParseIndexExpression(t *testing.T) {
	p := New(grammar.Default)
	toks := Lex("arr[0]", "f.w", 1)
	toks = stripTrailing(toks, toks[len(toks)-1].Kind)
	n, err := p.reduceExprTokens(toks)
	require.NoError(t, err)
	require.Equal(t, "Index", n.Reduces)
	require.Len(t, n.Children, 2)
}

func TestParseArrayLiteral(t *testing.T) {
	n := parseLine(t, "xs = [1, 2, 3]")
	require.Equal(t, "Assign", n.Reduces)
}

func TestParseMapLiteral(t *testing.T) {
	p := New(grammar.Default)
	toks := Lex(`{"a": 1, "b": 2}`, "f.w", 1)
	toks = stripTrailing(toks, toks[len(toks)-1].Kind)
	n, err := p.reduceExprTokens(toks)
	require.NoError(t, err)
	require.Equal(t, "Map", n.Reduces)
	require.Len(t, n.Children, 2)
	assert.Equal(t, "KeyVal", n.Children[0].Reduces)
}
