package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photon-lang/photon/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexAssignment(t *testing.T) {
	toks := Lex("x = 1", "f.w", 1)
	require.Len(t, toks, 4)
	assert.Equal(t, []token.Kind{token.KindVar, token.KindEqual, token.KindNum, token.KindNewline}, kinds(toks))
	assert.Equal(t, "x", toks[0].Value)
	assert.Equal(t, "1", toks[2].Value)
}

func TestLexColonDistinguishesBeginBlockFromSliceColon(t *testing.T) {
	toks := Lex("if x:", "f.w", 1)
	assert.Equal(t, token.KindBeginBlock, toks[len(toks)-2].Kind)

	toks = Lex("a[1:2]", "f.w", 1)
	found := false
	for _, tk := range toks {
		if tk.Kind == token.KindColon {
			found = true
		}
	}
	assert.True(t, found, "mid-line colon lexes as KindColon, not KindBeginBlock")
}

func TestLexString(t *testing.T) {
	toks := Lex(`s = "hello ${name}"`, "f.w", 1)
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, token.KindDoubleQuote, toks[2].Kind)
	assert.Equal(t, "hello ${name}", toks[2].Value)
}

func TestLexOperators(t *testing.T) {
	toks := Lex("x == y", "f.w", 1)
	assert.Equal(t, token.KindOperator, toks[1].Kind)
	assert.Equal(t, "==", toks[1].Value)
}

func TestLexRangeOperator(t *testing.T) {
	toks := Lex("0..10", "f.w", 1)
	assert.Equal(t, token.KindOperator, toks[1].Kind)
	assert.Equal(t, "..", toks[1].Value)
}

func TestLexKeywordVsIdentifier(t *testing.T) {
	toks := Lex("for x in items:", "f.w", 1)
	assert.Equal(t, token.KindFor, toks[0].Kind)
	assert.Equal(t, token.KindVar, toks[1].Kind)
	assert.Equal(t, token.KindIn, toks[2].Kind)
}

func TestLexFloatLiteral(t *testing.T) {
	toks := Lex("x = 3.14", "f.w", 1)
	assert.Equal(t, "3.14", toks[2].Value)
}

func TestLexIndentTracksLeadingWhitespace(t *testing.T) {
	toks := Lex("    x = 1", "f.w", 1)
	assert.Equal(t, 4, toks[0].Indent)
}

func TestLexComment(t *testing.T) {
	toks := Lex("# full line comment", "f.w", 1)
	require.Len(t, toks, 2)
	assert.Equal(t, token.KindHashtag, toks[0].Kind)
}
