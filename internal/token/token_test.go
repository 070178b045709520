package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		name    string
		ident   string
		expKind Kind
		expOK   bool
	}{
		{name: "if keyword", ident: "if", expKind: KindIf, expOK: true},
		{name: "none aliases null", ident: "none", expKind: KindNull, expOK: true},
		{name: "true is bool", ident: "true", expKind: KindBool, expOK: true},
		{name: "plain identifier", ident: "velocity", expKind: KindVar, expOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, ok := LookupKeyword(tt.ident)
			assert.Equal(t, tt.expOK, ok)
			if ok {
				assert.Equal(t, tt.expKind, k)
			}
		})
	}
}

func TestBracketPredicates(t *testing.T) {
	assert.True(t, IsOpenBracket(KindLParen))
	assert.True(t, IsOpenBracket(KindLBrk))
	assert.True(t, IsOpenBracket(KindLBrace))
	assert.False(t, IsOpenBracket(KindRParen))

	assert.True(t, IsCloseBracket(KindRBrace))
	assert.False(t, IsCloseBracket(KindVar))
}

func TestBracketDelta(t *testing.T) {
	assert.Equal(t, 1, BracketDelta(KindLParen))
	assert.Equal(t, -1, BracketDelta(KindRBrk))
	assert.Equal(t, 0, BracketDelta(KindComma))
}
