package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/photon-lang/photon/internal/token"
)

func TestReductionExactMatch(t *testing.T) {
	reduces, ok := Default.Reduction(token.KindVar, token.KindEqual)
	assert.True(t, ok)
	assert.Equal(t, "Assign", reduces)
}

func TestReductionNoMatch(t *testing.T) {
	_, ok := Default.Reduction(token.KindColon, token.KindColon)
	assert.False(t, ok)
}

func TestPrecedenceOfKnownOperators(t *testing.T) {
	assert.Equal(t, 6, PrecedenceOf("*"))
	assert.Equal(t, 5, PrecedenceOf("+"))
	assert.Equal(t, 1, PrecedenceOf("or"))
	assert.Greater(t, PrecedenceOf("*"), PrecedenceOf("+"))
	assert.Greater(t, PrecedenceOf("+"), PrecedenceOf("and"))
}

func TestPrecedenceOfUnknownOperatorIsLowest(t *testing.T) {
	assert.Equal(t, 0, PrecedenceOf("??"))
}
