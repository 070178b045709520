// Package grammar holds photon's grammar table: a fixed set of
// token-kind tuples and the reduction name each one produces (spec.md
// §4.C). The parser picks a statement form by switching on the leading
// token kind and reads the table only to name the reduction it builds,
// so adding a Rule does not by itself make the parser accept a new form.
package grammar

import "github.com/photon-lang/photon/internal/token"

// Rule is one entry of the grammar table: Pattern lists the token kinds
// that must appear, top-of-stack last, for the rule to fire; Reduces
// names the IR/parse-node kind the match collapses to.
type Rule struct {
	Pattern []token.Kind
	Reduces string
}

// Table is an ordered list of Rules. Reduction returns the first Rule
// whose pattern matches exactly; no stack-based matching or backtracking
// is done over it.
type Table []Rule

// Default is the grammar table wired for every photon source construct
// named in spec.md §3/§4. Multi-token literals (numbers, strings) are
// assumed already collapsed to a single KindNum/KindSingleQuote-delimited
// token by the lexer before the parser ever sees them; Default
// therefore works at the granularity of already-tokenized lines.
var Default = Table{
	{Pattern: []token.Kind{token.KindVar}, Reduces: "Var"},
	{Pattern: []token.Kind{token.KindNum}, Reduces: "Num"},
	{Pattern: []token.Kind{token.KindBool}, Reduces: "Bool"},
	{Pattern: []token.Kind{token.KindNull}, Reduces: "Null"},
	{Pattern: []token.Kind{token.KindSingleQuote}, Reduces: "String"},
	{Pattern: []token.Kind{token.KindDoubleQuote}, Reduces: "String"},

	{Pattern: []token.Kind{token.KindLParen, token.KindRParen}, Reduces: "Group"},
	{Pattern: []token.Kind{token.KindLBrk, token.KindRBrk}, Reduces: "Array"},
	{Pattern: []token.Kind{token.KindLBrace, token.KindRBrace}, Reduces: "Map"},

	{Pattern: []token.Kind{token.KindVar, token.KindEqual}, Reduces: "Assign"},
	{Pattern: []token.Kind{token.KindVar, token.KindOperator, token.KindEqual}, Reduces: "AugAssign"},

	{Pattern: []token.Kind{token.KindVar, token.KindOperator}, Reduces: "Expr"},
	{Pattern: []token.Kind{token.KindVar, token.KindDot}, Reduces: "DotAccess"},
	{Pattern: []token.Kind{token.KindVar, token.KindLParen}, Reduces: "Call"},

	{Pattern: []token.Kind{token.KindIf}, Reduces: "If"},
	{Pattern: []token.Kind{token.KindElif}, Reduces: "Elif"},
	{Pattern: []token.Kind{token.KindElse}, Reduces: "Else"},
	{Pattern: []token.Kind{token.KindWhile}, Reduces: "While"},
	{Pattern: []token.Kind{token.KindFor, token.KindIn}, Reduces: "For"},
	{Pattern: []token.Kind{token.KindDef}, Reduces: "Function"},
	{Pattern: []token.Kind{token.KindClass}, Reduces: "Class"},
	{Pattern: []token.Kind{token.KindReturn}, Reduces: "Return"},
	{Pattern: []token.Kind{token.KindBreak}, Reduces: "Break"},
	{Pattern: []token.Kind{token.KindImport}, Reduces: "Import"},
	{Pattern: []token.Kind{token.KindFrom, token.KindImport}, Reduces: "FromImport"},
	{Pattern: []token.Kind{token.KindPrint}, Reduces: "Print"},
	{Pattern: []token.Kind{token.KindInput}, Reduces: "Input"},
	{Pattern: []token.Kind{token.KindType}, Reduces: "Cast"},
	{Pattern: []token.Kind{token.KindDelete}, Reduces: "Delete"},
	{Pattern: []token.Kind{token.KindOpen}, Reduces: "Open"},
	{Pattern: []token.Kind{token.KindHashtag}, Reduces: "Comment"},
}

// Reduction looks up the reduction kind bound to an exact pattern, used by
// tests and by the parser to name the node it builds.
func (t Table) Reduction(pattern ...token.Kind) (string, bool) {
	for _, r := range t {
		if len(r.Pattern) != len(pattern) {
			continue
		}
		match := true
		for i := range pattern {
			if r.Pattern[i] != pattern[i] {
				match = false
				break
			}
		}
		if match {
			return r.Reduces, true
		}
	}
	return "", false
}

// Precedence assigns binding power to operator tokens for the parser's
// shunting-yard reassociation pass (internal/parser/precedence.go).
// Higher binds tighter. Boolean operators bind loosest, then comparisons
// and `is`; operators not listed here get tier 0 (see PrecedenceOf).
var Precedence = map[string]int{
	"or":  1,
	"and": 2,
	"not": 3,

	"is": 4, "==": 4, "!=": 4, "<": 4, ">": 4, "<=": 4, ">=": 4,

	"+": 5, "-": 5,

	"*": 6, "/": 6, "%": 6,
}

// PrecedenceOf returns the binding power of op, defaulting to the lowest
// tier (0) for any operator Precedence does not name, so that unknown
// operators never accidentally out-bind a known one.
func PrecedenceOf(op string) int {
	if p, ok := Precedence[op]; ok {
		return p
	}
	return 0
}
