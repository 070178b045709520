package parser

import (
	"strings"
	"unicode"

	"github.com/photon-lang/photon/internal/assembler"
	"github.com/photon-lang/photon/internal/token"
)

var operators = []string{
	"==", "!=", "<=", ">=", "+=", "-=", "*=", "/=",
	"+", "-", "*", "/", "%", "<", ">",
}

// Lex tokenizes one complete, assembled logical line (see
// internal/assembler) into a token slice terminated by a KindNewline
// token. When the line opens an indented block (ends in ':'), the token
// just before that KindNewline is a KindBeginBlock marker.
func Lex(line string, filename string, lineNo int) []token.Token {
	indent := assembler.Indent(line)
	s := strings.TrimLeft(line, " \t")
	var out []token.Token
	col := indent

	push := func(k token.Kind, v string) {
		out = append(out, token.Token{Kind: k, Value: v, Indent: indent, Line: lineNo, Column: col, Filename: filename})
		col += len(v)
	}

	runes := []rune(s)
	for i := 0; i < len(runes); {
		c := runes[i]
		switch {
		case c == ' ' || c == '\t':
			i++
			col++
		case c == '#':
			push(token.KindHashtag, string(runes[i:]))
			i = len(runes)
		case c == '\'' || c == '"':
			quote := c
			var k token.Kind
			if quote == '\'' {
				k = token.KindSingleQuote
			} else {
				k = token.KindDoubleQuote
			}
			j := i + 1
			for j < len(runes) && runes[j] != quote {
				if runes[j] == '\\' {
					j++
				}
				j++
			}
			val := string(runes[i+1 : min(j, len(runes))])
			push(k, val)
			i = j + 1
		case unicode.IsDigit(c):
			j := i
			isFloat := false
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				if runes[j] == '.' {
					if j+1 < len(runes) && runes[j+1] == '.' {
						break
					}
					isFloat = true
				}
				j++
			}
			_ = isFloat
			push(token.KindNum, string(runes[i:j]))
			i = j
		case c == '.':
			if i+1 < len(runes) && runes[i+1] == '.' {
				push(token.KindOperator, "..")
				i += 2
			} else {
				push(token.KindDot, ".")
				i++
			}
		case c == '(':
			push(token.KindLParen, "(")
			i++
		case c == ')':
			push(token.KindRParen, ")")
			i++
		case c == '[':
			push(token.KindLBrk, "[")
			i++
		case c == ']':
			push(token.KindRBrk, "]")
			i++
		case c == '{':
			push(token.KindLBrace, "{")
			i++
		case c == '}':
			push(token.KindRBrace, "}")
			i++
		case c == ',':
			push(token.KindComma, ",")
			i++
		case c == ':':
			if i+1 >= len(runes) || strings.TrimSpace(string(runes[i+1:])) == "" {
				push(token.KindBeginBlock, ":")
			} else {
				push(token.KindColon, ":")
			}
			i++
		case c == '_':
			push(token.KindUnderline, "_")
			i++
		case c == '=':
			if i+1 < len(runes) && runes[i+1] == '=' {
				push(token.KindOperator, "==")
				i += 2
			} else {
				push(token.KindEqual, "=")
				i++
			}
		case isOperatorStart(runes, i):
			op := matchOperator(runes, i)
			push(token.KindOperator, op)
			i += len(op)
		case unicode.IsLetter(c):
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			word := string(runes[i:j])
			if k, ok := token.LookupKeyword(word); ok {
				push(k, word)
			} else {
				push(token.KindVar, word)
			}
			i = j
		default:
			i++
		}
	}
	out = append(out, token.Token{Kind: token.KindNewline, Indent: indent, Line: lineNo, Column: col, Filename: filename})
	return out
}

func isOperatorStart(runes []rune, i int) bool {
	return matchOperator(runes, i) != ""
}

func matchOperator(runes []rune, i int) string {
	rest := string(runes[i:])
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			return op
		}
	}
	return ""
}
