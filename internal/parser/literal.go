package parser

import "strings"

// StringPart is one segment of a string literal as split by
// SplitInterpolation: either literal text or the raw source of a `${...}`
// interpolation slot. A literal with no interpolation splits into a
// single Literal segment and no Expr segments.
type StringPart struct {
	Literal string
	Expr    string // non-empty when this slot is an interpolated expression
}

// SplitInterpolation scans a string literal's raw value for `${...}`
// slots (spec.md's interpolated-string form) and returns the ordered
// parts. Backslash-escaped `$` is treated as a literal dollar sign.
func SplitInterpolation(raw string) []StringPart {
	var parts []StringPart
	var lit strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) {
			lit.WriteByte(raw[i+1])
			i++
			continue
		}
		if c == '$' && i+1 < len(raw) && raw[i+1] == '{' {
			if lit.Len() > 0 {
				parts = append(parts, StringPart{Literal: lit.String()})
				lit.Reset()
			}
			j := i + 2
			depth := 1
			for j < len(raw) && depth > 0 {
				if raw[j] == '{' {
					depth++
				} else if raw[j] == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
				j++
			}
			parts = append(parts, StringPart{Expr: raw[i+2 : j]})
			i = j
			continue
		}
		lit.WriteByte(c)
	}
	if lit.Len() > 0 {
		parts = append(parts, StringPart{Literal: lit.String()})
	}
	return parts
}

// ReduceInterpolatedExprs reduces the embedded expression source
// of each interpolation slot in raw, used by internal/engine/types.go
// when building an ir.String's Expressions field.
func (p *Parser) ReduceInterpolatedExprs(raw string, filename string, line int) ([]*Node, error) {
	parts := SplitInterpolation(raw)
	var out []*Node
	for _, part := range parts {
		if part.Expr == "" {
			continue
		}
		toks := Lex(part.Expr, filename, line)
		toks = stripTrailing(toks, toks[len(toks)-1].Kind)
		n, err := p.reduceExprTokens(toks)
		if err != nil {
			return nil, err
		}
		if n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}
