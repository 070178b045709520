package parser

import (
	"github.com/photon-lang/photon/internal/grammar"
	"github.com/photon-lang/photon/internal/token"
)

// reduceExprTokens reduces an arbitrary (bracket-balanced) token run to a
// single expression Node, applying the shunting-yard-style precedence
// pass of spec.md §4.C: operators are shifted onto an operator stack and
// popped onto the output stack whenever the next operator binds no
// tighter than the one on top, which leaves every multi-operator chain
// reassociated into a strict binary tree (one Expr per operator) by the
// time the engine walks it.
func (p *Parser) reduceExprTokens(toks []token.Token) (*Node, error) {
	var output []*Node
	var ops []string

	pop := func() {
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		rhs := output[len(output)-1]
		lhs := output[len(output)-2]
		output = output[:len(output)-2]
		output = append(output, &Node{
			Reduces:  "Expr",
			Tokens:   []token.Token{{Kind: token.KindOperator, Value: op}},
			Children: []*Node{lhs, rhs},
		})
	}

	i := 0
	for i < len(toks) {
		t := toks[i]
		switch {
		case t.Kind == token.KindOperator || t.Kind == token.KindAnd || t.Kind == token.KindOr || t.Kind == token.KindIs:
			for len(ops) > 0 && grammar.PrecedenceOf(ops[len(ops)-1]) >= grammar.PrecedenceOf(t.Value) {
				pop()
			}
			ops = append(ops, t.Value)
			i++
		default:
			atom, consumed, err := p.reduceAtom(toks[i:])
			if err != nil {
				return nil, err
			}
			output = append(output, atom)
			i += consumed
		}
	}
	for len(ops) > 0 {
		pop()
	}
	if len(output) == 0 {
		return nil, nil
	}
	return output[0], nil
}

// reduceAtom reduces the single primary expression (literal, variable,
// call, dot-access chain, parenthesized group, array/map literal) that
// starts toks, returning how many tokens it consumed.
func (p *Parser) reduceAtom(toks []token.Token) (*Node, int, error) {
	if len(toks) == 0 {
		return nil, 0, nil
	}
	t := toks[0]
	var node *Node
	consumed := 1

	switch t.Kind {
	case token.KindNum:
		node = &Node{Reduces: "Num", Tokens: toks[:1]}
	case token.KindBool:
		node = &Node{Reduces: "Bool", Tokens: toks[:1]}
	case token.KindNull:
		node = &Node{Reduces: "Null", Tokens: toks[:1]}
	case token.KindSingleQuote, token.KindDoubleQuote:
		node = &Node{Reduces: "String", Tokens: toks[:1]}
	case token.KindOpen:
		args, n, err := p.reduceBracketed(toks[1:], token.KindLParen, token.KindRParen)
		if err != nil {
			return nil, 0, err
		}
		node = &Node{Reduces: "Open", Children: args, Tokens: toks[:1]}
		consumed = 1 + n
	case token.KindInput:
		var args []*Node
		n := 0
		if len(toks) > 1 && toks[1].Kind == token.KindLParen {
			var err error
			args, n, err = p.reduceBracketed(toks[1:], token.KindLParen, token.KindRParen)
			if err != nil {
				return nil, 0, err
			}
		}
		node = &Node{Reduces: "Input", Children: args, Tokens: toks[:1]}
		consumed = 1 + n
	case token.KindType:
		end := matchClose(toks, 1, token.KindLParen, token.KindRParen)
		inner := toks[2:end]
		arg, err := p.reduceExprTokens(inner)
		if err != nil {
			return nil, 0, err
		}
		node = &Node{Reduces: "Cast", Tokens: toks[:1], Children: []*Node{arg}}
		consumed = end + 1
	case token.KindLParen:
		end := matchClose(toks, 0, token.KindLParen, token.KindRParen)
		inner, err := p.reduceExprTokens(toks[1:end])
		if err != nil {
			return nil, 0, err
		}
		node = &Node{Reduces: "Group", Children: []*Node{inner}}
		consumed = end + 1
	case token.KindLBrk:
		end := matchClose(toks, 0, token.KindLBrk, token.KindRBrk)
		elems, err := p.splitArgs(toks[1:end])
		if err != nil {
			return nil, 0, err
		}
		node = &Node{Reduces: "Array", Children: elems}
		consumed = end + 1
	case token.KindLBrace:
		end := matchClose(toks, 0, token.KindLBrace, token.KindRBrace)
		pairs, err := p.reduceMapPairs(toks[1:end])
		if err != nil {
			return nil, 0, err
		}
		node = &Node{Reduces: "Map", Children: pairs}
		consumed = end + 1
	case token.KindVar:
		node = &Node{Reduces: "Var", Tokens: toks[:1]}
	default:
		node = &Node{Reduces: "Var", Tokens: toks[:1]}
	}

	for consumed < len(toks) {
		next := toks[consumed]
		switch next.Kind {
		case token.KindDot:
			if consumed+1 >= len(toks) {
				consumed++
				continue
			}
			attr := toks[consumed+1]
			node = &Node{Reduces: "DotAccess", Tokens: []token.Token{attr}, Children: []*Node{node}}
			consumed += 2
		case token.KindLParen:
			end := matchClose(toks, consumed, token.KindLParen, token.KindRParen)
			args, err := p.splitArgs(toks[consumed+1 : end])
			if err != nil {
				return nil, 0, err
			}
			node = &Node{Reduces: "Call", Children: append([]*Node{node}, args...)}
			consumed = end + 1
		case token.KindLBrk:
			end := matchClose(toks, consumed, token.KindLBrk, token.KindRBrk)
			idx, err := p.reduceExprTokens(toks[consumed+1 : end])
			if err != nil {
				return nil, 0, err
			}
			node = &Node{Reduces: "Index", Children: []*Node{node, idx}}
			consumed = end + 1
		default:
			return node, consumed, nil
		}
	}
	return node, consumed, nil
}

// reduceBracketed reduces a `(args...)` call-style argument list that
// starts at toks[0] == open, returning the arg nodes and tokens consumed
// including both brackets.
func (p *Parser) reduceBracketed(toks []token.Token, open, closeK token.Kind) ([]*Node, int, error) {
	if len(toks) == 0 || toks[0].Kind != open {
		return nil, 0, nil
	}
	end := matchClose(toks, 0, open, closeK)
	args, err := p.splitArgs(toks[1:end])
	if err != nil {
		return nil, 0, err
	}
	return args, end + 1, nil
}

// matchClose returns the index within toks of the bracket that closes
// the opener at index start.
func matchClose(toks []token.Token, start int, open, closeK token.Kind) int {
	depth := 0
	for i := start; i < len(toks); i++ {
		if toks[i].Kind == open {
			depth++
		} else if toks[i].Kind == closeK {
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(toks) - 1
}

// reduceMapPairs splits a `{k: v, k2: v2}` body into KeyVal nodes.
func (p *Parser) reduceMapPairs(toks []token.Token) ([]*Node, error) {
	parts, err := p.splitOnComma(toks)
	if err != nil {
		return nil, err
	}
	var pairs []*Node
	for _, part := range parts {
		colon := -1
		depth := 0
		for i, t := range part {
			if token.IsOpenBracket(t.Kind) {
				depth++
			} else if token.IsCloseBracket(t.Kind) {
				depth--
			} else if t.Kind == token.KindColon && depth == 0 {
				colon = i
				break
			}
		}
		if colon < 0 {
			continue
		}
		key, err := p.reduceExprTokens(part[:colon])
		if err != nil {
			return nil, err
		}
		val, err := p.reduceExprTokens(part[colon+1:])
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, &Node{Reduces: "KeyVal", Children: []*Node{key, val}})
	}
	return pairs, nil
}

// splitOnComma splits toks at top-level commas, returning raw token runs.
func (p *Parser) splitOnComma(toks []token.Token) ([][]token.Token, error) {
	var parts [][]token.Token
	depth := 0
	start := 0
	for i, t := range toks {
		switch {
		case token.IsOpenBracket(t.Kind):
			depth++
		case token.IsCloseBracket(t.Kind):
			depth--
		case t.Kind == token.KindComma && depth == 0:
			parts = append(parts, toks[start:i])
			start = i + 1
		}
	}
	if start < len(toks) {
		parts = append(parts, toks[start:])
	}
	return parts, nil
}
