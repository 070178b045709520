package parser

import (
	"github.com/photon-lang/photon/internal/grammar"
	"github.com/photon-lang/photon/internal/perr"
	"github.com/photon-lang/photon/internal/token"
)

// Parser reduces a lexed token slice to a Node tree. It does not search
// the grammar Table or backtrack: photon's grammar is LL(1) at the
// statement-keyword level, so ParseLine switches on the first token to
// pick the statement form, expression forms resolve by looking one token
// ahead for '(' or '.', and the Table is consulted only to name the
// reduction being built.
type Parser struct {
	table grammar.Table
}

// New returns a Parser driven by table.
func New(table grammar.Table) *Parser {
	return &Parser{table: table}
}

// ParseLine reduces a single already-lexed logical line (sans any
// attached Block) to its top-level Node. Child expressions are parsed
// recursively by the statement-specific reduce* helpers.
func (p *Parser) ParseLine(toks []token.Token) (*Node, error) {
	toks = stripTrailing(toks, token.KindNewline)
	if len(toks) == 0 {
		return nil, nil
	}
	first := toks[0]
	switch first.Kind {
	case token.KindHashtag:
		return &Node{Reduces: p.reduction(first.Kind), Tokens: toks, Indent: first.Indent, Line: first.Line, Filename: first.Filename}, nil
	case token.KindIf:
		return p.reduceCondition(p.reduction(first.Kind), toks)
	case token.KindElif:
		return p.reduceCondition(p.reduction(first.Kind), toks)
	case token.KindElse:
		return &Node{Reduces: p.reduction(first.Kind), Tokens: toks, Indent: first.Indent, Line: first.Line}, nil
	case token.KindWhile:
		return p.reduceCondition(p.reduction(first.Kind), toks)
	case token.KindFor:
		return p.reduceFor(toks)
	case token.KindDef:
		return p.reduceDef(toks)
	case token.KindClass:
		return p.reduceClass(toks)
	case token.KindReturn:
		return p.reduceUnary(p.reduction(first.Kind), toks)
	case token.KindBreak:
		return &Node{Reduces: p.reduction(first.Kind), Tokens: toks, Indent: first.Indent, Line: first.Line}, nil
	case token.KindImport:
		return p.reduceUnary(p.reduction(first.Kind), toks)
	case token.KindFrom:
		return p.reduceFromImport(toks)
	case token.KindPrint:
		return p.reduceCall(p.reduction(first.Kind), toks)
	case token.KindDelete:
		return p.reduceUnary(p.reduction(first.Kind), toks)
	default:
		return p.reduceExpressionStatement(toks)
	}
}

// reduction looks up the reduction kind the grammar table binds to a
// single leading token kind, falling back to the literal Kind string
// (which never happens for any token.Kind ParseLine dispatches on, since
// every one of them has a single-token entry in grammar.Default) so a
// custom Table missing an entry degrades to a recognizable error instead
// of a panic.
func (p *Parser) reduction(ks ...token.Kind) string {
	if name, ok := p.table.Reduction(ks...); ok {
		return name
	}
	if len(ks) > 0 {
		return string(ks[0])
	}
	return ""
}

func stripTrailing(toks []token.Token, k token.Kind) []token.Token {
	if len(toks) > 0 && toks[len(toks)-1].Kind == k {
		return toks[:len(toks)-1]
	}
	return toks
}

// HasBeginBlock reports whether the lexed line ends in a block opener,
// i.e. Driver must call getBlock after it.
func HasBeginBlock(toks []token.Token) bool {
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i].Kind == token.KindNewline {
			continue
		}
		return toks[i].Kind == token.KindBeginBlock
	}
	return false
}

func (p *Parser) reduceCondition(kind string, toks []token.Token) (*Node, error) {
	body := stripTrailing(stripOuter(toks), token.KindBeginBlock)
	cond, err := p.reduceExprTokens(body)
	if err != nil {
		return nil, err
	}
	return &Node{Reduces: kind, Tokens: toks, Children: []*Node{cond}, Indent: toks[0].Indent, Line: toks[0].Line, Filename: toks[0].Filename}, nil
}

func (p *Parser) reduceFor(toks []token.Token) (*Node, error) {
	var inIdx = -1
	for i, t := range toks {
		if t.Kind == token.KindIn {
			inIdx = i
			break
		}
	}
	if inIdx < 0 {
		return nil, &perr.SyntaxError{Filename: toks[0].Filename, Line: toks[0].Line, Message: "for without in"}
	}
	vars := toks[1:inIdx]
	rest := stripTrailing(toks[inIdx+1:], token.KindBeginBlock)
	iter, err := p.reduceExprTokens(rest)
	if err != nil {
		return nil, err
	}
	var varNodes []*Node
	for _, v := range vars {
		if v.Kind == token.KindComma {
			continue
		}
		varNodes = append(varNodes, &Node{Reduces: "Var", Tokens: []token.Token{v}})
	}
	n := &Node{Reduces: p.reduction(token.KindFor, token.KindIn), Tokens: toks, Children: append(varNodes, iter), Indent: toks[0].Indent, Line: toks[0].Line, Filename: toks[0].Filename}
	return n, nil
}

func (p *Parser) reduceDef(toks []token.Token) (*Node, error) {
	return &Node{Reduces: p.reduction(token.KindDef), Tokens: toks, Indent: toks[0].Indent, Line: toks[0].Line, Filename: toks[0].Filename}, nil
}

func (p *Parser) reduceClass(toks []token.Token) (*Node, error) {
	return &Node{Reduces: p.reduction(token.KindClass), Tokens: toks, Indent: toks[0].Indent, Line: toks[0].Line, Filename: toks[0].Filename}, nil
}

func (p *Parser) reduceUnary(kind string, toks []token.Token) (*Node, error) {
	rest := toks[1:]
	if len(rest) == 0 {
		return &Node{Reduces: kind, Tokens: toks, Indent: toks[0].Indent, Line: toks[0].Line}, nil
	}
	expr, err := p.reduceExprTokens(rest)
	if err != nil {
		return nil, err
	}
	return &Node{Reduces: kind, Tokens: toks, Children: []*Node{expr}, Indent: toks[0].Indent, Line: toks[0].Line, Filename: toks[0].Filename}, nil
}

func (p *Parser) reduceFromImport(toks []token.Token) (*Node, error) {
	return &Node{Reduces: p.reduction(token.KindFrom, token.KindImport), Tokens: toks, Indent: toks[0].Indent, Line: toks[0].Line}, nil
}

func (p *Parser) reduceCall(kind string, toks []token.Token) (*Node, error) {
	args, err := p.splitArgs(innerParens(toks[1:]))
	if err != nil {
		return nil, err
	}
	return &Node{Reduces: kind, Tokens: toks, Children: args, Indent: toks[0].Indent, Line: toks[0].Line, Filename: toks[0].Filename}, nil
}

func (p *Parser) reduceExpressionStatement(toks []token.Token) (*Node, error) {
	toks = stripTrailing(toks, token.KindBeginBlock)
	if eqIdx := topLevelEqualIndex(toks); eqIdx >= 0 {
		return p.reduceAssignStmt(toks, eqIdx)
	}
	if opIdx := topLevelAugOpIndex(toks); opIdx >= 0 {
		return p.reduceAugAssignStmt(toks, opIdx)
	}
	expr, err := p.reduceExprTokens(toks)
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// topLevelEqualIndex returns the index of a bracket-depth-0 `=` token in
// toks, or -1 if none exists. `==` lexes as a single KindOperator token
// (see internal/parser/lexer.go), so any KindEqual found here is
// unambiguously an assignment.
func topLevelEqualIndex(toks []token.Token) int {
	depth := 0
	for i, t := range toks {
		switch {
		case token.IsOpenBracket(t.Kind):
			depth++
		case token.IsCloseBracket(t.Kind):
			depth--
		case t.Kind == token.KindEqual && depth == 0:
			return i
		}
	}
	return -1
}

// topLevelAugOpIndex returns the index of a bracket-depth-0 compound
// assignment operator (`+=`, `-=`, `*=`, `/=`) in toks, or -1 if none
// exists.
func topLevelAugOpIndex(toks []token.Token) int {
	depth := 0
	for i, t := range toks {
		switch {
		case token.IsOpenBracket(t.Kind):
			depth++
		case token.IsCloseBracket(t.Kind):
			depth--
		case depth == 0 && t.Kind == token.KindOperator && len(t.Value) == 2 && t.Value[1] == '=':
			return i
		}
	}
	return -1
}

// reduceAssignStmt builds an Assign node from `target = value`, reducing
// both sides as full expressions so dot-access and indexed assignment
// targets (`self.x = 1`, `arr[0] = 1`) resolve the same way a bare name
// does.
func (p *Parser) reduceAssignStmt(toks []token.Token, eqIdx int) (*Node, error) {
	target, err := p.reduceExprTokens(toks[:eqIdx])
	if err != nil {
		return nil, err
	}
	value, err := p.reduceExprTokens(toks[eqIdx+1:])
	if err != nil {
		return nil, err
	}
	return &Node{Reduces: "Assign", Tokens: toks, Children: []*Node{target, value}, Indent: toks[0].Indent, Line: toks[0].Line, Filename: toks[0].Filename}, nil
}

// reduceAugAssignStmt builds an AugAssign node from `target OP= value`.
func (p *Parser) reduceAugAssignStmt(toks []token.Token, opIdx int) (*Node, error) {
	target, err := p.reduceExprTokens(toks[:opIdx])
	if err != nil {
		return nil, err
	}
	value, err := p.reduceExprTokens(toks[opIdx+1:])
	if err != nil {
		return nil, err
	}
	opTok := toks[opIdx]
	return &Node{
		Reduces:  "AugAssign",
		Tokens:   []token.Token{toks[0], opTok},
		Children: []*Node{target, value},
		Indent:   toks[0].Indent,
		Line:     toks[0].Line,
		Filename: toks[0].Filename,
	}, nil
}

// innerParens strips one layer of surrounding parentheses, if present.
func innerParens(toks []token.Token) []token.Token {
	if len(toks) >= 2 && toks[0].Kind == token.KindLParen && toks[len(toks)-1].Kind == token.KindRParen {
		return toks[1 : len(toks)-1]
	}
	return toks
}

func stripOuter(toks []token.Token) []token.Token {
	if len(toks) > 1 {
		return toks[1:]
	}
	return nil
}

// splitArgs splits a comma-separated argument list at bracket depth 0
// and reduces each piece to an expression Node.
func (p *Parser) splitArgs(toks []token.Token) ([]*Node, error) {
	var args []*Node
	depth := 0
	start := 0
	flush := func(end int) error {
		if end <= start {
			return nil
		}
		n, err := p.reduceExprTokens(toks[start:end])
		if err != nil {
			return err
		}
		if n != nil {
			args = append(args, n)
		}
		return nil
	}
	for i, t := range toks {
		switch {
		case token.IsOpenBracket(t.Kind):
			depth++
		case token.IsCloseBracket(t.Kind):
			depth--
		case t.Kind == token.KindComma && depth == 0:
			if err := flush(i); err != nil {
				return nil, err
			}
			start = i + 1
		}
	}
	if err := flush(len(toks)); err != nil {
		return nil, err
	}
	return args, nil
}
