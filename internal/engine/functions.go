package engine

import (
	"github.com/photon-lang/photon/internal/ir"
	"github.com/photon-lang/photon/internal/parser"
	"github.com/photon-lang/photon/internal/token"
)

// reduceFunction processes a `def name(params):` statement: its
// parameters are installed into a fresh local scope (so the body can
// reference them and so return-type inference over the body's Return
// nodes sees their types), then the Signature is taken as a namespace-
// cleared deep copy of Params, satisfying invariant I2.
func (e *Engine) reduceFunction(n *parser.Node) (ir.Node, error) {
	name, params := parseDefHeader(n.Tokens)

	fn := ir.NewFunction(name, e.namespaceOf(), nil, nil)
	e.Scope.Add(fn)
	e.funcs[name] = fn

	outerFunc := e.currentFunc
	e.currentFunc = fn

	e.Scope.StartLocal()
	var paramNodes []ir.Node
	for _, p := range params {
		v := ir.NewVar(p.Name, e.namespaceOf())
		if p.Type != "" {
			v.SetType(ir.NativeType(p.Type))
		} else {
			v.SetType(ir.Unknown())
		}
		e.Scope.Add(v)
		paramNodes = append(paramNodes, v)
	}
	body, err := e.reduceStatements(n.Block)
	e.Scope.EndLocal()

	e.currentFunc = outerFunc
	if err != nil {
		return nil, err
	}

	fn.Params = paramNodes
	fn.Signature = cloneSignature(paramNodes)
	fn.Body = body
	if fn.ReturnType == nil {
		fn.ReturnType = ir.Unknown()
	}
	return fn, nil
}

// cloneSignature returns a deep copy of params with Namespace cleared on
// each copy, per invariant I2 ("Function.Signature has every element's
// Namespace() == \"\"").
func cloneSignature(params []ir.Node) []ir.Node {
	out := make([]ir.Node, len(params))
	for i, p := range params {
		v, ok := p.(*ir.Var)
		if !ok {
			out[i] = p
			continue
		}
		clone := ir.NewVar(v.Name, "")
		clone.SetType(v.Type().Clone())
		out[i] = clone
	}
	return out
}

// param is one declared parameter name, plus its type annotation (empty
// when the parameter carries none).
type param struct {
	Name string
	Type string
}

// parseDefHeader extracts the function name and parameter list from a
// `def`-statement token run: `def`, name, `(`, params..., `)`, `:`. A
// parameter may carry a `name:type` annotation (lexed as KindVar,
// KindColon, KindVar); the type-name token is consumed as the preceding
// parameter's annotation rather than being mistaken for another bare
// parameter.
func parseDefHeader(toks []token.Token) (string, []param) {
	if len(toks) < 2 {
		return "", nil
	}
	name := toks[1].Value
	var params []param
	depth := 0
	expectType := false
	for i := 2; i < len(toks); i++ {
		t := toks[i]
		switch t.Kind {
		case token.KindLParen:
			depth++
		case token.KindRParen:
			depth--
		case token.KindColon:
			if depth == 1 {
				expectType = true
			}
		case token.KindComma:
			expectType = false
		case token.KindVar:
			if depth != 1 {
				continue
			}
			if expectType && len(params) > 0 {
				params[len(params)-1].Type = t.Value
				expectType = false
				continue
			}
			params = append(params, param{Name: t.Value})
		}
	}
	return name, params
}
