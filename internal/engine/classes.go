package engine

import (
	"github.com/photon-lang/photon/internal/ir"
	"github.com/photon-lang/photon/internal/parser"
	"github.com/photon-lang/photon/internal/token"
)

// reduceClass implements spec.md §4.F's two-pass class construction:
// pass one collects and merges every parent's parameters and
// constructor arguments (classical flat multiple inheritance, parents
// processed in declared order so the first parent to declare a
// parameter name keeps it and later same-named ones are skipped) and
// installs a shell Class into scope so the body can reference the class
// by name (e.g. a method returning `self`); pass two walks the body, now
// that the shell exists, to build the constructor and method set. The
// constructor's Params are the parents' constructor params followed by
// its own, merged by mergeOwnParams so an own argument replaces a
// same-named inherited one.
func (e *Engine) reduceClass(n *parser.Node) (ir.Node, error) {
	name, parents := parseClassHeader(n.Tokens)

	class := ir.NewClass(name, parents)
	e.classes[name] = class
	e.Scope.Add(class)

	var mergedParams []ir.Node
	var ctorArgs []ir.Node
	seen := map[string]bool{}
	for _, pname := range parents {
		parent, ok := e.classes[pname]
		if !ok {
			continue
		}
		for _, p := range parent.Parameters {
			if v, ok := p.(*ir.Var); ok && !seen[v.Name] {
				seen[v.Name] = true
				mergedParams = append(mergedParams, p)
			}
		}
		if parent.New != nil {
			ctorArgs = append(ctorArgs, parent.New.Params...)
		}
	}
	e.Scope.StartLocal()
	for _, p := range mergedParams {
		e.Scope.Add(p)
	}
	self := ir.NewVar("self", e.namespaceOf())
	self.SetType(class.Type())
	e.Scope.Add(self)

	var methods []*ir.Function
	var ctor *ir.Function
	var ownParams []ir.Node
	cp := e.Scope.Save()
	for _, stmt := range n.Block {
		if stmt.Reduces != "Function" {
			continue
		}
		fname, _ := parseDefHeader(stmt.Tokens)
		node, err := e.reduceClassMember(stmt, class)
		if err != nil {
			e.Scope.Restore(cp)
			continue
		}
		fn, ok := node.(*ir.Function)
		if !ok {
			continue
		}
		fn.IsMethod = true
		if fname == "new" || fname == name {
			ownParams = fn.Params
			fn.Params = mergeOwnParams(ctorArgs, fn.Params)
			ctor = fn
		} else {
			methods = append(methods, fn)
		}
	}
	e.Scope.EndLocal()

	if ctor == nil {
		ctor = ir.NewFunction("new", e.namespaceOf(), append([]ir.Node{}, ctorArgs...), nil)
		ctor.IsMethod = true
	}
	// invariant I3: New.Type() equals the class's index.
	ctor.SetType(class.Type())
	class.New = ctor
	class.Methods = methods
	class.Parameters = mergeOwnParams(mergedParams, ownParams)
	return class, nil
}

// mergeOwnParams applies spec.md (P6)'s "own overriding on collision"
// rule: an own-declared parameter with the same name as an inherited one
// replaces it in place; a new name is appended after the inherited set.
func mergeOwnParams(inherited, own []ir.Node) []ir.Node {
	out := append([]ir.Node{}, inherited...)
	indexOf := map[string]int{}
	for i, p := range out {
		if v, ok := p.(*ir.Var); ok {
			indexOf[v.Name] = i
		}
	}
	for _, p := range own {
		v, ok := p.(*ir.Var)
		if !ok {
			out = append(out, p)
			continue
		}
		if i, exists := indexOf[v.Name]; exists {
			out[i] = p
			continue
		}
		indexOf[v.Name] = len(out)
		out = append(out, p)
	}
	return out
}

// reduceClassMember re-enters the semantic engine's normal Function
// handler for one method body; any error inside a single method body is
// isolated by the caller's Checkpoint/Restore so a malformed method
// doesn't corrupt the class's remaining members (spec.md §7 class-body
// recovery).
func (e *Engine) reduceClassMember(stmt *parser.Node, class *ir.Class) (ir.Node, error) {
	return e.reduceFunction(stmt)
}

// parseClassHeader extracts the class name and parent names from a
// `class`-statement token run: `class`, name, optionally `(`,
// parents..., `)`, `:`.
func parseClassHeader(toks []token.Token) (string, []string) {
	if len(toks) < 2 {
		return "", nil
	}
	name := toks[1].Value
	var parents []string
	depth := 0
	for i := 2; i < len(toks); i++ {
		switch toks[i].Kind {
		case token.KindLParen:
			depth++
		case token.KindRParen:
			depth--
		case token.KindVar:
			if depth == 1 {
				parents = append(parents, toks[i].Value)
			}
		}
	}
	return name, parents
}
