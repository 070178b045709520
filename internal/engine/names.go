package engine

import (
	"github.com/photon-lang/photon/internal/ir"
	"github.com/photon-lang/photon/internal/parser"
)

// reduceAssign implements spec.md §4.F's assignment inference: a first
// assignment to a bare name installs a fresh Var of the value's type into
// scope; a re-assignment to an already-bound name whose declared type
// disagrees with the new value's type keeps the originally declared type
// and records it in the Assign's Cast field rather than silently changing
// the binding's type out from under existing uses. A value of unknown
// type is left unknown; it does not take on the target's type.
func (e *Engine) reduceAssign(n *parser.Node) (ir.Node, error) {
	value, err := e.reduce(n.Children[1])
	if err != nil {
		return nil, err
	}
	targetNode := n.Children[0]

	if targetNode.Reduces == "Var" {
		name := targetNode.Value()
		key := e.qualify(name)
		existing, ok := e.Scope.Get(key)
		if !ok {
			v := ir.NewVar(name, e.namespaceOf())
			v.SetType(value.Type())
			e.Scope.Add(v)
			return ir.NewAssign(v, value), nil
		}
		assign := ir.NewAssign(existing, value)
		if cast := promoteOrCast(existing.Type(), value.Type()); cast != nil {
			assign.Cast = cast
		}
		return assign, nil
	}

	// Dot-access or indexed assignment target: resolve without
	// installing a new binding.
	target, err := e.reduce(targetNode)
	if err != nil {
		return nil, err
	}
	assign := ir.NewAssign(target, value)
	if cast := promoteOrCast(target.Type(), value.Type()); cast != nil {
		assign.Cast = cast
	}
	return assign, nil
}

// reduceAugAssign builds an ir.AugAssign for `target OP= value`, keeping
// the operator for emission (spec.md §4.F). The target must already be
// bound; no type inference or cast check is done.
func (e *Engine) reduceAugAssign(n *parser.Node) (ir.Node, error) {
	value, err := e.reduce(n.Children[1])
	if err != nil {
		return nil, err
	}
	targetNode := n.Children[0]
	name := targetNode.Value()
	key := e.qualify(name)
	existing, ok := e.Scope.Get(key)
	if !ok {
		return nil, e.errorf(n, "assignment to undeclared name %q", name)
	}
	op := n.Tokens[1].Value
	return ir.NewAugAssign(existing, value, op), nil
}

// reduceDelete records `delete x` as an ir.Delete so backends can emit the
// equivalent cleanup call. The binding itself stays in scope.
func (e *Engine) reduceDelete(n *parser.Node) (ir.Node, error) {
	target, err := e.reduceChild(n, 0)
	if err != nil {
		return nil, err
	}
	return ir.NewDelete(target), nil
}

// reducePrint builds an ir.Print from the call's argument list.
func (e *Engine) reducePrint(n *parser.Node) (ir.Node, error) {
	var args []ir.Node
	for _, c := range n.Children {
		a, err := e.reduce(c)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return ir.NewPrint(args), nil
}
