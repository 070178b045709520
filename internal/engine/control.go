package engine

import (
	"github.com/photon-lang/photon/internal/ir"
	"github.com/photon-lang/photon/internal/parser"
)

// reduceIf builds an ir.If, walking the then-body in a fresh local scope
// and following the Modifier chain photon's Driver attached (spec.md
// §4.B handleBlock) to build the Elif slice and optional else body.
func (e *Engine) reduceIf(n *parser.Node) (ir.Node, error) {
	cond, err := e.reduceChild(n, 0)
	if err != nil {
		return nil, err
	}
	then, err := e.reduceBody(n.Block)
	if err != nil {
		return nil, err
	}
	ifNode := ir.NewIf(cond, then)

	mod := n.Modifier
	for mod != nil {
		switch mod.Reduces {
		case "Elif":
			econd, err := e.reduceChild(mod, 0)
			if err != nil {
				return nil, err
			}
			ebody, err := e.reduceBody(mod.Block)
			if err != nil {
				return nil, err
			}
			ifNode.Elifs = append(ifNode.Elifs, ir.NewElif(econd, ebody))
		case "Else":
			ebody, err := e.reduceBody(mod.Block)
			if err != nil {
				return nil, err
			}
			ifNode.ElseBody = ebody
		}
		mod = mod.Modifier
	}
	return ifNode, nil
}

// reduceWhile builds an ir.While, tracking loopDepth so a Break inside
// the body is known to be valid (spec.md §4.F control structures).
func (e *Engine) reduceWhile(n *parser.Node) (ir.Node, error) {
	cond, err := e.reduceChild(n, 0)
	if err != nil {
		return nil, err
	}
	e.loopDepth++
	body, err := e.reduceBody(n.Block)
	e.loopDepth--
	if err != nil {
		return nil, err
	}
	return ir.NewWhile(cond, body), nil
}

// reduceFor installs the loop variable(s) into a fresh local scope typed
// from the iterable's element type before walking the body, satisfying
// invariant I5.
func (e *Engine) reduceFor(n *parser.Node) (ir.Node, error) {
	varCount := len(n.Children) - 1
	iterNode := n.Children[len(n.Children)-1]
	iterable, err := e.reduce(iterNode)
	if err != nil {
		return nil, err
	}

	e.Scope.StartLocal()
	var vars []ir.Node
	varTypes := iterVarTypes(iterable.Type(), varCount)
	for i := 0; i < varCount; i++ {
		name := n.Children[i].Value()
		v := ir.NewVar(name, e.namespaceOf())
		v.SetType(varTypes[i])
		e.Scope.Add(v)
		vars = append(vars, v)
	}
	e.loopDepth++
	body, err := e.reduceStatements(n.Block)
	e.loopDepth--
	e.Scope.EndLocal()
	if err != nil {
		return nil, err
	}
	return ir.NewFor(vars, iterable, body), nil
}

// iterElementType derives a for-loop variable's type from its iterable's
// type for the single-variable form: arrays/maps yield their element/key
// type, a Range always yields int, anything else is unknown until a
// richer iterable protocol exists.
func iterElementType(t *ir.Type) *ir.Type {
	if t == nil {
		return ir.Unknown()
	}
	switch t.Name {
	case "array":
		return t.ElementType.Clone()
	case "map":
		return t.KeyType.Clone()
	case "range":
		return ir.NativeType("int")
	default:
		return ir.Unknown()
	}
}

// iterVarTypes derives the type of each for-loop variable from the
// iterable's type. The single-variable form binds iterElementType's
// result; the two-variable form binds (int, element) over a Range or
// Array -- the leading variable is the running index -- and (key, val)
// over a Map, per spec.md §4.F.
func iterVarTypes(t *ir.Type, varCount int) []*ir.Type {
	if varCount < 2 {
		return []*ir.Type{iterElementType(t)}
	}
	if t == nil {
		return []*ir.Type{ir.Unknown(), ir.Unknown()}
	}
	switch t.Name {
	case "map":
		return []*ir.Type{t.KeyType.Clone(), t.ValType.Clone()}
	case "array":
		return []*ir.Type{ir.NativeType("int"), t.ElementType.Clone()}
	case "range":
		return []*ir.Type{ir.NativeType("int"), ir.NativeType("int")}
	default:
		return []*ir.Type{ir.Unknown(), ir.Unknown()}
	}
}

// reduceBody walks a block in a fresh local scope, returning its IR.
func (e *Engine) reduceBody(block []*parser.Node) ([]ir.Node, error) {
	e.Scope.StartLocal()
	out, err := e.reduceStatements(block)
	e.Scope.EndLocal()
	return out, err
}

// reduceStatements walks block in the engine's CURRENT scope (the caller
// is responsible for any StartLocal/EndLocal bracketing it needs), used
// where the caller has already pushed a scope it wants the statements to
// share with bindings installed just before the call (e.g. For's loop
// variables).
func (e *Engine) reduceStatements(block []*parser.Node) ([]ir.Node, error) {
	var out []ir.Node
	for _, stmt := range block {
		node, err := e.reduce(stmt)
		if err != nil {
			return nil, err
		}
		if node != nil {
			out = append(out, node)
		}
	}
	return out, nil
}

// reduceReturn builds an ir.Return and, when inside a Function body being
// processed by reduceFunction, folds the value's type into that
// function's inferred return type (functions.go).
func (e *Engine) reduceReturn(n *parser.Node) (ir.Node, error) {
	var value ir.Node
	if len(n.Children) > 0 {
		var err error
		value, err = e.reduce(n.Children[0])
		if err != nil {
			return nil, err
		}
	}
	if e.currentFunc != nil {
		if value == nil {
			e.currentFunc.ReturnType = ir.Unknown()
		} else if !e.currentFunc.ReturnType.Known {
			e.currentFunc.ReturnType = value.Type().Clone()
		} else {
			e.currentFunc.ReturnType = ir.Promote(e.currentFunc.ReturnType, value.Type())
		}
	}
	return ir.NewReturn(value), nil
}
