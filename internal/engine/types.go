package engine

import (
	"strconv"

	"github.com/photon-lang/photon/internal/ir"
	"github.com/photon-lang/photon/internal/parser"
)

// reduceExpr turns an expression-shaped parser.Node into its ir.Node,
// resolving Var references against scope and inferring literal/operator
// types bottom-up (spec.md §4.F).
func (e *Engine) reduceExpr(n *parser.Node) (ir.Node, error) {
	switch n.Reduces {
	case "Num":
		lit := n.Value()
		isFloat := false
		for _, c := range lit {
			if c == '.' {
				isFloat = true
				break
			}
		}
		return ir.NewNum(lit, isFloat), nil
	case "Bool":
		return ir.NewBool(n.Value() == "true"), nil
	case "Null":
		return ir.NewNull(), nil
	case "String":
		return e.reduceString(n)
	case "Var":
		return e.reduceVar(n)
	case "Group":
		inner, err := e.reduceChild(n, 0)
		if err != nil {
			return nil, err
		}
		return ir.NewGroup(inner), nil
	case "Array":
		return e.reduceArray(n)
	case "Map":
		return e.reduceMap(n)
	case "Expr":
		return e.reduceBinary(n)
	case "Call":
		return e.reduceCall(n)
	case "DotAccess":
		return e.reduceDotAccess(n)
	case "Index":
		return e.reduceIndexExpr(n)
	case "Open":
		return e.reduceOpen(n)
	case "Input":
		return e.reduceInput(n)
	case "Cast":
		return e.reduceCast(n)
	default:
		return nil, unsupported(n.Reduces)
	}
}

func (e *Engine) reduceChild(n *parser.Node, i int) (ir.Node, error) {
	if i >= len(n.Children) || n.Children[i] == nil {
		return nil, nil
	}
	return e.reduce(n.Children[i])
}

// reduceString builds an ir.String, recursively reducing any `${...}`
// interpolation slots found in the literal's raw value.
func (e *Engine) reduceString(n *parser.Node) (ir.Node, error) {
	raw := n.Value()
	s := ir.NewString(raw)
	exprNodes, err := e.Parser.ReduceInterpolatedExprs(raw, e.Config.Filename, n.Line)
	if err != nil {
		return nil, err
	}
	for _, sub := range exprNodes {
		exprNode, err := e.reduce(sub)
		if err != nil {
			return nil, err
		}
		s.Expressions = append(s.Expressions, exprNode)
	}
	return s, nil
}

// reduceVar resolves a bare identifier against scope. An unresolved
// identifier is not an error here -- it may be a declaration target seen
// for the first time by reduceAssign -- so reduceVar returns a fresh,
// unbound *ir.Var carrying Unknown type when lookup misses. DotAccess and
// Call use that result as it is, so an unresolved left operand or callee
// is not reported as an error; perr.NameNotFound is raised only for a
// missing module or package member.
func (e *Engine) reduceVar(n *parser.Node) (ir.Node, error) {
	name := n.Value()
	if bound, ok := e.Scope.Get(e.qualify(name)); ok {
		return bound, nil
	}
	if bound, ok := e.Scope.Get(name); ok {
		return bound, nil
	}
	return ir.NewVar(name, e.namespaceOf()), nil
}

// qualify derives the namespaced scope key for a bare name at the
// engine's current namespace.
func (e *Engine) qualify(name string) string {
	return ir.MakeIndex(e.namespaceOf(), name, "")
}

func (e *Engine) reduceArray(n *parser.Node) (ir.Node, error) {
	var elems []ir.Node
	var elemType *ir.Type
	for _, c := range n.Children {
		el, err := e.reduce(c)
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)
		if elemType == nil {
			elemType = el.Type().Clone()
		} else {
			elemType = ir.Promote(elemType, el.Type())
		}
	}
	arr := ir.NewArray(elems)
	arr.SetType(ir.ArrayOf(elemType))
	return arr, nil
}

func (e *Engine) reduceMap(n *parser.Node) (ir.Node, error) {
	var pairs []*ir.KeyVal
	var keyType, valType *ir.Type
	for _, c := range n.Children {
		k, err := e.reduce(c.Children[0])
		if err != nil {
			return nil, err
		}
		v, err := e.reduce(c.Children[1])
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ir.NewKeyVal(k, v))
		if keyType == nil {
			keyType, valType = k.Type().Clone(), v.Type().Clone()
		} else {
			keyType = ir.Promote(keyType, k.Type())
			valType = ir.Promote(valType, v.Type())
		}
	}
	m := ir.NewMap(pairs)
	m.SetType(ir.MapOf(keyType, valType))
	return m, nil
}

// reduceBinary reduces one Expr node (a single operator with two already
// precedence-grouped operands, per internal/parser/precedence.go) and
// assigns the result's type via Promote.
func (e *Engine) reduceBinary(n *parser.Node) (ir.Node, error) {
	lhs, err := e.reduce(n.Children[0])
	if err != nil {
		return nil, err
	}
	rhs, err := e.reduce(n.Children[1])
	if err != nil {
		return nil, err
	}
	op := n.Value()
	expr := ir.NewExpr([]ir.Node{lhs, rhs}, []string{op})
	switch op {
	case "==", "!=", "<", ">", "<=", ">=", "is", "and", "or":
		expr.SetType(ir.NativeType("bool"))
	default:
		expr.SetType(ir.Promote(lhs.Type(), rhs.Type()))
	}
	return expr, nil
}

func (e *Engine) reduceIndexExpr(n *parser.Node) (ir.Node, error) {
	base, err := e.reduce(n.Children[0])
	if err != nil {
		return nil, err
	}
	idx, err := e.reduce(n.Children[1])
	if err != nil {
		return nil, err
	}
	call := ir.NewCall(ir.NewVar("__index__", ""), []ir.Node{idx})
	call.Receiver = base
	switch base.Type().Name {
	case "array":
		call.SetType(base.Type().ElementType)
	case "map":
		call.SetType(base.Type().ValType)
	default:
		call.SetType(ir.Unknown())
	}
	return call, nil
}

func (e *Engine) reduceOpen(n *parser.Node) (ir.Node, error) {
	var path, mode ir.Node
	var err error
	if len(n.Children) > 0 {
		path, err = e.reduce(n.Children[0])
		if err != nil {
			return nil, err
		}
	}
	if len(n.Children) > 1 {
		mode, err = e.reduce(n.Children[1])
		if err != nil {
			return nil, err
		}
	}
	return ir.NewOpen(path, mode), nil
}

func (e *Engine) reduceInput(n *parser.Node) (ir.Node, error) {
	var prompt ir.Node
	var err error
	if len(n.Children) > 0 {
		prompt, err = e.reduce(n.Children[0])
		if err != nil {
			return nil, err
		}
	}
	return ir.NewInput(prompt), nil
}

func (e *Engine) reduceCast(n *parser.Node) (ir.Node, error) {
	target := n.Value()
	val, err := e.reduceChild(n, 0)
	if err != nil {
		return nil, err
	}
	return ir.NewCast(val, ir.NativeType(target)), nil
}

// promoteOrCast applies spec.md §4.F's bidirectional-assignment rule:
// when target and value disagree on a known type, the engine prefers the
// target's declared type rather than silently widening, and returns it
// for the caller to record on the Assign's Cast field. It returns nil when
// either type is unknown or the two are equal.
func promoteOrCast(targetType, valueType *ir.Type) (cast *ir.Type) {
	if !targetType.Known || !valueType.Known {
		return nil
	}
	if targetType.Equal(valueType) {
		return nil
	}
	return targetType.Clone()
}

// literalIntValue parses a Num node's literal as an int, returning 0 if
// lit doesn't parse. Nothing in this package calls it.
func literalIntValue(lit string) int {
	v, err := strconv.Atoi(lit)
	if err != nil {
		return 0
	}
	return v
}
