package engine

import (
	"github.com/photon-lang/photon/internal/ir"
	"github.com/photon-lang/photon/internal/parser"
	"github.com/photon-lang/photon/internal/perr"
)

// reduceDotAccess resolves `left.right` left to right, branching on the
// left operand's already-inferred Type (spec.md §4.F "Dot access"):
//   - class instance -> right names a field or method of the instance's
//     class (or an ancestor's, since Parameters/Methods were merged
//     during two-pass class construction)
//   - array/map      -> right names a built-in collection operation,
//     typed structurally rather than looked up in scope
//   - file           -> right names a built-in file operation
//   - module/package -> right names an export installed by the loader
//     into the sub-engine's scope (internal/engine/loader.go)
func (e *Engine) reduceDotAccess(n *parser.Node) (ir.Node, error) {
	left, err := e.reduce(n.Children[0])
	if err != nil {
		return nil, err
	}
	right := n.Value()
	lt := left.Type()

	switch {
	case lt.IsClass:
		if class, ok := e.classes[lt.Name]; ok {
			if member := findMember(class, right); member != nil {
				dot := ir.NewDotAccess(left, right)
				dot.SetType(member.Type())
				return dot, nil
			}
		}
		dot := ir.NewDotAccess(left, right)
		dot.SetType(ir.Unknown())
		return dot, nil

	case lt.Name == "array":
		dot := ir.NewDotAccess(left, right)
		dot.SetType(arrayMemberType(right, lt))
		return dot, nil

	case lt.Name == "map":
		dot := ir.NewDotAccess(left, right)
		dot.SetType(mapMemberType(right, lt))
		return dot, nil

	case lt.Name == "file":
		dot := ir.NewDotAccess(left, right)
		dot.SetType(fileMemberType(right))
		return dot, nil

	case lt.IsModule || lt.IsPackage:
		if pkg, ok := left.(*ir.Package); ok {
			child, ok := pkg.Children[right]
			if !ok {
				return nil, &perr.NameNotFound{Name: right, Context: "package " + pkg.Name}
			}
			return child, nil
		}
		mod, ok := left.(*ir.Module)
		if !ok {
			dot := ir.NewDotAccess(left, right)
			dot.SetType(ir.Unknown())
			return dot, nil
		}
		exported, ok := mod.Exports[right]
		if !ok {
			return nil, &perr.NameNotFound{Name: right, Context: "module " + mod.Name}
		}
		return exported, nil

	default:
		dot := ir.NewDotAccess(left, right)
		dot.SetType(ir.Unknown())
		return dot, nil
	}
}

// findMember looks up a field or method by name across class and its
// ancestor chain (already flattened into Parameters/Methods by
// reduceClass's merge step, so a single pass over this class suffices).
func findMember(class *ir.Class, name string) ir.Node {
	for _, p := range class.Parameters {
		if v, ok := p.(*ir.Var); ok && v.Name == name {
			return v
		}
	}
	for _, m := range class.Methods {
		if m.Name == name {
			return m
		}
	}
	if class.New != nil && (name == "new" || name == class.Name) {
		return class.New
	}
	return nil
}

func arrayMemberType(name string, arrType *ir.Type) *ir.Type {
	switch name {
	case "len", "length", "size":
		return ir.NativeType("int")
	case "append", "push", "remove", "sort", "reverse":
		return ir.Unknown()
	case "first", "last":
		return arrType.ElementType
	default:
		return ir.Unknown()
	}
}

func mapMemberType(name string, mapType *ir.Type) *ir.Type {
	switch name {
	case "len", "length", "size":
		return ir.NativeType("int")
	case "keys":
		return ir.ArrayOf(mapType.KeyType)
	case "values":
		return ir.ArrayOf(mapType.ValType)
	default:
		return ir.Unknown()
	}
}

func fileMemberType(name string) *ir.Type {
	switch name {
	case "read", "readline":
		return ir.NativeType("str")
	case "readlines":
		return ir.ArrayOf(ir.NativeType("str"))
	case "close", "write":
		return ir.Unknown()
	default:
		return ir.Unknown()
	}
}

// reduceCall reduces a function/method invocation. When Callee is itself
// a DotAccess, the call is a method call: the original receiver is
// pulled out of the DotAccess (per spec.md §4.F, the receiver becomes an
// explicit first argument for backends whose target language has no
// method-call syntax of its own) and Callee collapses to the method name.
// A dotted callee that resolves through a module or package to an
// exported node is called like any plain callee.
func (e *Engine) reduceCall(n *parser.Node) (ir.Node, error) {
	calleeNode := n.Children[0]
	args := n.Children[1:]

	var argNodes []ir.Node
	for _, a := range args {
		v, err := e.reduce(a)
		if err != nil {
			return nil, err
		}
		argNodes = append(argNodes, v)
	}

	callee, err := e.reduce(calleeNode)
	if err != nil {
		return nil, err
	}
	if d, ok := callee.(*ir.DotAccess); ok && calleeNode.Reduces == "DotAccess" {
		call := ir.NewCall(ir.NewVar(d.Right, ""), argNodes)
		call.Receiver = d.Left
		call.SetType(d.Type())
		return call, nil
	}
	call := ir.NewCall(callee, argNodes)
	switch c := callee.(type) {
	case *ir.Function:
		call.SetType(c.ReturnType)
	case *ir.Class:
		call.SetType(c.Type())
	default:
		call.SetType(ir.Unknown())
	}
	return call, nil
}
