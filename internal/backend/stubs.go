package backend

import (
	"fmt"
	"strings"

	"github.com/photon-lang/photon/internal/ir"
	"github.com/photon-lang/photon/internal/perr"
)

// stub is a minimal per-language Transpiler: it renders the literal/
// print/assign handful of node kinds every end-to-end scenario in
// spec.md §8 exercises, using lang-specific syntax fragments, and
// returns perr.UnsupportedConstruct for anything else. Real code
// generation for control structures, classes, and module linking is
// deliberately out of this repo's scope (spec.md's Non-goals name
// "complete, idiomatic output for every target" as future work); stub
// exists so internal/cli's write() boundary and internal/backend.Registry
// have a genuine, exercised implementation to dispatch to.
type stub struct {
	lang      string
	aliases   []string
	extension string
	assign    string // e.g. "%s = %s;\n"
	print     string // fmt verb wrapping the printed expression
	stmtEnd   string
}

func (s *stub) Lang() string      { return s.lang }
func (s *stub) Aliases() []string { return s.aliases }
func (s *stub) Extension() string { return s.extension }

func (s *stub) Run(seq *ir.Sequence) (string, error) {
	var out strings.Builder
	for _, n := range seq.Items {
		line, err := s.render(n)
		if err != nil {
			return "", err
		}
		out.WriteString(line)
	}
	return out.String(), nil
}

func (s *stub) render(n ir.Node) (string, error) {
	switch v := n.(type) {
	case *ir.Comment:
		return fmt.Sprintf("// %s%s", v.Text, s.stmtEnd), nil
	case *ir.Print:
		var parts []string
		for _, a := range v.Args {
			rendered, err := s.renderExpr(a)
			if err != nil {
				return "", err
			}
			parts = append(parts, rendered)
		}
		return fmt.Sprintf(s.print, strings.Join(parts, ", ")) + s.stmtEnd, nil
	case *ir.Assign:
		target, err := s.renderExpr(v.Target)
		if err != nil {
			return "", err
		}
		value, err := s.renderExpr(v.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(s.assign, target, value) + s.stmtEnd, nil
	default:
		return "", &perr.UnsupportedConstruct{What: fmt.Sprintf("%s backend: %s", s.lang, n.Kind())}
	}
}

func (s *stub) renderExpr(n ir.Node) (string, error) {
	switch v := n.(type) {
	case *ir.Num:
		return v.Literal, nil
	case *ir.Bool:
		if v.Value {
			return "true", nil
		}
		return "false", nil
	case *ir.Null:
		return "null", nil
	case *ir.String:
		return fmt.Sprintf("%q", v.Value), nil
	case *ir.Var:
		return v.Name, nil
	case *ir.Group:
		inner, err := s.renderExpr(v.Inner)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case *ir.Expr:
		lhs, err := s.renderExpr(v.Args[0])
		if err != nil {
			return "", err
		}
		rhs, err := s.renderExpr(v.Args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s", lhs, v.Ops[0], rhs), nil
	default:
		return "", &perr.UnsupportedConstruct{What: fmt.Sprintf("%s backend expression: %s", s.lang, n.Kind())}
	}
}

// NewC returns the C stand-in backend.
func NewC() Transpiler {
	return &stub{lang: "c", extension: "c", assign: "%s = %s;\n", print: `printf("%%s\n", %s);`, stmtEnd: "\n"}
}

// NewPython returns the Python stand-in backend.
func NewPython() Transpiler {
	return &stub{lang: "py", aliases: []string{"python"}, extension: "py", assign: "%s = %s\n", print: "print(%s)", stmtEnd: "\n"}
}

// NewDart returns the Dart stand-in backend.
func NewDart() Transpiler {
	return &stub{lang: "dart", extension: "dart", assign: "var %s = %s;\n", print: "print(%s);", stmtEnd: "\n"}
}

// NewJavaScript returns the JavaScript stand-in backend.
func NewJavaScript() Transpiler {
	return &stub{lang: "js", aliases: []string{"javascript"}, extension: "js", assign: "let %s = %s;\n", print: "console.log(%s);", stmtEnd: "\n"}
}

// NewTypeScript returns the TypeScript stand-in backend.
func NewTypeScript() Transpiler {
	return &stub{lang: "ts", aliases: []string{"typescript"}, extension: "ts", assign: "let %s = %s;\n", print: "console.log(%s);", stmtEnd: "\n"}
}

// NewHaxe returns the Haxe stand-in backend.
func NewHaxe() Transpiler {
	return &stub{lang: "haxe", extension: "hx", assign: "var %s = %s;\n", print: "trace(%s);", stmtEnd: "\n"}
}

// NewD returns the D stand-in backend.
func NewD() Transpiler {
	return &stub{lang: "d", extension: "d", assign: "auto %s = %s;\n", print: `writeln(%s);`, stmtEnd: "\n"}
}

// RegisterAll wires every stand-in backend into reg, the set spec.md §1
// names as photon's output targets.
func RegisterAll(reg *Registry) error {
	for _, t := range []Transpiler{NewC(), NewPython(), NewDart(), NewJavaScript(), NewTypeScript(), NewHaxe(), NewD()} {
		if err := reg.Register(t); err != nil {
			return err
		}
	}
	return nil
}
