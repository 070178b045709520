// Package engine is photon's semantic engine (spec.md §4.F): it walks
// parser.Node statement trees, resolves names against a scope.Manager,
// performs bidirectional type inference, and produces the internal/ir.Node
// sequence a backend transpiles. One Engine instance processes one
// source file; importing another file spins up a fresh sub-Engine
// (internal/engine/loader.go), cached by internal/modcache so the same
// file is never re-processed twice (invariant I7).
package engine

import (
	"fmt"

	"github.com/photon-lang/photon/internal/grammar"
	"github.com/photon-lang/photon/internal/ir"
	"github.com/photon-lang/photon/internal/modcache"
	"github.com/photon-lang/photon/internal/parser"
	"github.com/photon-lang/photon/internal/perr"
	"github.com/photon-lang/photon/internal/scope"
)

// Config carries the per-engine construction parameters named in
// spec.md §6, mirroring the original Interpreter/Transpiler constructor
// signature (filename, lang, platform, framework, module, standardLibs,
// debug, transpileOnly).
type Config struct {
	Filename     string
	Lang         string
	Platform     string
	Framework    string
	Module       bool
	StandardLibs string
	Debug        bool
	TranspileOnly bool

	// ShowDiff, when set, makes internal/cli.Runner print a unified diff
	// of the previous output file's contents against the freshly
	// rendered one before overwriting it.
	ShowDiff bool
}

// Engine is photon's single-file semantic processor. It is not safe for
// concurrent use by design (spec.md §5): one Engine, one goroutine, one
// file.
type Engine struct {
	Config Config
	Scope  *scope.Manager
	Parser *parser.Parser

	Sequence []ir.Node
	classes  map[string]*ir.Class
	funcs    map[string]*ir.Function

	loopDepth   int
	currentFunc *ir.Function

	Cache *modcache.Cache

	// Trace, when non-nil, receives a line of diagnostic text for every
	// node Process handles; cmd/photon wires it to internal/trace whenever
	// a --debug-db path (or PHOTON_DEBUG_DB) is set.
	Trace func(format string, args ...any)
}

// New constructs an Engine ready to Process statement Nodes.
func New(cfg Config, cache *modcache.Cache) *Engine {
	return &Engine{
		Config:  cfg,
		Scope:   scope.New(),
		Parser:  parser.New(grammar.Default),
		classes: map[string]*ir.Class{},
		funcs:   map[string]*ir.Function{},
		Cache:   cache,
	}
}

// trace logs a debug line if Trace is wired.
func (e *Engine) trace(format string, args ...any) {
	if e.Trace != nil {
		e.Trace(format, args...)
	}
}

// Process consumes one top-level statement Node (as produced by
// parser.Driver) and appends its IR to Sequence. It is the engine's
// single public entry point, called once per statement by the CLI
// runner's main loop (spec.md §6 "process(struct)").
func (e *Engine) Process(n *parser.Node) error {
	if n == nil {
		return nil
	}
	node, err := e.reduce(n)
	if err != nil {
		return err
	}
	if node == nil {
		return nil
	}
	e.Sequence = append(e.Sequence, node)
	e.trace("processed %s", node.Kind())
	return nil
}

// reduce dispatches a parser.Node to its semantic handler by Reduces
// kind. Expression-only forms (Var, Num, Call, DotAccess, ...) are
// handled by the shared reduceExpr in types.go; statement forms with
// their own control-flow or declaration semantics are each handled by a
// dedicated file (control.go, functions.go, classes.go, names.go).
func (e *Engine) reduce(n *parser.Node) (ir.Node, error) {
	switch n.Reduces {
	case "Assign":
		return e.reduceAssign(n)
	case "AugAssign":
		return e.reduceAugAssign(n)
	case "If":
		return e.reduceIf(n)
	case "While":
		return e.reduceWhile(n)
	case "For":
		return e.reduceFor(n)
	case "Function":
		return e.reduceFunction(n)
	case "Class":
		return e.reduceClass(n)
	case "Return":
		return e.reduceReturn(n)
	case "Break":
		return ir.NewBreak(), nil
	case "Import":
		return e.reduceImport(n)
	case "FromImport":
		return e.reduceFromImport(n)
	case "Print":
		return e.reducePrint(n)
	case "Delete":
		return e.reduceDelete(n)
	case "Comment":
		return ir.NewComment(n.Value()), nil
	default:
		return e.reduceExpr(n)
	}
}

// namespaceOf returns the namespace identifier this engine's bindings
// install under: Config.Filename, for the root program and for a
// module-level engine alike (spec.md Glossary: "Namespace").
func (e *Engine) namespaceOf() string {
	return e.Config.Filename
}

// unsupported builds the UnsupportedConstruct error a backend's run()
// returns for a valid-but-unmodeled construct (spec.md §7).
func unsupported(what string) error {
	return &perr.UnsupportedConstruct{What: what}
}

// Errorf is a small helper so handler files can build a *perr.SyntaxError
// without repeating the filename/line plumbing everywhere.
func (e *Engine) errorf(n *parser.Node, format string, args ...any) error {
	line := 0
	if n != nil {
		line = n.Line
	}
	return &perr.SyntaxError{
		Filename: e.Config.Filename,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	}
}
