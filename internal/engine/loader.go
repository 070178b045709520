package engine

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/photon-lang/photon/internal/ir"
	"github.com/photon-lang/photon/internal/parser"
	"github.com/photon-lang/photon/internal/perr"
	"github.com/photon-lang/photon/internal/token"
)

// reduceImport implements `import name` / `import a.b.c` (spec.md §4.G):
// the dotted form installs a chain of Package nodes, each naming the
// next segment's Module/Package child, so `a.b.c.f()` resolves through
// ordinary DotAccess. invariant I7 ("installed exactly once per
// canonical filename") is enforced by consulting e.Cache before
// spinning up a sub-Engine.
func (e *Engine) reduceImport(n *parser.Node) (ir.Node, error) {
	var segments []string
	if len(n.Children) > 0 {
		segments = flattenDotted(n.Children[0])
	}
	if len(segments) == 0 {
		segments = []string{n.Value()}
	}

	mod, err := e.loadModule(segments[len(segments)-1])
	if err != nil {
		return nil, &perr.ImportError{Module: strings.Join(segments, "."), Inner: err}
	}

	if len(segments) == 1 {
		e.Scope.Add(mod)
		return mod, nil
	}

	// Build the package chain for a.b.c, leaf segment bound to mod.
	top := ir.NewPackage(segments[0])
	walker := top
	for i := 1; i < len(segments)-1; i++ {
		child := ir.NewPackage(segments[i])
		walker.Children[segments[i]] = child
		walker = child
	}
	walker.Children[segments[len(segments)-1]] = mod
	e.Scope.Add(top)
	return top, nil
}

// flattenDotted walks a Var/DotAccess parse-node chain built by
// internal/parser/precedence.go's dot-handling (innermost Var first, each
// DotAccess layer adding one trailing segment) back into source order.
func flattenDotted(n *parser.Node) []string {
	switch n.Reduces {
	case "Var":
		return []string{n.Value()}
	case "DotAccess":
		return append(flattenDotted(n.Children[0]), n.Value())
	default:
		return nil
	}
}

// reduceFromImport implements `from X import y[, z...]` and
// `from X import *`: the named exports (or every export, for the star
// form) are aliased directly into the importing engine's scope.
func (e *Engine) reduceFromImport(n *parser.Node) (ir.Node, error) {
	module, names, star := parseFromImportHeader(n.Tokens)
	mod, err := e.loadModule(module)
	if err != nil {
		return nil, &perr.ImportError{Module: module, Inner: err}
	}
	if star {
		for name, node := range mod.Exports {
			e.Scope.AddAlias(name, node)
		}
		return mod, nil
	}
	for _, name := range names {
		node, ok := mod.Exports[name]
		if !ok {
			return nil, &perr.NameNotFound{Name: name, Context: "module " + module}
		}
		e.Scope.AddAlias(name, node)
	}
	return mod, nil
}

// loadModule resolves name to a source file, returning the cached Module
// if it was already processed (invariant I7) and otherwise running a
// fresh sub-Engine over it and caching the result.
func (e *Engine) loadModule(name string) (*ir.Module, error) {
	importerDir := filepath.Dir(e.Config.Filename)
	if importerDir == "" {
		importerDir = "."
	}
	path, ok := e.Cache.Resolve(name, importerDir)
	if !ok {
		return nil, perr.ErrNotFound
	}
	canonical, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if mod, ok := e.Cache.Get(canonical); ok {
		return mod, nil
	}
	if !e.Cache.BeginLoad(canonical) {
		return nil, perr.ErrCycle
	}
	defer e.Cache.EndLoad(canonical)

	mod, err := e.runSubEngine(canonical, name)
	if err != nil {
		return nil, err
	}
	e.Cache.Store(canonical, mod)
	return mod, nil
}

// runSubEngine instantiates a fresh Engine over path, drives it through
// every statement via a parser.Driver the same way the top-level CLI
// runner does, and snapshots its resulting global scope as the returned
// Module's Exports (spec.md §4.G).
func (e *Engine) runSubEngine(canonicalPath, name string) (*ir.Module, error) {
	f, err := os.Open(canonicalPath)
	if err != nil {
		return nil, &perr.IOError{Path: canonicalPath, Inner: err}
	}
	defer f.Close()

	subCfg := e.Config
	subCfg.Filename = canonicalPath
	subCfg.Module = true
	sub := New(subCfg, e.Cache)

	src := parser.NewFileSource(f)
	driver := parser.NewDriver(src, sub.Parser, canonicalPath)
	for {
		stmt, err := driver.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := sub.Process(stmt); err != nil {
			return nil, err
		}
	}

	mod := ir.NewModule(name, canonicalPath)
	mod.Sequence = sub.Sequence
	for _, item := range sub.Scope.Values(sub.namespaceOf(), true) {
		switch v := item.(type) {
		case *ir.Function:
			mod.Exports[v.Name] = v
		case *ir.Class:
			mod.Exports[v.Name] = v
		case *ir.Var:
			mod.Exports[v.Name] = v
		}
	}
	return mod, nil
}

// parseFromImportHeader extracts the module name, imported identifier
// list, and star flag from a `from X import y, z` / `from X import *`
// token run: `from`, module, `import`, names..., or `*`.
func parseFromImportHeader(toks []token.Token) (module string, names []string, star bool) {
	if len(toks) < 2 {
		return "", nil, false
	}
	module = toks[1].Value
	importIdx := -1
	for i, t := range toks {
		if t.Kind == token.KindImport {
			importIdx = i
			break
		}
	}
	if importIdx < 0 {
		return module, nil, false
	}
	for _, t := range toks[importIdx+1:] {
		switch {
		case t.Kind == token.KindOperator && t.Value == "*":
			star = true
		case t.Kind == token.KindVar:
			names = append(names, t.Value)
		}
	}
	return module, names, star
}
