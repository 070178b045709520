// Package scope implements photon's two-tier scope manager: one global
// mapping plus a stack of local mappings, exactly as spec.md §4.E
// describes. Unlike internal/registry.Registry -- its closest relative in
// this codebase's ancestry, a name->provider table guarded by
// sync.RWMutex because providers are registered and looked up from many
// goroutines -- Manager carries no lock. spec.md §5 is explicit that the
// engine is single-threaded and entirely synchronous, so a lock here would
// be dead weight; that divergence from the registry's shape is
// deliberate and recorded in DESIGN.md.
package scope

import (
	"fmt"

	"github.com/photon-lang/photon/internal/ir"
)

// Manager is photon's scope manager (spec.md §4.E).
type Manager struct {
	global map[string]ir.Node
	locals []map[string]ir.Node
	local  []bool
}

// New returns an empty Manager with no local scope pushed.
func New() *Manager {
	return &Manager{global: map[string]ir.Node{}}
}

// StartLocal pushes a fresh local scope and marks it current.
func (m *Manager) StartLocal() {
	m.locals = append(m.locals, map[string]ir.Node{})
	m.local = append(m.local, true)
}

// EndLocal pops the current local scope. It is a no-op if no local scope
// is active, which keeps callers that restore a checkpoint (see
// Checkpoint/Restore) simple.
func (m *Manager) EndLocal() {
	if len(m.locals) == 0 {
		return
	}
	m.locals = m.locals[:len(m.locals)-1]
	m.local = m.local[:len(m.local)-1]
}

// inLocal reports whether a local scope is currently active.
func (m *Manager) inLocal() bool {
	return len(m.local) > 0 && m.local[len(m.local)-1]
}

// Add inserts node into the top-of-stack local scope if one is active,
// otherwise into the global scope, keyed by its Index. A nil node, or one
// whose Index is empty (no namespace/name was ever set on it), is
// silently ignored rather than installed under an empty key. Inserting a
// Module additionally installs it under its bare name, so dotted
// dot-access resolution can find it without the caller re-deriving the
// namespaced index.
func (m *Manager) Add(node ir.Node) {
	if node == nil || node.Index() == "" {
		return
	}
	m.insert(node.Index(), node)
	if mod, ok := node.(*ir.Module); ok {
		m.insert(mod.Name, node)
	}
}

// AddAlias inserts node under a caller-supplied key, used for
// `from X import *` and named `from X import y` re-exports.
func (m *Manager) AddAlias(alias string, node ir.Node) {
	if alias == "" || node == nil {
		return
	}
	m.insert(alias, node)
}

func (m *Manager) insert(key string, node ir.Node) {
	if m.inLocal() {
		m.locals[len(m.locals)-1][key] = node
		return
	}
	m.global[key] = node
}

// Get resolves index by searching local scopes innermost-first, then the
// global scope (invariant I6). It returns perr-flavoured information via
// the ok result rather than an error, leaving error construction (with
// filename/line context) to the caller, the way the teacher's registry
// lookups return a plain bool/error pair for the caller to wrap.
func (m *Manager) Get(index string) (ir.Node, bool) {
	for i := len(m.locals) - 1; i >= 0; i-- {
		if n, ok := m.locals[i][index]; ok {
			return n, true
		}
	}
	n, ok := m.global[index]
	return n, ok
}

// MustGet is Get, returning a plain "not found: <index>" error when
// absent.
func (m *Manager) MustGet(index string) (ir.Node, error) {
	n, ok := m.Get(index)
	if !ok {
		return nil, fmt.Errorf("not found: %s", index)
	}
	return n, nil
}

// Values enumerates every binding whose Namespace equals namespace. When
// modules is false, Module and Package bindings are skipped. The result
// is a new slice in arbitrary map order; its elements are the stored
// nodes themselves, not copies.
func (m *Manager) Values(namespace string, modules bool) []ir.Node {
	var out []ir.Node
	visit := func(scope map[string]ir.Node) {
		for _, n := range scope {
			if n.Namespace() != namespace {
				continue
			}
			if !modules {
				switch n.(type) {
				case *ir.Module, *ir.Package:
					continue
				}
			}
			out = append(out, n)
		}
	}
	visit(m.global)
	for _, l := range m.locals {
		visit(l)
	}
	return out
}

// Depth reports how many local scopes are currently pushed, used by the
// engine's class-body error-recovery checkpoint (spec.md §7).
func (m *Manager) Depth() int { return len(m.locals) }

// Checkpoint captures enough state to restore the scope manager to its
// current extent: the local-scope depth and a shallow copy of the
// top-of-stack local map (if any). spec.md §7 describes the class-body
// recovery path as "restores the saved namespace and local-scope depth,
// drops deeper scopes" -- Save/Restore cover the local-scope part of
// that; the namespace is not saved.
type Checkpoint struct {
	depth   int
	topCopy map[string]ir.Node
	hadTop  bool
}

// Save returns a Checkpoint of the current scope extent.
func (m *Manager) Save() Checkpoint {
	cp := Checkpoint{depth: len(m.locals)}
	if len(m.locals) > 0 {
		cp.hadTop = true
		cp.topCopy = make(map[string]ir.Node, len(m.locals[len(m.locals)-1]))
		for k, v := range m.locals[len(m.locals)-1] {
			cp.topCopy[k] = v
		}
	}
	return cp
}

// Restore drops every local scope pushed since cp was taken and restores
// the top-of-stack local map to its checkpointed contents.
func (m *Manager) Restore(cp Checkpoint) {
	if cp.depth > len(m.locals) {
		return
	}
	m.locals = m.locals[:cp.depth]
	m.local = m.local[:cp.depth]
	if cp.hadTop && len(m.locals) > 0 {
		m.locals[len(m.locals)-1] = cp.topCopy
	}
}
