// Package backend defines photon's transpiler contract and a
// thread-safe Registry of backends, modelled directly on the teacher's
// LanguageProvider/Registry pair (internal/registry/registry.go,
// internal/provider/contract.go): a small interface every target
// language implements, registered by name (plus aliases and file
// extensions) into one lookup table the CLI consults by --lang flag.
// Unlike internal/scope.Manager, Registry keeps the teacher's
// sync.RWMutex, so one Registry may be shared by concurrent callers; the
// CLI itself transpiles a single file per invocation.
package backend

import (
	"fmt"
	"sync"

	"github.com/photon-lang/photon/internal/ir"
)

// Transpiler is the contract every target-language backend satisfies.
// Run receives a finished IR Sequence (the whole program, as produced by
// an internal/engine.Engine) and returns fully rendered source text in
// the target language, or perr.UnsupportedConstruct for any node kind the
// backend does not yet model.
type Transpiler interface {
	Lang() string
	Aliases() []string
	Extension() string
	Run(seq *ir.Sequence) (string, error)
}

// Registry holds every registered Transpiler, keyed by canonical
// language name, with alias and extension lookup tables alongside it.
type Registry struct {
	mu         sync.RWMutex
	backends   map[string]Transpiler
	aliases    map[string]string
	extensions map[string]string
}

// NewRegistry returns an empty Registry. Backends are registered
// explicitly via Register, mirroring the teacher's "zero built-in
// knowledge, register explicitly" design.
func NewRegistry() *Registry {
	return &Registry{
		backends:   map[string]Transpiler{},
		aliases:    map[string]string{},
		extensions: map[string]string{},
	}
}

// Register adds t to the registry under its own Lang() name plus its
// declared Aliases() and Extension().
func (r *Registry) Register(t Transpiler) error {
	if t == nil {
		return fmt.Errorf("backend cannot be nil")
	}
	lang := t.Lang()
	if lang == "" {
		return fmt.Errorf("backend must have a non-empty language name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[lang]; exists {
		return fmt.Errorf("backend for language %q already registered", lang)
	}
	r.backends[lang] = t

	for _, alias := range t.Aliases() {
		if alias == "" {
			continue
		}
		if existing, exists := r.aliases[alias]; exists {
			return fmt.Errorf("alias %q conflicts with existing mapping to %q", alias, existing)
		}
		r.aliases[alias] = lang
	}
	if ext := t.Extension(); ext != "" {
		r.extensions[ext] = lang
	}
	return nil
}

// Resolve returns the backend registered for name, following an alias if
// name isn't itself a canonical language name.
func (r *Registry) Resolve(name string) (Transpiler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.backends[name]; ok {
		return t, true
	}
	if canonical, ok := r.aliases[name]; ok {
		t, ok := r.backends[canonical]
		return t, ok
	}
	return nil, false
}

// ByExtension resolves a backend from a source file extension (without
// the leading dot). No CLI command calls it; `photon modules list` uses
// Names.
func (r *Registry) ByExtension(ext string) (Transpiler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lang, ok := r.extensions[ext]
	if !ok {
		return nil, false
	}
	t, ok := r.backends[lang]
	return t, ok
}

// Names returns every registered canonical language name in no particular
// order; cmd/photon's `modules list` sorts the result before printing.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.backends))
	for name := range r.backends {
		out = append(out, name)
	}
	return out
}
