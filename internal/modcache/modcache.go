// Package modcache implements photon's module/package loader support: a
// canonical-filename-keyed cache that guarantees a source file is parsed
// and processed at most once no matter how many importers reference it
// (invariant I7), plus the standard-library directory search of spec.md
// §4.G: look for `<name>.w` in the importing file's own directory, then
// in each configured standard-library root. The process's working
// directory is not searched unless it is one of those.
package modcache

import (
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/photon-lang/photon/internal/ir"
)

// Cache maps a canonical (absolute, symlink-resolved as far as
// filepath.Abs can take it) filename to the already-processed Module IR
// for that file. A mutex guards it so that several Engines sharing one
// Cache may use it concurrently; the CLI itself runs one top-level Engine
// per invocation.
type Cache struct {
	mu      sync.Mutex
	byFile  map[string]*ir.Module
	pending map[string]bool // cycle detection: files currently being loaded
	roots   []string        // standard-library search roots
}

// New returns an empty Cache searching roots (in order) for `.w` modules
// not found in the importing file's own directory.
func New(roots ...string) *Cache {
	return &Cache{byFile: map[string]*ir.Module{}, pending: map[string]bool{}, roots: roots}
}

// Canonical returns the canonical cache key for a module source path.
func Canonical(path string) (string, error) {
	return filepath.Abs(path)
}

// Get returns the already-cached Module for a canonical filename, if any.
func (c *Cache) Get(canonicalFilename string) (*ir.Module, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.byFile[canonicalFilename]
	return m, ok
}

// Store installs mod under canonicalFilename. Calling Store twice for
// the same filename is a caller bug (it would violate invariant I7,
// "installed exactly once") and the second call is ignored rather than
// overwriting, so a racing duplicate load can never clobber the first.
func (c *Cache) Store(canonicalFilename string, mod *ir.Module) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.byFile[canonicalFilename]; exists {
		return
	}
	c.byFile[canonicalFilename] = mod
}

// BeginLoad marks canonicalFilename as in progress, returning false if it
// is already being loaded (an import cycle, perr.ErrCycle) so the loader
// can abort instead of recursing forever.
func (c *Cache) BeginLoad(canonicalFilename string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending[canonicalFilename] {
		return false
	}
	c.pending[canonicalFilename] = true
	return true
}

// EndLoad clears the in-progress marker set by BeginLoad.
func (c *Cache) EndLoad(canonicalFilename string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, canonicalFilename)
}

// Resolve searches, in order, the importing file's own directory and
// every configured root for a `<name>.w` source file, returning the
// first match. This is the pinned resolution for spec.md §4.G's Open
// Question "where does a bare `import name` look for name.w".
func (c *Cache) Resolve(name, importerDir string) (string, bool) {
	candidates := append([]string{importerDir}, c.roots...)
	for _, dir := range candidates {
		pattern := filepath.Join(dir, name+".w")
		matches, err := doublestar.FilepathGlob(pattern)
		if err == nil && len(matches) > 0 {
			return matches[0], true
		}
	}
	return "", false
}
