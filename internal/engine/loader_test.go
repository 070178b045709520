package engine

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photon-lang/photon/internal/ir"
	"github.com/photon-lang/photon/internal/modcache"
	"github.com/photon-lang/photon/internal/parser"
)

func runInDir(t *testing.T, dir, filename, src string) *Engine {
	t.Helper()
	eng := New(Config{Filename: filepath.Join(dir, filename)}, modcache.New())
	driver := parser.NewDriver(parser.NewFileSource(strings.NewReader(src)), eng.Parser, filename)
	for {
		stmt, err := driver.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.NoError(t, eng.Process(stmt))
	}
	return eng
}

func TestImportLoadsModuleAndExportsFunction(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "geometry.w"), []byte("def area(x):\n    return x * x\n"), 0o644))

	eng := runInDir(t, dir, "main.w", "import geometry\n")
	require.Len(t, eng.Sequence, 1)
	mod, ok := eng.Sequence[0].(*ir.Module)
	require.True(t, ok)
	_, exported := mod.Exports["area"]
	assert.True(t, exported)
}

func TestFromImportBindsNamedExport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "geometry.w"), []byte("def area(x):\n    return x * x\n"), 0o644))

	eng := runInDir(t, dir, "main.w", "from geometry import area\ny = area(3)\n")
	require.Len(t, eng.Sequence, 2)
	_, ok := eng.Scope.Get("area")
	assert.True(t, ok)
}

func TestImportMissingModuleErrors(t *testing.T) {
	dir := t.TempDir()
	eng := New(Config{Filename: filepath.Join(dir, "main.w")}, modcache.New())
	driver := parser.NewDriver(parser.NewFileSource(strings.NewReader("import nope\n")), eng.Parser, "main.w")
	stmt, err := driver.Next()
	require.NoError(t, err)
	err = eng.Process(stmt)
	assert.Error(t, err)
}

func TestImportCachesModuleAcrossTwoImportStatements(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "geometry.w"), []byte("def area(x):\n    return x * x\n"), 0o644))

	cache := modcache.New()
	eng := New(Config{Filename: filepath.Join(dir, "main.w")}, cache)
	driver := parser.NewDriver(parser.NewFileSource(strings.NewReader("import geometry\nimport geometry\n")), eng.Parser, "main.w")
	for {
		stmt, err := driver.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.NoError(t, eng.Process(stmt))
	}
	var mods []*ir.Module
	for _, n := range eng.Sequence {
		if m, ok := n.(*ir.Module); ok {
			mods = append(mods, m)
		}
	}
	require.Len(t, mods, 2)
	assert.Same(t, mods[0], mods[1], "invariant I7: a module is installed exactly once and reused")
}
