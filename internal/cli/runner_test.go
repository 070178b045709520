package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photon-lang/photon/internal/backend"
	"github.com/photon-lang/photon/internal/engine"
	"github.com/photon-lang/photon/internal/modcache"
)

func newTestRegistry(t *testing.T) *backend.Registry {
	t.Helper()
	reg := backend.NewRegistry()
	require.NoError(t, backend.RegisterAll(reg))
	return reg
}

func TestRunFileWritesTranspiledOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.w")
	require.NoError(t, os.WriteFile(src, []byte("x = 1\nprint(x)\n"), 0o644))

	r := NewRunner(engine.Config{Filename: src, Lang: "c"}, newTestRegistry(t), modcache.New())
	out, err := r.RunFile()
	require.NoError(t, err)
	assert.Contains(t, out, "x = 1;")

	written, err := os.ReadFile(filepath.Join(dir, "main.c"))
	require.NoError(t, err)
	assert.Equal(t, out, string(written))
}

func TestRunFileTranspileOnlySkipsWrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.w")
	require.NoError(t, os.WriteFile(src, []byte("x = 1\n"), 0o644))

	r := NewRunner(engine.Config{Filename: src, Lang: "c", TranspileOnly: true}, newTestRegistry(t), modcache.New())
	_, err := r.RunFile()
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "main.c"))
	assert.True(t, os.IsNotExist(statErr), "transpile-only must not write a file")
}

func TestRunFileUnregisteredLanguageErrors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.w")
	require.NoError(t, os.WriteFile(src, []byte("x = 1\n"), 0o644))

	r := NewRunner(engine.Config{Filename: src, Lang: "cobol"}, newTestRegistry(t), modcache.New())
	_, err := r.RunFile()
	assert.Error(t, err)
}

func TestRunFileMissingSourceErrors(t *testing.T) {
	r := NewRunner(engine.Config{Filename: "/nonexistent/main.w", Lang: "c"}, newTestRegistry(t), modcache.New())
	_, err := r.RunFile()
	assert.Error(t, err)
}

func TestRunREPLPrintsRenderedStatements(t *testing.T) {
	in := bytes.NewBufferString("x = 1\nprint(x)\nexit\n")
	var out bytes.Buffer

	r := NewRunner(engine.Config{Filename: "<repl>", Lang: "py"}, newTestRegistry(t), modcache.New())
	require.NoError(t, r.RunREPL(in, &out))

	assert.Contains(t, out.String(), "x = 1")
	assert.Contains(t, out.String(), "print(x)")
}

func TestOutputPathDerivesFromBackendExtension(t *testing.T) {
	reg := newTestRegistry(t)
	assert.Equal(t, "/tmp/main.c", outputPath("/tmp/main.w", reg, "c"))
	assert.Equal(t, "/tmp/main.js", outputPath("/tmp/main.w", reg, "javascript"))
}

func TestRunFileWithDiffPrintsToStderr(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.w")
	require.NoError(t, os.WriteFile(src, []byte("x = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.c"), []byte("x = 0;\n"), 0o644))

	r := NewRunner(engine.Config{Filename: src, Lang: "c", ShowDiff: true}, newTestRegistry(t), modcache.New())
	rd, wr, err := os.Pipe()
	require.NoError(t, err)
	oldStderr := os.Stderr
	os.Stderr = wr
	_, err = r.RunFile()
	wr.Close()
	os.Stderr = oldStderr
	require.NoError(t, err)
	captured, readErr := io.ReadAll(rd)
	require.NoError(t, readErr)
	assert.Contains(t, string(captured), "main.c (previous)")
	assert.Contains(t, string(captured), "-x = 0;")
}
