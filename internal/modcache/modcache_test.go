package modcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photon-lang/photon/internal/ir"
)

func TestStoreAndGetRoundTrip(t *testing.T) {
	c := New()
	mod := ir.NewModule("geometry", "geometry.w")
	c.Store("/abs/geometry.w", mod)

	got, ok := c.Get("/abs/geometry.w")
	require.True(t, ok)
	assert.Same(t, mod, got)
}

func TestStoreIsInstallOnce(t *testing.T) {
	c := New()
	first := ir.NewModule("geometry", "geometry.w")
	second := ir.NewModule("geometry", "geometry.w")
	c.Store("/abs/geometry.w", first)
	c.Store("/abs/geometry.w", second)

	got, ok := c.Get("/abs/geometry.w")
	require.True(t, ok)
	assert.Same(t, first, got, "invariant I7: installed exactly once")
}

func TestBeginLoadDetectsCycle(t *testing.T) {
	c := New()
	require.True(t, c.BeginLoad("/abs/a.w"))
	assert.False(t, c.BeginLoad("/abs/a.w"), "a second in-progress load of the same file is a cycle")
	c.EndLoad("/abs/a.w")
	assert.True(t, c.BeginLoad("/abs/a.w"), "ended loads can be restarted")
}

func TestResolveFindsFileInImporterDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "geometry.w"), []byte("x = 1\n"), 0o644))

	c := New()
	got, ok := c.Resolve("geometry", dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "geometry.w"), got)
}

func TestResolveSearchesConfiguredRoots(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "stdmath.w"), []byte("x = 1\n"), 0o644))

	c := New(root)
	empty := t.TempDir()
	got, ok := c.Resolve("stdmath", empty)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "stdmath.w"), got)
}

func TestResolveMissingModule(t *testing.T) {
	c := New()
	_, ok := c.Resolve("nope", t.TempDir())
	assert.False(t, ok)
}

func TestCanonicalReturnsAbsolutePath(t *testing.T) {
	got, err := Canonical("geometry.w")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}
