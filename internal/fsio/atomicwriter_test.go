package fsio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileCreatesNewFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.c")
	w := New(DefaultConfig())

	require.NoError(t, w.WriteFile(path, "int main() {}\n"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "int main() {}\n", string(got))
}

func TestWriteFileLeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.c")
	w := New(DefaultConfig())
	require.NoError(t, w.WriteFile(path, "x\n"))

	_, err := os.Stat(path + DefaultConfig().TempSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileOverwritesAndBacksUpOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.c")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	w := New(DefaultConfig())
	require.NoError(t, w.WriteFile(path, "new\n"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var hasBackup bool
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".c" && e.Name() != "out.c" {
			hasBackup = true
		}
	}
	assert.True(t, hasBackup, "expected a timestamped backup of the previous file")
}

func TestWriteFileWithoutBackupSkipsIt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.c")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	w := New(Config{TempSuffix: ".tmp"})
	require.NoError(t, w.WriteFile(path, "new\n"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no backup file should be created")
}
