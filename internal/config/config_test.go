package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LANG", "PLATFORM", "FRAMEWORK", "STANDARD_LIBS", "DEBUG", "TRANSPILE_ONLY", "DEBUG_DB", "STDLIB_ROOTS"} {
		key := envPrefix + k
		old, had := os.LookupEnv(key)
		os.Unsetenv(key)
		t.Cleanup(func() {
			if had {
				os.Setenv(key, old)
			}
		})
	}
}

func TestDefaultsFallBackWhenEnvUnset(t *testing.T) {
	clearEnv(t)
	cfg := Defaults()
	assert.Equal(t, "c", cfg.Lang)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.TranspileOnly)
}

func TestDefaultsReadEnvOverrides(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Setenv(envPrefix+"LANG", "py"))
	require.NoError(t, os.Setenv(envPrefix+"DEBUG", "true"))
	cfg := Defaults()
	assert.Equal(t, "py", cfg.Lang)
	assert.True(t, cfg.Debug)
}

func TestEnvBoolIgnoresUnparseableValue(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Setenv(envPrefix+"DEBUG", "not-a-bool"))
	assert.False(t, envBool("DEBUG", false))
}

func TestDebugDBPathReadsEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Setenv(envPrefix+"DEBUG_DB", "/tmp/trace.db"))
	assert.Equal(t, "/tmp/trace.db", DebugDBPath())
}

func TestStandardLibRootsSplitsPathList(t *testing.T) {
	clearEnv(t)
	sep := string(os.PathListSeparator)
	require.NoError(t, os.Setenv(envPrefix+"STDLIB_ROOTS", "/a"+sep+"/b"))
	assert.Equal(t, []string{"/a", "/b"}, StandardLibRoots())
}

func TestStandardLibRootsEmptyWhenUnset(t *testing.T) {
	clearEnv(t)
	assert.Nil(t, StandardLibRoots())
}

func TestLoadDotenvMissingFileDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { LoadDotenv("/nonexistent/.env") })
}
