// Package config builds an internal/engine.Config from CLI flags layered
// over .env defaults, grounded on the teacher's internal/config package:
// environment variables loaded via joho/godotenv supply defaults a flag
// can still override, so a developer's local `.env` never silently wins
// over an explicit `--lang` on the command line.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/photon-lang/photon/internal/engine"
)

// envPrefix namespaces every photon environment variable.
const envPrefix = "PHOTON_"

// LoadDotenv loads a `.env` file if present, silently continuing when it
// is absent -- a missing .env is the common case in CI and production.
func LoadDotenv(path string) {
	if path == "" {
		path = ".env"
	}
	_ = godotenv.Load(path)
}

// Defaults reads PHOTON_-prefixed environment variables (after
// LoadDotenv populated them, if a .env file existed) into a partially
// filled engine.Config; flag values the caller parsed separately should
// overwrite any field a flag explicitly sets.
func Defaults() engine.Config {
	cfg := engine.Config{
		Lang:     envOr("LANG", "c"),
		Platform: envOr("PLATFORM", ""),
		Framework: envOr("FRAMEWORK", ""),
		StandardLibs: envOr("STANDARD_LIBS", ""),
	}
	cfg.Debug = envBool("DEBUG", false)
	cfg.TranspileOnly = envBool("TRANSPILE_ONLY", false)
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// DebugDBPath returns the --debug-db path default from PHOTON_DEBUG_DB,
// empty when unset (the trace store is then not opened at all).
func DebugDBPath() string {
	return os.Getenv(envPrefix + "DEBUG_DB")
}

// StandardLibRoots returns PHOTON_STDLIB_ROOTS split on the OS path-list
// separator, consulted by internal/modcache.Cache's standard-library search.
func StandardLibRoots() []string {
	v := os.Getenv(envPrefix + "STDLIB_ROOTS")
	if v == "" {
		return nil
	}
	return splitPathList(v)
}

func splitPathList(v string) []string {
	var out []string
	start := 0
	for i := 0; i < len(v); i++ {
		if v[i] == os.PathListSeparator {
			out = append(out, v[start:i])
			start = i + 1
		}
	}
	out = append(out, v[start:])
	return out
}
