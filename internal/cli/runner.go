// Package cli sequences photon's file-mode and REPL-mode runs, wiring
// together internal/parser's Driver, internal/engine's Engine, and an
// internal/backend.Transpiler, the way the teacher's internal/cli.Runner
// sequences a scan -> match -> transform -> write pipeline for a single
// invocation.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/photon-lang/photon/internal/assembler"
	"github.com/photon-lang/photon/internal/backend"
	"github.com/photon-lang/photon/internal/engine"
	"github.com/photon-lang/photon/internal/fsio"
	"github.com/photon-lang/photon/internal/ir"
	"github.com/photon-lang/photon/internal/modcache"
	"github.com/photon-lang/photon/internal/parser"
	"github.com/photon-lang/photon/internal/perr"
)

// Runner owns one photon invocation: it builds an Engine, drives it
// through every statement of the source (file or interactive), then
// hands the finished Sequence to a resolved backend.Transpiler and
// writes the result.
type Runner struct {
	Config   engine.Config
	Registry *backend.Registry
	Cache    *modcache.Cache
	Writer   *fsio.Writer

	// Trace, when non-nil, is wired to internal/engine.Engine.Trace so
	// every processed node is recorded (spec.md §6 --debug-db).
	Trace func(format string, args ...any)
}

// NewRunner constructs a Runner ready to RunFile or RunREPL.
func NewRunner(cfg engine.Config, reg *backend.Registry, cache *modcache.Cache) *Runner {
	return &Runner{Config: cfg, Registry: reg, Cache: cache, Writer: fsio.New(fsio.DefaultConfig())}
}

// RunFile reads cfg.Filename end to end, processing every statement
// through a fresh Engine, then transpiles and (unless TranspileOnly
// suppresses writing -- mirroring the original Interpreter.file's
// transpileOnly branch) writes the rendered output next to the source.
func (r *Runner) RunFile() (string, error) {
	f, err := os.Open(r.Config.Filename)
	if err != nil {
		return "", &perr.IOError{Path: r.Config.Filename, Inner: err}
	}
	defer f.Close()

	eng := engine.New(r.Config, r.Cache)
	eng.Trace = r.Trace

	src := parser.NewFileSource(f)
	driver := parser.NewDriver(src, eng.Parser, r.Config.Filename)
	for {
		stmt, err := driver.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if err := eng.Process(stmt); err != nil {
			return "", err
		}
	}

	out, err := r.render(eng)
	if err != nil {
		return "", err
	}
	if r.Config.TranspileOnly {
		return out, nil
	}
	destPath := outputPath(r.Config.Filename, r.Registry, r.Config.Lang)
	if r.Config.ShowDiff {
		if err := r.printDiff(destPath, out); err != nil {
			return "", err
		}
	}
	if err := r.Writer.WriteFile(destPath, out); err != nil {
		return "", err
	}
	return out, nil
}

// printDiff writes a unified diff of destPath's current contents against
// newContent to stderr, the way a re-run of `photon --diff` shows a
// developer exactly what a regenerated target changed. A missing destPath
// (first run) is treated as an empty "before" side.
func (r *Runner) printDiff(destPath, newContent string) error {
	before, err := os.ReadFile(destPath)
	if err != nil && !os.IsNotExist(err) {
		return &perr.IOError{Path: destPath, Inner: err}
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(newContent),
		FromFile: destPath + " (previous)",
		ToFile:   destPath + " (new)",
		Context:  3,
	})
	if err != nil {
		return err
	}
	if strings.TrimSpace(diff) != "" {
		fmt.Fprint(os.Stderr, diff)
	}
	return nil
}

// RunREPL drives an interactive session: read, assemble/block, process,
// transpile-and-print one statement at a time, the way Interpreter.run
// looped over self.input('>>> ')/('... ') until the user typed `exit`.
func (r *Runner) RunREPL(in io.Reader, out io.Writer) error {
	eng := engine.New(r.Config, r.Cache)
	eng.Trace = r.Trace

	reader := bufio.NewReader(in)
	readLine := func(prompt assembler.Prompt) (string, error) {
		if isatty.IsTerminal(os.Stdin.Fd()) {
			fmt.Fprint(out, string(prompt))
		}
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", io.EOF
		}
		if line == "exit\n" || line == "exit" {
			return "", io.EOF
		}
		return line, nil
	}

	src := parser.NewREPLSource(readLine)
	driver := parser.NewDriver(src, eng.Parser, r.Config.Filename)
	for {
		stmt, err := driver.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if err := eng.Process(stmt); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		rendered, err := r.render(eng)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprint(out, rendered)
	}
}

// render resolves the configured backend and runs it over the engine's
// accumulated Sequence so far.
func (r *Runner) render(eng *engine.Engine) (string, error) {
	t, ok := r.Registry.Resolve(eng.Config.Lang)
	if !ok {
		return "", fmt.Errorf("no backend registered for language %q", eng.Config.Lang)
	}
	seq := ir.NewSequence(eng.Sequence)
	return t.Run(seq)
}

// outputPath derives the transpiled output filename: the source's stem
// plus the resolved backend's registered extension.
func outputPath(sourcePath string, reg *backend.Registry, lang string) string {
	t, ok := reg.Resolve(lang)
	ext := lang
	if ok {
		ext = t.Extension()
	}
	stem := sourcePath
	for i := len(stem) - 1; i >= 0; i-- {
		if stem[i] == '.' {
			stem = stem[:i]
			break
		}
		if stem[i] == '/' {
			break
		}
	}
	return stem + "." + ext
}
