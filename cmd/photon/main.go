// Command photon is the CLI entry point for the photon transpiler,
// grounded on the teacher's demo/cmd/main.go rootCmd/subcommand layout:
// a root command that transpiles a file when given one, plus a `modules
// list` subcommand exposing the registered backend set.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/photon-lang/photon/internal/backend"
	"github.com/photon-lang/photon/internal/cli"
	"github.com/photon-lang/photon/internal/config"
	"github.com/photon-lang/photon/internal/engine"
	"github.com/photon-lang/photon/internal/modcache"
	"github.com/photon-lang/photon/internal/perr"
	"github.com/photon-lang/photon/internal/trace"
)

var (
	flagLang          string
	flagPlatform      string
	flagFramework     string
	flagModule        bool
	flagStandardLibs  string
	flagDebug         bool
	flagTranspileOnly bool
	flagDebugDB       string
	flagDiff          bool
)

func main() {
	config.LoadDotenv("")

	root := &cobra.Command{
		Use:   "photon [filename]",
		Short: "Transpile photon source to a target language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runREPL(cmd)
			}
			return runFile(cmd, args[0])
		},
	}
	root.Flags().StringVarP(&flagLang, "lang", "l", "", "target language (c, py, dart, js, ts, haxe, d)")
	root.Flags().StringVar(&flagPlatform, "platform", "", "target platform hint")
	root.Flags().StringVar(&flagFramework, "framework", "", "target framework hint")
	root.Flags().BoolVar(&flagModule, "module", false, "process as an importable module rather than a program")
	root.Flags().StringVar(&flagStandardLibs, "standard-libs", "", "comma-separated standard library search roots")
	root.Flags().BoolVar(&flagDebug, "debug", false, "enable verbose engine logging")
	root.Flags().BoolVar(&flagTranspileOnly, "transpile-only", false, "print rendered output without writing a file")
	root.Flags().StringVar(&flagDebugDB, "debug-db", "", "path to a SQLite trace database recording every processed statement")
	root.Flags().BoolVar(&flagDiff, "diff", false, "print a unified diff against the previous output file before overwriting it")

	modulesCmd := &cobra.Command{
		Use:   "modules",
		Short: "Inspect the registered transpiler backends",
	}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered backend languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := backend.NewRegistry()
			if err := backend.RegisterAll(reg); err != nil {
				return err
			}
			names := reg.Names()
			sort.Strings(names)
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
	modulesCmd.AddCommand(listCmd)
	root.AddCommand(modulesCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErr(err))
		os.Exit(1)
	}
}

func buildConfig(filename string) engine.Config {
	cfg := config.Defaults()
	cfg.Filename = filename
	if flagLang != "" {
		cfg.Lang = flagLang
	}
	if flagPlatform != "" {
		cfg.Platform = flagPlatform
	}
	if flagFramework != "" {
		cfg.Framework = flagFramework
	}
	if flagStandardLibs != "" {
		cfg.StandardLibs = flagStandardLibs
	}
	cfg.Module = flagModule
	cfg.Debug = cfg.Debug || flagDebug
	cfg.TranspileOnly = cfg.TranspileOnly || flagTranspileOnly
	cfg.ShowDiff = flagDiff
	return cfg
}

func buildRunner(cfg engine.Config) (*cli.Runner, func(), error) {
	reg := backend.NewRegistry()
	if err := backend.RegisterAll(reg); err != nil {
		return nil, nil, err
	}
	roots := config.StandardLibRoots()
	if cfg.StandardLibs != "" {
		roots = append(strings.Split(cfg.StandardLibs, ","), roots...)
	}
	cache := modcache.New(roots...)
	runner := cli.NewRunner(cfg, reg, cache)

	dbPath := flagDebugDB
	if dbPath == "" {
		dbPath = config.DebugDBPath()
	}
	closeFn := func() {}
	if dbPath != "" {
		store, err := trace.Open(dbPath, cfg.Debug)
		if err != nil {
			return nil, nil, err
		}
		runID, err := store.StartRun(cfg.Filename, cfg.Lang, 0)
		if err != nil {
			return nil, nil, err
		}
		seq := 0
		runner.Trace = func(format string, args ...any) {
			seq++
			_ = store.RecordEvent(runID, seq, fmt.Sprintf(format, args...), "")
		}
		closeFn = func() {
			_ = store.EndRun(runID, 0)
			_ = store.Close()
		}
	}
	return runner, closeFn, nil
}

func runFile(cmd *cobra.Command, filename string) error {
	cfg := buildConfig(filename)
	runner, closeFn, err := buildRunner(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	out, err := runner.RunFile()
	if err != nil {
		return err
	}
	if cfg.TranspileOnly {
		fmt.Fprint(cmd.OutOrStdout(), out)
	}
	return nil
}

func runREPL(cmd *cobra.Command) error {
	cfg := buildConfig("")
	runner, closeFn, err := buildRunner(cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	return runner.RunREPL(cmd.InOrStdin(), cmd.OutOrStdout())
}

func formatErr(err error) string {
	if code := perr.CodeOf(err); code != "" {
		return fmt.Sprintf("[%s] %v", code, err)
	}
	return fmt.Sprintf("Error: %v", err)
}
