package main

// implements the rinha command: run a program, start the repl, or inspect
// a program without running it.

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"rinha/config"
	"rinha/ioctx"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var VERSION string

// Flags holds the command line flags shared by every subcommand.
type Flags struct {
	Debug       bool
	ConfigPath  string
	MaxDepth    int
	StrictArity bool
	Time        bool
}

func main() {
	ctx := context.Background()
	ctx = ioctx.WithStreams(ctx, os.Stdout, os.Stderr)
	if err := fang.Execute(ctx, newRootCmd(),
		fang.WithVersion(sliceVersion(VERSION)),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags Flags

	rootCmd := &cobra.Command{
		Use:   "rinha [flags] [file]",
		Short: "Rinha language interpreter",
		Long: `Rinha is a small expression language with integers, strings, tuples
and first-class functions. Programs are given either as source text or as
a JSON/YAML syntax tree (files ending in .json, .yaml or .yml).`,
		Example: `  # Run a program
  rinha fib.rinha

  # Run a pre-parsed syntax tree and report how long it took
  rinha --time fib.json

  # Start the interactive REPL
  rinha`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, &flags)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return runFile(cmd.Context(), cfg, logger, args[0], flags.Time)
			}
			return runREPL(cmd.Context(), cfg, logger)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.Debug, "debug", "d", false, "Enable debug logging")
	pf.StringVar(&flags.ConfigPath, "config", "", "Path to rinha.toml (searched upwards from the working directory if not specified)")
	pf.IntVar(&flags.MaxDepth, "max-depth", 0, "Maximum evaluation depth")
	pf.BoolVar(&flags.StrictArity, "strict-arity", false, "Fail on calls with the wrong number of arguments")
	rootCmd.Flags().BoolVar(&flags.Time, "time", false, "Print the execution time after a successful run")

	rootCmd.AddCommand(checkCmd(&flags), astCmd(&flags))
	return rootCmd
}

// setup loads the configuration, applies flag overrides and builds the
// logger every command logs to.
func setup(cmd *cobra.Command, flags *Flags) (*config.Config, *slog.Logger, error) {
	ctx := cmd.Context()
	path, cfg, err := findConfig(flags.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.Eval.MaxDepth = flags.MaxDepth
	}
	if cmd.Flags().Changed("strict-arity") {
		cfg.Eval.StrictArity = flags.StrictArity
	}
	if flags.Debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	level, _ := cfg.LogLevel()
	logger := newLogger(ioctx.StderrFromContext(ctx), level)
	if path != "" {
		logger.Debug("loaded configuration", "path", path)
	}
	return cfg, logger, nil
}

func findConfig(explicit string) (string, *config.Config, error) {
	if explicit != "" {
		cfg, err := config.Load(explicit)
		return explicit, cfg, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", config.Default(), nil
	}
	path, cfg, err := config.Find(cwd)
	if err != nil {
		return "", nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return path, cfg, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}

func sliceVersion(v string) string {
	if v == "" {
		return "dev"
	}
	m := 10
	if len(v) < 10 {
		m = len(v)
	}
	return v[0:m]
}
