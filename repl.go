package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"rinha/config"
	"rinha/eval"
	"rinha/ioctx"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

var LOGO = `
       _       _           |
  _ __(_)_ __ | |__   __ _ | rinha language
 | '__| | '_ \| '_ \ / _' || version: $VERSION
 | |  | | | | | | | | (_| || type exit to leave
 |_|  |_|_| |_|_| |_|\__,_||
`

// lineReader is the part of *readline.Instance the repl needs.
type lineReader interface {
	Readline() (string, error)
}

func runREPL(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	stdout := ioctx.StdoutFromContext(ctx)
	stderr := ioctx.StderrFromContext(ctx)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      cfg.REPL.Prompt,
		HistoryFile: cfg.HistoryPath(),
		Stdout:      stdout,
		Stderr:      stderr,
	})
	if err != nil {
		return errors.Wrap(err, "starting readline")
	}
	defer rl.Close()

	fmt.Fprintln(stdout, strings.Replace(LOGO, "$VERSION", sliceVersion(VERSION), 1))
	opts := cfg.EvalOptions()
	opts.Logger = logger
	ic := eval.NewInteractiveContext(opts)
	return repl(ctx, rl, ic)
}

// repl reads and evaluates lines until exit, quit or end of input.
func repl(ctx context.Context, rl lineReader, ic *eval.InteractiveContext) error {
	stdout := ioctx.StdoutFromContext(ctx)
	stderr := ioctx.StderrFromContext(ctx)
	ic.Options.Stdout = stdout
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading input")
		}
		switch strings.TrimSpace(line) {
		case "exit", "quit", "exit()", "quit()":
			fmt.Fprintln(stdout, "Bye!")
			return nil
		case "clear", "cls":
			readline.ClearScreen(stdout)
			continue
		}
		rv, errs := ic.Run(ctx, line)
		if reportErrors(stderr, errs, line) {
			continue
		}
		if rv.Type() == eval.VT_UNIT {
			continue
		}
		fmt.Fprintln(stdout, eval.Inspect(rv))
	}
}

func reportErrors(w io.Writer, errs []error, source string) bool {
	if len(errs) == 0 {
		return false
	}
	for _, err := range errs {
		fmt.Fprintf(w, "%s\n", renderError(err, source))
	}
	return true
}
