package main

import (
	"context"
	"fmt"
	"log/slog"
	"rinha/config"
	"rinha/eval"
	"rinha/ioctx"
	"rinha/parser"
	"rinha/resolver"
	"time"

	"github.com/pkg/errors"
)

func runFile(ctx context.Context, cfg *config.Config, logger *slog.Logger, path string, timed bool) error {
	file, source, err := parser.LoadFile(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded program", "path", path, "name", file.Name)
	for _, w := range resolver.Check(file, source) {
		logger.Debug("resolver warning", "warning", w)
	}

	stdout := ioctx.StdoutFromContext(ctx)
	opts := cfg.EvalOptions()
	opts.Stdout = stdout
	opts.Logger = logger

	start := time.Now()
	if _, err := eval.Run(ctx, file.Expression, opts); err != nil {
		return renderError(err, source)
	}
	if timed {
		fmt.Fprintf(stdout, "Execution Time: %s\n", time.Since(start))
	}
	return nil
}

// renderError attaches source positions and the call trace to runtime
// errors; everything else is returned as is.
func renderError(err error, source string) error {
	var e *eval.Error
	if errors.As(err, &e) {
		return errors.New(e.Render(source))
	}
	return err
}
