// Package ioctx carries the process output streams in a context.Context,
// so commands and the evaluator can be pointed at buffers in tests.
package ioctx

import (
	"context"
	"io"
)

type (
	stdoutKey struct{}
	stderrKey struct{}
)

// WithStreams stores both output streams in ctx.
func WithStreams(ctx context.Context, stdout, stderr io.Writer) context.Context {
	return StderrToContext(StdoutToContext(ctx, stdout), stderr)
}

func StdoutToContext(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stdoutKey{}, w)
}

func StderrToContext(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stderrKey{}, w)
}

// StdoutFromContext returns the stored stdout, or io.Discard.
func StdoutFromContext(ctx context.Context) io.Writer {
	return writerFrom(ctx, stdoutKey{})
}

// StderrFromContext returns the stored stderr, or io.Discard.
func StderrFromContext(ctx context.Context) io.Writer {
	return writerFrom(ctx, stderrKey{})
}

func writerFrom(ctx context.Context, key interface{}) io.Writer {
	if w, ok := ctx.Value(key).(io.Writer); ok && w != nil {
		return w
	}
	return io.Discard
}
