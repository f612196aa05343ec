package ioctx_test

import (
	"bytes"
	"context"
	"io"
	"rinha/ioctx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreams(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, io.Discard, ioctx.StdoutFromContext(ctx))
	assert.Equal(t, io.Discard, ioctx.StderrFromContext(ctx))

	var stdout, stderr bytes.Buffer
	ctx = ioctx.WithStreams(ctx, &stdout, &stderr)
	io.WriteString(ioctx.StdoutFromContext(ctx), "out")
	io.WriteString(ioctx.StderrFromContext(ctx), "err")
	assert.Equal(t, "out", stdout.String())
	assert.Equal(t, "err", stderr.String())
}
