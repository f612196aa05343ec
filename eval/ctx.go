package eval

import (
	"io"
	"log/slog"
	"math/bits"
)

const (
	// DefaultMaxStack is 4 GiB on 64-bit platforms and 1 GiB elsewhere.
	DefaultMaxStack = 1 << 30 << (2 * (bits.UintSize / 64))
	// StackPerDepth is the goroutine stack reserved for each level of
	// MaxDepth. A depth quota larger than MaxStack/StackPerDepth could
	// overflow the stack before StackExhausted is reported.
	StackPerDepth   = 2048
	DefaultMaxDepth = min(1_000_000, DefaultMaxStack/StackPerDepth)
)

// DepthLimit is the largest MaxDepth that maxStack bytes of stack can hold.
func DepthLimit(maxStack int) int { return maxStack / StackPerDepth }

type Options struct {
	// Stdout receives the output of print. Run falls back to the writer
	// carried by its context.Context when nil.
	Stdout io.Writer
	// MaxDepth is the maximum number of nested Eval frames.
	MaxDepth int
	// MaxStack is the goroutine stack limit applied by Run, in bytes.
	MaxStack int
	// StrictArity turns parameter/argument count mismatches into errors.
	StrictArity bool
	Logger      *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Stdout == nil {
		o.Stdout = io.Discard
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxStack <= 0 {
		o.MaxStack = DefaultMaxStack
	}
	o.MaxDepth = min(o.MaxDepth, DepthLimit(o.MaxStack))
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

type Context struct {
	opts Options
	// stack contains the current call stack. we consult the call-stack to tell
	// us which function we're in when an error is raised.
	stack []callStackEntry
	// number of Eval frames currently active.
	depth int
}

func New(opts Options) *Context {
	return &Context{
		opts:  opts.withDefaults(),
		stack: []callStackEntry{moduleCse{}},
	}
}
