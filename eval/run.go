package eval

import (
	"context"
	"rinha/ioctx"
	"rinha/parser"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Run evaluates term against an empty environment on a goroutine of its
// own, with the process-wide stack limit set to opts.MaxStack for the
// duration (see setMaxStack for overlapping runs). print output goes to
// opts.Stdout, or to the stdout carried by ctx when that is nil.
func Run(ctx context.Context, term parser.Term, opts Options) (Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Stdout == nil {
		opts.Stdout = ioctx.StdoutFromContext(ctx)
	}
	ev := New(opts)
	log := ev.opts.Logger

	defer setMaxStack(ev.opts.MaxStack)()

	log.Debug("evaluation started", "max_depth", ev.opts.MaxDepth, "max_stack", ev.opts.MaxStack)
	start := time.Now()

	var rv Value
	eg := new(errgroup.Group)
	eg.Go(func() error {
		v, err := ev.Eval(term, NewEnvironment())
		rv = v
		return err
	})
	err := eg.Wait()

	if err != nil {
		log.Debug("evaluation failed", "duration", time.Since(start), "error", err)
		return nil, err
	}
	log.Debug("evaluation finished", "duration", time.Since(start), "result", rv.Type())
	return rv, nil
}

var maxStack struct {
	sync.Mutex
	active int // runs in progress
	prev   int // limit before the first of them started
	cur    int
}

// setMaxStack sets the stack limit for a run and returns the function
// that undoes it. The limit is process-wide: overlapping runs share the
// largest limit any of them asked for, and the original one comes back
// when the last of them finishes.
func setMaxStack(n int) (restore func()) {
	maxStack.Lock()
	defer maxStack.Unlock()
	switch {
	case maxStack.active == 0:
		maxStack.prev = debug.SetMaxStack(n)
		maxStack.cur = n
	case n > maxStack.cur:
		debug.SetMaxStack(n)
		maxStack.cur = n
	}
	maxStack.active++
	return func() {
		maxStack.Lock()
		defer maxStack.Unlock()
		maxStack.active--
		if maxStack.active == 0 {
			debug.SetMaxStack(maxStack.prev)
		}
	}
}
