package eval

import (
	"bytes"
	"errors"
	"fmt"
	"rinha/parser"
)

// Runtime errors are plain Go errors of type *Error. The protocol around
// building one is:
//
//   1. Every time we call a closure we push a functionCse, and pop it
//      once the body returns.
//
//   2. The failing expression creates the error with ctx.fail, which
//      records where it happened and in which frame.
//
//   3. Every call the error unwinds through appends the call site,
//      together with the frame the call was made from.

//go:generate go tool stringer -type=ErrorKind

type ErrorKind uint8

const (
	_ = ErrorKind(iota)
	TypeError
	UndefinedVariable
	NotCallable
	DivisionByZero
	IndexError
	UserError
	ArityError
	StackExhausted
	OutputError
)

type TraceEntry struct {
	Location parser.Location
	Context  string // e.g. [Module] or [Function fib]
}

// maxTrace bounds the recorded trace; deep recursion would otherwise
// produce one entry per guest call.
const maxTrace = 64

type Error struct {
	Kind     ErrorKind
	Message  string
	Location parser.Location
	Trace    []TraceEntry
	// entries dropped once the trace was full.
	Omitted int
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) addContext(loc parser.Location, cse callStackEntry) {
	if len(e.Trace) >= maxTrace {
		e.Omitted++
		return
	}
	e.Trace = append(e.Trace, TraceEntry{Location: loc, Context: cse.Context()})
}

// Render formats the error together with its trace. Positions are
// resolved against source when it is available; decoded trees only
// carry byte offsets.
func (e *Error) Render(source string) string {
	var buf bytes.Buffer
	buf.WriteString(e.Error())
	for _, entry := range e.Trace {
		buf.WriteString("\n")
		buf.WriteString(fmt.Sprintf("  at %s: %s", entry.Location.Describe(source), entry.Context))
	}
	if e.Omitted > 0 {
		buf.WriteString(fmt.Sprintf("\n  ... %d more", e.Omitted))
	}
	return buf.String()
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func (ctx *Context) fail(kind ErrorKind, loc parser.Location, format string, args ...interface{}) *Error {
	err := &Error{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
		Trace:    []TraceEntry{},
	}
	err.addContext(loc, ctx.currFunc())
	return err
}

func (ctx *Context) pushFunc(cse callStackEntry) { ctx.stack = append(ctx.stack, cse) }
func (ctx *Context) popFunc()                    { ctx.stack = ctx.stack[:len(ctx.stack)-1] }
func (ctx *Context) currFunc() callStackEntry    { return ctx.stack[len(ctx.stack)-1] }
