package eval

import (
	"context"
	"rinha/parser"
	"rinha/resolver"
	"strings"
)

// InteractiveContext evaluates one REPL line at a time. Every line is a
// complete program evaluated against a fresh, empty environment.
type InteractiveContext struct {
	Filename string
	Options  Options
}

func NewInteractiveContext(opts Options) *InteractiveContext {
	return &InteractiveContext{Filename: "<stdin>", Options: opts}
}

// Run evaluates input. Lexer and parser errors are returned as a list
// and nothing is evaluated; otherwise the list holds at most the runtime
// error. Blank input evaluates to Unit.
func (ic *InteractiveContext) Run(ctx context.Context, input string) (Value, []error) {
	if strings.TrimSpace(input) == "" {
		return UNIT, nil
	}
	file, err := parser.ParseSource(ic.Filename, input)
	if err != nil {
		if list, ok := err.(parser.ErrorList); ok {
			return nil, list
		}
		return nil, []error{err}
	}
	if ic.Options.Logger != nil {
		for _, w := range resolver.Check(file, input) {
			ic.Options.Logger.Debug("resolver warning", "warning", w)
		}
	}
	rv, err := Run(ctx, file.Expression, ic.Options)
	if err != nil {
		return nil, []error{err}
	}
	return rv, nil
}
