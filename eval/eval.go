package eval

// Implements the actual evaluator for the language.

import (
	"io"
	"rinha/parser"
	"unicode/utf8"
)

// Eval evaluates term in env. Every failure is returned as an *Error;
// the first one aborts the whole evaluation.
func (ctx *Context) Eval(term parser.Term, env *Environment) (Value, error) {
	rv, err := ctx.eval(term, env)
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (ctx *Context) eval(term parser.Term, env *Environment) (Value, *Error) {
	ctx.depth++
	if ctx.depth > ctx.opts.MaxDepth {
		ctx.depth--
		loc := parser.Location{}
		if term != nil {
			loc = term.Loc()
		}
		return nil, ctx.fail(StackExhausted, loc, "maximum evaluation depth (%d) exceeded", ctx.opts.MaxDepth)
	}
	rv, err := ctx.evalTerm(term, env)
	ctx.depth--
	return rv, err
}

func (ctx *Context) evalTerm(term parser.Term, env *Environment) (Value, *Error) {
	switch node := term.(type) {
	case *parser.Int:
		return Int(node.Value), nil
	case *parser.Str:
		return Str(node.Value), nil
	case *parser.Bool:
		return newBool(node.Value), nil
	case *parser.Var:
		return ctx.evalVar(node, env)
	case *parser.Function:
		return newClosure(node, env), nil
	case *parser.If:
		return ctx.evalIf(node, env)
	case *parser.Let:
		return ctx.evalLet(node, env)
	case *parser.Print:
		return ctx.evalPrint(node, env)
	case *parser.First:
		return ctx.evalProjection(node.Value, node.Location, true, env)
	case *parser.Second:
		return ctx.evalProjection(node.Value, node.Location, false, env)
	case *parser.Tuple:
		return ctx.evalTuple(node, env)
	case *parser.Binary:
		return ctx.evalBinary(node, env)
	case *parser.Call:
		return ctx.evalCall(node, env)
	case *parser.Error:
		return nil, ctx.fail(UserError, node.Location, "%s", node.Message)
	case nil:
		return nil, ctx.fail(TypeError, parser.Location{}, "cannot evaluate an empty program")
	}
	return nil, ctx.fail(TypeError, term.Loc(), "cannot evaluate %T", term)
}

func (ctx *Context) evalVar(node *parser.Var, env *Environment) (Value, *Error) {
	value, ok := env.Get(node.Text)
	if !ok {
		return nil, ctx.fail(UndefinedVariable, node.Location, "%q is not defined", node.Text)
	}
	return value, nil
}

func (ctx *Context) evalIf(node *parser.If, env *Environment) (Value, *Error) {
	cond, err := ctx.eval(node.Condition, env)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(Bool)
	if !ok {
		return nil, ctx.fail(TypeError, node.Condition.Loc(), "if condition must be a Bool, got %s", cond.Type())
	}
	if b {
		return ctx.eval(node.Then, env)
	}
	return ctx.eval(node.Otherwise, env)
}

func (ctx *Context) evalLet(node *parser.Let, env *Environment) (Value, *Error) {
	name := node.Name.Text
	value, err := ctx.eval(node.Value, env)
	if err != nil {
		return nil, err
	}
	// a closure sees the name of the let that defines it through its
	// capture cell. later lets rebinding it add nothing.
	if fn, ok := value.(*Closure); ok && fn.name == "" {
		fn.Env.Define(name, fn)
		fn.name = name
	}
	return ctx.eval(node.Next, env.Extend(name, value))
}

func (ctx *Context) evalPrint(node *parser.Print, env *Environment) (Value, *Error) {
	value, err := ctx.eval(node.Value, env)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(ctx.opts.Stdout, value.String()+"\n"); err != nil {
		return nil, ctx.fail(OutputError, node.Location, "print: %v", err)
	}
	return value, nil
}

func (ctx *Context) evalProjection(inner parser.Term, loc parser.Location, first bool, env *Environment) (Value, *Error) {
	name := "second"
	if first {
		name = "first"
	}
	value, err := ctx.eval(inner, env)
	if err != nil {
		return nil, err
	}
	switch v := value.(type) {
	case *Tuple:
		if first {
			return v.First, nil
		}
		return v.Second, nil
	case Str:
		s := string(v)
		_, size := utf8.DecodeRuneInString(s)
		if first {
			if size == 0 {
				return nil, ctx.fail(IndexError, loc, "first of an empty string")
			}
			return Str(s[:size]), nil
		}
		rest := s[size:]
		_, size = utf8.DecodeRuneInString(rest)
		if size == 0 {
			return nil, ctx.fail(IndexError, loc, "second of a string shorter than 2 characters: %q", s)
		}
		return Str(rest[:size]), nil
	}
	return nil, ctx.fail(TypeError, loc, "%s expects a Tuple or a Str, got %s", name, value.Type())
}

func (ctx *Context) evalTuple(node *parser.Tuple, env *Environment) (Value, *Error) {
	first, err := ctx.eval(node.First, env)
	if err != nil {
		return nil, err
	}
	second, err := ctx.eval(node.Second, env)
	if err != nil {
		return nil, err
	}
	return &Tuple{First: first, Second: second}, nil
}
