package eval

import "rinha/parser"

// evalCall applies a closure. Arguments are evaluated eagerly, left to
// right, in the caller's environment. Parameters are bound positionally
// up to the shorter of the two lists unless StrictArity is set.
func (ctx *Context) evalCall(node *parser.Call, env *Environment) (Value, *Error) {
	callee, err := ctx.eval(node.Callee, env)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*Closure)
	if !ok {
		return nil, ctx.fail(NotCallable, node.Callee.Loc(), "%s is not callable", callee.Type())
	}
	args := make([]Value, len(node.Arguments))
	for i, arg := range node.Arguments {
		v, err := ctx.eval(arg, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if ctx.opts.StrictArity && len(args) != len(fn.Params) {
		return nil, ctx.fail(ArityError, node.Location,
			"%s expects %d argument(s), got %d", fn.Name(), len(fn.Params), len(args))
	}
	activation := newEnv(fn.Env)
	for i, name := range fn.Params {
		if i >= len(args) {
			break
		}
		activation.Define(name, args[i])
	}
	ctx.pushFunc(functionCse{fn})
	rv, err := ctx.eval(fn.Body, activation)
	ctx.popFunc()
	if err != nil {
		err.addContext(node.Location, ctx.currFunc())
		return nil, err
	}
	return rv, nil
}
