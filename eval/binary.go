package eval

import "rinha/parser"

func init() {
	initBinOpTable()
}

type binOpInfo struct {
	op    parser.BinaryOp
	left  ValueType
	right ValueType
}

type binOpImpl func(ctx *Context, node *parser.Binary, left, right Value) (Value, *Error)

// binOpTable holds every well-typed operand combination. Anything missing
// is a TypeError, with the exception of + (see binary).
var binOpTable = map[binOpInfo]binOpImpl{}

func intOp(f func(a, b Int) Value) binOpImpl {
	return func(_ *Context, _ *parser.Binary, l, r Value) (Value, *Error) {
		return f(l.(Int), r.(Int)), nil
	}
}

func strOp(f func(a, b Str) Value) binOpImpl {
	return func(_ *Context, _ *parser.Binary, l, r Value) (Value, *Error) {
		return f(l.(Str), r.(Str)), nil
	}
}

func boolOp(f func(a, b Bool) Value) binOpImpl {
	return func(_ *Context, _ *parser.Binary, l, r Value) (Value, *Error) {
		return f(l.(Bool), r.(Bool)), nil
	}
}

func initBinOpTable() {
	ints := map[parser.BinaryOp]func(a, b Int) Value{
		// int32 arithmetic wraps.
		parser.Add: func(a, b Int) Value { return a + b },
		parser.Sub: func(a, b Int) Value { return a - b },
		parser.Mul: func(a, b Int) Value { return a * b },
		parser.Eq:  func(a, b Int) Value { return newBool(a == b) },
		parser.Neq: func(a, b Int) Value { return newBool(a != b) },
		parser.Lt:  func(a, b Int) Value { return newBool(a < b) },
		parser.Gt:  func(a, b Int) Value { return newBool(a > b) },
		parser.Lte: func(a, b Int) Value { return newBool(a <= b) },
		parser.Gte: func(a, b Int) Value { return newBool(a >= b) },
	}
	for op, f := range ints {
		binOpTable[binOpInfo{op, VT_INT, VT_INT}] = intOp(f)
	}
	binOpTable[binOpInfo{parser.Div, VT_INT, VT_INT}] = divide
	binOpTable[binOpInfo{parser.Rem, VT_INT, VT_INT}] = divide

	strs := map[parser.BinaryOp]func(a, b Str) Value{
		parser.Eq:  func(a, b Str) Value { return newBool(a == b) },
		parser.Neq: func(a, b Str) Value { return newBool(a != b) },
		parser.Lt:  func(a, b Str) Value { return newBool(a < b) },
		parser.Gt:  func(a, b Str) Value { return newBool(a > b) },
		parser.Lte: func(a, b Str) Value { return newBool(a <= b) },
		parser.Gte: func(a, b Str) Value { return newBool(a >= b) },
	}
	for op, f := range strs {
		binOpTable[binOpInfo{op, VT_STR, VT_STR}] = strOp(f)
	}

	bools := map[parser.BinaryOp]func(a, b Bool) Value{
		parser.Eq:  func(a, b Bool) Value { return newBool(a == b) },
		parser.Neq: func(a, b Bool) Value { return newBool(a != b) },
		parser.And: func(a, b Bool) Value { return newBool(bool(a && b)) },
		parser.Or:  func(a, b Bool) Value { return newBool(bool(a || b)) },
	}
	for op, f := range bools {
		binOpTable[binOpInfo{op, VT_BOOL, VT_BOOL}] = boolOp(f)
	}
}

// divide implements / and %. Both truncate toward zero; MinInt32 / -1
// wraps to MinInt32 and MinInt32 % -1 is 0.
func divide(ctx *Context, node *parser.Binary, l, r Value) (Value, *Error) {
	a, b := l.(Int), r.(Int)
	if b == 0 {
		return nil, ctx.fail(DivisionByZero, node.Location, "%s %s 0", a, node.Op.Symbol())
	}
	if node.Op == parser.Div {
		return a / b, nil
	}
	return a % b, nil
}

// evalBinary evaluates both operands, left first, before dispatching; &&
// and || do not short-circuit.
func (ctx *Context) evalBinary(node *parser.Binary, env *Environment) (Value, *Error) {
	left, err := ctx.eval(node.LHS, env)
	if err != nil {
		return nil, err
	}
	right, err := ctx.eval(node.RHS, env)
	if err != nil {
		return nil, err
	}
	return ctx.binary(node, left, right)
}

func (ctx *Context) binary(node *parser.Binary, left, right Value) (Value, *Error) {
	if impl, ok := binOpTable[binOpInfo{node.Op, left.Type(), right.Type()}]; ok {
		return impl(ctx, node, left, right)
	}
	// + concatenates the display forms of any other pair.
	if node.Op == parser.Add {
		return Str(left.String() + right.String()), nil
	}
	return nil, ctx.fail(TypeError, node.Location,
		"unsupported operands for %q: %s and %s",
		node.Op.Symbol(),
		left.Type(),
		right.Type(),
	)
}
