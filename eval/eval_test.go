package eval_test

import (
	"bytes"
	"context"
	"math"
	"rinha/eval"
	"rinha/ioctx"
	"rinha/parser"
	"runtime/debug"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func run(t *testing.T, src string, opts eval.Options) (eval.Value, string, error) {
	t.Helper()
	file, err := parser.ParseSource("test.rinha", src)
	require.NoError(t, err)
	var out bytes.Buffer
	opts.Stdout = &out
	rv, err := eval.New(opts).Eval(file.Expression, eval.NewEnvironment())
	return rv, out.String(), err
}

func TestLiterals(t *testing.T) {
	for _, n := range []int32{0, 1, -1, 42, math.MaxInt32, math.MinInt32} {
		rv, err := eval.New(eval.Options{}).Eval(&parser.Int{Value: n}, eval.NewEnvironment())
		require.NoError(t, err)
		assert.Equal(t, eval.Int(n), rv)
	}
	rv, _, err := run(t, `"hi"`, eval.Options{})
	require.NoError(t, err)
	assert.Equal(t, eval.Str("hi"), rv)
	rv, _, err = run(t, `false`, eval.Options{})
	require.NoError(t, err)
	assert.Equal(t, eval.FALSE, rv)
}

func TestAddWraps(t *testing.T) {
	pairs := [][2]int32{
		{1, 2},
		{math.MaxInt32, 1},
		{math.MinInt32, -1},
		{math.MaxInt32, math.MaxInt32},
		{-5, 5},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		term := &parser.Binary{Op: parser.Add, LHS: &parser.Int{Value: a}, RHS: &parser.Int{Value: b}}
		rv, err := eval.New(eval.Options{}).Eval(term, eval.NewEnvironment())
		require.NoError(t, err)
		assert.Equal(t, eval.Int(int32(int64(a)+int64(b))), rv, "%d + %d", a, b)
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2147483647 + 1", "-2147483648"},
		{"-2147483648 - 1", "2147483647"},
		{"65536 * 65536", "0"},
		{"-7 / 2", "-3"},
		{"-7 % 2", "-1"},
		{"7 % -2", "1"},
		{"-2147483648 / -1", "-2147483648"},
		{"-2147483648 % -1", "0"},
		{`"a" + 1`, "a1"},
		{`1 + "a"`, "1a"},
		{`"a" + "b"`, "ab"},
		{`(1, 2) + "x"`, "(1, 2)x"},
		{"true + false", "truefalse"},
		{"(fn () => 1) + 1", "<#closure>1"},
		{`"abc" < "abd"`, "true"},
		{`"b" > "abc"`, "true"},
		{`"a" <= "a"`, "true"},
		{`"Z" >= "a"`, "false"},
		{"3 >= 3", "true"},
		{"2 < 1", "false"},
		{"1 <= 2", "true"},
		{"1 == 1", "true"},
		{"1 != 1", "false"},
		{"true == false", "false"},
		{"true != false", "true"},
		{`"x" == "x"`, "true"},
		{`"x" != "y"`, "true"},
		{"true && false", "false"},
		{"false || true", "true"},
		{"1 + 2 * 3 - 4 / 2", "5"},
	}
	for i, test := range tests {
		rv, _, err := run(t, test.input, eval.Options{})
		if !assert.NoError(t, err, "tests[%d] (%q)", i, test.input) {
			continue
		}
		assert.Equal(t, test.expected, rv.String(), "tests[%d] (%q)", i, test.input)
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  eval.ErrorKind
	}{
		{`1 - "a"`, eval.TypeError},
		{`"a" < 1`, eval.TypeError},
		{`"a" != 1`, eval.TypeError},
		{`"1" == 1`, eval.TypeError},
		{"true && 1", eval.TypeError},
		{"1 || false", eval.TypeError},
		{"(1, 2) == (1, 2)", eval.TypeError},
		{"(fn () => 1) == (fn () => 1)", eval.TypeError},
		{"if (1) 2 else 3", eval.TypeError},
		{"if (\"true\") 2 else 3", eval.TypeError},
		{"first(1)", eval.TypeError},
		{"second(true)", eval.TypeError},
		{`first("")`, eval.IndexError},
		{`second("")`, eval.IndexError},
		{`second("h")`, eval.IndexError},
		{"10 / 0", eval.DivisionByZero},
		{"10 % 0", eval.DivisionByZero},
		{"undefined", eval.UndefinedVariable},
		{"1(2)", eval.NotCallable},
		{`"f"()`, eval.NotCallable},
		{"(1, 2)(3)", eval.NotCallable},
		{"let f = fn (a, b) => b; f(1)", eval.UndefinedVariable},
	}
	for i, test := range tests {
		_, _, err := run(t, test.input, eval.Options{})
		if !assert.Error(t, err, "tests[%d] (%q)", i, test.input) {
			continue
		}
		assert.True(t, eval.IsKind(err, test.kind), "tests[%d] (%q): expected %s, got %v", i, test.input, test.kind, err)
	}
}

func TestUserError(t *testing.T) {
	term := &parser.Let{
		Name:  parser.Var{Text: "x"},
		Value: &parser.Int{Value: 1},
		Next:  &parser.Error{Message: "boom"},
	}
	_, err := eval.New(eval.Options{}).Eval(term, eval.NewEnvironment())
	require.Error(t, err)
	var e *eval.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, eval.UserError, e.Kind)
	assert.Equal(t, "boom", e.Message)
	assert.Equal(t, "UserError: boom", err.Error())
}

func TestProjection(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"first((1, 2))", "1"},
		{"second((1, 2))", "2"},
		{"second(first(((1, (2, 3)), 4)))", "(2, 3)"},
		{`first("hi")`, "h"},
		{`second("hi")`, "i"},
		{`first("ção")`, "ç"},
		{`second("ção")`, "ã"},
		{`first("x")`, "x"},
	}
	for i, test := range tests {
		rv, _, err := run(t, test.input, eval.Options{})
		if !assert.NoError(t, err, "tests[%d] (%q)", i, test.input) {
			continue
		}
		assert.Equal(t, test.expected, rv.String(), "tests[%d] (%q)", i, test.input)
	}
}

func TestClosures(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"let x = 5; x", "5"},
		{"let x = 1; let x = x + 1; x", "2"},
		{"let fact = fn (n) => if (n == 0) 1 else n * fact(n - 1); fact(5)", "120"},
		{"let fib = fn (n) => if (n < 2) n else fib(n - 1) + fib(n - 2); fib(15)", "610"},
		{"let add = fn (a) => fn (b) => a + b; add(2)(3)", "5"},
		{"let add = fn (a) => fn (b) => a + b; let inc = add(1); (inc(1), inc(41))", "(2, 42)"},
		// later bindings are invisible to closures created earlier.
		{"let x = 1; let f = fn () => x; let x = 2; (f(), x)", "(1, 2)"},
		// a parameter shadows the closure's own name.
		{"let f = fn (f) => f; f(3)", "3"},
		// an anonymous closure bound later still recurses through its name.
		{"let g = (fn (n) => if (n == 0) 0 else n + g(n - 1)); g(4)", "10"},
		{
			`let even = fn (n) => if (n == 0) true else (fn (m) => if (m == 0) false else even(m - 1))(n - 1);
			 (even(10), even(7))`,
			"(true, false)",
		},
		{"let f = fn () => 1; f", "<#closure>"},
		{"fn () => 1", "<#closure>"},
	}
	for i, test := range tests {
		rv, _, err := run(t, test.input, eval.Options{})
		if !assert.NoError(t, err, "tests[%d] (%q)", i, test.input) {
			continue
		}
		assert.Equal(t, test.expected, rv.String(), "tests[%d] (%q)", i, test.input)
	}
}

func TestCaptureDoesNotLeakSiblings(t *testing.T) {
	// g is bound after f was created, so f must not see it.
	_, _, err := run(t, "let f = fn () => g; let g = 1; f()", eval.Options{})
	require.Error(t, err)
	assert.True(t, eval.IsKind(err, eval.UndefinedVariable))

	// rebinding f under another name must not reach into its body.
	rv, _, err := run(t, "let x = 1; let f = fn () => x; let x = f; f()", eval.Options{})
	require.NoError(t, err)
	assert.Equal(t, "1", rv.String())

	_, _, err = run(t, "let f = fn () => g; let g = f; f()", eval.Options{})
	require.Error(t, err)
	assert.True(t, eval.IsKind(err, eval.UndefinedVariable))

	// the defining name keeps working after a rebinding.
	rv, _, err = run(t, "let f = fn (n) => if (n == 0) 0 else n + f(n - 1); let g = f; g(3)", eval.Options{})
	require.NoError(t, err)
	assert.Equal(t, "6", rv.String())
}

func TestPrint(t *testing.T) {
	tests := []struct {
		input    string
		output   string
		expected string
	}{
		{"print(1)", "1\n", "1"},
		{`print("hello")`, "hello\n", "hello"},
		{`print((1, (true, "hi")))`, "(1, (true, hi))\n", "(1, (true, hi))"},
		{"print(fn (x) => x)", "<#closure>\n", "<#closure>"},
		{"print(print(1) + 1)", "1\n2\n", "2"},
		{"if (true) print(1) else print(2)", "1\n", "1"},
		{"if (false) print(1) else print(2)", "2\n", "2"},
		// && and || evaluate both sides.
		{"print(true) || print(false)", "true\nfalse\n", "true"},
		{"print(false) && print(true)", "false\ntrue\n", "false"},
		// extra arguments are evaluated and dropped.
		{"let f = fn (a) => a; f(1, print(2))", "2\n", "1"},
		{"(print(1), print(2))", "1\n2\n", "(1, 2)"},
	}
	for i, test := range tests {
		rv, out, err := run(t, test.input, eval.Options{})
		if !assert.NoError(t, err, "tests[%d] (%q)", i, test.input) {
			continue
		}
		assert.Equal(t, test.output, out, "tests[%d] (%q)", i, test.input)
		assert.Equal(t, test.expected, rv.String(), "tests[%d] (%q)", i, test.input)
	}
}

func TestPrintStopsAtError(t *testing.T) {
	_, out, err := run(t, "let a = print(x); print(3)", eval.Options{})
	require.Error(t, err)
	assert.True(t, eval.IsKind(err, eval.UndefinedVariable))
	assert.Empty(t, out)

	_, out, err = run(t, "let a = print(1); let b = print(1 / 0); print(3)", eval.Options{})
	require.Error(t, err)
	assert.True(t, eval.IsKind(err, eval.DivisionByZero))
	assert.Equal(t, "1\n", out)
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("stdout closed") }

func TestPrintWriteError(t *testing.T) {
	file, err := parser.ParseSource("test.rinha", "let f = fn () => print(1); f()")
	require.NoError(t, err)
	_, err = eval.New(eval.Options{Stdout: brokenWriter{}}).Eval(file.Expression, eval.NewEnvironment())
	require.Error(t, err)
	assert.True(t, eval.IsKind(err, eval.OutputError))
	assert.Equal(t, "OutputError: print: stdout closed", err.Error())
}

func TestStrictArity(t *testing.T) {
	opts := eval.Options{StrictArity: true}
	_, out, err := run(t, "let f = fn (a) => a; f(1, print(2))", opts)
	require.Error(t, err)
	assert.True(t, eval.IsKind(err, eval.ArityError))
	assert.Equal(t, "2\n", out, "arguments are evaluated before the check")
	assert.Equal(t, "ArityError: f expects 1 argument(s), got 2", err.Error())

	_, _, err = run(t, "let f = fn (a, b) => a; f(1)", opts)
	assert.True(t, eval.IsKind(err, eval.ArityError))

	rv, _, err := run(t, "let f = fn (a, b) => a + b; f(1, 2)", opts)
	require.NoError(t, err)
	assert.Equal(t, eval.Int(3), rv)
}

func TestStackExhausted(t *testing.T) {
	_, _, err := run(t, "let f = fn (n) => f(n + 1); f(0)", eval.Options{MaxDepth: 1000})
	require.Error(t, err)
	assert.True(t, eval.IsKind(err, eval.StackExhausted))

	var e *eval.Error
	require.ErrorAs(t, err, &e)
	assert.Greater(t, e.Omitted, 0)
	assert.Contains(t, e.Render(""), "more")

	// the same context is usable again afterwards.
	ev := eval.New(eval.Options{MaxDepth: 50})
	file, perr := parser.ParseSource("test.rinha", "let f = fn (n) => if (n == 0) 0 else f(n - 1); f(100)")
	require.NoError(t, perr)
	_, err = ev.Eval(file.Expression, eval.NewEnvironment())
	assert.True(t, eval.IsKind(err, eval.StackExhausted))
	file, perr = parser.ParseSource("test.rinha", "1 + 1")
	require.NoError(t, perr)
	rv, err := ev.Eval(file.Expression, eval.NewEnvironment())
	require.NoError(t, err)
	assert.Equal(t, eval.Int(2), rv)

	// the depth quota never outgrows the stack it runs on.
	_, _, err = run(t, "let f = fn (n) => f(n + 1); f(0)", eval.Options{MaxDepth: 1_000_000, MaxStack: 100 * eval.StackPerDepth})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum evaluation depth (100) exceeded")
}

func TestRunDeepRecursion(t *testing.T) {
	file, err := parser.ParseSource("sum.rinha", "let sum = fn (n) => if (n == 0) 0 else n + sum(n - 1); sum(10000)")
	require.NoError(t, err)
	rv, err := eval.Run(context.Background(), file.Expression, eval.Options{})
	require.NoError(t, err)
	assert.Equal(t, eval.Int(50005000), rv)
}

func TestRunRestoresMaxStack(t *testing.T) {
	orig := debug.SetMaxStack(512 << 20)
	defer debug.SetMaxStack(orig)

	file, err := parser.ParseSource("count.rinha", "let f = fn (n) => if (n == 0) 0 else 1 + f(n - 1); f(2000)")
	require.NoError(t, err)
	var eg errgroup.Group
	for i := range 8 {
		eg.Go(func() error {
			rv, err := eval.Run(context.Background(), file.Expression, eval.Options{MaxStack: (256 + 64*i) << 20})
			if err == nil && rv != eval.Int(2000) {
				err = errors.Errorf("run %d: got %s", i, rv)
			}
			return err
		})
	}
	require.NoError(t, eg.Wait())
	assert.Equal(t, 512<<20, debug.SetMaxStack(orig), "the limit from before the runs is back")
}

func TestRunUsesContextStdout(t *testing.T) {
	file, err := parser.ParseSource("hello.rinha", `print("hello")`)
	require.NoError(t, err)
	var out bytes.Buffer
	ctx := ioctx.StdoutToContext(context.Background(), &out)
	rv, err := eval.Run(ctx, file.Expression, eval.Options{})
	require.NoError(t, err)
	assert.Equal(t, eval.Str("hello"), rv)
	assert.Equal(t, "hello\n", out.String())
}

func TestIdempotence(t *testing.T) {
	src := `let fib = fn (n) => if (n < 2) n else fib(n - 1) + fib(n - 2);
let pair = (fib(10), print("x"));
pair`
	file, err := parser.ParseSource("test.rinha", src)
	require.NoError(t, err)

	var outputs []string
	var results []string
	ev := eval.New(eval.Options{})
	for i := 0; i < 3; i++ {
		var out bytes.Buffer
		rv, err := eval.Run(context.Background(), file.Expression, eval.Options{Stdout: &out})
		require.NoError(t, err)
		outputs = append(outputs, out.String())
		results = append(results, rv.String())

		again, err := ev.Eval(file.Expression, eval.NewEnvironment())
		require.NoError(t, err)
		results = append(results, again.String())
	}
	for _, got := range results {
		assert.Equal(t, "(55, x)", got)
	}
	for _, got := range outputs {
		assert.Equal(t, "x\n", got)
	}
}

func TestErrorRender(t *testing.T) {
	src := "let f = fn (x) => x + y;\nf(1)"
	_, _, err := run(t, src, eval.Options{})
	require.Error(t, err)

	var e *eval.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, eval.UndefinedVariable, e.Kind)
	expected := `UndefinedVariable: "y" is not defined
  at test.rinha:1:23: [Function f]
  at test.rinha:2:1: [Module]`
	assert.Equal(t, expected, e.Render(src))

	// decoded trees have no source text.
	assert.Contains(t, e.Render(""), "at test.rinha:[22..23]: [Function f]")

	wrapped := errors.Wrap(err, "running test.rinha")
	assert.True(t, eval.IsKind(wrapped, eval.UndefinedVariable))
	assert.False(t, eval.IsKind(wrapped, eval.TypeError))
}

func TestEmptyProgram(t *testing.T) {
	_, err := eval.New(eval.Options{}).Eval(nil, eval.NewEnvironment())
	require.Error(t, err)
	assert.True(t, eval.IsKind(err, eval.TypeError))
}
