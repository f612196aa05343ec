package parser_test

import (
	"rinha/lexer"
	"rinha/parser"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParserValid(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1", "1"},
		{"-2147483648", "-2147483648"},
		{`"hi"`, `"hi"`},
		{"a + b + c", "((a + b) + c)"},
		{"a + b * c", "(a + (b * c))"},
		{"a - -1", "(a - -1)"},
		{"a + b >= c == true", "(((a + b) >= c) == true)"},
		{"a && b || c", "((a && b) || c)"},
		{"a || b && c", "(a || (b && c))"},
		{"a / (c - f) % d + e", "(((a / (c - f)) % d) + e)"},
		{"a != b < c", "(a != (b < c))"},
		{"(1, 2)", "(1, 2)"},
		{"((1, 2), (3, x))", "((1, 2), (3, x))"},
		{"{ 1 + 2 }", "(1 + 2)"},
		{"first((1, 2))", "first((1, 2))"},
		{`second("ab")`, `second("ab")`},
		{"print(1 + 2)", "print((1 + 2))"},
		{"f()", "f()"},
		{"f(1, g(2))(3)", "f(1, g(2))(3)"},
		{"let x = 1; x", "let x = 1; x"},
		{"let x = 1 x", "let x = 1; x"},
		{"let x = 1; let y = 2; x + y", "let x = 1; let y = 2; (x + y)"},
		{"fn () => 1", "fn () => { 1 }"},
		{"fn (a, b) => { a + b }", "fn (a, b) => { (a + b) }"},
		{"if (a) { 1 } else { 2 }", "if (a) { 1 } else { 2 }"},
		{"if (a) 1 else if (b) 2 else 3", "if (a) { 1 } else { if (b) { 2 } else { 3 } }"},
		{
			"let fib = fn (n) => { if (n < 2) { n } else { fib(n - 1) + fib(n - 2) } }; print(fib(10))",
			"let fib = fn (n) => { if ((n < 2)) { n } else { (fib((n - 1)) + fib((n - 2))) } }; print(fib(10))",
		},
		{"// comment\n1 /* inline */ + 2", "(1 + 2)"},
	}
	for i, test := range tests {
		file, ok := parse(t, test.input)
		if !ok {
			t.Errorf("tests[%d] (%q) failed", i, test.input)
			continue
		}
		if file.String() != test.expected {
			t.Errorf("tests[%d] (%q)", i, test.input)
			t.Errorf("expected=%q, got=%q", test.expected, file.String())
			continue
		}
		// the printed form must parse back to the same tree.
		again, ok := parse(t, file.String())
		if !ok {
			t.Errorf("tests[%d] (%q) could not be re-parsed", i, file.String())
			continue
		}
		if diff := cmp.Diff(file.Expression, again.Expression, cmpopts.IgnoreTypes(parser.Location{})); diff != "" {
			t.Errorf("tests[%d] (%q) round trip mismatch (-want +got):\n%s", i, test.input, diff)
		}
	}
}

func TestParserTree(t *testing.T) {
	file, ok := parse(t, `let add = fn (a, b) => a + b; add(1, "x")`)
	if !ok {
		return
	}
	want := &parser.Let{
		Name: parser.Var{Text: "add"},
		Value: &parser.Function{
			Parameters: []parser.Var{{Text: "a"}, {Text: "b"}},
			Value: &parser.Binary{
				Op:  parser.Add,
				LHS: &parser.Var{Text: "a"},
				RHS: &parser.Var{Text: "b"},
			},
		},
		Next: &parser.Call{
			Callee:    &parser.Var{Text: "add"},
			Arguments: []parser.Term{&parser.Int{Value: 1}, &parser.Str{Value: "x"}},
		},
	}
	if diff := cmp.Diff(parser.Term(want), file.Expression, cmpopts.IgnoreTypes(parser.Location{})); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParserLocations(t *testing.T) {
	src := "let x = 1;\nprint(x + 22)"
	file, ok := parse(t, src)
	if !ok {
		return
	}
	let := file.Expression.(*parser.Let)
	if let.Start != 0 || let.End != len(src) {
		t.Errorf("let span: expected [0..%d], got [%d..%d]", len(src), let.Start, let.End)
	}
	if let.Name.Start != 4 || let.Name.End != 5 {
		t.Errorf("name span: expected [4..5], got [%d..%d]", let.Name.Start, let.Name.End)
	}
	bin := let.Next.(*parser.Print).Value.(*parser.Binary)
	if got := bin.Snippet(src); got != "x + 22" {
		t.Errorf("binary snippet: expected %q, got %q", "x + 22", got)
	}
	if got := bin.Describe(src); got != "test.rinha:2:7" {
		t.Errorf("describe: expected %q, got %q", "test.rinha:2:7", got)
	}
}

func TestParserInvalid(t *testing.T) {
	tests := []string{
		"",
		"1 +",
		"let x = 1;",
		"let = 1; 2",
		"fn (a, a) => a",
		"fn (a b) => a",
		"fn (a) a",
		"if (true) 1",
		"if true { 1 } else { 2 }",
		"(1, 2, 3)",
		"(1",
		"{ 1",
		"print 1",
		"1 2",
		"- x",
		"2147483648",
		"f(1, 2",
	}
	for i, input := range tests {
		l := lexer.New("test.rinha", input)
		l.ScanTokens()
		if len(l.Errors) != 0 {
			t.Errorf("tests[%d] (%q): unexpected lexer errors %v", i, input, l.Errors)
			continue
		}
		p := parser.New("test.rinha", l.Tokens)
		file := p.Parse()
		if len(p.Errors) != 1 {
			t.Errorf("tests[%d] (%q)", i, input)
			t.Errorf("expected=1 error, got=%d: %+v", len(p.Errors), p.Errors)
			continue
		}
		if file.Expression != nil {
			t.Errorf("tests[%d] (%q): expected no expression, got %s", i, input, file)
		}
		t.Log(p.Errors[0].String())
	}
}

func parse(t *testing.T, input string) (*parser.File, bool) {
	t.Helper()
	l := lexer.New("test.rinha", input)
	l.ScanTokens()
	if len(l.Errors) != 0 {
		t.Error("lexer errors:")
		for _, err := range l.Errors {
			t.Error(err.String())
		}
		return nil, false
	}
	p := parser.New("test.rinha", l.Tokens)
	file := p.Parse()
	if len(p.Errors) != 0 {
		t.Error("parser errors:")
		for _, err := range p.Errors {
			t.Error(err.String())
		}
		return nil, false
	}
	return file, true
}
