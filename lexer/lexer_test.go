package lexer_test

import (
	"rinha/lexer"
	"testing"
)

func TestLexer(t *testing.T) {
	lex := lexer.New("", `
let fib = fn (n) => {
  if (n < 2) { n } else { fib(n - 1) + fib(n - 2) } // 阿福
};
/* block
   comment */
print(fib(10) % 3 != 0 && "s" >= "t" || first((1, 2)) == second("ab"))`)
	lex.ScanTokens()
	if len(lex.Errors) != 0 {
		t.Errorf("failed: expected no errors, got:")
		for _, x := range lex.Errors {
			t.Log(x.String())
		}
	}
	t.Log(lex.Tokens)
}

func TestLexerTokens(t *testing.T) {
	lex := lexer.New("", `let x = -12; x => "a\tb"`)
	lex.ScanTokens()
	if len(lex.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", lex.Errors)
	}
	expected := []struct {
		typ     lexer.TokenType
		lexeme  string
		literal interface{}
		offset  int
	}{
		{lexer.LET, "let", nil, 0},
		{lexer.IDENTIFIER, "x", "x", 4},
		{lexer.EQUAL, "=", nil, 6},
		{lexer.MINUS, "-", nil, 8},
		{lexer.NUMBER, "12", int64(12), 9},
		{lexer.SEMICOLON, ";", nil, 11},
		{lexer.IDENTIFIER, "x", "x", 13},
		{lexer.ARROW, "=>", nil, 15},
		{lexer.STRING, `"a\tb"`, "a\tb", 18},
		{lexer.EOF, "", nil, 24},
	}
	if len(lex.Tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got=%d: %v", len(expected), len(lex.Tokens), lex.Tokens)
	}
	for i, exp := range expected {
		tok := lex.Tokens[i]
		if tok.Type != exp.typ || tok.Lexeme != exp.lexeme || tok.Literal != exp.literal || tok.Offset != exp.offset {
			t.Errorf("tokens[%d]: expected=%s %q %#v @%d, got=%s %q %#v @%d", i,
				exp.typ, exp.lexeme, exp.literal, exp.offset,
				tok.Type, tok.Lexeme, tok.Literal, tok.Offset)
		}
	}
}

func TestLexerPositions(t *testing.T) {
	lex := lexer.New("<test>", "let\n  x")
	lex.ScanTokens()
	x := lex.Tokens[1]
	if x.Line != 2 || x.Column != 3 {
		t.Errorf("expected x at 2:3, got=%d:%d", x.Line, x.Column)
	}
	if x.End() != 7 {
		t.Errorf("expected end=7, got=%d", x.End())
	}
}

func TestLexerBad(t *testing.T) {
	badInputs := []string{
		"\"ab\n\" def ghi",
		"def | holy cow",
		"abc & adhkfsai",
		"\"abraca\xc3\x28 dabra\"",
		"\xc3\x28",
		"abc def \xf0\x28\x8c\xbc uu \xc3\x28 omg",
		"abc def || omg &| abrac",
		"!x",
		"99999999999",
		"/* never closed",
		`"bad \q escape"`,
		"\"unterminated",
		"a # b",
	}
	for i, input := range badInputs {
		lex := lexer.New("<test>", input)
		lex.ScanTokens()
		if len(lex.Errors) == 0 {
			t.Errorf("tests[%d] (%q) failed", i, input)
			t.Errorf("expected errors, got none")
		}
		for _, x := range lex.Errors {
			t.Logf("%s\n", x.String())
		}
	}
}
