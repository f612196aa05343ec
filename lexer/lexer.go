package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

//go:generate go tool stringer -type=TokenType

type TokenType uint8

const (
	_ = TokenType(iota)
	// single-character tokens
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	COMMA
	SEMICOLON
	MINUS
	PLUS
	SLASH
	STAR
	PERCENT
	// one or two-character tokens
	EQUAL
	EQUAL_EQUAL
	BANG_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL
	AND
	OR
	ARROW
	// literals
	IDENTIFIER
	STRING
	NUMBER
	// keywords
	LET
	FN
	IF
	ELSE
	TRUE
	FALSE
	PRINT
	FIRST
	SECOND
	// meta
	EOF
)

var keywords = map[string]TokenType{
	"let":    LET,
	"fn":     FN,
	"if":     IF,
	"else":   ELSE,
	"true":   TRUE,
	"false":  FALSE,
	"print":  PRINT,
	"first":  FIRST,
	"second": SECOND,
}

var singles = map[rune]TokenType{
	'(': LEFT_PAREN,
	')': RIGHT_PAREN,
	'{': LEFT_BRACE,
	'}': RIGHT_BRACE,
	',': COMMA,
	';': SEMICOLON,
	'-': MINUS,
	'+': PLUS,
	'*': STAR,
	'%': PERCENT,
}

// compound describes operators whose first rune may be followed by a
// second one. alone is zero when the first rune is not a token by itself.
type compound struct {
	alone  TokenType
	follow map[rune]TokenType
}

var compounds = map[rune]compound{
	'=': {EQUAL, map[rune]TokenType{'=': EQUAL_EQUAL, '>': ARROW}},
	'<': {LESS, map[rune]TokenType{'=': LESS_EQUAL}},
	'>': {GREATER, map[rune]TokenType{'=': GREATER_EQUAL}},
	'!': {0, map[rune]TokenType{'=': BANG_EQUAL}},
	'&': {0, map[rune]TokenType{'&': AND}},
	'|': {0, map[rune]TokenType{'|': OR}},
}

var escapes = map[rune]rune{
	'\\': '\\',
	'"':  '"',
	'0':  0,
	'r':  '\r',
	'n':  '\n',
	't':  '\t',
}

// MaxLiteral is the largest magnitude a NUMBER token may carry.
const MaxLiteral = 1 << 31

// maxErrors is the number of errors after which the lexer gives up.
const maxErrors = 10

type Token struct {
	Type    TokenType
	Lexeme  string      // use utf8.RuneCountInString to get the length.
	Literal interface{} // int64, string or bool
	Offset  int         // byte offset of the lexeme in the source
	Line    int
	Column  int
}

// End returns the byte offset just past the lexeme.
func (t Token) End() int { return t.Offset + len(t.Lexeme) }

type Error struct {
	Filename string
	Line     int
	Column   int
	Message  string
}

func (e *Error) Error() string { return e.String() }
func (e *Error) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
}

// pos is a point in the source. Columns count runes.
type pos struct {
	offset int
	line   int
	column int
}

type Lexer struct {
	Filename string
	Tokens   []Token
	Errors   []Error
	source   string
	cur      pos  // next rune to read
	mark     pos  // start of the lexeme being scanned
	halted   bool // invalid utf8 was met, nothing more can be read
}

func New(filename string, source string) *Lexer {
	start := pos{line: 1, column: 1}
	return &Lexer{
		Filename: filename,
		Tokens:   []Token{},
		source:   source,
		cur:      start,
		mark:     start,
	}
}

// ScanTokens fills Tokens, always ending with an EOF token. Problems are
// collected in Errors; scanning stops after maxErrors of them.
func (l *Lexer) ScanTokens() {
	for !l.done() && len(l.Errors) < maxErrors {
		l.mark = l.cur
		l.scan()
	}
	l.Tokens = append(l.Tokens, Token{
		Type:   EOF,
		Offset: l.cur.offset,
		Line:   l.cur.line,
		Column: l.cur.column,
	})
}

func (l *Lexer) done() bool { return l.halted || l.cur.offset >= len(l.source) }

// next consumes one rune. It must not be called when done.
func (l *Lexer) next() rune {
	r, w := utf8.DecodeRuneInString(l.source[l.cur.offset:])
	if r == utf8.RuneError && w <= 1 {
		l.errorf("invalid utf8 input at byte %d", l.cur.offset)
		l.halted = true
	}
	l.cur.offset += w
	if r == '\n' {
		l.cur.line++
		l.cur.column = 1
	} else {
		l.cur.column++
	}
	return r
}

// peek returns the rune k positions ahead without consuming anything,
// or 0 past the end.
func (l *Lexer) peek(k int) rune {
	if l.halted {
		return 0
	}
	off := l.cur.offset
	for off < len(l.source) {
		r, w := utf8.DecodeRuneInString(l.source[off:])
		if k == 0 {
			return r
		}
		k--
		off += w
	}
	return 0
}

func (l *Lexer) accept(r rune) bool {
	if l.peek(0) != r {
		return false
	}
	l.next()
	return true
}

func (l *Lexer) skipWhile(pred func(rune) bool) {
	for !l.done() && pred(l.peek(0)) {
		l.next()
	}
}

func (l *Lexer) scan() {
	ch := l.next()
	if l.halted {
		return
	}
	if typ, ok := singles[ch]; ok {
		l.emit(typ, nil)
		return
	}
	if op, ok := compounds[ch]; ok {
		l.operator(ch, op)
		return
	}
	switch {
	case isSpace(ch):
		l.skipWhile(isSpace)
		l.discard()
	case ch == '/':
		l.slash()
	case ch == '"':
		l.str()
	case isDigit(ch):
		l.number()
	case isAlpha(ch):
		l.word()
	default:
		l.errorf("unexpected character %U %q", ch, ch)
		l.discard()
	}
}

func (l *Lexer) operator(ch rune, op compound) {
	if typ, ok := op.follow[l.peek(0)]; ok {
		l.next()
		l.emit(typ, nil)
		return
	}
	switch {
	case op.alone != 0:
		l.emit(op.alone, nil)
		return
	case ch == '!':
		l.errorf("invalid operator %q, did you mean !=?", "!")
	default:
		l.errorf("invalid operator %q", string(ch))
	}
	l.discard()
}

func (l *Lexer) slash() {
	switch {
	case l.accept('/'):
		l.skipWhile(func(r rune) bool { return r != '\n' })
		l.discard()
	case l.accept('*'):
		l.blockComment()
	default:
		l.emit(SLASH, nil)
	}
}

func (l *Lexer) blockComment() {
	for !l.done() {
		if l.peek(0) == '*' && l.peek(1) == '/' {
			l.next()
			l.next()
			l.discard()
			return
		}
		l.next()
	}
	if !l.halted {
		l.errorf("unterminated comment")
	}
}

func (l *Lexer) word() {
	l.skipWhile(isIdentifier)
	text := l.lexeme()
	typ, ok := keywords[text]
	switch {
	case !ok:
		l.emit(IDENTIFIER, text)
	case typ == TRUE, typ == FALSE:
		l.emit(typ, typ == TRUE)
	default:
		l.emit(typ, nil)
	}
}

func (l *Lexer) number() {
	l.skipWhile(isDigit)
	text := l.lexeme()
	// One past MaxInt32 is let through so that the parser can build
	// MinInt32 out of a leading minus.
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil || n > MaxLiteral {
		l.errorf("integer literal %s does not fit in 32 bits", text)
		l.discard()
		return
	}
	l.emit(NUMBER, n)
}

// str scans a string literal; the opening quote is already consumed.
func (l *Lexer) str() {
	var sb strings.Builder
	for !l.done() {
		ch := l.next()
		switch {
		case l.halted:
			return
		case ch == '"':
			l.emit(STRING, sb.String())
			return
		case ch == '\\' && !l.done():
			esc := l.next()
			if l.halted {
				return
			}
			if r, ok := escapes[esc]; ok {
				sb.WriteRune(r)
			} else {
				l.errorf("invalid escape in string literal: %q", `\`+string(esc))
			}
		case ch == 0, ch == '\r', ch == '\n':
			l.errorf("unexpected char in string literal: %U %q", ch, ch)
		default:
			sb.WriteRune(ch)
		}
	}
	l.errorf("unterminated string")
}

func (l *Lexer) lexeme() string { return l.source[l.mark.offset:l.cur.offset] }

// discard drops the lexeme scanned so far.
func (l *Lexer) discard() { l.mark = l.cur }

func (l *Lexer) emit(typ TokenType, lit interface{}) {
	l.Tokens = append(l.Tokens, Token{
		Type:    typ,
		Lexeme:  l.lexeme(),
		Literal: lit,
		Offset:  l.mark.offset,
		Line:    l.mark.line,
		Column:  l.mark.column,
	})
	l.discard()
}

func (l *Lexer) errorf(s string, args ...interface{}) {
	l.Errors = append(l.Errors, Error{
		Filename: l.Filename,
		Line:     l.mark.line,
		Column:   l.mark.column,
		Message:  fmt.Sprintf(s, args...),
	})
}

func isSpace(ch rune) bool      { return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' }
func isIdentifier(ch rune) bool { return isAlpha(ch) || isDigit(ch) }
func isAlpha(ch rune) bool      { return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') }
func isDigit(ch rune) bool      { return '0' <= ch && ch <= '9' }
