package parser

import (
	"math"
	"rinha/lexer"
)

type (
	unaryParser  func() Term
	binaryParser func(Term) Term
)

type Parser struct {
	filename      string
	tokens        []lexer.Token
	Errors        []ParserError
	curr          int // how many we have consumed.
	unaryParsers  map[lexer.TokenType]unaryParser
	binaryParsers map[lexer.TokenType]binaryParser
	precedences   map[lexer.TokenType]int
	ops           map[lexer.TokenType]BinaryOp
}

const (
	PREC_LOWEST  = iota
	PREC_OR      // ||
	PREC_AND     // &&
	PREC_EQ      // ==, !=
	PREC_CMP     // <=, <, >, >=
	PREC_SUM     // +, -
	PREC_PRODUCT // *, /, %
	PREC_CALL    // ()
)

// ====
// init
// ====

func New(fn string, tokens []lexer.Token) *Parser {
	p := &Parser{
		filename: fn,
		tokens:   tokens,
		Errors:   []ParserError{},
		curr:     0,
	}
	p.unaryParsers = map[lexer.TokenType]unaryParser{
		lexer.LEFT_PAREN: p.grouping,
		lexer.LEFT_BRACE: p.block,
		lexer.IDENTIFIER: p.variable,
		lexer.NUMBER:     p.literal,
		lexer.STRING:     p.literal,
		lexer.TRUE:       p.literal,
		lexer.FALSE:      p.literal,
		lexer.MINUS:      p.negative,
		lexer.LET:        p.let,
		lexer.FN:         p.function,
		lexer.IF:         p.ifExpr,
		lexer.PRINT:      p.builtin,
		lexer.FIRST:      p.builtin,
		lexer.SECOND:     p.builtin,
	}
	p.ops = map[lexer.TokenType]BinaryOp{
		lexer.OR:            Or,
		lexer.AND:           And,
		lexer.EQUAL_EQUAL:   Eq,
		lexer.BANG_EQUAL:    Neq,
		lexer.GREATER:       Gt,
		lexer.GREATER_EQUAL: Gte,
		lexer.LESS:          Lt,
		lexer.LESS_EQUAL:    Lte,
		lexer.PLUS:          Add,
		lexer.MINUS:         Sub,
		lexer.STAR:          Mul,
		lexer.SLASH:         Div,
		lexer.PERCENT:       Rem,
	}
	// note: need to make sure that every entry in binaryParsers
	// has a corresponding entry in precedences.
	p.binaryParsers = map[lexer.TokenType]binaryParser{
		lexer.LEFT_PAREN: p.call,
	}
	for typ := range p.ops {
		p.binaryParsers[typ] = p.binary
	}
	p.precedences = map[lexer.TokenType]int{
		lexer.OR:            PREC_OR,
		lexer.AND:           PREC_AND,
		lexer.EQUAL_EQUAL:   PREC_EQ,
		lexer.BANG_EQUAL:    PREC_EQ,
		lexer.GREATER:       PREC_CMP,
		lexer.GREATER_EQUAL: PREC_CMP,
		lexer.LESS:          PREC_CMP,
		lexer.LESS_EQUAL:    PREC_CMP,
		lexer.PLUS:          PREC_SUM,
		lexer.MINUS:         PREC_SUM,
		lexer.STAR:          PREC_PRODUCT,
		lexer.SLASH:         PREC_PRODUCT,
		lexer.PERCENT:       PREC_PRODUCT,
		lexer.LEFT_PAREN:    PREC_CALL,
	}
	return p
}

// =====
// utils
// =====

// consume consumes one token
func (p *Parser) consume() lexer.Token {
	if !p.isAtEnd() {
		p.curr++
	}
	return p.previous()
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token { return p.tokens[p.curr-1] }

// peek returns the token to be consumed
func (p *Parser) peek() lexer.Token { return p.tokens[p.curr] }

// isAtEnd returns true if the current token is an EOF token
func (p *Parser) isAtEnd() bool { return p.peek().Type == lexer.EOF }

// check returns if the peek token matches the given type
func (p *Parser) check(t lexer.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == t
}

// match consumes the token if it matches any of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.consume()
			return true
		}
	}
	return false
}

// span builds the location running from tok to the last consumed token.
func (p *Parser) span(tok lexer.Token) Location {
	return Location{Start: tok.Offset, End: p.previous().End(), Filename: p.filename}
}

// ===========
// entry point
// ===========

// file → expression EOF

func (p *Parser) Parse() (file *File) {
	file = &File{Name: p.filename}
	if len(p.tokens) == 0 || p.tokens[len(p.tokens)-1].Type != lexer.EOF {
		p.tokens = append(p.tokens, lexer.Token{Type: lexer.EOF})
	}
	defer func() {
		// ParserErrors are already recorded in .Errors; anything
		// else is a bug and keeps unwinding.
		if rv := recover(); rv != nil {
			if _, ok := rv.(ParserError); ok {
				file.Expression = nil
				return
			}
			panic(rv)
		}
	}()
	start := p.peek()
	file.Expression = p.expression()
	if !p.isAtEnd() {
		panic(p.error(p.peek(), "unexpected %s after expression", describe(p.peek())))
	}
	file.Location = Location{Start: start.Offset, End: p.peek().Offset, Filename: p.filename}
	return file
}

// ==================
// expression parsing
// ==================
//
//   expr     → let | fn | if | print | first | second | binary
//   let      → "let" IDENT "=" expr ";"? expr
//   fn       → "fn" "(" params? ")" "=>" expr
//   if       → "if" "(" expr ")" expr "else" expr
//   builtin  → ("print" | "first" | "second") "(" expr ")"
//   primary  → NUMBER | "-" NUMBER | STRING | true | false | IDENT
//            | "(" expr ")" | "(" expr "," expr ")" | "{" expr "}"
//   call     → primary ( "(" args? ")" )*

// expression matches a single expression.
func (p *Parser) expression() Term { return p.precedence(PREC_LOWEST) }
func (p *Parser) precedence(prec int) Term {
	unary, ok := p.unaryParsers[p.peek().Type]
	if !ok {
		panic(p.error(p.peek(), "expected an expression, got %s", describe(p.peek())))
	}
	expr := unary()
	for prec < p.peekPrecedence() {
		expr = p.binaryParsers[p.peek().Type](expr)
	}
	return expr
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := p.precedences[p.peek().Type]; ok {
		return prec
	}
	return PREC_LOWEST
}

func (p *Parser) grouping() Term {
	tok := p.consume()
	expr := p.expression()
	if p.match(lexer.COMMA) {
		second := p.expression()
		p.expect(lexer.RIGHT_PAREN, "expected ) after tuple, got %s", describe(p.peek()))
		return &Tuple{First: expr, Second: second, Location: p.span(tok)}
	}
	p.expect(lexer.RIGHT_PAREN, "unmatched (")
	return expr
}

func (p *Parser) block() Term {
	p.consume()
	expr := p.expression()
	p.expect(lexer.RIGHT_BRACE, "unmatched {")
	return expr
}

func (p *Parser) variable() Term {
	tok := p.consume()
	return &Var{Text: tok.Lexeme, Location: p.span(tok)}
}

func (p *Parser) literal() Term {
	tok := p.consume()
	loc := p.span(tok)
	switch tok.Type {
	case lexer.NUMBER:
		n := tok.Literal.(int64)
		if n > math.MaxInt32 {
			panic(p.error(tok, "integer literal %s does not fit in 32 bits", tok.Lexeme))
		}
		return &Int{Value: int32(n), Location: loc}
	case lexer.STRING:
		return &Str{Value: tok.Literal.(string), Location: loc}
	default:
		return &Bool{Value: tok.Literal.(bool), Location: loc}
	}
}

// negative only applies to integer literals; the language has no
// unary operators.
func (p *Parser) negative() Term {
	tok := p.consume()
	num := p.expect(lexer.NUMBER, "expected an integer literal after -")
	return &Int{Value: int32(-num.Literal.(int64)), Location: p.span(tok)}
}

func (p *Parser) let() Term {
	tok := p.consume()
	ident := p.expect(lexer.IDENTIFIER, "expected an identifier after let")
	p.expect(lexer.EQUAL, "expected = after let %s", ident.Lexeme)
	value := p.expression()
	p.match(lexer.SEMICOLON)
	next := p.expression()
	return &Let{
		Name:     Var{Text: ident.Lexeme, Location: p.tokenLoc(ident)},
		Value:    value,
		Next:     next,
		Location: p.span(tok),
	}
}

func (p *Parser) function() Term {
	tok := p.consume()
	p.expect(lexer.LEFT_PAREN, "expected ( after fn")
	params := []Var{}
	seen := map[string]bool{}
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			ident := p.expect(lexer.IDENTIFIER, "expected a parameter name, got %s", describe(p.peek()))
			if seen[ident.Lexeme] {
				panic(p.error(ident, "duplicate parameter %q", ident.Lexeme))
			}
			seen[ident.Lexeme] = true
			params = append(params, Var{Text: ident.Lexeme, Location: p.tokenLoc(ident)})
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	p.expect(lexer.ARROW, "expected => after parameters")
	body := p.expression()
	return &Function{Parameters: params, Value: body, Location: p.span(tok)}
}

func (p *Parser) ifExpr() Term {
	tok := p.consume()
	p.expect(lexer.LEFT_PAREN, "expected ( after if")
	cond := p.expression()
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	then := p.expression()
	p.expect(lexer.ELSE, "expected else, got %s", describe(p.peek()))
	otherwise := p.expression()
	return &If{Condition: cond, Then: then, Otherwise: otherwise, Location: p.span(tok)}
}

func (p *Parser) builtin() Term {
	tok := p.consume()
	p.expect(lexer.LEFT_PAREN, "expected ( after %s", tok.Lexeme)
	value := p.expression()
	p.expect(lexer.RIGHT_PAREN, "unclosed (")
	loc := p.span(tok)
	switch tok.Type {
	case lexer.PRINT:
		return &Print{Value: value, Location: loc}
	case lexer.FIRST:
		return &First{Value: value, Location: loc}
	default:
		return &Second{Value: value, Location: loc}
	}
}

func (p *Parser) binary(left Term) Term {
	tok := p.consume()
	right := p.precedence(p.precedences[tok.Type])
	return &Binary{
		Op:       p.ops[tok.Type],
		LHS:      left,
		RHS:      right,
		Location: Location{Start: left.Loc().Start, End: right.Loc().End, Filename: p.filename},
	}
}

func (p *Parser) call(callee Term) Term {
	p.consume()
	args := []Term{}
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			args = append(args, p.expression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RIGHT_PAREN, "expected ) after arguments, got %s", describe(p.peek()))
	return &Call{
		Callee:    callee,
		Arguments: args,
		Location:  Location{Start: callee.Loc().Start, End: p.previous().End(), Filename: p.filename},
	}
}

func (p *Parser) tokenLoc(tok lexer.Token) Location {
	return Location{Start: tok.Offset, End: tok.End(), Filename: p.filename}
}
