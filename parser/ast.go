package parser

// Location is the source span of a node. It is only ever used for
// diagnostics; evaluation must not depend on it.
type Location struct {
	Start    int
	End      int
	Filename string
}

func (l Location) Loc() Location { return l }

type Node interface {
	String() string
	Loc() Location
}

// Term is one node of an immutable program tree.
type Term interface {
	Node
	term()
}

// File is the root of a program: a single expression.
type File struct {
	Name       string
	Expression Term
	Location
}

type (
	Int struct {
		Value int32
		Location
	}

	Str struct {
		Value string
		Location
	}

	Bool struct {
		Value bool
		Location
	}

	Var struct {
		Text string
		Location
	}

	Binary struct {
		Op  BinaryOp
		LHS Term
		RHS Term
		Location
	}

	If struct {
		Condition Term
		Then      Term
		Otherwise Term
		Location
	}

	Let struct {
		Name  Var
		Value Term
		Next  Term
		Location
	}

	Function struct {
		Parameters []Var
		Value      Term
		Location
	}

	Call struct {
		Callee    Term
		Arguments []Term
		Location
	}

	Print struct {
		Value Term
		Location
	}

	First struct {
		Value Term
		Location
	}

	Second struct {
		Value Term
		Location
	}

	Tuple struct {
		First  Term
		Second Term
		Location
	}

	// Error is a deliberate failure node authored by the front-end.
	Error struct {
		Message  string
		FullText string
		Location
	}
)

func (*Int) term()      {}
func (*Str) term()      {}
func (*Bool) term()     {}
func (*Var) term()      {}
func (*Binary) term()   {}
func (*If) term()       {}
func (*Let) term()      {}
func (*Function) term() {}
func (*Call) term()     {}
func (*Print) term()    {}
func (*First) term()    {}
func (*Second) term()   {}
func (*Tuple) term()    {}
func (*Error) term()    {}

//go:generate go tool stringer -type=BinaryOp

type BinaryOp uint8

const (
	_ = BinaryOp(iota)
	Add
	Sub
	Mul
	Div
	Rem
	Eq
	Neq
	Lt
	Gt
	Lte
	Gte
	And
	Or
)

var opSymbols = map[BinaryOp]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Rem: "%",
	Eq:  "==",
	Neq: "!=",
	Lt:  "<",
	Gt:  ">",
	Lte: "<=",
	Gte: ">=",
	And: "&&",
	Or:  "||",
}

// Symbol returns the operator as it is written in source code.
func (op BinaryOp) Symbol() string {
	if s, ok := opSymbols[op]; ok {
		return s
	}
	return op.String()
}

// ParseBinaryOp maps a serialized operator name (e.g. "Add") back to
// its BinaryOp.
func ParseBinaryOp(name string) (BinaryOp, bool) {
	for op := Add; op <= Or; op++ {
		if op.String() == name {
			return op, true
		}
	}
	return 0, false
}
