package eval

import (
	"rinha/parser"
	"strconv"
)

//go:generate go tool stringer -type=ValueType -linecomment

type ValueType uint8

const (
	_ = ValueType(iota)
	VT_INT     // Int
	VT_BOOL    // Bool
	VT_STR     // Str
	VT_TUPLE   // Tuple
	VT_CLOSURE // Closure
	VT_UNIT    // Unit
)

// Value is anything an expression can evaluate to. Values are immutable
// once produced. String returns the display form, which is what print
// writes.
type Value interface {
	Type() ValueType
	String() string
}

type (
	Int  int32
	Bool bool
	Str  string
	Unit struct{}
)

type Tuple struct {
	First  Value
	Second Value
}

// Closure is a function value. Env is the closure's capture cell: a frame
// of its own whose outer frame is the scope the function was defined in.
type Closure struct {
	Params []string
	Body   parser.Term
	Env    *Environment
	// name of the first let that bound this closure, for traces.
	name string
}

func newClosure(node *parser.Function, env *Environment) *Closure {
	params := make([]string, len(node.Parameters))
	for i, p := range node.Parameters {
		params[i] = p.Text
	}
	return &Closure{Params: params, Body: node.Value, Env: newEnv(env)}
}

// Name is the let-bound name of the closure, or "<anonymous>".
func (c *Closure) Name() string {
	if c.name == "" {
		return "<anonymous>"
	}
	return c.name
}

func (v Int) Type() ValueType      { return VT_INT }
func (v Bool) Type() ValueType     { return VT_BOOL }
func (v Str) Type() ValueType      { return VT_STR }
func (v Unit) Type() ValueType     { return VT_UNIT }
func (v *Tuple) Type() ValueType   { return VT_TUPLE }
func (v *Closure) Type() ValueType { return VT_CLOSURE }

// =============
// Display forms
// =============

func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }
func (v Bool) String() string {
	if v {
		return "true"
	}
	return "false"
}
func (v Str) String() string      { return string(v) }
func (v Unit) String() string     { return "()" }
func (v *Closure) String() string { return "<#closure>" }
func (v *Tuple) String() string {
	return "(" + v.First.String() + ", " + v.Second.String() + ")"
}

// ==========
// Singletons
// ==========

var (
	TRUE  = Bool(true)
	FALSE = Bool(false)
	UNIT  = Unit{}
)

func newBool(b bool) Value {
	if b {
		return TRUE
	}
	return FALSE
}
