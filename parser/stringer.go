package parser

import (
	"bytes"
	"strconv"
	"strings"
)

// The String() methods render a tree back into source form. The output
// is fully parenthesised and can be fed back into the parser.

func (node *File) String() string {
	if node.Expression == nil {
		return ""
	}
	return node.Expression.String()
}

func (node *Int) String() string  { return strconv.FormatInt(int64(node.Value), 10) }
func (node *Str) String() string  { return strconv.Quote(node.Value) }
func (node *Bool) String() string { return strconv.FormatBool(node.Value) }
func (node *Var) String() string  { return node.Text }

func (node *Binary) String() string {
	var buf bytes.Buffer
	buf.WriteString("(")
	buf.WriteString(node.LHS.String())
	buf.WriteString(" ")
	buf.WriteString(node.Op.Symbol())
	buf.WriteString(" ")
	buf.WriteString(node.RHS.String())
	buf.WriteString(")")
	return buf.String()
}

func (node *If) String() string {
	var buf bytes.Buffer
	buf.WriteString("if (")
	buf.WriteString(node.Condition.String())
	buf.WriteString(") { ")
	buf.WriteString(node.Then.String())
	buf.WriteString(" } else { ")
	buf.WriteString(node.Otherwise.String())
	buf.WriteString(" }")
	return buf.String()
}

func (node *Let) String() string {
	var buf bytes.Buffer
	buf.WriteString("let ")
	buf.WriteString(node.Name.String())
	buf.WriteString(" = ")
	buf.WriteString(node.Value.String())
	buf.WriteString("; ")
	buf.WriteString(node.Next.String())
	return buf.String()
}

func (node *Function) String() string {
	params := make([]string, len(node.Parameters))
	for i, p := range node.Parameters {
		params[i] = p.Text
	}
	var buf bytes.Buffer
	buf.WriteString("fn (")
	buf.WriteString(strings.Join(params, ", "))
	buf.WriteString(") => { ")
	buf.WriteString(node.Value.String())
	buf.WriteString(" }")
	return buf.String()
}

func (node *Call) String() string {
	args := make([]string, len(node.Arguments))
	for i, arg := range node.Arguments {
		args[i] = arg.String()
	}
	var buf bytes.Buffer
	buf.WriteString(node.Callee.String())
	buf.WriteString("(")
	buf.WriteString(strings.Join(args, ", "))
	buf.WriteString(")")
	return buf.String()
}

func (node *Print) String() string  { return "print(" + node.Value.String() + ")" }
func (node *First) String() string  { return "first(" + node.Value.String() + ")" }
func (node *Second) String() string { return "second(" + node.Value.String() + ")" }

func (node *Tuple) String() string {
	return "(" + node.First.String() + ", " + node.Second.String() + ")"
}

func (node *Error) String() string {
	if node.FullText != "" {
		return node.FullText
	}
	return "<error: " + node.Message + ">"
}
