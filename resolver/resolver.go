// Package resolver implements a static pass over a program that reports
// likely mistakes: references to names that no enclosing let or parameter
// binds, calls to let-bound functions with the wrong number of arguments,
// and explicit error nodes. The findings are warnings; they never change
// how the program evaluates.
package resolver

import (
	"errors"
	"fmt"
	"rinha/parser"
)

var TooManyErrors = errors.New("too many errors")

const maxErrors = 10

type ResolverError struct {
	Location parser.Location
	Position string // file:line:col, or the raw span for decoded trees
	Message  string
}

func (re ResolverError) Error() string { return re.String() }
func (re ResolverError) String() string {
	return fmt.Sprintf("%s: %s", re.Position, re.Message)
}

// binding records what is statically known about a name. arity is the
// parameter count of a let-bound function literal and -1 otherwise.
type binding struct {
	arity int
}

type Scope map[string]binding

type Resolver struct {
	file   *parser.File
	source string
	// each scope binds exactly the names introduced by one let or one
	// function literal.
	scopes   []Scope
	Errors   []error
	overflow bool
}

// New returns a resolver for file. source is the text file was parsed
// from; it may be empty for decoded trees.
func New(file *parser.File, source string) *Resolver {
	return &Resolver{
		file:   file,
		source: source,
		scopes: []Scope{},
		Errors: []error{},
	}
}

func (r *Resolver) push(s Scope) { r.scopes = append(r.scopes, s) }
func (r *Resolver) pop()         { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) err(loc parser.Location, msg string, args ...interface{}) {
	if len(r.Errors) >= maxErrors {
		r.overflow = true
		return
	}
	r.Errors = append(r.Errors, ResolverError{
		Location: loc,
		Position: loc.Describe(r.source),
		Message:  fmt.Sprintf(msg, args...),
	})
}

// Resolve walks the whole file. This method can only be called once.
func (r *Resolver) Resolve() {
	if r.file.Expression != nil {
		r.resolve(r.file.Expression)
	}
	if r.overflow {
		r.Errors = append(r.Errors, TooManyErrors)
	}
	if len(r.scopes) != 0 {
		panic("something gone wrong!")
	}
}

// Check is a shorthand for New(file, source).Resolve().
func Check(file *parser.File, source string) []error {
	r := New(file, source)
	r.Resolve()
	return r.Errors
}

func (r *Resolver) resolve(node parser.Term) {
	switch node := node.(type) {
	case *parser.Int, *parser.Str, *parser.Bool:
		return
	case *parser.Var:
		r.lookup(node)
	case *parser.Binary:
		r.resolve(node.LHS)
		r.resolve(node.RHS)
	case *parser.If:
		r.resolve(node.Condition)
		r.resolve(node.Then)
		r.resolve(node.Otherwise)
	case *parser.Let:
		r.resolveLet(node)
	case *parser.Function:
		r.resolveFunction(node)
	case *parser.Call:
		r.resolveCall(node)
	case *parser.Print:
		r.resolve(node.Value)
	case *parser.First:
		r.resolve(node.Value)
	case *parser.Second:
		r.resolve(node.Value)
	case *parser.Tuple:
		r.resolve(node.First)
		r.resolve(node.Second)
	case *parser.Error:
		r.err(node.Location, "error node: %s", node.Message)
	default:
		panic(fmt.Sprintf("unhandled node: %#+v", node))
	}
}

func (r *Resolver) resolveLet(node *parser.Let) {
	name := node.Name.Text
	if fn, ok := node.Value.(*parser.Function); ok {
		// the closure can refer to itself.
		self := Scope{name: {arity: len(fn.Parameters)}}
		r.push(self)
		r.resolve(fn)
		r.pop()
		r.push(self)
	} else {
		r.resolve(node.Value)
		r.push(Scope{name: {arity: -1}})
	}
	r.resolve(node.Next)
	r.pop()
}

func (r *Resolver) resolveFunction(node *parser.Function) {
	scope := Scope{}
	for _, param := range node.Parameters {
		scope[param.Text] = binding{arity: -1}
	}
	r.push(scope)
	r.resolve(node.Value)
	r.pop()
}

func (r *Resolver) resolveCall(node *parser.Call) {
	r.resolve(node.Callee)
	for _, arg := range node.Arguments {
		r.resolve(arg)
	}
	callee, ok := node.Callee.(*parser.Var)
	if !ok {
		return
	}
	b, ok := r.find(callee.Text)
	if ok && b.arity >= 0 && b.arity != len(node.Arguments) {
		r.err(node.Location, "%s expects %d argument(s), got %d", callee.Text, b.arity, len(node.Arguments))
	}
}

func (r *Resolver) lookup(node *parser.Var) {
	if _, ok := r.find(node.Text); !ok {
		r.err(node.Location, "undefined variable %q", node.Text)
	}
}

// find searches the scopes from the innermost outwards.
func (r *Resolver) find(name string) (binding, bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if b, ok := r.scopes[i][name]; ok {
			return b, true
		}
	}
	return binding{}, false
}
