package eval

// Environment is one lexical scope. Frames are chained through outer and
// a frame is never written to once a child has been derived from it,
// except for a closure's capture cell, which receives exactly one binding:
// the let name of the closure itself.
type Environment struct {
	store map[string]Value
	outer *Environment
}

// NewEnvironment returns an empty top-level environment.
func NewEnvironment() *Environment {
	return newEnv(nil)
}

func newEnv(outer *Environment) *Environment {
	return &Environment{
		store: map[string]Value{},
		outer: outer,
	}
}

// Extend derives a child scope binding name to value. The receiver is
// left untouched, so scopes derived from it earlier never see the binding.
func (e *Environment) Extend(name string, value Value) *Environment {
	child := newEnv(e)
	child.store[name] = value
	return child
}

// Define binds the given name to the given value in this frame.
func (e *Environment) Define(name string, value Value) {
	e.store[name] = value
}

// Get gets the given name from the environment, traversing
// the outer environments if it is not found.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

