package eval

// callStackEntry describes one frame of the guest call stack, as shown
// in error traces.
type callStackEntry interface {
	Context() string
}

type moduleCse struct{}

func (m moduleCse) Context() string { return "[Module]" }

type functionCse struct {
	closure *Closure
}

func (f functionCse) Context() string { return "[Function " + f.closure.Name() + "]" }
