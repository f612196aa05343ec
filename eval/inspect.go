package eval

import "strconv"

// Inspect renders v for the REPL. It differs from the display form only
// in that strings, including those nested in tuples, are quoted.
func Inspect(v Value) string {
	switch v := v.(type) {
	case Str:
		return strconv.Quote(string(v))
	case *Tuple:
		return "(" + Inspect(v.First) + ", " + Inspect(v.Second) + ")"
	}
	return v.String()
}
