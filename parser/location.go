package parser

import (
	"fmt"
	"unicode/utf8"
)

// Position converts the start offset of l into a 1-based line and a
// 1-based column (in runes) within source. ok is false when the offset
// does not fall inside source, e.g. for trees decoded from a file whose
// source text is not at hand.
func (l Location) Position(source string) (line, col int, ok bool) {
	if l.Start < 0 || l.Start > len(source) {
		return 0, 0, false
	}
	line, col = 1, 1
	for _, r := range source[:l.Start] {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col, true
}

// Describe renders l as file:line:col, falling back to the raw byte span.
func (l Location) Describe(source string) string {
	name := l.Filename
	if name == "" {
		name = "<unknown>"
	}
	if source != "" {
		if line, col, ok := l.Position(source); ok {
			return fmt.Sprintf("%s:%d:%d", name, line, col)
		}
	}
	return fmt.Sprintf("%s:[%d..%d]", name, l.Start, l.End)
}

// Snippet returns the source text covered by l, if available.
func (l Location) Snippet(source string) string {
	if l.Start < 0 || l.End > len(source) || l.Start > l.End {
		return ""
	}
	s := source[l.Start:l.End]
	if !utf8.ValidString(s) {
		return ""
	}
	return s
}
