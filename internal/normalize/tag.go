package normalize

import (
	"strings"

	"codenote/internal/fact"
)

// TagLine picks the line a tag attaches to.
//
// A line whose trailing text is the tag comment itself wins (the declared
// line is checked first). Otherwise the declared line is used when it is
// addressable, else the nearest addressable line searching forward, then
// backward. ok is false only when the source has no lines at all.
func TagLine(t fact.Tag, lines LineSource) (int, bool) {
	n := lines.LineCount()
	if n == 0 {
		return 0, false
	}
	literal := "@" + t.Name
	if t.Text != "" {
		literal += ": " + t.Text
	}
	if hasTrailing(lines, t.Line, literal) {
		return t.Line, true
	}
	for i := range n {
		if hasTrailing(lines, i, literal) {
			return i, true
		}
	}
	if addressable(lines, t.Line) {
		return t.Line, true
	}
	for i := max(t.Line+1, 0); i < n; i++ {
		if addressable(lines, i) {
			return i, true
		}
	}
	for i := min(t.Line-1, n-1); i >= 0; i-- {
		if addressable(lines, i) {
			return i, true
		}
	}
	return 0, false
}

func addressable(lines LineSource, i int) bool {
	ln, ok := lines.Line(i)
	return ok && !ln.Deleted()
}

func hasTrailing(lines LineSource, i int, literal string) bool {
	ln, ok := lines.Line(i)
	if !ok {
		return false
	}
	text := strings.TrimRight(ln.Text, " \t")
	if !strings.HasSuffix(text, literal) {
		return false
	}
	rest := strings.TrimRight(strings.TrimSuffix(text, literal), " \t")
	return strings.HasSuffix(rest, "//")
}
