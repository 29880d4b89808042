// Package emit attaches resolved annotations to their host lines.
package emit

import (
	"fmt"
	"slices"

	"codenote/internal/annot"
	"codenote/internal/source"
)

// Priority orders annotation kinds on a line; lower attaches first, so later
// kinds wrap earlier ones.
func Priority(k annot.Kind) int {
	switch k {
	case annot.KindDiagnostic:
		return 0
	case annot.KindHover, annot.KindStatic, annot.KindQuery:
		return 1
	case annot.KindCompletion:
		return 2
	case annot.KindHighlight:
		return 3
	case annot.KindTag:
		return 4
	}
	return 5
}

// Order returns a copy sorted by line, kind priority, column and fact order.
func Order(anns []annot.Annotation) []annot.Annotation {
	out := slices.Clone(anns)
	slices.SortStableFunc(out, func(a, b annot.Annotation) int {
		if a.Line != b.Line {
			return a.Line - b.Line
		}
		if pa, pb := Priority(a.Kind), Priority(b.Kind); pa != pb {
			return pa - pb
		}
		if a.Character != b.Character {
			return a.Character - b.Character
		}
		return a.Seq - b.Seq
	})
	return out
}

// Stats counts attachments.
type Stats struct {
	Attached int
	Skipped  int // annotations whose line no longer exists
}

// Emit attaches already ordered annotations to one line. Annotations for a
// line that does not resolve are skipped. Same-kind overlap is not checked.
func Emit(host source.Host, line int, ordered []annot.Annotation) (Stats, error) {
	var st Stats
	ln, ok := host.Line(line)
	if !ok || ln.Deleted() {
		st.Skipped = len(ordered)
		return st, nil
	}
	for _, a := range ordered {
		att := source.Attachment{
			Kind:        a.Kind.String(),
			ColumnStart: a.ColumnStart(),
			ColumnEnd:   a.ColumnEnd(),
			Node:        a.Node,
		}
		if a.Kind == annot.KindTag {
			// тег оформляет всю строку
			att.ColumnStart, att.ColumnEnd = 0, source.UTF16Len(ln.Text)
		}
		if err := host.AddAnnotation(line, att); err != nil {
			return st, fmt.Errorf("emit %s: %w", a, err)
		}
		st.Attached++
	}
	return st, nil
}

// All orders anns and emits them line by line.
func All(host source.Host, anns []annot.Annotation) (Stats, error) {
	var total Stats
	ordered := Order(anns)
	for start := 0; start < len(ordered); {
		end := start + 1
		for end < len(ordered) && ordered[end].Line == ordered[start].Line {
			end++
		}
		st, err := Emit(host, ordered[start].Line, ordered[start:end])
		total.Attached += st.Attached
		total.Skipped += st.Skipped
		if err != nil {
			return total, err
		}
		start = end
	}
	return total, nil
}
