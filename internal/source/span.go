package source

import (
	"fmt"
)

// Span is a half-open column range [Start, End) on a single line.
type Span struct {
	Start int // UTF-16 units, включительно
	End   int // UTF-16 units, не включительно
}

func (s Span) Empty() bool {
	return s.Start >= s.End
}

func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether col lies inside the span.
func (s Span) Contains(col int) bool {
	return s.Start <= col && col < s.End
}

// Overlaps reports whether two spans share at least one column.
// A zero-length span overlaps a non-empty span when its position is inside it.
func (s Span) Overlaps(other Span) bool {
	if s.Empty() && other.Empty() {
		return s.Start == other.Start
	}
	if s.Empty() {
		return other.Contains(s.Start)
	}
	if other.Empty() {
		return s.Contains(other.Start)
	}
	return s.Start < other.End && other.Start < s.End
}
