// Package cut computes which source lines disappear before analysis:
// control-comment lines plus the leading, trailing and interior cut regions.
package cut

import (
	"slices"

	"codenote/internal/marker"
)

// Section is one matched cut-start/cut-end pair, both lines inclusive.
type Section struct {
	Start int
	End   int
}

// Set is a set of line indexes.
type Set map[int]struct{}

func (s Set) add(i int) { s[i] = struct{}{} }

func (s Set) addRange(from, to int) {
	for i := from; i <= to; i++ {
		s.add(i)
	}
}

// Has reports membership.
func (s Set) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Lines returns every line index to delete from lines given its markers.
// The result is meant to be applied as a single DeleteLines batch.
func Lines(lines []string, markers []marker.Marker) Set {
	set := Regions(len(lines), markers)
	for _, m := range markers {
		if m.Kind == marker.Flag || m.Kind == marker.QueryMark {
			set.add(m.Line)
		}
	}
	return set
}

// Regions returns only the lines covered by cut regions.
func Regions(n int, markers []marker.Marker) Set {
	set := make(Set)
	if n == 0 {
		return set
	}
	if k, ok := first(markers, marker.CutBefore); ok {
		set.addRange(0, k)
	}
	if k, ok := first(markers, marker.CutAfter); ok {
		set.addRange(k, n-1)
	}
	for _, sec := range Sections(markers) {
		set.addRange(sec.Start, sec.End)
	}
	return set
}

// Sections pairs cut-start markers with the nearest following cut-end.
// A cut-start without a matching end stops the scan: later pairs are not
// considered.
func Sections(markers []marker.Marker) []Section {
	var out []Section
	cursor := 0
	for {
		start := nextIndex(markers, cursor, marker.CutStart)
		if start < 0 {
			break
		}
		end := nextIndex(markers, start+1, marker.CutEnd)
		if end < 0 {
			break
		}
		out = append(out, Section{Start: markers[start].Line, End: markers[end].Line})
		cursor = end + 1
	}
	return out
}

func first(markers []marker.Marker, kind marker.Kind) (int, bool) {
	if i := nextIndex(markers, 0, kind); i >= 0 {
		return markers[i].Line, true
	}
	return 0, false
}

// nextIndex returns the position in markers (not the line) of the next marker
// of kind at or after from, or -1.
func nextIndex(markers []marker.Marker, from int, kind marker.Kind) int {
	for i := from; i < len(markers); i++ {
		if markers[i].Kind == kind {
			return i
		}
	}
	return -1
}
