package source

// Host is the mutable line collection the compositor writes into.
// All indices are positions valid at the time of the call.
type Host interface {
	// LineCount returns the number of live lines.
	LineCount() int

	// Line returns the live line at index, or false when index does not resolve.
	Line(index int) (*Line, bool)

	// EditText replaces the [start, end) column range of a line.
	EditText(line, start, end int, replacement string) error

	// DeleteLines removes all given lines as one batch and returns the
	// number of lines actually removed. Indices refer to positions before
	// the batch; duplicates and out-of-range indices are ignored.
	DeleteLines(indices []int) int

	// AddAnnotation appends an attachment to a live line.
	AddAnnotation(line int, a Attachment) error
}
