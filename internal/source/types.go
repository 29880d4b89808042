package source

import "codenote/internal/render"

type (
	// LineID is the stable identity of a line inside a Document arena.
	// It never changes, even when earlier lines are deleted.
	LineID uint32
)

// Attachment is a rendered annotation bound to a column range of a line.
type Attachment struct {
	Kind        string      // annotation kind label ("hover", "error", ...)
	ColumnStart int         // UTF-16 units, inclusive
	ColumnEnd   int         // UTF-16 units, exclusive
	Node        render.Node // pre-rendered payload
}

// Line is one editable source line owned by the host document.
type Line struct {
	ID          LineID
	Index       int // current position, recomputed after every deletion batch
	Text        string
	Annotations []Attachment

	deleted bool // tombstone
}

// Deleted reports whether the line was removed from the document.
func (l *Line) Deleted() bool {
	return l != nil && l.deleted
}
