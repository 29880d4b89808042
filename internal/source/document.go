package source

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"
)

// ErrLineOutOfRange is returned when an index does not address a live line.
var ErrLineOutOfRange = errors.New("line index out of range")

// Document is the default Host implementation.
//
// Lines live in an arena indexed by LineID. Deletion only marks tombstones;
// the ordered live view is compacted once per DeleteLines batch so that
// indices inside one batch never drift.
type Document struct {
	arena []*Line // LineID -> line, tombstones included
	live  []*Line // current order, no gaps
}

// NewDocument builds a document from already split lines.
func NewDocument(lines []string) *Document {
	doc := &Document{
		arena: make([]*Line, 0, len(lines)),
		live:  make([]*Line, 0, len(lines)),
	}
	for i, text := range lines {
		id, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("line id overflow: %w", err))
		}
		ln := &Line{ID: LineID(id), Index: i, Text: text}
		doc.arena = append(doc.arena, ln)
		doc.live = append(doc.live, ln)
	}
	return doc
}

// NewDocumentFromText normalizes text (BOM, CRLF, NFC) and splits it into lines.
func NewDocumentFromText(text string) *Document {
	return NewDocument(SplitLines(NormalizeText(text)))
}

// LineCount returns the number of live lines.
func (d *Document) LineCount() int {
	return len(d.live)
}

// Line returns the live line at index.
func (d *Document) Line(index int) (*Line, bool) {
	if index < 0 || index >= len(d.live) {
		return nil, false
	}
	return d.live[index], true
}

// ByID returns a line by its stable id, tombstoned lines included.
func (d *Document) ByID(id LineID) (*Line, bool) {
	if int(id) >= len(d.arena) {
		return nil, false
	}
	return d.arena[id], true
}

// Lines returns the live lines in order.
// ВАЖНО: срез принадлежит документу, не модифицируйте его.
func (d *Document) Lines() []*Line {
	return d.live
}

// Texts returns a copy of the live line texts.
func (d *Document) Texts() []string {
	out := make([]string, len(d.live))
	for i, ln := range d.live {
		out[i] = ln.Text
	}
	return out
}

// String joins the live lines with '\n'.
func (d *Document) String() string {
	return strings.Join(d.Texts(), "\n")
}

// EditText replaces the [start, end) range of a line; columns are UTF-16 units
// and are clamped to the line bounds.
func (d *Document) EditText(line, start, end int, replacement string) error {
	ln, ok := d.Line(line)
	if !ok {
		return fmt.Errorf("edit line %d: %w", line, ErrLineOutOfRange)
	}
	if end < start {
		end = start
	}
	from := ByteOffset(ln.Text, start)
	to := ByteOffset(ln.Text, end)
	ln.Text = ln.Text[:from] + replacement + ln.Text[to:]
	return nil
}

// DeleteLines tombstones every addressed line, then compacts the live view once.
func (d *Document) DeleteLines(indices []int) int {
	if len(indices) == 0 {
		return 0
	}
	removed := 0
	for _, idx := range indices {
		ln, ok := d.Line(idx)
		if !ok || ln.deleted {
			continue
		}
		ln.deleted = true
		removed++
	}
	if removed > 0 {
		d.compact()
	}
	return removed
}

func (d *Document) compact() {
	d.live = slices.DeleteFunc(d.live, func(ln *Line) bool { return ln.deleted })
	for i, ln := range d.live {
		ln.Index = i
	}
}

// AddAnnotation appends an attachment to a live line.
func (d *Document) AddAnnotation(line int, a Attachment) error {
	ln, ok := d.Line(line)
	if !ok {
		return fmt.Errorf("annotate line %d: %w", line, ErrLineOutOfRange)
	}
	ln.Annotations = append(ln.Annotations, a)
	return nil
}
