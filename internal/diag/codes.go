package diag

import "fmt"

// Code identifies a lint finding about a code block's markers or facts.
type Code uint16

const (
	UnknownCode Code = 0

	// разметка (маркеры и вырезки)
	MarkUnmatchedCutStart Code = 1001
	MarkUnmatchedCutEnd   Code = 1002
	MarkExtraCutBefore    Code = 1003
	MarkExtraCutAfter     Code = 1004
	MarkCutOverlap        Code = 1005
	MarkDanglingQuery     Code = 1006

	// факты анализатора
	FactTagUnanchored     Code = 2001
	FactTagRelocated      Code = 2002
	FactLineCut           Code = 2003
	FactHoverDropped      Code = 2004
	FactEmptyType         Code = 2005
	FactCompletionTrimmed Code = 2006
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown finding",
	MarkUnmatchedCutStart: "cut-start without a following cut-end",
	MarkUnmatchedCutEnd:   "cut-end without a preceding cut-start",
	MarkExtraCutBefore:    "only the first cut-before marker is honoured",
	MarkExtraCutAfter:     "only the first cut-after marker is honoured",
	MarkCutOverlap:        "cut regions overlap",
	MarkDanglingQuery:     "query marker has no line above it",
	FactTagUnanchored:     "tag has no addressable line and was dropped",
	FactTagRelocated:      "tag was attached to the nearest surviving line",
	FactLineCut:           "fact points at a line that was cut",
	FactHoverDropped:      "hover hidden by a higher priority annotation",
	FactEmptyType:         "type text is empty after cleanup",
	FactCompletionTrimmed: "completion list truncated",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("MRK%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("FCT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
