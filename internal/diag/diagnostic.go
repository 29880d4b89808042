package diag

import (
	"fmt"

	"codenote/internal/source"
)

// Diagnostic is one finding about a code block. Line is the 0-based line in
// the block as authored (before cuts); Span is a column range on that line.
type Diagnostic struct {
	Severity Severity    `json:"severity" msgpack:"severity"`
	Code     Code        `json:"code" msgpack:"code"`
	Message  string      `json:"message" msgpack:"message"`
	Line     int         `json:"line" msgpack:"line"`
	Span     source.Span `json:"span" msgpack:"span"`
}

func (d Diagnostic) String() string {
	msg := d.Message
	if msg == "" {
		msg = d.Code.Title()
	}
	return fmt.Sprintf("%d:%s %s %s %s", d.Line+1, d.Span, d.Severity, d.Code.ID(), msg)
}
