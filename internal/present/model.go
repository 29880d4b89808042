package present

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"codenote/internal/compositor"
	"codenote/internal/diag"
	"codenote/internal/render"
	"codenote/internal/source"
)

// AnnotationJSON представляет одну прикреплённую аннотацию.
type AnnotationJSON struct {
	Kind     string       `json:"kind" msgpack:"kind"`
	StartCol uint32       `json:"start_col" msgpack:"start_col"`
	EndCol   uint32       `json:"end_col" msgpack:"end_col"`
	Label    string       `json:"label" msgpack:"label"`
	Severity string       `json:"severity,omitempty" msgpack:"severity,omitempty"`
	Node     *render.Node `json:"node,omitempty" msgpack:"node,omitempty"`
}

// LineJSON представляет строку блока после композиции.
type LineJSON struct {
	Line        uint32           `json:"line" msgpack:"line"`
	Text        string           `json:"text" msgpack:"text"`
	Annotations []AnnotationJSON `json:"annotations,omitempty" msgpack:"annotations,omitempty"`
}

// FindingJSON представляет замечание к блоку.
type FindingJSON struct {
	Severity string `json:"severity" msgpack:"severity"`
	Code     string `json:"code" msgpack:"code"`
	Message  string `json:"message" msgpack:"message"`
	Line     uint32 `json:"line" msgpack:"line"`
}

// BlockJSON представляет один блок кода.
type BlockJSON struct {
	Index     int           `json:"index" msgpack:"index"`
	Lang      string        `json:"lang" msgpack:"lang"`
	Meta      string        `json:"meta,omitempty" msgpack:"meta,omitempty"`
	StartLine uint32        `json:"start_line" msgpack:"start_line"`
	Composed  bool          `json:"composed" msgpack:"composed"`
	Include   string        `json:"include,omitempty" msgpack:"include,omitempty"`
	Lines     []LineJSON    `json:"lines" msgpack:"lines"`
	Findings  []FindingJSON `json:"findings,omitempty" msgpack:"findings,omitempty"`
}

// DocumentJSON представляет корневую структуру вывода.
type DocumentJSON struct {
	Name   string      `json:"name" msgpack:"name"`
	Blocks []BlockJSON `json:"blocks" msgpack:"blocks"`
}

func u32(v int) uint32 {
	n, err := safecast.Conv[uint32](max(v, 0))
	if err != nil {
		panic(fmt.Errorf("position overflow: %w", err))
	}
	return n
}

// FromResult converts a composed document into the output model.
// Line numbers are 1-based.
func FromResult(r *compositor.DocumentResult, includeNodes bool) DocumentJSON {
	out := DocumentJSON{Name: r.Name, Blocks: make([]BlockJSON, 0, len(r.Blocks))}
	for _, b := range r.Blocks {
		bj := BlockJSON{
			Index:     b.Block.Index,
			Lang:      b.Block.Lang,
			Meta:      b.Block.Meta,
			StartLine: u32(b.Block.StartLine + 1),
			Composed:  b.Stats.Composed,
			Include:   b.Stats.Include,
		}
		if b.Doc != nil {
			for i, ln := range b.Doc.Lines() {
				bj.Lines = append(bj.Lines, lineJSON(i, ln, includeNodes))
			}
		}
		for _, f := range b.Findings {
			bj.Findings = append(bj.Findings, FindingJSON{
				Severity: f.Severity.String(),
				Code:     f.Code.ID(),
				Message:  findingMessage(f),
				Line:     u32(f.Line + 1),
			})
		}
		out.Blocks = append(out.Blocks, bj)
	}
	return out
}

func findingMessage(f diag.Diagnostic) string {
	if f.Message == "" {
		return f.Code.Title()
	}
	return f.Code.Title() + ": " + f.Message
}

func lineJSON(i int, ln *source.Line, includeNodes bool) LineJSON {
	lj := LineJSON{Line: u32(i + 1), Text: ln.Text}
	for _, a := range ln.Annotations {
		aj := AnnotationJSON{
			Kind:     a.Kind,
			StartCol: u32(a.ColumnStart),
			EndCol:   u32(a.ColumnEnd),
			Label:    Label(a),
			Severity: severityOf(a),
		}
		if includeNodes {
			node := a.Node
			aj.Node = &node
		}
		lj.Annotations = append(lj.Annotations, aj)
	}
	return lj
}

// Label flattens an attachment's node to one line of text.
func Label(a source.Attachment) string {
	sep := " "
	if a.Kind == "completion" {
		sep = ", "
	}
	var parts []string
	if len(a.Node.Children) == 0 {
		parts = append(parts, a.Node.PlainText())
	}
	for _, c := range a.Node.Children {
		if t := c.PlainText(); strings.TrimSpace(t) != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(strings.Fields(strings.Join(parts, sep)), " ")
}

func severityOf(a source.Attachment) string {
	if a.Kind != "diagnostic" {
		return ""
	}
	for _, sev := range []diag.Severity{diag.SevWarning, diag.SevSuggestion, diag.SevMessage} {
		if strings.Contains(a.Node.Class, sev.Class()) {
			return sev.String()
		}
	}
	return diag.SevError.String()
}
