// Package annot defines the normalized, render-ready form of a fact.
package annot

import (
	"fmt"

	"codenote/internal/diag"
	"codenote/internal/render"
	"codenote/internal/source"
)

// Kind is the annotation kind. Static is a hover promoted to an always
// visible rendering because a query asked for the same type.
type Kind uint8

const (
	KindHover Kind = iota + 1
	KindStatic
	KindQuery
	KindDiagnostic
	KindCompletion
	KindHighlight
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindHover:
		return "hover"
	case KindStatic:
		return "static"
	case KindQuery:
		return "query"
	case KindDiagnostic:
		return "diagnostic"
	case KindCompletion:
		return "completion"
	case KindHighlight:
		return "highlight"
	case KindTag:
		return "tag"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Item is one rendered completion candidate.
type Item struct {
	Name       string `json:"name" msgpack:"name"`
	Kind       string `json:"kind" msgpack:"kind"`
	Icon       string `json:"icon" msgpack:"icon"`
	Deprecated bool   `json:"deprecated,omitempty" msgpack:"deprecated,omitempty"`
}

// Annotation is created by the normalizer, possibly dropped or merged by the
// overlap resolver, and attached to its line by the emitter.
type Annotation struct {
	Kind      Kind        `json:"kind" msgpack:"kind"`
	Line      int         `json:"line" msgpack:"line"`
	Start     int         `json:"start" msgpack:"start"`
	Character int         `json:"character" msgpack:"character"`
	Length    int         `json:"length" msgpack:"length"`
	Text      string      `json:"text,omitempty" msgpack:"text,omitempty"`
	Node      render.Node `json:"node" msgpack:"node"`

	Severity diag.Severity `json:"severity,omitempty" msgpack:"severity,omitempty"`
	Items    []Item        `json:"items,omitempty" msgpack:"items,omitempty"`
	TagName  string        `json:"tag,omitempty" msgpack:"tag,omitempty"`

	// Seq is the position in the analyzer's fact order; it breaks ties.
	Seq int `json:"seq" msgpack:"seq"`
}

// ColumnStart is the first UTF-16 column covered by the annotation.
func (a Annotation) ColumnStart() int { return a.Character }

// ColumnEnd is the column after the last one covered; never before ColumnStart.
func (a Annotation) ColumnEnd() int {
	if a.Length <= 0 {
		return a.Character
	}
	return a.Character + a.Length
}

// Span returns [ColumnStart, ColumnEnd).
func (a Annotation) Span() source.Span {
	return source.Span{Start: a.ColumnStart(), End: a.ColumnEnd()}
}

func (a Annotation) String() string {
	return fmt.Sprintf("%s@%d:%s", a.Kind, a.Line, a.Span())
}
