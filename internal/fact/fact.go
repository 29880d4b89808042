// Package fact holds the semantic facts returned by the static analyzer.
//
// Fact is a closed sum type: only the types in this package implement it,
// and consumers switch over them exhaustively.
package fact

import "fmt"

// Kind tags a fact variant.
type Kind uint8

const (
	KindHover Kind = iota + 1
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

// Fact is implemented by Hover, Query, Diagnostic, Completion, Highlight and Tag.
type Fact interface {
	Kind() Kind
	Pos() Anchor
	isFact()
}

// Anchor positions a fact in the rewritten source. Line and Character are
// 0-based, Character and Length count UTF-16 units; Start is the absolute
// offset of the anchor in the whole text.
type Anchor struct {
	Line      int `json:"line" msgpack:"line"`
	Character int `json:"character" msgpack:"character"`
	Length    int `json:"length" msgpack:"length"`
	Start     int `json:"start" msgpack:"start"`
}

func (a Anchor) Pos() Anchor { return a }

func (a Anchor) String() string {
	return fmt.Sprintf("%d:%d+%d", a.Line, a.Character, a.Length)
}

// DocTag is a JSDoc style tag attached to a hover ("@param x the value").
type DocTag struct {
	Name string `json:"name" msgpack:"name"`
	Text string `json:"text,omitempty" msgpack:"text,omitempty"`
}

// Hover is the quick info for an identifier.
type Hover struct {
	Anchor
	Text string   `json:"text" msgpack:"text"`
	Docs string   `json:"docs,omitempty" msgpack:"docs,omitempty"`
	Tags []DocTag `json:"tags,omitempty" msgpack:"tags,omitempty"`
}

// Query is a hover requested explicitly with a "^?" marker.
type Query struct {
	Anchor
	Text string   `json:"text" msgpack:"text"`
	Docs string   `json:"docs,omitempty" msgpack:"docs,omitempty"`
	Tags []DocTag `json:"tags,omitempty" msgpack:"tags,omitempty"`
}

// Diagnostic is a compiler error or warning.
type Diagnostic struct {
	Anchor
	Code     int    `json:"code" msgpack:"code"`
	Message  string `json:"message" msgpack:"message"`
	Category string `json:"category" msgpack:"category"`
}

// CompletionItem is one candidate of a completion list.
type CompletionItem struct {
	Name          string `json:"name" msgpack:"name"`
	Kind          string `json:"kind,omitempty" msgpack:"kind,omitempty"`
	KindModifiers string `json:"kindModifiers,omitempty" msgpack:"kindModifiers,omitempty"`
}

// Completion is the candidate list requested with a "^|" marker.
// Offset is the cursor column; Prefix is the text typed before it.
type Completion struct {
	Anchor
	Offset int              `json:"offset" msgpack:"offset"`
	Prefix string           `json:"prefix,omitempty" msgpack:"prefix,omitempty"`
	Items  []CompletionItem `json:"items" msgpack:"items"`
}

// Highlight marks a range with an optional note ("^^^ text").
type Highlight struct {
	Anchor
	Text string `json:"text,omitempty" msgpack:"text,omitempty"`
}

// Tag is a free form comment tag ("// @log: message").
type Tag struct {
	Anchor
	Name string `json:"name" msgpack:"name"`
	Text string `json:"text" msgpack:"text"`
}

func (Hover) Kind() Kind      { return KindHover }
func (Query) Kind() Kind      { return KindQuery }
func (Diagnostic) Kind() Kind { return KindDiagnostic }
func (Completion) Kind() Kind { return KindCompletion }
func (Highlight) Kind() Kind  { return KindHighlight }
func (Tag) Kind() Kind        { return KindTag }

func (Hover) isFact()      {}
func (Query) isFact()      {}
func (Diagnostic) isFact() {}
func (Completion) isFact() {}
func (Highlight) isFact()  {}
func (Tag) isFact()        {}
