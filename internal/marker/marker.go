package marker

// Kind classifies a control-comment line.
type Kind uint8

const (
	// Flag is a compiler-flag comment: "// @strict", "// @target: es2015".
	Flag Kind = iota + 1
	// QueryMark is a caret marker pointing at the line above: "// ^?", "// ^|", "// ^^^".
	QueryMark
	CutBefore
	CutAfter
	CutStart
	CutEnd
)

func (k Kind) String() string {
	switch k {
	case Flag:
		return "flag"
	case QueryMark:
		return "query-mark"
	case CutBefore:
		return "cut-before"
	case CutAfter:
		return "cut-after"
	case CutStart:
		return "cut-start"
	case CutEnd:
		return "cut-end"
	}
	return "unknown"
}

// IsCut reports whether the kind delimits a cut region.
func (k Kind) IsCut() bool {
	return k >= CutBefore && k <= CutEnd
}

// Form records which spelling produced the marker.
type Form string

const (
	FormFlag       Form = "flag"
	FormQuery      Form = "query"
	FormCompletion Form = "completion"
	FormHighlight  Form = "highlight"
	FormCut        Form = "cut" // alias of cut-before
	FormCutBefore  Form = "cut-before"
	FormCutAfter   Form = "cut-after"
	FormCutStart   Form = "cut-start"
	FormCutEnd     Form = "cut-end"
)

// Marker is one classified line. Markers are produced by Scan and consumed
// by the cutter; they are never persisted.
type Marker struct {
	Line int
	Kind Kind
	Form Form
	// Name and Value are set for flags ("// @target: es2015" -> "target", "es2015")
	// and for highlight carets (Value holds the optional trailing text).
	Name  string
	Value string
}
