package diag

import "codenote/internal/source"

// Reporter - минимальный контракт получения диагностик.
// Реализации: BagReporter (кладёт в Bag), Nop.
type Reporter interface {
	Report(code Code, sev Severity, line int, span source.Span, msg string)
}

// BagReporter - адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, line int, span source.Span, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Line: line, Span: span})
}

// Nop discards everything.
type Nop struct{}

func (Nop) Report(Code, Severity, int, source.Span, string) {}

// Warn is a shortcut for SevWarning findings without a column range.
func Warn(r Reporter, code Code, line int, msg string) {
	if r != nil {
		r.Report(code, SevWarning, line, source.Span{}, msg)
	}
}

// Info is a shortcut for SevMessage findings without a column range.
func Info(r Reporter, code Code, line int, msg string) {
	if r != nil {
		r.Report(code, SevMessage, line, source.Span{}, msg)
	}
}
