package diag

import (
	"testing"

	"codenote/internal/source"
)

func TestFromCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"error", SevError},
		{"Warning", SevWarning},
		{"suggestion", SevSuggestion},
		{"message", SevMessage},
		{"", SevError},
		{"bogus", SevError},
		{"0", SevWarning},
		{"1", SevError},
		{"2", SevSuggestion},
		{"3", SevMessage},
		{"42", SevError},
	}
	for _, tt := range tests {
		if got := FromCategory(tt.in); got != tt.want {
			t.Errorf("FromCategory(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestSeverityClassesAreDistinct(t *testing.T) {
	seen := map[string]Severity{}
	for _, s := range []Severity{SevMessage, SevSuggestion, SevWarning, SevError} {
		if prev, ok := seen[s.Class()]; ok {
			t.Fatalf("%s and %s share class %q", prev, s, s.Class())
		}
		seen[s.Class()] = s
		if s.Label() == "" {
			t.Errorf("%s has no label", s)
		}
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	r := BagReporter{Bag: b}
	Warn(r, MarkUnmatchedCutStart, 4, "")
	Info(r, FactTagRelocated, 1, "moved")
	Warn(r, MarkUnmatchedCutStart, 4, "")
	r.Report(FactLineCut, SevError, 1, source.Span{Start: 0, End: 3}, "cut")

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("len after dedup = %d, want 3", b.Len())
	}
	b.Sort()
	items := b.Items()
	if items[0].Code != FactLineCut || items[1].Code != FactTagRelocated || items[2].Line != 4 {
		t.Fatalf("unexpected order: %v", items)
	}
	if b.Worst() != SevError {
		t.Errorf("Worst() = %s, want error", b.Worst())
	}
	if NewBag(0).Worst() != SevMessage {
		t.Error("empty bag should report SevMessage")
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(1)
	if !b.Add(Diagnostic{}) || b.Add(Diagnostic{}) {
		t.Fatal("limit of 1 not honoured")
	}
}
