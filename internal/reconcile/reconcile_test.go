package reconcile

import (
	"slices"
	"testing"

	"codenote/internal/source"
)

// recordingHost wraps a Document and logs every DeleteLines batch.
type recordingHost struct {
	*source.Document
	deletes [][]int
	edits   int
}

func (h *recordingHost) DeleteLines(indices []int) int {
	h.deletes = append(h.deletes, slices.Clone(indices))
	return h.Document.DeleteLines(indices)
}

func (h *recordingHost) EditText(line, start, end int, replacement string) error {
	h.edits++
	return h.Document.EditText(line, start, end, replacement)
}

func TestApplyTrimsAtFixedIndex(t *testing.T) {
	host := &recordingHost{Document: source.NewDocument([]string{"a", "b", "c", "d", "e"})}
	st, err := Apply(host, "A\nB")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := host.Texts(); !slices.Equal(got, []string{"A", "B"}) {
		t.Fatalf("texts = %v", got)
	}
	if st.Replaced != 2 || st.Deleted != 3 {
		t.Errorf("stats = %+v", st)
	}
	if len(host.deletes) != 3 {
		t.Fatalf("got %d delete calls, want 3", len(host.deletes))
	}
	for i, call := range host.deletes {
		if !slices.Equal(call, []int{2}) {
			t.Errorf("delete #%d = %v, want [2]", i, call)
		}
	}
}

func TestApplyLengthInvariant(t *testing.T) {
	tests := []struct {
		name      string
		current   []string
		rewritten string
		want      []string
		dropped   int
	}{
		{name: "same length", current: []string{"x", "y"}, rewritten: "1\n2", want: []string{"1", "2"}},
		{name: "shorter", current: []string{"x", "y", "z"}, rewritten: "1", want: []string{"1"}},
		{name: "longer drops surplus", current: []string{"x"}, rewritten: "1\n2\n3", want: []string{"1"}, dropped: 2},
		{name: "crlf", current: []string{"x", "y"}, rewritten: "1\r\n2", want: []string{"1", "2"}},
		{name: "astral chars", current: []string{"let 𝒳 = 1"}, rewritten: "let 𝒳: number = 1", want: []string{"let 𝒳: number = 1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := source.NewDocument(tt.current)
			st, err := Apply(doc, tt.rewritten)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if got := doc.Texts(); !slices.Equal(got, tt.want) {
				t.Fatalf("texts = %q, want %q", got, tt.want)
			}
			if st.Dropped != tt.dropped {
				t.Errorf("dropped = %d, want %d", st.Dropped, tt.dropped)
			}
			for i, ln := range doc.Lines() {
				if ln.Index != i {
					t.Errorf("line %d has index %d", i, ln.Index)
				}
			}
		})
	}
}

func TestApplyKeepsLineIdentity(t *testing.T) {
	doc := source.NewDocument([]string{"a", "b"})
	before, _ := doc.Line(1)
	if _, err := Apply(doc, "A\nB"); err != nil {
		t.Fatal(err)
	}
	after, _ := doc.Line(1)
	if before.ID != after.ID {
		t.Fatalf("line id changed: %d -> %d", before.ID, after.ID)
	}
}
