package emit

import (
	"slices"
	"testing"

	"codenote/internal/annot"
	"codenote/internal/source"
)

func TestOrderByPriority(t *testing.T) {
	in := []annot.Annotation{
		{Kind: annot.KindTag, Line: 0, Seq: 0},
		{Kind: annot.KindHighlight, Line: 0, Seq: 1},
		{Kind: annot.KindCompletion, Line: 0, Seq: 2},
		{Kind: annot.KindHover, Line: 0, Character: 8, Seq: 3},
		{Kind: annot.KindStatic, Line: 0, Character: 2, Seq: 4},
		{Kind: annot.KindDiagnostic, Line: 0, Seq: 5},
		{Kind: annot.KindHover, Line: 0, Character: 2, Seq: 6},
	}
	var got []int
	for _, a := range Order(in) {
		got = append(got, a.Seq)
	}
	if want := []int{5, 4, 6, 3, 2, 1, 0}; !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if in[0].Kind != annot.KindTag {
		t.Error("input was reordered")
	}
}

func TestAllSkipsMissingLines(t *testing.T) {
	doc := source.NewDocument([]string{"const x = 1", "x.toFixed()"})
	st, err := All(doc, []annot.Annotation{
		{Kind: annot.KindHover, Line: 0, Character: 6, Length: 1},
		{Kind: annot.KindDiagnostic, Line: 0, Character: 6, Length: 1},
		{Kind: annot.KindHover, Line: 7, Character: 0, Length: 1},
		{Kind: annot.KindTag, Line: 1, Character: 3, Length: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if st.Attached != 3 || st.Skipped != 1 {
		t.Fatalf("stats = %+v", st)
	}

	first, _ := doc.Line(0)
	if len(first.Annotations) != 2 || first.Annotations[0].Kind != "diagnostic" || first.Annotations[1].Kind != "hover" {
		t.Fatalf("line 0 annotations = %+v", first.Annotations)
	}
	if a := first.Annotations[1]; a.ColumnStart != 6 || a.ColumnEnd != 7 {
		t.Errorf("hover columns = %d..%d", a.ColumnStart, a.ColumnEnd)
	}

	second, _ := doc.Line(1)
	if tag := second.Annotations[0]; tag.ColumnStart != 0 || tag.ColumnEnd != 11 {
		t.Errorf("tag should span the line, got %d..%d", tag.ColumnStart, tag.ColumnEnd)
	}
}
