package overlap

import (
	"testing"

	"codenote/internal/annot"
	"codenote/internal/render"
)

func kinds(anns []annot.Annotation) []annot.Kind {
	out := make([]annot.Kind, len(anns))
	for i, a := range anns {
		out[i] = a.Kind
	}
	return out
}

func TestHoverMatchingQueryBecomesStatic(t *testing.T) {
	queryNode := render.Element("div", "annot-query", render.Text("const x: 1"))
	in := []annot.Annotation{
		{Kind: annot.KindHover, Line: 0, Character: 6, Length: 1, Text: "const x: 1", Seq: 0},
		{Kind: annot.KindQuery, Line: 0, Character: 6, Length: 1, Text: "const x: 1", Node: queryNode, Seq: 1},
	}
	var decisions []Decision
	r := NewResolver()
	r.OnDecision = func(d Decision) { decisions = append(decisions, d) }

	out := r.Resolve(in)
	if len(out) != 1 {
		t.Fatalf("got %v, want one static annotation", kinds(out))
	}
	if out[0].Kind != annot.KindStatic {
		t.Fatalf("kind = %s, want static", out[0].Kind)
	}
	if out[0].Node.Class != "annot-query" {
		t.Errorf("static should carry the query node, got %q", out[0].Node.Class)
	}
	for _, a := range out {
		if a.Kind == annot.KindHover {
			t.Fatal("plain hover survived")
		}
	}
	if len(decisions) != 1 || decisions[0].Action != Demoted {
		t.Errorf("decisions = %+v", decisions)
	}
	if in[0].Kind != annot.KindHover {
		t.Error("input slice was modified")
	}
}

func TestQueryOnOtherLineDoesNotMatch(t *testing.T) {
	out := NewResolver().Resolve([]annot.Annotation{
		{Kind: annot.KindHover, Line: 0, Text: "x: 1"},
		{Kind: annot.KindQuery, Line: 1, Text: "x: 1"},
	})
	if len(out) != 2 || out[0].Kind != annot.KindHover || out[1].Kind != annot.KindQuery {
		t.Fatalf("got %v", kinds(out))
	}
}

func TestDiagnosticDominatesHover(t *testing.T) {
	d := annot.Annotation{Kind: annot.KindDiagnostic, Line: 2, Start: 30, Character: 4, Length: 3, Text: "bad"}
	h := annot.Annotation{Kind: annot.KindHover, Line: 2, Start: 30, Character: 4, Length: 3, Text: "x: string"}
	out := NewResolver().Resolve([]annot.Annotation{h, d})
	if len(out) != 1 {
		t.Fatalf("got %v", kinds(out))
	}
	if out[0].Kind != annot.KindDiagnostic || out[0].Text != "bad" || out[0].Length != 3 {
		t.Fatalf("diagnostic changed: %+v", out[0])
	}
}

func TestHoverDifferentSpanSurvivesDiagnostic(t *testing.T) {
	out := NewResolver().Resolve([]annot.Annotation{
		{Kind: annot.KindHover, Line: 0, Character: 0, Length: 3},
		{Kind: annot.KindDiagnostic, Line: 0, Character: 4, Length: 3},
	})
	if len(out) != 2 {
		t.Fatalf("got %v", kinds(out))
	}
}

func TestCompletionPullsStart(t *testing.T) {
	tests := []struct {
		name      string
		hover     annot.Annotation
		compLen   int
		wantChar  int
		wantLen   int
		wantCount int
	}{
		{
			name:      "hover starts before completion",
			hover:     annot.Annotation{Kind: annot.KindHover, Line: 0, Character: 2, Length: 5},
			compLen:   2,
			wantChar:  2,
			wantLen:   4,
			wantCount: 1,
		},
		{
			name:      "cursor completion keeps its end",
			hover:     annot.Annotation{Kind: annot.KindHover, Line: 0, Character: 2, Length: 5},
			compLen:   -3,
			wantChar:  2,
			wantLen:   2,
			wantCount: 1,
		},
		{
			name:      "same start",
			hover:     annot.Annotation{Kind: annot.KindHover, Line: 0, Character: 4, Length: 2},
			compLen:   2,
			wantChar:  4,
			wantLen:   2,
			wantCount: 1,
		},
		{
			name:      "hover ends before completion",
			hover:     annot.Annotation{Kind: annot.KindHover, Line: 0, Character: 0, Length: 2},
			compLen:   2,
			wantChar:  4,
			wantLen:   2,
			wantCount: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := annot.Annotation{Kind: annot.KindCompletion, Line: 0, Character: 4, Length: tt.compLen}
			out := NewResolver().Resolve([]annot.Annotation{tt.hover, c})
			if len(out) != tt.wantCount {
				t.Fatalf("got %v", kinds(out))
			}
			got := out[len(out)-1]
			if got.Kind != annot.KindCompletion || got.Character != tt.wantChar || got.Length != tt.wantLen {
				t.Fatalf("completion = %+v", got)
			}
		})
	}
}

func TestTagsAndDiagnosticsNeverRemoved(t *testing.T) {
	in := []annot.Annotation{
		{Kind: annot.KindDiagnostic, Line: 0, Character: 1, Length: 1, Text: "dup"},
		{Kind: annot.KindDiagnostic, Line: 0, Character: 1, Length: 1, Text: "dup"},
		{Kind: annot.KindTag, Line: 0, Text: "t"},
		{Kind: annot.KindTag, Line: 0, Text: "t"},
		{Kind: annot.KindHover, Line: 0, Character: 1, Length: 1},
	}
	out := NewResolver().Resolve(in)
	if len(out) != 4 {
		t.Fatalf("got %v", kinds(out))
	}
}

func TestDedupSameKind(t *testing.T) {
	in := []annot.Annotation{
		{Kind: annot.KindHighlight, Line: 1, Character: 0, Length: 3, Seq: 0},
		{Kind: annot.KindHighlight, Line: 1, Character: 0, Length: 3, Seq: 1},
		{Kind: annot.KindHover, Line: 1, Character: 0, Length: 3, Seq: 2},
	}
	out := NewResolver().Resolve(in)
	if len(out) != 2 || out[0].Seq != 0 || out[1].Seq != 2 {
		t.Fatalf("got %+v", out)
	}

	r := NewResolver()
	r.Dedup = 0
	if got := r.Resolve(in); len(got) != 3 {
		t.Fatalf("dedup disabled: got %d", len(got))
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy([]string{"line", " Text "})
	if err != nil {
		t.Fatal(err)
	}
	if p != DefaultQueryMatch {
		t.Fatalf("policy = %s", p)
	}
	if p.String() != "line|text" {
		t.Errorf("String() = %q", p.String())
	}
	if _, err := ParsePolicy([]string{"column"}); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestEqualIgnoresTextForCompletions(t *testing.T) {
	a := annot.Annotation{Kind: annot.KindCompletion, Line: 0, Text: "a"}
	b := annot.Annotation{Kind: annot.KindHover, Line: 0, Text: "b"}
	if !(FieldLine | FieldText).Equal(a, b) {
		t.Fatal("text must be ignored when a completion is involved")
	}
	if Policy(0).Equal(a, a) {
		t.Fatal("empty policy matches nothing")
	}
}
