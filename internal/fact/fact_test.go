package fact

import "testing"

func TestKindsAreDistinct(t *testing.T) {
	facts := []Fact{
		Hover{}, Query{}, Diagnostic{}, Completion{}, Highlight{}, Tag{},
	}
	seen := map[Kind]bool{}
	for _, f := range facts {
		k := f.Kind()
		if seen[k] {
			t.Fatalf("duplicate kind %s", k)
		}
		seen[k] = true
	}
}

func TestPosReturnsEmbeddedAnchor(t *testing.T) {
	a := Anchor{Line: 3, Character: 4, Length: 5, Start: 40}
	var f Fact = Diagnostic{Anchor: a, Code: 2322}
	if got := f.Pos(); got != a {
		t.Fatalf("Pos() = %v, want %v", got, a)
	}
	if got := a.String(); got != "3:4+5" {
		t.Errorf("String() = %q", got)
	}
}
