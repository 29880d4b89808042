package annot

import "testing"

func TestColumns(t *testing.T) {
	tests := []struct {
		name       string
		a          Annotation
		start, end int
	}{
		{name: "regular", a: Annotation{Character: 4, Length: 3}, start: 4, end: 7},
		{name: "zero length", a: Annotation{Character: 4}, start: 4, end: 4},
		{name: "negative completion span", a: Annotation{Kind: KindCompletion, Character: 6, Length: -2}, start: 6, end: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.ColumnStart(); got != tt.start {
				t.Errorf("ColumnStart = %d, want %d", got, tt.start)
			}
			if got := tt.a.ColumnEnd(); got != tt.end {
				t.Errorf("ColumnEnd = %d, want %d", got, tt.end)
			}
		})
	}
}

func TestString(t *testing.T) {
	a := Annotation{Kind: KindStatic, Line: 2, Character: 1, Length: 2}
	if got := a.String(); got != "static@2:1-3" {
		t.Fatalf("String() = %q", got)
	}
}
