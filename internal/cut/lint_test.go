package cut

import (
	"testing"

	"codenote/internal/diag"
	"codenote/internal/marker"
)

func lintCodes(src string) []diag.Code {
	bag := diag.NewBag(0)
	Lint(marker.Scan(linesOf(src)), diag.BagReporter{Bag: bag})
	bag.Sort()
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestLint(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{name: "clean", src: "// ---cut---\na\n// ---cut-start---\nb\n// ---cut-end---\nc", want: nil},
		{name: "unmatched start", src: "a\n// ---cut-start---\nb", want: []diag.Code{diag.MarkUnmatchedCutStart}},
		{name: "stray end", src: "a\n// ---cut-end---", want: []diag.Code{diag.MarkUnmatchedCutEnd}},
		{name: "double leading cut", src: "// ---cut---\n// ---cut-before---", want: []diag.Code{diag.MarkExtraCutBefore}},
		{name: "query on first line", src: "// ^?\nx", want: []diag.Code{diag.MarkDanglingQuery}},
		{name: "after before before", src: "// ---cut-after---\n// ---cut---", want: []diag.Code{diag.MarkCutOverlap}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lintCodes(tt.src)
			if len(got) != len(tt.want) {
				t.Fatalf("codes = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("codes = %v, want %v", got, tt.want)
				}
			}
		})
	}
}
