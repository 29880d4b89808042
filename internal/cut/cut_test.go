package cut

import (
	"slices"
	"strings"
	"testing"

	"codenote/internal/marker"
)

func linesOf(src string) []string { return strings.Split(src, "\n") }

func TestLeadingCutIsPrefix(t *testing.T) {
	for k := 0; k < 5; k++ {
		lines := []string{"a", "b", "c", "d", "e", "f"}
		lines[k] = "// ---cut---"
		got := Lines(lines, marker.Scan(lines)).Sorted()
		want := make([]int, 0, k+1)
		for i := 0; i <= k; i++ {
			want = append(want, i)
		}
		if !slices.Equal(got, want) {
			t.Errorf("cut at %d: got %v, want %v", k, got, want)
		}
	}
}

func TestTrailingCut(t *testing.T) {
	lines := linesOf("a\nb\n// ---cut-after---\nc\nd")
	got := Lines(lines, marker.Scan(lines)).Sorted()
	if want := []int{2, 3, 4}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestOnlyFirstLeadingCutCounts(t *testing.T) {
	lines := linesOf("a\n// ---cut---\nb\n// ---cut-before---\nc")
	got := Regions(len(lines), marker.Scan(lines)).Sorted()
	if want := []int{0, 1}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSectionPairing(t *testing.T) {
	src := "A\n// ---cut-start---\nB\n// ---cut-end---\nC\n// ---cut-start---\nD\n// ---cut-end---\nE"
	lines := linesOf(src)
	markers := marker.Scan(lines)

	secs := Sections(markers)
	want := []Section{{Start: 1, End: 3}, {Start: 5, End: 7}}
	if !slices.Equal(secs, want) {
		t.Fatalf("sections = %v, want %v", secs, want)
	}

	set := Lines(lines, markers)
	for _, keep := range []int{0, 4, 8} {
		if set.Has(keep) {
			t.Errorf("line %d should survive", keep)
		}
	}
	if len(set) != 6 {
		t.Errorf("deleted %d lines, want 6", len(set))
	}
}

func TestUnmatchedStartStopsScanning(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Section
	}{
		{
			name: "dangling start at end",
			src:  "// ---cut-start---\na\n// ---cut-end---\n// ---cut-start---\nb",
			want: []Section{{Start: 0, End: 2}},
		},
		{
			name: "end before start",
			src:  "// ---cut-end---\n// ---cut-start---\na",
			want: nil,
		},
		{
			name: "nested starts pair greedily",
			src:  "// ---cut-start---\n// ---cut-start---\n// ---cut-end---\nx",
			want: []Section{{Start: 0, End: 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sections(marker.Scan(linesOf(tt.src)))
			if !slices.Equal(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEndToEndMarkerLines(t *testing.T) {
	lines := []string{"// @strict", "const x = 1", "// ^?", "x.toFixed()"}
	got := Lines(lines, marker.Scan(lines)).Sorted()
	if want := []int{0, 2}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEmptyInput(t *testing.T) {
	if got := Lines(nil, nil); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}
