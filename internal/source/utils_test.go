package source

import "testing"

func TestCRLFNormalization(t *testing.T) {
	normalized, changed := normalizeCRLF("a\r\nb\r\n")
	if !changed {
		t.Error("Expected CRLF normalization to be detected")
	}
	if normalized != "a\nb\n" {
		t.Errorf("Expected normalized content %q, got %q", "a\nb\n", normalized)
	}

	lone, changed := normalizeCRLF("a\rb")
	if changed || lone != "a\rb" {
		t.Errorf("single \\r must be kept, got %q (changed=%v)", lone, changed)
	}
}

func TestBOMRemoval(t *testing.T) {
	out, had := removeBOM("\uFEFFx\n")
	if !had || out != "x\n" {
		t.Errorf("expected BOM removed, got %q (had=%v)", out, had)
	}
	out, had = removeBOM("x")
	if had || out != "x" {
		t.Errorf("unexpected change %q (had=%v)", out, had)
	}
}

func TestNormalizeTextNFC(t *testing.T) {
	// "e" + combining acute -> "é"
	got := NormalizeText("cafe\u0301")
	if got != "caf\u00e9" {
		t.Fatalf("expected NFC form, got %q", got)
	}
}

func TestUTF16LenAndByteOffset(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		want int
	}{
		{name: "ascii start", line: "abc", col: 0, want: 0},
		{name: "ascii middle", line: "abc", col: 2, want: 2},
		{name: "past end clamps", line: "abc", col: 10, want: 3},
		{name: "negative clamps", line: "abc", col: -4, want: 0},
		{name: "two-byte rune", line: "αb", col: 1, want: 2},
		{name: "surrogate pair", line: "𝒳b", col: 2, want: 4},
		{name: "inside surrogate pair", line: "𝒳b", col: 1, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ByteOffset(tt.line, tt.col); got != tt.want {
				t.Errorf("ByteOffset(%q, %d) = %d, want %d", tt.line, tt.col, got, tt.want)
			}
		})
	}

	if n := UTF16Len("a𝒳"); n != 3 {
		t.Fatalf("UTF16Len = %d, want 3", n)
	}
}

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{name: "disjoint", a: Span{0, 2}, b: Span{2, 4}, want: false},
		{name: "overlap", a: Span{0, 3}, b: Span{2, 4}, want: true},
		{name: "empty inside", a: Span{2, 2}, b: Span{0, 4}, want: true},
		{name: "empty at end", a: Span{4, 4}, b: Span{0, 4}, want: false},
		{name: "two empty same", a: Span{1, 1}, b: Span{1, 1}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
	if c := (Span{3, 5}).Cover(Span{1, 4}); c != (Span{1, 5}) {
		t.Fatalf("Cover = %v", c)
	}
}
