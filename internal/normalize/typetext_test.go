package normalize

import "testing"

func TestTypeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "const x: 1", want: "const x: 1"},
		{name: "role marker", in: "(property) a: string", want: "a: string"},
		{name: "stacked roles", in: "(alias) (local var) y: number", want: "y: number"},
		{name: "trailing import", in: "(alias) const foo: number\nimport foo", want: "const foo: number"},
		{name: "bare interface header", in: "(alias) interface Foo\nimport Foo", want: ""},
		{name: "namespace header kept body", in: "namespace NS\nconst a: 1", want: "const a: 1"},
		{name: "type alias shape", in: "Pair<T> = [T, T]", want: "type Pair<T> = [T, T]"},
		{name: "call signature shape", in: "(method) map<U>(fn: (x: T) => U): U[]", want: "function map<U>(fn: (x: T) => U): U[]"},
		{name: "empty", in: "", want: ""},
		{name: "crlf", in: "(alias) let z: 2\r\nimport z", want: "let z: 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeText(tt.in); got != tt.want {
				t.Fatalf("TypeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
