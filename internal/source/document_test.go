package source

import (
	"errors"
	"testing"
)

func TestDocumentDeleteLinesIsAtomic(t *testing.T) {
	doc := NewDocument([]string{"a", "b", "c", "d", "e"})

	// индексы относятся к состоянию до удаления: 1 и 3 -> "b" и "d"
	removed := doc.DeleteLines([]int{3, 1, 1, 42, -1})
	if removed != 2 {
		t.Fatalf("expected 2 removed lines, got %d", removed)
	}
	got := doc.Texts()
	want := []string{"a", "c", "e"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	for i, ln := range doc.Lines() {
		if ln.Index != i {
			t.Fatalf("line %q has stale index %d, want %d", ln.Text, ln.Index, i)
		}
	}
}

func TestDocumentStableIDsSurviveDeletion(t *testing.T) {
	doc := NewDocument([]string{"x", "y", "z"})
	doc.DeleteLines([]int{0})

	ln, ok := doc.Line(0)
	if !ok {
		t.Fatal("expected line 0 to resolve")
	}
	if ln.ID != 1 || ln.Text != "y" {
		t.Fatalf("expected id 1 'y', got id %d %q", ln.ID, ln.Text)
	}
	dead, ok := doc.ByID(0)
	if !ok || !dead.Deleted() {
		t.Fatal("expected tombstoned line with id 0")
	}
}

func TestDocumentEditTextUTF16Columns(t *testing.T) {
	doc := NewDocument([]string{"let 𝒳 = 1"})
	// 𝒳 занимает две UTF-16 единицы: колонки 4..6
	if err := doc.EditText(0, 4, 6, "y"); err != nil {
		t.Fatalf("EditText: %v", err)
	}
	ln, _ := doc.Line(0)
	if ln.Text != "let y = 1" {
		t.Fatalf("unexpected text %q", ln.Text)
	}

	if err := doc.EditText(0, 0, 1000, "const z = 2"); err != nil {
		t.Fatalf("EditText full line: %v", err)
	}
	if ln.Text != "const z = 2" {
		t.Fatalf("unexpected text after full replace %q", ln.Text)
	}
}

func TestDocumentOutOfRange(t *testing.T) {
	doc := NewDocument([]string{"only"})
	if err := doc.EditText(3, 0, 0, "x"); !errors.Is(err, ErrLineOutOfRange) {
		t.Fatalf("expected ErrLineOutOfRange, got %v", err)
	}
	if err := doc.AddAnnotation(-1, Attachment{}); !errors.Is(err, ErrLineOutOfRange) {
		t.Fatalf("expected ErrLineOutOfRange, got %v", err)
	}
	if _, ok := doc.Line(1); ok {
		t.Fatal("expected line 1 to be unaddressable")
	}
}

func TestNewDocumentFromTextNormalizes(t *testing.T) {
	doc := NewDocumentFromText("\uFEFFa\r\nb\r\n")
	got := doc.Texts()
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "" {
		t.Fatalf("unexpected lines %q", got)
	}
}
