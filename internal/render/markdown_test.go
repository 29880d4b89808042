package render

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMarkdownParagraphsAndInline(t *testing.T) {
	md := NewMarkdown("ts")
	node, err := md.Render(context.Background(), "Returns `x` as **bold** and *em*.\n\nSee [docs](https://example.com).")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if node.Class != "md" || len(node.Children) != 2 {
		t.Fatalf("expected md root with 2 paragraphs, got %+v", node)
	}
	first := node.Children[0]
	if first.Tag != "p" {
		t.Fatalf("expected <p>, got %q", first.Tag)
	}
	var tags []string
	for _, c := range first.Children {
		if c.Type == NodeElement {
			tags = append(tags, c.Tag)
		}
	}
	if strings.Join(tags, ",") != "code,strong,em" {
		t.Fatalf("unexpected inline tags %v", tags)
	}
	link := node.Children[1].Children[1]
	if link.Tag != "a" || link.Attrs["href"] != "https://example.com" {
		t.Fatalf("unexpected link node %+v", link)
	}
	if got := node.PlainText(); got != "Returns x as bold and em.See docs." {
		t.Fatalf("unexpected plain text %q", got)
	}
}

func TestMarkdownFencedCode(t *testing.T) {
	md := NewMarkdown("ts")
	node, err := md.Render(context.Background(), "```\nconst a = 1\n```")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	pre, ok := node.Find("code-block")
	if !ok {
		t.Fatalf("expected code-block in %+v", node)
	}
	code := pre.Children[0]
	if code.Tag != "code" {
		t.Fatalf("expected <code>, got %q", code.Tag)
	}
	if got := code.PlainText(); got != "const a = 1" {
		t.Fatalf("token text must round-trip, got %q", got)
	}
}

func TestMarkdownUnterminatedFence(t *testing.T) {
	md := NewMarkdown("")
	_, err := md.Render(context.Background(), "text\n```ts\nlet x")
	if !errors.Is(err, ErrUnterminatedFence) {
		t.Fatalf("expected ErrUnterminatedFence, got %v", err)
	}
}

func TestMarkdownUnbalancedInlineIsLiteral(t *testing.T) {
	md := NewMarkdown("")
	node, err := md.Render(context.Background(), "a `b and *c")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := node.PlainText(); got != "a `b and *c" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestMarkdownCommonMarkInline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		tags  string
		text  string
	}{
		{name: "spaced asterisks are literal", input: "Computes a * b * c.", tags: "", text: "Computes a * b * c."},
		{name: "underscore emphasis", input: "an _underscore_ word", tags: "em", text: "an underscore word"},
		{name: "strong underscores", input: "__very__ loud", tags: "strong", text: "very loud"},
		{name: "code span keeps stars", input: "use `a*b*c` here", tags: "code", text: "use a*b*c here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := NewMarkdown("").Render(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			p := node.Children[0]
			var tags []string
			for _, c := range p.Children {
				if c.Type == NodeElement {
					tags = append(tags, c.Tag)
				}
			}
			if got := strings.Join(tags, ","); got != tt.tags {
				t.Errorf("tags = %q, want %q", got, tt.tags)
			}
			if got := node.PlainText(); got != tt.text {
				t.Errorf("text = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestMarkdownLinkWithParens(t *testing.T) {
	node, err := NewMarkdown("").Render(context.Background(), "See [Foo](https://en.wikipedia.org/wiki/Foo_(bar)) now")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	p := node.Children[0]
	if len(p.Children) != 3 {
		t.Fatalf("children = %+v", p.Children)
	}
	link := p.Children[1]
	if link.Tag != "a" || link.Attrs["href"] != "https://en.wikipedia.org/wiki/Foo_(bar)" {
		t.Fatalf("link = %+v", link)
	}
	if p.Children[2].Text != " now" {
		t.Fatalf("tail = %q", p.Children[2].Text)
	}
}

func TestMarkdownBlocks(t *testing.T) {
	md := "# Title\n\n- first item\n- second item\n\n3. three\n\n> quoted\n\n    indented();\n"
	node, err := NewMarkdown("js").Render(context.Background(), md)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var tags []string
	for _, c := range node.Children {
		tags = append(tags, c.Tag)
	}
	if got := strings.Join(tags, ","); got != "h1,ul,ol,blockquote,pre" {
		t.Fatalf("block tags = %q", got)
	}
	ul := node.Children[1]
	if len(ul.Children) != 2 || ul.Children[0].Tag != "li" || ul.Children[1].PlainText() != "second item" {
		t.Fatalf("list = %+v", ul)
	}
	if node.Children[2].Attrs["start"] != "3" {
		t.Fatalf("ordered list = %+v", node.Children[2])
	}
	if got := node.Children[4].PlainText(); got != "indented();" {
		t.Fatalf("indented code = %q", got)
	}
}

func TestCodeUnknownLanguageFallsBack(t *testing.T) {
	node := Code("no-such-language", "plain words")
	if node.PlainText() != "plain words" {
		t.Fatalf("unexpected text %q", node.PlainText())
	}
}

func TestNodeHelpers(t *testing.T) {
	n := Element("div", "a").WithAttr("k", "v")
	m := n.WithAttr("k", "w")
	if n.Attrs["k"] != "v" || m.Attrs["k"] != "w" {
		t.Fatal("WithAttr must not mutate the receiver")
	}
	if !(Node{}).IsZero() || Text("x").IsZero() {
		t.Fatal("IsZero mismatch")
	}
}
