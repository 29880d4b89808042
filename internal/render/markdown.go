package render

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"

	"codenote/internal/mdblock"
)

// ErrUnterminatedFence is returned for a code fence that is never closed.
var ErrUnterminatedFence = errors.New("unterminated code fence")

// Markdown is the default Renderer. It parses CommonMark with goldmark and
// maps the tree onto Nodes; fenced code is tokenized by Code.
type Markdown struct {
	// DefaultLang is used for fences without an info string and for
	// indented code.
	DefaultLang string
}

// NewMarkdown returns a Markdown renderer.
func NewMarkdown(defaultLang string) *Markdown {
	return &Markdown{DefaultLang: defaultLang}
}

// Render parses text into a <div class="md"> tree.
func (m *Markdown) Render(ctx context.Context, text string) (Node, error) {
	if err := ctx.Err(); err != nil {
		return Node{}, err
	}
	doc := mdblock.Parse(text)
	w := treeWalker{doc: doc, src: doc.Source, lang: m.DefaultLang}
	root := Element("div", "md")
	if err := w.children(&root, doc.Root); err != nil {
		return Node{}, err
	}
	return root, nil
}

type treeWalker struct {
	doc  *mdblock.Document
	src  []byte
	lang string
}

func (w *treeWalker) children(parent *Node, n ast.Node) error {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if err := w.node(parent, c); err != nil {
			return err
		}
	}
	return nil
}

func (w *treeWalker) node(parent *Node, n ast.Node) error {
	switch n := n.(type) {
	case *ast.Text:
		appendText(parent, string(n.Segment.Value(w.src)))
		switch {
		case n.HardLineBreak():
			parent.Children = append(parent.Children, Element("br", ""))
		case n.SoftLineBreak():
			appendText(parent, " ")
		}
		return nil
	case *ast.String:
		appendText(parent, string(n.Value))
		return nil
	case *ast.CodeSpan:
		code := strings.ReplaceAll(w.inlineText(n), "\n", " ")
		parent.Children = append(parent.Children, Element("code", "", Text(code)))
		return nil
	case *ast.AutoLink:
		link := Element("a", "", Text(string(n.Label(w.src)))).WithAttr("href", string(n.URL(w.src)))
		parent.Children = append(parent.Children, link)
		return nil
	case *ast.Image:
		img := Element("img", "").WithAttr("src", string(n.Destination)).WithAttr("alt", w.inlineText(n))
		parent.Children = append(parent.Children, img)
		return nil
	case *ast.FencedCodeBlock:
		b, _ := w.doc.BlockOf(n)
		if !b.Closed {
			return fmt.Errorf("%w (opened at line %d)", ErrUnterminatedFence, b.StartLine+1)
		}
		parent.Children = append(parent.Children, Element("pre", "code-block", Code(cmp.Or(b.Lang, w.lang), b.Code)))
		return nil
	case *ast.CodeBlock:
		code := strings.TrimSuffix(w.lines(n), "\n")
		parent.Children = append(parent.Children, Element("pre", "code-block", Code(w.lang, code)))
		return nil
	case *ast.HTMLBlock:
		appendText(parent, w.lines(n))
		return nil
	case *ast.RawHTML:
		for i := range n.Segments.Len() {
			seg := n.Segments.At(i)
			appendText(parent, string(seg.Value(w.src)))
		}
		return nil
	case *ast.TextBlock:
		return w.children(parent, n)
	}

	el, ok := element(n)
	if !ok {
		return w.children(parent, n)
	}
	if err := w.children(&el, n); err != nil {
		return err
	}
	parent.Children = append(parent.Children, el)
	return nil
}

func element(n ast.Node) (Node, bool) {
	switch n := n.(type) {
	case *ast.Paragraph:
		return Element("p", ""), true
	case *ast.Heading:
		return Element("h"+strconv.Itoa(n.Level), ""), true
	case *ast.Blockquote:
		return Element("blockquote", ""), true
	case *ast.List:
		if !n.IsOrdered() {
			return Element("ul", ""), true
		}
		ol := Element("ol", "")
		if n.Start != 1 {
			ol = ol.WithAttr("start", strconv.Itoa(n.Start))
		}
		return ol, true
	case *ast.ListItem:
		return Element("li", ""), true
	case *ast.ThematicBreak:
		return Element("hr", ""), true
	case *ast.Emphasis:
		if n.Level >= 2 {
			return Element("strong", ""), true
		}
		return Element("em", ""), true
	case *ast.Link:
		a := Element("a", "").WithAttr("href", string(n.Destination))
		if len(n.Title) > 0 {
			a = a.WithAttr("title", string(n.Title))
		}
		return a, true
	}
	return Node{}, false
}

// inlineText flattens the text below n, as used for code spans and alt text.
func (w *treeWalker) inlineText(n ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(w.src))
			if c.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func (w *treeWalker) lines(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		b.Write(seg.Value(w.src))
	}
	return b.String()
}

// appendText merges s into a trailing text leaf of parent.
func appendText(parent *Node, s string) {
	if s == "" {
		return
	}
	if k := len(parent.Children); k > 0 && parent.Children[k-1].Type == NodeText {
		parent.Children[k-1].Text += s
		return
	}
	parent.Children = append(parent.Children, Text(s))
}
