// Package normalize turns analyzer facts into render-ready annotations.
package normalize

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"codenote/internal/annot"
	"codenote/internal/diag"
	"codenote/internal/fact"
	"codenote/internal/render"
	"codenote/internal/source"
)

// DefaultCompletionLimit is the number of completion candidates kept.
const DefaultCompletionLimit = 5

// DefaultAllowedTags lists the doc tags rendered in hover popups.
var DefaultAllowedTags = []string{
	"param", "returns", "return", "example", "deprecated", "see",
	"throws", "remarks", "template", "default", "since", "typeParam",
}

// Options configure payload construction.
type Options struct {
	IncludeJSDoc    bool
	AllowedTags     []string
	CompletionLimit int
	// Language is used to tokenize type text in popups.
	Language string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		IncludeJSDoc:    true,
		AllowedTags:     slices.Clone(DefaultAllowedTags),
		CompletionLimit: DefaultCompletionLimit,
		Language:        "ts",
	}
}

// LineSource is the read side of the host used to anchor tags.
type LineSource interface {
	LineCount() int
	Line(index int) (*source.Line, bool)
}

// Normalizer builds annotations. It is not safe for concurrent use when a
// Reporter is set that is not.
type Normalizer struct {
	renderer render.Renderer
	opts     Options
	allowed  map[string]bool
	// Reporter receives findings (relocated tags, empty types, truncation).
	Reporter diag.Reporter
}

// New creates a normalizer; a nil renderer falls back to render.Plain.
func New(r render.Renderer, opts Options) *Normalizer {
	if r == nil {
		r = render.Plain{}
	}
	if opts.CompletionLimit <= 0 {
		opts.CompletionLimit = DefaultCompletionLimit
	}
	allowed := make(map[string]bool, len(opts.AllowedTags))
	for _, name := range opts.AllowedTags {
		allowed[name] = true
	}
	return &Normalizer{renderer: r, opts: opts, allowed: allowed, Reporter: diag.Nop{}}
}

// All normalizes facts in order; Seq records each fact's position.
// A renderer error aborts and is returned as is.
func (n *Normalizer) All(ctx context.Context, facts []fact.Fact, lines LineSource) ([]annot.Annotation, error) {
	out := make([]annot.Annotation, 0, len(facts))
	for i, f := range facts {
		a, ok, err := n.Normalize(ctx, f, lines)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		a.Seq = i
		out = append(out, a)
	}
	return out, nil
}

// Normalize converts one fact. ok is false when the fact yields nothing
// (a tag with no addressable line).
func (n *Normalizer) Normalize(ctx context.Context, f fact.Fact, lines LineSource) (annot.Annotation, bool, error) {
	if err := ctx.Err(); err != nil {
		return annot.Annotation{}, false, err
	}
	switch f := f.(type) {
	case fact.Hover:
		a, err := n.popup(ctx, annot.KindHover, f.Anchor, f.Text, f.Docs, f.Tags)
		return a, err == nil, err
	case fact.Query:
		a, err := n.popup(ctx, annot.KindQuery, f.Anchor, f.Text, f.Docs, f.Tags)
		return a, err == nil, err
	case fact.Diagnostic:
		return n.diagnostic(f), true, nil
	case fact.Completion:
		return n.completion(f), true, nil
	case fact.Highlight:
		return n.highlight(f), true, nil
	case fact.Tag:
		return n.tag(f, lines)
	}
	panic(fmt.Sprintf("normalize: unexpected fact %T", f))
}

func base(kind annot.Kind, a fact.Anchor) annot.Annotation {
	return annot.Annotation{
		Kind:      kind,
		Line:      a.Line,
		Start:     a.Start,
		Character: a.Character,
		Length:    a.Length,
	}
}

func (n *Normalizer) popup(ctx context.Context, kind annot.Kind, at fact.Anchor, typeText, docs string, tags []fact.DocTag) (annot.Annotation, error) {
	a := base(kind, at)
	a.Text = TypeText(typeText)

	class := "annot-popup"
	if kind == annot.KindQuery {
		class = "annot-query"
	}
	node := render.Element("div", class)
	if a.Text != "" {
		node = node.Append(render.Element("code", "annot-popup-code", render.Code(n.opts.Language, a.Text)))
	} else if typeText != "" {
		diag.Info(n.Reporter, diag.FactEmptyType, at.Line, typeText)
	}

	if n.opts.IncludeJSDoc {
		if strings.TrimSpace(docs) != "" {
			doc, err := n.renderer.Render(ctx, docs)
			if err != nil {
				return annot.Annotation{}, err
			}
			node = node.Append(render.Element("div", "annot-popup-docs", doc))
		}
		tagsNode := render.Element("div", "annot-popup-tags")
		for _, t := range tags {
			if !n.allowed[t.Name] {
				continue
			}
			item := render.Element("span", "annot-popup-tag",
				render.Element("span", "annot-popup-tag-name", render.Text("@"+t.Name)))
			if t.Text != "" {
				body, err := n.renderer.Render(ctx, t.Text)
				if err != nil {
					return annot.Annotation{}, err
				}
				item = item.Append(body)
			}
			tagsNode = tagsNode.Append(item)
		}
		if len(tagsNode.Children) > 0 {
			node = node.Append(tagsNode)
		}
	}
	a.Node = node
	return a, nil
}

func (n *Normalizer) diagnostic(f fact.Diagnostic) annot.Annotation {
	a := base(annot.KindDiagnostic, f.Anchor)
	sev := diag.FromCategory(f.Category)
	a.Severity = sev
	a.Text = f.Message

	children := []render.Node{
		render.Element("span", "annot-diagnostic-label", render.Text(sev.Label())),
		render.Element("span", "annot-diagnostic-message", render.Text(f.Message)),
	}
	if f.Code != 0 {
		children = append(children, render.Element("span", "annot-diagnostic-code", render.Text(fmt.Sprintf("(%d)", f.Code))))
	}
	a.Node = render.Element("div", "annot-diagnostic "+sev.Class(), children...)
	return a
}

func (n *Normalizer) completion(f fact.Completion) annot.Annotation {
	a := base(annot.KindCompletion, f.Anchor)
	a.Length = f.Offset - f.Character

	items := f.Items
	if len(items) > n.opts.CompletionLimit {
		diag.Info(n.Reporter, diag.FactCompletionTrimmed, f.Line,
			fmt.Sprintf("%d of %d candidates kept", n.opts.CompletionLimit, len(items)))
		items = items[:n.opts.CompletionLimit]
	}

	list := render.Element("ul", "annot-completions")
	for _, it := range items {
		item := annot.Item{
			Name:       it.Name,
			Kind:       it.Kind,
			Icon:       Icon(it.Kind),
			Deprecated: IsDeprecated(it.KindModifiers),
		}
		a.Items = append(a.Items, item)

		class := "annot-completion"
		if item.Deprecated {
			class += " annot-deprecated"
		}
		li := render.Element("li", class).WithAttr("icon", item.Icon)
		if f.Prefix != "" && strings.HasPrefix(it.Name, f.Prefix) {
			li = li.Append(
				render.Element("span", "annot-completion-match", render.Text(f.Prefix)),
				render.Text(it.Name[len(f.Prefix):]),
			)
		} else {
			li = li.Append(render.Text(it.Name))
		}
		list = list.Append(li)
	}
	a.Node = list
	return a
}

func (n *Normalizer) highlight(f fact.Highlight) annot.Annotation {
	a := base(annot.KindHighlight, f.Anchor)
	a.Text = f.Text
	node := render.Element("span", "annot-highlight")
	if f.Text != "" {
		node = node.Append(render.Element("span", "annot-highlight-note", render.Text(f.Text)))
	}
	a.Node = node
	return a
}

func (n *Normalizer) tag(f fact.Tag, lines LineSource) (annot.Annotation, bool, error) {
	line, ok := TagLine(f, lines)
	if !ok {
		diag.Warn(n.Reporter, diag.FactTagUnanchored, f.Line, f.Name)
		return annot.Annotation{}, false, nil
	}
	if line != f.Line {
		diag.Info(n.Reporter, diag.FactTagRelocated, f.Line, fmt.Sprintf("%s moved to line %d", f.Name, line))
	}
	a := base(annot.KindTag, f.Anchor)
	a.Line = line
	a.TagName = f.Name
	a.Text = f.Text
	a.Node = render.Element("div", "annot-tag annot-tag-"+f.Name,
		render.Element("span", "annot-tag-name", render.Text(f.Name)),
		render.Element("span", "annot-tag-text", render.Text(f.Text)),
	)
	return a, true, nil
}

// Icon returns the icon name for a completion kind; empty kinds are properties.
func Icon(kind string) string {
	if kind == "" {
		return "property"
	}
	return kind
}

// IsDeprecated reports whether a comma-separated modifier list contains "deprecated".
func IsDeprecated(modifiers string) bool {
	for _, m := range strings.Split(modifiers, ",") {
		if strings.TrimSpace(m) == "deprecated" {
			return true
		}
	}
	return false
}
