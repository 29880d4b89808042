package render

import "strings"

// NodeType distinguishes element nodes from text leaves.
type NodeType uint8

const (
	// NodeNone is the zero node (nothing to display).
	NodeNone NodeType = iota
	NodeElement
	NodeText
)

func (t NodeType) String() string {
	switch t {
	case NodeElement:
		return "element"
	case NodeText:
		return "text"
	default:
		return "none"
	}
}

// Node is an opaque display tree produced by a Renderer.
type Node struct {
	Type     NodeType          `json:"type" msgpack:"type"`
	Tag      string            `json:"tag,omitempty" msgpack:"tag,omitempty"`
	Class    string            `json:"class,omitempty" msgpack:"class,omitempty"`
	Text     string            `json:"text,omitempty" msgpack:"text,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty" msgpack:"attrs,omitempty"`
	Children []Node            `json:"children,omitempty" msgpack:"children,omitempty"`
}

// Element builds an element node.
func Element(tag, class string, children ...Node) Node {
	return Node{Type: NodeElement, Tag: tag, Class: class, Children: children}
}

// Text builds a text leaf.
func Text(s string) Node {
	return Node{Type: NodeText, Text: s}
}

// WithAttr returns a copy of n with the attribute set.
func (n Node) WithAttr(key, value string) Node {
	attrs := make(map[string]string, len(n.Attrs)+1)
	for k, v := range n.Attrs {
		attrs[k] = v
	}
	attrs[key] = value
	n.Attrs = attrs
	return n
}

// Append returns a copy of n with extra children.
func (n Node) Append(children ...Node) Node {
	out := make([]Node, 0, len(n.Children)+len(children))
	out = append(out, n.Children...)
	out = append(out, children...)
	n.Children = out
	return n
}

// IsZero reports whether the node carries nothing.
func (n Node) IsZero() bool {
	return n.Type == NodeNone
}

// PlainText concatenates every text leaf in document order.
func (n Node) PlainText() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n Node) writeText(b *strings.Builder) {
	if n.Type == NodeText {
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.writeText(b)
	}
}

// Find returns the first descendant (or n itself) with the given class.
func (n Node) Find(class string) (Node, bool) {
	if n.Class == class {
		return n, true
	}
	for _, c := range n.Children {
		if found, ok := c.Find(class); ok {
			return found, true
		}
	}
	return Node{}, false
}
