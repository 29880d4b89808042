// Package mdblock parses markdown with goldmark and locates its fenced code
// blocks by source line.
package mdblock

import (
	"bytes"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Block is one fenced code block. StartLine and EndLine are the 0-based
// lines of the opening and closing fences; for a block left open EndLine is
// its last content line (or the opening line) and Closed is false.
type Block struct {
	Index     int
	Lang      string
	Meta      string
	Code      string
	StartLine int
	EndLine   int
	Closed    bool
}

var commonMark = goldmark.New()

// Document is a parsed markdown source together with its fenced blocks.
type Document struct {
	Source []byte
	Root   ast.Node
	Blocks []Block

	starts []int // byte offset of every line
	byNode map[*ast.FencedCodeBlock]int
}

// Extract returns the fenced blocks of a markdown document in order.
func Extract(markdown string) []Block {
	return Parse(markdown).Blocks
}

// Parse builds the CommonMark tree of markdown. CRLF is folded to LF first.
func Parse(markdown string) *Document {
	src := []byte(strings.ReplaceAll(markdown, "\r\n", "\n"))
	d := &Document{
		Source: src,
		Root:   commonMark.Parser().Parse(text.NewReader(src)),
		starts: lineStarts(src),
		byNode: make(map[*ast.FencedCodeBlock]int),
	}
	next := 0
	_ = ast.Walk(d.Root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fb, ok := n.(*ast.FencedCodeBlock)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		b := d.describe(fb, next)
		b.Index = len(d.Blocks)
		d.byNode[fb] = b.Index
		d.Blocks = append(d.Blocks, b)
		next = b.EndLine + 1
		return ast.WalkSkipChildren, nil
	})
	return d
}

// BlockOf returns the block recorded for a fenced code node of d.Root.
func (d *Document) BlockOf(n *ast.FencedCodeBlock) (Block, bool) {
	i, ok := d.byNode[n]
	if !ok {
		return Block{}, false
	}
	return d.Blocks[i], true
}

func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, c := range src {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (d *Document) lineOf(offset int) int {
	i, found := slices.BinarySearch(d.starts, offset)
	if !found {
		i--
	}
	return i
}

func (d *Document) line(i int) []byte {
	if i < 0 || i >= len(d.starts) {
		return nil
	}
	end := len(d.Source)
	if i+1 < len(d.starts) {
		end = d.starts[i+1] - 1
	}
	return d.Source[d.starts[i]:end]
}

// describe maps fb back to source lines. from is the first line after the
// previous block; it is only searched when fb has neither info nor content.
func (d *Document) describe(fb *ast.FencedCodeBlock, from int) Block {
	var b Block
	if fb.Info != nil {
		info := strings.TrimSpace(string(fb.Info.Segment.Value(d.Source)))
		if fields := strings.Fields(info); len(fields) > 0 {
			b.Lang = fields[0]
			b.Meta = strings.TrimSpace(strings.TrimPrefix(info, fields[0]))
		}
	}

	lines := fb.Lines()
	var code bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		code.Write(seg.Value(d.Source))
	}
	b.Code = strings.TrimSuffix(code.String(), "\n")

	switch {
	case lines.Len() > 0:
		first, last := lines.At(0), lines.At(lines.Len()-1)
		b.StartLine = d.lineOf(first.Start) - 1
		b.EndLine = d.lineOf(last.Start)
	case fb.Info != nil:
		b.StartLine = d.lineOf(fb.Info.Segment.Start)
		b.EndLine = b.StartLine
	default:
		b.StartLine = d.bareFenceFrom(from)
		b.EndLine = b.StartLine
	}

	char, width := d.openingFence(b.StartLine, fb)
	if closes(d.line(b.EndLine+1), char, width) {
		b.EndLine++
		b.Closed = true
	}
	return b
}

// openingFence reads the fence character and run length of the opening line.
func (d *Document) openingFence(lineNo int, fb *ast.FencedCodeBlock) (byte, int) {
	ln := d.line(lineNo)
	if fb.Info != nil {
		if off := fb.Info.Segment.Start - d.starts[lineNo]; off >= 0 && off <= len(ln) {
			ln = ln[:off]
		}
	}
	return trailingFence(bytes.TrimRight(ln, " \t"))
}

func trailingFence(ln []byte) (byte, int) {
	if len(ln) == 0 {
		return 0, 0
	}
	char := ln[len(ln)-1]
	if char != '`' && char != '~' {
		return 0, 0
	}
	n := len(ln) - len(bytes.TrimRight(ln, string(char)))
	return char, n
}

// closes reports whether ln is a closing fence for a char fence of width.
// Only container prefixes (indent, '>') may precede it.
func closes(ln []byte, char byte, width int) bool {
	if width < 3 {
		return false
	}
	ln = bytes.TrimRight(ln, " \t")
	c, n := trailingFence(ln)
	if c != char || n < width {
		return false
	}
	return len(bytes.TrimLeft(ln[:len(ln)-n], " \t>")) == 0
}

// bareFenceFrom finds the first line at or after from that is a fence
// without an info string.
func (d *Document) bareFenceFrom(from int) int {
	for i := from; i < len(d.starts); i++ {
		ln := bytes.TrimRight(d.line(i), " \t")
		_, n := trailingFence(ln)
		if n >= 3 && len(bytes.TrimLeft(ln[:len(ln)-n], " \t>-*+.)0123456789")) == 0 {
			return i
		}
	}
	return from
}
