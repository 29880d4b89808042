package compositor

import (
	"context"
	"fmt"
	"strconv"

	"codenote/internal/diag"
	"codenote/internal/mdblock"
	"codenote/internal/source"
	"codenote/internal/trace"
)

// BlockResult is one fenced block after composition.
type BlockResult struct {
	Block    mdblock.Block
	Doc      *source.Document
	Stats    Stats
	Findings []diag.Diagnostic
}

// DocumentResult holds every block of a markdown document in order.
type DocumentResult struct {
	Name   string
	Blocks []BlockResult
}

// Composed counts the blocks that went through the pipeline.
func (r *DocumentResult) Composed() int {
	n := 0
	for _, b := range r.Blocks {
		if b.Stats.Composed {
			n++
		}
	}
	return n
}

// ProcessMarkdown composes every fenced block of a markdown document, one at
// a time and in order. Includes registered by earlier blocks are visible to
// later ones; the cache lives for this call only. The first failing block
// stops the document.
func (c *Compositor) ProcessMarkdown(ctx context.Context, name, markdown string) (*DocumentResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDocument, "doc:"+name)

	inc, err := c.NewIncludes()
	if err != nil {
		span.End("error")
		return nil, err
	}

	blocks := mdblock.Extract(markdown)
	out := &DocumentResult{Name: name, Blocks: make([]BlockResult, 0, len(blocks))}
	for _, b := range blocks {
		bag := diag.NewBag(0)
		cc := *c
		cc.Reporter = diag.BagReporter{Bag: bag}

		doc, st, err := cc.Process(ctx, Block{Code: b.Code, Lang: b.Lang, Meta: b.Meta}, inc)
		if err != nil {
			span.End("error")
			return out, fmt.Errorf("%s: block %d (line %d): %w", name, b.Index, b.StartLine+1, err)
		}
		bag.Dedup()
		bag.Sort()
		out.Blocks = append(out.Blocks, BlockResult{Block: b, Doc: doc, Stats: st, Findings: bag.Items()})
	}
	span.WithExtra("blocks", strconv.Itoa(len(out.Blocks))).
		WithExtra("composed", strconv.Itoa(out.Composed())).
		End("")
	return out, nil
}
