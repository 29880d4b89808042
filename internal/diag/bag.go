package diag

import (
	"cmp"
	"slices"

	"codenote/internal/source"
)

// Bag collects the findings of one block.
type Bag struct {
	items []Diagnostic
	limit int
}

// NewBag returns a bag that keeps at most limit findings; limit <= 0 keeps all.
func NewBag(limit int) *Bag {
	return &Bag{limit: limit}
}

// Add reports false once the bag is full.
func (b *Bag) Add(d Diagnostic) bool {
	if b.limit > 0 && len(b.items) == b.limit {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int { return len(b.items) }

// Items exposes the backing slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// Worst returns the highest severity held, SevMessage for an empty bag.
func (b *Bag) Worst() Severity {
	worst := SevMessage
	for _, d := range b.items {
		worst = max(worst, d.Severity)
	}
	return worst
}

// Sort orders by line, then column, then severity (worst first), then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Line, y.Line),
			cmp.Compare(x.Span.Start, y.Span.Start),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first finding per code and position.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		line int
		span source.Span
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Line, d.Span}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
