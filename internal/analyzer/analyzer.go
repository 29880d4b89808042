// Package analyzer describes the static analyzer the compositor consumes and
// ships adapters for it: an external process, fixtures, and a disk cache.
package analyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"maps"
	"slices"

	"codenote/internal/fact"
)

// ErrNoResult is returned when an analyzer has nothing for a request.
var ErrNoResult = errors.New("no analysis result")

// Request is one code block to analyze. Code still contains markers and cut
// regions; the analyzer strips them in its rewritten output.
type Request struct {
	Code            string            `json:"code" msgpack:"code"`
	Lang            string            `json:"lang" msgpack:"lang"`
	Meta            string            `json:"meta,omitempty" msgpack:"meta,omitempty"`
	CompilerOptions map[string]string `json:"compilerOptions,omitempty" msgpack:"compilerOptions,omitempty"`
}

// Result is the rewritten code plus facts, each list in analyzer order.
type Result struct {
	Code        string            `json:"code" msgpack:"code"`
	Hovers      []fact.Hover      `json:"hovers,omitempty" msgpack:"hovers,omitempty"`
	Queries     []fact.Query      `json:"queries,omitempty" msgpack:"queries,omitempty"`
	Diagnostics []fact.Diagnostic `json:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
	Completions []fact.Completion `json:"completions,omitempty" msgpack:"completions,omitempty"`
	Highlights  []fact.Highlight  `json:"highlights,omitempty" msgpack:"highlights,omitempty"`
	Tags        []fact.Tag        `json:"tags,omitempty" msgpack:"tags,omitempty"`
}

// Facts flattens the lists: hovers, queries, diagnostics, completions,
// highlights, tags.
func (r *Result) Facts() []fact.Fact {
	if r == nil {
		return nil
	}
	n := len(r.Hovers) + len(r.Queries) + len(r.Diagnostics) + len(r.Completions) + len(r.Highlights) + len(r.Tags)
	out := make([]fact.Fact, 0, n)
	for _, f := range r.Hovers {
		out = append(out, f)
	}
	for _, f := range r.Queries {
		out = append(out, f)
	}
	for _, f := range r.Diagnostics {
		out = append(out, f)
	}
	for _, f := range r.Completions {
		out = append(out, f)
	}
	for _, f := range r.Highlights {
		out = append(out, f)
	}
	for _, f := range r.Tags {
		out = append(out, f)
	}
	return out
}

// Analyzer produces a Result for a request.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*Result, error)
}

// Func adapts a function to Analyzer.
type Func func(ctx context.Context, req Request) (*Result, error)

func (f Func) Analyze(ctx context.Context, req Request) (*Result, error) {
	return f(ctx, req)
}

// Digest identifies a request.
type Digest [sha256.Size]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Key hashes language, code and compiler options (sorted by name).
func Key(req Request) Digest {
	h := sha256.New()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	write(req.Lang)
	write(req.Code)
	for _, k := range slices.Sorted(maps.Keys(req.CompilerOptions)) {
		write(k)
		write(req.CompilerOptions[k])
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}
