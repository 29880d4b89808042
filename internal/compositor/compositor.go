// Package compositor runs one code block through the whole pipeline: marker
// scan, cuts, analysis, reconciliation, normalization, overlap resolution
// and attachment.
package compositor

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"codenote/internal/analyzer"
	"codenote/internal/annot"
	"codenote/internal/cut"
	"codenote/internal/diag"
	"codenote/internal/emit"
	"codenote/internal/includes"
	"codenote/internal/marker"
	"codenote/internal/normalize"
	"codenote/internal/observ"
	"codenote/internal/overlap"
	"codenote/internal/reconcile"
	"codenote/internal/render"
	"codenote/internal/source"
	"codenote/internal/trace"
)

// Block is one code block handed to the compositor.
type Block struct {
	Code string
	Lang string
	Meta string
}

// Stats summarises what happened to a block.
type Stats struct {
	Composed    bool   // false when the block was gated out or only registered
	Include     string // set for "include <name>" blocks
	Markers     int
	Cut         int
	Reconcile   reconcile.Stats
	Facts       int
	Annotations int
	Resolved    int
	Attached    int
	Skipped     int
}

// Compositor is safe for concurrent use as long as its Reporter is; every
// Compose call works on its own host.
type Compositor struct {
	analyzer analyzer.Analyzer
	renderer render.Renderer
	opts     Options
	enabled  map[string]bool

	// Timer collects per-stage durations; nil disables timing.
	Timer *observ.Timer
	// Reporter receives findings about markers and facts.
	Reporter diag.Reporter
}

// New creates a compositor. A nil renderer falls back to render.Plain.
func New(a analyzer.Analyzer, r render.Renderer, opts Options) *Compositor {
	if r == nil {
		r = render.Plain{}
	}
	enabled := make(map[string]bool, len(opts.Languages))
	for _, l := range opts.Languages {
		enabled[strings.ToLower(l)] = true
	}
	return &Compositor{
		analyzer: a,
		renderer: r,
		opts:     opts,
		enabled:  enabled,
		Reporter: diag.Nop{},
	}
}

// Enabled reports whether a block goes through the pipeline.
func (c *Compositor) Enabled(b Block) bool {
	if len(c.enabled) > 0 && !c.enabled[strings.ToLower(b.Lang)] {
		return false
	}
	switch {
	case c.opts.Trigger != nil:
		return c.opts.Trigger(b.Meta)
	case c.opts.ExplicitTrigger:
		return HasTrigger(b.Meta)
	}
	return true
}

// NewIncludes creates the per-document includes cache.
func (c *Compositor) NewIncludes() (*includes.Cache, error) {
	return includes.New(c.opts.IncludesSize)
}

// Process prepares a host for b and composes it. Include blocks are
// registered in inc and returned untouched; gated blocks are returned
// untouched too. inc may be nil when the document has no includes.
func (c *Compositor) Process(ctx context.Context, b Block, inc *includes.Cache) (*source.Document, Stats, error) {
	if name, ok := IncludeName(b.Meta); ok {
		if inc != nil {
			inc.Register(name, b.Code)
		}
		return source.NewDocumentFromText(b.Code), Stats{Include: name}, nil
	}
	if !c.Enabled(b) {
		return source.NewDocumentFromText(b.Code), Stats{}, nil
	}
	code := b.Code
	if inc != nil {
		expanded, err := inc.Expand(code)
		if err != nil {
			return nil, Stats{}, err
		}
		code = expanded
	}
	doc := source.NewDocumentFromText(code)
	st, err := c.Compose(ctx, doc, b)
	return doc, st, err
}

// Compose runs the pipeline on host, whose lines are the block source.
// b supplies the language and meta; its Code is ignored.
//
// Renderer failures abort the block and are returned unchanged.
func (c *Compositor) Compose(ctx context.Context, host source.Host, b Block) (Stats, error) {
	ctx, blockSpan := trace.Start(ctx, trace.ScopeBlock, "block:"+b.Lang)
	tr := trace.FromContext(ctx)
	st := Stats{Composed: true}
	defer func() {
		blockSpan.WithExtra("facts", strconv.Itoa(st.Facts)).
			WithExtra("attached", strconv.Itoa(st.Attached)).
			End("")
	}()
	parent := blockSpan.ID()

	stage := func(name string) func(detail string) {
		sp := trace.Begin(tr, trace.ScopeStage, name, parent)
		m := c.Timer.Begin(name)
		return func(detail string) {
			sp.End(detail)
			c.Timer.End(m, "")
		}
	}

	// 1-2. маркеры и вырезки; анализатор получает исходный текст целиком
	done := stage("scan")
	lines := make([]string, host.LineCount())
	for i := range lines {
		if ln, ok := host.Line(i); ok {
			lines[i] = ln.Text
		}
	}
	markers := marker.Scan(lines)
	st.Markers = len(markers)
	cut.Lint(markers, c.Reporter)
	done(strconv.Itoa(len(markers)) + " markers")

	done = stage("cut")
	cutLines := cut.Lines(lines, markers).Sorted()
	st.Cut = host.DeleteLines(cutLines)
	done(strconv.Itoa(st.Cut) + " lines")

	done = stage("analyze")
	res, err := c.analyzer.Analyze(ctx, analyzer.Request{
		Code:            strings.Join(lines, "\n"),
		Lang:            b.Lang,
		Meta:            b.Meta,
		CompilerOptions: c.compilerOptions(markers),
	})
	done("")
	if err != nil {
		return st, fmt.Errorf("analyze: %w", err)
	}

	// 3. перезапись текста
	done = stage("reconcile")
	st.Reconcile, err = reconcile.Apply(host, res.Code)
	done(fmt.Sprintf("replaced %d, deleted %d, dropped %d", st.Reconcile.Replaced, st.Reconcile.Deleted, st.Reconcile.Dropped))
	if err != nil {
		return st, err
	}

	// 4. нормализация; ошибки рендера отдаём как есть
	done = stage("normalize")
	facts := res.Facts()
	st.Facts = len(facts)
	norm := normalize.New(c.renderer, c.opts.Normalize)
	norm.Reporter = c.Reporter
	anns, err := norm.All(ctx, facts, host)
	done("")
	if err != nil {
		return st, err
	}
	st.Annotations = len(anns)
	c.reportCutFacts(host, anns)

	// 5. перекрытия
	done = stage("resolve")
	resolved := c.resolver(tr, parent).Resolve(anns)
	st.Resolved = len(resolved)
	done("")

	// 6. прикрепление
	done = stage("emit")
	est, err := emit.All(host, resolved)
	st.Attached, st.Skipped = est.Attached, est.Skipped
	done("")
	if err != nil {
		return st, err
	}
	return st, nil
}

func (c *Compositor) compilerOptions(markers []marker.Marker) map[string]string {
	opts := maps.Clone(c.opts.CompilerOptions)
	if opts == nil {
		opts = make(map[string]string)
	}
	for _, m := range markers {
		if m.Kind != marker.Flag {
			continue
		}
		value := m.Value
		if value == "" {
			value = "true"
		}
		opts[m.Name] = value
	}
	return opts
}

func (c *Compositor) resolver(tr trace.Tracer, parent uint64) *overlap.Resolver {
	r := &overlap.Resolver{
		QueryMatch:      c.opts.QueryMatch,
		DiagnosticMatch: c.opts.DiagnosticMatch,
		Dedup:           c.opts.Dedup,
	}
	if tr.Enabled() {
		r.OnDecision = func(d overlap.Decision) {
			trace.Point(tr, trace.ScopeFact, d.Action.String(), d.Subject.String(), parent,
				map[string]string{"winner": d.Other.String()})
		}
	}
	if c.Reporter != nil {
		inner := r.OnDecision
		r.OnDecision = func(d overlap.Decision) {
			if inner != nil {
				inner(d)
			}
			if d.Action == overlap.Dropped {
				diag.Info(c.Reporter, diag.FactHoverDropped, d.Subject.Line, "hidden by "+d.Other.Kind.String())
			}
		}
	}
	return r
}

func (c *Compositor) reportCutFacts(host source.Host, anns []annot.Annotation) {
	n := host.LineCount()
	for _, a := range anns {
		if a.Line < 0 || a.Line >= n {
			diag.Warn(c.Reporter, diag.FactLineCut, a.Line, a.Kind.String())
		}
	}
}
