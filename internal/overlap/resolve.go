// Package overlap removes and merges annotations that describe the same span.
package overlap

import "codenote/internal/annot"

// Action is what the resolver did to an annotation.
type Action uint8

const (
	// Demoted: a hover became a static annotation because a query matched it.
	Demoted Action = iota + 1
	// Dropped: a hover lost to a diagnostic or a completion.
	Dropped
	// Pulled: a completion's start moved left to a dropped hover's start.
	Pulled
	// Deduplicated: a same-kind duplicate was removed.
	Deduplicated
)

func (a Action) String() string {
	switch a {
	case Demoted:
		return "demoted"
	case Dropped:
		return "dropped"
	case Pulled:
		return "pulled"
	case Deduplicated:
		return "deduplicated"
	}
	return "unknown"
}

// Decision describes one resolution step; Other is the annotation that won.
type Decision struct {
	Action  Action
	Subject annot.Annotation
	Other   annot.Annotation
}

// Resolver applies the precedence rules:
//
//  1. a hover matching a query (QueryMatch) becomes static and takes the
//     query's node; the query is consumed;
//  2. a hover matching a diagnostic (DiagnosticMatch) is dropped;
//  3. a hover whose range contains a completion's start is dropped, and the
//     completion start is pulled left to the hover start.
//
// The first matching rule wins. Diagnostics and tags are never removed.
type Resolver struct {
	QueryMatch      Policy
	DiagnosticMatch Policy
	// Dedup collapses same-kind duplicates (diagnostics and tags excluded); 0 disables.
	Dedup      Policy
	OnDecision func(Decision)
}

// NewResolver returns a resolver with the default policies.
func NewResolver() *Resolver {
	return &Resolver{
		QueryMatch:      DefaultQueryMatch,
		DiagnosticMatch: DefaultDiagnosticMatch,
		Dedup:           DefaultDedup,
	}
}

func (r *Resolver) decide(act Action, subject, other annot.Annotation) {
	if r.OnDecision != nil {
		r.OnDecision(Decision{Action: act, Subject: subject, Other: other})
	}
}

// Resolve works line by line and keeps the input order of the survivors.
// The input slice is not modified.
func (r *Resolver) Resolve(anns []annot.Annotation) []annot.Annotation {
	work := make([]annot.Annotation, len(anns))
	copy(work, anns)
	gone := make([]bool, len(work))

	byLine := make(map[int][]int)
	var order []int
	for i, a := range work {
		if _, ok := byLine[a.Line]; !ok {
			order = append(order, a.Line)
		}
		byLine[a.Line] = append(byLine[a.Line], i)
	}
	for _, line := range order {
		idx := byLine[line]
		r.dedup(work, gone, idx)
		r.resolveLine(work, gone, idx)
	}

	out := make([]annot.Annotation, 0, len(work))
	for i, a := range work {
		if !gone[i] {
			out = append(out, a)
		}
	}
	return out
}

func (r *Resolver) dedup(work []annot.Annotation, gone []bool, idx []int) {
	if r.Dedup == 0 {
		return
	}
	for x, i := range idx {
		if gone[i] || neverRemoved(work[i].Kind) {
			continue
		}
		for _, j := range idx[x+1:] {
			if gone[j] || work[j].Kind != work[i].Kind {
				continue
			}
			if r.Dedup.Equal(work[i], work[j]) {
				gone[j] = true
				r.decide(Deduplicated, work[j], work[i])
			}
		}
	}
}

func (r *Resolver) resolveLine(work []annot.Annotation, gone []bool, idx []int) {
	for _, h := range idx {
		if gone[h] || work[h].Kind != annot.KindHover {
			continue
		}
		hover := work[h]

		if q, ok := r.find(work, gone, idx, annot.KindQuery, func(q annot.Annotation) bool {
			return r.QueryMatch.Equal(hover, q)
		}); ok {
			query := work[q]
			gone[q] = true
			work[h].Kind = annot.KindStatic
			work[h].Node = query.Node
			r.decide(Demoted, hover, query)
			continue
		}

		if d, ok := r.find(work, gone, idx, annot.KindDiagnostic, func(d annot.Annotation) bool {
			return r.DiagnosticMatch.Equal(hover, d)
		}); ok {
			gone[h] = true
			r.decide(Dropped, hover, work[d])
			continue
		}

		hs, he := hover.ColumnStart(), hover.ColumnEnd()
		if c, ok := r.find(work, gone, idx, annot.KindCompletion, func(c annot.Annotation) bool {
			cs := c.ColumnStart()
			return hs <= cs && cs < he
		}); ok {
			gone[h] = true
			r.decide(Dropped, hover, work[c])
			if work[c].Character > hs {
				// правый край автодополнения остаётся на месте
				end := work[c].ColumnEnd()
				work[c].Character = hs
				work[c].Length = end - hs
				r.decide(Pulled, work[c], hover)
			}
		}
	}
}

func (r *Resolver) find(work []annot.Annotation, gone []bool, idx []int, kind annot.Kind, match func(annot.Annotation) bool) (int, bool) {
	for _, i := range idx {
		if !gone[i] && work[i].Kind == kind && match(work[i]) {
			return i, true
		}
	}
	return 0, false
}

func neverRemoved(k annot.Kind) bool {
	return k == annot.KindDiagnostic || k == annot.KindTag
}
