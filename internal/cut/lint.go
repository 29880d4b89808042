package cut

import (
	"fmt"

	"codenote/internal/diag"
	"codenote/internal/marker"
)

// Lint reports marker layouts that Lines handles silently: repeated leading or
// trailing cuts, unpaired section markers, overlapping regions and query
// carets with no line above them.
func Lint(markers []marker.Marker, r diag.Reporter) {
	if r == nil {
		return
	}
	var before, after int
	for _, m := range markers {
		switch m.Kind {
		case marker.CutBefore:
			if before++; before > 1 {
				diag.Warn(r, diag.MarkExtraCutBefore, m.Line, "")
			}
		case marker.CutAfter:
			if after++; after > 1 {
				diag.Warn(r, diag.MarkExtraCutAfter, m.Line, "")
			}
		case marker.QueryMark:
			if m.Line == 0 {
				diag.Warn(r, diag.MarkDanglingQuery, m.Line, string(m.Form))
			}
		}
	}

	secs := Sections(markers)
	paired := make(map[int]bool, 2*len(secs))
	for _, s := range secs {
		paired[s.Start] = true
		paired[s.End] = true
	}
	for _, m := range markers {
		if paired[m.Line] {
			continue
		}
		switch m.Kind {
		case marker.CutStart:
			diag.Warn(r, diag.MarkUnmatchedCutStart, m.Line, "later cut sections are ignored")
		case marker.CutEnd:
			diag.Warn(r, diag.MarkUnmatchedCutEnd, m.Line, "")
		}
	}

	lead, leadOK := first(markers, marker.CutBefore)
	trail, trailOK := first(markers, marker.CutAfter)
	if leadOK && trailOK && trail <= lead {
		diag.Warn(r, diag.MarkCutOverlap, trail, fmt.Sprintf("cut-after at %d precedes cut-before at %d", trail+1, lead+1))
	}
	for _, s := range secs {
		if (leadOK && s.Start <= lead) || (trailOK && s.End >= trail) {
			diag.Info(r, diag.MarkCutOverlap, s.Start, fmt.Sprintf("section %d-%d is inside another cut", s.Start+1, s.End+1))
		}
	}
}
