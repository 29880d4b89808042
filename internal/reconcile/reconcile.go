// Package reconcile overwrites the surviving source lines with the analyzer's
// rewritten text.
package reconcile

import (
	"fmt"

	"codenote/internal/source"
)

// Stats describes what Apply did to the host.
type Stats struct {
	Replaced int // lines whose text was rewritten
	Deleted  int // surplus trailing lines removed
	Dropped  int // rewritten lines with no host line to land on
}

// Apply replaces the text of every line the host and the rewritten text have
// in common, then trims the host down to the rewritten line count. Surplus
// rewritten lines are dropped.
func Apply(host source.Host, rewritten string) (Stats, error) {
	next := source.SplitLines(rewritten)
	var st Stats

	common := min(host.LineCount(), len(next))
	for i := range common {
		ln, ok := host.Line(i)
		if !ok {
			return st, fmt.Errorf("reconcile line %d: %w", i, source.ErrLineOutOfRange)
		}
		if err := host.EditText(i, 0, source.UTF16Len(ln.Text), next[i]); err != nil {
			return st, fmt.Errorf("reconcile line %d: %w", i, err)
		}
		st.Replaced++
	}

	// каждое удаление сдвигает хвост к индексу n
	n := len(next)
	for host.LineCount() > n {
		if host.DeleteLines([]int{n}) == 0 {
			return st, fmt.Errorf("reconcile trim at %d: %w", n, source.ErrLineOutOfRange)
		}
		st.Deleted++
	}
	if n > common {
		st.Dropped = n - common
	}
	return st, nil
}
