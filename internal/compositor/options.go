package compositor

import (
	"slices"
	"strings"

	"codenote/internal/includes"
	"codenote/internal/normalize"
	"codenote/internal/overlap"
)

// TriggerWord is the meta word that opts a block in when the explicit
// trigger is required.
const TriggerWord = "twoslash"

// DefaultLanguages are the block languages composed by default.
var DefaultLanguages = []string{"ts", "tsx", "typescript", "js", "jsx", "javascript"}

// Options configure a Compositor.
type Options struct {
	// Languages enabled for composition; empty enables every language.
	Languages []string
	// ExplicitTrigger requires TriggerWord in the block meta.
	ExplicitTrigger bool
	// Trigger overrides the explicit trigger predicate.
	Trigger func(meta string) bool
	// CompilerOptions are sent with every request; flag markers override them.
	CompilerOptions map[string]string

	Normalize       normalize.Options
	QueryMatch      overlap.Policy
	DiagnosticMatch overlap.Policy
	Dedup           overlap.Policy

	// IncludesSize bounds the per-document includes cache.
	IncludesSize int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Languages:       slices.Clone(DefaultLanguages),
		Normalize:       normalize.DefaultOptions(),
		QueryMatch:      overlap.DefaultQueryMatch,
		DiagnosticMatch: overlap.DefaultDiagnosticMatch,
		Dedup:           overlap.DefaultDedup,
		IncludesSize:    includes.DefaultSize,
	}
}

// HasTrigger reports whether meta contains TriggerWord as a whole word.
func HasTrigger(meta string) bool {
	return slices.Contains(strings.Fields(meta), TriggerWord)
}

// IncludeName returns the name of an "include <name>" block.
func IncludeName(meta string) (string, bool) {
	fields := strings.Fields(meta)
	if len(fields) >= 2 && fields[0] == "include" {
		return fields[1], true
	}
	return "", false
}
