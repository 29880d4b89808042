package overlap

import (
	"fmt"
	"strings"

	"codenote/internal/annot"
)

// Policy is the set of fields compared when deciding whether two
// annotations describe the same fact.
type Policy uint8

const (
	FieldLine Policy = 1 << iota
	FieldStart
	FieldCharacter
	FieldLength
	FieldText
)

const (
	// DefaultQueryMatch pairs a hover with a query.
	DefaultQueryMatch = FieldLine | FieldText
	// DefaultDiagnosticMatch pairs a hover with a diagnostic.
	DefaultDiagnosticMatch = FieldLine | FieldStart | FieldLength | FieldCharacter
	// DefaultDedup collapses exact duplicates of the same kind.
	DefaultDedup = FieldLine | FieldStart | FieldCharacter | FieldLength | FieldText
)

var fieldNames = []struct {
	field Policy
	name  string
}{
	{FieldLine, "line"},
	{FieldStart, "start"},
	{FieldCharacter, "character"},
	{FieldLength, "length"},
	{FieldText, "text"},
}

// ParsePolicy builds a policy from field names; an empty list is the empty policy.
func ParsePolicy(names []string) (Policy, error) {
	var p Policy
outer:
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		for _, f := range fieldNames {
			if f.name == name {
				p |= f.field
				continue outer
			}
		}
		return 0, fmt.Errorf("unknown equality field %q", raw)
	}
	return p, nil
}

func (p Policy) Has(f Policy) bool { return p&f == f }

func (p Policy) String() string {
	if p == 0 {
		return "none"
	}
	var parts []string
	for _, f := range fieldNames {
		if p.Has(f.field) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// Equal compares a and b on the policy's fields. Text is not compared when
// either side is a completion. The empty policy matches nothing.
func (p Policy) Equal(a, b annot.Annotation) bool {
	if p == 0 {
		return false
	}
	if p.Has(FieldLine) && a.Line != b.Line {
		return false
	}
	if p.Has(FieldStart) && a.Start != b.Start {
		return false
	}
	if p.Has(FieldCharacter) && a.Character != b.Character {
		return false
	}
	if p.Has(FieldLength) && a.Length != b.Length {
		return false
	}
	if p.Has(FieldText) && a.Kind != annot.KindCompletion && b.Kind != annot.KindCompletion && a.Text != b.Text {
		return false
	}
	return true
}
