package marker

import "strings"

// Scan classifies every line against Patterns and returns the markers in
// line order. Unmatched lines yield nothing.
func Scan(lines []string) []Marker {
	return ScanWith(lines, Patterns)
}

// ScanWith is Scan with a caller supplied pattern table.
func ScanWith(lines []string, table []Pattern) []Marker {
	var out []Marker
	for i, line := range lines {
		if m, ok := classify(strings.TrimSpace(line), table); ok {
			m.Line = i
			out = append(out, m)
		}
	}
	return out
}

func classify(line string, table []Pattern) (Marker, bool) {
	// быстрый путь: все маркеры начинаются с "//"
	if !strings.HasPrefix(line, "//") {
		return Marker{}, false
	}
	for _, p := range table {
		sub := p.Re.FindStringSubmatch(line)
		if sub == nil {
			continue
		}
		m := Marker{Kind: p.Kind, Form: p.Form}
		if p.NameGroup > 0 && p.NameGroup < len(sub) {
			m.Name = sub[p.NameGroup]
		}
		if p.Name != nil {
			name, ok := p.Name(m.Name)
			if !ok {
				continue
			}
			m.Name = name
		}
		if p.ValueGroup > 0 && p.ValueGroup < len(sub) {
			m.Value = strings.TrimSpace(sub[p.ValueGroup])
		}
		return m, true
	}
	return Marker{}, false
}

// Lines returns the line indexes of markers with the given kinds.
func Lines(markers []Marker, kinds ...Kind) []int {
	var out []int
	for _, m := range markers {
		for _, k := range kinds {
			if m.Kind == k {
				out = append(out, m.Line)
				break
			}
		}
	}
	return out
}
