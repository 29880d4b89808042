package trace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Format is the encoding of streamed and dumped events.
type Format uint8

const (
	FormatAuto   Format = iota // chosen from the output path
	FormatText                 // one indented line per event
	FormatNDJSON               // one JSON object per line
)

// ParseFormat accepts auto, text, ndjson and its alias json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// FormatEvent encodes ev as one newline-terminated record.
func FormatEvent(ev *Event, format Format) []byte {
	var buf bytes.Buffer
	if format == FormatNDJSON {
		writeJSON(&buf, ev)
	} else {
		writeText(&buf, ev)
	}
	return buf.Bytes()
}

const jsonTime = "2006-01-02T15:04:05.000000Z07:00"

func writeJSON(buf *bytes.Buffer, ev *Event) {
	rec := struct {
		Time  string `json:"time"`
		Kind  string `json:"kind"`
		Scope string `json:"scope"`
		*Event
	}{ev.Time.Format(jsonTime), ev.Kind.String(), ev.Scope.String(), ev}

	// Event holds only strings and integers, Encode cannot fail here.
	_ = json.NewEncoder(buf).Encode(rec)
}

// writeText renders "[15:04:05.000]   → stage:cut (4 lines) {k=v}".
func writeText(buf *bytes.Buffer, ev *Event) {
	fmt.Fprintf(buf, "[%s] %s%s %s:%s",
		ev.Time.Format("15:04:05.000"),
		strings.Repeat("  ", ev.Scope.depth()),
		ev.Kind.glyph(), ev.Scope, ev.Name)
	if ev.Detail != "" {
		fmt.Fprintf(buf, " (%s)", ev.Detail)
	}
	if len(ev.Extra) > 0 {
		pairs := make([]string, 0, len(ev.Extra))
		for _, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			pairs = append(pairs, k+"="+ev.Extra[k])
		}
		fmt.Fprintf(buf, " {%s}", strings.Join(pairs, ", "))
	}
	buf.WriteByte('\n')
}
