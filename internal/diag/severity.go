package diag

import (
	"strconv"
	"strings"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevMessage is for informational diagnostics.
	SevMessage Severity = iota
	SevSuggestion
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevMessage:
		return "message"
	case SevSuggestion:
		return "suggestion"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// Label is the human facing name shown next to the message.
func (s Severity) Label() string {
	switch s {
	case SevMessage:
		return "Message"
	case SevSuggestion:
		return "Suggestion"
	case SevWarning:
		return "Warning"
	}
	return "Error"
}

// Class is the style class attached to rendered diagnostic nodes.
func (s Severity) Class() string {
	return "annot-" + s.String()
}

// FromCategory maps an analyzer category onto a severity.
// Both names ("warning") and numeric category codes are accepted
// (0 warning, 1 error, 2 suggestion, 3 message). Anything else is an error.
func FromCategory(category string) Severity {
	c := strings.ToLower(strings.TrimSpace(category))
	if n, err := strconv.Atoi(c); err == nil {
		switch n {
		case 0:
			return SevWarning
		case 2:
			return SevSuggestion
		case 3:
			return SevMessage
		}
		return SevError
	}
	switch c {
	case "warning", "warn":
		return SevWarning
	case "suggestion", "hint":
		return SevSuggestion
	case "message", "info":
		return SevMessage
	}
	return SevError
}
