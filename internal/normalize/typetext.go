package normalize

import (
	"regexp"
	"strings"
)

var (
	roleMarker   = regexp.MustCompile(`^\([a-z][a-z ]*\)\s+`)
	bareImport   = regexp.MustCompile(`^import\s+[\w$.]+;?$`)
	bareHeader   = regexp.MustCompile(`^(?:interface|namespace|module)\s+[\w$.]+;?$`)
	typeAlias    = regexp.MustCompile(`^[A-Za-z_$][\w$]*(?:<[^>]*>)?\s*=`)
	callSigShape = regexp.MustCompile(`^[A-Za-z_$][\w$]*(?:<[^>]*>)?\(`)
)

// CleanTypeText strips analyzer boilerplate from quick-info text: leading
// role markers such as "(alias) " or "(method) ", a trailing bare import line
// and bare interface/namespace header lines. The result may be empty.
func CleanTypeText(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if len(lines) > 0 {
		first := lines[0]
		for {
			loc := roleMarker.FindStringIndex(first)
			if loc == nil {
				break
			}
			first = first[loc[1]:]
		}
		lines[0] = first
	}
	if n := len(lines); n > 0 && bareImport.MatchString(strings.TrimSpace(lines[n-1])) {
		lines = lines[:n-1]
	}
	kept := lines[:0]
	for _, ln := range lines {
		if bareHeader.MatchString(strings.TrimSpace(ln)) {
			continue
		}
		kept = append(kept, ln)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// PrefixKeyword adds "type " to type-alias shaped text ("Name<T> = ...") and
// "function " to call-signature shaped text ("name<T>(...)").
func PrefixKeyword(s string) string {
	switch {
	case s == "":
		return s
	case typeAlias.MatchString(s):
		return "type " + s
	case callSigShape.MatchString(s):
		return "function " + s
	}
	return s
}

// TypeText is CleanTypeText followed by PrefixKeyword.
func TypeText(s string) string {
	return PrefixKeyword(CleanTypeText(s))
}
