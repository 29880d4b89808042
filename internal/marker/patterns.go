package marker

import "regexp"

// Pattern maps a whole-line regular expression to a marker kind.
// Lines are trimmed before matching; the first matching pattern wins.
type Pattern struct {
	Kind Kind
	Form Form
	Re   *regexp.Regexp
	// NameGroup / ValueGroup are submatch indexes, 0 when absent.
	NameGroup  int
	ValueGroup int
	// Name, when set, vets the captured name and may rewrite it; a false
	// result makes the row not match.
	Name func(string) (string, bool)
}

// Patterns is the default classification table.
var Patterns = []Pattern{
	{Kind: CutBefore, Form: FormCut, Re: regexp.MustCompile(`^//\s*---cut---$`)},
	{Kind: CutBefore, Form: FormCutBefore, Re: regexp.MustCompile(`^//\s*---cut-before---$`)},
	{Kind: CutAfter, Form: FormCutAfter, Re: regexp.MustCompile(`^//\s*---cut-after---$`)},
	{Kind: CutStart, Form: FormCutStart, Re: regexp.MustCompile(`^//\s*---cut-start---$`)},
	{Kind: CutEnd, Form: FormCutEnd, Re: regexp.MustCompile(`^//\s*---cut-end---$`)},
	{Kind: QueryMark, Form: FormQuery, Re: regexp.MustCompile(`^//\s*\^\?$`)},
	{Kind: QueryMark, Form: FormCompletion, Re: regexp.MustCompile(`^//\s*\^\|$`)},
	{Kind: QueryMark, Form: FormHighlight, Re: regexp.MustCompile(`^//\s*\^+(?:\s+(.*))?$`), ValueGroup: 1},
	{Kind: Flag, Form: FormFlag, Re: regexp.MustCompile(`^//\s*@([\w-]+)(?::\s*(.*))?$`), NameGroup: 1, ValueGroup: 2, Name: CanonicalFlag},
}
