// Package diag defines severities and lint findings for code blocks.
//
// # Severity
//
// Severity is the four-level scale used for analyzer diagnostics (Message,
// Suggestion, Warning, Error). FromCategory maps analyzer categories onto it;
// unknown categories fall back to Error. Each level has a stable style class
// (Class) and a label (Label) used by the renderers.
//
// # Findings
//
// Besides analyzer diagnostics, the compositor and the `scan` command report
// their own observations about a block: unmatched cut markers, tags that had
// to be moved or dropped, facts that landed on cut lines. These never stop
// processing; they are collected through a Reporter (usually BagReporter) and
// printed by the CLI.
//
// Keep the data model deterministic: Bag.Sort orders by line, column,
// severity (desc) and code so output is stable across runs.
package diag
