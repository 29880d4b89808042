package present

// PrettyOpts configures terminal output.
type PrettyOpts struct {
	Color bool
	// Width обрезает подписи аннотаций, 0 - не ограничено
	Width int
	// ShowFindings prints marker and fact findings under each block.
	ShowFindings bool
	// ShowSkipped also lists blocks that were not composed.
	ShowSkipped bool
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	Indent bool
	// IncludeNodes keeps the rendered node trees; otherwise only labels are written.
	IncludeNodes bool
}
