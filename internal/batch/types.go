package batch

import "time"

// Stage describes a step of document processing.
type Stage string

const (
	// StageRead loads the markdown file.
	StageRead Stage = "read"
	// StageCompose runs the compositor over every block.
	StageCompose Stage = "compose"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the document is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the document is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the document is done.
	StatusDone Status = "done"
	// StatusError indicates the document failed.
	StatusError Status = "error"
)

// Event reports progress for a document (or for the whole batch when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] = dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Total sums every recorded stage.
func (t Timings) Total() time.Duration {
	var total time.Duration
	for _, d := range t.stages {
		total += d
	}
	return total
}
