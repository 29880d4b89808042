package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase accumulates the time spent in one named stage.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Count int
	Note  string
}

// Timer tracks time per pipeline stage. Repeated stages (one per code block)
// are folded into a single phase by name. Safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	byName map[string]int
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 8), byName: make(map[string]int)}
}

func (t *Timer) phase(name string) int {
	if idx, ok := t.byName[name]; ok {
		return idx
	}
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	idx := len(t.phases) - 1
	t.byName[name] = idx
	return idx
}

// Begin starts measuring a run of name; pass the result to End.
func (t *Timer) Begin(name string) Mark {
	if t == nil {
		return Mark{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phase(name)
	return Mark{name: name, start: time.Now(), ok: true}
}

// Mark is an open measurement.
type Mark struct {
	name  string
	start time.Time
	ok    bool
}

// End adds the time since m began to its phase; a non-empty note replaces
// the previous one.
func (t *Timer) End(m Mark, note string) {
	if t == nil || !m.ok {
		return
	}
	t.Observe(m.name, time.Since(m.start), note)
}

// Observe adds d to the phase name.
func (t *Timer) Observe(name string, d time.Duration, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	p := &t.phases[t.phase(name)]
	p.Dur += d
	p.Count++
	if note != "" {
		p.Note = note
	}
}

// Summary returns a human-readable string summarizing all tracked phases.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-20s %9.2f ms  x%-4d", p.Name, p.DurationMS, p.Count)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-20s %9.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report формирует срез фаз (в порядке первого появления) и общую длительность.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Count:      phase.Count,
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
