package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"codenote/internal/batch"
)

// stageInfo describes how a working stage is shown and how much of a
// document it accounts for.
type stageInfo struct {
	label  string
	weight float64
}

var stages = map[batch.Stage]stageInfo{
	batch.StageRead:    {"reading", 0.1},
	batch.StageCompose: {"composing", 0.4},
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	detailStyle = lipgloss.NewStyle().Faint(true)
	plainStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	statusStyle = map[string]lipgloss.Style{
		"done":      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"error":     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"reading":   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"composing": lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
)

const statusWidth = 12

type docRow struct {
	path   string
	status batch.Status
	stage  batch.Stage
	detail string // первая строка ошибки или время обработки
}

func (r docRow) finished() bool {
	return r.status == batch.StatusDone || r.status == batch.StatusError
}

func (r docRow) label() string {
	if r.status == batch.StatusWorking {
		if info, ok := stages[r.stage]; ok {
			return info.label
		}
	}
	return string(r.status)
}

func (r docRow) progress() float64 {
	if r.finished() {
		return 1
	}
	if r.status == batch.StatusWorking {
		return progressFromStage(r.stage)
	}
	return 0
}

type progressModel struct {
	title   string
	events  <-chan batch.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []docRow
	byPath  map[string]int
	phase   string
	width   int
	done    bool
}

type (
	eventMsg batch.Event
	doneMsg  struct{}
)

// NewProgressModel returns a Bubble Tea model that lists the documents of a
// batch run with their current stage and an overall progress bar.
func NewProgressModel(title string, files []string, events <-chan batch.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle["reading"]
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    make([]docRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.rows[i] = docRow{path: f, status: batch.StatusQueued}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(batch.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// next waits for one batch event; a closed channel ends the program.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) applyEvent(ev batch.Event) tea.Cmd {
	if ev.File == "" {
		if info, ok := stages[ev.Stage]; ok && ev.Status == batch.StatusWorking {
			m.phase = info.label
		}
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	row.status, row.stage = ev.Status, ev.Stage
	switch {
	case ev.Status == batch.StatusError && ev.Err != nil:
		row.detail = firstLine(ev.Err.Error())
	case ev.Status == batch.StatusDone && ev.Elapsed > 0:
		row.detail = fmt.Sprintf("%.1f ms", float64(ev.Elapsed)/float64(time.Millisecond))
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.rows {
		sum += r.progress()
	}
	return sum / float64(len(m.rows))
}

func (m *progressModel) tally() (finished, failed int) {
	for _, r := range m.rows {
		if r.finished() {
			finished++
		}
		if r.status == batch.StatusError {
			failed++
		}
	}
	return finished, failed
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := m.title
	if m.phase != "" {
		header += " (" + m.phase + ")"
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header) + "\n\n")

	nameWidth := max(m.width-statusWidth-4, 20)
	for _, r := range m.rows {
		label := r.label()
		style, ok := statusStyle[label]
		if !ok {
			style = plainStyle
		}
		name := truncate(r.path, nameWidth)
		fmt.Fprintf(&b, "  %s %s", style.Render(fmt.Sprintf("%*s", statusWidth, label)), name)
		if rest := nameWidth - runewidth.StringWidth(name) - 3; r.detail != "" && rest > 0 {
			b.WriteString(detailStyle.Render("  " + truncate(r.detail, rest)))
		}
		b.WriteByte('\n')
	}

	finished, failed := m.tally()
	fmt.Fprintf(&b, "\n%d/%d finished", finished, len(m.rows))
	if failed > 0 {
		fmt.Fprintf(&b, ", %d failed", failed)
	}
	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

func progressFromStage(stage batch.Stage) float64 {
	return stages[stage].weight
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// truncate shortens value to width terminal cells, marking the cut with "...".
func truncate(value string, width int) string {
	switch {
	case width <= 0, runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
