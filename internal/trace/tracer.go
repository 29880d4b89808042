package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Tracer receives events. Implementations are safe for concurrent use since
// documents are rendered in parallel.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // kept in memory, dumped on failure
	ModeBoth
)

var modeNames = map[StorageMode]string{
	ModeStream: "stream",
	ModeRing:   "ring",
	ModeBoth:   "both",
}

func (m StorageMode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

func (m StorageMode) streams() bool { return m == ModeStream || m == ModeBoth }
func (m StorageMode) rings() bool   { return m == ModeRing || m == ModeBoth }

// ParseMode accepts stream, ring or both.
func ParseMode(s string) (StorageMode, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == want {
			return m, nil
		}
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config describes the tracer built by New.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format        // FormatAuto picks by OutputPath extension
	Output     io.Writer     // overrides OutputPath
	OutputPath string        // "" or "-" is stderr
	RingSize   int           // 0 means DefaultRingSize
	Heartbeat  time.Duration // informational; the caller runs StartHeartbeat
}

func (c Config) format() Format {
	if c.Format != FormatAuto {
		return c.Format
	}
	switch filepath.Ext(c.OutputPath) {
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	}
	return FormatText
}

// New assembles the tracer described by cfg. LevelOff always yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if _, ok := modeNames[cfg.Mode]; !ok {
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}

	var sinks []Tracer
	if cfg.Mode.streams() {
		w, err := cfg.writer()
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, NewStreamTracer(w, cfg.Level, cfg.format()))
	}
	if cfg.Mode.rings() {
		sinks = append(sinks, NewRingTracer(cfg.RingSize, cfg.Level))
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return NewMultiTracer(cfg.Level, sinks...), nil
}

func (c Config) writer() (io.Writer, error) {
	switch {
	case c.Output != nil:
		return c.Output, nil
	case c.OutputPath == "", c.OutputPath == "-":
		return os.Stderr, nil
	}
	f, err := os.Create(c.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	return f, nil
}

// RingOf digs the ring buffer out of t.
func RingOf(t Tracer) (*RingTracer, bool) {
	switch t := t.(type) {
	case *RingTracer:
		return t, true
	case interface{ Ring() (*RingTracer, bool) }:
		return t.Ring()
	}
	return nil, false
}
