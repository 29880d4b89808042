package trace

import (
	"io"
	"os"
	"sync"
)

// StreamTracer writes each event as soon as it arrives.
type StreamTracer struct {
	level  Level
	format Format

	mu sync.Mutex
	w  io.Writer
}

// NewStreamTracer writes to w. FormatAuto falls back to text.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{w: w, level: level, format: format}
}

// Emit encodes ev outside the lock and writes it in one call.
func (s *StreamTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !s.level.ShouldEmit(ev.Scope) {
		return
	}
	if ev.Seq == 0 {
		ev.Seq = NextSeq()
	}
	rec := FormatEvent(ev, s.format)

	s.mu.Lock()
	// сбой записи трейса не влияет на рендеринг
	_, _ = s.w.Write(rec)
	s.mu.Unlock()
}

func isStdStream(w io.Writer) bool {
	return w == os.Stdout || w == os.Stderr
}

// Flush pushes buffered output to its destination.
func (s *StreamTracer) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if isStdStream(s.w) {
		return nil
	}
	switch w := s.w.(type) {
	case interface{ Flush() error }:
		return w.Flush()
	case interface{ Sync() error }:
		return w.Sync()
	}
	return nil
}

// Close flushes and closes a trace file. Stdout and stderr stay open.
func (s *StreamTracer) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	if c, ok := s.w.(io.Closer); ok && !isStdStream(s.w) {
		return c.Close()
	}
	return nil
}

func (s *StreamTracer) Level() Level  { return s.level }
func (s *StreamTracer) Enabled() bool { return s.level > LevelOff }
