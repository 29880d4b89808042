package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
	openSpans   atomic.Int64
)

// NextSeq returns the next global event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span id.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// OpenSpans returns the number of begun but not yet ended live spans.
func OpenSpans() int64 { return openSpans.Load() }

// goroutineID parses the id out of "goroutine 17 [running]:".
func goroutineID() uint64 {
	var buf [64]byte
	fields := bytes.Fields(buf[:runtime.Stack(buf[:], false)])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// wants reports whether t keeps events of scope. Rings at LevelError still
// keep everything down to stages.
func wants(t Tracer, scope Scope) bool {
	if t == nil || !t.Enabled() {
		return false
	}
	if t.Level() == LevelError {
		return scope <= ScopeStage
	}
	return t.Level().ShouldEmit(scope)
}

// Span is an open interval. The begin event is kept as the template for the
// end event.
type Span struct {
	tracer  Tracer // nil when the span is not recorded
	begin   Event
	started time.Time
	ended   atomic.Bool
	extra   map[string]string
}

// Begin opens a span under parent (0 for a root span). A span the tracer does
// not want still measures time and reports parent as its id, so children
// attach to the nearest recorded ancestor.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	now := time.Now()
	if !wants(t, scope) {
		return &Span{begin: Event{SpanID: parent}, started: now}
	}
	s := &Span{
		tracer:  t,
		started: now,
		begin: Event{
			Time:     now,
			Seq:      NextSeq(),
			Kind:     KindSpanBegin,
			Scope:    scope,
			SpanID:   NextSpanID(),
			ParentID: parent,
			GID:      goroutineID(),
			Name:     name,
		},
	}
	openSpans.Add(1)
	ev := s.begin
	t.Emit(&ev)
	return s
}

// End closes the span and returns its duration. Only the first End emits.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	d := time.Since(s.started)
	if s.tracer == nil || !s.ended.CompareAndSwap(false, true) {
		return d
	}
	openSpans.Add(-1)
	ev := s.begin
	ev.Time = time.Now()
	ev.Seq = NextSeq()
	ev.Kind = KindSpanEnd
	ev.Detail = detail
	ev.Extra = s.extra
	s.tracer.Emit(&ev)
	return d
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID is the span id, or the inherited parent id for unrecorded spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}

// Point records an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64, extra map[string]string) {
	if !wants(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		SpanID:   NextSpanID(),
		ParentID: parent,
		GID:      goroutineID(),
		Name:     name,
		Detail:   detail,
		Extra:    extra,
	})
}
