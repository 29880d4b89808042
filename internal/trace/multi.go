package trace

import "errors"

// MultiTracer copies each event to several tracers, e.g. a stream for the
// live log and a ring kept for failure dumps.
type MultiTracer struct {
	level Level
	sinks []Tracer
}

// NewMultiTracer combines sinks under one level. Nil sinks are skipped.
func NewMultiTracer(level Level, sinks ...Tracer) *MultiTracer {
	m := &MultiTracer{level: level}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Emit hands every sink its own copy, sinks may stamp Seq.
func (m *MultiTracer) Emit(ev *Event) {
	for _, s := range m.sinks {
		cp := *ev
		s.Emit(&cp)
	}
}

func (m *MultiTracer) each(fn func(Tracer) error) error {
	var errs []error
	for _, s := range m.sinks {
		if err := fn(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Flush flushes every sink and reports all failures.
func (m *MultiTracer) Flush() error { return m.each(Tracer.Flush) }

// Close closes every sink and reports all failures.
func (m *MultiTracer) Close() error { return m.each(Tracer.Close) }

// Ring returns the ring sink, if one was combined.
func (m *MultiTracer) Ring() (*RingTracer, bool) {
	for _, s := range m.sinks {
		if r, ok := RingOf(s); ok {
			return r, true
		}
	}
	return nil, false
}

func (m *MultiTracer) Level() Level  { return m.level }
func (m *MultiTracer) Enabled() bool { return m.level > LevelOff }
