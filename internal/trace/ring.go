package trace

import (
	"fmt"
	"io"
	"sync"
)

// DefaultRingSize is used when a ring is created without a capacity.
const DefaultRingSize = 4096

// RingTracer remembers the most recent events of a run so that they can be
// printed once a document fails. At LevelError it still keeps blocks and
// stages even though nothing is streamed.
type RingTracer struct {
	mu      sync.Mutex
	slots   []Event
	written uint64 // events ever stored; slot = written % len(slots)
	level   Level
}

// NewRingTracer allocates a ring of capacity slots.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{slots: make([]Event, capacity), level: level}
}

// Emit stores ev, overwriting the oldest slot once the ring is full.
func (r *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !wants(r, ev.Scope) {
		return
	}
	stored := *ev
	if stored.Seq == 0 {
		stored.Seq = NextSeq()
	}

	r.mu.Lock()
	r.slots[r.written%uint64(len(r.slots))] = stored
	r.written++
	r.mu.Unlock()
}

// Snapshot copies the retained events, oldest first.
func (r *RingTracer) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := uint64(len(r.slots))
	from := uint64(0)
	if r.written > size {
		from = r.written - size
	}
	out := make([]Event, 0, r.written-from)
	for i := from; i < r.written; i++ {
		out = append(out, r.slots[i%size])
	}
	return out
}

// Dropped reports how many events were overwritten.
func (r *RingTracer) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if size := uint64(len(r.slots)); r.written > size {
		return r.written - size
	}
	return 0
}

// Dump prints the retained events to w. Text dumps start with a note when
// older events were lost.
func (r *RingTracer) Dump(w io.Writer, format Format) error {
	if n := r.Dropped(); n > 0 && format != FormatNDJSON {
		if _, err := fmt.Fprintf(w, "... %d earlier events dropped\n", n); err != nil {
			return err
		}
	}
	events := r.Snapshot()
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (r *RingTracer) Flush() error  { return nil }
func (r *RingTracer) Close() error  { return nil }
func (r *RingTracer) Level() Level  { return r.level }
func (r *RingTracer) Enabled() bool { return r.level > LevelOff }
