package trace

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits a beat every interval until stopped. Each beat reports how
// many spans are still open, so a trace whose beats keep showing the same
// open document usually points at a stuck analyzer.
type Heartbeat struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// StartHeartbeat launches the beat goroutine. It returns nil when tracing is
// off or interval is not positive; Stop on nil is fine.
func StartHeartbeat(ctx context.Context, t Tracer, interval time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || interval <= 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	h := &Heartbeat{cancel: cancel, done: make(chan struct{})}
	go h.loop(ctx, t, interval)
	return h
}

func (h *Heartbeat) loop(ctx context.Context, t Tracer, interval time.Duration) {
	defer close(h.done)
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for n := 1; ; n++ {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			t.Emit(&Event{
				Time:   now,
				Seq:    NextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDocument,
				Name:   "heartbeat",
				Detail: "#" + strconv.Itoa(n),
				Extra:  map[string]string{"open": strconv.FormatInt(OpenSpans(), 10)},
			})
		}
	}
}

// Stop cancels the goroutine and waits for it to exit.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(h.cancel)
	<-h.done
}
