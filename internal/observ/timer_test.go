package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerFoldsRepeatedStages(t *testing.T) {
	tm := NewTimer()
	tm.Observe("scan", 2*time.Millisecond, "")
	tm.Observe("cut", time.Millisecond, "")
	tm.Observe("scan", 3*time.Millisecond, "2 blocks")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %+v", r.Phases)
	}
	if p := r.Phases[0]; p.Name != "scan" || p.Count != 2 || p.DurationMS != 5 || p.Note != "2 blocks" {
		t.Fatalf("scan phase = %+v", p)
	}
	if r.TotalMS != 6 {
		t.Errorf("total = %v", r.TotalMS)
	}
	if s := tm.Summary(); !strings.Contains(s, "scan") || !strings.Contains(s, "total") {
		t.Errorf("summary = %q", s)
	}
}

func TestTimerConcurrentMarks(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m := tm.Begin("analyze")
			tm.End(m, "")
		}()
	}
	wg.Wait()
	if r := tm.Report(); len(r.Phases) != 1 || r.Phases[0].Count != 8 {
		t.Fatalf("report = %+v", r)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if len(tm.Report().Phases) != 0 {
		t.Fatal("nil timer should report nothing")
	}
}
