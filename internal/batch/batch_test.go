package batch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"codenote/internal/analyzer"
	"codenote/internal/compositor"
	"codenote/internal/render"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func echoCompositor() *compositor.Compositor {
	an := analyzer.Func(func(_ context.Context, req analyzer.Request) (*analyzer.Result, error) {
		return &analyzer.Result{Code: req.Code}, nil
	})
	return compositor.New(an, render.Plain{}, compositor.DefaultOptions())
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.md"), "")
	writeFile(t, filepath.Join(dir, "a", "intro.MDX"), "")
	writeFile(t, filepath.Join(dir, "a", "notes.txt"), "")
	writeFile(t, filepath.Join(dir, ".git", "x.md"), "")
	writeFile(t, filepath.Join(dir, "node_modules", "pkg", "README.md"), "")
	extra := filepath.Join(dir, "a", "notes.txt")

	got, err := Collect([]string{dir, extra, filepath.Join(dir, "b.md")}, nil)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a", "intro.MDX"),
		filepath.Join(dir, "a", "notes.txt"),
		filepath.Join(dir, "b.md"),
	}
	if !slices.Equal(got, want) {
		t.Fatalf("Collect = %q, want %q", got, want)
	}
}

func TestCollectMissingPath(t *testing.T) {
	_, err := Collect([]string{filepath.Join(t.TempDir(), "nope")}, nil)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestDisplayName(t *testing.T) {
	dir := t.TempDir()
	if got := DisplayName(filepath.Join(dir, "docs", "a.md"), dir); got != "docs/a.md" {
		t.Fatalf("DisplayName = %q", got)
	}
	if got := DisplayName("x/a.md", ""); got != "x/a.md" {
		t.Fatalf("DisplayName without base = %q", got)
	}
}

func TestRunKeepsOrderAndIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.md")
	writeFile(t, good, "# Title\n\n```ts\nconst x = 1\n```\n")
	broken := filepath.Join(dir, "broken.md")
	writeFile(t, broken, "```ts\n// @include: missing\n```\n")
	missing := filepath.Join(dir, "missing.md")

	var mu sync.Mutex
	var events []Event
	sink := FuncSink(func(e Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})

	files := []string{good, broken, missing}
	results, err := Run(context.Background(), echoCompositor(), files, Options{Jobs: 2, BaseDir: dir, Progress: sink})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	if results[0].Name != "good.md" || results[0].Err != nil || results[0].Doc == nil {
		t.Fatalf("good = %+v", results[0])
	}
	if results[0].Doc.Composed() != 1 {
		t.Errorf("composed blocks = %d", results[0].Doc.Composed())
	}
	if !results[0].Timings.Has(StageCompose) {
		t.Errorf("compose timing missing")
	}
	if results[1].Err == nil {
		t.Errorf("broken include should fail")
	}
	if !errors.Is(results[2].Err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v", results[2].Err)
	}
	if Failed(results) != 2 {
		t.Errorf("Failed = %d", Failed(results))
	}

	var queued, done, failed int
	for _, e := range events {
		switch {
		case e.Status == StatusQueued:
			queued++
		case e.File != "" && e.Status == StatusDone:
			done++
		case e.File != "" && e.Status == StatusError:
			failed++
		}
	}
	if queued != 3 || done != 1 || failed != 2 {
		t.Errorf("queued=%d done=%d failed=%d", queued, done, failed)
	}
	if last := events[len(events)-1]; last.File != "" || last.Status != StatusDone {
		t.Errorf("last event = %+v", last)
	}
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	writeFile(t, path, "text\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, echoCompositor(), []string{path}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "a.md", Status: StatusDone})
	if e := <-ch; e.File != "a.md" {
		t.Fatalf("event = %+v", e)
	}
	ChannelSink{}.OnEvent(Event{})
}
