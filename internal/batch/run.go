package batch

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"codenote/internal/compositor"
)

// Options configures Run.
type Options struct {
	// Jobs limits concurrently processed documents, 0 - GOMAXPROCS.
	Jobs int
	// BaseDir makes document names relative to it.
	BaseDir  string
	Progress ProgressSink
}

// Result is the outcome of one document.
type Result struct {
	Path    string
	Name    string
	Doc     *compositor.DocumentResult
	Err     error
	Timings Timings
}

// Run composes files in parallel. Blocks of one document stay sequential
// because includes flow from earlier blocks to later ones.
//
// A failing document does not stop the others: its error lands in
// Result.Err. The returned error is only set when ctx is cancelled.
// Results keep the order of files.
func Run(ctx context.Context, c *compositor.Compositor, files []string, opts Options) ([]Result, error) {
	results := make([]Result, len(files))
	if len(files) == 0 {
		return results, nil
	}
	for i, path := range files {
		results[i] = Result{Path: path, Name: DisplayName(path, opts.BaseDir)}
		emit(opts.Progress, Event{File: results[i].Name, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	started := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален для горутины, мьютекс не нужен
			processOne(gctx, c, &results[i], opts.Progress)
			return nil
		})
	}
	err := g.Wait()

	status := StatusDone
	if err != nil {
		status = StatusError
	}
	emit(opts.Progress, Event{Status: status, Err: err, Elapsed: time.Since(started)})
	return results, err
}

func processOne(ctx context.Context, c *compositor.Compositor, res *Result, sink ProgressSink) {
	fail := func(stage Stage, err error, elapsed time.Duration) {
		res.Err = err
		emit(sink, Event{File: res.Name, Stage: stage, Status: StatusError, Err: err, Elapsed: elapsed})
	}

	emit(sink, Event{File: res.Name, Stage: StageRead, Status: StatusWorking})
	begin := time.Now()
	data, err := os.ReadFile(res.Path)
	res.Timings.Set(StageRead, time.Since(begin))
	if err != nil {
		fail(StageRead, fmt.Errorf("read %s: %w", res.Path, err), res.Timings.Duration(StageRead))
		return
	}

	emit(sink, Event{File: res.Name, Stage: StageCompose, Status: StatusWorking})
	begin = time.Now()
	doc, err := c.ProcessMarkdown(ctx, res.Name, string(data))
	res.Timings.Set(StageCompose, time.Since(begin))
	if err != nil {
		fail(StageCompose, err, res.Timings.Total())
		return
	}
	res.Doc = doc
	emit(sink, Event{File: res.Name, Stage: StageCompose, Status: StatusDone, Elapsed: res.Timings.Total()})
}

// Failed counts results with an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
