package main

import (
	"fmt"
	"io"
	"time"

	"codenote/internal/batch"
)

func printDocumentTimings(out io.Writer, results []batch.Result) {
	if out == nil {
		return
	}
	var read, compose time.Duration
	for _, r := range results {
		if r.Timings.Has(batch.StageRead) {
			read += r.Timings.Duration(batch.StageRead)
		}
		if !r.Timings.Has(batch.StageCompose) {
			continue
		}
		d := r.Timings.Duration(batch.StageCompose)
		compose += d
		blocks := 0
		if r.Doc != nil {
			blocks = r.Doc.Composed()
		}
		if _, err := fmt.Fprintf(out, "%s: composed %d blocks in %.1f ms\n", r.Name, blocks, toMillis(d)); err != nil {
			panic(err)
		}
	}
	if _, err := fmt.Fprintf(out, "read %.1f ms, compose %.1f ms\n", toMillis(read), toMillis(compose)); err != nil {
		panic(err)
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
