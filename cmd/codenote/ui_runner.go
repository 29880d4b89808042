package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"codenote/internal/batch"
	"codenote/internal/compositor"
	"codenote/internal/ui"
)

type batchOutcome struct {
	results []batch.Result
	err     error
}

func runBatchWithUI(ctx context.Context, title string, c *compositor.Compositor, files []string, opts batch.Options) ([]batch.Result, error) {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = batch.DisplayName(f, opts.BaseDir)
	}
	events := make(chan batch.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = batch.ChannelSink{Ch: events}
		res, err := batch.Run(ctx, c, files, optsCopy)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// не даём Run заблокироваться на полном канале
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
