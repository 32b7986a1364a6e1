package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"docnorm/internal/driver"
	"docnorm/internal/pipeline"
	"docnorm/internal/ui"
)

type formatOutcome struct {
	results []driver.FormatResult
	err     error
}

// runFormatWithUI runs FormatPaths in the background and renders its
// progress events until the run finishes.
func runFormatWithUI(ctx context.Context, title string, paths []string, opts driver.FormatOptions) ([]driver.FormatResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := driver.FormatPaths(ctx, paths, optsCopy)
		close(events)
		outcomeCh <- formatOutcome{results: res, err: err}
	}()

	model := ui.NewProgressModel(title, nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// модель могла выйти раньше (ctrl+c): дочитываем события, чтобы воркеры не встали
	for range events {
	}
	outcome := <-outcomeCh
	if outcome.err != nil {
		return outcome.results, outcome.err
	}
	if uiErr != nil && ctx.Err() == nil {
		return outcome.results, uiErr
	}
	return outcome.results, nil
}
