package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"edgelint/internal/driver"
	"edgelint/internal/linter"
	"edgelint/internal/ui"
)

type runOutcome struct {
	results []driver.FileResult
	err     error
}

// runWithUI executes the lint run behind a Bubble Tea progress display.
func runWithUI(cmd *cobra.Command, l *linter.Linter, files []string, opts driver.Options) ([]driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	opts.Events = events
	go func() {
		results, err := driver.Run(cmd.Context(), l, files, opts)
		outcomeCh <- runOutcome{results: results, err: err}
		close(events)
	}()

	title := "linting"
	if opts.Fix {
		title = "fixing"
	}
	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
