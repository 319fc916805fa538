package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cardgen/internal/driver"
	"cardgen/internal/ui"
)

type pipelineOutcome struct {
	result  *driver.Result
	written *driver.Written
	err     error
}

// runPipelineWithUI runs the pipeline in the background and renders its
// events until the event channel is closed. ctrl+c cancels ctx.
func runPipelineWithUI(ctx context.Context, title string, p pipeline) (*driver.Result, *driver.Written, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan pipelineOutcome, 1)

	go func() {
		res, written, err := p.run(ctx, driver.ChannelSink{Ch: events})
		outcomeCh <- pipelineOutcome{result: res, written: written, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, nil, events, cancel)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// вид упал: дочитываем события, чтобы драйвер не заблокировался
		cancel()
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, outcome.written, uiErr
	}
	return outcome.result, outcome.written, outcome.err
}
