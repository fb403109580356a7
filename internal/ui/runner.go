package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"typedlint/internal/driver"
)

type outcome[T any] struct {
	result T
	err    error
}

// Run executes work while a progress view consumes its events. The view
// closes when work returns.
func Run[T any](ctx context.Context, title string, out io.Writer, work func(context.Context, driver.Sink) (T, error)) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan outcome[T], 1)
	go func() {
		res, err := work(ctx, driver.ChannelSink{Ch: events})
		outcomeCh <- outcome[T]{result: res, err: err}
		close(events)
	}()

	model := NewProgressModel(title, events, cancel)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// воркеры не должны блокироваться на полном канале, если UI вышел раньше
	for range events {
	}
	res := <-outcomeCh
	if uiErr != nil && res.err == nil && ctx.Err() == nil {
		return res.result, uiErr
	}
	return res.result, res.err
}
