package monitor

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/pendsweep/internal/sweep"
)

// SweepFunc runs a sweep that reports to sink.
type SweepFunc func(ctx context.Context, sink sweep.Sink) (*sweep.Result, error)

// Run executes fn in the background while showing its progress. Quitting the
// monitor cancels the sweep between trials; Run waits for fn to return.
func Run(ctx context.Context, total int, fn SweepFunc, opts ...tea.ProgramOption) (*sweep.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sink := NewSink(ctx, 64)

	var (
		res *sweep.Result
		err error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		res, err = fn(ctx, sink)
		if err != nil {
			sink.Fail(err)
		}
	}()

	p := tea.NewProgram(NewModel(sink, total, cancel), opts...)
	if _, perr := p.Run(); perr != nil {
		cancel()
		<-done
		return res, perr
	}

	cancel()
	<-done
	return res, err
}
