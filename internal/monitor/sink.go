package monitor

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/pendsweep/internal/sweep"
)

type (
	FrameMsg sweep.Frame
	TrialMsg struct{ Result *sweep.TrialResult }
	DoneMsg  struct {
		Summary sweep.Summary
		Err     error
	}
)

// Sink forwards driver callbacks to a bubbletea program as messages. Sends
// block until the program reads them or ctx is done.
type Sink struct {
	ctx context.Context
	ch  chan tea.Msg
}

func NewSink(ctx context.Context, buffer int) *Sink {
	return &Sink{ctx: ctx, ch: make(chan tea.Msg, buffer)}
}

func (s *Sink) send(msg tea.Msg) {
	select {
	case s.ch <- msg:
	case <-s.ctx.Done():
	}
}

func (s *Sink) OnStep(f sweep.Frame) { s.send(FrameMsg(f)) }

func (s *Sink) OnTrial(r *sweep.TrialResult) { s.send(TrialMsg{Result: r}) }

func (s *Sink) OnSweep(sum sweep.Summary) { s.send(DoneMsg{Summary: sum}) }

// Fail reports a sweep that ended without reaching OnSweep.
func (s *Sink) Fail(err error) { s.send(DoneMsg{Err: err}) }

func (s *Sink) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-s.ch:
			return msg
		case <-s.ctx.Done():
			return nil
		}
	}
}
