package sweep

import (
	"context"
	"time"
)

// Sink receives simulation output. Calls happen on the driver's goroutine,
// in order: every OnStep of a trial, then its OnTrial, and after the last
// trial a single OnSweep.
type Sink interface {
	OnStep(f Frame)
	OnTrial(r *TrialResult)
	OnSweep(s Summary)
}

type NopSink struct{}

func (NopSink) OnStep(Frame)         {}
func (NopSink) OnTrial(*TrialResult) {}
func (NopSink) OnSweep(Summary)      {}

// Sinks fans every call out to each sink in order.
type Sinks []Sink

func (s Sinks) OnStep(f Frame) {
	for _, sink := range s {
		sink.OnStep(f)
	}
}

func (s Sinks) OnTrial(r *TrialResult) {
	for _, sink := range s {
		sink.OnTrial(r)
	}
}

func (s Sinks) OnSweep(sum Summary) {
	for _, sink := range s {
		sink.OnSweep(sum)
	}
}

// Paced delays each OnStep so frames reach the wrapped sink no faster than
// fps per second of wall-clock time. A non-positive fps disables pacing.
// Once ctx is done frames are forwarded without delay, so a cancelled sweep
// finishes its current trial at full speed.
func Paced(ctx context.Context, sink Sink, fps float64) Sink {
	if !(fps > 0) {
		return sink
	}
	return &pacedSink{
		Sink:     sink,
		ctx:      ctx,
		interval: time.Duration(float64(time.Second) / fps),
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

type pacedSink struct {
	Sink
	ctx      context.Context
	interval time.Duration
	next     time.Time
	sleep    func(time.Duration)
	now      func() time.Time
}

func (p *pacedSink) OnStep(f Frame) {
	if p.ctx.Err() != nil {
		p.Sink.OnStep(f)
		return
	}

	now := p.now()
	if p.next.IsZero() || f.Step == 0 {
		p.next = now
	}
	if wait := p.next.Sub(now); wait > 0 {
		p.sleep(wait)
	} else {
		p.next = now
	}
	p.next = p.next.Add(p.interval)
	p.Sink.OnStep(f)
}
