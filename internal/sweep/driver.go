package sweep

import (
	"context"
	"log/slog"

	"github.com/san-kum/pendsweep/internal/dynamo"
	"github.com/san-kum/pendsweep/internal/integrators"
	"github.com/san-kum/pendsweep/internal/logger"
	"github.com/san-kum/pendsweep/internal/metrics"
	"github.com/san-kum/pendsweep/internal/physics"
)

// SummaryEntry compares the two models at one amplitude.
type SummaryEntry struct {
	Amplitude      float64
	HarmonicPeriod float64
	RealPeriod     float64
	Ratio          float64
	PercentDiff    float64
}

// Summary holds one entry per trial whose periods were both determined, in
// sweep order.
type Summary []SummaryEntry

// Result is everything a sweep produced.
type Result struct {
	Params  Params
	Trials  []*TrialResult
	Summary Summary
}

type Driver struct {
	params     Params
	integ      dynamo.Integrator
	sink       Sink
	log        *slog.Logger
	newMetrics func(p *physics.Pendulum) []dynamo.Metric
}

type Option func(*Driver)

func WithSink(s Sink) Option {
	return func(d *Driver) { d.sink = s }
}

// WithIntegrator replaces RK4 for the real model.
func WithIntegrator(integ dynamo.Integrator) Option {
	return func(d *Driver) { d.integ = integ }
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// New validates params and returns a driver. Configuration errors are
// reported here, before any trial runs.
func New(params Params, opts ...Option) (*Driver, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	d := &Driver{
		params: params,
		integ:  integrators.NewRK4(),
		sink:   NopSink{},
		log:    logger.Default,
		newMetrics: func(p *physics.Pendulum) []dynamo.Metric {
			return []dynamo.Metric{metrics.NewEnergy(p), metrics.NewEnergyDrift(p)}
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *Driver) Params() Params {
	return d.params
}

// NewTrial starts a fresh trial released from rest at theta0.
func (d *Driver) NewTrial(index int, theta0 float64) *Trial {
	return newTrial(index, theta0, d.params, d.integ, d.newMetrics(d.params.Pendulum()))
}

// RunTrial runs a single trial to completion, streaming frames to the sink.
func (d *Driver) RunTrial(index int, theta0 float64) *TrialResult {
	tr := d.NewTrial(index, theta0)
	d.log.Debug("trial started", "trial", index, "amplitude_rad", theta0, "steps", d.params.Steps())

	for {
		f, ok := tr.Step()
		if !ok {
			break
		}
		d.sink.OnStep(f)
	}

	// the loop above only exits once the trial is done
	res, _ := tr.Finalize()
	if res.Fault != nil {
		d.log.Warn("real pendulum state became non-finite", "trial", index, "error", res.Fault)
	}
	d.sink.OnTrial(res)
	return res
}

// Run performs one trial per amplitude, in order. Cancellation is honoured
// between trials only; a trial that has started always runs to the end. On
// cancellation the trials completed so far are returned with ctx.Err() and
// the sink's OnSweep is not called.
func (d *Driver) Run(ctx context.Context, amplitudes []float64) (*Result, error) {
	result := &Result{
		Params:  d.params,
		Trials:  make([]*TrialResult, 0, len(amplitudes)),
		Summary: make(Summary, 0, len(amplitudes)),
	}

	for i, theta0 := range amplitudes {
		if err := ctx.Err(); err != nil {
			d.log.Info("sweep stopped", "completed", i, "total", len(amplitudes))
			return result, err
		}

		res := d.RunTrial(i, theta0)
		result.Trials = append(result.Trials, res)

		if !res.Determined() {
			d.log.Warn("trial excluded from summary: period undetermined",
				"trial", i,
				"amplitude_deg", res.AmplitudeDeg(),
				"harmonic_ok", res.HarmonicOK,
				"real_ok", res.RealOK,
			)
			continue
		}

		result.Summary = append(result.Summary, SummaryEntry{
			Amplitude:      theta0,
			HarmonicPeriod: res.HarmonicPeriod,
			RealPeriod:     res.RealPeriod,
			Ratio:          res.Ratio(),
			PercentDiff:    res.PercentDiff(),
		})
		d.log.Info("trial finished",
			"trial", i,
			"amplitude_deg", res.AmplitudeDeg(),
			"harmonic_period", res.HarmonicPeriod,
			"real_period", res.RealPeriod,
			"percent_diff", res.PercentDiff(),
		)
	}

	d.sink.OnSweep(result.Summary)
	return result, nil
}
