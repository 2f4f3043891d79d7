package sweep

import (
	"errors"
	"math"

	"github.com/san-kum/pendsweep/internal/analysis"
	"github.com/san-kum/pendsweep/internal/dynamo"
	"github.com/san-kum/pendsweep/internal/physics"
)

var ErrTrialIncomplete = errors.New("sweep: trial finalized before its last step")

// Frame is the state of both models after one step, as handed to sinks.
type Frame struct {
	Trial     int
	Amplitude float64
	Step      int
	Time      float64
	Harmonic  dynamo.State
	Real      dynamo.State
}

// Trial is one run of both models from a single release amplitude.
type Trial struct {
	Index     int
	Amplitude float64

	params   Params
	pendulum *physics.Pendulum
	harmonic physics.Harmonic
	integ    dynamo.Integrator
	metrics  []dynamo.Metric

	real  dynamo.State
	t     float64
	step  int
	steps int
	fault error

	Harmonic Trajectory
	Real     Trajectory
}

func newTrial(index int, theta0 float64, params Params, integ dynamo.Integrator, metrics []dynamo.Metric) *Trial {
	steps := params.Steps()
	pendulum := params.Pendulum()

	tr := &Trial{
		Index:     index,
		Amplitude: theta0,
		params:    params,
		pendulum:  pendulum,
		harmonic:  physics.NewHarmonic(theta0, params.Omega0()),
		integ:     integ,
		metrics:   metrics,
		real:      dynamo.State{theta0, 0},
		steps:     steps,
		Harmonic:  newTrajectory(steps),
		Real:      newTrajectory(steps),
	}

	for _, m := range tr.metrics {
		m.Reset()
		m.Observe(tr.real, 0)
	}

	return tr
}

// Done reports whether every step of the trial has run.
func (tr *Trial) Done() bool {
	return tr.step >= tr.steps
}

// Time is the simulated time of the next sample.
func (tr *Trial) Time() float64 {
	return tr.t
}

// Step evaluates the harmonic model at the current time, advances the real
// model by one integrator step, records both angles against the current
// time and moves the clock forward. It returns false once the trial is done.
func (tr *Trial) Step() (Frame, bool) {
	if tr.Done() {
		return Frame{}, false
	}

	harm := tr.harmonic.At(tr.t)
	tr.real = tr.integ.Step(tr.pendulum, tr.real, tr.t, tr.params.Dt)

	if tr.fault == nil && !tr.real.IsValid() {
		tr.fault = dynamo.SimError{Time: tr.t, Step: tr.step, Message: dynamo.ErrInvalidState.Error()}
	}

	tr.Harmonic.Append(tr.t, harm[0])
	tr.Real.Append(tr.t, tr.real[0])

	for _, m := range tr.metrics {
		m.Observe(tr.real, tr.t+tr.params.Dt)
	}

	f := Frame{
		Trial:     tr.Index,
		Amplitude: tr.Amplitude,
		Step:      tr.step,
		Time:      tr.t,
		Harmonic:  harm,
		Real:      tr.real.Clone(),
	}

	tr.t += tr.params.Dt
	tr.step++

	return f, true
}

// Finalize estimates both periods. It fails if called before Done.
func (tr *Trial) Finalize() (*TrialResult, error) {
	if !tr.Done() {
		return nil, ErrTrialIncomplete
	}

	res := &TrialResult{
		Index:     tr.Index,
		Amplitude: tr.Amplitude,
		Harmonic:  tr.Harmonic,
		Real:      tr.Real,
		Metrics:   make(map[string]float64, len(tr.metrics)),
		Fault:     tr.fault,
	}

	res.HarmonicPeriod, res.HarmonicOK = analysis.EstimatePeriod(tr.Harmonic.Angles, tr.Harmonic.Times, tr.params.PeakDistance)
	res.RealPeriod, res.RealOK = analysis.EstimatePeriod(tr.Real.Angles, tr.Real.Times, tr.params.PeakDistance)

	if tr.params.Damping == 0 {
		res.ExactPeriod, res.ExactOK = analysis.ExactPeriod(tr.params.Gravity, tr.params.Length, tr.Amplitude)
	}

	for _, m := range tr.metrics {
		res.Metrics[m.Name()] = m.Value()
	}

	return res, nil
}

// TrialResult is a finished trial: both trajectories and their periods.
// A period whose OK flag is false is undetermined and its value is zero.
type TrialResult struct {
	Index          int
	Amplitude      float64
	Harmonic       Trajectory
	Real           Trajectory
	HarmonicPeriod float64
	HarmonicOK     bool
	RealPeriod     float64
	RealOK         bool
	// ExactPeriod is the analytic period of the undamped real pendulum;
	// only set when damping is zero.
	ExactPeriod float64
	ExactOK     bool
	Metrics     map[string]float64
	// Fault records the first non-finite real state, if any.
	Fault error
}

// Determined reports whether both periods were estimated.
func (r *TrialResult) Determined() bool {
	return r.HarmonicOK && r.RealOK
}

func (r *TrialResult) Ratio() float64 {
	return r.RealPeriod / r.HarmonicPeriod
}

func (r *TrialResult) PercentDiff() float64 {
	return (r.RealPeriod - r.HarmonicPeriod) / r.HarmonicPeriod * 100
}

// AmplitudeDeg is the release amplitude in degrees.
func (r *TrialResult) AmplitudeDeg() float64 {
	return r.Amplitude * 180 / math.Pi
}
