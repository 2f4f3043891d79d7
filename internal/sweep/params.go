package sweep

import (
	"fmt"
	"math"

	"github.com/san-kum/pendsweep/internal/analysis"
	"github.com/san-kum/pendsweep/internal/dynamo"
	"github.com/san-kum/pendsweep/internal/physics"
)

// Params are the physical and numerical constants shared by every trial of
// a sweep.
type Params struct {
	Mass     float64
	Gravity  float64
	Length   float64
	Damping  float64
	Dt       float64
	Duration float64
	// PeakDistance is the minimum number of samples between detected peaks.
	PeakDistance int
}

// MaxSteps bounds the samples a single trial may record. Each trial keeps
// two trajectories of this length in memory.
const MaxSteps = 10_000_000

// DefaultParams matches a 4 m pendulum on Earth filmed at 60 frames per
// second for 15 seconds.
func DefaultParams() Params {
	return Params{
		Mass:         1.0,
		Gravity:      9.81,
		Length:       4.0,
		Damping:      0.0,
		Dt:           1.0 / 60,
		Duration:     15.0,
		PeakDistance: analysis.DefaultPeakDistance,
	}
}

func (p Params) Validate() error {
	if err := p.Pendulum().Validate(); err != nil {
		return err
	}
	if !(p.Dt > 0) || math.IsInf(p.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrParameterBounds, p.Dt)
	}
	if !(p.Duration > 0) || math.IsInf(p.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", dynamo.ErrParameterBounds, p.Duration)
	}
	if p.Duration/p.Dt > MaxSteps {
		return fmt.Errorf("%w: %g s at dt %g exceeds %d steps", dynamo.ErrParameterBounds, p.Duration, p.Dt, MaxSteps)
	}
	if p.Steps() < 1 {
		return fmt.Errorf("%w: duration %g shorter than one step of %g", dynamo.ErrParameterBounds, p.Duration, p.Dt)
	}
	if p.PeakDistance < 1 {
		return fmt.Errorf("%w: peak distance must be at least 1, got %d", dynamo.ErrParameterBounds, p.PeakDistance)
	}
	return nil
}

// Omega0 is the small-angle angular frequency √(g/L).
func (p Params) Omega0() float64 {
	return math.Sqrt(p.Gravity / p.Length)
}

// Steps is the number of fixed steps per trial, ⌊duration/dt⌋, with a small
// tolerance for rounding in the division.
func (p Params) Steps() int {
	return int(p.Duration/p.Dt + 1e-9)
}

// Pendulum builds the model the trials integrate. A zero Mass keeps the
// model's unit default.
func (p Params) Pendulum() *physics.Pendulum {
	pend := physics.NewPendulum()
	pend.Length = p.Length
	pend.Damping = p.Damping
	pend.Gravity = p.Gravity
	if p.Mass != 0 {
		pend.Mass = p.Mass
	}
	return pend
}
