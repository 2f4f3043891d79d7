package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/pendsweep/internal/dynamo"
)

// Pendulum is the full nonlinear pendulum with linear viscous damping:
//
//	θ'' + b·θ' + (g/L)·sin θ = 0
//
// State layout is [θ, ω].
type Pendulum struct {
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    1.0,
		Length:  4.0,
		Damping: 0.0,
		Gravity: 9.81,
	}
}

func (p *Pendulum) Derive(x dynamo.State, t float64) dynamo.State {
	theta := x[0]
	omega := x[1]

	alpha := -(p.Gravity/p.Length)*math.Sin(theta) - p.Damping*omega

	return dynamo.State{omega, alpha}
}

// Omega0 is the small-angle angular frequency √(g/L).
func (p *Pendulum) Omega0() float64 {
	return math.Sqrt(p.Gravity / p.Length)
}

// Validate rejects parameters for which ω₀ or the energy is not real and
// positive.
func (p *Pendulum) Validate() error {
	if !(p.Mass > 0) {
		return fmt.Errorf("%w: mass must be positive, got %g", dynamo.ErrParameterBounds, p.Mass)
	}
	if !(p.Gravity > 0) {
		return fmt.Errorf("%w: gravity must be positive, got %g", dynamo.ErrParameterBounds, p.Gravity)
	}
	if !(p.Length > 0) {
		return fmt.Errorf("%w: length must be positive, got %g", dynamo.ErrParameterBounds, p.Length)
	}
	if p.Damping < 0 {
		return fmt.Errorf("%w: damping must be non-negative, got %g", dynamo.ErrParameterBounds, p.Damping)
	}
	return nil
}

func (p *Pendulum) Energy(x dynamo.State) float64 {
	// KE = 0.5 * m * (L*omega)^2
	// PE = m * g * L * (1 - cos(theta))
	v := p.Length * x[1]
	ke := 0.5 * p.Mass * v * v
	pe := p.Mass * p.Gravity * p.Length * (1.0 - math.Cos(x[0]))
	return ke + pe
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":    p.Mass,
		"length":  p.Length,
		"damping": p.Damping,
		"gravity": p.Gravity,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		p.Mass = value
	case "length":
		p.Length = value
	case "damping":
		p.Damping = value
	case "gravity":
		p.Gravity = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
