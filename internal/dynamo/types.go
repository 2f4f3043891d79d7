package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is anything that can report the time derivative of its state.
type System interface {
	Derive(x State, t float64) State
}

// Func adapts an ordinary function to the System interface.
type Func func(x State, t float64) State

func (f Func) Derive(x State, t float64) State { return f(x, t) }

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(sys System, x State, t float64, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// Configurable exposes a model's named parameters for adjustment by name.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
