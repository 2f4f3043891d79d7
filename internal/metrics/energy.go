package metrics

import (
	"math"

	"github.com/san-kum/pendsweep/internal/dynamo"
)

// Energy reports the mean total energy over all observed states.
type Energy struct {
	name        string
	sys         dynamo.Hamiltonian
	samples     int
	totalEnergy float64
}

func NewEnergy(sys dynamo.Hamiltonian) *Energy {
	return &Energy{
		name: "energy",
		sys:  sys,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, t float64) {
	e.totalEnergy += e.sys.Energy(x)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift reports the largest relative deviation of total energy from
// the first observed state. For an undamped pendulum this measures
// integrator error; with damping it measures dissipation.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
	sys           dynamo.Hamiltonian
}

func NewEnergyDrift(sys dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		sys:  sys,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	energy := e.sys.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		if math.IsNaN(drift) {
			drift = math.Inf(1)
		}
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
