package physics

import (
	"math"

	"github.com/san-kum/pendsweep/internal/dynamo"
)

// HarmonicAngle is the small-angle solution θ₀·cos(ω₀t) for a pendulum
// released from rest.
func HarmonicAngle(theta0, omega0, t float64) float64 {
	return theta0 * math.Cos(omega0*t)
}

// HarmonicVelocity is the time derivative of HarmonicAngle.
func HarmonicVelocity(theta0, omega0, t float64) float64 {
	return -theta0 * omega0 * math.Sin(omega0*t)
}

// Harmonic evaluates the linearised pendulum in closed form. It carries no
// integration state, so At never accumulates numerical error.
type Harmonic struct {
	Theta0 float64
	Omega0 float64
}

func NewHarmonic(theta0, omega0 float64) Harmonic {
	return Harmonic{Theta0: theta0, Omega0: omega0}
}

func (h Harmonic) At(t float64) dynamo.State {
	return dynamo.State{
		HarmonicAngle(h.Theta0, h.Omega0, t),
		HarmonicVelocity(h.Theta0, h.Omega0, t),
	}
}
