package analysis

import "math"

// SmallAnglePeriod is 2π√(L/g), the period of the linearised pendulum.
func SmallAnglePeriod(gravity, length float64) float64 {
	return 2 * math.Pi * math.Sqrt(length/gravity)
}

// ExactPeriod is the period of the undamped nonlinear pendulum released from
// rest at theta0:
//
//	T = 4√(L/g)·K(sin(θ₀/2)) = 2π√(L/g) / AGM(1, cos(θ₀/2))
//
// The boolean is false for |θ₀| ≥ π, where the motion never returns.
func ExactPeriod(gravity, length, theta0 float64) (float64, bool) {
	if math.IsNaN(theta0) || math.Abs(theta0) >= math.Pi {
		return 0, false
	}
	return SmallAnglePeriod(gravity, length) / agm(1, math.Cos(theta0/2)), true
}

func agm(a, b float64) float64 {
	for i := 0; i < 64 && math.Abs(a-b) > 1e-15*a; i++ {
		a, b = (a+b)/2, math.Sqrt(a*b)
	}
	return a
}
