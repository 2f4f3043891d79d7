package integrators

import "github.com/san-kum/pendsweep/internal/dynamo"

// RK4 is the classic fixed-step fourth-order Runge-Kutta scheme. It keeps no
// state between calls, so the same (system, state, dt) always yields the
// same result.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	scratch := make(dynamo.State, n)

	k1 := sys.Derive(x, t)

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + dt*0.5*k1[i]
	}
	k2 := sys.Derive(scratch, t+dt*0.5)

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + dt*0.5*k2[i]
	}
	k3 := sys.Derive(scratch, t+dt*0.5)

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + dt*k3[i]
	}
	k4 := sys.Derive(scratch, t+dt)

	result := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}

	return result
}
