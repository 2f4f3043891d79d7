package integrators

import "github.com/san-kum/pendsweep/internal/dynamo"

// Verlet is velocity Verlet for states laid out as [positions..., velocities...].
// Velocity-dependent forces are evaluated with the start-of-step velocity.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2

	result := make(dynamo.State, n)
	scratch := make(dynamo.State, n)
	dx := sys.Derive(x, t)
	dt2 := dt * dt

	for i := 0; i < half; i++ {
		result[i] = x[i] + x[half+i]*dt + 0.5*dx[half+i]*dt2
	}

	for i := 0; i < half; i++ {
		scratch[i] = result[i]
		scratch[half+i] = x[half+i]
	}

	dxNew := sys.Derive(scratch, t+dt)

	halfDt := 0.5 * dt
	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + (dx[half+i]+dxNew[half+i])*halfDt
	}

	return result
}
