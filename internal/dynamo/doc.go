// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types used by the
// pendulum sweep:
//
//   - [State]: vector representing system state
//   - [System]: capability interface for first-order ODEs (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator
//   - [Hamiltonian]: systems that can report their total energy
//   - [Metric]: per-step observers that reduce a run to a scalar
//
// # Example
//
//	dyn := physics.NewPendulum()
//	integ := integrators.NewRK4()
//	next := integ.Step(dyn, dynamo.State{0.5, 0}, 0, 0.01)
//
// Integrators never see model fields; anything with a Derive method, or a
// plain function wrapped in [Func], can be stepped.
package dynamo
