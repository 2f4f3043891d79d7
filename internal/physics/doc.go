// Package physics provides the two pendulum models compared by the sweep.
//
//   - [Pendulum]: full nonlinear pendulum with viscous damping, stepped by
//     an integrator through its Derive method
//   - [Harmonic]: small-angle approximation evaluated in closed form
//
// [Pendulum] also implements [dynamo.Configurable] for runtime parameter
// adjustment and [dynamo.Hamiltonian] for energy calculation.
//
// # Energy Conservation
//
// With zero damping the real pendulum conserves energy, which makes the
// energy a useful check on integrator accuracy:
//
//	p := physics.NewPendulum()
//	energy := p.Energy(state)
package physics
