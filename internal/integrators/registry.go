package integrators

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/pendsweep/internal/dynamo"
)

var ErrUnknownIntegrator = errors.New("integrators: unknown integrator")

var registry = map[string]func() dynamo.Integrator{
	"rk4":    func() dynamo.Integrator { return NewRK4() },
	"euler":  func() dynamo.Integrator { return NewEuler() },
	"verlet": func() dynamo.Integrator { return NewVerlet() },
}

// Get returns a fresh integrator registered under name.
func Get(name string) (dynamo.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownIntegrator, name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
