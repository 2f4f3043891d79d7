package sweep

import (
	"context"
	"sync"
)

// Ensemble runs independent sweeps concurrently, one goroutine per driver.
// Each sweep stays sequential; drivers must not share a sink.
type Ensemble struct {
	drivers []*Driver
}

func NewEnsemble(drivers ...*Driver) *Ensemble {
	return &Ensemble{drivers: drivers}
}

// Run sweeps amplitudes with every driver. Results are in driver order; the
// first error encountered is returned alongside whatever each driver
// produced.
func (e *Ensemble) Run(ctx context.Context, amplitudes []float64) ([]*Result, error) {
	results := make([]*Result, len(e.drivers))
	errs := make([]error, len(e.drivers))

	var wg sync.WaitGroup
	for i, d := range e.drivers {
		wg.Add(1)
		go func(idx int, d *Driver) {
			defer wg.Done()
			results[idx], errs[idx] = d.Run(ctx, amplitudes)
		}(i, d)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
