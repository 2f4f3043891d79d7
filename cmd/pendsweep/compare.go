package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/pendsweep/internal/analysis"
	"github.com/san-kum/pendsweep/internal/integrators"
	"github.com/san-kum/pendsweep/internal/sweep"
)

// compareIntegrators sweeps the configured amplitudes once per integrator,
// concurrently, and reports how far each estimated period lands from the
// exact one.
func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	params := cfg.Params()
	drivers := make([]*sweep.Driver, 0, len(names))
	for _, name := range names {
		integ, err := integrators.Get(name)
		if err != nil {
			return err
		}
		d, err := sweep.New(params, sweep.WithIntegrator(integ))
		if err != nil {
			return err
		}
		drivers = append(drivers, d)
	}

	fmt.Printf("comparing integrators (dt=%.4f, duration=%.1fs, damping=%.3f)\n\n", params.Dt, params.Duration, params.Damping)

	start := time.Now()
	results, err := sweep.NewEnsemble(drivers...).Run(context.Background(), cfg.AmplitudesRad())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tAMPLITUDE\tREAL T\tEXACT T\tERROR %\tENERGY DRIFT")

	for i, res := range results {
		for _, tr := range res.Trials {
			exact, exactOK := analysis.ExactPeriod(params.Gravity, params.Length, tr.Amplitude)
			errPct := "-"
			if tr.RealOK && exactOK && params.Damping == 0 {
				errPct = fmt.Sprintf("%+.4f", (tr.RealPeriod-exact)/exact*100)
			}

			drift := "-"
			if v, ok := tr.Metrics["energy_drift"]; ok {
				drift = fmt.Sprintf("%.2e", v)
				if math.IsInf(v, 0) {
					drift = "diverged"
				}
			}

			fmt.Fprintf(w, "%s\t%.1f°\t%s\t%s\t%s\t%s\n",
				names[i],
				tr.AmplitudeDeg(),
				period(tr.RealPeriod, tr.RealOK),
				period(exact, exactOK),
				errPct,
				drift,
			)
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", elapsed.Round(time.Millisecond))
	return nil
}
