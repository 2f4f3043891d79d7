package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/pendsweep/internal/config"
	"github.com/san-kum/pendsweep/internal/integrators"
	"github.com/san-kum/pendsweep/internal/logger"
	"github.com/san-kum/pendsweep/internal/monitor"
	"github.com/san-kum/pendsweep/internal/report"
	"github.com/san-kum/pendsweep/internal/storage"
	"github.com/san-kum/pendsweep/internal/sweep"
)

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	integ, err := integrators.Get(cfg.Integrator)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := logger.With("integrator", cfg.Integrator)
	if live && !cmd.Flags().Changed("log-level") {
		// keep warnings from tearing the monitor's screen
		log = logger.NewText("error", io.Discard)
	}
	amps := cfg.AmplitudesRad()

	run := func(ctx context.Context, sink sweep.Sink) (*sweep.Result, error) {
		d, err := sweep.New(cfg.Params(),
			sweep.WithIntegrator(integ),
			sweep.WithSink(sink),
			sweep.WithLogger(log),
		)
		if err != nil {
			return nil, err
		}
		return d.Run(ctx, amps)
	}

	fmt.Printf("sweeping %d amplitudes (g=%.2f, L=%.2f, b=%.3f, dt=%.4fs, %.1fs per trial, %s)\n\n",
		len(amps), cfg.Gravity, cfg.Length, cfg.Damping, cfg.TimeStep(), cfg.Duration, cfg.Integrator)

	start := time.Now()
	var result *sweep.Result
	if live {
		result, err = monitor.Run(ctx, len(amps), func(ctx context.Context, sink sweep.Sink) (*sweep.Result, error) {
			if speed > 0 {
				sink = sweep.Paced(ctx, sink, speed/cfg.TimeStep())
			}
			return run(ctx, sink)
		})
	} else {
		result, err = run(ctx, report.New(os.Stdout, reportOptions()...))
	}
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, context.Canceled) && result != nil:
		fmt.Printf("sweep cancelled after %d of %d trials\n", len(result.Trials), len(amps))
	case err != nil:
		return err
	default:
		fmt.Printf("completed in %v\n", elapsed.Round(time.Millisecond))
	}

	if noSave || result == nil || len(result.Trials) == 0 {
		return nil
	}
	return saveRun(cfg, result)
}

func saveRun(cfg *config.Config, result *sweep.Result) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	logger.Info("run saved", "id", runID, "dir", dataDir)
	fmt.Printf("run id: %s\n", runID)
	return nil
}
