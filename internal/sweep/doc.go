// Package sweep runs the harmonic and nonlinear pendulum side by side for a
// series of release amplitudes and compares their periods.
//
// Each amplitude is one [Trial]. A trial owns its own state, clock and
// trajectories; nothing carries over from one trial to the next. Trials can
// be stepped by hand with [Trial.Step] or run back to back with
// [Driver.Run], which forwards every frame, finished trial and the final
// [Summary] to a [Sink].
//
//	d, err := sweep.New(params, sweep.WithSink(report.New(os.Stdout)))
//	if err != nil {
//	    return err // configuration error, nothing ran
//	}
//	res, err := d.Run(ctx, []float64{math.Pi / 6, math.Pi / 3, math.Pi / 2})
//
// Sinks observe the simulation; they cannot change it. Pacing a live view
// against the wall clock ([Paced]) never alters the numbers produced.
package sweep
