package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pendsweep/internal/analysis"
	"github.com/san-kum/pendsweep/internal/config"
	"github.com/san-kum/pendsweep/internal/report"
	"github.com/san-kum/pendsweep/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tTRIALS\tSUMMARY\tL\tG\tB\tINTEG")

	for _, run := range runs {
		var length, grav, damp float64
		integ := "?"
		if run.Config != nil {
			length, grav, damp, integ = run.Config.Length, run.Config.Gravity, run.Config.Damping, run.Config.Integrator
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\t%.2f\t%.3f\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Trials),
			len(run.Summary),
			length,
			grav,
			damp,
			integ,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("time: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	if meta.Config != nil {
		fmt.Printf("g=%.2f L=%.2f b=%.3f dt=%.4fs duration=%.1fs integrator=%s\n",
			meta.Config.Gravity, meta.Config.Length, meta.Config.Damping,
			meta.Config.TimeStep(), meta.Config.Duration, meta.Config.Integrator)
	}
	fmt.Println()

	r := report.New(os.Stdout, reportOptions()...)
	for _, tr := range result.Trials {
		r.OnTrial(tr)
	}
	r.OnSweep(result.Summary)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	fmt.Printf("spectral analysis: %s\n\n", meta.ID)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AMPLITUDE\tPEAK T\tSPECTRAL T\tEXACT T\tSMALL-ANGLE T")

	var small float64
	if meta.Config != nil {
		small = analysis.SmallAnglePeriod(meta.Config.Gravity, meta.Config.Length)
	}

	type plot struct {
		caption string
		data    []float64
	}
	var spectra []plot
	for _, tr := range result.Trials {
		if tr.Real.Len() < 2 {
			continue
		}
		step := tr.Real.Times[1] - tr.Real.Times[0]
		spec, specOK := analysis.SpectralPeriod(tr.Real.Angles, step)

		fmt.Fprintf(w, "%.1f°\t%s\t%s\t%s\t%.4f\n",
			tr.AmplitudeDeg(),
			period(tr.RealPeriod, tr.RealOK),
			period(spec, specOK),
			period(tr.ExactPeriod, tr.ExactOK),
			small,
		)

		if spectrum && tr.Fault == nil {
			spectra = append(spectra, plot{
				caption: fmt.Sprintf("power spectrum, θ₀ = %.1f°", tr.AmplitudeDeg()),
				data:    powerSpectrum(tr.Real.Angles),
			})
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, p := range spectra {
		if len(p.data) < 2 {
			continue
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		))
	}

	return nil
}

// powerSpectrum returns the low-frequency half of the spectrum, which is
// where a pendulum's fundamental lives at these rates.
func powerSpectrum(samples []float64) []float64 {
	ps := analysis.PowerSpectrum(samples)
	return ps[:len(ps)/2]
}

func period(v float64, ok bool) string {
	if !ok {
		return "undetermined"
	}
	return fmt.Sprintf("%.4f", v)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return withOutput(func(w io.Writer) error {
		return storage.New(dataDir).ExportCSV(w, args[0])
	})
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return withOutput(func(w io.Writer) error {
		return storage.New(dataDir).ExportJSON(w, args[0])
	})
}

func withOutput(fn func(w io.Writer) error) error {
	if outFile == "" {
		return fn(os.Stdout)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "exported to %s\n", outFile)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tG\tL\tB\tFPS\tDURATION\tAMPLITUDES")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.3f\t%.0f\t%.0fs\t%v\n",
			name, p.Gravity, p.Length, p.Damping, p.FPS, p.Duration, p.Amplitudes)
	}
	return w.Flush()
}

// reportOptions maps the chart flags to report options.
func reportOptions() []report.Option {
	opts := []report.Option{report.WithSize(chartWidth, chartHeight)}
	if noCharts {
		opts = append(opts, report.WithoutCharts())
	}
	return opts
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
