package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/pendsweep/internal/config"
	"github.com/san-kum/pendsweep/internal/logger"
)

var (
	dataDir   string
	logLevel  string
	logFormat string

	configFile   string
	preset       string
	gravity      float64
	length       float64
	damping      float64
	fps          float64
	dt           float64
	duration     float64
	amplitudes   []float64
	integrator   string
	peakDistance int
	setParams    []string

	live     bool
	speed    float64
	noSave   bool
	noCharts bool

	chartWidth  int
	chartHeight int
	force       bool

	outFile  string
	spectrum bool
)

// main registers the commands and runs the root command, exiting with status
// 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "pendsweep",
		Short:         "harmonic vs nonlinear pendulum amplitude sweep",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logger.ForFormat(logFormat, logLevel, os.Stderr)
			if err != nil {
				return err
			}
			logger.SetDefault(l)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pendsweep", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run an amplitude sweep",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSweepFlags(sweepCmd)
	sweepCmd.Flags().BoolVar(&live, "live", false, "show a live monitor while the sweep runs")
	sweepCmd.Flags().Float64Var(&speed, "speed", 1, "live playback speed relative to simulated time (0 = unpaced)")
	sweepCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	sweepCmd.Flags().BoolVar(&noCharts, "no-charts", false, "print periods without charts")
	addChartFlags(sweepCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&noCharts, "no-charts", false, "print periods without charts")
	addChartFlags(showCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "cross-check peak periods against the spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().BoolVar(&spectrum, "spectrum", false, "plot the power spectrum of each real trajectory")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trajectories to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators against the exact period",
		RunE:  compareIntegrators,
	}
	addSweepFlags(compareCmd)

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved sweep configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	addSweepFlags(initConfigCmd)
	initConfigCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	rootCmd.AddCommand(sweepCmd, listCmd, showCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, presetsCmd, compareCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "gravitational acceleration [m/s²]")
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "pendulum length [m]")
	cmd.Flags().Float64Var(&damping, "damping", config.DefaultDamping, "linear damping coefficient [1/s]")
	cmd.Flags().Float64Var(&fps, "fps", config.DefaultFPS, "steps per simulated second when --dt is unset")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep [s], overrides --fps")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "trial duration [s]")
	cmd.Flags().Float64SliceVar(&amplitudes, "amplitudes", append([]float64(nil), config.DefaultAmplitudes...), "release amplitudes [deg]")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	cmd.Flags().IntVar(&peakDistance, "peak-distance", config.DefaultConfig().PeakDistance, "minimum samples between detected peaks")
	cmd.Flags().StringArrayVar(&setParams, "set", nil, "set a pendulum parameter, name=value (mass, length, damping, gravity); repeatable")
}

func addChartFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&chartWidth, "chart-width", 0, "chart width in terminal cells (0 = default)")
	cmd.Flags().IntVar(&chartHeight, "chart-height", 0, "chart height in terminal cells (0 = default)")
}

// resolveConfig builds the effective configuration: preset, then config
// file, then explicitly set flags, then --set in the order given.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("damping") {
		cfg.Damping = damping
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
		if !flags.Changed("dt") {
			cfg.Dt = 0
		}
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("amplitudes") {
		cfg.Amplitudes = append([]float64(nil), amplitudes...)
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("peak-distance") {
		cfg.PeakDistance = peakDistance
	}
	for _, kv := range setParams {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: expected name=value", kv)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("--set %s: %w", name, err)
		}
		if err := cfg.Set(strings.TrimSpace(name), value); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
