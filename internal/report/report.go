// Package report renders sweep progress and results to a terminal.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pendsweep/internal/sweep"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const (
	defaultWidth  = 70
	defaultHeight = 12
)

// Report is a sweep.Sink that prints a chart and the estimated periods after
// every trial, and a comparison table once the sweep ends.
type Report struct {
	w      io.Writer
	width  int
	height int
	charts bool
}

type Option func(*Report)

// WithSize sets the chart dimensions in terminal cells.
func WithSize(width, height int) Option {
	return func(r *Report) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// WithoutCharts limits output to text.
func WithoutCharts() Option {
	return func(r *Report) { r.charts = false }
}

func New(w io.Writer, opts ...Option) *Report {
	r := &Report{
		w:      w,
		width:  defaultWidth,
		height: defaultHeight,
		charts: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Report) OnStep(sweep.Frame) {}

func (r *Report) OnTrial(res *sweep.TrialResult) {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("TRIAL %d  θ₀ = %.1f°", res.Index+1, res.AmplitudeDeg())) + "\n")

	if r.charts {
		b.WriteString(r.trialChart(res) + "\n")
	}

	b.WriteString(row("harmonic T", formatPeriod(res.HarmonicPeriod, res.HarmonicOK)))
	b.WriteString(row("real T", formatPeriod(res.RealPeriod, res.RealOK)))
	if res.ExactOK {
		b.WriteString(row("exact T", formatPeriod(res.ExactPeriod, true)))
	}
	if res.Determined() {
		b.WriteString(row("ratio", fmt.Sprintf("%.5f", res.Ratio())))
		b.WriteString(row("difference", fmt.Sprintf("%+.3f %%", res.PercentDiff())))
	} else {
		b.WriteString(warnStyle.Render("excluded from summary: period undetermined") + "\n")
	}
	if e, ok := res.Metrics["energy"]; ok {
		b.WriteString(row("mean energy", fmt.Sprintf("%.4g J", e)))
	}
	if drift, ok := res.Metrics["energy_drift"]; ok {
		b.WriteString(row("energy drift", fmt.Sprintf("%.3e", drift)))
	}
	if res.Fault != nil {
		b.WriteString(warnStyle.Render("fault: "+res.Fault.Error()) + "\n")
	}

	fmt.Fprintln(r.w, b.String())
}

func (r *Report) OnSweep(sum sweep.Summary) {
	fmt.Fprintln(r.w, SummaryTable(sum))

	if r.charts && len(sum) > 1 {
		ratios := make([]float64, len(sum))
		for i, e := range sum {
			ratios[i] = e.Ratio
		}
		chart := asciigraph.Plot(ratios,
			asciigraph.Height(r.height/2+1),
			asciigraph.Width(r.width),
			asciigraph.Precision(4),
			asciigraph.Caption("T_real / T_harmonic by amplitude"))
		fmt.Fprintln(r.w, chart)
	}
}

func (r *Report) trialChart(res *sweep.TrialResult) string {
	if !allFinite(res.Harmonic.Angles) || !allFinite(res.Real.Angles) {
		return warnStyle.Render("chart skipped: non-finite samples")
	}
	if res.Harmonic.Len() < 2 {
		return warnStyle.Render("chart skipped: too few samples")
	}

	return asciigraph.PlotMany([][]float64{res.Harmonic.Angles, res.Real.Angles},
		asciigraph.Height(r.height),
		asciigraph.Width(r.width),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Red),
		asciigraph.SeriesLegends("harmonic", "real"),
		asciigraph.Caption("angle [rad]"))
}

// SummaryTable renders one row per summarized amplitude.
func SummaryTable(sum sweep.Summary) string {
	if len(sum) == 0 {
		return warnStyle.Render("no amplitude produced a determined period")
	}

	rows := make([][]string, 0, len(sum))
	for _, e := range sum {
		rows = append(rows, []string{
			fmt.Sprintf("%.1f°", e.Amplitude*180/math.Pi),
			fmt.Sprintf("%.4f", e.HarmonicPeriod),
			fmt.Sprintf("%.4f", e.RealPeriod),
			fmt.Sprintf("%.5f", e.Ratio),
			fmt.Sprintf("%+.3f", e.PercentDiff),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("AMPLITUDE", "HARMONIC T [s]", "REAL T [s]", "RATIO", "DIFF [%]").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.Render()
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func formatPeriod(v float64, ok bool) string {
	if !ok {
		return "undetermined"
	}
	return fmt.Sprintf("%.4f s", v)
}

func allFinite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
