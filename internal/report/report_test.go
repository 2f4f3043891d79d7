package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/pendsweep/internal/sweep"
)

func runTrial(t *testing.T, deg float64) *sweep.TrialResult {
	t.Helper()
	params := sweep.DefaultParams()
	params.Duration = 10
	d, err := sweep.New(params)
	if err != nil {
		t.Fatalf("driver: %v", err)
	}
	return d.RunTrial(0, deg*math.Pi/180)
}

func TestOnTrial(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, WithSize(40, 6))

	r.OnTrial(runTrial(t, 30))
	out := buf.String()

	for _, want := range []string{"TRIAL 1", "30.0°", "harmonic T", "real T", "exact T", "ratio", "mean energy", "harmonic", "real"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "undetermined") {
		t.Errorf("30° trial should have determined periods:\n%s", out)
	}
}

func TestOnTrialUndetermined(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, WithoutCharts())

	r.OnTrial(&sweep.TrialResult{
		Amplitude:      math.Pi / 6,
		HarmonicPeriod: 4.0,
		HarmonicOK:     true,
	})
	out := buf.String()

	if !strings.Contains(out, "undetermined") {
		t.Errorf("expected undetermined period:\n%s", out)
	}
	if !strings.Contains(out, "excluded") {
		t.Errorf("expected exclusion note:\n%s", out)
	}
}

func TestWithSizeSetsChartHeight(t *testing.T) {
	res := runTrial(t, 30)

	small := strings.Count(New(&bytes.Buffer{}, WithSize(40, 6)).trialChart(res), "\n")
	full := strings.Count(New(&bytes.Buffer{}).trialChart(res), "\n")

	if small >= full {
		t.Errorf("a 6 row chart should be shorter than the default, got %d vs %d lines", small, full)
	}
}

func TestWithSizeIgnoresNonPositive(t *testing.T) {
	r := New(&bytes.Buffer{}, WithSize(0, -3))
	if r.width != defaultWidth || r.height != defaultHeight {
		t.Errorf("expected defaults, got %dx%d", r.width, r.height)
	}
}

func TestTrialChartNonFinite(t *testing.T) {
	var harm, nonlin sweep.Trajectory
	for i := 0; i < 10; i++ {
		harm.Append(float64(i), math.Cos(float64(i)))
		nonlin.Append(float64(i), math.NaN())
	}

	r := New(&bytes.Buffer{})
	got := r.trialChart(&sweep.TrialResult{Harmonic: harm, Real: nonlin})
	if !strings.Contains(got, "non-finite") {
		t.Errorf("expected chart to be skipped, got %q", got)
	}
}

func TestSummaryTable(t *testing.T) {
	sum := sweep.Summary{
		{Amplitude: math.Pi / 6, HarmonicPeriod: 4.0121, RealPeriod: 4.0817, Ratio: 1.01735, PercentDiff: 1.735},
		{Amplitude: math.Pi / 3, HarmonicPeriod: 4.0121, RealPeriod: 4.3, Ratio: 1.0718, PercentDiff: 7.18},
	}

	out := SummaryTable(sum)
	for _, want := range []string{"AMPLITUDE", "RATIO", "30.0°", "60.0°", "1.01735", "+7.180"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryTableEmpty(t *testing.T) {
	if out := SummaryTable(nil); !strings.Contains(out, "no amplitude") {
		t.Errorf("unexpected empty table output %q", out)
	}
}

func TestOnSweep(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.OnSweep(sweep.Summary{
		{Amplitude: math.Pi / 6, Ratio: 1.017},
		{Amplitude: math.Pi / 3, Ratio: 1.073},
		{Amplitude: math.Pi / 2, Ratio: 1.18},
	})

	if !strings.Contains(buf.String(), "T_real / T_harmonic") {
		t.Errorf("expected ratio chart:\n%s", buf.String())
	}
}
