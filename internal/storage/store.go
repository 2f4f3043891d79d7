package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/pendsweep/internal/config"
	"github.com/san-kum/pendsweep/internal/dynamo"
	"github.com/san-kum/pendsweep/internal/sweep"
)

const (
	metadataFile = "metadata.json"
	summaryFile  = "summary.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// TrialMetadata describes one stored trial. Undetermined or non-finite
// values are null.
type TrialMetadata struct {
	Index          int                 `json:"index"`
	AmplitudeDeg   float64             `json:"amplitude_deg"`
	File           string              `json:"file"`
	Samples        int                 `json:"samples"`
	HarmonicPeriod *float64            `json:"harmonic_period"`
	RealPeriod     *float64            `json:"real_period"`
	ExactPeriod    *float64            `json:"exact_period,omitempty"`
	Metrics        map[string]*float64 `json:"metrics"`
	Fault          string              `json:"fault,omitempty"`
}

type SummaryRow struct {
	AmplitudeDeg   float64 `json:"amplitude_deg"`
	HarmonicPeriod float64 `json:"harmonic_period"`
	RealPeriod     float64 `json:"real_period"`
	Ratio          float64 `json:"ratio"`
	PercentDiff    float64 `json:"percent_diff"`
}

type RunMetadata struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Config    *config.Config  `json:"config"`
	Trials    []TrialMetadata `json:"trials"`
	Summary   []SummaryRow    `json:"summary"`
}

func newRunID(now time.Time) string {
	return fmt.Sprintf("sweep_%s_%s", now.Format("20060102-150405"), uuid.NewString()[:8])
}

func trialFile(index int) string {
	return fmt.Sprintf("trial_%02d.csv", index)
}

// Save writes a sweep to a new run directory and returns its id.
func (s *Store) Save(cfg *config.Config, result *sweep.Result) (string, error) {
	now := time.Now()
	runID := newRunID(now)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: now,
		Config:    cfg,
		Trials:    make([]TrialMetadata, 0, len(result.Trials)),
		Summary:   make([]SummaryRow, 0, len(result.Summary)),
	}

	for _, tr := range result.Trials {
		tm := TrialMetadata{
			Index:          tr.Index,
			AmplitudeDeg:   tr.AmplitudeDeg(),
			File:           trialFile(tr.Index),
			Samples:        tr.Real.Len(),
			HarmonicPeriod: optional(tr.HarmonicPeriod, tr.HarmonicOK),
			RealPeriod:     optional(tr.RealPeriod, tr.RealOK),
			ExactPeriod:    optional(tr.ExactPeriod, tr.ExactOK),
		}
		tm.Metrics = make(map[string]*float64, len(tr.Metrics))
		for name, v := range tr.Metrics {
			tm.Metrics[name] = optional(v, true)
		}
		if tr.Fault != nil {
			tm.Fault = tr.Fault.Error()
		}
		meta.Trials = append(meta.Trials, tm)

		if err := writeTrajectories(filepath.Join(runDir, tm.File), tr.Harmonic, tr.Real); err != nil {
			return "", err
		}
	}

	for _, e := range result.Summary {
		meta.Summary = append(meta.Summary, SummaryRow{
			AmplitudeDeg:   e.Amplitude * 180 / math.Pi,
			HarmonicPeriod: e.HarmonicPeriod,
			RealPeriod:     e.RealPeriod,
			Ratio:          e.Ratio,
			PercentDiff:    e.PercentDiff,
		})
	}

	if err := writeSummary(filepath.Join(runDir, summaryFile), meta.Summary); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	return runID, nil
}

func optional(v float64, ok bool) *float64 {
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// closeFile closes f, reporting its error unless err is already set.
func closeFile(f *os.File, err *error) {
	if cerr := f.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

func writeJSON(path string, v any) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(file, &err)

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrajectories(path string, harmonic, nonlin sweep.Trajectory) (err error) {
	if len(harmonic.Times) != len(harmonic.Angles) ||
		len(nonlin.Times) != len(nonlin.Angles) ||
		harmonic.Len() != nonlin.Len() {
		return fmt.Errorf("%w: harmonic has %d times/%d angles, real has %d times/%d angles",
			dynamo.ErrDimensionMismatch,
			len(harmonic.Times), len(harmonic.Angles), len(nonlin.Times), len(nonlin.Angles))
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(file, &err)

	w := csv.NewWriter(file)
	if err := w.Write([]string{"time", "harmonic", "real"}); err != nil {
		return err
	}

	for i := range harmonic.Times {
		row := []string{
			formatFloat(harmonic.Times[i]),
			formatFloat(harmonic.Angles[i]),
			formatFloat(nonlin.Angles[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func writeSummary(path string, rows []SummaryRow) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(file, &err)

	w := csv.NewWriter(file)
	if err := w.Write([]string{"amplitude_deg", "harmonic_period", "real_period", "ratio", "percent_diff"}); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			formatFloat(r.AmplitudeDeg),
			formatFloat(r.HarmonicPeriod),
			formatFloat(r.RealPeriod),
			formatFloat(r.Ratio),
			formatFloat(r.PercentDiff),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns stored runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectories reads back the harmonic and real trajectories of one
// trial.
func (s *Store) LoadTrajectories(runID string, index int) (harmonic, nonlin sweep.Trajectory, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trialFile(index)))
	if err != nil {
		return harmonic, nonlin, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if errors.Is(err, csv.ErrFieldCount) {
		return harmonic, nonlin, fmt.Errorf("%w: %v", dynamo.ErrDimensionMismatch, err)
	}
	if err != nil {
		return harmonic, nonlin, err
	}

	for i := 1; i < len(records); i++ {
		vals := [3]float64{}
		for j, field := range records[i] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return harmonic, nonlin, fmt.Errorf("%s line %d: %w", trialFile(index), i+1, err)
			}
			vals[j] = v
		}
		harmonic.Append(vals[0], vals[1])
		nonlin.Append(vals[0], vals[2])
	}

	return harmonic, nonlin, nil
}

// LoadResult rebuilds the sweep result of a stored run. Values stored as
// null come back undetermined.
func (s *Store) LoadResult(runID string) (*RunMetadata, *sweep.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	result := &sweep.Result{
		Trials:  make([]*sweep.TrialResult, 0, len(meta.Trials)),
		Summary: make(sweep.Summary, 0, len(meta.Summary)),
	}
	if meta.Config != nil {
		result.Params = meta.Config.Params()
	}

	for _, tm := range meta.Trials {
		harmonic, nonlin, err := s.LoadTrajectories(runID, tm.Index)
		if err != nil {
			return nil, nil, err
		}

		tr := &sweep.TrialResult{
			Index:     tm.Index,
			Amplitude: tm.AmplitudeDeg * math.Pi / 180,
			Harmonic:  harmonic,
			Real:      nonlin,
			Metrics:   make(map[string]float64, len(tm.Metrics)),
		}
		tr.HarmonicPeriod, tr.HarmonicOK = value(tm.HarmonicPeriod)
		tr.RealPeriod, tr.RealOK = value(tm.RealPeriod)
		tr.ExactPeriod, tr.ExactOK = value(tm.ExactPeriod)
		for name, v := range tm.Metrics {
			if v == nil {
				tr.Metrics[name] = math.Inf(1)
				continue
			}
			tr.Metrics[name] = *v
		}
		if tm.Fault != "" {
			tr.Fault = errors.New(tm.Fault)
		}
		result.Trials = append(result.Trials, tr)
	}

	for _, row := range meta.Summary {
		result.Summary = append(result.Summary, sweep.SummaryEntry{
			Amplitude:      row.AmplitudeDeg * math.Pi / 180,
			HarmonicPeriod: row.HarmonicPeriod,
			RealPeriod:     row.RealPeriod,
			Ratio:          row.Ratio,
			PercentDiff:    row.PercentDiff,
		})
	}

	return meta, result, nil
}

func value(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
