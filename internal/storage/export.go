package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"
)

// samples marshals as a JSON array with null in place of NaN and Inf.
type samples []float64

func (s samples) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, len(s)*10+2)
	buf = append(buf, '[')
	for i, v := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf = append(buf, "null"...)
			continue
		}
		buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
	}
	return append(buf, ']'), nil
}

type TrialExport struct {
	TrialMetadata
	Times    samples `json:"times"`
	Harmonic samples `json:"harmonic"`
	Real     samples `json:"real"`
}

type ExportData struct {
	RunMetadata
	Trials []TrialExport `json:"trials"`
}

// ExportJSON writes a stored run, trajectories included, to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Trials:      make([]TrialExport, 0, len(meta.Trials)),
	}

	for _, tm := range meta.Trials {
		harmonic, nonlin, err := s.LoadTrajectories(runID, tm.Index)
		if err != nil {
			return err
		}
		data.Trials = append(data.Trials, TrialExport{
			TrialMetadata: tm,
			Times:         harmonic.Times,
			Harmonic:      harmonic.Angles,
			Real:          nonlin.Angles,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes every trial of a run as one long-format table.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"trial", "amplitude_deg", "time", "harmonic", "real"}); err != nil {
		return err
	}

	for _, tm := range meta.Trials {
		harmonic, nonlin, err := s.LoadTrajectories(runID, tm.Index)
		if err != nil {
			return err
		}
		for i := range harmonic.Times {
			row := []string{
				strconv.Itoa(tm.Index),
				formatFloat(tm.AmplitudeDeg),
				formatFloat(harmonic.Times[i]),
				formatFloat(harmonic.Angles[i]),
				formatFloat(nonlin.Angles[i]),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
