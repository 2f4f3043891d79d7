package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DefaultPeakDistance is the minimum number of samples between two accepted
// peaks. It is an index count, so its span in seconds scales with the step.
const DefaultPeakDistance = 5

// FindPeaks returns the indices of strict local maxima in samples, in
// increasing order. A maximum closer than minDistance samples to the last
// accepted peak is dropped; the earlier peak wins. Endpoints are never
// peaks, and NaN samples never compare greater than their neighbours.
func FindPeaks(samples []float64, minDistance int) []int {
	if minDistance < 1 {
		minDistance = 1
	}

	var peaks []int
	for i := 1; i < len(samples)-1; i++ {
		if !(samples[i] > samples[i-1] && samples[i] > samples[i+1]) {
			continue
		}
		if len(peaks) > 0 && i-peaks[len(peaks)-1] < minDistance {
			continue
		}
		peaks = append(peaks, i)
	}
	return peaks
}

// EstimatePeriod returns the mean spacing in time between successive peaks
// of samples. The boolean is false when the period is undetermined: fewer
// than two peaks, samples and times of different lengths, or a non-finite
// sample anywhere in the trajectory.
func EstimatePeriod(samples, times []float64, minDistance int) (float64, bool) {
	if len(samples) != len(times) || !finite(samples) {
		return 0, false
	}

	peaks := FindPeaks(samples, minDistance)
	if len(peaks) < 2 {
		return 0, false
	}

	intervals := make([]float64, 0, len(peaks)-1)
	for i := 1; i < len(peaks); i++ {
		intervals = append(intervals, times[peaks[i]]-times[peaks[i-1]])
	}

	return Mean(intervals)
}

// Mean is the arithmetic mean of xs; false for an empty slice.
func Mean(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	return stat.Mean(xs, nil), true
}

func finite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
