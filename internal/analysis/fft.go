package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first len(data)/2 frequency
// bins of a real signal. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// SpectralPeriod estimates the dominant period of a uniformly sampled signal
// from its power spectrum. The mean is removed first; the peak bin is
// refined by parabolic interpolation.
func SpectralPeriod(samples []float64, dt float64) (float64, bool) {
	if len(samples) < 4 || !(dt > 0) {
		return 0, false
	}

	mean, _ := Mean(samples)
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return 0, false
	}

	centered := make([]float64, len(samples))
	for i, v := range samples {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)

	maxIdx := 0
	maxPower := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0, false
	}

	bin := float64(maxIdx)
	if maxIdx+1 < len(ps) {
		a, b, c := ps[maxIdx-1], ps[maxIdx], ps[maxIdx+1]
		if den := a - 2*b + c; den != 0 {
			bin += 0.5 * (a - c) / den
		}
	}

	freq := bin / (float64(len(samples)) * dt)
	return 1 / freq, true
}
