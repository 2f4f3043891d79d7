// Package analysis extracts oscillation periods from sampled trajectories
// and provides reference values to check them against.
//
//   - [FindPeaks]: strict local maxima with a minimum sample separation
//   - [EstimatePeriod]: mean peak-to-peak spacing of a trajectory
//   - [SpectralPeriod]: dominant period from the power spectrum
//   - [SmallAnglePeriod], [ExactPeriod]: analytic pendulum periods
//
// # Undetermined periods
//
// A trajectory that never completes a full oscillation has no period.
// Estimators report this with a false second return value rather than an
// error:
//
//	period, ok := analysis.EstimatePeriod(angles, times, analysis.DefaultPeakDistance)
//	if !ok {
//	    // exclude the trial
//	}
package analysis
