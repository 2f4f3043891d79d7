package sweep

// Trajectory is an append-only record of (time, angle) samples in the order
// they were produced.
type Trajectory struct {
	Times  []float64
	Angles []float64
}

func newTrajectory(capacity int) Trajectory {
	return Trajectory{
		Times:  make([]float64, 0, capacity),
		Angles: make([]float64, 0, capacity),
	}
}

func (tr *Trajectory) Append(t, angle float64) {
	tr.Times = append(tr.Times, t)
	tr.Angles = append(tr.Angles, angle)
}

func (tr Trajectory) Len() int {
	return len(tr.Times)
}
