package analysis

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Period estimation", func() {
	const dt = 1.0 / 60

	sample := func(n int, f func(t float64) float64) ([]float64, []float64) {
		xs := make([]float64, n)
		ts := make([]float64, n)
		for i := range xs {
			ts[i] = float64(i) * dt
			xs[i] = f(ts[i])
		}
		return xs, ts
	}

	Context("closed-form small-angle trajectory", func() {
		It("recovers 2π/ω₀ to within one step", func() {
			g, l := 9.81, 4.0
			w0 := math.Sqrt(g / l)
			xs, ts := sample(900, func(t float64) float64 { return 0.5 * math.Cos(w0*t) })

			period, ok := EstimatePeriod(xs, ts, DefaultPeakDistance)
			Expect(ok).To(BeTrue())
			Expect(period).To(BeNumerically("~", SmallAnglePeriod(g, l), dt))
		})
	})

	Context("lightly damped oscillation", func() {
		It("is still determined and close to the damped period", func() {
			w := 2.0
			xs, ts := sample(1200, func(t float64) float64 { return math.Exp(-0.05*t) * math.Cos(w*t) })

			period, ok := EstimatePeriod(xs, ts, DefaultPeakDistance)
			Expect(ok).To(BeTrue())
			Expect(period).To(BeNumerically("~", 2*math.Pi/w, 2*dt))
		})
	})

	Context("monotone decay", func() {
		It("is undetermined", func() {
			xs, ts := sample(600, func(t float64) float64 { return math.Exp(-t) })

			_, ok := EstimatePeriod(xs, ts, DefaultPeakDistance)
			Expect(ok).To(BeFalse())
		})
	})

	Context("high-frequency ripple near a peak", func() {
		It("keeps only the earlier of two close maxima", func() {
			xs := []float64{0, 1, 0.5, 0.9, 0, -1, 0, 1, 0}
			Expect(FindPeaks(xs, 3)).To(Equal([]int{1, 7}))
			Expect(FindPeaks(xs, 1)).To(Equal([]int{1, 3, 7}))
		})
	})

	Context("trajectory that blew up", func() {
		It("is undetermined rather than wrong", func() {
			xs, ts := sample(600, math.Cos)
			xs[300] = math.Inf(1)

			_, ok := EstimatePeriod(xs, ts, DefaultPeakDistance)
			Expect(ok).To(BeFalse())
		})
	})

	Context("exact large-amplitude period", func() {
		It("approaches the small-angle period as the amplitude shrinks", func() {
			small := SmallAnglePeriod(9.81, 4.0)
			for _, a := range []float64{1e-2, 1e-3, 1e-4} {
				exact, ok := ExactPeriod(9.81, 4.0, a)
				Expect(ok).To(BeTrue())
				Expect(exact / small).To(BeNumerically("~", 1, a*a))
			}
		})

		It("agrees with the spectral estimate of the same signal", func() {
			w := 1.5
			xs, _ := sample(4000, func(t float64) float64 { return math.Cos(w * t) })

			period, ok := SpectralPeriod(xs, dt)
			Expect(ok).To(BeTrue())
			Expect(period).To(BeNumerically("~", 2*math.Pi/w, 0.02*2*math.Pi/w))
		})
	})
})
