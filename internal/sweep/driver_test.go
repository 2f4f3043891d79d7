package sweep

import (
	"bytes"
	"context"
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendsweep/internal/analysis"
	"github.com/san-kum/pendsweep/internal/dynamo"
	"github.com/san-kum/pendsweep/internal/integrators"
	"github.com/san-kum/pendsweep/internal/logger"
)

func deg(d float64) float64 { return d * math.Pi / 180 }

var _ = Describe("Driver", func() {
	var (
		params Params
		sink   *recordingSink
		logs   *bytes.Buffer
	)

	newDriver := func(opts ...Option) *Driver {
		opts = append([]Option{WithSink(sink), WithLogger(logger.NewText("debug", logs))}, opts...)
		d, err := New(params, opts...)
		Expect(err).NotTo(HaveOccurred())
		return d
	}

	BeforeEach(func() {
		params = DefaultParams()
		sink = &recordingSink{}
		logs = &bytes.Buffer{}
	})

	Describe("configuration", func() {
		It("rejects invalid parameters before running anything", func() {
			params.Length = 0
			d, err := New(params, WithSink(sink))
			Expect(d).To(BeNil())
			Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
			Expect(sink.steps).To(BeZero())
		})
	})

	Describe("a 30 degree trial", func() {
		var res *TrialResult

		BeforeEach(func() {
			res = newDriver().RunTrial(0, deg(30))
		})

		It("records one sample per step in each trajectory", func() {
			Expect(res.Harmonic.Len()).To(Equal(900))
			Expect(res.Real.Len()).To(Equal(900))
			Expect(res.Harmonic.Times[0]).To(Equal(0.0))
			Expect(res.Harmonic.Angles[0]).To(Equal(deg(30)))
		})

		It("estimates the harmonic period close to 2π√(L/g)", func() {
			Expect(res.HarmonicOK).To(BeTrue())
			Expect(res.HarmonicPeriod).To(BeNumerically("~", analysis.SmallAnglePeriod(9.81, 4.0), 0.02*4.01))
		})

		It("finds the real pendulum slower than the harmonic one by a few percent", func() {
			Expect(res.Determined()).To(BeTrue())
			Expect(res.RealPeriod).To(BeNumerically(">", res.HarmonicPeriod))
			Expect(res.PercentDiff()).To(BeNumerically(">", 0))
			Expect(res.PercentDiff()).To(BeNumerically("<", 5))
		})

		It("agrees with the analytic period of the nonlinear pendulum", func() {
			Expect(res.ExactOK).To(BeTrue())
			Expect(res.RealPeriod).To(BeNumerically("~", res.ExactPeriod, 0.01*res.ExactPeriod))
		})

		It("conserves energy with RK4", func() {
			Expect(res.Metrics).To(HaveKey("energy_drift"))
			Expect(res.Metrics["energy_drift"]).To(BeNumerically("<", 1e-5))
			Expect(res.Fault).NotTo(HaveOccurred())
		})

		It("records the mean energy of the released pendulum", func() {
			// unit mass released from rest: E = m·g·L·(1 - cos θ₀)
			want := 9.81 * 4.0 * (1 - math.Cos(deg(30)))
			Expect(res.Metrics).To(HaveKey("energy"))
			Expect(res.Metrics["energy"]).To(BeNumerically("~", want, 1e-4*want))
		})

		It("streams every frame before the trial result", func() {
			Expect(sink.steps).To(Equal(900))
			Expect(sink.trials).To(HaveLen(1))
			Expect(sink.sweeps).To(BeEmpty())
		})
	})

	Describe("a full sweep", func() {
		var res *Result

		BeforeEach(func() {
			var err error
			res, err = newDriver().Run(context.Background(), []float64{deg(30), deg(60), deg(90)})
			Expect(err).NotTo(HaveOccurred())
		})

		It("summarises every trial in sweep order", func() {
			Expect(res.Trials).To(HaveLen(3))
			Expect(res.Summary).To(HaveLen(3))
			for i, a := range []float64{30, 60, 90} {
				Expect(res.Summary[i].Amplitude).To(Equal(deg(a)))
			}
		})

		It("shows the deviation growing with amplitude", func() {
			s := res.Summary
			Expect(s[0].PercentDiff).To(BeNumerically("<", s[1].PercentDiff))
			Expect(s[1].PercentDiff).To(BeNumerically("<", s[2].PercentDiff))
			Expect(s[2].PercentDiff).To(BeNumerically(">", 10))
		})

		It("reports ratio and percent difference consistently", func() {
			for _, e := range res.Summary {
				Expect(e.Ratio).To(BeNumerically("~", e.RealPeriod/e.HarmonicPeriod, 1e-12))
				Expect(e.PercentDiff).To(BeNumerically("~", (e.Ratio-1)*100, 1e-9))
			}
		})

		It("emits the summary once at the end", func() {
			Expect(sink.steps).To(Equal(3 * 900))
			Expect(sink.trials).To(HaveLen(3))
			Expect(sink.sweeps).To(HaveLen(1))
			Expect(sink.sweeps[0]).To(Equal(res.Summary))
		})
	})

	Describe("trial isolation", func() {
		It("produces identical trajectories for a repeated amplitude", func() {
			res, err := newDriver().Run(context.Background(), []float64{deg(45), deg(80), deg(45)})
			Expect(err).NotTo(HaveOccurred())

			first, last := res.Trials[0], res.Trials[2]
			Expect(last.Real.Angles).To(Equal(first.Real.Angles))
			Expect(last.Harmonic.Times).To(Equal(first.Harmonic.Times))
			Expect(last.RealPeriod).To(Equal(first.RealPeriod))
		})

		It("gives each trial its own buffers", func() {
			d := newDriver()
			a := d.NewTrial(0, deg(30))
			b := d.NewTrial(1, deg(60))
			a.Step()
			Expect(a.Real.Len()).To(Equal(1))
			Expect(b.Real.Len()).To(BeZero())
			Expect(b.Time()).To(BeZero())
		})
	})

	Describe("stepping by hand", func() {
		It("refuses to finalize a partial trial", func() {
			tr := newDriver().NewTrial(0, deg(30))
			tr.Step()
			_, err := tr.Finalize()
			Expect(err).To(MatchError(ErrTrialIncomplete))
		})

		It("stops producing frames once done", func() {
			params.Duration = 0.1
			params.Dt = 0.05
			tr := newDriver().NewTrial(0, deg(10))

			f, ok := tr.Step()
			Expect(ok).To(BeTrue())
			Expect(f.Time).To(Equal(0.0))
			Expect(f.Harmonic[0]).To(Equal(deg(10)))

			f, ok = tr.Step()
			Expect(ok).To(BeTrue())
			Expect(f.Step).To(Equal(1))
			Expect(f.Time).To(Equal(0.05))

			_, ok = tr.Step()
			Expect(ok).To(BeFalse())
			Expect(tr.Done()).To(BeTrue())
		})

		It("matches a sweep driven through Run", func() {
			d := newDriver()
			tr := d.NewTrial(0, deg(60))
			for !tr.Done() {
				tr.Step()
			}
			manual, err := tr.Finalize()
			Expect(err).NotTo(HaveOccurred())

			res := d.RunTrial(0, deg(60))
			Expect(manual.Real.Angles).To(Equal(res.Real.Angles))
			Expect(manual.RealPeriod).To(Equal(res.RealPeriod))
		})
	})

	Describe("excluded trials", func() {
		It("drops overdamped motion from the summary without failing", func() {
			params.Damping = 5
			res, err := newDriver().Run(context.Background(), []float64{deg(30), deg(60)})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Trials).To(HaveLen(2))
			Expect(res.Summary).To(BeEmpty())
			Expect(res.Trials[0].HarmonicOK).To(BeTrue())
			Expect(res.Trials[0].RealOK).To(BeFalse())
			Expect(res.Trials[0].ExactOK).To(BeFalse())
			Expect(sink.sweeps).To(HaveLen(1))
			Expect(logs.String()).To(ContainSubstring("trial excluded"))
		})

		It("drops trials too short for two oscillations", func() {
			params.Duration = 3
			res, err := newDriver().Run(context.Background(), []float64{deg(30)})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Summary).To(BeEmpty())
			Expect(res.Trials[0].HarmonicOK).To(BeFalse())
		})

		It("keeps going after a non-finite real state", func() {
			params.Damping = math.Inf(1)
			res, err := newDriver().Run(context.Background(), []float64{deg(30), deg(60)})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Trials).To(HaveLen(2))
			Expect(res.Summary).To(BeEmpty())
			Expect(res.Trials[0].Fault).To(HaveOccurred())
			Expect(res.Trials[0].RealOK).To(BeFalse())
			Expect(math.IsNaN(res.Trials[0].Real.Angles[10])).To(BeTrue())
		})

		It("keeps the determined trials around an excluded one", func() {
			res, err := newDriver().Run(context.Background(), []float64{deg(30), math.Pi, deg(60)})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Trials).To(HaveLen(3))
			Expect(res.Summary).To(HaveLen(2))
			Expect(res.Summary[1].Amplitude).To(Equal(deg(60)))
		})
	})

	Describe("cancellation", func() {
		It("stops between trials and never inside one", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sink := &recordingSink{}
			stopper := cancelOnTrial{cancel: cancel}
			d, err := New(params, WithSink(Sinks{sink, stopper}), WithLogger(logger.NewText("error", logs)))
			Expect(err).NotTo(HaveOccurred())

			res, err := d.Run(ctx, []float64{deg(30), deg(60), deg(90)})
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.Trials).To(HaveLen(1))
			Expect(res.Trials[0].Real.Len()).To(Equal(900))
			Expect(sink.steps).To(Equal(900))
			Expect(sink.sweeps).To(BeEmpty())
		})
	})

	Describe("integrator choice", func() {
		It("is independent of the sink and pacing", func() {
			plain := newDriver().RunTrial(0, deg(60))

			paced, err := New(params, WithSink(Paced(context.Background(), &recordingSink{}, 1e9)), WithLogger(logger.NewText("error", logs)))
			Expect(err).NotTo(HaveOccurred())
			res := paced.RunTrial(0, deg(60))

			Expect(res.Real.Angles).To(Equal(plain.Real.Angles))
		})

		It("finishes a paced trial at full speed after cancellation", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			params.Duration = 5
			d, err := New(params, WithSink(Paced(ctx, &recordingSink{}, 1/params.Dt)), WithLogger(logger.NewText("error", logs)))
			Expect(err).NotTo(HaveOccurred())

			start := time.Now()
			res := d.RunTrial(0, deg(30))
			Expect(time.Since(start)).To(BeNumerically("<", time.Second))
			Expect(res.Real.Len()).To(Equal(params.Steps()))
		})

		It("lets euler drift in energy where rk4 does not", func() {
			integ, err := integrators.Get("euler")
			Expect(err).NotTo(HaveOccurred())

			res := newDriver(WithIntegrator(integ)).RunTrial(0, deg(30))
			Expect(res.Metrics["energy_drift"]).To(BeNumerically(">", 1e-3))
		})
	})
})
