package problem_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/param"
	"github.com/san-kum/ivp/internal/problem"
)

var _ = Describe("Ensemble", func() {
	var (
		equ  *equation.HODE[float64]
		ics  []equation.InitialConditions[float64]
		recs []param.Parameters
	)

	BeforeEach(func() {
		var err error
		equ, err = equation.NewHODE[float64](hodeV, hodeF, hodeH, equation.WithParameters(schema))
		Expect(err).NotTo(HaveOccurred())

		ics = []equation.InitialConditions[float64]{
			{equation.KeyQ: {0.5}, equation.KeyP: {0.0}},
			{equation.KeyQ: {1.0}, equation.KeyP: {0.1}},
			{equation.KeyQ: {1.5}, equation.KeyP: {0.2}},
		}
		recs = []param.Parameters{
			param.Record{"k": 0.5},
			param.Record{"k": 1.0},
			param.Record{"k": 2.0},
		}
	})

	It("broadcasts a single parameter record", func() {
		ens, err := problem.NewEnsemble[float64](equ, span, step, ics, recs[:1])
		Expect(err).NotTo(HaveOccurred())
		Expect(ens.NSamples()).To(Equal(3))

		var i int
		for prob, err := range ens.All() {
			Expect(err).NotTo(HaveOccurred())

			want, err := problem.New[float64](equ, span, step, ics[i], recs[0])
			Expect(err).NotTo(HaveOccurred())
			Expect(prob.Equation()).To(BeIdenticalTo(want.Equation()))
			Expect(prob.Span()).To(Equal(want.Span()))
			Expect(prob.Step()).To(Equal(want.Step()))
			Expect(prob.InitialConditions()).To(Equal(want.InitialConditions()))
			Expect(prob.Parameters()).To(Equal(want.Parameters()))
			i++
		}
		Expect(i).To(Equal(3))
	})

	It("broadcasts a single initial condition", func() {
		ens, err := problem.NewEnsemble[float64](equ, span, step, ics[:1], recs)
		Expect(err).NotTo(HaveOccurred())
		Expect(ens.NSamples()).To(Equal(3))
		for i := range 3 {
			Expect(ens.InitialCondition(i)).To(Equal(ics[0]))
			Expect(ens.Parameter(i)).To(Equal(recs[i]))
		}
	})

	It("round-trips every entry", func() {
		ens, err := problem.NewEnsemble[float64](equ, span, step, ics, recs)
		Expect(err).NotTo(HaveOccurred())

		for i := range ens.NSamples() {
			prob, err := ens.Problem(i)
			Expect(err).NotTo(HaveOccurred())
			Expect(prob.Equation()).To(BeIdenticalTo(ens.Equation()))
			Expect(prob.InitialConditions()).To(Equal(ens.InitialCondition(i)))
			Expect(prob.Parameters()).To(Equal(ens.Parameter(i)))
		}

		_, err = ens.Problem(3)
		Expect(err).To(HaveOccurred())
	})

	It("can be iterated more than once", func() {
		ens, err := problem.NewEnsemble[float64](equ, span, step, ics, recs)
		Expect(err).NotTo(HaveOccurred())

		count := func() int {
			n := 0
			for range ens.All() {
				n++
			}
			return n
		}
		Expect(count()).To(Equal(3))
		Expect(count()).To(Equal(3))
	})

	It("fails on collections of unequal length", func() {
		_, err := problem.NewEnsemble[float64](equ, span, step, ics, recs[:2])
		Expect(err).To(MatchError(equation.ErrCardinalityMismatch))
	})

	It("fails on initial conditions of different structure", func() {
		ics[2] = equation.InitialConditions[float64]{equation.KeyQ: {1, 2}, equation.KeyP: {0, 0}}
		_, err := problem.NewEnsemble[float64](equ, span, step, ics, recs)
		Expect(err).To(MatchError(equation.ErrCardinalityMismatch))
	})

	It("fails without initial conditions", func() {
		_, err := problem.NewEnsemble[float64](equ, span, step, nil, recs)
		Expect(err).To(MatchError(equation.ErrCardinalityMismatch))
	})

	It("validates the first entry structurally", func() {
		delete(ics[0], equation.KeyP)
		_, err := problem.NewEnsemble[float64](equ, span, step, ics, recs)
		Expect(err).To(MatchError(equation.ErrShapeMismatch))
	})

	It("checks the roles against the first entry", func() {
		bad, err := equation.NewHODE[float64](func(out []float64, _ float64) {}, hodeF, hodeH, equation.WithParameters(schema))
		Expect(err).NotTo(HaveOccurred())

		ens, err := problem.NewEnsemble[float64](bad, span, step, ics, recs)
		Expect(err).To(MatchError(equation.ErrSignatureMismatch))
		Expect(ens).To(BeNil())
	})

	It("checks the parameters of the first entry", func() {
		recs[0] = param.Record{}
		_, err := problem.NewEnsemble[float64](equ, span, step, ics, recs)
		Expect(err).To(MatchError(equation.ErrParameterMismatch))
	})

	It("checks broadcast parameters once", func() {
		_, err := problem.NewEnsemble[float64](equ, span, step, ics, []param.Parameters{param.Record{}})
		Expect(err).To(MatchError(equation.ErrParameterMismatch))
	})

	It("defers parameter validation of later entries", func() {
		recs[1] = param.Record{}
		ens, err := problem.NewEnsemble[float64](equ, span, step, ics, recs)
		Expect(err).NotTo(HaveOccurred())

		_, err = ens.Problem(1)
		Expect(err).To(MatchError(equation.ErrParameterMismatch))
	})

	It("broadcasts no parameters when none are given", func() {
		plain, err := equation.NewPODE[float64](
			func(out []float64, _ float64, _, p []float64) { copy(out, p) },
			func(out []float64, _ float64, q, _ []float64) { copy(out, q) },
		)
		Expect(err).NotTo(HaveOccurred())

		ens, err := problem.NewEnsemble[float64](plain, span, step, ics, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(ens.Parameter(2)).To(Equal(param.NullParameters{}))
	})

	Context("Each", func() {
		It("visits every entry in parallel", func() {
			ens, err := problem.NewPODEEnsemble[float64](hodeV, hodeF, span, step, ics, recs,
				problem.WithEquation(equation.WithParameters(schema)))
			Expect(err).NotTo(HaveOccurred())

			var (
				mu   sync.Mutex
				seen = make(map[int]float64)
			)
			err = ens.Each(context.Background(), 2, func(_ context.Context, i int, p *problem.Problem[float64]) error {
				f, _ := p.Functions().Field("f")
				out := make([]float64, 1)
				ic := p.InitialConditions()
				f(out, 0, ic[equation.KeyQ], ic[equation.KeyP])

				mu.Lock()
				seen[i] = out[0]
				mu.Unlock()
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(Equal(map[int]float64{0: -0.25, 1: -1.0, 2: -3.0}))
		})

		It("stops at the first error", func() {
			ens, err := problem.NewEnsemble[float64](equ, span, step, ics, recs)
			Expect(err).NotTo(HaveOccurred())

			boom := errors.New("boom")
			err = ens.Each(context.Background(), 1, func(_ context.Context, i int, _ *problem.Problem[float64]) error {
				if i == 0 {
					return boom
				}
				return nil
			})
			Expect(err).To(MatchError(boom))
		})

		It("honours cancellation", func() {
			ens, err := problem.NewEnsemble[float64](equ, span, step, ics, recs)
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			var calls atomic.Int32
			err = ens.Each(ctx, 0, func(context.Context, int, *problem.Problem[float64]) error {
				calls.Add(1)
				return nil
			})
			Expect(err).To(MatchError(context.Canceled))
			Expect(calls.Load()).To(BeZero())
		})
	})
})

var _ = Describe("Ensemble constructors", func() {
	wrong := func(out []float64, _ float64) {}
	ics := []equation.InitialConditions[float64]{
		{equation.KeyQ: {1}, equation.KeyP: {0}, equation.KeyLambda: {0}},
		{equation.KeyQ: {2}, equation.KeyP: {0}, equation.KeyLambda: {0}},
	}

	DescribeTable("reject a role of the wrong arity",
		func(build func() (*problem.Ensemble[float64], error)) {
			ens, err := build()
			Expect(err).To(MatchError(equation.ErrSignatureMismatch))
			Expect(ens).To(BeNil())
		},
		Entry("ODE", func() (*problem.Ensemble[float64], error) {
			return problem.NewODEEnsemble[float64](wrong, span, step, ics, nil)
		}),
		Entry("PODE", func() (*problem.Ensemble[float64], error) {
			return problem.NewPODEEnsemble[float64](wrong, wrong, span, step, ics, nil)
		}),
		Entry("HODE", func() (*problem.Ensemble[float64], error) {
			return problem.NewHODEEnsemble[float64](wrong, wrong, wrong, span, step, ics, nil)
		}),
		Entry("IODE", func() (*problem.Ensemble[float64], error) {
			return problem.NewIODEEnsemble[float64](wrong, wrong, wrong, wrong, span, step, ics, nil)
		}),
		Entry("LODE", func() (*problem.Ensemble[float64], error) {
			return problem.NewLODEEnsemble[float64](wrong, wrong, wrong, wrong, wrong, span, step, ics, nil)
		}),
		Entry("SODE", func() (*problem.Ensemble[float64], error) {
			return problem.NewSODEEnsemble[float64]([]equation.SplitPhase{{V: wrong}}, span, step, ics, nil)
		}),
		Entry("DAE", func() (*problem.Ensemble[float64], error) {
			return problem.NewDAEEnsemble[float64](wrong, wrong, wrong, span, step, ics, nil)
		}),
		Entry("PDAE", func() (*problem.Ensemble[float64], error) {
			return problem.NewPDAEEnsemble[float64](wrong, wrong, wrong, wrong, wrong, span, step, ics, nil)
		}),
		Entry("HDAE", func() (*problem.Ensemble[float64], error) {
			return problem.NewHDAEEnsemble[float64](wrong, wrong, wrong, wrong, wrong, wrong, wrong, wrong, wrong, span, step, ics, nil)
		}),
		Entry("IDAE", func() (*problem.Ensemble[float64], error) {
			return problem.NewIDAEEnsemble[float64](wrong, wrong, wrong, wrong, wrong, wrong, span, step, ics, nil)
		}),
		Entry("LDAE", func() (*problem.Ensemble[float64], error) {
			return problem.NewLDAEEnsemble[float64](wrong, wrong, wrong, wrong, wrong, wrong, wrong, span, step, ics, nil)
		}),
		Entry("SDE", func() (*problem.Ensemble[float64], error) {
			return problem.NewSDEEnsemble[float64](wrong, wrong, 1, span, step, ics, nil)
		}),
		Entry("PSDE", func() (*problem.Ensemble[float64], error) {
			return problem.NewPSDEEnsemble[float64](wrong, wrong, wrong, wrong, 1, span, step, ics, nil)
		}),
		Entry("SPSDE", func() (*problem.Ensemble[float64], error) {
			return problem.NewSPSDEEnsemble[float64](wrong, wrong, wrong, wrong, wrong, wrong, 1, span, step, ics, nil)
		}),
	)
})
