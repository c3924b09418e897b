package problem_test

import (
	"math"
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/models"
	"github.com/san-kum/ivp/internal/param"
	"github.com/san-kum/ivp/internal/problem"
)

var (
	span = [2]float64{0, 1}
	step = 0.1
)

func hodeV(out []float64, _ float64, _, p []float64, _ param.Record) { out[0] = p[0] }

func hodeF(out []float64, _ float64, q, _ []float64, rec param.Record) {
	out[0] = -rec.Float("k") * q[0]
}

func hodeH(_ float64, q, p []float64, rec param.Record) float64 {
	return p[0]*p[0]/2 + rec.Float("k")*q[0]*q[0]/2
}

var schema = param.Schema{"k": param.KindFloat}

var _ = Describe("Problem", func() {
	var ics equation.InitialConditions[float64]

	BeforeEach(func() {
		ics = equation.InitialConditions[float64]{equation.KeyQ: {0.5}, equation.KeyP: {0.0}}
	})

	Context("harmonic oscillator", func() {
		It("binds v, f and the hamiltonian", func() {
			prob, err := problem.NewHODEProblem[float64](hodeV, hodeF, hodeH, span, step, ics,
				param.Record{"k": 0.5}, problem.WithEquation(equation.WithParameters(schema)))
			Expect(err).NotTo(HaveOccurred())

			fns := prob.Functions()
			v, ok := fns.Field("v")
			Expect(ok).To(BeTrue())
			f, ok := fns.Field("f")
			Expect(ok).To(BeTrue())
			h, ok := fns.Scalar("hamiltonian")
			Expect(ok).To(BeTrue())

			q, p := ics[equation.KeyQ], ics[equation.KeyP]
			outV, outF := make([]float64, 1), make([]float64, 1)
			v(outV, 0, q, p)
			f(outF, 0, q, p)
			Expect(outV).To(Equal([]float64{0}))
			Expect(outF).To(Equal([]float64{-0.25}))
			Expect(h(0, q, p)).To(Equal(0.0625))
		})

		It("exposes its accessors", func() {
			prob, err := problem.NewHODEProblem[float64](hodeV, hodeF, hodeH, span, step, ics,
				param.Record{"k": 0.5}, problem.WithEquation(
					equation.WithParameters(schema),
					equation.WithInvariants(equation.Invariants{"energy": hodeH}),
				))
			Expect(err).NotTo(HaveOccurred())

			Expect(prob.Equation().Kind()).To(Equal(equation.KindHODE))
			Expect(prob.Span()).To(Equal(span))
			Expect(prob.Step()).To(Equal(step))
			Expect(prob.InitialConditions()).To(Equal(ics))
			Expect(prob.Parameters()).To(Equal(param.Record{"k": 0.5}))
			Expect(prob.Invariants()).To(HaveKey("energy"))
			Expect(prob.Periodicity()).To(Equal(equation.NullPeriodicity{}))
			Expect(prob.Datatype()).To(Equal(reflect.TypeFor[float64]()))
			Expect(prob.ArrType()).To(Equal(reflect.TypeFor[[]float64]()))
			Expect(prob.NSamples()).To(Equal(1))
			Expect(prob.NConstraints()).To(Equal(0))
			Expect(prob.Solutions()).To(HaveKey("energy"))
		})

		It("copies its initial conditions", func() {
			prob, err := problem.NewHODEProblem[float64](hodeV, hodeF, hodeH, span, step, ics,
				param.Record{"k": 0.5}, problem.WithEquation(equation.WithParameters(schema)))
			Expect(err).NotTo(HaveOccurred())

			ics[equation.KeyQ][0] = 9
			Expect(prob.InitialConditions()[equation.KeyQ]).To(Equal([]float64{0.5}))
		})
	})

	DescribeTable("rejects invalid timing",
		func(span [2]float64, step float64) {
			_, err := problem.NewPODEProblem[float64](hodeV, hodeF, span, step, ics,
				param.Record{"k": 0.5}, problem.WithEquation(equation.WithParameters(schema)))
			Expect(err).To(MatchError(equation.ErrArgumentMismatch))
		},
		Entry("zero step", [2]float64{0, 1}, 0.0),
		Entry("negative step", [2]float64{0, 1}, -0.1),
		Entry("NaN step", [2]float64{0, 1}, math.NaN()),
		Entry("infinite endpoint", [2]float64{0, math.Inf(1)}, 0.1),
	)

	It("accepts an empty time span", func() {
		_, err := problem.NewPODEProblem[float64](hodeV, hodeF, [2]float64{1, 1}, step, ics,
			param.Record{"k": 0.5}, problem.WithEquation(equation.WithParameters(schema)))
		Expect(err).NotTo(HaveOccurred())
	})

	It("fails on a missing key", func() {
		delete(ics, equation.KeyP)
		_, err := problem.NewPODEProblem[float64](hodeV, hodeF, span, step, ics,
			param.Record{"k": 0.5}, problem.WithEquation(equation.WithParameters(schema)))
		Expect(err).To(MatchError(equation.ErrShapeMismatch))
	})

	It("fails on a role of the wrong arity", func() {
		bad := func(out []float64, _ float64, q []float64) {}
		_, err := problem.NewPODEProblem[float64](bad, hodeF, span, step, ics,
			param.Record{"k": 0.5}, problem.WithEquation(equation.WithParameters(schema)))
		Expect(err).To(MatchError(equation.ErrSignatureMismatch))

		var ve *equation.ValidationError
		Expect(err).To(BeAssignableToTypeOf(ve))
	})

	It("fails on missing parameters", func() {
		_, err := problem.NewPODEProblem[float64](hodeV, hodeF, span, step, ics,
			nil, problem.WithEquation(equation.WithParameters(schema)))
		Expect(err).To(MatchError(equation.ErrParameterMismatch))
	})

	It("fails on a nil equation", func() {
		_, err := problem.New[float64](nil, span, step, ics, nil)
		Expect(err).To(HaveOccurred())
	})

	It("is built for every oscillator variant", func() {
		osc := models.NewOscillator()
		for _, kind := range osc.Kinds() {
			equ, err := osc.Equation(kind)
			Expect(err).NotTo(HaveOccurred())
			ics, err := osc.Conditions(kind)
			Expect(err).NotTo(HaveOccurred())

			prob, err := problem.New(equ, span, step, ics, osc.Record())
			Expect(err).NotTo(HaveOccurred(), kind.String())
			Expect(prob.Solutions()).To(HaveKey("energy"))
			Expect(prob.NConstraints()).To(Equal(len(ics[equation.KeyLambda])))
		}
	})
})

var _ = Describe("ParseTiming", func() {
	It("promotes loosely typed values", func() {
		tm, err := problem.ParseTiming(0, "2.5", float32(0.5))
		Expect(err).NotTo(HaveOccurred())
		Expect(tm.Span).To(Equal([2]float64{0, 2.5}))
		Expect(tm.Step).To(Equal(0.5))
	})

	It("rejects values that are not numbers", func() {
		_, err := problem.ParseTiming("zero", 1, 0.1)
		Expect(err).To(MatchError(equation.ErrArgumentMismatch))

		_, err = problem.ParseTiming(0, 1, "0")
		Expect(err).To(MatchError(equation.ErrArgumentMismatch))
	})
})
