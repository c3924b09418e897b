package models

import (
	"math"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/param"
)

// Growth is exponential growth q̇ = a q, with geometric noise sigma q dW in
// its stochastic form. The SODE form splits a into two halves with exact
// solutions.
type Growth struct {
	Rate  float64
	Sigma float64
	Q0    []float64
}

func NewGrowth() *Growth {
	return &Growth{Rate: 1, Sigma: DefaultNoise, Q0: []float64{1}}
}

func (g *Growth) Name() string { return "growth" }

func (g *Growth) Kinds() []equation.Kind {
	return []equation.Kind{equation.KindODE, equation.KindSODE, equation.KindSDE}
}

func (g *Growth) Record() param.Record {
	return param.Record{"a": g.Rate, "sigma": g.Sigma}
}

func (g *Growth) Conditions(kind equation.Kind) (equation.InitialConditions[float64], error) {
	if !supports(g, kind) {
		return nil, unsupported(g, kind)
	}
	return equation.InitialConditions[float64]{equation.KeyQ: append([]float64(nil), g.Q0...)}, nil
}

func (g *Growth) Equation(kind equation.Kind) (equation.Equation[float64], error) {
	schema := param.Schema{"a": param.KindFloat}
	switch kind {
	case equation.KindODE:
		return wrap(equation.NewODE[float64](growthV, equation.WithParameters(schema)))
	case equation.KindSODE:
		half := equation.SplitPhase{V: growthHalfV, Q: growthHalfSolution}
		return wrap(equation.NewSODE[float64]([]equation.SplitPhase{half, half}, equation.WithParameters(schema)))
	case equation.KindSDE:
		schema["sigma"] = param.KindFloat
		return wrap(equation.NewSDE[float64](growthV, growthB, 1, equation.WithParameters(schema)))
	}
	return nil, unsupported(g, kind)
}

func growthV(out []float64, _ float64, q []float64, rec param.Record) {
	a := rec.Float("a")
	for i := range out {
		out[i] = a * q[i]
	}
}

func growthHalfV(out []float64, _ float64, q []float64, rec param.Record) {
	a := rec.Float("a") / 2
	for i := range out {
		out[i] = a * q[i]
	}
}

func growthHalfSolution(out []float64, _ float64, q []float64, h float64, rec param.Record) {
	f := math.Exp(rec.Float("a") / 2 * h)
	for i := range q {
		out[i] = q[i] * f
	}
}

func growthB(out *equation.Matrix[float64], _ float64, q []float64, rec param.Record) {
	sigma := rec.Float("sigma")
	for i := range q {
		out.Set(i, 0, sigma*q[i])
	}
}
