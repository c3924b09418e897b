package main

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/metrics"
	"github.com/san-kum/ivp/internal/param"
	"github.com/san-kum/ivp/internal/problem"
	"github.com/san-kum/ivp/internal/registry"
	"github.com/san-kum/ivp/internal/viz"
)

func describe(w io.Writer, s *registry.Setup) {
	equ := s.Equation
	fmt.Fprintln(w, viz.Title.Render(fmt.Sprintf("%s %s", s.Model.Name(), equ.Kind())))
	fmt.Fprintln(w, viz.Field("tspan", fmt.Sprintf("[%g, %g]", s.Timing.Span[0], s.Timing.Span[1])))
	fmt.Fprintln(w, viz.Field("tstep", s.Timing.Step))
	fmt.Fprintln(w, viz.Field("samples", s.Ensemble.NSamples()))
	fmt.Fprintln(w, viz.Field("keys", strings.Join(equation.RequiredKeys[float64](equ), " ")))
	if st, ok := equ.(equation.Stochastic); ok {
		fmt.Fprintln(w, viz.Field("nnoise", st.NNoise()))
	}
	if n := s.Ensemble.NConstraints(); n > 0 {
		fmt.Fprintln(w, viz.Field("nconstraints", n))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, viz.HeaderStyle.Render("roles"))
	for _, name := range equation.RoleNames[float64](equ) {
		sig, _ := equation.Signature[float64](equ, name)
		fmt.Fprintf(w, "  %-6s %s\n", name, viz.Subtle.Render(sig))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, viz.HeaderStyle.Render("traits"))
	traits := []struct {
		name string
		ok   bool
	}{
		{"vector field", equ.HasVectorField()},
		{"hamiltonian", equ.HasHamiltonian()},
		{"lagrangian", equ.HasLagrangian()},
		{"invariants", equ.HasInvariants()},
		{"parameters", equ.HasParameters()},
		{"periodicity", equ.HasPeriodicity()},
		{"secondary fields", equ.HasSecondaryFields()},
		{"solution", equ.HasSolution()},
	}
	for _, t := range traits {
		fmt.Fprintln(w, "  "+viz.Field(t.name, t.ok))
	}
	fmt.Fprintln(w)

	if inv, ok := equ.Invariants().(equation.Invariants); ok {
		fmt.Fprintln(w, viz.HeaderStyle.Render("invariants"))
		for _, name := range inv.Names() {
			sig, _ := equation.Signature[float64](equ, name)
			fmt.Fprintf(w, "  %-6s %s\n", name, viz.Subtle.Render(sig))
		}
		fmt.Fprintln(w)
	}
	if schema, ok := equ.Parameters().(param.Schema); ok {
		fmt.Fprintln(w, viz.HeaderStyle.Render("parameters"))
		for _, name := range schema.Names() {
			fmt.Fprintln(w, "  "+viz.Field(name, schema[name]))
		}
		fmt.Fprintln(w)
	}
	if p, ok := equ.Periodicity().(equation.Periodicity[float64]); ok {
		fmt.Fprintln(w, viz.Field("periodicity", viz.Vector(p)))
	}
}

// evaluate prints every bound role of p at its initial state.
func evaluate(w io.Writer, p *problem.Problem[float64]) error {
	equ := p.Equation()
	fns := p.Functions()
	ics := p.InitialConditions()
	t0 := p.Span()[0]
	n := len(ics[equation.KeyQ])

	fmt.Fprintln(w, viz.Title.Render(fmt.Sprintf("%s at t = %g", equ.Kind(), t0)))
	for _, k := range ics.Keys() {
		fmt.Fprintln(w, viz.Field(k, viz.Vector(ics[k])))
	}
	fmt.Fprintln(w)

	for _, name := range fns.Names() {
		labels, ok := equation.RoleArguments[float64](equ, name)
		if !ok {
			continue
		}
		args, err := metrics.Arguments(p, labels)
		if err != nil {
			// secondary roles also take derivatives of the state
			fmt.Fprintln(w, viz.MetricLabel.Render(name)+viz.Subtle.Render(err.Error()))
			continue
		}

		if fn, ok := fns.Field(name); ok {
			size := n
			if name == "ϕ" || name == "ψ" {
				size = p.NConstraints()
			}
			out := make([]float64, size)
			fn(out, t0, args...)
			fmt.Fprintln(w, viz.Field(name, viz.Vector(out)))
			continue
		}
		if fn, ok := fns.Matrix(name); ok {
			st, _ := equ.(equation.Stochastic)
			out := equation.NewMatrix[float64](n, st.NNoise())
			fn(out, t0, args...)
			fmt.Fprintf(w, "%s\n%v\n", viz.MetricLabel.Render(name), mat.Formatted(out.Dense(), mat.Prefix(""), mat.Squeeze()))
			continue
		}
		if fn, ok := fns.Scalar(name); ok {
			fmt.Fprintln(w, viz.Field(name, fn(t0, args...)))
		}
	}

	if inv := p.Solutions(); len(inv) > 0 {
		args, err := metrics.Arguments(p, equation.InvariantArguments[float64](equ))
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
		for _, name := range inv.Names() {
			fmt.Fprintln(w, viz.Field(name, inv[name](t0, args...)))
		}
	}
	return nil
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}
