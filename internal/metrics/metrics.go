package metrics

import (
	"fmt"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/problem"
)

// Metric accumulates a diagnostic over the problems of an ensemble,
// evaluated at the initial time.
type Metric interface {
	Name() string
	Observe(p *problem.Problem[float64])
	Value() float64
	Reset()
}

// Arguments resolves the state arguments named by labels from the initial
// conditions of p. A missing v is computed from the initial guess v̄.
func Arguments(p *problem.Problem[float64], labels []string) ([][]float64, error) {
	ics := p.InitialConditions()
	t0 := p.Span()[0]
	args := make([][]float64, len(labels))
	for i, label := range labels {
		if x, ok := ics[label]; ok {
			args[i] = x
			continue
		}
		if label != equation.KeyV {
			return nil, fmt.Errorf("no initial value for %s", label)
		}
		vbar, ok := p.Functions().Field("v̄")
		if !ok {
			return nil, fmt.Errorf("no initial value for %s", label)
		}
		v := make([]float64, len(ics[equation.KeyQ]))
		vbar(v, t0, ics[equation.KeyQ], ics[equation.KeyP])
		args[i] = v
	}
	return args, nil
}

// ForInvariants returns one Invariant metric per invariant equ declares.
func ForInvariants(equ equation.Equation[float64]) []Metric {
	inv, ok := equ.Invariants().(equation.Invariants)
	if !ok {
		return nil
	}
	out := make([]Metric, 0, len(inv))
	for _, name := range inv.Names() {
		out = append(out, NewInvariant(name))
	}
	return out
}
