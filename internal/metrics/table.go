package metrics

import (
	"context"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/problem"
)

// Table holds per-sample diagnostics of an ensemble. Rows[i][j] is metric
// Names[j] evaluated on sample i.
type Table struct {
	Names []string
	Rows  [][]float64
}

// Column returns the values of one metric across samples.
func (t *Table) Column(name string) ([]float64, bool) {
	for j, n := range t.Names {
		if n != name {
			continue
		}
		col := make([]float64, len(t.Rows))
		for i, row := range t.Rows {
			col[i] = row[j]
		}
		return col, true
	}
	return nil, false
}

// Standard lists the diagnostics that apply to ens: its invariants and, for
// constrained equations, the constraint residual.
func Standard(ens *problem.Ensemble[float64]) []Metric {
	ms := ForInvariants(ens.Equation())
	if _, ok := equation.RoleArguments[float64](ens.Equation(), "ϕ"); ok && ens.NConstraints() > 0 {
		ms = append(ms, NewResidual())
	}
	return ms
}

// Evaluate fills a Table over ens, building each sample's problem on up to
// workers goroutines.
func Evaluate(ctx context.Context, ens *problem.Ensemble[float64], workers int) (*Table, error) {
	names := make([]string, 0)
	for _, m := range Standard(ens) {
		names = append(names, m.Name())
	}
	rows := make([][]float64, ens.NSamples())

	err := ens.Each(ctx, workers, func(_ context.Context, i int, p *problem.Problem[float64]) error {
		row := make([]float64, len(names))
		for j, m := range Standard(ens) {
			m.Observe(p)
			row[j] = m.Value()
		}
		rows[i] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Table{Names: names, Rows: rows}, nil
}
