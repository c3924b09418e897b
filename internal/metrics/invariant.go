package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/problem"
)

// Invariant records one invariant at the initial state of every observed
// problem. Value is the mean. A problem whose arguments cannot be resolved
// records NaN.
type Invariant struct {
	name   string
	values []float64
}

func NewInvariant(name string) *Invariant {
	return &Invariant{name: name}
}

func (m *Invariant) Name() string { return m.name }

func (m *Invariant) Observe(p *problem.Problem[float64]) {
	m.observe(p, equation.InvariantArguments[float64](p.Equation()))
}

func (m *Invariant) observe(p *problem.Problem[float64], labels []string) {
	fn, ok := p.Solutions()[m.name]
	if !ok {
		return
	}
	args, err := Arguments(p, labels)
	if err != nil {
		m.values = append(m.values, math.NaN())
		return
	}
	m.values = append(m.values, fn(p.Span()[0], args...))
}

func (m *Invariant) Value() float64 {
	if len(m.values) == 0 {
		return 0
	}
	return stat.Mean(m.values, nil)
}

// Spread is max - min over the observed values.
func (m *Invariant) Spread() float64 {
	if len(m.values) == 0 {
		return 0
	}
	return floats.Max(m.values) - floats.Min(m.values)
}

func (m *Invariant) StdDev() float64 {
	if len(m.values) < 2 {
		return 0
	}
	return stat.StdDev(m.values, nil)
}

// Values returns the observations in order.
func (m *Invariant) Values() []float64 {
	return append([]float64(nil), m.values...)
}

func (m *Invariant) Reset() {
	m.values = m.values[:0]
}
