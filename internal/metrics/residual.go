package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/problem"
)

// Residual is the largest constraint violation |ϕ|∞ seen at the initial
// state of a constrained problem. It turns NaN once a problem's arguments
// cannot be resolved.
type Residual struct {
	name    string
	max     float64
	samples int
}

func NewResidual() *Residual {
	return &Residual{name: "constraint_residual"}
}

func (r *Residual) Name() string { return r.name }

func (r *Residual) Observe(p *problem.Problem[float64]) {
	phi, ok := p.Functions().Field("ϕ")
	if !ok || p.NConstraints() == 0 {
		return
	}
	labels, _ := equation.RoleArguments[float64](p.Equation(), "ϕ")
	r.observe(p, phi, labels)
}

func (r *Residual) observe(p *problem.Problem[float64], phi equation.Field[float64], labels []string) {
	args, err := Arguments(p, labels)
	if err != nil {
		r.max = math.NaN()
		r.samples++
		return
	}

	out := make([]float64, p.NConstraints())
	phi(out, p.Span()[0], args...)
	r.max = math.Max(r.max, floats.Norm(out, math.Inf(1)))
	r.samples++
}

func (r *Residual) Value() float64 { return r.max }

func (r *Residual) Samples() int { return r.samples }

func (r *Residual) Reset() {
	r.max = 0
	r.samples = 0
}
