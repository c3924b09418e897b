package models

import (
	"math"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/param"
)

const (
	DefaultMass    = 1.0
	DefaultLength  = 1.0
	DefaultGravity = 9.81
)

// Pendulum is the undamped planar pendulum with angle q and angular
// momentum p. The angle is periodic in 2π.
type Pendulum struct {
	Mass    float64
	Length  float64
	Gravity float64
	Theta0  float64
	Omega0  float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    DefaultMass,
		Length:  DefaultLength,
		Gravity: DefaultGravity,
		Theta0:  math.Pi / 4,
	}
}

func (p *Pendulum) Name() string { return "pendulum" }

func (p *Pendulum) Kinds() []equation.Kind {
	return []equation.Kind{equation.KindODE, equation.KindPODE, equation.KindHODE, equation.KindSODE}
}

func (p *Pendulum) Record() param.Record {
	return param.Record{"m": p.Mass, "l": p.Length, "g": p.Gravity}
}

func (p *Pendulum) Conditions(kind equation.Kind) (equation.InitialConditions[float64], error) {
	q := []float64{p.Theta0}
	mom := []float64{p.Mass * p.Length * p.Length * p.Omega0}
	switch kind {
	case equation.KindODE, equation.KindSODE:
		return equation.InitialConditions[float64]{equation.KeyQ: equation.FlattenState(q, mom)}, nil
	case equation.KindPODE, equation.KindHODE:
		return equation.InitialConditions[float64]{equation.KeyQ: q, equation.KeyP: mom}, nil
	}
	return nil, unsupported(p, kind)
}

func (p *Pendulum) Equation(kind equation.Kind) (equation.Equation[float64], error) {
	opts := []equation.Option{
		equation.WithParameters(param.Schema{"m": param.KindFloat, "l": param.KindFloat, "g": param.KindFloat}),
	}
	partitioned := append(opts,
		equation.WithInvariants(equation.Invariants{"energy": pendulumH}),
		equation.WithPeriodicity([]float64{2 * math.Pi}),
	)

	switch kind {
	case equation.KindODE:
		hode, err := equation.NewHODE[float64](pendulumV, pendulumF, pendulumH, partitioned...)
		if err != nil {
			return nil, err
		}
		return wrap(equation.Flatten[float64](hode))
	case equation.KindPODE:
		return wrap(equation.NewPODE[float64](pendulumV, pendulumF, partitioned...))
	case equation.KindHODE:
		return wrap(equation.NewHODE[float64](pendulumV, pendulumF, pendulumH, partitioned...))
	case equation.KindSODE:
		return wrap(equation.NewSODE[float64]([]equation.SplitPhase{
			{V: pendulumDrift, Q: pendulumDriftSolution},
			{V: pendulumKick, Q: pendulumKickSolution},
		}, append(opts, equation.WithPeriodicity([]float64{2 * math.Pi, 0}))...))
	}
	return nil, unsupported(p, kind)
}

func inertia(rec param.Record) float64 {
	l := rec.Float("l")
	return rec.Float("m") * l * l
}

func torque(q float64, rec param.Record) float64 {
	return -rec.Float("m") * rec.Float("g") * rec.Float("l") * math.Sin(q)
}

func pendulumV(out []float64, _ float64, _, p []float64, rec param.Record) {
	out[0] = p[0] / inertia(rec)
}

func pendulumF(out []float64, _ float64, q, _ []float64, rec param.Record) {
	out[0] = torque(q[0], rec)
}

func pendulumH(_ float64, q, p []float64, rec param.Record) float64 {
	return p[0]*p[0]/(2*inertia(rec)) - rec.Float("m")*rec.Float("g")*rec.Float("l")*math.Cos(q[0])
}

func pendulumDrift(out []float64, _ float64, x []float64, rec param.Record) {
	out[0], out[1] = x[1]/inertia(rec), 0
}

func pendulumDriftSolution(out []float64, _ float64, x []float64, h float64, rec param.Record) {
	out[0], out[1] = x[0]+h*x[1]/inertia(rec), x[1]
}

func pendulumKick(out []float64, _ float64, x []float64, rec param.Record) {
	out[0], out[1] = 0, torque(x[0], rec)
}

func pendulumKickSolution(out []float64, _ float64, x []float64, h float64, rec param.Record) {
	out[0], out[1] = x[0], x[1]+h*torque(x[0], rec)
}
