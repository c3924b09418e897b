package models

import (
	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/param"
)

const (
	DefaultStiffness = 0.5
	DefaultNoise     = 0.1
)

// Oscillator is the harmonic oscillator H = p²/2 + k q²/2. Every variant
// is available; constrained variants hold the energy at its initial value
// e0 and stochastic ones add noise of strength sigma to the momentum.
//
// ODE, SODE, SDE and DAE use the combined state x = [q; p].
type Oscillator struct {
	K     float64
	Sigma float64
	Q0    []float64
	P0    []float64
}

func NewOscillator() *Oscillator {
	return &Oscillator{
		K:     DefaultStiffness,
		Sigma: DefaultNoise,
		Q0:    []float64{0.5},
		P0:    []float64{0.0},
	}
}

func (o *Oscillator) Name() string { return "oscillator" }

func (o *Oscillator) Kinds() []equation.Kind { return equation.Kinds() }

func (o *Oscillator) Record() param.Record {
	return param.Record{
		"k":     o.K,
		"e0":    oscEnergy(o.Q0, o.P0, o.K),
		"sigma": o.Sigma,
	}
}

func (o *Oscillator) schema(kind equation.Kind) param.Schema {
	s := param.Schema{"k": param.KindFloat}
	switch kind {
	case equation.KindDAE, equation.KindPDAE, equation.KindHDAE, equation.KindIDAE, equation.KindLDAE:
		s["e0"] = param.KindFloat
	case equation.KindSDE, equation.KindPSDE, equation.KindSPSDE:
		s["sigma"] = param.KindFloat
	}
	return s
}

func (o *Oscillator) Conditions(kind equation.Kind) (equation.InitialConditions[float64], error) {
	n := len(o.Q0)
	q, p := append([]float64(nil), o.Q0...), append([]float64(nil), o.P0...)
	switch kind {
	case equation.KindODE, equation.KindSODE, equation.KindSDE:
		return equation.InitialConditions[float64]{equation.KeyQ: equation.FlattenState(q, p)}, nil
	case equation.KindDAE:
		return equation.InitialConditions[float64]{equation.KeyQ: equation.FlattenState(q, p), equation.KeyLambda: zeros(1)}, nil
	case equation.KindPODE, equation.KindHODE, equation.KindPSDE, equation.KindSPSDE:
		return equation.InitialConditions[float64]{equation.KeyQ: q, equation.KeyP: p}, nil
	case equation.KindIODE, equation.KindLODE:
		return equation.InitialConditions[float64]{equation.KeyQ: q, equation.KeyP: p, equation.KeyLambda: zeros(n)}, nil
	case equation.KindPDAE, equation.KindHDAE, equation.KindIDAE, equation.KindLDAE:
		return equation.InitialConditions[float64]{equation.KeyQ: q, equation.KeyP: p, equation.KeyLambda: zeros(1)}, nil
	}
	return nil, unsupported(o, kind)
}

func (o *Oscillator) Equation(kind equation.Kind) (equation.Equation[float64], error) {
	opts := []equation.Option{equation.WithParameters(o.schema(kind))}
	partitioned := append(opts, equation.WithInvariants(equation.Invariants{"energy": oscH}))
	combined := append(opts, equation.WithInvariants(equation.Invariants{"energy": oscXEnergy}))
	implicit := append(opts, equation.WithInvariants(equation.Invariants{"energy": oscLEnergy}))

	switch kind {
	case equation.KindODE:
		hode, err := equation.NewHODE[float64](oscV, oscF, oscH, partitioned...)
		if err != nil {
			return nil, err
		}
		return wrap(equation.Flatten[float64](hode))
	case equation.KindPODE:
		return wrap(equation.NewPODE[float64](oscV, oscF, partitioned...))
	case equation.KindHODE:
		return wrap(equation.NewHODE[float64](oscV, oscF, oscH, partitioned...))
	case equation.KindIODE:
		return wrap(equation.NewIODE[float64](oscTheta, oscImplicitF, oscImplicitG, oscVBar, implicit...))
	case equation.KindLODE:
		return wrap(equation.NewLODE[float64](oscTheta, oscImplicitF, oscImplicitG, oscVBar, oscL, implicit...))
	case equation.KindSODE:
		return wrap(equation.NewSODE[float64]([]equation.SplitPhase{
			{V: oscDrift, Q: oscDriftSolution},
			{V: oscKick, Q: oscKickSolution},
		}, combined...))
	case equation.KindDAE:
		return wrap(equation.NewDAE[float64](oscX, oscXU, oscXPhi,
			append(combined, equation.WithSecondary(oscXU, nil, oscXPsi))...))
	case equation.KindPDAE:
		return wrap(equation.NewPDAE[float64](oscV, oscF, oscU, oscG, oscPhi,
			append(partitioned, equation.WithSecondary(oscU, oscG, oscPsi))...))
	case equation.KindHDAE:
		return wrap(equation.NewHDAE[float64](oscV, oscF, oscU, oscG, oscPhi, oscU, oscG, oscPsi, oscH, partitioned...))
	case equation.KindIDAE:
		return wrap(equation.NewIDAE[float64](oscTheta, oscImplicitF, oscIU, oscIG, oscIPhi, oscVBar,
			append(implicit, equation.WithSecondary(oscIU, oscIG, oscIPsi))...))
	case equation.KindLDAE:
		return wrap(equation.NewLDAE[float64](oscTheta, oscImplicitF, oscIU, oscIG, oscIPhi, oscVBar, oscL,
			append(implicit, equation.WithSecondary(oscIU, oscIG, oscIPsi))...))
	case equation.KindSDE:
		return wrap(equation.NewSDE[float64](oscX, oscXB, 1, combined...))
	case equation.KindPSDE:
		return wrap(equation.NewPSDE[float64](oscV, oscF, oscZeroNoise, oscG1, 1, partitioned...))
	case equation.KindSPSDE:
		return wrap(equation.NewSPSDE[float64](oscV, oscF, oscZeroForce, oscZeroNoise, oscG1, oscZeroNoise, 1, partitioned...))
	}
	return nil, unsupported(o, kind)
}

func oscEnergy(q, p []float64, k float64) float64 {
	var e float64
	for i := range q {
		e += p[i]*p[i]/2 + k*q[i]*q[i]/2
	}
	return e
}

func oscV(out []float64, _ float64, _, p []float64, _ param.Record) { copy(out, p) }

func oscF(out []float64, _ float64, q, _ []float64, rec param.Record) {
	k := rec.Float("k")
	for i := range out {
		out[i] = -k * q[i]
	}
}

func oscH(_ float64, q, p []float64, rec param.Record) float64 {
	return oscEnergy(q, p, rec.Float("k"))
}

// constraint force and multiplier terms: λ∇H, H(q, p) = e0 and its time
// derivative.

func oscU(out []float64, _ float64, q, _, lambda []float64, rec param.Record) {
	k := rec.Float("k")
	for i := range out {
		out[i] = lambda[0] * k * q[i]
	}
}

func oscG(out []float64, _ float64, _, p, lambda []float64, _ param.Record) {
	for i := range out {
		out[i] = lambda[0] * p[i]
	}
}

func oscPhi(out []float64, _ float64, q, p []float64, rec param.Record) {
	out[0] = oscEnergy(q, p, rec.Float("k")) - rec.Float("e0")
}

func oscPsi(out []float64, _ float64, q, p, qdot, pdot []float64, rec param.Record) {
	k := rec.Float("k")
	out[0] = 0
	for i := range q {
		out[0] += k*q[i]*qdot[i] + p[i]*pdot[i]
	}
}

// combined state x = [q; p]

func oscX(out []float64, t float64, x []float64, rec param.Record) {
	q, p := equation.SplitState(x)
	n := len(q)
	oscV(out[:n], t, q, p, rec)
	oscF(out[n:], t, q, p, rec)
}

func oscXEnergy(t float64, x []float64, rec param.Record) float64 {
	q, p := equation.SplitState(x)
	return oscH(t, q, p, rec)
}

func oscXU(out []float64, t float64, x, lambda []float64, rec param.Record) {
	q, p := equation.SplitState(x)
	n := len(q)
	oscU(out[:n], t, q, p, lambda, rec)
	oscG(out[n:], t, q, p, lambda, rec)
}

func oscXPhi(out []float64, t float64, x []float64, rec param.Record) {
	q, p := equation.SplitState(x)
	oscPhi(out, t, q, p, rec)
}

func oscXPsi(out []float64, t float64, x, xdot []float64, rec param.Record) {
	q, p := equation.SplitState(x)
	qdot, pdot := equation.SplitState(xdot)
	oscPsi(out, t, q, p, qdot, pdot, rec)
}

func oscXB(out *equation.Matrix[float64], _ float64, x []float64, rec param.Record) {
	out.Zero()
	n := len(x) / 2
	for i := range n {
		out.Set(n+i, 0, rec.Float("sigma"))
	}
}

func oscDrift(out []float64, _ float64, x []float64, _ param.Record) {
	_, p := equation.SplitState(x)
	n := len(p)
	copy(out[:n], p)
	clear(out[n:])
}

func oscDriftSolution(out []float64, _ float64, x []float64, h float64, _ param.Record) {
	q, p := equation.SplitState(x)
	n := len(q)
	for i := range n {
		out[i] = q[i] + h*p[i]
		out[n+i] = p[i]
	}
}

func oscKick(out []float64, _ float64, x []float64, rec param.Record) {
	q, _ := equation.SplitState(x)
	n := len(q)
	k := rec.Float("k")
	clear(out[:n])
	for i := range n {
		out[n+i] = -k * q[i]
	}
}

func oscKickSolution(out []float64, _ float64, x []float64, h float64, rec param.Record) {
	q, p := equation.SplitState(x)
	n := len(q)
	k := rec.Float("k")
	for i := range n {
		out[i] = q[i]
		out[n+i] = p[i] - h*k*q[i]
	}
}

// implicit form with p = ϑ(q, v) = v

func oscTheta(out []float64, _ float64, _, v []float64, _ param.Record) { copy(out, v) }

func oscImplicitF(out []float64, t float64, q, v []float64, rec param.Record) {
	oscF(out, t, q, v, rec)
}

func oscImplicitG(out []float64, _ float64, _, _, lambda []float64, _ param.Record) {
	copy(out, lambda)
}

func oscVBar(out []float64, _ float64, _, p []float64, _ param.Record) { copy(out, p) }

func oscL(_ float64, q, v []float64, rec param.Record) float64 {
	k := rec.Float("k")
	var l float64
	for i := range q {
		l += v[i]*v[i]/2 - k*q[i]*q[i]/2
	}
	return l
}

func oscLEnergy(_ float64, q, v []float64, rec param.Record) float64 {
	return oscEnergy(q, v, rec.Float("k"))
}

func oscIU(out []float64, t float64, q, _, p, lambda []float64, rec param.Record) {
	oscU(out, t, q, p, lambda, rec)
}

func oscIG(out []float64, _ float64, _, v, _, lambda []float64, _ param.Record) {
	for i := range out {
		out[i] = lambda[0] * v[i]
	}
}

func oscIPhi(out []float64, t float64, q, _, p []float64, rec param.Record) {
	oscPhi(out, t, q, p, rec)
}

func oscIPsi(out []float64, t float64, q, _, p, qdot, pdot []float64, rec param.Record) {
	oscPsi(out, t, q, p, qdot, pdot, rec)
}

// stochastic forcing on the momentum only

func oscG1(out *equation.Matrix[float64], _ float64, q, _ []float64, rec param.Record) {
	out.Zero()
	for i := range q {
		out.Set(i, 0, rec.Float("sigma"))
	}
}

func oscZeroNoise(out *equation.Matrix[float64], _ float64, _, _ []float64, _ param.Record) {
	out.Zero()
}

func oscZeroForce(out []float64, _ float64, _, _ []float64, _ param.Record) { clear(out) }
