package equation

import "fmt"

// ODE is q̇ = v(t, q).
type ODE[T Float] struct {
	base[T]
	v any
}

func NewODE[T Float](v any, opts ...Option) (*ODE[T], error) {
	b, o, err := newBase[T](KindODE, opts)
	if err != nil {
		return nil, err
	}
	if err := o.reject(KindODE, false, false); err != nil {
		return nil, err
	}
	return build[T](&ODE[T]{base: b, v: v})
}

func (e *ODE[T]) layout() layout {
	return layout{
		roles: []role{
			{name: "v", class: vectorRole, args: []string{KeyQ}, fn: e.v},
		},
		keys:      []string{KeyQ},
		invariant: []string{KeyQ},
	}
}

// PODE is the partitioned system q̇ = v(t, q, p), ṗ = f(t, q, p).
type PODE[T Float] struct {
	base[T]
	v, f any
}

func NewPODE[T Float](v, f any, opts ...Option) (*PODE[T], error) {
	b, o, err := newBase[T](KindPODE, opts)
	if err != nil {
		return nil, err
	}
	if err := o.reject(KindPODE, false, false); err != nil {
		return nil, err
	}
	return build[T](&PODE[T]{base: b, v: v, f: f})
}

func (e *PODE[T]) layout() layout {
	return partitionedLayout(e.v, e.f)
}

func partitionedLayout(v, f any) layout {
	qp := []string{KeyQ, KeyP}
	return layout{
		roles: []role{
			{name: "v", class: vectorRole, args: qp, fn: v},
			{name: "f", class: vectorRole, args: qp, fn: f},
		},
		keys:      qp,
		invariant: qp,
	}
}

// HODE is a PODE derived from a Hamiltonian.
type HODE[T Float] struct {
	base[T]
	v, f, hamiltonian any
}

func NewHODE[T Float](v, f, hamiltonian any, opts ...Option) (*HODE[T], error) {
	b, o, err := newBase[T](KindHODE, opts)
	if err != nil {
		return nil, err
	}
	if err := o.reject(KindHODE, false, false); err != nil {
		return nil, err
	}
	return build[T](&HODE[T]{base: b, v: v, f: f, hamiltonian: hamiltonian})
}

func (e *HODE[T]) HasHamiltonian() bool { return true }

func (e *HODE[T]) layout() layout {
	l := partitionedLayout(e.v, e.f)
	l.roles = append(l.roles, role{name: "hamiltonian", class: scalarRole, args: []string{KeyQ, KeyP}, fn: e.hamiltonian})
	return l
}

// IODE is the implicit system p = ϑ(t, q, v), ṗ = f(t, q, v) + g(t, q, v, λ)
// with initial guesses v̄(t, q, p) and f̄(t, q, v).
type IODE[T Float] struct {
	base[T]
	theta, f, g, vbar, fbar any
}

func NewIODE[T Float](theta, f, g, vbar any, opts ...Option) (*IODE[T], error) {
	b, o, err := newBase[T](KindIODE, opts)
	if err != nil {
		return nil, err
	}
	if err := o.reject(KindIODE, false, true); err != nil {
		return nil, err
	}
	e := &IODE[T]{base: b, theta: theta, f: f, g: g, vbar: vbar, fbar: o.fbar}
	if isNil(e.fbar) {
		e.fbar = f
	}
	return build[T](e)
}

func (e *IODE[T]) layout() layout {
	return implicitLayout(e.theta, e.f, e.g, e.vbar, e.fbar)
}

func implicitLayout(theta, f, g, vbar, fbar any) layout {
	qv := []string{KeyQ, KeyV}
	return layout{
		roles: []role{
			{name: "ϑ", class: vectorRole, args: qv, fn: theta},
			{name: "f", class: vectorRole, args: qv, fn: f},
			{name: "g", class: vectorRole, args: []string{KeyQ, KeyV, KeyLambda}, fn: g},
			{name: "v̄", class: vectorRole, args: []string{KeyQ, KeyP}, fn: vbar},
			{name: "f̄", class: vectorRole, args: qv, fn: fbar},
		},
		keys:      []string{KeyQ, KeyP, KeyLambda},
		invariant: qv,
	}
}

// LODE is an IODE derived from a Lagrangian.
type LODE[T Float] struct {
	base[T]
	theta, f, g, vbar, fbar, lagrangian any
}

func NewLODE[T Float](theta, f, g, vbar, lagrangian any, opts ...Option) (*LODE[T], error) {
	b, o, err := newBase[T](KindLODE, opts)
	if err != nil {
		return nil, err
	}
	if err := o.reject(KindLODE, false, true); err != nil {
		return nil, err
	}
	e := &LODE[T]{base: b, theta: theta, f: f, g: g, vbar: vbar, fbar: o.fbar, lagrangian: lagrangian}
	if isNil(e.fbar) {
		e.fbar = f
	}
	return build[T](e)
}

func (e *LODE[T]) HasLagrangian() bool { return true }

func (e *LODE[T]) layout() layout {
	l := implicitLayout(e.theta, e.f, e.g, e.vbar, e.fbar)
	l.roles = append(l.roles, role{name: "lagrangian", class: scalarRole, args: []string{KeyQ, KeyV}, fn: e.lagrangian})
	return l
}

// SplitPhase is one (v_i, q_i) pair of a splitting equation. Q is optional.
type SplitPhase struct {
	V any
	Q any
}

// SODE is q̇ = v_1(t, q) + ... + v_n(t, q), given as an ordered list of
// phases. A phase with Q supplies its own exact update
// q_i(out, t, q, h) for a step of size h.
type SODE[T Float] struct {
	base[T]
	phases []SplitPhase
}

func NewSODE[T Float](phases []SplitPhase, opts ...Option) (*SODE[T], error) {
	b, o, err := newBase[T](KindSODE, opts)
	if err != nil {
		return nil, err
	}
	if err := o.reject(KindSODE, false, false); err != nil {
		return nil, err
	}
	if len(phases) == 0 {
		return nil, signatureError(KindSODE, "v1", "no phases")
	}
	return build[T](&SODE[T]{base: b, phases: append([]SplitPhase(nil), phases...)})
}

func (e *SODE[T]) NPhases() int { return len(e.phases) }

// HasSolution reports whether every phase supplies an explicit solution.
func (e *SODE[T]) HasSolution() bool {
	for _, ph := range e.phases {
		if isNil(ph.Q) {
			return false
		}
	}
	return true
}

func (e *SODE[T]) layout() layout {
	roles := make([]role, 0, 2*len(e.phases))
	for i, ph := range e.phases {
		roles = append(roles,
			role{name: phaseField(i), class: vectorRole, args: []string{KeyQ}, fn: ph.V},
			role{name: phaseSolution(i), class: solutionRole, args: []string{KeyQ}, fn: ph.Q, optional: true},
		)
	}
	return layout{
		roles:     roles,
		keys:      []string{KeyQ},
		invariant: []string{KeyQ},
	}
}

func phaseField(i int) string    { return fmt.Sprintf("v%d", i+1) }
func phaseSolution(i int) string { return fmt.Sprintf("q%d", i+1) }
