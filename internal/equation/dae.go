package equation

const (
	keyQDot = "q̇"
	keyPDot = "ṗ"
)

type secondary struct {
	ubar, gbar, psi any
}

func (s secondary) set() bool {
	return !isNil(s.ubar) || !isNil(s.gbar) || !isNil(s.psi)
}

// DAE is q̇ = v(t, q) + u(t, q, λ) subject to 0 = ϕ(t, q). Secondary roles
// ū(t, q, λ) and ψ(t, q, q̇) are optional.
type DAE[T Float] struct {
	base[T]
	v, u, phi any
	secondary
}

func NewDAE[T Float](v, u, phi any, opts ...Option) (*DAE[T], error) {
	b, o, err := newBase[T](KindDAE, opts)
	if err != nil {
		return nil, err
	}
	if err := o.reject(KindDAE, true, false); err != nil {
		return nil, err
	}
	if !isNil(o.gbar) {
		return nil, signatureError(KindDAE, "ḡ", "not defined for this variant")
	}
	return build[T](&DAE[T]{base: b, v: v, u: u, phi: phi, secondary: secondary{ubar: o.ubar, psi: o.psi}})
}

func (e *DAE[T]) HasSecondaryFields() bool { return e.secondary.set() }

func (e *DAE[T]) layout() layout {
	return layout{
		roles: []role{
			{name: "v", class: vectorRole, args: []string{KeyQ}, fn: e.v},
			{name: "u", class: vectorRole, args: []string{KeyQ, KeyLambda}, fn: e.u},
			{name: "ϕ", class: vectorRole, args: []string{KeyQ}, fn: e.phi},
			{name: "ū", class: vectorRole, args: []string{KeyQ, KeyLambda}, fn: e.ubar, optional: true},
			{name: "ψ", class: vectorRole, args: []string{KeyQ, keyQDot}, fn: e.psi, optional: true},
		},
		keys:      []string{KeyQ, KeyLambda},
		invariant: []string{KeyQ},
	}
}

// PDAE is the partitioned system q̇ = v + u, ṗ = f + g subject to
// 0 = ϕ(t, q, p), with optional secondary constraint ψ(t, q, p, q̇, ṗ).
type PDAE[T Float] struct {
	base[T]
	v, f, u, g, phi any
	secondary
}

func NewPDAE[T Float](v, f, u, g, phi any, opts ...Option) (*PDAE[T], error) {
	b, o, err := newBase[T](KindPDAE, opts)
	if err != nil {
		return nil, err
	}
	if err := o.reject(KindPDAE, true, false); err != nil {
		return nil, err
	}
	return build[T](&PDAE[T]{base: b, v: v, f: f, u: u, g: g, phi: phi, secondary: secondary{o.ubar, o.gbar, o.psi}})
}

func (e *PDAE[T]) HasSecondaryFields() bool { return e.secondary.set() }

func (e *PDAE[T]) layout() layout {
	return partitionedDAELayout(e.v, e.f, e.u, e.g, e.phi, e.secondary, true)
}

func partitionedDAELayout(v, f, u, g, phi any, s secondary, optional bool) layout {
	qp := []string{KeyQ, KeyP}
	qpl := []string{KeyQ, KeyP, KeyLambda}
	return layout{
		roles: []role{
			{name: "v", class: vectorRole, args: qp, fn: v},
			{name: "f", class: vectorRole, args: qp, fn: f},
			{name: "u", class: vectorRole, args: qpl, fn: u},
			{name: "g", class: vectorRole, args: qpl, fn: g},
			{name: "ϕ", class: vectorRole, args: qp, fn: phi},
			{name: "ū", class: vectorRole, args: qpl, fn: s.ubar, optional: optional},
			{name: "ḡ", class: vectorRole, args: qpl, fn: s.gbar, optional: optional},
			{name: "ψ", class: vectorRole, args: []string{KeyQ, KeyP, keyQDot, keyPDot}, fn: s.psi, optional: optional},
		},
		keys:      qpl,
		invariant: qp,
	}
}

// HDAE is a PDAE derived from a Hamiltonian; its secondary roles are
// required.
type HDAE[T Float] struct {
	base[T]
	v, f, u, g, phi, hamiltonian any
	secondary
}

func NewHDAE[T Float](v, f, u, g, phi, ubar, gbar, psi, hamiltonian any, opts ...Option) (*HDAE[T], error) {
	b, o, err := newBase[T](KindHDAE, opts)
	if err != nil {
		return nil, err
	}
	if err := o.reject(KindHDAE, false, false); err != nil {
		return nil, err
	}
	e := &HDAE[T]{base: b, v: v, f: f, u: u, g: g, phi: phi, hamiltonian: hamiltonian, secondary: secondary{ubar, gbar, psi}}
	return build[T](e)
}

func (e *HDAE[T]) HasHamiltonian() bool     { return true }
func (e *HDAE[T]) HasSecondaryFields() bool { return true }

func (e *HDAE[T]) layout() layout {
	l := partitionedDAELayout(e.v, e.f, e.u, e.g, e.phi, e.secondary, false)
	l.roles = append(l.roles, role{name: "hamiltonian", class: scalarRole, args: []string{KeyQ, KeyP}, fn: e.hamiltonian})
	return l
}

// IDAE is the implicit system p = ϑ(t, q, v), ṗ = f(t, q, v) + g(t, q, v, p, λ)
// subject to 0 = ϕ(t, q, v, p), with initial guesses v̄ and f̄.
type IDAE[T Float] struct {
	base[T]
	theta, f, u, g, phi, vbar, fbar any
	secondary
}

func NewIDAE[T Float](theta, f, u, g, phi, vbar any, opts ...Option) (*IDAE[T], error) {
	b, o, err := newBase[T](KindIDAE, opts)
	if err != nil {
		return nil, err
	}
	if err := o.reject(KindIDAE, true, true); err != nil {
		return nil, err
	}
	e := &IDAE[T]{base: b, theta: theta, f: f, u: u, g: g, phi: phi, vbar: vbar, fbar: o.fbar, secondary: secondary{o.ubar, o.gbar, o.psi}}
	if isNil(e.fbar) {
		e.fbar = f
	}
	return build[T](e)
}

func (e *IDAE[T]) HasSecondaryFields() bool { return e.secondary.set() }

func (e *IDAE[T]) layout() layout {
	return implicitDAELayout(e.theta, e.f, e.u, e.g, e.phi, e.vbar, e.fbar, e.secondary)
}

func implicitDAELayout(theta, f, u, g, phi, vbar, fbar any, s secondary) layout {
	qv := []string{KeyQ, KeyV}
	qvpl := []string{KeyQ, KeyV, KeyP, KeyLambda}
	return layout{
		roles: []role{
			{name: "ϑ", class: vectorRole, args: qv, fn: theta},
			{name: "f", class: vectorRole, args: qv, fn: f},
			{name: "u", class: vectorRole, args: qvpl, fn: u},
			{name: "g", class: vectorRole, args: qvpl, fn: g},
			{name: "ϕ", class: vectorRole, args: []string{KeyQ, KeyV, KeyP}, fn: phi},
			{name: "v̄", class: vectorRole, args: []string{KeyQ, KeyP}, fn: vbar},
			{name: "f̄", class: vectorRole, args: qv, fn: fbar},
			{name: "ū", class: vectorRole, args: qvpl, fn: s.ubar, optional: true},
			{name: "ḡ", class: vectorRole, args: qvpl, fn: s.gbar, optional: true},
			{name: "ψ", class: vectorRole, args: []string{KeyQ, KeyV, KeyP, keyQDot, keyPDot}, fn: s.psi, optional: true},
		},
		keys:      []string{KeyQ, KeyP, KeyLambda},
		invariant: qv,
	}
}

// LDAE is an IDAE derived from a Lagrangian.
type LDAE[T Float] struct {
	base[T]
	theta, f, u, g, phi, vbar, fbar, lagrangian any
	secondary
}

func NewLDAE[T Float](theta, f, u, g, phi, vbar, lagrangian any, opts ...Option) (*LDAE[T], error) {
	b, o, err := newBase[T](KindLDAE, opts)
	if err != nil {
		return nil, err
	}
	if err := o.reject(KindLDAE, true, true); err != nil {
		return nil, err
	}
	e := &LDAE[T]{base: b, theta: theta, f: f, u: u, g: g, phi: phi, vbar: vbar, fbar: o.fbar, lagrangian: lagrangian, secondary: secondary{o.ubar, o.gbar, o.psi}}
	if isNil(e.fbar) {
		e.fbar = f
	}
	return build[T](e)
}

func (e *LDAE[T]) HasLagrangian() bool      { return true }
func (e *LDAE[T]) HasSecondaryFields() bool { return e.secondary.set() }

func (e *LDAE[T]) layout() layout {
	l := implicitDAELayout(e.theta, e.f, e.u, e.g, e.phi, e.vbar, e.fbar, e.secondary)
	l.roles = append(l.roles, role{name: "lagrangian", class: scalarRole, args: []string{KeyQ, KeyV}, fn: e.lagrangian})
	return l
}
