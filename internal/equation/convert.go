package equation

import (
	"fmt"
	"math"

	"github.com/san-kum/ivp/internal/param"
)

// FlattenState concatenates q and p into one combined state.
func FlattenState[T Float](q, p []T) []T {
	x := make([]T, 0, len(q)+len(p))
	x = append(x, q...)
	return append(x, p...)
}

// SplitState returns the q and p halves of a combined state. Both alias x.
func SplitState[T Float](x []T) (q, p []T) {
	n := len(x) / 2
	return x[:n:n], x[n:]
}

// FlattenConditions turns partitioned initial conditions into the single
// q of the combined view. Other keys are dropped.
func FlattenConditions[T Float](ics InitialConditions[T]) InitialConditions[T] {
	return InitialConditions[T]{KeyQ: FlattenState(ics[KeyQ], ics[KeyP])}
}

// Flatten returns the combined-state view of a PODE or HODE: an ODE over
// x = [q; p] whose vector field writes v into the first half of out and f
// into the second half. Invariants and periodicity are carried over on the
// combined state.
func Flatten[T Float](equ Equation[T]) (*ODE[T], error) {
	var v, f any
	switch e := equ.(type) {
	case *PODE[T]:
		v, f = e.v, e.f
	case *HODE[T]:
		v, f = e.v, e.f
	default:
		return nil, argumentError(equ.Kind(), "equation", "combined view needs a PODE or HODE")
	}

	kind := equ.Kind()
	withParams := equ.HasParameters()
	qp := []string{KeyQ, KeyP}
	cv, err := fieldOf[T](kind, role{name: "v", class: vectorRole, args: qp, fn: v}, withParams)
	if err != nil {
		return nil, err
	}
	cf, err := fieldOf[T](kind, role{name: "f", class: vectorRole, args: qp, fn: f}, withParams)
	if err != nil {
		return nil, err
	}

	field := func(out []T, t float64, rec param.Record, x ...[]T) {
		q, p := SplitState(x[0])
		n := len(q)
		cv(out[:n:n], t, rec, q, p)
		cf(out[n:], t, rec, q, p)
	}

	inv := InvariantSet(NullInvariants{})
	if equ.HasInvariants() {
		flat := make(Invariants)
		for _, r := range invariantRoles[T](equ) {
			c, err := scalarOf[T](kind, r, withParams)
			if err != nil {
				return nil, err
			}
			flat[r.name] = flatScalar(func(t float64, rec param.Record, x ...[]T) T {
				q, p := SplitState(x[0])
				return c(t, rec, q, p)
			}, withParams)
		}
		inv = flat
	}

	period := PeriodicitySet(NullPeriodicity{})
	if p, ok := equ.Periodicity().(Periodicity[T]); ok {
		period = Periodicity[T](FlattenState(p, make([]T, len(p))))
	}

	return NewODE[T](flatField(field, withParams), withSideChannels(inv, equ.Parameters(), period))
}

func flatField[T Float](c canonField[T], withParams bool) any {
	if withParams {
		return func(out []T, t float64, x []T, rec param.Record) { c(out, t, rec, x) }
	}
	return func(out []T, t float64, x []T) { c(out, t, nil, x) }
}

func flatScalar[T Float](c canonScalar[T], withParams bool) any {
	if withParams {
		return func(t float64, x []T, rec param.Record) T { return c(t, rec, x) }
	}
	return func(t float64, x []T) T { return c(t, nil, x) }
}

func fieldOf[T Float](kind Kind, r role, withParams bool) (canonField[T], error) {
	fn, err := inspect[T](kind, r, withParams)
	if err != nil {
		return nil, err
	}
	c, ok := canonicalField[T](fn)
	if !ok {
		return nil, unbindable(kind, r)
	}
	return c, nil
}

func scalarOf[T Float](kind Kind, r role, withParams bool) (canonScalar[T], error) {
	fn, err := inspect[T](kind, r, withParams)
	if err != nil {
		return nil, err
	}
	c, ok := canonicalScalar[T](fn)
	if !ok {
		return nil, unbindable(kind, r)
	}
	return c, nil
}

// Unconstrained returns the equation a DAE-family variant reduces to once
// multipliers and constraints are dropped: DAE gives ODE, PDAE gives PODE
// and HDAE gives HODE. The original callables are reused.
func Unconstrained[T Float](equ Equation[T]) (Equation[T], error) {
	switch e := equ.(type) {
	case *DAE[T]:
		ode, err := NewODE[T](e.v, e.sideChannels())
		if err != nil {
			return nil, err
		}
		return ode, nil
	case *PDAE[T]:
		pode, err := NewPODE[T](e.v, e.f, e.sideChannels())
		if err != nil {
			return nil, err
		}
		return pode, nil
	case *HDAE[T]:
		hode, err := NewHODE[T](e.v, e.f, e.hamiltonian, e.sideChannels())
		if err != nil {
			return nil, err
		}
		return hode, nil
	}
	return nil, argumentError(equ.Kind(), "equation", "no unconstrained view")
}

// Stage advances q̇ = v(t, q) by one step of size h from (t, q) into out.
type Stage[T Float] func(out []T, t float64, q []T, h float64, v Field[T])

// Splitting composes the phases of an SODE into one step. Phase i runs
// over weights[i]*h starting at t, in order. Phases without an explicit
// solution are advanced with the stage.
type Splitting[T Float] struct {
	phases  []Phase[T]
	weights []float64
	stage   Stage[T]
}

// NewSplitting binds equ with params. Without weights every phase runs over
// the full step (Lie composition).
func NewSplitting[T Float](equ *SODE[T], params param.Parameters, stage Stage[T], weights ...float64) (*Splitting[T], error) {
	fns, err := Bind[T](equ, params)
	if err != nil {
		return nil, err
	}
	phases := fns.Phases()

	if len(weights) == 0 {
		weights = make([]float64, len(phases))
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != len(phases) {
		return nil, argumentError(KindSODE, "weights", fmt.Sprintf("%d weights for %d phases", len(weights), len(phases)))
	}
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, argumentError(KindSODE, "weights", fmt.Sprintf("weight %d is %v", i, w))
		}
	}
	for i, ph := range phases {
		if ph.Q == nil && stage == nil {
			return nil, argumentError(KindSODE, phaseSolution(i), "phase has no solution and no stage was given")
		}
	}

	return &Splitting[T]{
		phases:  phases,
		weights: append([]float64(nil), weights...),
		stage:   stage,
	}, nil
}

func (s *Splitting[T]) NPhases() int { return len(s.phases) }

// Step writes into out the state reached from (t, q) after one composed step
// of size h. out may alias q.
func (s *Splitting[T]) Step(out []T, t float64, q []T, h float64) {
	cur := append([]T(nil), q...)
	next := make([]T, len(q))
	for i, ph := range s.phases {
		hi := s.weights[i] * h
		if ph.Q != nil {
			ph.Q(next, t, cur, hi)
		} else {
			s.stage(next, t, cur, hi, ph.V)
		}
		cur, next = next, cur
	}
	copy(out, cur)
}
