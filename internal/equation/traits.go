package equation

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/san-kum/ivp/internal/param"
)

// Traits are the capability predicates every variant answers. Answers are
// fixed when the equation is built.
type Traits interface {
	HasVectorField() bool
	HasHamiltonian() bool
	HasLagrangian() bool
	HasInvariants() bool
	HasParameters() bool
	HasPeriodicity() bool
	HasSecondaryFields() bool
	HasSolution() bool
}

// InvariantSet is the invariant channel: Invariants or NullInvariants.
type InvariantSet interface {
	invariants()
}

// NullInvariants marks an equation without invariants.
type NullInvariants struct{}

func (NullInvariants) invariants() {}

// Invariants maps a label to a scalar-producing callable.
type Invariants map[string]any

func (Invariants) invariants() {}

// Names returns the invariant labels in sorted order.
func (inv Invariants) Names() []string {
	names := make([]string, 0, len(inv))
	for name := range inv {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PeriodicitySet is the periodicity channel: Periodicity or NullPeriodicity.
type PeriodicitySet interface {
	periodicity()
}

// NullPeriodicity marks an equation without periodic coordinates.
type NullPeriodicity struct{}

func (NullPeriodicity) periodicity() {}

// Periodicity holds the per-dimension wrap bound of q; zero means the
// dimension is not periodic.
type Periodicity[T Float] []T

func (Periodicity[T]) periodicity() {}

type options struct {
	invariants  InvariantSet
	parameters  param.Declaration
	periodicity PeriodicitySet

	ubar, gbar, psi any
	fbar            any
}

type Option func(*options)

func WithInvariants(inv Invariants) Option {
	return func(o *options) {
		if len(inv) == 0 {
			o.invariants = NullInvariants{}
			return
		}
		c := make(Invariants, len(inv))
		for k, fn := range inv {
			c[k] = fn
		}
		o.invariants = c
	}
}

func WithParameters(schema param.Schema) Option {
	return func(o *options) {
		c := make(param.Schema, len(schema))
		for k, v := range schema {
			c[k] = v
		}
		o.parameters = c
	}
}

func WithPeriodicity[T Float](period []T) Option {
	return func(o *options) {
		o.periodicity = Periodicity[T](append([]T(nil), period...))
	}
}

// WithSecondary sets the secondary roles ū, ḡ and ψ of a DAE-family
// variant. Nil entries are left unset.
func WithSecondary(ubar, gbar, psi any) Option {
	return func(o *options) {
		o.ubar, o.gbar, o.psi = ubar, gbar, psi
	}
}

// WithForceGuess sets f̄ of an implicit variant; it defaults to f.
func WithForceGuess(fbar any) Option {
	return func(o *options) {
		o.fbar = fbar
	}
}

// withSideChannels copies the optional channels of an existing equation.
func withSideChannels(inv InvariantSet, params param.Declaration, period PeriodicitySet) Option {
	return func(o *options) {
		o.invariants, o.parameters, o.periodicity = inv, params, period
	}
}

func (o *options) reject(kind Kind, secondary, fbar bool) error {
	if !secondary && (o.ubar != nil || o.gbar != nil || o.psi != nil) {
		return signatureError(kind, "ū/ḡ/ψ", "secondary roles are not defined for this variant")
	}
	if !fbar && o.fbar != nil {
		return signatureError(kind, "f̄", "force guess is not defined for this variant")
	}
	return nil
}

type base[T Float] struct {
	kind        Kind
	invariants  InvariantSet
	parameters  param.Declaration
	periodicity PeriodicitySet
}

func newBase[T Float](kind Kind, opts []Option) (base[T], *options, error) {
	o := &options{
		invariants:  NullInvariants{},
		parameters:  param.NullParameters{},
		periodicity: NullPeriodicity{},
	}
	for _, opt := range opts {
		opt(o)
	}

	switch p := o.periodicity.(type) {
	case NullPeriodicity:
	case Periodicity[T]:
		if len(p) == 0 {
			o.periodicity = NullPeriodicity{}
		}
	default:
		return base[T]{}, nil, argumentError(kind, "periodicity", fmt.Sprintf("want %T, got %T", Periodicity[T]{}, o.periodicity))
	}

	return base[T]{
		kind:        kind,
		invariants:  o.invariants,
		parameters:  o.parameters,
		periodicity: o.periodicity,
	}, o, nil
}

func (b base[T]) Kind() Kind                    { return b.kind }
func (b base[T]) Invariants() InvariantSet      { return b.invariants }
func (b base[T]) Parameters() param.Declaration { return b.parameters }
func (b base[T]) Periodicity() PeriodicitySet   { return b.periodicity }
func (b base[T]) sideChannels() Option          { return withSideChannels(b.invariants, b.parameters, b.periodicity) }
func (b base[T]) Element() reflect.Type         { return reflect.TypeFor[T]() }
func (b base[T]) zero() (z T)                   { return }
func (b base[T]) HasVectorField() bool          { return true }
func (b base[T]) HasHamiltonian() bool          { return false }
func (b base[T]) HasLagrangian() bool           { return false }
func (b base[T]) HasSecondaryFields() bool      { return false }
func (b base[T]) HasSolution() bool             { return false }

func (b base[T]) HasInvariants() bool {
	_, null := b.invariants.(NullInvariants)
	return !null
}

func (b base[T]) HasParameters() bool {
	_, null := b.parameters.(param.NullParameters)
	return !null
}

func (b base[T]) HasPeriodicity() bool {
	_, null := b.periodicity.(NullPeriodicity)
	return !null
}
