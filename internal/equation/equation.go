package equation

import (
	"reflect"

	"github.com/san-kum/ivp/internal/param"
)

// Equation is implemented by every variant in this package. The element
// type is part of the method set, so an Equation[float32] is never an
// Equation[float64].
type Equation[T Float] interface {
	Traits
	Kind() Kind
	Invariants() InvariantSet
	Parameters() param.Declaration
	Periodicity() PeriodicitySet
	Element() reflect.Type
	layout() layout
	zero() T
}

// Stochastic is implemented by the SDE family.
type Stochastic interface {
	NNoise() int
}

// RoleNames lists the roles equ fills, in declaration order.
func RoleNames[T Float](equ Equation[T]) []string {
	roles := equ.layout().present()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.name
	}
	return names
}

// RequiredKeys lists the initial-condition keys equ needs.
func RequiredKeys[T Float](equ Equation[T]) []string {
	return append([]string(nil), equ.layout().keys...)
}

// InvariantArguments labels the state arguments invariants of equ take
// after t.
func InvariantArguments[T Float](equ Equation[T]) []string {
	return append([]string(nil), equ.layout().invariant...)
}

// RoleArguments labels the state arguments role name of equ takes after
// (out, t).
func RoleArguments[T Float](equ Equation[T], name string) ([]string, bool) {
	for _, r := range equ.layout().present() {
		if r.name == name {
			return append([]string(nil), r.args...), true
		}
	}
	return nil, false
}

// Signature describes the argument list of a role, for diagnostics.
func Signature[T Float](equ Equation[T], name string) (string, bool) {
	for _, r := range equ.layout().present() {
		if r.name == name {
			return signature[T](r, equ.HasParameters()).String(), true
		}
	}
	for _, r := range invariantRoles[T](equ) {
		if r.name == name {
			return signature[T](r, equ.HasParameters()).String(), true
		}
	}
	return "", false
}

// build checks required roles and returns e.
func build[T Float, E Equation[T]](e E) (E, error) {
	for _, r := range e.layout().roles {
		if !r.optional && isNil(r.fn) {
			var zero E
			return zero, signatureError(e.Kind(), r.name, "missing")
		}
	}
	return e, nil
}
