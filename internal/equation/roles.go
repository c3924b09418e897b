package equation

import (
	"fmt"
	"reflect"

	"github.com/san-kum/ivp/internal/param"
)

type roleClass int

const (
	vectorRole roleClass = iota
	matrixRole
	scalarRole
	solutionRole
)

// role is one callable slot of a variant. args labels the state arguments
// that follow (out, t).
type role struct {
	name     string
	class    roleClass
	args     []string
	fn       any
	optional bool
}

// layout is the structural description a variant exposes to validation and
// binding.
type layout struct {
	roles     []role
	keys      []string
	invariant []string
}

func (l layout) present() []role {
	roles := make([]role, 0, len(l.roles))
	for _, r := range l.roles {
		if r.optional && isNil(r.fn) {
			continue
		}
		roles = append(roles, r)
	}
	return roles
}

func isNil(fn any) bool {
	if fn == nil {
		return true
	}
	v := reflect.ValueOf(fn)
	return v.Kind() == reflect.Func && v.IsNil()
}

var (
	timeType   = reflect.TypeFor[float64]()
	recordType = reflect.TypeFor[param.Record]()
)

// signature builds the exact function type a role must have.
func signature[T Float](r role, withParams bool) reflect.Type {
	vec := reflect.TypeFor[[]T]()
	in := make([]reflect.Type, 0, len(r.args)+4)
	var out []reflect.Type

	switch r.class {
	case vectorRole, solutionRole:
		in = append(in, vec, timeType)
	case matrixRole:
		in = append(in, reflect.TypeFor[*Matrix[T]](), timeType)
	case scalarRole:
		in = append(in, timeType)
		out = append(out, reflect.TypeFor[T]())
	}
	for range r.args {
		in = append(in, vec)
	}
	if r.class == solutionRole {
		in = append(in, timeType)
	}
	if withParams {
		in = append(in, recordType)
	}
	return reflect.FuncOf(in, out, false)
}

// inspect checks that r.fn can be called with the argument list of its role
// and returns it converted to the exact signature, so named function types
// are accepted.
func inspect[T Float](kind Kind, r role, withParams bool) (any, error) {
	if isNil(r.fn) {
		return nil, signatureError(kind, r.name, "missing")
	}
	want := signature[T](r, withParams)
	got := reflect.TypeOf(r.fn)
	if got == want {
		return r.fn, nil
	}
	if got.Kind() != reflect.Func || !got.ConvertibleTo(want) {
		return nil, signatureError(kind, r.name, fmt.Sprintf("want %v, got %v", want, got))
	}
	return reflect.ValueOf(r.fn).Convert(want).Interface(), nil
}

// Canonical forms take the parameter record explicitly; param-free roles
// ignore it.
type (
	canonField[T Float]    func(out []T, t float64, rec param.Record, x ...[]T)
	canonMatrix[T Float]   func(out *Matrix[T], t float64, rec param.Record, x ...[]T)
	canonScalar[T Float]   func(t float64, rec param.Record, x ...[]T) T
	canonSolution[T Float] func(out []T, t float64, q []T, h float64, rec param.Record)
)

func canonicalField[T Float](fn any) (canonField[T], bool) {
	switch f := fn.(type) {
	case func([]T, float64, []T):
		return func(out []T, t float64, _ param.Record, x ...[]T) { f(out, t, x[0]) }, true
	case func([]T, float64, []T, param.Record):
		return func(out []T, t float64, rec param.Record, x ...[]T) { f(out, t, x[0], rec) }, true
	case func([]T, float64, []T, []T):
		return func(out []T, t float64, _ param.Record, x ...[]T) { f(out, t, x[0], x[1]) }, true
	case func([]T, float64, []T, []T, param.Record):
		return func(out []T, t float64, rec param.Record, x ...[]T) { f(out, t, x[0], x[1], rec) }, true
	case func([]T, float64, []T, []T, []T):
		return func(out []T, t float64, _ param.Record, x ...[]T) { f(out, t, x[0], x[1], x[2]) }, true
	case func([]T, float64, []T, []T, []T, param.Record):
		return func(out []T, t float64, rec param.Record, x ...[]T) { f(out, t, x[0], x[1], x[2], rec) }, true
	case func([]T, float64, []T, []T, []T, []T):
		return func(out []T, t float64, _ param.Record, x ...[]T) { f(out, t, x[0], x[1], x[2], x[3]) }, true
	case func([]T, float64, []T, []T, []T, []T, param.Record):
		return func(out []T, t float64, rec param.Record, x ...[]T) { f(out, t, x[0], x[1], x[2], x[3], rec) }, true
	case func([]T, float64, []T, []T, []T, []T, []T):
		return func(out []T, t float64, _ param.Record, x ...[]T) { f(out, t, x[0], x[1], x[2], x[3], x[4]) }, true
	case func([]T, float64, []T, []T, []T, []T, []T, param.Record):
		return func(out []T, t float64, rec param.Record, x ...[]T) { f(out, t, x[0], x[1], x[2], x[3], x[4], rec) }, true
	}
	return nil, false
}

func canonicalMatrix[T Float](fn any) (canonMatrix[T], bool) {
	switch f := fn.(type) {
	case func(*Matrix[T], float64, []T):
		return func(out *Matrix[T], t float64, _ param.Record, x ...[]T) { f(out, t, x[0]) }, true
	case func(*Matrix[T], float64, []T, param.Record):
		return func(out *Matrix[T], t float64, rec param.Record, x ...[]T) { f(out, t, x[0], rec) }, true
	case func(*Matrix[T], float64, []T, []T):
		return func(out *Matrix[T], t float64, _ param.Record, x ...[]T) { f(out, t, x[0], x[1]) }, true
	case func(*Matrix[T], float64, []T, []T, param.Record):
		return func(out *Matrix[T], t float64, rec param.Record, x ...[]T) { f(out, t, x[0], x[1], rec) }, true
	}
	return nil, false
}

func canonicalScalar[T Float](fn any) (canonScalar[T], bool) {
	switch f := fn.(type) {
	case func(float64, []T) T:
		return func(t float64, _ param.Record, x ...[]T) T { return f(t, x[0]) }, true
	case func(float64, []T, param.Record) T:
		return func(t float64, rec param.Record, x ...[]T) T { return f(t, x[0], rec) }, true
	case func(float64, []T, []T) T:
		return func(t float64, _ param.Record, x ...[]T) T { return f(t, x[0], x[1]) }, true
	case func(float64, []T, []T, param.Record) T:
		return func(t float64, rec param.Record, x ...[]T) T { return f(t, x[0], x[1], rec) }, true
	}
	return nil, false
}

func canonicalSolution[T Float](fn any) (canonSolution[T], bool) {
	switch f := fn.(type) {
	case func([]T, float64, []T, float64):
		return func(out []T, t float64, q []T, h float64, _ param.Record) { f(out, t, q, h) }, true
	case func([]T, float64, []T, float64, param.Record):
		return func(out []T, t float64, q []T, h float64, rec param.Record) { f(out, t, q, h, rec) }, true
	}
	return nil, false
}
