package equation

import (
	"fmt"
	"sort"

	"github.com/san-kum/ivp/internal/param"
)

// Bound role shapes. Parameters are already applied.
type (
	Field[T Float]       func(out []T, t float64, x ...[]T)
	MatrixField[T Float] func(out *Matrix[T], t float64, x ...[]T)
	ScalarField[T Float] func(t float64, x ...[]T) T
	Solution[T Float]    func(out []T, t float64, q []T, h float64)
)

// Phase is one step of a splitting equation. Q is nil when the phase has
// no explicit solution.
type Phase[T Float] struct {
	V Field[T]
	Q Solution[T]
}

// Functions is the bundle of bound roles a solver evaluates. Names are the
// role names of the variant.
type Functions[T Float] struct {
	kind      Kind
	fields    map[string]Field[T]
	matrices  map[string]MatrixField[T]
	scalars   map[string]ScalarField[T]
	solutions map[string]Solution[T]
	phases    []Phase[T]
}

// Kind is the variant the bundle was bound from.
func (f *Functions[T]) Kind() Kind { return f.kind }

// Field looks up a vector-valued role by name.
func (f *Functions[T]) Field(name string) (Field[T], bool) {
	fn, ok := f.fields[name]
	return fn, ok
}

// Matrix looks up a matrix-valued role, such as a diffusion, by name.
func (f *Functions[T]) Matrix(name string) (MatrixField[T], bool) {
	fn, ok := f.matrices[name]
	return fn, ok
}

// Scalar looks up a scalar-valued role, such as a Hamiltonian, by name.
func (f *Functions[T]) Scalar(name string) (ScalarField[T], bool) {
	fn, ok := f.scalars[name]
	return fn, ok
}

// Solution looks up an exact phase solution by name.
func (f *Functions[T]) Solution(name string) (Solution[T], bool) {
	fn, ok := f.solutions[name]
	return fn, ok
}

// Phases returns the splitting phases in order; empty unless the bundle
// was bound from an SODE.
func (f *Functions[T]) Phases() []Phase[T] {
	return append([]Phase[T](nil), f.phases...)
}

// Names returns every bound role name in sorted order.
func (f *Functions[T]) Names() []string {
	names := make([]string, 0, len(f.fields)+len(f.matrices)+len(f.scalars)+len(f.solutions))
	for name := range f.fields {
		names = append(names, name)
	}
	for name := range f.matrices {
		names = append(names, name)
	}
	for name := range f.scalars {
		names = append(names, name)
	}
	for name := range f.solutions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scalars is a bundle of bound scalar roles, used for invariants.
type Scalars[T Float] map[string]ScalarField[T]

// Names returns the invariant labels in sorted order.
func (s Scalars[T]) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// record resolves the value bound into closures. Equations without a schema
// bind nothing; a schema with absent parameters binds an empty record.
func record(equ Traits, params param.Parameters) param.Record {
	if !equ.HasParameters() {
		return nil
	}
	if rec, ok := params.(param.Record); ok {
		return rec.Clone()
	}
	return param.Record{}
}

// Bind returns the parameter-bound role bundle of equ.
func Bind[T Float](equ Equation[T], params param.Parameters) (*Functions[T], error) {
	if err := CheckParameters[T](equ, params); err != nil {
		return nil, err
	}
	rec := record(equ, params)
	withParams := equ.HasParameters()

	fns := &Functions[T]{
		kind:      equ.Kind(),
		fields:    make(map[string]Field[T]),
		matrices:  make(map[string]MatrixField[T]),
		scalars:   make(map[string]ScalarField[T]),
		solutions: make(map[string]Solution[T]),
	}

	for _, r := range equ.layout().present() {
		fn, err := inspect[T](equ.Kind(), r, withParams)
		if err != nil {
			return nil, err
		}
		switch r.class {
		case vectorRole:
			c, ok := canonicalField[T](fn)
			if !ok {
				return nil, unbindable(equ.Kind(), r)
			}
			fns.fields[r.name] = func(out []T, t float64, x ...[]T) { c(out, t, rec, x...) }
		case matrixRole:
			c, ok := canonicalMatrix[T](fn)
			if !ok {
				return nil, unbindable(equ.Kind(), r)
			}
			fns.matrices[r.name] = func(out *Matrix[T], t float64, x ...[]T) { c(out, t, rec, x...) }
		case scalarRole:
			c, ok := canonicalScalar[T](fn)
			if !ok {
				return nil, unbindable(equ.Kind(), r)
			}
			fns.scalars[r.name] = func(t float64, x ...[]T) T { return c(t, rec, x...) }
		case solutionRole:
			c, ok := canonicalSolution[T](fn)
			if !ok {
				return nil, unbindable(equ.Kind(), r)
			}
			fns.solutions[r.name] = func(out []T, t float64, q []T, h float64) { c(out, t, q, h, rec) }
		}
	}

	if s, ok := any(equ).(*SODE[T]); ok {
		fns.phases = make([]Phase[T], len(s.phases))
		for i := range s.phases {
			fns.phases[i].V = fns.fields[phaseField(i)]
			fns.phases[i].Q = fns.solutions[phaseSolution(i)]
		}
	}

	return fns, nil
}

// BindInvariants returns the parameter-bound invariants of equ. The bundle
// is empty when equ has none.
func BindInvariants[T Float](equ Equation[T], params param.Parameters) (Scalars[T], error) {
	if err := CheckParameters[T](equ, params); err != nil {
		return nil, err
	}
	rec := record(equ, params)
	withParams := equ.HasParameters()

	out := make(Scalars[T])
	for _, r := range invariantRoles[T](equ) {
		fn, err := inspect[T](equ.Kind(), r, withParams)
		if err != nil {
			return nil, err
		}
		c, ok := canonicalScalar[T](fn)
		if !ok {
			return nil, unbindable(equ.Kind(), r)
		}
		out[r.name] = func(t float64, x ...[]T) T { return c(t, rec, x...) }
	}
	return out, nil
}

func invariantRoles[T Float](equ Equation[T]) []role {
	inv, ok := equ.Invariants().(Invariants)
	if !ok {
		return nil
	}
	args := equ.layout().invariant
	roles := make([]role, 0, len(inv))
	for _, name := range inv.Names() {
		roles = append(roles, role{name: name, class: scalarRole, args: args, fn: inv[name]})
	}
	return roles
}

func unbindable(kind Kind, r role) error {
	return signatureError(kind, r.name, fmt.Sprintf("unsupported arity %d", len(r.args)))
}
