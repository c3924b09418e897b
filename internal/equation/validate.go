package equation

import (
	"fmt"

	"github.com/san-kum/ivp/internal/param"
)

// CheckInitialConditions reports whether ics fits equ: every required key
// is present, q is non-empty, q, p and v share one length and multiplier
// vectors are non-empty. A periodicity vector must match the length of q.
func CheckInitialConditions[T Float](equ Equation[T], ics InitialConditions[T]) error {
	kind := equ.Kind()
	for _, k := range equ.layout().keys {
		if _, ok := ics[k]; !ok {
			return shapeError(kind, k, "missing")
		}
	}

	q := ics[KeyQ]
	if len(q) == 0 {
		return shapeError(kind, KeyQ, "empty")
	}

	for _, k := range ics.Keys() {
		x := ics[k]
		if multiplierKeys[k] {
			if len(x) == 0 {
				return shapeError(kind, k, "empty")
			}
			continue
		}
		if len(x) != len(q) {
			return shapeError(kind, k, fmt.Sprintf("length %d, want %d", len(x), len(q)))
		}
	}

	if p, ok := equ.Periodicity().(Periodicity[T]); ok && len(p) != len(q) {
		return shapeError(kind, "periodicity", fmt.Sprintf("length %d, want %d", len(p), len(q)))
	}
	return nil
}

// CheckParameters reports whether params satisfies the parameter schema
// equ declares.
func CheckParameters[T Float](equ Equation[T], params param.Parameters) error {
	if params == nil {
		params = param.NullParameters{}
	}
	if err := param.Check(equ.Parameters(), params); err != nil {
		return &ValidationError{Equation: equ.Kind(), Key: "parameters", Detail: err.Error(), Err: ErrParameterMismatch}
	}
	return nil
}

// CheckMethods reports whether every role and invariant of equ can be
// invoked with the arguments a problem built from ics and params supplies.
// Return values are never inspected; outputs are written in place.
func CheckMethods[T Float](equ Equation[T], ics InitialConditions[T], params param.Parameters) error {
	if err := CheckParameters[T](equ, params); err != nil {
		return err
	}
	withParams := equ.HasParameters()
	roles := append(equ.layout().present(), invariantRoles[T](equ)...)
	for _, r := range roles {
		for _, arg := range r.args {
			if stateKey(arg) {
				if _, ok := ics[arg]; !ok {
					return shapeError(equ.Kind(), arg, "needed by role "+r.name)
				}
			}
		}
		if _, err := inspect[T](equ.Kind(), r, withParams); err != nil {
			return err
		}
	}
	return nil
}

// stateKey reports whether a role argument is read from the initial
// conditions rather than computed by the solver.
func stateKey(arg string) bool {
	switch arg {
	case KeyQ, KeyP, KeyLambda, KeyMu:
		return true
	}
	return false
}
