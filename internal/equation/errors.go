package equation

import (
	"errors"
	"strings"
)

// Validation errors. All of them are raised at construction, never while
// evaluating a role.
var (
	// ErrShapeMismatch indicates a missing initial-condition key or state
	// vectors of inconsistent shape.
	ErrShapeMismatch = errors.New("equation: shape mismatch")

	// ErrSignatureMismatch indicates a role callable that cannot be invoked
	// with the argument list its variant demands.
	ErrSignatureMismatch = errors.New("equation: signature mismatch")

	// ErrCardinalityMismatch indicates ensemble collections of unequal length
	// or initial conditions of inconsistent structure.
	ErrCardinalityMismatch = errors.New("equation: cardinality mismatch")

	// ErrArgumentMismatch indicates an invalid time span, time step or
	// equation argument.
	ErrArgumentMismatch = errors.New("equation: argument mismatch")

	// ErrParameterMismatch indicates a parameter record that does not satisfy
	// the equation's declared schema.
	ErrParameterMismatch = errors.New("equation: parameter mismatch")
)

// ValidationError wraps one of the sentinels above with the role or key that
// failed.
type ValidationError struct {
	Equation Kind
	Role     string
	Key      string
	Detail   string
	Err      error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	b.WriteString(": ")
	b.WriteString(e.Equation.String())
	if e.Role != "" {
		b.WriteString(": role ")
		b.WriteString(e.Role)
	}
	if e.Key != "" {
		b.WriteString(": key ")
		b.WriteString(e.Key)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func shapeError(kind Kind, key, detail string) error {
	return &ValidationError{Equation: kind, Key: key, Detail: detail, Err: ErrShapeMismatch}
}

func signatureError(kind Kind, role, detail string) error {
	return &ValidationError{Equation: kind, Role: role, Detail: detail, Err: ErrSignatureMismatch}
}

func argumentError(kind Kind, key, detail string) error {
	return &ValidationError{Equation: kind, Key: key, Detail: detail, Err: ErrArgumentMismatch}
}
