package models

import (
	"errors"
	"fmt"
	"slices"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/param"
)

var ErrUnsupportedKind = errors.New("models: unsupported equation kind")

// Model is a physical system that can be posed as one or more equation
// variants over float64 state.
type Model interface {
	Name() string
	Kinds() []equation.Kind
	Equation(kind equation.Kind) (equation.Equation[float64], error)
	Conditions(kind equation.Kind) (equation.InitialConditions[float64], error)
	Record() param.Record
}

func unsupported(m Model, kind equation.Kind) error {
	return fmt.Errorf("%w: %s as %s", ErrUnsupportedKind, m.Name(), kind)
}

func supports(m Model, kind equation.Kind) bool {
	return slices.Contains(m.Kinds(), kind)
}

func wrap[E equation.Equation[float64]](e E, err error) (equation.Equation[float64], error) {
	if err != nil {
		return nil, err
	}
	return e, nil
}

func zeros(n int) []float64 { return make([]float64, n) }
