package integrators

import (
	"fmt"

	"github.com/san-kum/ivp/internal/equation"
)

// Stages lists the names accepted by New.
func Stages() []string { return []string{"euler", "rk4"} }

// New returns a fresh stage by name. Stages keep scratch buffers and must
// not be shared between goroutines.
func New[T equation.Float](name string) (equation.Stage[T], error) {
	switch name {
	case "euler":
		return NewEuler[T]().Stage, nil
	case "rk4":
		return NewRK4[T]().Stage, nil
	}
	return nil, fmt.Errorf("unknown integrator: %s", name)
}
