package integrators

import "github.com/san-kum/ivp/internal/equation"

type Euler[T equation.Float] struct {
	dx []T
}

func NewEuler[T equation.Float]() *Euler[T] {
	return &Euler[T]{}
}

// Stage writes q + h v(t, q) into out. out may alias q.
func (e *Euler[T]) Stage(out []T, t float64, q []T, h float64, v equation.Field[T]) {
	if len(e.dx) != len(q) {
		e.dx = make([]T, len(q))
	}
	v(e.dx, t, q)
	for i := range q {
		out[i] = q[i] + T(h)*e.dx[i]
	}
}
