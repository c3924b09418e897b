package integrators

import "github.com/san-kum/ivp/internal/equation"

type RK4[T equation.Float] struct {
	k1, k2, k3, k4 []T
	scratch        []T
}

func NewRK4[T equation.Float]() *RK4[T] {
	return &RK4[T]{}
}

func (r *RK4[T]) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make([]T, n)
		r.k2 = make([]T, n)
		r.k3 = make([]T, n)
		r.k4 = make([]T, n)
		r.scratch = make([]T, n)
	}
}

// Stage advances q̇ = v(t, q) by one classical Runge-Kutta step. out may
// alias q.
func (r *RK4[T]) Stage(out []T, t float64, q []T, h float64, v equation.Field[T]) {
	n := len(q)
	r.ensureScratch(n)
	dt := T(h)

	v(r.k1, t, q)

	for i := 0; i < n; i++ {
		r.scratch[i] = q[i] + dt*0.5*r.k1[i]
	}
	v(r.k2, t+h*0.5, r.scratch)

	for i := 0; i < n; i++ {
		r.scratch[i] = q[i] + dt*0.5*r.k2[i]
	}
	v(r.k3, t+h*0.5, r.scratch)

	for i := 0; i < n; i++ {
		r.scratch[i] = q[i] + dt*r.k3[i]
	}
	v(r.k4, t+h, r.scratch)

	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		out[i] = q[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
}
