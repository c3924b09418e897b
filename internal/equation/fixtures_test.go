package equation

type vec = []float64

func v1(out vec, _ float64, q vec) { copy(out, q) }

func v2(out vec, _ float64, q, p vec) {
	for i := range out {
		out[i] = q[i] + p[i]
	}
}

func v3(out vec, _ float64, a, _, _ vec) { copy(out, a) }

func v4(out vec, _ float64, a, _, _, _ vec) { copy(out, a) }

func s2(_ float64, q, p vec) float64 { return q[0] * p[0] }

func m1(out *Matrix[float64], _ float64, q vec) {
	for i := range q {
		out.Set(i, 0, q[i])
	}
}

func m2(out *Matrix[float64], _ float64, q, _ vec) { m1(out, 0, q) }

func shift(out vec, _ float64, q vec, h float64) {
	for i := range q {
		out[i] = q[i] + h
	}
}

func wrong(out vec, _ float64) {}

type variantCase struct {
	kind  Kind
	first string
	build func(first any) (Equation[float64], error)
}

func wrap[E Equation[float64]](e E, err error) (Equation[float64], error) {
	if err != nil {
		return nil, err
	}
	return e, nil
}

// variants builds every variant with well-formed roles. first replaces the
// first role when non-nil.
var variants = []variantCase{
	{KindODE, "v", func(first any) (Equation[float64], error) {
		return wrap(NewODE[float64](or(first, v1)))
	}},
	{KindPODE, "v", func(first any) (Equation[float64], error) {
		return wrap(NewPODE[float64](or(first, v2), v2))
	}},
	{KindHODE, "v", func(first any) (Equation[float64], error) {
		return wrap(NewHODE[float64](or(first, v2), v2, s2))
	}},
	{KindIODE, "ϑ", func(first any) (Equation[float64], error) {
		return wrap(NewIODE[float64](or(first, v2), v2, v3, v2))
	}},
	{KindLODE, "ϑ", func(first any) (Equation[float64], error) {
		return wrap(NewLODE[float64](or(first, v2), v2, v3, v2, s2))
	}},
	{KindSODE, "v1", func(first any) (Equation[float64], error) {
		return wrap(NewSODE[float64]([]SplitPhase{{V: or(first, v1), Q: shift}, {V: v1}}))
	}},
	{KindDAE, "v", func(first any) (Equation[float64], error) {
		return wrap(NewDAE[float64](or(first, v1), v2, v1))
	}},
	{KindPDAE, "v", func(first any) (Equation[float64], error) {
		return wrap(NewPDAE[float64](or(first, v2), v2, v3, v3, v2))
	}},
	{KindHDAE, "v", func(first any) (Equation[float64], error) {
		return wrap(NewHDAE[float64](or(first, v2), v2, v3, v3, v2, v3, v3, v4, s2))
	}},
	{KindIDAE, "ϑ", func(first any) (Equation[float64], error) {
		return wrap(NewIDAE[float64](or(first, v2), v2, v4, v4, v3, v2))
	}},
	{KindLDAE, "ϑ", func(first any) (Equation[float64], error) {
		return wrap(NewLDAE[float64](or(first, v2), v2, v4, v4, v3, v2, s2))
	}},
	{KindSDE, "v", func(first any) (Equation[float64], error) {
		return wrap(NewSDE[float64](or(first, v1), m1, 1))
	}},
	{KindPSDE, "v", func(first any) (Equation[float64], error) {
		return wrap(NewPSDE[float64](or(first, v2), v2, m2, m2, 1))
	}},
	{KindSPSDE, "v", func(first any) (Equation[float64], error) {
		return wrap(NewSPSDE[float64](or(first, v2), v2, v2, m2, m2, m2, 1))
	}},
}

func or(fn, def any) any {
	if fn != nil {
		return fn
	}
	return def
}

func fullConditions() InitialConditions[float64] {
	return InitialConditions[float64]{
		KeyQ:      {1, 2},
		KeyP:      {3, 4},
		KeyLambda: {0.5},
	}
}
