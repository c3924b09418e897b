package equation

import "fmt"

// SDE is dq = v(t, q) dt + B(t, q) dW with nnoise independent Wiener
// processes. B writes an len(q) × nnoise matrix.
type SDE[T Float] struct {
	base[T]
	v, b   any
	nnoise int
}

func NewSDE[T Float](v, b any, nnoise int, opts ...Option) (*SDE[T], error) {
	bs, o, err := newBase[T](KindSDE, opts)
	if err != nil {
		return nil, err
	}
	if err := o.reject(KindSDE, false, false); err != nil {
		return nil, err
	}
	if err := checkNoise(KindSDE, nnoise); err != nil {
		return nil, err
	}
	return build[T](&SDE[T]{base: bs, v: v, b: b, nnoise: nnoise})
}

func (e *SDE[T]) NNoise() int { return e.nnoise }

func (e *SDE[T]) layout() layout {
	return layout{
		roles: []role{
			{name: "v", class: vectorRole, args: []string{KeyQ}, fn: e.v},
			{name: "B", class: matrixRole, args: []string{KeyQ}, fn: e.b},
		},
		keys:      []string{KeyQ},
		invariant: []string{KeyQ},
	}
}

// PSDE is the partitioned system
//
//	dq = v(t, q, p) dt + B(t, q, p) dW
//	dp = f(t, q, p) dt + G(t, q, p) dW
type PSDE[T Float] struct {
	base[T]
	v, f, b, g any
	nnoise     int
}

func NewPSDE[T Float](v, f, b, g any, nnoise int, opts ...Option) (*PSDE[T], error) {
	bs, o, err := newBase[T](KindPSDE, opts)
	if err != nil {
		return nil, err
	}
	if err := o.reject(KindPSDE, false, false); err != nil {
		return nil, err
	}
	if err := checkNoise(KindPSDE, nnoise); err != nil {
		return nil, err
	}
	return build[T](&PSDE[T]{base: bs, v: v, f: f, b: b, g: g, nnoise: nnoise})
}

func (e *PSDE[T]) NNoise() int { return e.nnoise }

func (e *PSDE[T]) layout() layout {
	qp := []string{KeyQ, KeyP}
	return layout{
		roles: []role{
			{name: "v", class: vectorRole, args: qp, fn: e.v},
			{name: "f", class: vectorRole, args: qp, fn: e.f},
			{name: "B", class: matrixRole, args: qp, fn: e.b},
			{name: "G", class: matrixRole, args: qp, fn: e.g},
		},
		keys:      qp,
		invariant: qp,
	}
}

// SPSDE is a PSDE whose momentum drift and diffusion are split in two:
// f = f1 + f2 and G = G1 + G2.
type SPSDE[T Float] struct {
	base[T]
	v, f1, f2, b, g1, g2 any
	nnoise               int
}

func NewSPSDE[T Float](v, f1, f2, b, g1, g2 any, nnoise int, opts ...Option) (*SPSDE[T], error) {
	bs, o, err := newBase[T](KindSPSDE, opts)
	if err != nil {
		return nil, err
	}
	if err := o.reject(KindSPSDE, false, false); err != nil {
		return nil, err
	}
	if err := checkNoise(KindSPSDE, nnoise); err != nil {
		return nil, err
	}
	return build[T](&SPSDE[T]{base: bs, v: v, f1: f1, f2: f2, b: b, g1: g1, g2: g2, nnoise: nnoise})
}

func (e *SPSDE[T]) NNoise() int { return e.nnoise }

func (e *SPSDE[T]) layout() layout {
	qp := []string{KeyQ, KeyP}
	return layout{
		roles: []role{
			{name: "v", class: vectorRole, args: qp, fn: e.v},
			{name: "f1", class: vectorRole, args: qp, fn: e.f1},
			{name: "f2", class: vectorRole, args: qp, fn: e.f2},
			{name: "B", class: matrixRole, args: qp, fn: e.b},
			{name: "G1", class: matrixRole, args: qp, fn: e.g1},
			{name: "G2", class: matrixRole, args: qp, fn: e.g2},
		},
		keys:      qp,
		invariant: qp,
	}
}

func checkNoise(kind Kind, nnoise int) error {
	if nnoise <= 0 {
		return argumentError(kind, "nnoise", fmt.Sprintf("must be positive, got %d", nnoise))
	}
	return nil
}
