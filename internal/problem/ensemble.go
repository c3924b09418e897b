package problem

import (
	"context"
	"fmt"
	"iter"

	"github.com/sgostarter/i/l"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/param"
)

// Ensemble is a batch of problems sharing one equation, time span and step.
type Ensemble[T equation.Float] struct {
	equ    equation.Equation[T]
	span   [2]float64
	step   float64
	ics    []equation.InitialConditions[T]
	params []param.Parameters
	opts   []Option
}

// NewEnsemble accepts equal-length collections of initial conditions and
// parameters, or a single entry on either side broadcast to the length of
// the other. An empty parameter collection means no parameters for every
// entry.
//
// The first entry is validated in full, roles and parameters included; the
// rest must share its structure. Every entry is validated again by Problem.
func NewEnsemble[T equation.Float](equ equation.Equation[T], span [2]float64, step float64, ics []equation.InitialConditions[T], params []param.Parameters, opts ...Option) (*Ensemble[T], error) {
	if equ == nil {
		return nil, errNilEquation
	}
	o := newOptions(opts)
	logger := o.logger.WithFields(l.StringField(l.ClsKey, "Ensemble"), l.StringField("kind", equ.Kind().String()))

	e, err := newEnsemble(equ, span, step, ics, params)
	if err != nil {
		logger.WithFields(l.ErrorField(err)).Warn("validation failed")
		return nil, err
	}
	e.opts = append([]Option(nil), opts...)

	logger.WithFields(l.IntField("nsamples", e.NSamples())).Debug("ensemble built")
	return e, nil
}

func newEnsemble[T equation.Float](equ equation.Equation[T], span [2]float64, step float64, ics []equation.InitialConditions[T], params []param.Parameters) (*Ensemble[T], error) {
	kind := equ.Kind()
	if err := checkTiming(span, step); err != nil {
		return nil, &equation.ValidationError{Equation: kind, Key: "timing", Detail: err.Error(), Err: equation.ErrArgumentMismatch}
	}
	if len(ics) == 0 {
		return nil, cardinalityError(kind, "ics", "no initial conditions")
	}
	if len(params) == 0 {
		params = []param.Parameters{param.NullParameters{}}
	}

	n := len(ics)
	switch {
	case len(params) == n:
	case len(params) == 1:
		params = broadcast(params[0], n)
	case n == 1:
		n = len(params)
		ics = broadcast(ics[0], n)
	default:
		return nil, cardinalityError(kind, "params", fmt.Sprintf("%d initial conditions, %d parameter records", len(ics), len(params)))
	}

	if err := equation.CheckInitialConditions(equ, ics[0]); err != nil {
		return nil, err
	}
	if err := equation.CheckMethods(equ, ics[0], params[0]); err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		if !ics[0].SameStructure(ics[i]) {
			return nil, cardinalityError(kind, "ics", fmt.Sprintf("entry %d differs in structure from entry 0", i))
		}
	}

	e := &Ensemble[T]{
		equ:    equ,
		span:   span,
		step:   step,
		ics:    make([]equation.InitialConditions[T], n),
		params: make([]param.Parameters, n),
	}
	for i := range n {
		e.ics[i] = ics[i].Clone()
		if params[i] == nil {
			e.params[i] = param.NullParameters{}
		} else {
			e.params[i] = cloneParameters(params[i])
		}
	}
	return e, nil
}

func broadcast[E any](v E, n int) []E {
	s := make([]E, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func cardinalityError(kind equation.Kind, key, detail string) error {
	return &equation.ValidationError{Equation: kind, Key: key, Detail: detail, Err: equation.ErrCardinalityMismatch}
}

func (e *Ensemble[T]) Equation() equation.Equation[T] { return e.equ }
func (e *Ensemble[T]) Span() [2]float64               { return e.span }
func (e *Ensemble[T]) Step() float64                  { return e.step }
func (e *Ensemble[T]) NSamples() int                  { return len(e.ics) }

func (e *Ensemble[T]) InitialCondition(i int) equation.InitialConditions[T] {
	return e.ics[i].Clone()
}

func (e *Ensemble[T]) Parameter(i int) param.Parameters {
	return cloneParameters(e.params[i])
}

// NConstraints is the number of algebraic multipliers of every entry.
func (e *Ensemble[T]) NConstraints() int {
	return len(e.ics[0][equation.KeyLambda])
}

// Problem builds and fully validates entry i.
func (e *Ensemble[T]) Problem(i int) (*Problem[T], error) {
	if i < 0 || i >= len(e.ics) {
		return nil, fmt.Errorf("problem: index %d out of range [0, %d)", i, len(e.ics))
	}
	return New(e.equ, e.span, e.step, e.ics[i], e.params[i], e.opts...)
}

// All yields every entry in order. Iteration may be restarted.
func (e *Ensemble[T]) All() iter.Seq2[*Problem[T], error] {
	return func(yield func(*Problem[T], error) bool) {
		for i := range e.ics {
			if !yield(e.Problem(i)) {
				return
			}
		}
	}
}

// Each builds every entry and hands it to fn on up to workers goroutines.
// workers <= 0 means one goroutine per entry. The first error cancels the
// remaining entries.
func (e *Ensemble[T]) Each(ctx context.Context, workers int, fn func(ctx context.Context, i int, p *Problem[T]) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i := range e.ics {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := e.Problem(i)
			if err != nil {
				return err
			}
			return fn(gctx, i, p)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
