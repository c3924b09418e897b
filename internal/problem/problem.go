package problem

import (
	"errors"
	"reflect"

	"github.com/sgostarter/i/l"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/param"
)

var errNilEquation = errors.New("problem: nil equation")

// Problem is a validated initial-value problem.
type Problem[T equation.Float] struct {
	equ       equation.Equation[T]
	span      [2]float64
	step      float64
	ics       equation.InitialConditions[T]
	params    param.Parameters
	functions *equation.Functions[T]
	solutions equation.Scalars[T]
}

// New validates and builds a problem. params may be nil for an equation
// without parameters.
func New[T equation.Float](equ equation.Equation[T], span [2]float64, step float64, ics equation.InitialConditions[T], params param.Parameters, opts ...Option) (*Problem[T], error) {
	if equ == nil {
		return nil, errNilEquation
	}
	o := newOptions(opts)
	logger := o.logger.WithFields(l.StringField(l.ClsKey, "Problem"), l.StringField("kind", equ.Kind().String()))

	p, err := build(equ, span, step, ics, params)
	if err != nil {
		logger.WithFields(l.ErrorField(err)).Warn("validation failed")
		return nil, err
	}

	logger.WithFields(l.IntField("dim", len(p.ics[equation.KeyQ])), l.IntField("nconstraints", p.NConstraints())).Debug("problem built")
	return p, nil
}

func build[T equation.Float](equ equation.Equation[T], span [2]float64, step float64, ics equation.InitialConditions[T], params param.Parameters) (*Problem[T], error) {
	if params == nil {
		params = param.NullParameters{}
	}
	if err := checkTiming(span, step); err != nil {
		return nil, &equation.ValidationError{Equation: equ.Kind(), Key: "timing", Detail: err.Error(), Err: equation.ErrArgumentMismatch}
	}
	if err := equation.CheckInitialConditions(equ, ics); err != nil {
		return nil, err
	}
	if err := equation.CheckMethods(equ, ics, params); err != nil {
		return nil, err
	}

	functions, err := equation.Bind[T](equ, params)
	if err != nil {
		return nil, err
	}
	solutions, err := equation.BindInvariants[T](equ, params)
	if err != nil {
		return nil, err
	}

	return &Problem[T]{
		equ:       equ,
		span:      span,
		step:      step,
		ics:       ics.Clone(),
		params:    cloneParameters(params),
		functions: functions,
		solutions: solutions,
	}, nil
}

func cloneParameters(params param.Parameters) param.Parameters {
	if rec, ok := params.(param.Record); ok {
		return rec.Clone()
	}
	return params
}

func (p *Problem[T]) Equation() equation.Equation[T]       { return p.equ }
func (p *Problem[T]) Span() [2]float64                     { return p.span }
func (p *Problem[T]) Step() float64                        { return p.step }
func (p *Problem[T]) Parameters() param.Parameters         { return p.params }
func (p *Problem[T]) Invariants() equation.InvariantSet    { return p.equ.Invariants() }
func (p *Problem[T]) Periodicity() equation.PeriodicitySet { return p.equ.Periodicity() }
func (p *Problem[T]) Functions() *equation.Functions[T]    { return p.functions }
func (p *Problem[T]) Solutions() equation.Scalars[T]       { return p.solutions }
func (p *Problem[T]) NSamples() int                        { return 1 }
func (p *Problem[T]) Datatype() reflect.Type               { return reflect.TypeFor[T]() }
func (p *Problem[T]) ArrType() reflect.Type                { return reflect.TypeOf(p.ics[equation.KeyQ]) }

// InitialConditions returns a copy of the initial conditions.
func (p *Problem[T]) InitialConditions() equation.InitialConditions[T] {
	return p.ics.Clone()
}

// NConstraints is the number of algebraic multipliers, zero for equations
// without constraints.
func (p *Problem[T]) NConstraints() int {
	return len(p.ics[equation.KeyLambda])
}
