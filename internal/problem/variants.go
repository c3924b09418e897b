package problem

import (
	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/param"
)

// Per-variant shortcuts. Equation options are passed with WithEquation.

func equationOptions(opts []Option) []equation.Option {
	return newOptions(opts).equation
}

func NewODEProblem[T equation.Float](v any, span [2]float64, step float64, ics equation.InitialConditions[T], params param.Parameters, opts ...Option) (*Problem[T], error) {
	equ, err := equation.NewODE[T](v, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return New[T](equ, span, step, ics, params, opts...)
}

func NewODEEnsemble[T equation.Float](v any, span [2]float64, step float64, ics []equation.InitialConditions[T], params []param.Parameters, opts ...Option) (*Ensemble[T], error) {
	equ, err := equation.NewODE[T](v, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return NewEnsemble[T](equ, span, step, ics, params, opts...)
}

func NewPODEProblem[T equation.Float](v, f any, span [2]float64, step float64, ics equation.InitialConditions[T], params param.Parameters, opts ...Option) (*Problem[T], error) {
	equ, err := equation.NewPODE[T](v, f, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return New[T](equ, span, step, ics, params, opts...)
}

func NewPODEEnsemble[T equation.Float](v, f any, span [2]float64, step float64, ics []equation.InitialConditions[T], params []param.Parameters, opts ...Option) (*Ensemble[T], error) {
	equ, err := equation.NewPODE[T](v, f, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return NewEnsemble[T](equ, span, step, ics, params, opts...)
}

func NewHODEProblem[T equation.Float](v, f, hamiltonian any, span [2]float64, step float64, ics equation.InitialConditions[T], params param.Parameters, opts ...Option) (*Problem[T], error) {
	equ, err := equation.NewHODE[T](v, f, hamiltonian, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return New[T](equ, span, step, ics, params, opts...)
}

func NewHODEEnsemble[T equation.Float](v, f, hamiltonian any, span [2]float64, step float64, ics []equation.InitialConditions[T], params []param.Parameters, opts ...Option) (*Ensemble[T], error) {
	equ, err := equation.NewHODE[T](v, f, hamiltonian, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return NewEnsemble[T](equ, span, step, ics, params, opts...)
}

func NewIODEProblem[T equation.Float](theta, f, g, vbar any, span [2]float64, step float64, ics equation.InitialConditions[T], params param.Parameters, opts ...Option) (*Problem[T], error) {
	equ, err := equation.NewIODE[T](theta, f, g, vbar, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return New[T](equ, span, step, ics, params, opts...)
}

func NewIODEEnsemble[T equation.Float](theta, f, g, vbar any, span [2]float64, step float64, ics []equation.InitialConditions[T], params []param.Parameters, opts ...Option) (*Ensemble[T], error) {
	equ, err := equation.NewIODE[T](theta, f, g, vbar, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return NewEnsemble[T](equ, span, step, ics, params, opts...)
}

func NewLODEProblem[T equation.Float](theta, f, g, vbar, lagrangian any, span [2]float64, step float64, ics equation.InitialConditions[T], params param.Parameters, opts ...Option) (*Problem[T], error) {
	equ, err := equation.NewLODE[T](theta, f, g, vbar, lagrangian, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return New[T](equ, span, step, ics, params, opts...)
}

func NewLODEEnsemble[T equation.Float](theta, f, g, vbar, lagrangian any, span [2]float64, step float64, ics []equation.InitialConditions[T], params []param.Parameters, opts ...Option) (*Ensemble[T], error) {
	equ, err := equation.NewLODE[T](theta, f, g, vbar, lagrangian, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return NewEnsemble[T](equ, span, step, ics, params, opts...)
}

func NewSODEProblem[T equation.Float](phases []equation.SplitPhase, span [2]float64, step float64, ics equation.InitialConditions[T], params param.Parameters, opts ...Option) (*Problem[T], error) {
	equ, err := equation.NewSODE[T](phases, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return New[T](equ, span, step, ics, params, opts...)
}

func NewSODEEnsemble[T equation.Float](phases []equation.SplitPhase, span [2]float64, step float64, ics []equation.InitialConditions[T], params []param.Parameters, opts ...Option) (*Ensemble[T], error) {
	equ, err := equation.NewSODE[T](phases, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return NewEnsemble[T](equ, span, step, ics, params, opts...)
}

func NewDAEProblem[T equation.Float](v, u, phi any, span [2]float64, step float64, ics equation.InitialConditions[T], params param.Parameters, opts ...Option) (*Problem[T], error) {
	equ, err := equation.NewDAE[T](v, u, phi, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return New[T](equ, span, step, ics, params, opts...)
}

func NewDAEEnsemble[T equation.Float](v, u, phi any, span [2]float64, step float64, ics []equation.InitialConditions[T], params []param.Parameters, opts ...Option) (*Ensemble[T], error) {
	equ, err := equation.NewDAE[T](v, u, phi, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return NewEnsemble[T](equ, span, step, ics, params, opts...)
}

func NewPDAEProblem[T equation.Float](v, f, u, g, phi any, span [2]float64, step float64, ics equation.InitialConditions[T], params param.Parameters, opts ...Option) (*Problem[T], error) {
	equ, err := equation.NewPDAE[T](v, f, u, g, phi, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return New[T](equ, span, step, ics, params, opts...)
}

func NewPDAEEnsemble[T equation.Float](v, f, u, g, phi any, span [2]float64, step float64, ics []equation.InitialConditions[T], params []param.Parameters, opts ...Option) (*Ensemble[T], error) {
	equ, err := equation.NewPDAE[T](v, f, u, g, phi, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return NewEnsemble[T](equ, span, step, ics, params, opts...)
}

func NewHDAEProblem[T equation.Float](v, f, u, g, phi, ubar, gbar, psi, hamiltonian any, span [2]float64, step float64, ics equation.InitialConditions[T], params param.Parameters, opts ...Option) (*Problem[T], error) {
	equ, err := equation.NewHDAE[T](v, f, u, g, phi, ubar, gbar, psi, hamiltonian, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return New[T](equ, span, step, ics, params, opts...)
}

func NewHDAEEnsemble[T equation.Float](v, f, u, g, phi, ubar, gbar, psi, hamiltonian any, span [2]float64, step float64, ics []equation.InitialConditions[T], params []param.Parameters, opts ...Option) (*Ensemble[T], error) {
	equ, err := equation.NewHDAE[T](v, f, u, g, phi, ubar, gbar, psi, hamiltonian, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return NewEnsemble[T](equ, span, step, ics, params, opts...)
}

func NewIDAEProblem[T equation.Float](theta, f, u, g, phi, vbar any, span [2]float64, step float64, ics equation.InitialConditions[T], params param.Parameters, opts ...Option) (*Problem[T], error) {
	equ, err := equation.NewIDAE[T](theta, f, u, g, phi, vbar, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return New[T](equ, span, step, ics, params, opts...)
}

func NewIDAEEnsemble[T equation.Float](theta, f, u, g, phi, vbar any, span [2]float64, step float64, ics []equation.InitialConditions[T], params []param.Parameters, opts ...Option) (*Ensemble[T], error) {
	equ, err := equation.NewIDAE[T](theta, f, u, g, phi, vbar, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return NewEnsemble[T](equ, span, step, ics, params, opts...)
}

func NewLDAEProblem[T equation.Float](theta, f, u, g, phi, vbar, lagrangian any, span [2]float64, step float64, ics equation.InitialConditions[T], params param.Parameters, opts ...Option) (*Problem[T], error) {
	equ, err := equation.NewLDAE[T](theta, f, u, g, phi, vbar, lagrangian, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return New[T](equ, span, step, ics, params, opts...)
}

func NewLDAEEnsemble[T equation.Float](theta, f, u, g, phi, vbar, lagrangian any, span [2]float64, step float64, ics []equation.InitialConditions[T], params []param.Parameters, opts ...Option) (*Ensemble[T], error) {
	equ, err := equation.NewLDAE[T](theta, f, u, g, phi, vbar, lagrangian, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return NewEnsemble[T](equ, span, step, ics, params, opts...)
}

func NewSDEProblem[T equation.Float](v, b any, nnoise int, span [2]float64, step float64, ics equation.InitialConditions[T], params param.Parameters, opts ...Option) (*Problem[T], error) {
	equ, err := equation.NewSDE[T](v, b, nnoise, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return New[T](equ, span, step, ics, params, opts...)
}

func NewSDEEnsemble[T equation.Float](v, b any, nnoise int, span [2]float64, step float64, ics []equation.InitialConditions[T], params []param.Parameters, opts ...Option) (*Ensemble[T], error) {
	equ, err := equation.NewSDE[T](v, b, nnoise, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return NewEnsemble[T](equ, span, step, ics, params, opts...)
}

func NewPSDEProblem[T equation.Float](v, f, b, g any, nnoise int, span [2]float64, step float64, ics equation.InitialConditions[T], params param.Parameters, opts ...Option) (*Problem[T], error) {
	equ, err := equation.NewPSDE[T](v, f, b, g, nnoise, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return New[T](equ, span, step, ics, params, opts...)
}

func NewPSDEEnsemble[T equation.Float](v, f, b, g any, nnoise int, span [2]float64, step float64, ics []equation.InitialConditions[T], params []param.Parameters, opts ...Option) (*Ensemble[T], error) {
	equ, err := equation.NewPSDE[T](v, f, b, g, nnoise, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return NewEnsemble[T](equ, span, step, ics, params, opts...)
}

func NewSPSDEProblem[T equation.Float](v, f1, f2, b, g1, g2 any, nnoise int, span [2]float64, step float64, ics equation.InitialConditions[T], params param.Parameters, opts ...Option) (*Problem[T], error) {
	equ, err := equation.NewSPSDE[T](v, f1, f2, b, g1, g2, nnoise, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return New[T](equ, span, step, ics, params, opts...)
}

func NewSPSDEEnsemble[T equation.Float](v, f1, f2, b, g1, g2 any, nnoise int, span [2]float64, step float64, ics []equation.InitialConditions[T], params []param.Parameters, opts ...Option) (*Ensemble[T], error) {
	equ, err := equation.NewSPSDE[T](v, f1, f2, b, g1, g2, nnoise, equationOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return NewEnsemble[T](equ, span, step, ics, params, opts...)
}
