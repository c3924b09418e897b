package registry

import (
	"fmt"

	"github.com/san-kum/ivp/internal/config"
	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/models"
	"github.com/san-kum/ivp/internal/param"
	"github.com/san-kum/ivp/internal/problem"
)

// Setup is a problem file resolved against the registry.
type Setup struct {
	Config   *config.Config
	Model    models.Model
	Equation equation.Equation[float64]
	Timing   problem.Timing
	Ensemble *problem.Ensemble[float64]
}

// Setup builds the equation and ensemble cfg describes. Missing initial
// conditions and parameters are taken from the model.
func (r *Registry) Setup(cfg *config.Config, opts ...problem.Option) (*Setup, error) {
	model, err := r.GetModel(cfg.Model)
	if err != nil {
		return nil, err
	}
	kind, err := cfg.EquationKind()
	if err != nil {
		return nil, err
	}
	equ, err := model.Equation(kind)
	if err != nil {
		return nil, err
	}
	tm, err := cfg.Timing()
	if err != nil {
		return nil, err
	}

	ics := cfg.Conditions()
	if len(ics) == 0 {
		ic, err := model.Conditions(kind)
		if err != nil {
			return nil, err
		}
		ics = []equation.InitialConditions[float64]{ic}
	}

	params, err := cfg.Parameters(equ.Parameters())
	if err != nil {
		return nil, err
	}
	if len(params) == 0 {
		params = []param.Parameters{model.Record()}
	}

	ens, err := problem.NewEnsemble(equ, tm.Span, tm.Step, ics, params, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", model.Name(), kind, err)
	}

	return &Setup{
		Config:   cfg,
		Model:    model,
		Equation: equ,
		Timing:   tm,
		Ensemble: ens,
	}, nil
}

// Splitting composes entry i of an SODE setup into one step, advancing
// phases without exact solutions with the configured integrator.
func (r *Registry) Splitting(s *Setup, i int) (*equation.Splitting[float64], error) {
	sode, ok := s.Equation.(*equation.SODE[float64])
	if !ok {
		return nil, fmt.Errorf("splitting needs an SODE, got %s", s.Equation.Kind())
	}
	stage, err := r.GetStage(s.Config.Integrator)
	if err != nil {
		return nil, err
	}
	return equation.NewSplitting(sode, s.Ensemble.Parameter(i), stage)
}
