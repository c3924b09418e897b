package registry

import (
	"fmt"
	"sort"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/integrators"
	"github.com/san-kum/ivp/internal/models"
)

type Registry struct {
	models map[string]func() models.Model
	stages map[string]func() equation.Stage[float64]
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]func() models.Model),
		stages: make(map[string]func() equation.Stage[float64]),
	}

	r.models["oscillator"] = func() models.Model { return models.NewOscillator() }
	r.models["pendulum"] = func() models.Model { return models.NewPendulum() }
	r.models["growth"] = func() models.Model { return models.NewGrowth() }

	for _, name := range integrators.Stages() {
		r.stages[name] = func() equation.Stage[float64] {
			stage, _ := integrators.New[float64](name)
			return stage
		}
	}

	return r
}

func (r *Registry) GetModel(name string) (models.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

// GetStage returns a fresh integrator stage; stages are not shared.
func (r *Registry) GetStage(name string) (equation.Stage[float64], error) {
	fn, ok := r.stages[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListModels() []string {
	return sortedKeys(r.models)
}

func (r *Registry) ListStages() []string {
	return sortedKeys(r.stages)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
