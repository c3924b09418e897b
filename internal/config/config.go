package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/param"
	"github.com/san-kum/ivp/internal/problem"
)

const (
	DefaultModel      = "oscillator"
	DefaultKind       = "HODE"
	DefaultIntegrator = "rk4"
	DefaultT1         = 1.0
	DefaultStep       = 0.1
)

// Config is a problem file. Timing values are kept loosely typed so that
// "1e-3" and 1 are both accepted. Empty ICs or Params fall back to the
// model's defaults.
type Config struct {
	Model      string                 `yaml:"model"`
	Kind       string                 `yaml:"kind"`
	T0         any                    `yaml:"t0"`
	T1         any                    `yaml:"t1"`
	Step       any                    `yaml:"step"`
	Integrator string                 `yaml:"integrator"`
	Workers    int                    `yaml:"workers,omitempty"`
	Params     []map[string]any       `yaml:"params,omitempty"`
	ICs        []map[string][]float64 `yaml:"ics,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      DefaultModel,
		Kind:       DefaultKind,
		T0:         0.0,
		T1:         DefaultT1,
		Step:       DefaultStep,
		Integrator: DefaultIntegrator,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) EquationKind() (equation.Kind, error) {
	return equation.ParseKind(c.Kind)
}

func (c *Config) Timing() (problem.Timing, error) {
	return problem.ParseTiming(c.T0, c.T1, c.Step)
}

// Conditions returns the configured initial conditions, nil when none are
// set.
func (c *Config) Conditions() []equation.InitialConditions[float64] {
	if len(c.ICs) == 0 {
		return nil
	}
	ics := make([]equation.InitialConditions[float64], len(c.ICs))
	for i, ic := range c.ICs {
		ics[i] = equation.InitialConditions[float64](ic).Clone()
	}
	return ics
}

// Parameters coerces the configured records against decl. Without a schema
// the records are taken as they are.
func (c *Config) Parameters(decl param.Declaration) ([]param.Parameters, error) {
	if len(c.Params) == 0 {
		return nil, nil
	}
	schema, _ := decl.(param.Schema)
	out := make([]param.Parameters, len(c.Params))
	for i, raw := range c.Params {
		if schema == nil {
			out[i] = param.Record(raw).Clone()
			continue
		}
		rec, err := param.Coerce(schema, raw)
		if err != nil {
			return nil, fmt.Errorf("params[%d]: %w", i, err)
		}
		out[i] = rec
	}
	return out, nil
}
