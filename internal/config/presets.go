package config

var Presets = map[string]map[string]*Config{
	"oscillator": {
		"hamiltonian": {
			Model: "oscillator", Kind: "HODE", Integrator: "rk4", T0: 0.0, T1: 1.0, Step: 0.1,
			Params: []map[string]any{{"k": 0.5}},
			ICs:    []map[string][]float64{{"q": {0.5}, "p": {0.0}}},
		},
		"ensemble": {
			Model: "oscillator", Kind: "HODE", Integrator: "rk4", T0: 0.0, T1: 10.0, Step: 0.1, Workers: 4,
			Params: []map[string]any{{"k": 0.5}},
			ICs: []map[string][]float64{
				{"q": {0.5}, "p": {0.0}},
				{"q": {1.0}, "p": {0.0}},
				{"q": {1.5}, "p": {0.5}},
			},
		},
		"stiffness": {
			Model: "oscillator", Kind: "PODE", Integrator: "rk4", T0: 0.0, T1: 10.0, Step: 0.05,
			Params: []map[string]any{{"k": 0.5}, {"k": 1.0}, {"k": 4.0}},
			ICs:    []map[string][]float64{{"q": {0.5}, "p": {0.0}}},
		},
		"constrained": {
			Model: "oscillator", Kind: "PDAE", Integrator: "rk4", T0: 0.0, T1: 1.0, Step: 0.1,
		},
		"stochastic": {
			Model: "oscillator", Kind: "SDE", Integrator: "euler", T0: 0.0, T1: 1.0, Step: 0.01,
			Params: []map[string]any{{"k": 0.5, "sigma": 0.2}},
		},
	},
	"pendulum": {
		"small": {
			Model: "pendulum", Kind: "HODE", Integrator: "rk4", T0: 0.0, T1: 20.0, Step: 0.01,
			ICs: []map[string][]float64{{"q": {0.2}, "p": {0.0}}},
		},
		"large": {
			Model: "pendulum", Kind: "HODE", Integrator: "rk4", T0: 0.0, T1: 20.0, Step: 0.01,
			ICs: []map[string][]float64{{"q": {2.5}, "p": {0.0}}},
		},
		"split": {
			Model: "pendulum", Kind: "SODE", Integrator: "rk4", T0: 0.0, T1: 20.0, Step: 0.01,
		},
	},
	"growth": {
		"default": {
			Model: "growth", Kind: "ODE", Integrator: "rk4", T0: 0.0, T1: 1.0, Step: 0.1,
		},
		"noisy": {
			Model: "growth", Kind: "SDE", Integrator: "euler", T0: 0.0, T1: 1.0, Step: 0.01,
			Params: []map[string]any{{"a": 1.0, "sigma": 0.3}},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
