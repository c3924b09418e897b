package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/param"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "oscillator" {
		t.Errorf("expected model oscillator, got %s", cfg.Model)
	}
	kind, err := cfg.EquationKind()
	if err != nil || kind != equation.KindHODE {
		t.Errorf("expected HODE, got %v (%v)", kind, err)
	}
	tm, err := cfg.Timing()
	if err != nil {
		t.Fatal(err)
	}
	if tm.Step <= 0 {
		t.Error("step should be positive")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.yaml")
	data := `
model: oscillator
kind: pdae
t0: 0
t1: "2.5"
step: 1e-2
params:
  - k: "0.5"
    e0: 0.0625
ics:
  - q: [0.5]
    p: [0]
    λ: [0]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Integrator != DefaultIntegrator {
		t.Errorf("expected default integrator, got %s", cfg.Integrator)
	}

	kind, err := cfg.EquationKind()
	if err != nil || kind != equation.KindPDAE {
		t.Errorf("expected PDAE, got %v (%v)", kind, err)
	}

	tm, err := cfg.Timing()
	if err != nil {
		t.Fatal(err)
	}
	if tm.Span != [2]float64{0, 2.5} || tm.Step != 0.01 {
		t.Errorf("unexpected timing %+v", tm)
	}

	ics := cfg.Conditions()
	if len(ics) != 1 || len(ics[0][equation.KeyLambda]) != 1 {
		t.Errorf("unexpected initial conditions %v", ics)
	}

	params, err := cfg.Parameters(param.Schema{"k": param.KindFloat, "e0": param.KindFloat})
	if err != nil {
		t.Fatal(err)
	}
	rec := params[0].(param.Record)
	if rec["k"] != 0.5 {
		t.Errorf("expected k coerced to 0.5, got %v", rec["k"])
	}
}

func TestParameters_Invalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params = []map[string]any{{"k": "soft"}}

	_, err := cfg.Parameters(param.Schema{"k": param.KindFloat})
	if !errors.Is(err, param.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}

	params, err := cfg.Parameters(param.NullParameters{})
	if err != nil || len(params) != 1 {
		t.Errorf("expected raw record, got %v (%v)", params, err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	want := GetPreset("oscillator", "ensemble")
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.ICs) != len(want.ICs) || got.Workers != want.Workers || got.Kind != want.Kind {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pendulum", "small")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.ICs[0]["q"][0] != 0.2 {
		t.Errorf("expected theta 0.2, got %f", cfg.ICs[0]["q"][0])
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("pendulum", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "small")
	if cfg != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("pendulum")
	if len(presets) == 0 {
		t.Error("expected presets for pendulum")
	}

	presets = ListPresets("nonexistent")
	if presets != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestPresetsParse(t *testing.T) {
	for model, presets := range Presets {
		for name, cfg := range presets {
			if cfg.Model != model {
				t.Errorf("%s/%s: model %s", model, name, cfg.Model)
			}
			if _, err := cfg.EquationKind(); err != nil {
				t.Errorf("%s/%s: %v", model, name, err)
			}
			if _, err := cfg.Timing(); err != nil {
				t.Errorf("%s/%s: %v", model, name, err)
			}
		}
	}
}
