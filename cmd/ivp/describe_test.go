package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/ivp/internal/config"
	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/registry"
)

func testSetup(t *testing.T, model, kind string) *registry.Setup {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Model, cfg.Kind = model, kind
	s, err := registry.NewRegistry().Setup(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestDescribe(t *testing.T) {
	var buf bytes.Buffer
	describe(&buf, testSetup(t, "oscillator", "HDAE"))

	out := buf.String()
	for _, want := range []string{"oscillator HDAE", "hamiltonian", "ϕ", "energy", "nconstraints", "e0"} {
		if !strings.Contains(out, want) {
			t.Errorf("describe output missing %q:\n%s", want, out)
		}
	}
}

func TestEvaluateAllKinds(t *testing.T) {
	for _, kind := range equation.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			s := testSetup(t, "oscillator", kind.String())
			p, err := s.Ensemble.Problem(0)
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			if err := evaluate(&buf, p); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(buf.String(), "energy") {
				t.Errorf("expected energy in output:\n%s", buf.String())
			}
		})
	}
}

func TestEvaluateDiffusion(t *testing.T) {
	s := testSetup(t, "oscillator", "SDE")
	p, err := s.Ensemble.Problem(0)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := evaluate(&buf, p); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "B") {
		t.Errorf("expected diffusion matrix in output:\n%s", buf.String())
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	defer func() { modelName, kindName, preset, workers = "", "", "", 0 }()

	modelName, kindName, workers = "pendulum", "PODE", 3
	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "pendulum" || cfg.Kind != "PODE" || cfg.Workers != 3 {
		t.Errorf("unexpected config %+v", cfg)
	}

	modelName, kindName, workers, preset = "oscillator", "", 0, "stiffness"
	cfg, err = loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Kind != "PODE" || len(cfg.Params) != 3 {
		t.Errorf("unexpected preset config %+v", cfg)
	}

	preset = "missing"
	if _, err := loadConfig(); err == nil {
		t.Error("expected unknown preset error")
	}
}

func TestMean(t *testing.T) {
	if mean(nil) != 0 {
		t.Error("expected 0 for no values")
	}
	if mean([]float64{1, 2, 3}) != 2 {
		t.Error("expected 2")
	}
}
