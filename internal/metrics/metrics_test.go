package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/models"
	"github.com/san-kum/ivp/internal/param"
	"github.com/san-kum/ivp/internal/problem"
)

func oscillatorEnsemble(t *testing.T, kind equation.Kind, qs ...float64) *problem.Ensemble[float64] {
	t.Helper()
	osc := models.NewOscillator()
	equ, err := osc.Equation(kind)
	if err != nil {
		t.Fatal(err)
	}
	base, err := osc.Conditions(kind)
	if err != nil {
		t.Fatal(err)
	}

	ics := make([]equation.InitialConditions[float64], len(qs))
	for i, q := range qs {
		ic := base.Clone()
		ic[equation.KeyQ][0] = q
		ics[i] = ic
	}
	ens, err := problem.NewEnsemble(equ, [2]float64{0, 1}, 0.1, ics, []param.Parameters{osc.Record()})
	if err != nil {
		t.Fatal(err)
	}
	return ens
}

func observe(t *testing.T, ens *problem.Ensemble[float64], ms ...Metric) {
	t.Helper()
	for p, err := range ens.All() {
		if err != nil {
			t.Fatal(err)
		}
		for _, m := range ms {
			m.Observe(p)
		}
	}
}

func TestInvariantStatistics(t *testing.T) {
	ens := oscillatorEnsemble(t, equation.KindHODE, 0.5, 1.0, 1.5)
	m := NewInvariant("energy")
	observe(t, ens, m)

	// k q²/2 with k = 0.5
	want := []float64{0.0625, 0.25, 0.5625}
	got := m.Values()
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("value %d: expected %f, got %f", i, want[i], got[i])
		}
	}

	if math.Abs(m.Value()-0.2916666666666667) > 1e-12 {
		t.Errorf("expected mean 0.291667, got %f", m.Value())
	}
	if math.Abs(m.Spread()-0.5) > 1e-12 {
		t.Errorf("expected spread 0.5, got %f", m.Spread())
	}
	if m.StdDev() <= 0 {
		t.Errorf("expected positive deviation, got %f", m.StdDev())
	}

	m.Reset()
	if m.Value() != 0 || m.Spread() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestInvariantImplicit(t *testing.T) {
	ens := oscillatorEnsemble(t, equation.KindLODE, 0.5)
	m := NewInvariant("energy")
	observe(t, ens, m)

	if m.Value() != 0.0625 {
		t.Errorf("expected 0.0625, got %f", m.Value())
	}
}

func TestInvariantMissing(t *testing.T) {
	ens := oscillatorEnsemble(t, equation.KindHODE, 0.5)
	m := NewInvariant("momentum")
	observe(t, ens, m)

	if len(m.Values()) != 0 {
		t.Errorf("expected no observations, got %v", m.Values())
	}
}

func TestInvariantUnresolved(t *testing.T) {
	ens := oscillatorEnsemble(t, equation.KindHODE, 0.5, 1.0)
	p, err := ens.Problem(0)
	if err != nil {
		t.Fatal(err)
	}
	m := NewInvariant("energy")
	m.Observe(p)
	m.observe(p, []string{equation.KeyQ, "ṗ"})

	got := m.Values()
	if len(got) != 2 {
		t.Fatalf("expected 2 values, got %d", len(got))
	}
	if got[0] != 0.0625 {
		t.Errorf("expected 0.0625, got %f", got[0])
	}
	if !math.IsNaN(got[1]) {
		t.Errorf("expected NaN for an unresolved argument, got %f", got[1])
	}
	if !math.IsNaN(m.Value()) {
		t.Errorf("expected NaN mean, got %f", m.Value())
	}
}

func TestForInvariants(t *testing.T) {
	equ, err := models.NewOscillator().Equation(equation.KindPODE)
	if err != nil {
		t.Fatal(err)
	}
	ms := ForInvariants(equ)
	if len(ms) != 1 || ms[0].Name() != "energy" {
		t.Errorf("unexpected metrics %v", ms)
	}

	plain, err := models.NewGrowth().Equation(equation.KindODE)
	if err != nil {
		t.Fatal(err)
	}
	if ms := ForInvariants(plain); len(ms) != 0 {
		t.Errorf("expected no metrics, got %d", len(ms))
	}
}

func TestResidual(t *testing.T) {
	for _, kind := range []equation.Kind{equation.KindDAE, equation.KindPDAE, equation.KindHDAE, equation.KindIDAE, equation.KindLDAE} {
		t.Run(kind.String(), func(t *testing.T) {
			ens := oscillatorEnsemble(t, kind, 0.5, 1.0)
			r := NewResidual()
			observe(t, ens, r)

			if r.Samples() != 2 {
				t.Fatalf("expected 2 samples, got %d", r.Samples())
			}
			// e0 matches q = 0.5 only
			if math.Abs(r.Value()-(0.25-0.0625)) > 1e-12 {
				t.Errorf("expected residual 0.1875, got %f", r.Value())
			}
		})
	}
}

func TestResidualUnconstrained(t *testing.T) {
	ens := oscillatorEnsemble(t, equation.KindHODE, 0.5)
	r := NewResidual()
	observe(t, ens, r)

	if r.Samples() != 0 || r.Value() != 0 {
		t.Errorf("expected no observations, got %d", r.Samples())
	}
}

func TestResidualUnresolved(t *testing.T) {
	ens := oscillatorEnsemble(t, equation.KindPDAE, 0.5)
	p, err := ens.Problem(0)
	if err != nil {
		t.Fatal(err)
	}
	phi, ok := p.Functions().Field("ϕ")
	if !ok {
		t.Fatal("missing ϕ")
	}
	r := NewResidual()
	r.observe(p, phi, []string{equation.KeyQ, "q̇"})
	r.Observe(p)

	if r.Samples() != 2 {
		t.Fatalf("expected 2 samples, got %d", r.Samples())
	}
	if !math.IsNaN(r.Value()) {
		t.Errorf("expected NaN residual, got %f", r.Value())
	}
}

func TestEvaluate(t *testing.T) {
	ens := oscillatorEnsemble(t, equation.KindPDAE, 0.5, 1.0, 1.5)
	tab, err := Evaluate(context.Background(), ens, 2)
	if err != nil {
		t.Fatal(err)
	}

	if len(tab.Names) != 2 || tab.Names[0] != "energy" || tab.Names[1] != "constraint_residual" {
		t.Fatalf("unexpected columns %v", tab.Names)
	}
	energy, ok := tab.Column("energy")
	if !ok {
		t.Fatal("missing energy column")
	}
	want := []float64{0.0625, 0.25, 0.5625}
	for i := range want {
		if math.Abs(energy[i]-want[i]) > 1e-12 {
			t.Errorf("sample %d: expected %f, got %f", i, want[i], energy[i])
		}
	}
	residual, _ := tab.Column("constraint_residual")
	if residual[0] != 0 {
		t.Errorf("expected zero residual on the reference sample, got %f", residual[0])
	}
	if _, ok := tab.Column("momentum"); ok {
		t.Error("unexpected column")
	}
}

func TestStandardImplicit(t *testing.T) {
	ens := oscillatorEnsemble(t, equation.KindIODE, 0.5)
	ms := Standard(ens)
	if len(ms) != 1 || ms[0].Name() != "energy" {
		t.Errorf("expected only the energy metric, got %d metrics", len(ms))
	}
}
