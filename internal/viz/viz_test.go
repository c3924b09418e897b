package viz

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/metrics"
	"github.com/san-kum/ivp/internal/models"
	"github.com/san-kum/ivp/internal/param"
	"github.com/san-kum/ivp/internal/problem"
)

func testEnsemble(t *testing.T, qs ...float64) *problem.Ensemble[float64] {
	t.Helper()
	osc := models.NewOscillator()
	equ, err := osc.Equation(equation.KindHODE)
	if err != nil {
		t.Fatal(err)
	}
	base, err := osc.Conditions(equation.KindHODE)
	if err != nil {
		t.Fatal(err)
	}
	ics := make([]equation.InitialConditions[float64], len(qs))
	for i, q := range qs {
		ics[i] = base.Clone()
		ics[i][equation.KeyQ][0] = q
	}
	ens, err := problem.NewEnsemble(equ, [2]float64{0, 10}, 0.1, ics, []param.Parameters{osc.Record()})
	if err != nil {
		t.Fatal(err)
	}
	return ens
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowserNavigation(t *testing.T) {
	ens := testEnsemble(t, 0.5, 1.0, 1.5)
	tab, err := metrics.Evaluate(context.Background(), ens, 0)
	if err != nil {
		t.Fatal(err)
	}

	var m tea.Model = NewBrowser("oscillator", ens, tab)
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	if got := m.(Browser).Cursor(); got != 2 {
		t.Errorf("expected cursor clamped at 2, got %d", got)
	}

	m, _ = m.Update(key("g"))
	if got := m.(Browser).Cursor(); got != 0 {
		t.Errorf("expected cursor 0, got %d", got)
	}
	m, _ = m.Update(key("k"))
	if got := m.(Browser).Cursor(); got != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", got)
	}
	m, _ = m.Update(key("G"))

	view := m.View()
	for _, want := range []string{"OSCILLATOR · HODE", "sample 3/3", "energy", "[1.5]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBrowserTheme(t *testing.T) {
	var m tea.Model = NewBrowser("oscillator", testEnsemble(t, 0.5), nil)
	for range len(Themes) {
		m, _ = m.Update(key("T"))
	}
	if got := m.(Browser).Theme().Name; got != Themes[0].Name {
		t.Errorf("expected theme to cycle back to %s, got %s", Themes[0].Name, got)
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestPlot(t *testing.T) {
	out := Plot("energy", []float64{0.0625, 0.25, 0.5625}, 30, 5)
	if !strings.Contains(out, "energy") {
		t.Errorf("expected caption in plot:\n%s", out)
	}
	if out := Plot("energy", []float64{1}, 30, 5); out == "" {
		t.Error("expected plot for one sample")
	}
	if out := Plot("energy", nil, 30, 5); !strings.Contains(out, "no samples") {
		t.Errorf("unexpected empty plot %q", out)
	}
}

func TestSummary(t *testing.T) {
	tab := &metrics.Table{Names: []string{"energy"}, Rows: [][]float64{{1}, {3}}}
	out := Summary(tab)
	if !strings.Contains(out, "energy") || !strings.Contains(out, "mean") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	if out := Summary(&metrics.Table{}); !strings.Contains(out, "no diagnostics") {
		t.Errorf("unexpected summary %q", out)
	}
}

func TestStatus(t *testing.T) {
	if !strings.Contains(Status(nil), "ok") {
		t.Error("expected ok")
	}
	if !strings.Contains(Status(errors.New("boom")), "boom") {
		t.Error("expected error text")
	}
}

func TestVector(t *testing.T) {
	if got := Vector([]float64{0.5, -1}); got != "[0.5 -1]" {
		t.Errorf("got %q", got)
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("ocean").Name != "ocean" {
		t.Error("expected ocean")
	}
	if GetTheme("missing").Name != ThemeCyberpunk.Name {
		t.Error("expected fallback")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}
