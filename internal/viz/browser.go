package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/metrics"
	"github.com/san-kum/ivp/internal/param"
	"github.com/san-kum/ivp/internal/problem"
)

// Browser pages through the samples of an ensemble, showing initial
// conditions, parameters and diagnostics of the selected one.
type Browser struct {
	title  string
	ens    *problem.Ensemble[float64]
	table  *metrics.Table
	cursor int
	theme  Theme
	width  int
}

func NewBrowser(title string, ens *problem.Ensemble[float64], tab *metrics.Table) Browser {
	if tab == nil {
		tab = &metrics.Table{}
	}
	return Browser{
		title: title,
		ens:   ens,
		table: tab,
		theme: ThemeCyberpunk,
		width: 80,
	}
}

func (b Browser) Cursor() int  { return b.cursor }
func (b Browser) Theme() Theme { return b.theme }

func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return b, tea.Quit
		case "down", "j":
			if b.cursor < b.ens.NSamples()-1 {
				b.cursor++
			}
		case "up", "k":
			if b.cursor > 0 {
				b.cursor--
			}
		case "g", "home":
			b.cursor = 0
		case "G", "end":
			b.cursor = b.ens.NSamples() - 1
		case "T":
			b.theme = nextTheme(b.theme)
		}
	case tea.WindowSizeMsg:
		b.width = msg.Width
	}
	return b, nil
}

func (b Browser) View() string {
	th := b.theme
	equ := b.ens.Equation()
	var s strings.Builder

	s.WriteString("\n  " + th.title().Render(strings.ToUpper(b.title)+" · "+equ.Kind().String()) + "\n")
	s.WriteString("  " + th.muted().Render(fmt.Sprintf("tspan [%g, %g]  tstep %g  roles %s",
		b.ens.Span()[0], b.ens.Span()[1], b.ens.Step(), strings.Join(equation.RoleNames[float64](equ), " "))) + "\n")
	s.WriteString("  " + Separator(max(b.width-4, 10)) + "\n\n")

	s.WriteString("  " + th.selected().Render(fmt.Sprintf("sample %d/%d", b.cursor+1, b.ens.NSamples())) + "\n\n")

	ic := b.ens.InitialCondition(b.cursor)
	for _, k := range ic.Keys() {
		s.WriteString("  " + MetricLabel.Render(k) + th.value().Render(Vector(ic[k])) + "\n")
	}
	s.WriteString("\n")

	switch rec := b.ens.Parameter(b.cursor).(type) {
	case param.Record:
		for _, name := range rec.Names() {
			s.WriteString("  " + MetricLabel.Render(name) + th.value().Render(fmt.Sprint(rec[name])) + "\n")
		}
	default:
		s.WriteString("  " + th.muted().Render("no parameters") + "\n")
	}
	s.WriteString("\n")

	for j, name := range b.table.Names {
		col, _ := b.table.Column(name)
		s.WriteString("  " + MetricLabel.Render(name) +
			th.value().Render(fmt.Sprintf("%-14.6g", b.table.Rows[b.cursor][j])) + " " +
			Sparkline(col, min(len(col), 30)) + "\n")
	}

	s.WriteString("\n  " + KeyHint.Render("j/k sample  g/G first/last  T theme  q quit") + "\n")
	return s.String()
}

func RunBrowser(b Browser) error {
	_, err := tea.NewProgram(b, tea.WithAltScreen()).Run()
	return err
}
