package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/ivp/internal/metrics"
)

// Plot draws one diagnostic against the sample index.
func Plot(caption string, values []float64, width, height int) string {
	if len(values) == 0 {
		return Subtle.Render(caption + ": no samples")
	}
	data := values
	if len(data) == 1 {
		data = []float64{values[0], values[0]}
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// Summary renders min, max, mean and standard deviation of every column.
func Summary(tab *metrics.Table) string {
	if len(tab.Names) == 0 {
		return Subtle.Render("no diagnostics")
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%-22s %12s %12s %12s %12s", "metric", "min", "max", "mean", "stddev")) + "\n")
	for _, name := range tab.Names {
		col, _ := tab.Column(name)
		if len(col) == 0 {
			continue
		}
		sd := 0.0
		if len(col) > 1 {
			sd = stat.StdDev(col, nil)
		}
		b.WriteString(MetricLabel.Render(name) + " " + MetricValue.Render(fmt.Sprintf("%12.6g %12.6g %12.6g %12.6g",
			floats.Min(col), floats.Max(col), stat.Mean(col, nil), sd)) + "\n")
	}
	return b.String()
}
