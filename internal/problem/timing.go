package problem

import (
	"fmt"
	"math"

	"github.com/spf13/cast"

	"github.com/san-kum/ivp/internal/equation"
)

// Timing is a time span and step promoted to float64.
type Timing struct {
	Span [2]float64
	Step float64
}

// ParseTiming promotes loosely typed endpoints and step, as read from YAML
// or the command line, to float64.
func ParseTiming(t0, t1, step any) (Timing, error) {
	var (
		tm  Timing
		err error
	)
	if tm.Span[0], err = cast.ToFloat64E(t0); err != nil {
		return Timing{}, fmt.Errorf("%w: t0: %v", equation.ErrArgumentMismatch, err)
	}
	if tm.Span[1], err = cast.ToFloat64E(t1); err != nil {
		return Timing{}, fmt.Errorf("%w: t1: %v", equation.ErrArgumentMismatch, err)
	}
	if tm.Step, err = cast.ToFloat64E(step); err != nil {
		return Timing{}, fmt.Errorf("%w: step: %v", equation.ErrArgumentMismatch, err)
	}
	if err := checkTiming(tm.Span, tm.Step); err != nil {
		return Timing{}, fmt.Errorf("%w: %s", equation.ErrArgumentMismatch, err)
	}
	return tm, nil
}

// checkTiming accepts t0 == t1; a span may also run backwards.
func checkTiming(span [2]float64, step float64) error {
	for i, t := range span {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("tspan[%d] is %v", i, t)
		}
	}
	if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
		return fmt.Errorf("tstep must be positive and finite, got %v", step)
	}
	return nil
}
