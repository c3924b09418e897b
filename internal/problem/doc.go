// Package problem pairs an equation with a time span, a time step, initial
// conditions and parameters, and validates the combination before handing
// it to a solver.
//
// A [Problem] is fully checked at construction: timing, initial-condition
// shapes, the parameter record and the call shape of every role. On success
// it carries the bound role bundle and the bound invariant bundle. On
// failure nothing is returned.
//
// An [Ensemble] is a batch of problems sharing one equation. Construction is
// a fast structural pre-check; each entry is fully validated again when it
// is materialized with [Ensemble.Problem].
//
// # Example
//
//	prob, err := problem.NewHODEProblem[float64](v, f, h,
//		[2]float64{0, 1}, 0.1,
//		equation.InitialConditions[float64]{"q": {0.5}, "p": {0}},
//		param.Record{"k": 0.5},
//		problem.WithEquation(equation.WithParameters(schema)),
//	)
//
// # Thread Safety
//
// Problems and ensembles are immutable. [Ensemble.Each] builds entries on
// parallel workers; the callback must be safe for concurrent use.
package problem
