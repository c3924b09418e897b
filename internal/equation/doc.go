// Package equation defines the family of initial-value equation variants and
// the structural checks that run before a problem may be built from one.
//
// Each variant bundles raw role callables with three optional side channels:
//
//   - [ODE], [PODE], [HODE]: explicit (partitioned, Hamiltonian) vector fields
//   - [IODE], [LODE]: implicit (Lagrangian) equations with initial guesses
//   - [SODE]: an ordered list of splitting phases
//   - [DAE], [PDAE], [HDAE], [IDAE], [LDAE]: differential-algebraic variants
//   - [SDE], [PSDE], [SPSDE]: stochastic variants with diffusion matrices
//
// Role callables are passed as values of any function type and inspected at
// validation time against the exact signature their role demands:
//
//	v(out []T, t float64, q []T, p []T[, params param.Record])
//	B(out *Matrix[T], t float64, q []T[, params param.Record])
//	hamiltonian(t float64, q []T, p []T[, params param.Record]) T
//
// The params argument is present exactly when the equation declares a
// [param.Schema].
//
// # Validation
//
// [CheckInitialConditions], [CheckParameters] and [CheckMethods] are pure
// predicates returning nil on success and a [*ValidationError] wrapping one of
// the Err* sentinels otherwise.
//
// # Binding
//
// [Bind] turns the raw roles into a [Functions] bundle of parameter-free
// closures with the uniform shape (out, t, state...). [BindInvariants] does
// the same for invariants.
//
//	equ, _ := equation.NewHODE[float64](v, f, h, equation.WithParameters(schema))
//	fns, _ := equation.Bind[float64](equ, param.Record{"k": 0.5})
//	fv, _ := fns.Field("v")
//	fv(out, 0, q, p)
//
// # Thread Safety
//
// Equations and bundles are immutable once built. Bound closures may be
// called concurrently as long as the user-supplied roles are reentrant.
package equation
