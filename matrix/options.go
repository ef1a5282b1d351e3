// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the elimination kernels and
// the text renderer. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that applies setters over the defaults.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each option changes a kernel and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - Two thresholds govern singularity detection in Solve:
//   - the pivot tolerance rejects a column whose best partial pivot is tiny;
//   - the back-substitution tolerance rejects a tiny diagonal met on the way up.
//   - Determinant and Inverse reuse the pivot tolerance.
package matrix

// ---------- Defaults (single source of truth) ----------

// Numeric policy.
const (
	// DefaultPivotTolerance is the smallest |pivot| partial pivoting accepts.
	DefaultPivotTolerance = 1e-14

	// DefaultBackSubTolerance is the smallest |U[i,i]| back-substitution
	// divides by.
	DefaultBackSubTolerance = 1e-15

	// DefaultValidateNaNInf toggles strict finite-value validation on Set.
	DefaultValidateNaNInf = true
)

// Rendering policy.
const (
	// DefaultPrecision is the number of decimals Format prints per entry.
	DefaultPrecision = 2
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicPivotTolInvalid   = "matrix: WithPivotTolerance: tol must be finite, non-negative"
	panicBackSubTolInvalid = "matrix: WithBackSubTolerance: tol must be finite, non-negative"
	panicPrecisionInvalid  = "matrix: WithPrecision: digits must be in [0, 17]"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option` and resolve
// them via gatherOptions.
type Options struct {
	pivotTol       float64 // >= 0; DefaultPivotTolerance
	backSubTol     float64 // >= 0; DefaultBackSubTolerance
	validateNaNInf bool    // DefaultValidateNaNInf
	precision      int     // DefaultPrecision
}

// ---------- Constructors (WithX) ----------

// WithPivotTolerance sets the minimal accepted |pivot| during elimination.
// Implementation:
//   - Stage 1: validate tol is finite and ≥ 0.
//   - Stage 2: return a setter that writes tol into Options.
//
// Behavior highlights:
//   - Strict validation in constructor; panics on nonsensical values.
//
// Inputs:
//   - tol: non-negative finite tolerance.
//
// Returns:
//   - Option: functional setter.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// Notes:
//   - Applies to Solve, Determinant and Inverse. A zero tolerance only
//     rejects exact zero pivots.
func WithPivotTolerance(tol float64) Option {
	if isNonFinite(tol) || tol < 0 {
		panic(panicPivotTolInvalid)
	}

	return func(o *Options) { o.pivotTol = tol }
}

// WithBackSubTolerance sets the minimal accepted |U[i,i]| during
// back-substitution in Solve.
// Implementation:
//   - Stage 1: validate tol is finite and ≥ 0.
//   - Stage 2: return a setter.
//
// Complexity:
//   - Time O(1), Space O(1).
func WithBackSubTolerance(tol float64) Option {
	if isNonFinite(tol) || tol < 0 {
		panic(panicBackSubTolInvalid)
	}

	return func(o *Options) { o.backSubTol = tol }
}

// WithNoValidateNaNInf disables NaN/Inf validation (use with care).
//
// Notes:
//   - Elimination kernels still reject non-finite inputs; this flag only
//     governs Set on the created matrices.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithPrecision sets how many decimals Format prints.
// Panics when digits is outside [0, 17].
func WithPrecision(digits int) Option {
	if digits < 0 || digits > 17 {
		panic(panicPrecisionInvalid)
	}

	return func(o *Options) { o.precision = digits }
}

// ---------- Resolution ----------

// DefaultOptions returns the effective configuration with no setters applied.
func DefaultOptions() Options {
	return Options{
		pivotTol:       DefaultPivotTolerance,
		backSubTol:     DefaultBackSubTolerance,
		validateNaNInf: DefaultValidateNaNInf,
		precision:      DefaultPrecision,
	}
}

// gatherOptions applies setters over DefaultOptions in order (last wins).
// Nil setters are skipped.
func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, set := range opts {
		if set != nil {
			set(&o)
		}
	}

	return o
}

// PivotTolerance reports the resolved pivot tolerance.
func (o Options) PivotTolerance() float64 { return o.pivotTol }

// BackSubTolerance reports the resolved back-substitution tolerance.
func (o Options) BackSubTolerance() float64 { return o.backSubTol }

// ValidateNaNInf reports whether created matrices reject non-finite Set.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// Precision reports the resolved Format precision.
func (o Options) Precision() int { return o.precision }
