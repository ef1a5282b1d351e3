// Package eqsolve is the solving engine behind a scientific calculator:
// keypad expressions in, formatted numbers and variable assignments out.
//
// 🚀 What is eqsolve?
//
//	A small numeric engine that brings together:
//		• Expressions: a recursive-descent parser with implicit multiplication,
//		  ^, unary minus and the usual function table (sin, log, sqrt, ...)
//		• Single equations: uniform sign-change scan refined by bisection
//		• Linear systems: coefficient extraction + partial-pivot Gaussian elimination
//		• Nonlinear systems: multi-start damped Newton–Raphson with verification
//		• Matrices: add, sub, mul, transpose, determinant, Gauss–Jordan inverse
//		• A calculator session: memory register (MC/MR/M+/M−/MS) and last answer
//
// ✨ Guarantees
//
//   - Every failure is a returned error from one taxonomy
//     (parse, dimension mismatch, singular matrix, domain, divergence, no root).
//   - Every iteration is capped, so every call terminates.
//   - Sessions are safe for concurrent use; solvers share no state.
//
// Under the hood, everything is organized into subpackages:
//
//	expr/      — lexer, parser, compiled expressions, affine analysis
//	equation/  — keypad normalization, equation parsing, classification, errors
//	matrix/    — Dense storage, elimination kernels, literal parsing & formatting
//	rootfind/  — single-variable scan + bisection
//	linsys/    — linear system assembly and solve
//	newton/    — multi-start Newton for square nonlinear systems
//	engine/    — calculator Session: calculate, solve dispatch, memory, metrics
//	cmd/eqsolve — cobra CLI with calc, solve, root, matrix and repl commands
//
// Quick example:
//
//	eqsolve solve "x + y = 3; x - y = 1"
//	[linear] x = 2, y = 1
//
//	go install github.com/katalvlaran/eqsolve/cmd/eqsolve@latest
package eqsolve
