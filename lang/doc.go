// Package lang implements the exprkit expression language: a small
// arithmetic, boolean, and string expression grammar with variables,
// function calls, and a ternary conditional.
//
// An expression is parsed once into an immutable syntax tree and may then
// be evaluated any number of times, against any number of Environments,
// including concurrently:
//
//	x, err := lang.Parse(ctx, "pos.x + 10 > limit ? \"near\" : \"far\"")
//	...
//	result, err := x.Evaluate(ctx, env)
//
// Variables and host functions are resolved through the two-method
// Environment interface. The standard function library (min, max, sqrt,
// sin, cos, tan, abs, pow, log, exp, floor, ceil, round) is always
// available, even with a nil Environment.
//
// Values are a tagged union of number, boolean, and string with fixed
// coercion rules; see Value. Failures are classified by the sentinel
// errors ErrParse, ErrUnknownVariable, ErrUnknownFunction, ErrType,
// ErrDivisionByZero, and ErrDomain, all matchable with errors.Is.
//
// Passing WithTokens(true) to Parse additionally records the lexical
// token sequence for syntax highlighting; see the token package.
package lang
