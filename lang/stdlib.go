package lang

import (
	"iter"
	"log/slog"
	"math"
)

// standardArity maps each standard function name to its argument count.
// The catalog is fixed: min, max, and pow take two numbers; the rest take
// one.
var standardArity = map[string]int{
	"min": 2, "max": 2, "pow": 2,
	"sqrt": 1, "sin": 1, "cos": 1, "tan": 1, "abs": 1,
	"log": 1, "exp": 1, "floor": 1, "ceil": 1, "round": 1,
}

// Functions returns an iterator over the names of all standard functions
// in no particular order.
func Functions() iter.Seq[string] {
	return func(yield func(string) bool) {
		for name := range standardArity {
			if !yield(name) {
				return
			}
		}
	}
}

// IsStandardFunction reports whether name is in the standard catalog.
func IsStandardFunction(name string) bool {
	_, ok := standardArity[name]

	return ok
}

// callStandard dispatches a call to the standard function library.
//
// A call whose name, arity, or argument types do not match the catalog is
// not a match: found is false and the caller falls through to the
// Environment. Domain violations (sqrt of a negative, log of a
// non-positive) are matches that fail with ErrDomain.
func callStandard(name string, args []Value) (Value, bool, error) {
	arity, ok := standardArity[name]
	if !ok || len(args) != arity {
		return Value{}, false, nil
	}

	for _, arg := range args {
		if !arg.IsNumber() {
			return Value{}, false, nil
		}
	}

	if arity == 2 {
		a, err := args[0].AsNumber()
		if err != nil {
			return Value{}, false, nil
		}

		b, err := args[1].AsNumber()
		if err != nil {
			return Value{}, false, nil
		}

		switch name {
		case "min":
			return Number(math.Min(a, b)), true, nil
		case "max":
			return Number(math.Max(a, b)), true, nil
		default: // pow
			return Number(math.Pow(a, b)), true, nil
		}
	}

	x, err := args[0].AsNumber()
	if err != nil {
		return Value{}, false, nil
	}

	switch name {
	case "sqrt":
		if x < 0 {
			return Value{}, true, ErrDomain.
				Wrap(errNote("sqrt of negative number")).
				With(slog.Float64("argument", x))
		}

		return Number(math.Sqrt(x)), true, nil

	case "log":
		if x <= 0 {
			return Value{}, true, ErrDomain.
				Wrap(errNote("log of non-positive number")).
				With(slog.Float64("argument", x))
		}

		return Number(math.Log(x)), true, nil

	case "sin":
		return Number(math.Sin(x)), true, nil
	case "cos":
		return Number(math.Cos(x)), true, nil
	case "tan":
		return Number(math.Tan(x)), true, nil
	case "abs":
		return Number(math.Abs(x)), true, nil
	case "exp":
		return Number(math.Exp(x)), true, nil
	case "floor":
		return Number(math.Floor(x)), true, nil
	case "ceil":
		return Number(math.Ceil(x)), true, nil
	default: // round
		return Number(math.Round(x)), true, nil
	}
}
