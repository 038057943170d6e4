package lang

import (
	"errors"
	"math"
	"testing"
)

func TestStandardFunctions(t *testing.T) {
	tests := []struct {
		source string
		want   float64
	}{
		{source: "min(3, 7)", want: 3},
		{source: "max(3, 7)", want: 7},
		{source: "pow(2, 10)", want: 1024},
		{source: "sqrt(9)", want: 3},
		{source: "abs(-4)", want: 4},
		{source: "floor(2.7)", want: 2},
		{source: "ceil(2.1)", want: 3},
		{source: "round(2.5)", want: 3},
		{source: "round(2.4)", want: 2},
		{source: "log(1)", want: 0},
		{source: "exp(0)", want: 1},
		{source: "sin(0)", want: 0},
		{source: "cos(0)", want: 1},
		{source: "tan(0)", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got := mustEval(t, tt.source, nil)

			n, err := got.AsNumber()
			if err != nil {
				t.Fatalf("expected number result: %v", err)
			}

			if math.Abs(n-tt.want) > 1e-12 {
				t.Errorf("expected %v, got %v", tt.want, n)
			}
		})
	}
}

func TestStandardFunctionDomainErrors(t *testing.T) {
	tests := []string{
		"sqrt(-1)",
		"log(0)",
		"log(-5)",
	}

	for _, source := range tests {
		t.Run(source, func(t *testing.T) {
			_, err := evalString(t, source, nil)
			if !errors.Is(err, ErrDomain) {
				t.Errorf("expected ErrDomain, got %v", err)
			}
		})
	}
}

func TestStandardFunctionArityFallThrough(t *testing.T) {
	// A standard name with the wrong arity is not a standard call; it falls
	// through to the Environment.
	env := NewMapEnv().SetFunc("min", func(args []Value) (Value, error) {
		return Number(float64(len(args))), nil
	})

	got := mustEval(t, "min(1, 2, 3)", env)
	if !got.Equal(Number(3)) {
		t.Errorf("expected host min to receive 3 args, got %v", got)
	}

	// Without an environment the fall-through is an unknown function.
	_, err := evalString(t, "min(1, 2, 3)", nil)
	if !errors.Is(err, ErrUnknownFunction) {
		t.Errorf("expected ErrUnknownFunction, got %v", err)
	}
}

func TestStandardFunctionTypeFallThrough(t *testing.T) {
	// Non-numeric arguments are not a standard call either.
	_, err := evalString(t, `sqrt("nine")`, nil)
	if !errors.Is(err, ErrUnknownFunction) {
		t.Errorf("expected ErrUnknownFunction, got %v", err)
	}
}

func TestIsStandardFunction(t *testing.T) {
	for name := range Functions() {
		if !IsStandardFunction(name) {
			t.Errorf("Functions() yielded non-standard name %q", name)
		}
	}

	if IsStandardFunction("bogus") {
		t.Error("bogus must not be a standard function")
	}
}
