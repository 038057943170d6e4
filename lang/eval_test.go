package lang

import (
	"errors"
	"testing"
)

// evalString is a test helper that parses and evaluates source without the
// cache so option variations never interfere across tests.
func evalString(t *testing.T, source string, env Environment) (Value, error) {
	t.Helper()

	x, err := Parse(t.Context(), source, WithoutCache())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	return x.Evaluate(t.Context(), env)
}

func mustEval(t *testing.T, source string, env Environment) Value {
	t.Helper()

	result, err := evalString(t, source, env)
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	return result
}

func TestEvaluateArithmetic(t *testing.T) {
	tests := []struct {
		source string
		want   Value
	}{
		{source: "1 + 2 * 3", want: Number(7)},
		{source: "(1 + 2) * 3", want: Number(9)},
		{source: "10 - 4 - 3", want: Number(3)},
		{source: "8 / 2 / 2", want: Number(2)},
		{source: "-5 + 2", want: Number(-3)},
		{source: "2 * -3", want: Number(-6)},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got := mustEval(t, tt.source, nil)
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEvaluateComparison(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{source: "3 > 2", want: true},
		{source: "2 >= 2", want: true},
		{source: "1 < 0.5", want: false},
		{source: "1 <= 1", want: true},
		{source: "1 == 1.0", want: true},
		{source: "1 != 2", want: true},
		{source: `"abc" == "abc"`, want: true},
		{source: `"abc" != "abd"`, want: true},
		{source: `"a" < "b"`, want: true},
		{source: `"b" >= "a"`, want: true},
		{source: "true == true", want: true},
		{source: "true != false", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got := mustEval(t, tt.source, nil)
			if !got.Equal(Boolean(tt.want)) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEvaluateLogical(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{source: "true && false", want: false},
		{source: "true and true", want: true},
		{source: "false || true", want: true},
		{source: "false or false", want: false},
		{source: "true xor false", want: true},
		{source: "true xor true", want: false},
		{source: "!true", want: false},
		{source: "not false", want: true},
		{source: "!0", want: true},       // NOT coerces numbers
		{source: `!""`, want: true},      // NOT coerces strings
		{source: "1 && 2", want: true},   // logical ops coerce any type
		{source: `"" || true`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got := mustEval(t, tt.source, nil)
			if !got.Equal(Boolean(tt.want)) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEvaluateShortCircuit(t *testing.T) {
	// The right operand would divide by zero; short-circuiting must skip it.
	env := NewMapEnv().SetNumber("x", 0)

	got := mustEval(t, "false && (1 / x) > 0", env)
	if !got.Equal(Boolean(false)) {
		t.Errorf("expected false, got %v", got)
	}

	got = mustEval(t, "true || (1 / x) > 0", env)
	if !got.Equal(Boolean(true)) {
		t.Errorf("expected true, got %v", got)
	}

	// XOR never short-circuits: the same operand must fail.
	_, err := evalString(t, "false xor (1 / x) > 0", env)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero from xor operand, got %v", err)
	}
}

func TestEvaluateStringOperations(t *testing.T) {
	tests := []struct {
		source string
		want   Value
	}{
		{source: `"foo" + "bar"`, want: String("foobar")},
		{source: `"n=" + 42`, want: String("n=42")},
		{source: `1.5 + "x"`, want: String("1.5x")},
		{source: `"ell" in "hello"`, want: Boolean(true)},
		{source: `"xyz" in "hello"`, want: Boolean(false)},
		{source: `"" in "hello"`, want: Boolean(true)}, // empty needle
		{source: `"" in ""`, want: Boolean(true)},
		{source: `"abc" == 1`, want: Boolean(false)}, // mixed eq is false
		{source: `"abc" != 1`, want: Boolean(true)},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got := mustEval(t, tt.source, nil)
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEvaluateTernary(t *testing.T) {
	got := mustEval(t, "3 > 2 ? 5 : 10", nil)
	if !got.Equal(Number(5)) {
		t.Errorf("expected 5, got %v", got)
	}

	got = mustEval(t, `1 > 2 ? "yes" : "no"`, nil)
	if !got.Equal(String("no")) {
		t.Errorf("expected \"no\", got %v", got)
	}
}

// countingEnv records which functions were invoked, for laziness checks.
type countingEnv struct {
	calls map[string]int
}

func (e *countingEnv) Get(name string) (Value, error) {
	return Value{}, ErrUnknownVariable.Wrap(errNote(name))
}

func (e *countingEnv) Call(name string, args []Value) (Value, error) {
	if e.calls == nil {
		e.calls = make(map[string]int)
	}

	e.calls[name]++

	return Number(float64(len(args))), nil
}

func TestEvaluateTernaryLaziness(t *testing.T) {
	env := &countingEnv{}

	got := mustEval(t, "true ? taken() : skipped()", env)
	if !got.Equal(Number(0)) {
		t.Errorf("expected 0, got %v", got)
	}

	if env.calls["taken"] != 1 {
		t.Errorf("expected taken() to run once, got %d", env.calls["taken"])
	}

	if env.calls["skipped"] != 0 {
		t.Errorf("expected skipped() to never run, got %d", env.calls["skipped"])
	}
}

func TestEvaluateVariables(t *testing.T) {
	env := NewMapEnv().
		SetNumber("x", 3).
		SetNumber("y", 4).
		SetString("name", "world").
		SetBoolean("on", true)

	got := mustEval(t, "x * x + y * y", env)
	if !got.Equal(Number(25)) {
		t.Errorf("expected 25, got %v", got)
	}

	got = mustEval(t, `on ? "hello, " + name : "bye"`, env)
	if !got.Equal(String("hello, world")) {
		t.Errorf("expected greeting, got %v", got)
	}
}

func TestEvaluateHostFunctions(t *testing.T) {
	env := NewMapEnv().SetFunc("double", func(args []Value) (Value, error) {
		n, err := args[0].AsNumber()
		if err != nil {
			return Value{}, err
		}

		return Number(2 * n), nil
	})

	got := mustEval(t, "double(21)", env)
	if !got.Equal(Number(42)) {
		t.Errorf("expected 42, got %v", got)
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		env    Environment
		want   error
	}{
		{name: "division by zero", source: "1 / 0", want: ErrDivisionByZero},
		{name: "unknown variable nil env", source: "x + 1", want: ErrUnknownVariable},
		{
			name:   "unknown variable",
			source: "missing + 1",
			env:    NewMapEnv(),
			want:   ErrUnknownVariable,
		},
		{name: "unknown function nil env", source: "f(1)", want: ErrUnknownFunction},
		{
			name:   "unknown function",
			source: "f(1)",
			env:    NewMapEnv(),
			want:   ErrUnknownFunction,
		},
		{name: "negate string", source: `-"abc"`, want: ErrType},
		{name: "negate boolean", source: "-true", want: ErrType},
		{name: "subtract booleans", source: "true - false", want: ErrType},
		{name: "order string and number", source: `"a" < 1`, want: ErrType},
		{name: "in with number needle", source: `1 in "abc"`, want: ErrType},
		{name: "multiply string", source: `"3" * 2`, want: ErrType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evalString(t, tt.source, tt.env)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEvalConvenience(t *testing.T) {
	got, err := Eval(t.Context(), "1 + 1", nil, WithoutCache())
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if !got.Equal(Number(2)) {
		t.Errorf("expected 2, got %v", got)
	}
}
