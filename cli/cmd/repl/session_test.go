package repl

import (
	"errors"
	"testing"

	"github.com/ardnew/exprkit/lang"
)

func TestSplitAssign(t *testing.T) {
	tests := []struct {
		name  string
		input string
		left  string
		right string
		ok    bool
	}{
		{name: "simple", input: "x = 5", left: "x", right: "5", ok: true},
		{name: "no spaces", input: "x=5", left: "x", right: "5", ok: true},
		{name: "dotted name", input: "pos.x = 1 + 2", left: "pos.x", right: "1 + 2", ok: true},
		{name: "expression rhs", input: "r = sqrt(2) * 3", left: "r", right: "sqrt(2) * 3", ok: true},
		{name: "equality", input: "x == 5"},
		{name: "inequality", input: "x != 5"},
		{name: "less equal", input: "x <= 5"},
		{name: "greater equal", input: "x >= 5"},
		{name: "equals in string", input: `"a=b" + c`},
		{name: "empty rhs", input: "x ="},
		{name: "invalid name", input: "2x = 5"},
		{name: "compound lhs", input: "x + y = 5"},
		{name: "no assignment", input: "1 + 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right, ok := splitAssign(tt.input)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v (%q / %q)", tt.ok, ok, left, right)
			}

			if !ok {
				return
			}

			if left != tt.left || right != tt.right {
				t.Errorf("expected %q = %q, got %q = %q",
					tt.left, tt.right, left, right,
				)
			}
		})
	}
}

func TestSessionEnvShadowsBase(t *testing.T) {
	base := lang.NewMapEnv().
		SetNumber("x", 1).
		SetNumber("y", 2)

	env := newSessionEnv(base)

	// Base bindings are visible through the session.
	got, err := env.Get("x")
	if err != nil || !got.Equal(lang.Number(1)) {
		t.Fatalf("expected base x=1, got %v (%v)", got, err)
	}

	// A session assignment shadows without mutating the base.
	env.Set("x", lang.Number(10))

	got, err = env.Get("x")
	if err != nil || !got.Equal(lang.Number(10)) {
		t.Errorf("expected session x=10, got %v (%v)", got, err)
	}

	got, err = base.Get("x")
	if err != nil || !got.Equal(lang.Number(1)) {
		t.Errorf("base must remain x=1, got %v (%v)", got, err)
	}

	_, err = env.Get("missing")
	if !errors.Is(err, lang.ErrUnknownVariable) {
		t.Errorf("expected ErrUnknownVariable, got %v", err)
	}
}

func TestSessionEnvNilBase(t *testing.T) {
	env := newSessionEnv(nil)

	env.Set("a", lang.Number(7))

	result, err := lang.Eval(t.Context(), "a * a", env, lang.WithoutCache())
	if err != nil {
		t.Fatalf("eval: %v", err)
	}

	if !result.Equal(lang.Number(49)) {
		t.Errorf("expected 49, got %v", result)
	}
}

func TestSessionEnvCallFallsThrough(t *testing.T) {
	base := lang.NewMapEnv().SetFunc("twice", func(args []lang.Value) (lang.Value, error) {
		n, err := args[0].AsNumber()
		if err != nil {
			return lang.Value{}, err
		}

		return lang.Number(2 * n), nil
	})

	env := newSessionEnv(base)

	result, err := lang.Eval(t.Context(), "twice(4)", env, lang.WithoutCache())
	if err != nil {
		t.Fatalf("eval: %v", err)
	}

	if !result.Equal(lang.Number(8)) {
		t.Errorf("expected 8, got %v", result)
	}
}
