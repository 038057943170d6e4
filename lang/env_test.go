package lang

import (
	"errors"
	"slices"
	"testing"
)

func TestMapEnvGet(t *testing.T) {
	env := NewMapEnv().
		SetNumber("n", 1.5).
		SetBoolean("b", true).
		SetString("s", "text")

	got, err := env.Get("n")
	if err != nil || !got.Equal(Number(1.5)) {
		t.Errorf("expected 1.5, got %v (%v)", got, err)
	}

	got, err = env.Get("b")
	if err != nil || !got.Equal(Boolean(true)) {
		t.Errorf("expected true, got %v (%v)", got, err)
	}

	got, err = env.Get("s")
	if err != nil || !got.Equal(String("text")) {
		t.Errorf("expected \"text\", got %v (%v)", got, err)
	}

	_, err = env.Get("missing")
	if !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("expected ErrUnknownVariable, got %v", err)
	}
}

func TestMapEnvSetReplaces(t *testing.T) {
	env := NewMapEnv().SetNumber("x", 1)
	env.SetString("x", "shadowed")

	got, err := env.Get("x")
	if err != nil || !got.Equal(String("shadowed")) {
		t.Errorf("expected replacement binding, got %v (%v)", got, err)
	}
}

func TestMapEnvCall(t *testing.T) {
	env := NewMapEnv().SetFunc("answer", func([]Value) (Value, error) {
		return Number(42), nil
	})

	got, err := env.Call("answer", nil)
	if err != nil || !got.Equal(Number(42)) {
		t.Errorf("expected 42, got %v (%v)", got, err)
	}

	_, err = env.Call("missing", nil)
	if !errors.Is(err, ErrUnknownFunction) {
		t.Errorf("expected ErrUnknownFunction, got %v", err)
	}
}

func TestMapEnvNames(t *testing.T) {
	env := NewMapEnv().
		SetNumber("a", 1).
		SetNumber("b", 2)

	names := env.Names()
	slices.Sort(names)

	if !slices.Equal(names, []string{"a", "b"}) {
		t.Errorf("expected [a b], got %v", names)
	}
}
