package lang

import (
	"errors"
	"log/slog"
	"testing"
)

func TestErrorSentinelIdentity(t *testing.T) {
	derived := ErrDomain.
		Wrap(errNote("sqrt of negative number")).
		With(slog.Float64("argument", -1))

	if !errors.Is(derived, ErrDomain) {
		t.Error("derived error must match its sentinel")
	}

	if errors.Is(derived, ErrType) {
		t.Error("derived error must not match a different sentinel")
	}
}

func TestErrorMessageFormat(t *testing.T) {
	plain := NewError("parse error")
	if plain.Error() != "parse error" {
		t.Errorf("unexpected message: %q", plain.Error())
	}

	wrapped := plain.Wrap(errNote("unexpected end of expression"))
	want := "parse error: unexpected end of expression"

	if wrapped.Error() != want {
		t.Errorf("expected %q, got %q", want, wrapped.Error())
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errNote("inner detail")
	wrapped := ErrParse.Wrap(cause)

	if !errors.Is(wrapped, cause) {
		t.Error("wrapped cause must be reachable through Unwrap")
	}
}

func TestWrapErrorPreservesKind(t *testing.T) {
	derived := ErrDivisionByZero.With(slog.String("op", "/"))

	rewrapped := WrapError(derived)
	if !errors.Is(rewrapped, ErrDivisionByZero) {
		t.Error("WrapError must preserve the underlying error kind")
	}
}
