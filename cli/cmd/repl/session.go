package repl

import (
	"errors"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/exprkit/lang"
)

// sessionEnv layers REPL assignments over a read-only base environment.
// Lookups consult the session bindings first, so an assignment shadows a
// same-named variable from the base without mutating it.
type sessionEnv struct {
	session *lang.MapEnv
	base    lang.Environment
}

func newSessionEnv(base lang.Environment) *sessionEnv {
	return &sessionEnv{
		session: lang.NewMapEnv(),
		base:    base,
	}
}

// Get implements lang.Environment.
func (e *sessionEnv) Get(name string) (lang.Value, error) {
	value, err := e.session.Get(name)
	if err == nil || e.base == nil {
		return value, err
	}

	if errors.Is(err, lang.ErrUnknownVariable) {
		return e.base.Get(name)
	}

	return lang.Value{}, err
}

// Call implements lang.Environment.
func (e *sessionEnv) Call(name string, args []lang.Value) (lang.Value, error) {
	value, err := e.session.Call(name, args)
	if err == nil || e.base == nil {
		return value, err
	}

	if errors.Is(err, lang.ErrUnknownFunction) {
		return e.base.Call(name, args)
	}

	return lang.Value{}, err
}

// Set binds a variable in the session layer.
func (e *sessionEnv) Set(name string, value lang.Value) {
	e.session.Set(name, value)
}

// Names returns all resolvable variable names, session bindings first.
func (e *sessionEnv) Names() []string {
	names := e.session.Names()

	if base, ok := e.base.(*lang.MapEnv); ok {
		for _, name := range base.Names() {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}

	slices.Sort(names)

	return names
}

// splitAssign detects a top-level assignment of the form "name = expr" and
// returns its parts. The '=' must not be part of a comparison operator
// (==, !=, <=, >=) and must not appear inside a string literal. The name
// must be a valid identifier.
func splitAssign(input string) (name, expr string, ok bool) {
	inString := false
	escaped := false

	for i := 0; i < len(input); i++ {
		c := input[i]

		if inString {
			switch {
			case escaped:
				escaped = false

			case c == '\\':
				escaped = true

			case c == '"':
				inString = false
			}

			continue
		}

		switch c {
		case '"':
			inString = true

		case '=':
			if i > 0 && strings.ContainsRune(`=!<>`, rune(input[i-1])) {
				continue
			}

			if i+1 < len(input) && input[i+1] == '=' {
				i++ // skip the == pair entirely

				continue
			}

			name = strings.TrimSpace(input[:i])
			expr = strings.TrimSpace(input[i+1:])

			if expr == "" || !isIdentifier(name) {
				return "", "", false
			}

			return name, expr, true
		}
	}

	return "", "", false
}

// isIdentifier reports whether s is a valid variable name: a letter or
// underscore followed by letters, digits, dots, or underscores.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	first, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsLetter(first) && first != '_' {
		return false
	}

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) &&
			r != '.' && r != '_' {
			return false
		}
	}

	return true
}
