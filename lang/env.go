package lang

import "log/slog"

// Environment resolves variable reads and function calls on behalf of the
// host application. The core holds only a borrowed reference for the
// duration of one Evaluate call tree; the host owns the Environment's
// lifetime and is responsible for its thread-safety.
type Environment interface {
	// Get resolves a variable by name.
	// Unresolvable names fail with ErrUnknownVariable.
	Get(name string) (Value, error)

	// Call invokes a host function with already-evaluated arguments.
	// Unresolvable names fail with ErrUnknownFunction.
	Call(name string, args []Value) (Value, error)
}

// Func is a host function registered with a MapEnv.
type Func func(args []Value) (Value, error)

// MapEnv is a map-backed Environment for hosts without an existing data
// source. It is not safe for concurrent mutation; configure it before
// sharing across goroutines.
type MapEnv struct {
	vars  map[string]Value
	funcs map[string]Func
}

// NewMapEnv creates an empty map-backed environment.
func NewMapEnv() *MapEnv {
	return &MapEnv{
		vars:  make(map[string]Value),
		funcs: make(map[string]Func),
	}
}

// Set binds a variable to a Value, replacing any previous binding.
func (e *MapEnv) Set(name string, value Value) *MapEnv {
	e.vars[name] = value

	return e
}

// SetNumber binds a numeric variable.
func (e *MapEnv) SetNumber(name string, value float64) *MapEnv {
	return e.Set(name, Number(value))
}

// SetBoolean binds a boolean variable.
func (e *MapEnv) SetBoolean(name string, value bool) *MapEnv {
	return e.Set(name, Boolean(value))
}

// SetString binds a string variable.
func (e *MapEnv) SetString(name string, value string) *MapEnv {
	return e.Set(name, String(value))
}

// SetFunc registers a host function, replacing any previous registration.
func (e *MapEnv) SetFunc(name string, fn Func) *MapEnv {
	e.funcs[name] = fn

	return e
}

// Names returns the bound variable names in no particular order.
func (e *MapEnv) Names() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}

	return names
}

// Get implements Environment.
func (e *MapEnv) Get(name string) (Value, error) {
	value, ok := e.vars[name]
	if !ok {
		return Value{}, ErrUnknownVariable.
			With(slog.String("name", name)).
			Wrap(errNote(name))
	}

	return value, nil
}

// Call implements Environment.
func (e *MapEnv) Call(name string, args []Value) (Value, error) {
	fn, ok := e.funcs[name]
	if !ok {
		return Value{}, ErrUnknownFunction.
			With(slog.String("name", name)).
			Wrap(errNote(name))
	}

	return fn(args)
}
