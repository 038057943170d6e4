package cli

import (
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/exprkit/lang"
)

// ErrLoadVars indicates a variables file could not be read or decoded.
var ErrLoadVars = lang.NewError("load variables file")

// loadVars reads a YAML file of variable bindings and returns a populated
// environment. Nested mappings are flattened to dot-separated names, so
//
//	pos:
//	  x: 3
//	  y: 4
//
// binds pos.x and pos.y, matching the identifier syntax accepted by the
// expression grammar.
func loadVars(path string) (*lang.MapEnv, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrLoadVars.Wrap(err).
			With(slog.String("path", path))
	}

	var root map[string]any

	err = yaml.Unmarshal(data, &root)
	if err != nil {
		return nil, ErrLoadVars.Wrap(err).
			With(slog.String("path", path))
	}

	env := lang.NewMapEnv()

	err = bindVars(env, "", root)
	if err != nil {
		return nil, err
	}

	return env, nil
}

// bindVars walks a decoded YAML mapping and binds each scalar leaf under
// its dot-separated path.
func bindVars(env *lang.MapEnv, prefix string, node map[string]any) error {
	for key, value := range node {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		err := bindVar(env, name, value)
		if err != nil {
			return err
		}
	}

	return nil
}

func bindVar(env *lang.MapEnv, name string, value any) error {
	switch v := value.(type) {
	case map[string]any:
		return bindVars(env, name, v)

	case bool:
		env.SetBoolean(name, v)

	case int:
		env.SetNumber(name, float64(v))

	case int64:
		env.SetNumber(name, float64(v))

	case uint64:
		env.SetNumber(name, float64(v))

	case float64:
		env.SetNumber(name, v)

	case string:
		env.SetString(name, v)

	case nil:
		env.SetString(name, "")

	default:
		return ErrLoadVars.
			With(
				slog.String("name", name),
				slog.Any("value", value),
			).
			Wrap(errUnsupportedValue)
	}

	return nil
}

var errUnsupportedValue = lang.NewError("unsupported value type")
