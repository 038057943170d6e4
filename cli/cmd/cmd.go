package cmd

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/exprkit/lang"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given
// kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// environmentKey is used to store a [lang.Environment] in
// [context.Context].
type environmentKey struct{}

// WithEnvironment returns a new context.Context containing the given
// evaluation environment. Commands resolve variables and host functions
// against it.
func WithEnvironment(ctx context.Context, env lang.Environment) context.Context {
	return context.WithValue(ctx, environmentKey{}, env)
}

// EnvironmentFrom retrieves the evaluation environment stored in ctx, or
// nil if none was stored.
func EnvironmentFrom(ctx context.Context) lang.Environment {
	env, _ := ctx.Value(environmentKey{}).(lang.Environment)

	return env
}

// ErrNoExpression indicates a command was invoked with neither an
// expression argument nor a source file.
var ErrNoExpression = lang.NewError(
	"no expression given (pass an expression or --file)",
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// parseInput parses the expression for a command, reading from the source
// file when given and from the joined positional arguments otherwise.
func parseInput(
	ctx context.Context,
	expr []string,
	file string,
	opts ...lang.Option,
) (*lang.Expression, error) {
	if file != "" {
		var reader *os.File

		if file == stdinSource {
			reader = os.Stdin
		} else {
			var err error

			reader, err = os.Open(file)
			if err != nil {
				return nil, lang.ErrReadInput.Wrap(err).
					With(slog.String("path", file))
			}
			defer reader.Close()
		}

		return lang.ParseReader(ctx, bufio.NewReader(reader), opts...)
	}

	if len(expr) == 0 {
		return nil, ErrNoExpression
	}

	return lang.Parse(ctx, strings.Join(expr, " "), opts...)
}
