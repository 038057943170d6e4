package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/exprkit/lang"
	"github.com/ardnew/exprkit/log"
)

// Eval parses an expression and evaluates it against the configured
// environment, printing the result.
type Eval struct {
	Expr []string `arg:"" help:"Expression to evaluate" name:"expr" optional:""`
	File string   `       help:"Source input file or '-' for stdin" short:"f"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	x, err := parseInput(ctx, e.Expr, e.File)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"))
	}

	result, err := x.Evaluate(ctx, EnvironmentFrom(ctx))
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "eval"),
				slog.String("source", x.Source()),
			)
	}

	log.TraceContext(ctx, "eval complete",
		slog.String("source", x.Source()),
		slog.String("result", result.String()),
	)

	// Print result in native format
	fmt.Println(result)

	return nil
}
