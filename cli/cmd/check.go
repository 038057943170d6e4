package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/exprkit/lang"
)

// Check parses an expression and reports whether it is syntactically
// valid. A parse failure propagates as a non-zero exit status.
type Check struct {
	Expr []string `arg:"" help:"Expression to validate" name:"expr" optional:""`
	File string   `       help:"Source input file or '-' for stdin" short:"f"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	x, err := parseInput(ctx, c.Expr, c.File, lang.WithoutCache())
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "check"))
	}

	var out io.Writer = os.Stdout
	if ktx := kongContextFrom(ctx); ktx != nil {
		out = ktx.Stdout
	}

	fmt.Fprintf(out, "ok: %s\n", x.Source())

	return nil
}
