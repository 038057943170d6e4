package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/exprkit/lang"
)

// Tokens parses an expression with token collection enabled and prints the
// token stream, optionally rendering the source with syntax highlighting.
type Tokens struct {
	Expr      []string `arg:"" help:"Expression to tokenize" name:"expr" optional:""`
	File      string   `       help:"Source input file or '-' for stdin"               short:"f"`
	Highlight bool     `       help:"Render highlighted source instead of token list"  short:"H"`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	x, err := parseInput(ctx, t.Expr, t.File, lang.WithTokens(true))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "tokens"))
	}

	if t.Highlight {
		fmt.Println(Highlight(x.Source(), x.Tokens()))

		return nil
	}

	for _, tok := range x.Tokens() {
		fmt.Printf("%4d %4d  %-11s %q\n",
			tok.Start, tok.Length, tok.Kind, tok.Text,
		)
	}

	return nil
}
