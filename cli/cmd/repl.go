package cmd

import (
	"context"

	"github.com/ardnew/exprkit/cli/cmd/repl"
	"github.com/ardnew/exprkit/log"
)

// Repl starts an interactive read-eval-print loop.
type Repl struct {
	History string `default:"${historyFile}" help:"Command history file" type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	return repl.Run(ctx, EnvironmentFrom(ctx), r.History, log.Default())
}
