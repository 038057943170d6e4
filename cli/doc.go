// Package cli contains the command line interface for exprkit.
//
// # Usage
//
// Expressions are evaluated directly (eval is the default command):
//
//	exprkit '1 + 2 * 3'
//	exprkit --vars=vars.yml 'pos.x > threshold ? "high" : "low"'
//
// The tokens command prints the lexical structure of an expression, and
// check validates syntax without evaluating:
//
//	exprkit tokens --highlight '3 > 2 ? 5 : 10'
//	exprkit check -f exprs.txt
//
// The repl command starts an interactive evaluator with fuzzy completion,
// persistent history, and session variable assignment:
//
//	exprkit repl --vars=vars.yml
//
// # Variables
//
// The --vars flag loads a YAML file of variable bindings. Nested mappings
// flatten to dot-separated names, so key pos.x in an expression reads the
// x entry of the pos mapping.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
