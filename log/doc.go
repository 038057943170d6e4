// Package log provides leveled, structured logging over log/slog with an
// additional trace level, selectable text/JSON output, and an optional
// colorized pretty printer for terminals.
//
// The zero value of Logger is valid and silently discards all messages,
// which lets library packages accept an optional Logger without nil
// checks. A package-level default logger writing to stderr is available
// through the top-level functions and reconfigured with Config.
package log
