// Package cmd implements the exprkit subcommands.
//
// Each command is a struct bound to Kong with a Run method that receives
// the program context. The evaluation environment, populated from the
// --vars file, is carried in the context and shared by all commands.
package cmd
