// Package cli wires together the Cobra command tree for the codeprobe binary.
//
// It defines the root command and all subcommands (serve, analyze, config,
// models, version), binds flags onto configuration keys, builds the
// collaborator and the gateway, and returns deterministic exit codes.
package cli
