package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/codeprobe/internal/config"
	"github.com/dshills/codeprobe/internal/logging"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitIssues       = 1
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "codeprobe",
	Short: "LLM-backed source code analysis gateway",
	Long: "codeprobe accepts a source file over HTTP (or from the command line), asks an LLM " +
		"for errors, code smells and potential bugs, and returns a structured result.",
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// logger is replaced by loadConfig once the log settings are known.
var logger = zap.NewNop()

func init() {
	addCollaboratorFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(versionCmd)
}

// Run executes the root command with the process arguments and returns an
// exit code.
func Run() int {
	return RunContext(context.Background(), os.Args[1:])
}

// RunContext executes the root command with args. Cancelling ctx stops a
// running server.
func RunContext(ctx context.Context, args []string) int {
	exitCode = ExitSuccess
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// loadConfig builds the effective configuration from flags set on cmd and
// replaces the package logger to match it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(buildOverrides(cmd.Flags()))
	if err != nil {
		return config.Config{}, err
	}
	l, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return config.Config{}, err
	}
	logger = l
	return cfg, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print codeprobe version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "codeprobe version %s\n", version)
	},
}
