package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/codeprobe/internal/analysis"
	"github.com/dshills/codeprobe/internal/output"
	"github.com/dshills/codeprobe/internal/providers"
)

var (
	flagFormat       string
	flagOut          string
	flagFailOnIssues bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze one source file without starting the server",
	Long: "Analyze reads a file (\"-\" for stdin), applies the same checks and analysis as " +
		"POST /analyze, and renders the result. The json format is byte-for-byte the " +
		"gateway response body.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := output.GetWriter(flagFormat); err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		path := args[0]
		if path == "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error: Empty filename")
			exitCode = ExitUsageError
			return nil
		}
		data, err := readSource(cmd.InOrStdin(), path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: Failed to read file: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}
		source, err := analysis.DecodeSource(data)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: Failed to read file: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}

		analyzer, err := buildAnalyzer(cfg)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := analyzer.Analyze(cmd.Context(), source)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: Analysis failed: %v\n", err)
			if providers.IsAuthError(err) {
				exitCode = ExitAuthError
			} else {
				exitCode = ExitRuntimeError
			}
			return nil
		}

		report := &output.Report{
			Path:     reportPath(path),
			Provider: analyzer.Provider(),
			Model:    cfg.Model,
			Version:  version,
			Duration: time.Since(start),
			Result:   result,
		}
		if err := output.WriteReport(report, flagFormat, flagOut, cmd.OutOrStdout()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if flagFailOnIssues && !result.Clean() {
			exitCode = ExitIssues
		}
		return nil
	},
}

func readSource(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func reportPath(path string) string {
	if path == "-" {
		return ""
	}
	return path
}

func init() {
	analyzeCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format (text, json, markdown, sarif)")
	analyzeCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().BoolVar(&flagFailOnIssues, "fail-on-issues", false, "Exit with status 1 when any issue is reported")
}
