package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/codeprobe/internal/analysis"
	"github.com/dshills/codeprobe/internal/config"
	"github.com/dshills/codeprobe/internal/gateway"
	"github.com/dshills/codeprobe/internal/providers"
)

// newReviewer constructs the collaborator. Tests replace it.
var newReviewer = func(cfg config.Config) (providers.Reviewer, error) {
	return providers.New(providers.Config{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		BaseURL:  cfg.Collaborator.BaseURL,
	})
}

// buildAnalyzer creates the analyzer for cfg. A provider whose credential is
// missing still yields an analyzer; every analysis then fails with the
// credential error.
func buildAnalyzer(cfg config.Config) (*analysis.Analyzer, error) {
	reviewer, err := newReviewer(cfg)
	if err != nil {
		if !errors.Is(err, providers.ErrMissingCredential) {
			return nil, err
		}
		logger.Warn("collaborator unavailable", zap.String("provider", cfg.Provider), zap.Error(err))
		reviewer = providers.Unavailable(cfg.Provider, err)
	}
	return analysis.New(reviewer,
		analysis.WithMaxTokens(cfg.Collaborator.MaxTokens),
		analysis.WithTemperature(cfg.Collaborator.Temperature),
		analysis.WithTimeout(cfg.Collaborator.Timeout.Std()),
		analysis.WithRedaction(cfg.Privacy.RedactSecrets),
	), nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP analysis gateway",
	Long: "Serve POST /analyze (multipart field \"file\") and GET /healthz until " +
		"interrupted. In-flight requests finish before the server exits.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		analyzer, err := buildAnalyzer(cfg)
		if err != nil {
			return err
		}

		srv := gateway.NewServer(analyzer, gateway.Options{
			Addr:              cfg.Server.Addr,
			ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout.Std(),
			ShutdownTimeout:   cfg.Server.ShutdownTimeout.Std(),
			MaxUploadBytes:    cfg.Server.MaxUploadBytes,
			CORSOrigins:       cfg.Server.CORSOrigins,
			Logger:            logger,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("starting codeprobe",
			zap.String("version", version),
			zap.String("provider", analyzer.Provider()),
			zap.String("model", modelLabel(cfg.Model)),
			zap.Duration("collaborator_timeout", cfg.Collaborator.Timeout.Std()),
			zap.Int64("max_upload_bytes", cfg.Server.MaxUploadBytes),
		)
		if err := srv.Run(ctx); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	addServerFlags(serveCmd)
}
