package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagKeys maps command-line flags to config keys. Only flags the user set
// explicitly override configuration.
var flagKeys = map[string]string{
	"provider":         "provider",
	"model":            "model",
	"base-url":         "collaborator.baseURL",
	"timeout":          "collaborator.timeout",
	"max-tokens":       "collaborator.maxTokens",
	"temperature":      "collaborator.temperature",
	"redact":           "privacy.redactSecrets",
	"log-level":        "log.level",
	"log-format":       "log.format",
	"addr":             "server.addr",
	"max-upload-bytes": "server.maxUploadBytes",
	"cors-origins":     "server.corsOrigins",
}

func addCollaboratorFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("provider", "", "LLM provider (openai, anthropic, gemini, ollama)")
	f.String("model", "", "Model name")
	f.String("base-url", "", "Override the provider API endpoint")
	f.Duration("timeout", 0, "Bound each collaborator call (0 = no bound)")
	f.Int("max-tokens", 0, "Maximum tokens in the collaborator reply")
	f.Float64("temperature", 0, "Sampling temperature (0 = provider default)")
	f.Bool("redact", false, "Mask likely secrets before sending source to the provider")
	f.String("log-level", "", "Log level (debug, info, warn, error)")
	f.String("log-format", "", "Log format (json, console)")
}

func addServerFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("addr", "", "Listen address (default :8000)")
	f.Int64("max-upload-bytes", 0, "Reject uploads larger than this many bytes (0 = unlimited)")
	f.String("cors-origins", "", "Comma-separated allowed CORS origins (* allows any)")
}

func buildOverrides(fs *pflag.FlagSet) map[string]string {
	m := make(map[string]string)
	fs.Visit(func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if key, ok := flagKeys[f.Name]; ok {
			m[key] = f.Value.String()
		}
	})
	return m
}
