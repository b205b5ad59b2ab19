package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/dshills/codeprobe/internal/providers"
)

const appName = "codeprobe"

// Config represents the codeprobe configuration.
type Config struct {
	Provider     string             `json:"provider" yaml:"provider"`
	Model        string             `json:"model" yaml:"model"`
	Server       ServerConfig       `json:"server" yaml:"server"`
	Collaborator CollaboratorConfig `json:"collaborator" yaml:"collaborator"`
	Privacy      PrivacyConfig      `json:"privacy" yaml:"privacy"`
	Log          LogConfig          `json:"log" yaml:"log"`
}

// ServerConfig controls the HTTP gateway.
type ServerConfig struct {
	Addr              string   `json:"addr" yaml:"addr"`
	MaxUploadBytes    int64    `json:"maxUploadBytes" yaml:"maxUploadBytes"`
	CORSOrigins       []string `json:"corsOrigins" yaml:"corsOrigins"`
	ReadHeaderTimeout Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
	ShutdownTimeout   Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`
}

// CollaboratorConfig controls calls to the LLM provider.
type CollaboratorConfig struct {
	BaseURL     string   `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
	Timeout     Duration `json:"timeout" yaml:"timeout"`
	MaxTokens   int      `json:"maxTokens" yaml:"maxTokens"`
	Temperature float64  `json:"temperature" yaml:"temperature"`
}

// PrivacyConfig controls redaction of uploaded source.
type PrivacyConfig struct {
	RedactSecrets bool `json:"redactSecrets" yaml:"redactSecrets"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider: "openai",
		Server: ServerConfig{
			Addr:              ":8000",
			CORSOrigins:       []string{"*"},
			ReadHeaderTimeout: Duration(5 * time.Second),
			ShutdownTimeout:   Duration(10 * time.Second),
		},
		Collaborator: CollaboratorConfig{
			MaxTokens: 4096,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for codeprobe.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName), nil
		}
		return filepath.Join(home, "AppData", "Roaming", appName), nil
	default:
		return filepath.Join(home, ".config", appName), nil
	}
}

// ConfigPath returns the full path to the config file: config.yaml, unless
// only config.json exists.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	yamlPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath, nil
	}
	jsonPath := filepath.Join(dir, "config.json")
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return yamlPath, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// LoadFile reads the config file over cfg. Keys absent from the file keep
// their value in cfg. A missing file is not an error.
func LoadFile(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if isJSON(path) {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	}
	if err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Save writes cfg to the config file in the format its extension names.
func Save(cfg Config) (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	data, err := Marshal(cfg, path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}

// Marshal encodes cfg as JSON when path ends in .json and as YAML otherwise.
func Marshal(cfg Config, path string) ([]byte, error) {
	if isJSON(path) {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}
		return append(data, '\n'), nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return buf.Bytes(), nil
}

// Load builds the effective config by merging:
// defaults <- file <- .env <- env <- overrides.
// The overrides map comes from CLI flags, keyed like SetField; empty values
// are ignored.
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	if err := LoadFile(&cfg); err != nil {
		return Config{}, err
	}
	if err := LoadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv exports the variables in path that are not already set in the
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

// envKeys maps environment variables to SetField keys.
var envKeys = map[string]string{
	"CODEPROBE_PROVIDER":         "provider",
	"CODEPROBE_MODEL":            "model",
	"CODEPROBE_ADDR":             "server.addr",
	"CODEPROBE_MAX_UPLOAD_BYTES": "server.maxUploadBytes",
	"CODEPROBE_CORS_ORIGINS":     "server.corsOrigins",
	"CODEPROBE_BASE_URL":         "collaborator.baseURL",
	"CODEPROBE_TIMEOUT":          "collaborator.timeout",
	"CODEPROBE_LOG_LEVEL":        "log.level",
	"CODEPROBE_LOG_FORMAT":       "log.format",
}

// EnvVars returns the supported environment variables, sorted.
func EnvVars() []string {
	names := make([]string, 0, len(envKeys))
	for name := range envKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mergeEnv(cfg *Config) error {
	for _, name := range EnvVars() {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		if err := SetField(cfg, envKeys[name], v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := overrides[k]
		if v == "" {
			continue
		}
		if err := SetField(cfg, k, v); err != nil {
			return fmt.Errorf("--%s: %w", k, err)
		}
	}
	return nil
}

// Keys lists the keys accepted by SetField.
func Keys() []string {
	return []string{
		"provider",
		"model",
		"server.addr",
		"server.maxUploadBytes",
		"server.corsOrigins",
		"server.readHeaderTimeout",
		"server.shutdownTimeout",
		"collaborator.baseURL",
		"collaborator.timeout",
		"collaborator.maxTokens",
		"collaborator.temperature",
		"privacy.redactSecrets",
		"log.level",
		"log.format",
	}
}

// SetField sets a single config field by dotted key name. Returns error if
// key is unknown or value does not parse.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "server.addr":
		cfg.Server.Addr = value
	case "server.maxUploadBytes":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("server.maxUploadBytes must be an integer: %w", err)
		}
		cfg.Server.MaxUploadBytes = n
	case "server.corsOrigins":
		cfg.Server.CORSOrigins = splitList(value)
	case "server.readHeaderTimeout":
		d, err := parseDuration(value)
		if err != nil {
			return fmt.Errorf("server.readHeaderTimeout: %w", err)
		}
		cfg.Server.ReadHeaderTimeout = d
	case "server.shutdownTimeout":
		d, err := parseDuration(value)
		if err != nil {
			return fmt.Errorf("server.shutdownTimeout: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	case "collaborator.baseURL":
		cfg.Collaborator.BaseURL = value
	case "collaborator.timeout":
		d, err := parseDuration(value)
		if err != nil {
			return fmt.Errorf("collaborator.timeout: %w", err)
		}
		cfg.Collaborator.Timeout = d
	case "collaborator.maxTokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("collaborator.maxTokens must be an integer: %w", err)
		}
		cfg.Collaborator.MaxTokens = n
	case "collaborator.temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("collaborator.temperature must be a number: %w", err)
		}
		cfg.Collaborator.Temperature = f
	case "privacy.redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("privacy.redactSecrets must be true or false: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	case "log.level":
		cfg.Log.Level = value
	case "log.format":
		cfg.Log.Format = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate reports the first invalid setting in cfg.
func (c Config) Validate() error {
	if !providers.Known(c.Provider) {
		return fmt.Errorf("unknown provider: %s", c.Provider)
	}
	if c.Server.MaxUploadBytes < 0 {
		return errors.New("server.maxUploadBytes must not be negative")
	}
	if c.Collaborator.MaxTokens < 0 {
		return errors.New("collaborator.maxTokens must not be negative")
	}
	if c.Collaborator.Temperature < 0 || c.Collaborator.Temperature > 2 {
		return fmt.Errorf("collaborator.temperature must be between 0 and 2, got %g", c.Collaborator.Temperature)
	}
	if c.Collaborator.Timeout < 0 {
		return errors.New("collaborator.timeout must not be negative")
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}
