package providers

import (
	"context"
	"fmt"
)

// Schema describes the JSON shape a reviewer is asked to return. Providers
// with native structured output use Definition; the rest put Text in the prompt.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
	Text        string
}

// ReviewRequest contains the data sent to an LLM for review.
type ReviewRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
	Schema       *Schema
}

// ReviewResponse contains the raw response from an LLM.
type ReviewResponse struct {
	Content    string
	TokensUsed int
}

// Reviewer is the provider abstraction interface.
type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error)
	Name() string
}

// Config selects and configures a provider.
type Config struct {
	Provider string
	Model    string
	// BaseURL overrides the provider's API endpoint. Empty uses the default.
	BaseURL string
}

// New creates a provider by name.
func New(cfg Config) (Reviewer, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropic(cfg.Model, cfg.BaseURL)
	case "openai":
		return NewOpenAI(cfg.Model, cfg.BaseURL)
	case "gemini", "google":
		return NewGemini(cfg.Model, cfg.BaseURL)
	case "ollama":
		return NewOllama(cfg.Model, cfg.BaseURL)
	case "lmstudio":
		return NewLMStudio(cfg.Model, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// Known reports whether name is a supported provider.
func Known(name string) bool {
	switch name {
	case "anthropic", "openai", "gemini", "google", "ollama", "lmstudio":
		return true
	}
	return false
}

func maxTokensOrDefault(n int) int {
	if n <= 0 {
		return 4096
	}
	return n
}

// systemWithSchema appends the schema to the system prompt for providers that
// cannot enforce it natively.
func systemWithSchema(req ReviewRequest) string {
	if req.Schema == nil || req.Schema.Text == "" {
		return req.SystemPrompt
	}
	return req.SystemPrompt +
		"\n\nYou MUST respond with ONLY a JSON object that conforms to this JSON Schema. No markdown, no explanation.\n" +
		req.Schema.Text
}
