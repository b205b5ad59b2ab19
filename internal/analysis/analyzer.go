package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/dshills/codeprobe/internal/providers"
	"github.com/dshills/codeprobe/internal/redact"
)

const defaultMaxTokens = 4096

// Analyzer sends source text to a collaborator and parses its reply. It holds
// no per-request state and is safe for concurrent use.
type Analyzer struct {
	reviewer      providers.Reviewer
	maxTokens     int
	temperature   float64
	timeout       time.Duration
	redactSecrets bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMaxTokens caps the size of the collaborator reply.
func WithMaxTokens(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxTokens = n
		}
	}
}

// WithTemperature sets the sampling temperature. Zero leaves the provider default.
func WithTemperature(t float64) Option {
	return func(a *Analyzer) { a.temperature = t }
}

// WithTimeout bounds each collaborator call. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) { a.timeout = d }
}

// WithRedaction replaces likely secrets in the source before it leaves the process.
func WithRedaction(enabled bool) Option {
	return func(a *Analyzer) { a.redactSecrets = enabled }
}

// New creates an Analyzer backed by reviewer.
func New(reviewer providers.Reviewer, opts ...Option) *Analyzer {
	a := &Analyzer{
		reviewer:  reviewer,
		maxTokens: defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Provider returns the name of the underlying collaborator.
func (a *Analyzer) Provider() string {
	return a.reviewer.Name()
}

// Analyze submits source, as one request, and returns the parsed result.
// Any failure of the call or of parsing is returned as an error; there are no
// partial results.
func (a *Analyzer) Analyze(ctx context.Context, source string) (Result, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	text := source
	if a.redactSecrets {
		text = redact.Secrets(text)
	}

	resp, err := a.reviewer.Review(ctx, providers.ReviewRequest{
		SystemPrompt: Instructions(),
		UserPrompt:   text,
		MaxTokens:    a.maxTokens,
		Temperature:  a.temperature,
		Schema: &providers.Schema{
			Name:        SchemaName,
			Description: SchemaDescription(),
			Definition:  Schema(),
			Text:        SchemaJSON(),
		},
	})
	if err != nil {
		return Result{}, err
	}

	result, err := ParseResult(resp.Content)
	if err != nil {
		return Result{}, fmt.Errorf("parsing %s response: %w", a.reviewer.Name(), err)
	}
	return result, nil
}
