package providers

import (
	"os"
	"strings"

	"github.com/openai/openai-go/v3/option"
)

const (
	defaultLMStudioURL = "http://localhost:1234"
	// LM Studio answers with whichever model is loaded when the name is unknown.
	defaultLMStudioModel = "local-model"
)

// NewLMStudio creates a Reviewer for LM Studio's OpenAI-compatible server.
// No API key is required; LMSTUDIO_API_KEY is sent when set.
func NewLMStudio(model, baseURL string) (*OpenAI, error) {
	if baseURL == "" {
		baseURL = os.Getenv("LMSTUDIO_HOST")
	}
	if baseURL == "" {
		baseURL = defaultLMStudioURL
	}

	// Normalize URL: strip trailing /, /chat/completions, /v1
	baseURL = strings.TrimRight(baseURL, "/")
	baseURL = strings.TrimSuffix(baseURL, "/chat/completions")
	baseURL = strings.TrimSuffix(baseURL, "/v1")

	key := os.Getenv("LMSTUDIO_API_KEY")
	if key == "" {
		key = "lm-studio"
	}
	if model == "" {
		model = defaultLMStudioModel
	}

	o := newOpenAI(model,
		option.WithAPIKey(key),
		option.WithBaseURL(baseURL+"/v1/"),
	)
	o.name = "lmstudio"
	return o, nil
}
