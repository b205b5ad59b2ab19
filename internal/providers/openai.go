package providers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultOpenAIModel = openai.ChatModelGPT4oMini

// OpenAI implements the Reviewer interface for OpenAI's API and compatible
// endpoints.
type OpenAI struct {
	name   string
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAI creates a new OpenAI provider.
func NewOpenAI(model, baseURL string) (*OpenAI, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY environment variable is not set", ErrMissingCredential)
	}
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return newOpenAI(model, opts...), nil
}

func newOpenAI(model string, opts ...option.RequestOption) *OpenAI {
	// One attempt per review; the SDK retries by default.
	opts = append(opts, option.WithMaxRetries(0))
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAI{
		name:   "openai",
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (o *OpenAI) Name() string {
	if o.name == "" {
		return "openai"
	}
	return o.name
}

func (o *OpenAI) Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error) {
	params := openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		MaxCompletionTokens: openai.Int(int64(maxTokensOrDefault(req.MaxTokens))),
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.Schema != nil && req.Schema.Definition != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        req.Schema.Name,
					Description: openai.String(req.Schema.Description),
					Schema:      req.Schema.Definition,
					Strict:      openai.Bool(true),
				},
			},
		}
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return ReviewResponse{}, fmt.Errorf("chat completion: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return ReviewResponse{}, errors.New("no choices in response")
	}

	msg := resp.Choices[0].Message
	if msg.Refusal != "" {
		return ReviewResponse{}, fmt.Errorf("model refused the request: %s", msg.Refusal)
	}
	if msg.Content == "" {
		return ReviewResponse{}, errors.New("empty text content in API response")
	}

	return ReviewResponse{
		Content:    msg.Content,
		TokensUsed: int(resp.Usage.TotalTokens),
	}, nil
}
