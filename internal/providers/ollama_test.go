package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllama_Review(t *testing.T) {
	var body ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify no Authorization header when no API key is set
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Message:         ollamaMessage{Role: "assistant", Content: "{}"},
			PromptEvalCount: 60,
			EvalCount:       40,
		})
	}))
	defer server.Close()

	o := &Ollama{
		model:   "llama3",
		baseURL: server.URL,
		client:  server.Client(),
	}

	resp, err := o.Review(context.Background(), ReviewRequest{
		SystemPrompt: "system",
		UserPrompt:   "code",
		MaxTokens:    10,
		Schema:       &Schema{Definition: map[string]any{"type": "object"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "{}", resp.Content)
	assert.Equal(t, 100, resp.TokensUsed)

	assert.Equal(t, "llama3", body.Model)
	assert.False(t, body.Stream)
	assert.Equal(t, 10, body.Options.NumPredict)
	assert.Equal(t, map[string]any{"type": "object"}, body.Format)
	require.Len(t, body.Messages, 2)
	assert.Equal(t, "code", body.Messages[1].Content)
}

func TestOllama_ReviewWithAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-ollama-key", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(ollamaResponse{Message: ollamaMessage{Content: "{}"}})
	}))
	defer server.Close()

	o := &Ollama{
		apiKey:  "test-ollama-key",
		model:   "llama3",
		baseURL: server.URL,
		client:  server.Client(),
	}

	_, err := o.Review(context.Background(), ReviewRequest{SystemPrompt: "s", UserPrompt: "u"})
	require.NoError(t, err)
}

func TestOllama_StatusError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("forbidden"))
	}))
	defer server.Close()

	o := &Ollama{model: "llama3", baseURL: server.URL, client: server.Client()}
	_, err := o.Review(context.Background(), ReviewRequest{SystemPrompt: "s", UserPrompt: "u"})
	require.EqualError(t, err, "API error (status 403): forbidden")
	assert.True(t, IsAuthError(err))
	assert.Equal(t, 1, attempts)
}

func TestOllama_ModelError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"model \"nope\" not found"}`))
	}))
	defer server.Close()

	o := &Ollama{model: "nope", baseURL: server.URL, client: server.Client()}
	_, err := o.Review(context.Background(), ReviewRequest{SystemPrompt: "s", UserPrompt: "u"})
	require.EqualError(t, err, `model "nope" not found`)
}
