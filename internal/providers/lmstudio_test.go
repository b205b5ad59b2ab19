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

func TestLMStudio_UsesOpenAICompatibleEndpoint(t *testing.T) {
	t.Setenv("LMSTUDIO_API_KEY", "")
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer lm-studio", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openAIChatResponse(`{"errors":[],"code_smells":[],"potential_bugs":[]}`))
	}))
	defer server.Close()

	r, err := New(Config{Provider: "lmstudio", BaseURL: server.URL + "/v1/"})
	require.NoError(t, err)
	assert.Equal(t, "lmstudio", r.Name())

	resp, err := r.Review(context.Background(), ReviewRequest{SystemPrompt: "s", UserPrompt: "u"})
	require.NoError(t, err)
	assert.Equal(t, `{"errors":[],"code_smells":[],"potential_bugs":[]}`, resp.Content)
	assert.Equal(t, defaultLMStudioModel, body["model"])
}

func TestLMStudio_HostFromEnv(t *testing.T) {
	t.Setenv("LMSTUDIO_API_KEY", "local-secret")
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer local-secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openAIChatResponse("{}"))
	}))
	defer server.Close()
	t.Setenv("LMSTUDIO_HOST", server.URL)

	o, err := NewLMStudio("qwen2.5-coder-7b-instruct", "")
	require.NoError(t, err)
	assert.Equal(t, "qwen2.5-coder-7b-instruct", string(o.model))

	_, err = o.Review(context.Background(), ReviewRequest{UserPrompt: "u"})
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}
