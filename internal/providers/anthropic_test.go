package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropic(t *testing.T, server *httptest.Server) *Anthropic {
	t.Helper()
	return newAnthropic("claude-sonnet-4-20250514",
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithHTTPClient(server.Client()),
	)
}

func TestAnthropic_Review(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_1",
			"type":        "message",
			"role":        "assistant",
			"model":       "claude-sonnet-4-20250514",
			"stop_reason": "end_turn",
			"content": []map[string]any{
				{"type": "text", "text": "```json\n{\"errors\":[]"},
				{"type": "text", "text": "}\n```"},
			},
			"usage": map[string]any{"input_tokens": 10, "output_tokens": 5},
		})
	}))
	defer server.Close()

	a := newTestAnthropic(t, server)
	resp, err := a.Review(context.Background(), ReviewRequest{
		SystemPrompt: "system",
		UserPrompt:   "code",
		Schema:       &Schema{Text: `{"type":"object"}`},
	})
	require.NoError(t, err)
	assert.Equal(t, "```json\n{\"errors\":[]}\n```", resp.Content)
	assert.Equal(t, 15, resp.TokensUsed)

	system, ok := body["system"].([]any)
	require.True(t, ok)
	require.Len(t, system, 1)
	assert.Contains(t, system[0].(map[string]any)["text"], `{"type":"object"}`)
	assert.EqualValues(t, 4096, body["max_tokens"])
}

func TestAnthropic_ServerErrorNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"internal server error"}}`))
	}))
	defer server.Close()

	a := newTestAnthropic(t, server)
	_, err := a.Review(context.Background(), ReviewRequest{SystemPrompt: "s", UserPrompt: "u"})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestAnthropic_AuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	a := newTestAnthropic(t, server)
	_, err := a.Review(context.Background(), ReviewRequest{SystemPrompt: "s", UserPrompt: "u"})
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}
