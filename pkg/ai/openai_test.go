package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)
	return provider
}

func chatCompletion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProviderSendsSchemaAndValidates(t *testing.T) {
	var captured map[string]any
	provider := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion(`{"score":70,"severity":"medium"}`))
	})

	resp, err := provider.Generate(context.Background(), Request{
		System: "grade it",
		Prompt: "2+2=5",
		Schema: gradeSchema(),
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"score":70,"severity":"medium"}`, string(resp.Content))
	require.Equal(t, 40, resp.Usage.InputTokens)
	require.Equal(t, "end", resp.StopReason)

	format, ok := captured["response_format"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "json_schema", format["type"])
	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
}

func TestOpenAIProviderNonConformingOutput(t *testing.T) {
	provider := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion(`{"score":"high"}`))
	})

	_, err := provider.Generate(context.Background(), Request{Prompt: "x", Schema: gradeSchema()})
	require.True(t, IsNoStructuredOutput(err))
}

func TestOpenAIProviderRateLimit(t *testing.T) {
	provider := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "tokens", "message": "Rate limit exceeded", "code": "rate_limit_exceeded"},
		})
	})

	_, err := provider.Generate(context.Background(), Request{Prompt: "x"})
	var rateLimit *ErrRateLimit
	require.ErrorAs(t, err, &rateLimit)
	require.Contains(t, err.Error(), "Rate limit exceeded")
}

func TestOpenAIProviderServerError(t *testing.T) {
	provider := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "server_error", "message": "upstream failure"},
		})
	})

	_, err := provider.Generate(context.Background(), Request{Prompt: "x"})
	var unavailable *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavailable)
	require.NotEmpty(t, err.Error())
}

func TestNewOpenAIProviderDefaultsModel(t *testing.T) {
	provider, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k"})
	require.NoError(t, err)
	require.Equal(t, "gpt-4o-mini", provider.ModelID())
}
