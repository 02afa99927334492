package ai

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := NewGeminiProvider(t.Context(), GeminiConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return provider
}

func geminiAnswer(text, finishReason string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": text}},
			},
			"finishReason": finishReason,
		}},
		"usageMetadata": map[string]any{"promptTokenCount": 30, "candidatesTokenCount": 12, "totalTokenCount": 42},
	}
}

func TestGeminiProviderSendsSchemaAndValidates(t *testing.T) {
	var (
		path     string
		captured map[string]any
	)
	provider := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(geminiAnswer(`{"score":70,"severity":"medium"}`, "STOP"))
	})

	resp, err := provider.Generate(t.Context(), Request{
		System: "grade it",
		Prompt: "2+2=5",
		Schema: gradeSchema(),
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"score":70,"severity":"medium"}`, string(resp.Content))
	require.Equal(t, "end", resp.StopReason)
	require.Equal(t, Usage{InputTokens: 30, OutputTokens: 12, TotalTokens: 42}, resp.Usage)
	require.Equal(t, "gemini-2.5-flash", resp.Model)

	require.True(t, strings.HasSuffix(path, ":generateContent"), path)
	generation, ok := captured["generationConfig"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "application/json", generation["responseMimeType"])
	require.NotNil(t, generation["responseSchema"])
	require.NotNil(t, captured["systemInstruction"])
}

func TestGeminiProviderMaxTokensStopReason(t *testing.T) {
	provider := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(geminiAnswer(`{"score":10,"severity":"low"}`, "MAX_TOKENS"))
	})

	resp, err := provider.Generate(t.Context(), Request{Prompt: "x", Schema: gradeSchema()})
	require.NoError(t, err)
	require.Equal(t, "max_tokens", resp.StopReason)
}

func TestGeminiProviderNonConformingOutput(t *testing.T) {
	provider := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(geminiAnswer(`{"score":"high"}`, "STOP"))
	})

	_, err := provider.Generate(t.Context(), Request{Prompt: "x", Schema: gradeSchema()})
	require.True(t, IsNoStructuredOutput(err))
}

func TestGeminiProviderRateLimit(t *testing.T) {
	calls := 0
	provider := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 429, "message": "Resource has been exhausted", "status": "RESOURCE_EXHAUSTED"},
		})
	})

	_, err := provider.Generate(t.Context(), Request{Prompt: "x", Schema: gradeSchema()})
	var rateLimit *ErrRateLimit
	require.ErrorAs(t, err, &rateLimit)
	require.Contains(t, err.Error(), "Resource has been exhausted")
	require.Equal(t, 1, calls)
}

func TestGeminiProviderServerError(t *testing.T) {
	provider := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 503, "message": "The model is overloaded", "status": "UNAVAILABLE"},
		})
	})

	_, err := provider.Generate(t.Context(), Request{Prompt: "x"})
	var unavailable *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavailable)
}

func TestGeminiSchemaConvertsNestedDefinition(t *testing.T) {
	schema := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":        "string",
					"enum":        []any{"beginner", "advanced"},
					"description": "level",
				},
			},
			"score": map[string]any{"type": "integer"},
		},
		"required": []any{"items", "score"},
	})

	require.Equal(t, genai.TypeObject, schema.Type)
	require.Equal(t, []string{"items", "score"}, schema.Required)
	require.Equal(t, genai.TypeInteger, schema.Properties["score"].Type)

	items := schema.Properties["items"]
	require.Equal(t, genai.TypeArray, items.Type)
	require.Equal(t, []string{"beginner", "advanced"}, items.Items.Enum)
	require.Equal(t, "level", items.Items.Description)
}

func TestNewGeminiProviderRequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(t.Context(), GeminiConfig{})
	require.EqualError(t, err, "gemini api key is required")
}
