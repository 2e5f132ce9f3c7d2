package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL + "/",
	})
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}
	return p
}

func geminiReply(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": finish,
			},
		},
		"usageMetadata": map[string]any{
			"promptTokenCount":     12,
			"candidatesTokenCount": 8,
			"totalTokenCount":      20,
		},
	}
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-3-flash-preview"},
		{"gemini-pro", "gemini-3-pro-preview"},
		{"gemini-lite", "gemini-2.5-flash-lite"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(context.Background(), GeminiConfig{Model: "gemini-flash"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}

func TestGeminiProvider_StructuredHappyPath(t *testing.T) {
	var gotPath string
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply(`{"problem":"Omar has 4 pencils and gets 2 more. How many now?","answer":6}`, "STOP"))
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		Messages: UserPrompt("story"),
		Schema:   testStorySchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotPath, "gemini-3-flash-preview:generateContent") {
		t.Errorf("request path = %q", gotPath)
	}
	if resp.Model != "gemini-3-flash-preview" {
		t.Errorf("model = %q", resp.Model)
	}
	if resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 8 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	var out struct {
		Answer float64 `json:"answer"`
	}
	if err := resp.Decode(&out); err != nil || out.Answer != 6 {
		t.Fatalf("decode = %+v, %v", out, err)
	}
}

func TestGeminiProvider_MaxTokensOnStructured(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply(`{"problem":"Omar has`, "MAX_TOKENS"))
	}

	p := newTestGeminiProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{Messages: UserPrompt("story"), Schema: testStorySchema()})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
}

func TestGeminiProvider_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    429,
				"message": "Resource exhausted",
				"status":  "RESOURCE_EXHAUSTED",
			},
		})
	}

	p := newTestGeminiProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{Messages: UserPrompt("hint")})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestGeminiProvider_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 503, "message": "overloaded", "status": "UNAVAILABLE"},
		})
	}

	p := newTestGeminiProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{Messages: UserPrompt("hint")})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestMapGeminiError_ContextPassesThrough(t *testing.T) {
	if err := mapGeminiError(context.DeadlineExceeded); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"age":  map[string]any{"type": "integer"},
			"scores": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "number"},
			},
		},
		"required": []any{"name", "age"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["name"].Type != "STRING" {
		t.Fatalf("expected STRING for name, got %s", schema.Properties["name"].Type)
	}
	if schema.Properties["age"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for age, got %s", schema.Properties["age"].Type)
	}
	if schema.Properties["scores"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for scores, got %s", schema.Properties["scores"].Type)
	}
	if schema.Properties["scores"].Items.Type != "NUMBER" {
		t.Fatalf("expected NUMBER for scores items, got %s", schema.Properties["scores"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
