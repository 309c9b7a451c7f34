package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
)

const promptJSON = `{"name":"daily","count":2}`

func serve(t *testing.T, status int, body any) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func newAnthropic(t *testing.T, status int, body any) *AnthropicProvider {
	t.Helper()
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(serve(t, status, body)), option.WithMaxRetries(0))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestAnthropicProvider(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		check   func(error) bool
		wantErr bool
	}{
		{"happy path", http.StatusOK, anthropicMessage(promptJSON, "end_turn"), nil, false},
		{"schema mismatch", http.StatusOK, anthropicMessage(`{"name":"daily"}`, "end_turn"), func(err error) bool {
			var e *ErrInvalidResponse
			return errors.As(err, &e)
		}, true},
		{"truncated", http.StatusOK, anthropicMessage(`{"name":`, "max_tokens"), func(err error) bool {
			var e *ErrMaxTokensExceeded
			return errors.As(err, &e)
		}, true},
		{"rate limit", http.StatusTooManyRequests, map[string]any{"type": "error", "error": map[string]any{"type": "rate_limit_error", "message": "slow down"}}, func(err error) bool {
			var e *ErrRateLimit
			return errors.As(err, &e)
		}, true},
		{"server error", http.StatusInternalServerError, map[string]any{"type": "error", "error": map[string]any{"type": "api_error", "message": "boom"}}, func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newAnthropic(t, tt.status, tt.body)
			resp, err := p.Generate(context.Background(), Request{
				System:    "You write prompts.",
				Messages:  []Message{{Role: RoleUser, Content: "Write two."}},
				Schema:    testSchema(),
				MaxTokens: 256,
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Generate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(err) {
				t.Fatalf("unexpected error type: %T (%v)", err, err)
			}
			if err == nil {
				if string(resp.Content) != promptJSON {
					t.Errorf("Content = %s", resp.Content)
				}
				if resp.Usage.TotalTokens != 80 {
					t.Errorf("TotalTokens = %d, want 80", resp.Usage.TotalTokens)
				}
			}
		})
	}
}

func openAICompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		wantErr bool
	}{
		{"happy path", http.StatusOK, openAICompletion(promptJSON, "stop"), false},
		{"truncated", http.StatusOK, openAICompletion(`{"name"`, "length"), true},
		{"no choices", http.StatusOK, map[string]any{"id": "x", "choices": []any{}}, true},
		{"rate limit", http.StatusTooManyRequests, map[string]any{"error": map[string]any{"message": "slow down", "type": "rate_limit"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: serve(t, tt.status, tt.body) + "/v1"})
			if err != nil {
				t.Fatal(err)
			}
			resp, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "Write two."}},
				Schema:   testSchema(),
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Generate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && resp.Usage.TotalTokens != 65 {
				t.Errorf("TotalTokens = %d, want 65", resp.Usage.TotalTokens)
			}
		})
	}
}

func TestOpenAIProvider_RateLimitIsTyped(t *testing.T) {
	body := map[string]any{"error": map[string]any{"message": "slow down", "type": "rate_limit"}}
	p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: serve(t, http.StatusTooManyRequests, body) + "/v1"})
	_, err := p.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
	}
}

func TestNewOpenRouterProvider(t *testing.T) {
	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.5-flash"}); err == nil {
		t.Fatal("expected error for empty API key")
	}

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or", Model: "anthropic/claude-3-haiku"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Vendor-qualified IDs pass through untouched.
	if p.ModelID() != "anthropic/claude-3-haiku" {
		t.Errorf("model = %q", p.ModelID())
	}
}

func TestModelAliases(t *testing.T) {
	tests := []struct {
		models map[string]string
		input  string
		want   string
	}{
		{anthropicModels, "claude-haiku", "claude-haiku-4-5-20251001"},
		{anthropicModels, "claude-opus-4-1", "claude-opus-4-1"},
		{openaiModels, "gpt-4o-mini", "gpt-4o-mini"},
		{geminiModels, "gemini-flash", "gemini-2.5-flash"},
		{geminiModels, "gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, tt.models); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(testSchema().Definition)
	if s.Type != "OBJECT" {
		t.Fatalf("Type = %s, want OBJECT", s.Type)
	}
	if len(s.Properties) != 4 || len(s.Required) != 2 {
		t.Fatalf("properties = %d, required = %d", len(s.Properties), len(s.Required))
	}
	if s.Properties["count"].Type != "INTEGER" {
		t.Errorf("count type = %s", s.Properties["count"].Type)
	}
	if len(s.Properties["tone"].Enum) != 2 {
		t.Errorf("tone enum = %v", s.Properties["tone"].Enum)
	}
	prompts := s.Properties["prompts"]
	if prompts.Items == nil || prompts.Items.Type != "STRING" {
		t.Errorf("prompts items = %+v", prompts.Items)
	}
	if prompts.MinItems == nil || *prompts.MinItems != 2 {
		t.Errorf("prompts minItems = %v", prompts.MinItems)
	}
}
