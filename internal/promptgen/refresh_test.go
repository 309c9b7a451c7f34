package promptgen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/abhisek/mindupgrade/internal/content"
	"github.com/abhisek/mindupgrade/internal/llm"
)

func three(prefix string) []string {
	return []string{prefix + " number one", prefix + " number two", prefix + " number three"}
}

func refreshed(t *testing.T) json.RawMessage {
	t.Helper()
	out := promptsOutput{
		Brainstorm: three("List three ways to adapt without a phone"),
		ProsCons:   append([]string{"  Learning a second instrument as an adult  "}, three("Switching careers")[1:]...),
		WhatIf:     three("What if sleep were optional"),
		Reflective: three("Describe a habit you dropped"),
		Letter:     three("Write to the last stranger who helped you"),
		Story:      three("A scene inside a stalled elevator"),
	}
	raw, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestRefreshReplacesPromptPools(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: refreshed(t)})
	r := NewRefresher(mock, zap.NewNop())
	base := content.DefaultBank()

	got, err := r.Refresh(context.Background(), base)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got == base {
		t.Fatal("Refresh returned the base bank")
	}
	if got.ProsCons[0] != "Learning a second instrument as an adult" {
		t.Errorf("ProsCons[0] = %q, want trimmed prompt", got.ProsCons[0])
	}
	if len(got.Words) != len(base.Words) {
		t.Error("static pools must be carried over")
	}
	if base.Story[0] == got.Story[0] {
		t.Error("story pool not replaced")
	}

	if mock.CallCount() != 1 {
		t.Fatalf("CallCount = %d, want 1", mock.CallCount())
	}
	if mock.Calls[0].Schema != PromptsSchema {
		t.Error("request must carry PromptsSchema")
	}
}

func TestRefreshFailureKeepsBase(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrRateLimit{}}},
		{"malformed json", llm.MockResponse{Content: json.RawMessage(`{"brainstorm":`)}},
		{"schema mismatch", llm.MockResponse{Content: json.RawMessage(`{"brainstorm":["too few"]}`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tt.resp)
			base := content.DefaultBank()
			got, err := NewRefresher(mock, zap.NewNop()).Refresh(context.Background(), base)
			if err == nil {
				t.Fatal("Refresh err = nil, want error")
			}
			if got != base {
				t.Error("failed refresh must return the base bank")
			}
			// One attempt only.
			if mock.CallCount() != 1 {
				t.Errorf("CallCount = %d, want 1", mock.CallCount())
			}
		})
	}
}

func TestRefreshEmptyPoolFallsBack(t *testing.T) {
	blank := `["            ","            ","            "]`
	raw := json.RawMessage(`{"brainstorm":` + blank + `,"pros_cons":` + blank + `,"what_if":` + blank +
		`,"reflective":` + blank + `,"letter":` + blank + `,"story":` + blank + `}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	base := content.DefaultBank()
	got, err := NewRefresher(mock, zap.NewNop()).Refresh(context.Background(), base)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got.Brainstorm[0] != base.Brainstorm[0] {
		t.Errorf("blank prompts should fall back to static pool, got %q", got.Brainstorm[0])
	}
}

func TestRateLimitIsTyped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	_, err := NewRefresher(mock, zap.NewNop()).Refresh(context.Background(), content.DefaultBank())
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Errorf("err = %v, want wrapped ErrRateLimit", err)
	}
}
