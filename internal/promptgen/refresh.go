// Package promptgen refreshes the open-ended prompt pools of a content
// bank with LLM-written prompts.
package promptgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/mindupgrade/internal/content"
	"github.com/abhisek/mindupgrade/internal/llm"
)

const systemPrompt = `You write prompts for a short daily brain-training app.
Prompts are for adults, self-contained, free of personal data and answerable
in a few minutes of typing. Never repeat the examples you are given.`

// Refresher replaces the open-ended prompt pools with LLM-written ones.
type Refresher struct {
	provider llm.Provider
	logger   *zap.Logger
}

// NewRefresher creates a Refresher backed by provider.
func NewRefresher(provider llm.Provider, logger *zap.Logger) *Refresher {
	return &Refresher{provider: provider, logger: logger}
}

type promptsOutput struct {
	Brainstorm []string `json:"brainstorm"`
	ProsCons   []string `json:"pros_cons"`
	WhatIf     []string `json:"what_if"`
	Reflective []string `json:"reflective"`
	Letter     []string `json:"letter"`
	Story      []string `json:"story"`
}

// Refresh makes a single request for new prompts and returns a copy of base
// with them swapped in. On any failure it returns base unchanged together
// with the error; callers keep serving the static pools.
func (r *Refresher) Refresh(ctx context.Context, base *content.Bank) (*content.Bank, error) {
	ctx = llm.WithPurpose(ctx, "prompt-refresh")

	req := llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(base)}},
		Schema:      PromptsSchema,
		MaxTokens:   1024,
		Temperature: 0.9,
	}

	resp, err := r.provider.Generate(ctx, req)
	if err != nil {
		return base, fmt.Errorf("prompt refresh failed: %w", err)
	}

	var out promptsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return base, fmt.Errorf("failed to parse prompt refresh: %w", err)
	}

	next := base.Clone()
	next.Brainstorm = clean(out.Brainstorm, base.Brainstorm)
	next.ProsCons = clean(out.ProsCons, base.ProsCons)
	next.WhatIf = clean(out.WhatIf, base.WhatIf)
	next.Reflective = clean(out.Reflective, base.Reflective)
	next.Letter = clean(out.Letter, base.Letter)
	next.Story = clean(out.Story, base.Story)

	if err := next.Validate(); err != nil {
		return base, fmt.Errorf("refreshed prompts invalid: %w", err)
	}

	r.logger.Info("prompt pools refreshed",
		zap.String("model", resp.Model),
		zap.Int("output_tokens", resp.Usage.OutputTokens))
	return next, nil
}

// clean trims prompts and falls back to the static pool when none survive.
func clean(prompts, fallback []string) []string {
	var out []string
	for _, p := range prompts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func buildUserMessage(b *content.Bank) string {
	var sb strings.Builder
	sb.WriteString("Write three new prompts for each pool. Examples of the current style:\n")
	for _, pool := range []struct {
		name    string
		prompts []string
	}{
		{"brainstorm", b.Brainstorm},
		{"pros_cons", b.ProsCons},
		{"what_if", b.WhatIf},
		{"reflective", b.Reflective},
		{"letter", b.Letter},
		{"story", b.Story},
	} {
		fmt.Fprintf(&sb, "\n%s:\n", pool.name)
		for _, p := range pool.prompts {
			fmt.Fprintf(&sb, "- %s\n", p)
		}
	}
	return sb.String()
}
