package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindupgrade/internal/content"
	"github.com/abhisek/mindupgrade/internal/llm"
	"github.com/abhisek/mindupgrade/internal/logging"
	"github.com/abhisek/mindupgrade/internal/promptgen"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Preview LLM-written prompts (no record service)",
	Long: `Ask the configured LLM provider once for fresh open-ended prompts and
print them.

This is a stateless developer tool: no login, no record service. Useful
for judging prompt quality before enabling a provider for the app.`,
	Args: cobra.NoArgs,
	RunE: runPrompts,
}

func init() {
	promptsCmd.Flags().String("provider", "", "LLM provider: anthropic, openai, gemini or openrouter (overrides config)")
}

func runPrompts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.LLM.Provider = p
	}
	if !cfg.LLM.Enabled() {
		return fmt.Errorf("no LLM provider configured: set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY")
	}

	logger, err := logging.New(cfg.Log, "stderr")
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LLM.Timeout)
	defer cancel()
	provider, err := llm.NewProvider(ctx, cfg.LLM, logger)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	bank, err := promptgen.NewRefresher(provider, logger).Refresh(ctx, content.DefaultBank())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Model: %s\n", provider.ModelID())
	printPool(out, "Brainstorm", bank.Brainstorm)
	printPool(out, "Pros & cons", bank.ProsCons)
	printPool(out, "What if", bank.WhatIf)
	printPool(out, "Reflection", bank.Reflective)
	printPool(out, "Letter", bank.Letter)
	printPool(out, "Story", bank.Story)
	return nil
}

func printPool(w io.Writer, name string, prompts []string) {
	fmt.Fprintf(w, "\n── %s ──\n", name)
	for i, p := range prompts {
		fmt.Fprintf(w, "  %d) %s\n", i+1, p)
	}
}
