package ai

import (
	"context"
	"fmt"

	"job-tracker-api/internal/config"
	"job-tracker-api/internal/domain/ports/adapter"
)

// checklistMaxTokens bounds replies; a five item JSON list fits easily.
const checklistMaxTokens = 600

// New builds the adapter selected by cfg. It returns nil, nil when no
// provider is configured; callers then serve static content.
func New(ctx context.Context, cfg config.AIConfig) (adapter.AIServiceAdapter, error) {
	if cfg.Provider == "none" || (cfg.OpenAIKey == "" && cfg.GeminiKey == "") {
		return nil, nil
	}

	byProvider := map[string]adapter.AIServiceAdapter{}
	if cfg.OpenAIKey != "" {
		a, err := NewOpenAIAdapter(cfg.OpenAIKey, cfg.OpenAIBaseURL, defaultModelFor(cfg, "openai", "gpt-4o-mini"), checklistMaxTokens)
		if err != nil {
			return nil, fmt.Errorf("openai adapter: %w", err)
		}
		byProvider["openai"] = a
	}
	if cfg.GeminiKey != "" {
		a, err := NewGeminiAdapter(ctx, cfg.GeminiKey, defaultModelFor(cfg, "gemini", "gemini-2.0-flash"), checklistMaxTokens)
		if err != nil {
			return nil, fmt.Errorf("gemini adapter: %w", err)
		}
		byProvider["gemini"] = a
	}
	if byProvider[cfg.Provider] == nil {
		return nil, fmt.Errorf("ai.provider %q has no api key", cfg.Provider)
	}

	var inner adapter.AIServiceAdapter = byProvider[cfg.Provider]
	if len(byProvider) > 1 {
		inner = NewMultiAIAdapter(cfg.Provider, byProvider, nil)
	}
	return NewLimitedAI(inner, cfg.ConcurrentLimit, cfg.RequestsPerSec), nil
}

func defaultModelFor(cfg config.AIConfig, provider, fallback string) string {
	if cfg.Provider == provider && cfg.DefaultModel != "" {
		return cfg.DefaultModel
	}
	return fallback
}
