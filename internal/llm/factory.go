package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/edusheet/internal/store"
)

// NewProvider builds the configured backend and its decorators:
// caller → retry → fallback chain → logging → base. Every model in a
// fallback chain is logged on its own. eventRepo may be nil.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log logrus.FieldLogger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var chain []Provider
	switch cfg.Provider {
	case ProviderGemini:
		primary, err := NewGeminiProvider(ctx, cfg.Gemini)
		if err != nil {
			return nil, fmt.Errorf("initializing gemini provider: %w", err)
		}
		chain = append(chain, primary)
		for _, m := range cfg.Gemini.Fallbacks {
			if resolveModel(m, geminiModels) != primary.ModelID() {
				chain = append(chain, primary.withModel(m))
			}
		}
	case ProviderOpenAI:
		p, err := NewOpenAIProvider(cfg.OpenAI)
		if err != nil {
			return nil, fmt.Errorf("initializing openai provider: %w", err)
		}
		chain = append(chain, p)
	case ProviderAnthropic:
		p, err := NewAnthropicProvider(cfg.Anthropic)
		if err != nil {
			return nil, fmt.Errorf("initializing anthropic provider: %w", err)
		}
		chain = append(chain, p)
	case ProviderOpenRouter:
		p, err := NewOpenRouterProvider(cfg.OpenRouter)
		if err != nil {
			return nil, fmt.Errorf("initializing openrouter provider: %w", err)
		}
		chain = append(chain, p)
	case ProviderMock:
		return NewMockProvider(), nil
	}

	for i, p := range chain {
		chain[i] = WithLogging(p, eventRepo, log)
	}
	return WithRetry(WithFallback(chain[0], chain[1:]...), cfg.Retry, RetryLogger(log)), nil
}
