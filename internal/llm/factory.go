package llm

import (
	"context"
	"fmt"
)

// NewProvider builds the configured provider wrapped as
// caller → timeout → retry → logging → base, so every attempt is recorded.
// A nil recorder disables event logging.
func NewProvider(ctx context.Context, cfg Config, recorder EventRecorder) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	p := base
	if recorder != nil {
		p = WithLogging(p, cfg.Provider, recorder)
	}
	return WithTimeout(WithRetry(p, cfg.Retry), cfg.Timeout), nil
}
