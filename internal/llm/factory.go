package llm

import (
	"context"
	"fmt"
)

// NewProvider builds the configured provider wrapped as
// timeout -> retry -> logging -> base, so that every attempt is recorded.
// A nil l disables request logging.
func NewProvider(ctx context.Context, cfg Config, l RequestLog) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	ep := cfg.Endpoint()
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(ep)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(ep)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(ep)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, ep)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if l != nil {
		p = WithLogging(p, cfg.Provider, l)
	}
	return WithTimeout(WithRetry(p, cfg.Retry), cfg.Timeout), nil
}
