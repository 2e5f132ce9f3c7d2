package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with timeout, retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, events EventRecorder, log logrus.FieldLogger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → retry → logging → base
	logged := WithLogging(base, cfg.Provider, events, log)
	retried := WithRetry(logged, cfg.Retry, log)

	return WithTimeout(retried, cfg.Timeout), nil
}

// ResolveConfig reads MATHQUEST_* settings and, when the selected provider
// has no key and no provider was chosen explicitly, falls back to
// DiscoverConfig. Returns ErrNoCredentials when nothing usable is found.
func ResolveConfig() (Config, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return cfg, err
	}
	if cfg.HasCredentials() {
		return cfg, cfg.Validate()
	}
	if os.Getenv("MATHQUEST_LLM_PROVIDER") == "" {
		if found, ok := DiscoverConfig(); ok {
			cfg.Provider = found.Provider
			mergeKey(&cfg.Gemini.APIKey, found.Gemini.APIKey)
			mergeKey(&cfg.OpenAI.APIKey, found.OpenAI.APIKey)
			mergeKey(&cfg.Anthropic.APIKey, found.Anthropic.APIKey)
			mergeKey(&cfg.OpenRouter.APIKey, found.OpenRouter.APIKey)
			return cfg, nil
		}
	}
	return cfg, ErrNoCredentials
}

func mergeKey(dst *string, key string) {
	if key != "" {
		*dst = key
	}
}

// NewProviderFromEnv resolves configuration from the environment and builds
// the wrapped provider. It returns ErrNoCredentials when remote features
// should stay off.
func NewProviderFromEnv(ctx context.Context, events EventRecorder, log logrus.FieldLogger) (Provider, Config, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, cfg, err
	}
	p, err := NewProvider(ctx, cfg, events, log)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg, nil
}
