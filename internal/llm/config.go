package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by MATHQUEST_LLM_PROVIDER.
const (
	ProviderGemini     = "gemini"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which backend to use. See the Provider* constants.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single request including
	// retries. Zero disables the deadline.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-haiku"
	BaseURL string // Optional.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-flash"
	BaseURL string // Optional.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults. Gemini is the
// default backend.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from MATHQUEST_* environment variables,
// falling back to defaults for unset values. An unparsable
// MATHQUEST_LLM_TIMEOUT is reported as an error.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if p := os.Getenv("MATHQUEST_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	if t := os.Getenv("MATHQUEST_LLM_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return cfg, fmt.Errorf("MATHQUEST_LLM_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	setFromEnv(&cfg.Anthropic.APIKey, "MATHQUEST_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "MATHQUEST_ANTHROPIC_MODEL")

	setFromEnv(&cfg.OpenAI.APIKey, "MATHQUEST_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "MATHQUEST_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "MATHQUEST_OPENAI_BASE_URL")

	setFromEnv(&cfg.Gemini.APIKey, "MATHQUEST_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "MATHQUEST_GEMINI_MODEL")

	setFromEnv(&cfg.OpenRouter.APIKey, "MATHQUEST_OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "MATHQUEST_OPENROUTER_MODEL")

	return cfg, nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig checks standard API key env vars in priority order
// (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for the
// first provider whose key is found. API_KEY is treated as a Gemini key.
// Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if k := os.Getenv(name); k != "" {
			cfg.Provider = ProviderGemini
			cfg.Gemini.APIKey = k
			return cfg, true
		}
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// HasCredentials reports whether the selected provider has an API key.
func (c Config) HasCredentials() bool {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic.APIKey != ""
	case ProviderOpenAI:
		return c.OpenAI.APIKey != ""
	case ProviderGemini:
		return c.Gemini.APIKey != ""
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey != ""
	case ProviderMock:
		return true
	}
	return false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if !c.HasCredentials() {
			return fmt.Errorf("MATHQUEST_%s_API_KEY is required for the %s provider", envName(c.Provider), c.Provider)
		}
	case ProviderMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

// ModelName returns the configured model for the selected provider.
func (c Config) ModelName() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	}
	return c.Provider
}

func envName(provider string) string {
	switch provider {
	case ProviderOpenRouter:
		return "OPENROUTER"
	case ProviderOpenAI:
		return "OPENAI"
	case ProviderAnthropic:
		return "ANTHROPIC"
	default:
		return "GEMINI"
	}
}
