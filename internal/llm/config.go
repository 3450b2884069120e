package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// envPrefix prefixes every variable read by ConfigFromEnv.
const envPrefix = "ADAPTIQ_"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// Endpoint configures one provider.
type Endpoint struct {
	APIKey  string
	Model   string
	BaseURL string // Optional. OpenAI-compatible APIs only.
}

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the active provider.
	Provider string

	// Endpoints holds per-provider settings keyed by provider name.
	Endpoints map[string]Endpoint

	Retry RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// discoveryOrder lists the vendor API key variables checked by
// DiscoverConfig, first match wins.
var discoveryOrder = []struct {
	provider string
	env      string
}{
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// DefaultConfig returns the defaults: Anthropic, three attempts, two
// minutes per call. Question batches are long, so the timeout is generous.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderAnthropic,
		Endpoints: map[string]Endpoint{
			ProviderAnthropic:  {Model: "claude-haiku"},
			ProviderOpenAI:     {Model: "gpt-4o-mini"},
			ProviderGemini:     {Model: "gemini-flash"},
			ProviderOpenRouter: {Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 2 * time.Minute,
	}
}

// Endpoint returns the settings of the active provider.
func (c Config) Endpoint() Endpoint {
	return c.Endpoints[c.Provider]
}

// ConfigFromEnv overlays ADAPTIQ_* environment variables on the defaults:
// ADAPTIQ_LLM_PROVIDER and, per provider, ADAPTIQ_<NAME>_API_KEY,
// ADAPTIQ_<NAME>_MODEL and ADAPTIQ_<NAME>_BASE_URL.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if p := os.Getenv(envPrefix + "LLM_PROVIDER"); p != "" {
		cfg.Provider = strings.ToLower(p)
	}
	for name, ep := range cfg.Endpoints {
		key := envPrefix + strings.ToUpper(name) + "_"
		if v := os.Getenv(key + "API_KEY"); v != "" {
			ep.APIKey = v
		}
		if v := os.Getenv(key + "MODEL"); v != "" {
			ep.Model = v
		}
		if v := os.Getenv(key + "BASE_URL"); v != "" {
			ep.BaseURL = v
		}
		cfg.Endpoints[name] = ep
	}
	if v := os.Getenv(envPrefix + "LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

// DiscoverConfig checks the vendors' own API key variables and returns a
// Config for the first provider whose key is set.
func DiscoverConfig() (Config, bool) {
	for _, d := range discoveryOrder {
		k := os.Getenv(d.env)
		if k == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = d.provider
		ep := cfg.Endpoints[d.provider]
		ep.APIKey = k
		cfg.Endpoints[d.provider] = ep
		return cfg, true
	}
	return Config{}, false
}

// ResolveConfig prefers explicit ADAPTIQ_* configuration and falls back to
// discovery.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if os.Getenv(envPrefix+"LLM_PROVIDER") != "" {
		return Config{}, err
	}
	if cfg, ok := DiscoverConfig(); ok {
		return cfg, nil
	}
	return Config{}, fmt.Errorf("no LLM configured: set %sLLM_PROVIDER and its API key, or one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY", envPrefix)
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.Endpoints[c.Provider].APIKey == "" {
			return fmt.Errorf("%s%s_API_KEY is required for the %s provider",
				envPrefix, strings.ToUpper(c.Provider), c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}
