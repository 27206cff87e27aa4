package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds LLM provider configuration. It is filled by internal/config
// from viper keys under "llm".
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter" or
	// "mock". Empty means no provider is configured.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// RateLimit caps requests per minute across all callers. Zero disables
	// the limiter.
	RateLimit int

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the built-in defaults. Provider is left empty.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		RateLimit: 30,
		Timeout:   30 * time.Second,
	}
}

// DiscoverConfig fills an unset provider from the vendors' standard API key
// variables, probing Gemini, OpenAI, Anthropic and OpenRouter in that order.
// It reports false when cfg already names a provider or no key is found.
func DiscoverConfig(cfg Config) (Config, bool) {
	if cfg.Provider != "" {
		return cfg, false
	}
	keyVars := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", "gemini", &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", "openai", &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", "anthropic", &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", "openrouter", &cfg.OpenRouter.APIKey},
	}
	for _, p := range keyVars {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			if *p.key == "" {
				*p.key = k
			}
			return cfg, true
		}
	}
	return cfg, false
}

// Configured reports whether a provider has been selected.
func (c Config) Configured() bool {
	return c.Provider != ""
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	missing := func(name string) error {
		return fmt.Errorf("DRILL_LLM_%s_API_KEY is required for the %s provider",
			strings.ToUpper(name), name)
	}
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return missing(c.Provider)
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return missing(c.Provider)
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return missing(c.Provider)
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return missing(c.Provider)
		}
	case "mock":
	case "":
		return fmt.Errorf("no LLM provider configured (set DRILL_LLM_PROVIDER or a vendor API key)")
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("llm.rate_limit must not be negative, got %d", c.RateLimit)
	}
	return nil
}
