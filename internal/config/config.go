// Package config resolves drill settings from defaults, an optional YAML
// file, DRILL_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/drill/internal/llm"
	"github.com/abhisek/drill/internal/logging"
	"github.com/abhisek/drill/internal/store"
)

// EnvPrefix is prepended to every environment key, e.g. DRILL_SESSION_SIZE.
const EnvPrefix = "DRILL"

// Config is the resolved configuration.
type Config struct {
	DBPath      string
	SessionSize int
	LogLevel    string
	LLM         llm.Config

	// File is the config file that was read, empty when none was.
	File string
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"db":        "db",
	"log-level": "log.level",
	"config":    "config",
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()

	v.SetDefault("db", "")
	v.SetDefault("config", "")
	v.SetDefault("session.size", 10)
	v.SetDefault("log.level", "warn")

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.rate_limit", d.RateLimit)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
}

// DefaultFile returns $XDG_CONFIG_HOME/drill/config.yaml, falling back to
// ~/.config.
func DefaultFile() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "drill", "config.yaml")
}

// Load resolves the configuration. flags may be nil. An explicit --config
// file must exist; the default file is optional.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag --%s", name)
				}
			}
		}
	}

	file := v.GetString("config")
	if file == "" {
		if def := DefaultFile(); def != "" {
			if _, err := os.Stat(def); err == nil {
				file = def
			}
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", file)
		}
	}

	cfg := &Config{
		SessionSize: v.GetInt("session.size"),
		LogLevel:    v.GetString("log.level"),
		LLM:         llmConfig(v),
		File:        file,
	}
	if cfg.SessionSize <= 0 {
		return nil, errors.Errorf("session.size must be positive, got %d", cfg.SessionSize)
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return nil, errors.Wrap(err, "log.level")
	}

	var err error
	if p := v.GetString("db"); p != "" {
		cfg.DBPath, err = p, store.EnsureDir(p)
	} else {
		cfg.DBPath, err = store.DefaultDBPath()
	}
	if err != nil {
		return nil, errors.Wrap(err, "resolve database path")
	}
	return cfg, nil
}

func llmConfig(v *viper.Viper) llm.Config {
	c := llm.DefaultConfig()
	c.Provider = strings.ToLower(v.GetString("llm.provider"))
	c.Timeout = v.GetDuration("llm.timeout")
	c.RateLimit = v.GetInt("llm.rate_limit")
	c.Retry.MaxAttempts = v.GetInt("llm.retry.max_attempts")

	c.Anthropic.APIKey = v.GetString("llm.anthropic.api_key")
	c.Anthropic.Model = v.GetString("llm.anthropic.model")
	c.OpenAI.APIKey = v.GetString("llm.openai.api_key")
	c.OpenAI.Model = v.GetString("llm.openai.model")
	c.OpenAI.BaseURL = v.GetString("llm.openai.base_url")
	c.Gemini.APIKey = v.GetString("llm.gemini.api_key")
	c.Gemini.Model = v.GetString("llm.gemini.model")
	c.OpenRouter.APIKey = v.GetString("llm.openrouter.api_key")
	c.OpenRouter.Model = v.GetString("llm.openrouter.model")
	c.OpenRouter.BaseURL = v.GetString("llm.openrouter.base_url")

	if discovered, ok := llm.DiscoverConfig(c); ok {
		return discovered
	}
	return c
}
