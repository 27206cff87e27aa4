package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup location at temp dirs and clears keys that
// would leak in from the developer's environment.
func isolate(t *testing.T) (configHome, dataHome string) {
	t.Helper()
	configHome, dataHome = t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", dataHome)
	for _, k := range []string{
		"DRILL_DB", "DRILL_CONFIG", "DRILL_SESSION_SIZE", "DRILL_LOG_LEVEL", "DRILL_LLM_PROVIDER",
		"DRILL_LLM_OPENAI_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
	return configHome, dataHome
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("drill", pflag.ContinueOnError)
	fs.String("db", "", "")
	fs.String("log-level", "", "")
	fs.String("config", "", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	_, dataHome := isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.SessionSize)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dataHome, "drill", "drill.db"), cfg.DBPath)
	assert.Empty(t, cfg.File)
	assert.False(t, cfg.LLM.Configured())
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
}

func TestLoad_FileThenEnvThenFlags(t *testing.T) {
	configHome, _ := isolate(t)
	file := filepath.Join(configHome, "drill", "config.yaml")
	writeConfig(t, file, `
session:
  size: 5
log:
  level: info
llm:
  provider: openai
  timeout: 45s
  openai:
    api_key: from-file
    model: gpt-4o
`)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, file, cfg.File)
	assert.Equal(t, 5, cfg.SessionSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "from-file", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.OpenAI.Model)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)

	t.Setenv("DRILL_SESSION_SIZE", "7")
	t.Setenv("DRILL_LLM_OPENAI_API_KEY", "from-env")
	cfg, err = Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.SessionSize)
	assert.Equal(t, "from-env", cfg.LLM.OpenAI.APIKey)

	db := filepath.Join(t.TempDir(), "nested", "x.db")
	cfg, err = Load(testFlags(t, "--db", db, "--log-level", "debug"))
	require.NoError(t, err)
	assert.Equal(t, db, cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.DirExists(t, filepath.Dir(db))
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, file, "session:\n  size: 3\n")

	cfg, err := Load(testFlags(t, "--config", file))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.SessionSize)

	_, err = Load(testFlags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestLoad_DiscoversVendorKey(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)

	t.Setenv("DRILL_SESSION_SIZE", "0")
	_, err := Load(nil)
	assert.ErrorContains(t, err, "session.size")

	t.Setenv("DRILL_SESSION_SIZE", "")
	t.Setenv("DRILL_LOG_LEVEL", "chatty")
	_, err = Load(nil)
	assert.ErrorContains(t, err, "log.level")
}
