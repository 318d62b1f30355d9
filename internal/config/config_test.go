package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horoscopo/internal/config"
	"horoscopo/internal/horoscope"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"APP_ENV", "CHATGPT_KEY", "HOROSCOPE_BASE_URL", "HOROSCOPE_MODEL", "HOROSCOPE_FAILURE_MODE", "LOG_LEVEL", "PORT"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 9090
  csrf: false
provider:
  api_key: file-key
  base_url: http://localhost:1234/v1
  model: small-model
  temperature: 0.5
  timeout: 5s
  headers:
    X-Title: horoscopo
horoscope:
  failure_mode: lenient
log:
  level: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Server.CSRF)
	assert.Equal(t, "file-key", cfg.Provider.APIKey)
	assert.Equal(t, "http://localhost:1234/v1", cfg.Provider.BaseURL)
	assert.Equal(t, "small-model", cfg.Provider.Model)
	assert.InDelta(t, 0.5, cfg.Provider.Temperature, 1e-6)
	assert.Equal(t, 5*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, config.Headers{"X-Title": "horoscopo"}, cfg.Provider.Headers)
	assert.Equal(t, "lenient", cfg.Horoscope.FailureMode)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestLoad_DefaultsWithEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHATGPT_KEY", "env-key")
	t.Setenv("PORT", "4567")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Provider.APIKey)
	assert.Equal(t, 4567, cfg.Server.Port)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Provider.BaseURL)
	assert.Equal(t, "meta-llama/llama-4-maverick-17b-128e-instruct", cfg.Provider.Model)
	assert.InDelta(t, 0.7, cfg.Provider.Temperature, 1e-6)
	assert.Equal(t, "strict", cfg.Horoscope.FailureMode)
	assert.True(t, cfg.Server.CSRF)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHATGPT_KEY", "env-key")
	t.Setenv("HOROSCOPE_FAILURE_MODE", "lenient")
	t.Setenv("APP_ENV", "test")
	path := writeConfig(t, "provider:\n  api_key: file-key\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Provider.APIKey)
	assert.Equal(t, "lenient", cfg.Horoscope.FailureMode)
	assert.True(t, cfg.IsTest())
	assert.False(t, cfg.Server.CSRF)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}

func TestLoad_InvalidPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHATGPT_KEY", "k")
	t.Setenv("PORT", "eighty")

	_, err := config.Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := config.Default()
	valid.Provider.APIKey = "k"
	require.NoError(t, valid.Validate())

	tests := map[string]func(*config.Config){
		"port":         func(c *config.Config) { c.Server.Port = 70000 },
		"base url":     func(c *config.Config) { c.Provider.BaseURL = " " },
		"model":        func(c *config.Config) { c.Provider.Model = "" },
		"temperature":  func(c *config.Config) { c.Provider.Temperature = 3 },
		"timeout":      func(c *config.Config) { c.Provider.Timeout = 0 },
		"header":       func(c *config.Config) { c.Provider.Headers = config.Headers{"Bad Header": "x"} },
		"failure mode": func(c *config.Config) { c.Horoscope.FailureMode = "relaxed" },
		"log level":    func(c *config.Config) { c.Log.Level = "verbose" },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestFailureMode(t *testing.T) {
	cfg := config.Default()
	cfg.Provider.APIKey = "k"

	cfg.Horoscope.FailureMode = " Lenient "
	require.NoError(t, cfg.Validate())
	assert.Equal(t, horoscope.Lenient, cfg.FailureMode())

	cfg.Horoscope.FailureMode = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, horoscope.Strict, cfg.FailureMode())

	cfg.Horoscope.FailureMode = "relaxed"
	assert.ErrorContains(t, cfg.Validate(), "horoscope.failure_mode")
}
