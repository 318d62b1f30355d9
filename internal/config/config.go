package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"horoscopo/internal/horoscope"
)

const envTest = "test"

// Config represents the application configuration parsed from YAML and the environment.
type Config struct {
	Env       string          `yaml:"env"`
	Server    ServerConfig    `yaml:"server"`
	Provider  ProviderConfig  `yaml:"provider"`
	Horoscope HoroscopeConfig `yaml:"horoscope"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig defines listener configuration.
type ServerConfig struct {
	Port int  `yaml:"port"`
	CSRF bool `yaml:"csrf"`
}

// ProviderConfig captures authentication and request parameters for the chat-completion provider.
type ProviderConfig struct {
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
	Headers     Headers       `yaml:"headers"`
}

// Headers contains additional HTTP headers to send with a provider request.
type Headers map[string]string

// HoroscopeConfig controls how the service reacts to provider failures.
type HoroscopeConfig struct {
	FailureMode string `yaml:"failure_mode"`
}

// LogConfig selects the log verbosity.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Env: "development",
		Server: ServerConfig{
			Port: 8080,
			CSRF: true,
		},
		Provider: ProviderConfig{
			BaseURL:     "https://api.groq.com/openai/v1",
			Model:       "meta-llama/llama-4-maverick-17b-128e-instruct",
			Temperature: 0.7,
			Timeout:     30 * time.Second,
		},
		Horoscope: HoroscopeConfig{
			FailureMode: horoscope.Strict.String(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads YAML configuration from path on top of the defaults, applies
// environment overrides and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return Config{}, fmt.Errorf("resolve config path: %w", err)
		}

		data, err := os.ReadFile(absPath)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", absPath, err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %q: %w", absPath, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("APP_ENV"); ok && v != "" {
		c.Env = v
	}
	if v, ok := lookup("CHATGPT_KEY"); ok && v != "" {
		c.Provider.APIKey = v
	}
	if v, ok := lookup("HOROSCOPE_BASE_URL"); ok && v != "" {
		c.Provider.BaseURL = v
	}
	if v, ok := lookup("HOROSCOPE_MODEL"); ok && v != "" {
		c.Provider.Model = v
	}
	if v, ok := lookup("HOROSCOPE_FAILURE_MODE"); ok && v != "" {
		c.Horoscope.FailureMode = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}

	if c.IsTest() {
		c.Server.CSRF = false
	}
	return nil
}

// IsTest reports whether the process runs in the test environment.
func (c Config) IsTest() bool {
	return strings.EqualFold(c.Env, envTest)
}

// Validate performs strict sanity checks on the configuration.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid TCP port, got %d", c.Server.Port)
	}

	if err := validateProvider(c.Provider); err != nil {
		return err
	}

	if _, err := horoscope.ParseFailureMode(c.Horoscope.FailureMode); err != nil {
		return fmt.Errorf("horoscope.failure_mode: %w", err)
	}

	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

func validateProvider(p ProviderConfig) error {
	if strings.TrimSpace(p.APIKey) == "" {
		return fmt.Errorf("provider: api_key must be provided (or set CHATGPT_KEY)")
	}
	if strings.TrimSpace(p.BaseURL) == "" {
		return fmt.Errorf("provider: base_url must be provided")
	}
	if strings.TrimSpace(p.Model) == "" {
		return fmt.Errorf("provider: model must not be empty")
	}
	if p.Temperature < 0 || p.Temperature > 2 {
		return fmt.Errorf("provider: temperature must be between 0 and 2, got %v", p.Temperature)
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("provider: timeout must be positive, got %s", p.Timeout)
	}

	for headerKey := range p.Headers {
		if !isCanonicalHTTPHeader(headerKey) {
			return fmt.Errorf("provider: header %q is not a valid canonical HTTP header", headerKey)
		}
	}
	return nil
}

// FailureMode returns the parsed provider failure mode. Validate guarantees it parses.
func (c Config) FailureMode() horoscope.FailureMode {
	mode, _ := horoscope.ParseFailureMode(c.Horoscope.FailureMode)
	return mode
}

// LogLevel returns the parsed log level. Validate guarantees it parses.
func (c Config) LogLevel() slog.Level {
	level, _ := ParseLogLevel(c.Log.Level)
	return level
}

// ParseLogLevel maps a textual level onto slog.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log.level %q must be one of debug, info, warn or error", s)
	}
}

func isCanonicalHTTPHeader(header string) bool {
	if header == "" {
		return false
	}

	for _, r := range header {
		if !(r == '-' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')) {
			return false
		}
	}
	return true
}
