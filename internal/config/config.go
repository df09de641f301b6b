// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Analysis failure policies.
const (
	FailureSilent = "silent"
	FailureNotify = "notify"
)

// Seed modes besides a file path.
const (
	SeedDefault = "default"
	SeedNone    = "none"
)

// Default models per provider.
const (
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// Config holds the application configuration.
type Config struct {
	Env     string
	Addr    string
	LogPath string
	Seed    string

	Provider      string
	Model         string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string

	Password        string
	AnalysisFailure string

	AssistantTimeout time.Duration
	CacheSize        int
	CacheTTL         time.Duration
}

// Load reads the configuration. Outside production a .env file in the
// working directory is loaded first; real environment variables win.
func Load() (*Config, error) {
	env := getEnv("SHOUNA_ENV", "development")
	if env != "production" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			slog.Warn("could not load .env file", "error", err)
		}
	}

	cfg := &Config{
		Env:             env,
		Addr:            getEnv("SHOUNA_ADDR", ":8080"),
		LogPath:         getEnv("SHOUNA_LOG", ""),
		Seed:            getEnv("SHOUNA_SEED", SeedDefault),
		Provider:        getEnv("SHOUNA_PROVIDER", ProviderGemini),
		Model:           getEnv("SHOUNA_MODEL", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
		Password:        getEnv("SHOUNA_PASSWORD", ""),
		AnalysisFailure: getEnv("SHOUNA_ANALYSIS_FAILURE", FailureSilent),
	}

	var err error
	if cfg.AssistantTimeout, err = getEnvAsDuration("SHOUNA_ASSISTANT_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getEnvAsDuration("SHOUNA_ANALYSIS_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.CacheSize, err = getEnvAsInt("SHOUNA_ANALYSIS_CACHE_SIZE", 64); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings after flags have been applied and fills in
// the provider's default model.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.Model == "" {
			c.Model = DefaultGeminiModel
		}
	case ProviderOpenAI:
		if c.Model == "" {
			c.Model = DefaultOpenAIModel
		}
	default:
		return fmt.Errorf("unknown provider %q (want %s or %s)", c.Provider, ProviderGemini, ProviderOpenAI)
	}

	if c.AnalysisFailure != FailureSilent && c.AnalysisFailure != FailureNotify {
		return fmt.Errorf("unknown analysis failure policy %q (want %s or %s)", c.AnalysisFailure, FailureSilent, FailureNotify)
	}
	if c.AssistantTimeout <= 0 {
		return fmt.Errorf("assistant timeout must be positive")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("analysis cache size must not be negative")
	}
	return nil
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// NotifyAnalysisFailure reports whether failed photo analyses are shown to
// the user.
func (c *Config) NotifyAnalysisFailure() bool {
	return c.AnalysisFailure == FailureNotify
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}
