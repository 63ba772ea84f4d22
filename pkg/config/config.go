package config

import (
	"strings"
)

// Provider names accepted by Config.Provider.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds all runtime configuration for the assistant.
type Config struct {
	CatalogPath   string
	Provider      string
	MaxToolRounds int
	ExitWord      string
	Verbose       bool

	GeminiAPIKey string
	OpenAIAPIKey string
	BaseURL      string
	Model        string
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		CatalogPath:   "mock_catalog.json",
		Provider:      ProviderGemini,
		MaxToolRounds: 1,
		ExitWord:      "sair",
	}
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	defaults := DefaultConfig()
	cfg.CatalogPath = strings.TrimSpace(cfg.CatalogPath)
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = defaults.CatalogPath
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider == "" {
		cfg.Provider = defaults.Provider
	}
	cfg.ExitWord = strings.TrimSpace(cfg.ExitWord)
	if cfg.ExitWord == "" {
		cfg.ExitWord = defaults.ExitWord
	}
	cfg.GeminiAPIKey = strings.TrimSpace(cfg.GeminiAPIKey)
	cfg.OpenAIAPIKey = strings.TrimSpace(cfg.OpenAIAPIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)

	if cfg.MaxToolRounds <= 0 {
		cfg.MaxToolRounds = 1
	}
	return cfg
}

// APIKey returns the credential for the selected provider.
func (c Config) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// APIKeyEnv names the environment variable that supplies APIKey.
func (c Config) APIKeyEnv() string {
	if c.Provider == ProviderOpenAI {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}
