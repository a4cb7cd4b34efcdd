package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/jovemprogramador/chatbot-go/internal/constants"
	"github.com/jovemprogramador/chatbot-go/pkg/errors"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Server  ServerConfig
	Site    SiteConfig
	Model   ModelConfig
	Gemini  GeminiConfig
	OpenAI  OpenAIConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port        int
	CORSEnabled bool
}

type SiteConfig struct {
	URL       string
	Timeout   time.Duration
	UserAgent string
}

type ModelConfig struct {
	Provider string
	Preset   string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type LoggingConfig struct {
	Level  string
	File   string
	Format string
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnvInt("PORT", constants.ServerConfig.Port),
			CORSEnabled: getEnvBool("CORS_ENABLED", true),
		},
		Site: SiteConfig{
			URL:       getEnv("SITE_URL", constants.Site.DefaultURL),
			Timeout:   time.Duration(getEnvInt("SCRAPER_TIMEOUT_SECONDS", int(constants.ScraperConfig.Timeout/time.Second))) * time.Second,
			UserAgent: getEnv("SCRAPER_USER_AGENT", constants.ScraperConfig.UserAgent),
		},
		Model: ModelConfig{
			Provider: strings.ToLower(getEnv("MODEL_PROVIDER", constants.ModelDefaults.Provider)),
			Preset:   strings.ToLower(getEnv("MODEL_PRESET", "balanced")),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", constants.ModelDefaults.GeminiModel),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_MODEL", constants.ModelDefaults.OpenAIModel),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			File:   getEnv("LOG_FILE", ""),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Model.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return errors.NewConfigError("GEMINI_API_KEY", "A chave GEMINI_API_KEY não foi encontrada no ambiente")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return errors.NewConfigError("OPENAI_API_KEY", "A chave OPENAI_API_KEY não foi encontrada no ambiente")
		}
	default:
		return errors.NewConfigError("MODEL_PROVIDER", fmt.Sprintf("unsupported MODEL_PROVIDER %q", c.Model.Provider))
	}
	if c.Site.URL == "" {
		return errors.NewConfigError("SITE_URL", "SITE_URL is required")
	}
	if c.Site.Timeout <= 0 {
		return errors.NewConfigError("SCRAPER_TIMEOUT_SECONDS", "SCRAPER_TIMEOUT_SECONDS must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.NewConfigError("PORT", fmt.Sprintf("invalid PORT %d", c.Server.Port))
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
