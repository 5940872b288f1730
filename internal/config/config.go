package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Language model
	LLMProvider  string
	OllamaURL    string
	ModelID      string
	ModelTimeout time.Duration
	GeminiAPIKey string
	GeminiModel  string

	// Interview
	DefaultJobRole string
	MaxUploadBytes int64

	// Rate limiting (REDIS_URL empty = per-process limiter)
	RedisURL           string
	RateLimitPerMinute int
	TrustProxy         bool

	// Logging
	LogJSON  bool
	LogDebug bool
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8000"),
		Env:                getEnvOrDefault("ENV", "development"),
		LLMProvider:        strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderOllama)),
		OllamaURL:          getEnvOrDefault("OLLAMA_URL", "http://localhost:11434"),
		ModelID:            getEnvOrDefault("MODEL_ID", "llama3"),
		ModelTimeout:       getEnvAsDurationOrDefault("MODEL_TIMEOUT", 60*time.Second),
		GeminiAPIKey:       getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:        getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		DefaultJobRole:     getEnvOrDefault("DEFAULT_JOB_ROLE", "Software Developer"),
		MaxUploadBytes:     int64(getEnvAsIntOrDefault("MAX_UPLOAD_MB", 10)) << 20,
		RedisURL:           getEnvOrDefault("REDIS_URL", ""),
		RateLimitPerMinute: getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 60),
		TrustProxy:         getEnvAsBoolOrDefault("TRUST_PROXY", false),
		LogJSON:            getEnvAsBoolOrDefault("LOG_JSON", false),
		LogDebug:           getEnvAsBoolOrDefault("LOG_DEBUG", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration can start a server.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	switch c.LLMProvider {
	case ProviderOllama:
		if c.OllamaURL == "" {
			return fmt.Errorf("OLLAMA_URL cannot be empty")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}
	if c.ModelTimeout <= 0 {
		return fmt.Errorf("MODEL_TIMEOUT must be > 0")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be > 0")
	}
	return nil
}

// ModelName returns the model identifier for the configured provider.
func (c *Config) ModelName() string {
	if c.LLMProvider == ProviderGemini {
		return c.GeminiModel
	}
	return c.ModelID
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

// getEnvAsDurationOrDefault accepts Go durations ("90s") or bare seconds ("90").
func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(val); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultVal
	}
}
