// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider identifies the text generation backend.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderBedrock   Provider = "bedrock"
)

// MaxResults is the hard cap on names returned by one generation call.
const MaxResults = 15

// defaultModels are used when ASTRONAME_LLM_MODEL is unset.
var defaultModels = map[Provider]string{
	ProviderGemini:    "gemini-2.0-flash",
	ProviderOllama:    "llama3.2",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-3-5-haiku-latest",
	ProviderBedrock:   "anthropic.claude-3-haiku-20240307-v1:0",
}

// Config holds all configuration values.
type Config struct {
	// Generation backend
	LLMProvider Provider
	LLMModel    string

	// Provider credentials and endpoints
	GeminiAPIKey    string
	GeminiBaseURL   string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	OllamaHost      string
	AWSRegion       string

	// Pipeline
	RequestTimeout time.Duration
	MaxResults     int

	// HTTP server
	ServerAddr string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win.
func Load() Config {
	_ = godotenv.Load()

	provider := Provider(strings.ToLower(getEnv("ASTRONAME_LLM_PROVIDER", string(ProviderGemini))))

	return Config{
		LLMProvider: provider,
		LLMModel:    getEnv("ASTRONAME_LLM_MODEL", defaultModels[provider]),

		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),

		RequestTimeout: parseDuration(getEnv("ASTRONAME_REQUEST_TIMEOUT", "60s"), 60*time.Second),
		MaxResults:     clampResults(parseInt(getEnv("ASTRONAME_MAX_RESULTS", "15"), MaxResults)),

		ServerAddr: getEnv("ASTRONAME_SERVER_ADDR", ":8585"),

		LogFile:  getEnv("ASTRONAME_LOG_FILE", "/tmp/astroname.log"),
		LogLevel: parseLogLevel(getEnv("ASTRONAME_LOG_LEVEL", "INFO")),
	}
}

// Validate checks that the selected provider is known and has its credentials.
func (c Config) Validate() error {
	var errs []error

	switch c.LLMProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required for the gemini provider"))
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for the openai provider"))
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			errs = append(errs, errors.New("ANTHROPIC_API_KEY is required for the anthropic provider"))
		}
	case ProviderOllama, ProviderBedrock:
	default:
		errs = append(errs, fmt.Errorf("unsupported LLM provider: %s", c.LLMProvider))
	}

	if c.LLMModel == "" {
		errs = append(errs, errors.New("ASTRONAME_LLM_MODEL is required"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("ASTRONAME_REQUEST_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

func clampResults(n int) int {
	if n < 1 || n > MaxResults {
		return MaxResults
	}
	return n
}
