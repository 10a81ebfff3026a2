package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ASTRONAME_LLM_PROVIDER", "")
	t.Setenv("ASTRONAME_LLM_MODEL", "")
	t.Setenv("ASTRONAME_REQUEST_TIMEOUT", "")
	t.Setenv("ASTRONAME_MAX_RESULTS", "")
	t.Setenv("ASTRONAME_LOG_LEVEL", "")

	cfg := Load()
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLMModel)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, MaxResults, cfg.MaxResults)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ASTRONAME_LLM_PROVIDER", "Ollama")
	t.Setenv("ASTRONAME_LLM_MODEL", "")
	t.Setenv("ASTRONAME_REQUEST_TIMEOUT", "5s")
	t.Setenv("ASTRONAME_MAX_RESULTS", "8")
	t.Setenv("ASTRONAME_LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, ProviderOllama, cfg.LLMProvider)
	assert.Equal(t, "llama3.2", cfg.LLMModel)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 8, cfg.MaxResults)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestClampResults(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 15},
		{-3, 15},
		{1, 1},
		{15, 15},
		{40, 15},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clampResults(tt.in), "clampResults(%d)", tt.in)
	}
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 3*time.Second, parseDuration("garbage", 3*time.Second))
	assert.Equal(t, 3*time.Second, parseDuration("-1s", 3*time.Second))
	assert.Equal(t, 7, parseInt(" 7 ", 1))
	assert.Equal(t, 1, parseInt("seven", 1))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warning"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"gemini with key", Config{LLMProvider: ProviderGemini, LLMModel: "m", GeminiAPIKey: "k", RequestTimeout: time.Second}, ""},
		{"gemini without key", Config{LLMProvider: ProviderGemini, LLMModel: "m", RequestTimeout: time.Second}, "GEMINI_API_KEY"},
		{"openai without key", Config{LLMProvider: ProviderOpenAI, LLMModel: "m", RequestTimeout: time.Second}, "OPENAI_API_KEY"},
		{"anthropic without key", Config{LLMProvider: ProviderAnthropic, LLMModel: "m", RequestTimeout: time.Second}, "ANTHROPIC_API_KEY"},
		{"ollama needs no key", Config{LLMProvider: ProviderOllama, LLMModel: "m", RequestTimeout: time.Second}, ""},
		{"unknown provider", Config{LLMProvider: "palm", LLMModel: "m", RequestTimeout: time.Second}, "unsupported LLM provider"},
		{"missing model", Config{LLMProvider: ProviderBedrock, RequestTimeout: time.Second}, "ASTRONAME_LLM_MODEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("fallback used", "stage", "content")

	assert.Contains(t, stderr.String(), "fallback used")
	assert.NotContains(t, stderr.String(), "hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(file.String())), &entry))
	assert.Equal(t, "fallback used", entry["msg"])
	assert.Equal(t, "content", entry["stage"])
	assert.Equal(t, "astroname", entry["app"])
}
