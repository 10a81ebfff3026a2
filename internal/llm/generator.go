// Package llm provides text generation backends: a Gemini REST client and
// langchaingo-backed models for the other providers.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/raphaelgruber/astroname/internal/config"
	"github.com/raphaelgruber/astroname/internal/metrics"
)

// Generator turns a single text prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// New creates the generator selected by configuration.
func New(ctx context.Context, cfg config.Config) (Generator, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return NewGeminiClient(cfg.GeminiAPIKey, cfg.LLMModel, WithBaseURL(cfg.GeminiBaseURL))
	case config.ProviderOllama, config.ProviderOpenAI, config.ProviderAnthropic, config.ProviderBedrock:
		return NewModel(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}

// instrumented records the latency and failures of every Generate call.
type instrumented struct {
	Generator
	collector *metrics.Collector
}

// WithMetrics wraps g so each call is timed into collector.
func WithMetrics(g Generator, collector *metrics.Collector) Generator {
	if collector == nil {
		return g
	}
	return &instrumented{Generator: g, collector: collector}
}

func (i *instrumented) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := i.Generator.Generate(ctx, prompt)
	i.collector.RecordTiming(metrics.OpLLMGenerate, time.Since(start), err != nil)
	return text, err
}
