package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/raphaelgruber/astroname/internal/llm"
	"github.com/raphaelgruber/astroname/internal/metrics"
	"github.com/raphaelgruber/astroname/internal/models"
)

// Apology is the chat reply used whenever the generator cannot answer.
const Apology = "I'm sorry, I'm having trouble connecting right now. Please try asking your question again in a moment."

var (
	followUpSuggestions = []string{
		"Tell me more about the origin of these names",
		"Suggest similar names with different meanings",
		"What are some unique variations?",
	}
	genericSuggestions = []string{
		"Give me traditional names for boys",
		"Suggest modern names for girls",
		"What are some unisex name options?",
	}
)

// ChatService answers free-form naming questions.
type ChatService struct {
	pipeline
}

// NewChatService creates a chat service. logger and collector may be nil.
func NewChatService(gen llm.Generator, logger *slog.Logger, collector *metrics.Collector) *ChatService {
	return &ChatService{pipeline: newPipeline(gen, logger, collector)}
}

// Chat answers message in the context of prefs. It never fails: any
// generator failure yields the apology with generic suggestions.
func (s *ChatService) Chat(ctx context.Context, message string, prefs models.Preferences) models.ChatResponse {
	start := time.Now()
	failed := false

	resp := Then(s.complete(ctx, buildChatPrompt(message, prefs)), func(text string) Result[models.ChatResponse] {
		return Ok(models.ChatResponse{Content: text, Suggestions: clone(followUpSuggestions)})
	}).OrElse(func(err error) models.ChatResponse {
		failed = true
		s.degraded(metrics.OpChat, err)
		return models.ChatResponse{Content: Apology, Suggestions: clone(genericSuggestions)}
	})

	if !failed {
		s.metrics.RecordOutcome(metrics.OpChat, metrics.OutcomeOK)
	}
	s.metrics.RecordTiming(metrics.OpChat, time.Since(start), failed)
	return resp
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}

// Greeting opens every interactive chat session.
const Greeting = "Hello! I'm your AI name assistant for AstroName AI. I can help you explore name ideas, explain meanings, suggest alternatives, or discuss cultural significance. What would you like to know about baby names?"

var greetingSuggestions = []string{
	"Give me modern girl names that start with 'A'",
	"Suggest names that blend our parent names",
	"Names that match with my daughter Anika",
	"What are some unique unisex names?",
}

// Welcome returns the opening message of a chat session.
func Welcome() models.ChatResponse {
	return models.ChatResponse{Content: Greeting, Suggestions: clone(greetingSuggestions)}
}
