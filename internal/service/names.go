// Package service implements the name generation and chat pipelines on top of
// a text generator. Neither pipeline returns an error: every failure degrades
// to curated fallback content.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/raphaelgruber/astroname/internal/config"
	"github.com/raphaelgruber/astroname/internal/derive"
	"github.com/raphaelgruber/astroname/internal/llm"
	"github.com/raphaelgruber/astroname/internal/metrics"
	"github.com/raphaelgruber/astroname/internal/models"
)

// maxBlendedNames caps how many blend candidates are promoted into the result.
const maxBlendedNames = 3

const (
	blendMeaning = "Creative blend of parent names"
	blendOrigin  = "Parent blend"
	blendScore   = 30
)

// pipeline holds what both services share: the generator and its observers.
type pipeline struct {
	gen     llm.Generator
	logger  *slog.Logger
	metrics *metrics.Collector
}

func newPipeline(gen llm.Generator, logger *slog.Logger, collector *metrics.Collector) pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return pipeline{gen: gen, logger: logger, metrics: collector}
}

// complete performs the single outbound call.
func (p pipeline) complete(ctx context.Context, prompt string) Result[string] {
	if p.gen == nil {
		return Err[string](fmt.Errorf("%w: no generator configured", llm.ErrTransport))
	}
	text, err := p.gen.Generate(ctx, prompt)
	if err != nil {
		return Err[string](err)
	}
	return Ok(text)
}

// degraded logs and counts one fallback substitution.
func (p pipeline) degraded(op string, err error) {
	p.logger.Warn("pipeline degraded to fallback",
		"pipeline", op,
		"stage", Stage(err),
		"fatal", llm.IsFatal(err),
		"error", err,
	)
	p.metrics.RecordOutcome(op, metrics.OutcomeFallback)
}

// NameService generates name suggestions.
type NameService struct {
	pipeline
	maxResults int
}

// NewNameService creates a name service. logger and collector may be nil.
func NewNameService(gen llm.Generator, logger *slog.Logger, collector *metrics.Collector) *NameService {
	return &NameService{
		pipeline:   newPipeline(gen, logger, collector),
		maxResults: config.MaxResults,
	}
}

// WithMaxResults lowers the result cap. Values outside 1..15 leave the cap at 15.
func (s *NameService) WithMaxResults(n int) *NameService {
	if n >= 1 && n <= config.MaxResults {
		s.maxResults = n
	} else {
		s.maxResults = config.MaxResults
	}
	return s
}

// Generate returns up to the configured number of names for prefs. It never
// fails: unreachable or unusable generator output yields the fallback table.
// Required fields are the caller's responsibility (see Preferences.ValidateForGeneration).
func (s *NameService) Generate(ctx context.Context, prefs models.Preferences) []models.GeneratedName {
	start := time.Now()
	failed := false

	assembled := Then(s.complete(ctx, buildNamesPrompt(prefs)), func(text string) Result[[]models.GeneratedName] {
		base := parseNames(text).OrElse(func(err error) []models.GeneratedName {
			failed = true
			s.degraded(metrics.OpNames, err)
			return fallbackNames(prefs)
		})
		return Ok(append(blendedNames(prefs), decorate(base, prefs)...))
	})

	names := assembled.OrElse(func(err error) []models.GeneratedName {
		failed = true
		s.degraded(metrics.OpNames, err)
		return decorate(fallbackNames(prefs), prefs)
	})

	if !failed {
		s.metrics.RecordOutcome(metrics.OpNames, metrics.OutcomeOK)
	}
	s.metrics.RecordTiming(metrics.OpNames, time.Since(start), failed)

	if len(names) > s.maxResults {
		names = names[:s.maxResults]
	}
	s.logger.Debug("names generated", "count", len(names), "degraded", failed, "duration", time.Since(start))
	return names
}

// blendedNames promotes the first blend candidates to full records.
func blendedNames(p models.Preferences) []models.GeneratedName {
	candidates := derive.BlendNames(p.FatherName, p.MotherName, p.NameRules, p.SearchType)
	if len(candidates) > maxBlendedNames {
		candidates = candidates[:maxBlendedNames]
	}

	out := make([]models.GeneratedName, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, models.GeneratedName{
			Name:             capitalize(c.Name),
			Meaning:          blendMeaning,
			Origin:           blendOrigin,
			Gender:           p.Gender,
			Pronunciation:    strings.ToLower(c.Name),
			Popularity:       blendScore,
			Derivation:       c.Explanation,
			ParentConnection: fmt.Sprintf("Direct combination of %s and %s", p.FatherName, p.MotherName),
		})
	}
	return decorate(out, p)
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
