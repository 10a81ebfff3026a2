// Package tools provides MCP tool handlers and registration.
package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/raphaelgruber/astroname/internal/service"
)

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Names  *service.NameService
	Chat   *service.ChatService
	Logger *slog.Logger
	// Timeout bounds each pipeline call; zero means no bound.
	Timeout time.Duration
}

func (d *Dependencies) logger() *slog.Logger {
	if d == nil || d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func (d *Dependencies) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d == nil || d.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.Timeout)
}
