// Package main provides the entry point for the astroname MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raphaelgruber/astroname/internal/config"
	"github.com/raphaelgruber/astroname/internal/llm"
	"github.com/raphaelgruber/astroname/internal/server"
	"github.com/raphaelgruber/astroname/internal/service"
	"github.com/raphaelgruber/astroname/internal/tools"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("astroname-mcp starting",
		"version", version,
		"provider", cfg.LLMProvider,
		"model", cfg.LLMModel,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// The derive tools work without a generator, so a bad config only degrades generation.
	var gen llm.Generator
	if err := cfg.Validate(); err != nil {
		logger.Warn("generator disabled, generation tools return fallback content", "error", err)
	} else {
		g, err := llm.New(ctx, cfg)
		if err != nil {
			logger.Error("failed to create generator", "error", err)
			os.Exit(1)
		}
		gen = g
		logger.Info("generator initialized", "model", g.Model())
	}

	// Create and setup server
	srv := server.New(version, logger)
	srv.Setup()

	deps := &tools.Dependencies{
		Names:   service.NewNameService(gen, logger, nil).WithMaxResults(cfg.MaxResults),
		Chat:    service.NewChatService(gen, logger, nil),
		Logger:  logger,
		Timeout: cfg.RequestTimeout,
	}
	tools.RegisterAll(srv.MCPServer(), deps)

	logger.Info("server ready, awaiting connections")

	// Run server (blocks until disconnect or context cancelled)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
