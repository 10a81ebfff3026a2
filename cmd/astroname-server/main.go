// Package main provides the HTTP server for AstroName.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/raphaelgruber/astroname/internal/api"
	"github.com/raphaelgruber/astroname/internal/config"
	"github.com/raphaelgruber/astroname/internal/llm"
	"github.com/raphaelgruber/astroname/internal/metrics"
	"github.com/raphaelgruber/astroname/internal/service"
)

const version = "0.1.0"

func main() {
	addr := flag.String("addr", "", "listen address (overrides ASTRONAME_SERVER_ADDR)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *addr != "" {
		cfg.ServerAddr = *addr
	}

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()
	slog.SetDefault(logger)

	logger.Info("starting astroname-server",
		"version", version,
		"addr", cfg.ServerAddr,
		"provider", cfg.LLMProvider,
		"model", cfg.LLMModel,
	)

	// A misconfigured generator still serves: every request degrades to fallback names.
	collector := metrics.NewCollector()
	var gen llm.Generator
	if err := cfg.Validate(); err != nil {
		logger.Warn("generator disabled, serving fallback content only", "error", err)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		g, err := llm.New(ctx, cfg)
		cancel()
		if err != nil {
			logger.Error("failed to create generator", "error", err)
			os.Exit(1)
		}
		gen = llm.WithMetrics(g, collector)
		logger.Info("generator initialized", "model", g.Model())
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := collector.Register(registry); err != nil {
		logger.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	srv := api.New(api.Options{
		Names:          service.NewNameService(gen, logger, collector).WithMaxResults(cfg.MaxResults),
		Chat:           service.NewChatService(gen, logger, collector),
		Metrics:        collector,
		Gatherer:       registry,
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
	})

	httpServer := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second, // Long for LLM responses
		IdleTimeout:       120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("API available", "addr", cfg.ServerAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
