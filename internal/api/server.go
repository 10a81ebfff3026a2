// Package api exposes the name and chat pipelines over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/raphaelgruber/astroname/internal/metrics"
	"github.com/raphaelgruber/astroname/internal/service"
	"github.com/yuin/goldmark"
)

// maxRequestBody bounds every JSON request body.
const maxRequestBody = 64 * 1024

// Options configures a Server.
type Options struct {
	Names   *service.NameService
	Chat    *service.ChatService
	Metrics *metrics.Collector
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer       prometheus.Gatherer
	Logger         *slog.Logger
	RequestTimeout time.Duration
	// SlowRequest is the latency above which requests are logged at WARN.
	SlowRequest time.Duration
	Now         func() time.Time
}

// Server routes HTTP requests to the pipelines.
type Server struct {
	names    *service.NameService
	chat     *service.ChatService
	metrics  *metrics.Collector
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	timeout  time.Duration
	slow     time.Duration
	now      func() time.Time

	markdown goldmark.Markdown
	policy   *bluemonday.Policy
	upgrader websocket.Upgrader
}

// New creates a server from opts.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	slow := opts.SlowRequest
	if slow <= 0 {
		slow = defaultSlowRequest
	}

	return &Server{
		names:    opts.Names,
		chat:     opts.Chat,
		metrics:  opts.Metrics,
		gatherer: opts.Gatherer,
		logger:   logger,
		timeout:  opts.RequestTimeout,
		slow:     slow,
		now:      now,
		markdown: goldmark.New(),
		policy:   newReplyPolicy(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger, s.slow))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", s.handleStats)
		r.Post("/names", s.handleNames)
		r.Post("/names/export", s.handleExport)
		r.Post("/names/clipboard", s.handleClipboard)
		r.Post("/chat", s.handleChat)
		r.Get("/chat/ws", s.handleChatWS)
	})

	return r
}

// pipelineContext bounds one pipeline call by the configured timeout.
func (s *Server) pipelineContext(parent context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, s.timeout)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

// apiError is the JSON error envelope.
type apiError struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, apiError{
		Error:     code,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a single bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return errInvalidJSON
	}
	return nil
}

var (
	errBodyTooLarge = errors.New("request body exceeds allowed size")
	errEmptyBody    = errors.New("request body is required")
	errInvalidJSON  = errors.New("invalid JSON payload")
)

func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errBodyTooLarge) {
		writeError(w, r, http.StatusRequestEntityTooLarge, "payload_too_large", err.Error())
		return
	}
	writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
}
