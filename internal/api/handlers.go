package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/raphaelgruber/astroname/internal/export"
	"github.com/raphaelgruber/astroname/internal/models"
)

type namesResponse struct {
	Names []models.GeneratedName `json:"names"`
}

// exportRequest carries an already generated list to render.
type exportRequest struct {
	Names  []models.GeneratedName `json:"names"`
	Prefix string                 `json:"prefix,omitempty"`
}

type chatResponse struct {
	models.ChatResponse
	ContentHTML string `json:"contentHtml"`
}

func (s *Server) handleNames(w http.ResponseWriter, r *http.Request) {
	var prefs models.Preferences
	if err := decodeJSON(w, r, &prefs); err != nil {
		writeDecodeError(w, r, err)
		return
	}
	if err := prefs.ValidateForGeneration(); err != nil {
		code := "invalid_preferences"
		if errors.Is(err, models.ErrMissingPreferences) {
			code = "missing_preferences"
		}
		writeError(w, r, http.StatusBadRequest, code, err.Error())
		return
	}

	ctx, cancel := s.pipelineContext(r.Context())
	defer cancel()

	writeJSON(w, http.StatusOK, namesResponse{Names: s.names.Generate(ctx, prefs)})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "message is required")
		return
	}

	ctx, cancel := s.pipelineContext(r.Context())
	defer cancel()

	writeJSON(w, http.StatusOK, s.withHTML(s.chat.Chat(ctx, req.Message, req.Preferences)))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeExport(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, req.Names); err != nil {
		s.logger.Error("render csv", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal", "failed to render CSV")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(req.Prefix, s.now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleClipboard(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeExport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(export.ClipboardText(req.Names)))
}

func (s *Server) decodeExport(w http.ResponseWriter, r *http.Request) (exportRequest, bool) {
	var req exportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return req, false
	}
	if len(req.Names) == 0 {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "names are required")
		return req, false
	}
	return req, true
}

// withHTML attaches a sanitized HTML rendering of the markdown reply.
func (s *Server) withHTML(resp models.ChatResponse) chatResponse {
	html, err := s.renderMarkdown(resp.Content)
	if err != nil {
		s.logger.Warn("render chat markdown", "error", err)
	}
	return chatResponse{ChatResponse: resp, ContentHTML: html}
}
