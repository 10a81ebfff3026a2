package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/raphaelgruber/astroname/internal/models"
	"github.com/raphaelgruber/astroname/internal/service"
)

// Websocket frame types.
const (
	FrameGreeting = "greeting"
	FrameReply    = "reply"
	FrameError    = "error"
)

const wsWriteTimeout = 10 * time.Second

// ChatFrame is one server-to-client websocket message.
type ChatFrame struct {
	Type        string   `json:"type"`
	SessionID   string   `json:"sessionId"`
	Content     string   `json:"content,omitempty"`
	ContentHTML string   `json:"contentHtml,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// handleChatWS runs one chat session: a greeting, then one reply frame per
// inbound ChatRequest until the client disconnects.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxRequestBody)

	session := uuid.NewString()
	logger := s.logger.With("session", session)
	logger.Debug("chat session opened")

	welcome := s.withHTML(service.Welcome())
	if err := s.writeFrame(conn, ChatFrame{
		Type:        FrameGreeting,
		SessionID:   session,
		Content:     welcome.Content,
		ContentHTML: welcome.ContentHTML,
		Suggestions: welcome.Suggestions,
	}); err != nil {
		logger.Warn("write greeting", "error", err)
		return
	}

	for {
		var req models.ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("chat session read failed", "error", err)
			}
			logger.Debug("chat session closed")
			return
		}

		frame := ChatFrame{SessionID: session}
		if strings.TrimSpace(req.Message) == "" {
			frame.Type = FrameError
			frame.Error = "message is required"
		} else {
			ctx, cancel := s.pipelineContext(r.Context())
			reply := s.withHTML(s.chat.Chat(ctx, req.Message, req.Preferences))
			cancel()

			frame.Type = FrameReply
			frame.Content = reply.Content
			frame.ContentHTML = reply.ContentHTML
			frame.Suggestions = reply.Suggestions
		}

		if err := s.writeFrame(conn, frame); err != nil {
			logger.Warn("write reply", "error", err)
			return
		}
	}
}

func (s *Server) writeFrame(conn *websocket.Conn, frame ChatFrame) error {
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(frame)
}
