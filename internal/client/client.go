// Package client provides an HTTP and websocket client for the astroname server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/raphaelgruber/astroname/internal/api"
	"github.com/raphaelgruber/astroname/internal/metrics"
	"github.com/raphaelgruber/astroname/internal/models"
)

// DefaultServerURL is used when neither an explicit URL nor ASTRONAME_SERVER_URL is set.
const DefaultServerURL = "http://localhost:8585"

// Client talks to a running astroname server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new client.
// If baseURL is empty, uses ASTRONAME_SERVER_URL or defaults to localhost:8585.
// Timeout can be configured via ASTRONAME_CLIENT_TIMEOUT (default 2m).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("ASTRONAME_SERVER_URL")
	}
	if baseURL == "" {
		baseURL = DefaultServerURL
	}

	timeout := 2 * time.Minute
	if t := os.Getenv("ASTRONAME_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the server root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends a request and returns the response body of a 2xx reply.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, http.Header, error) {
	var body io.Reader
	if payload != nil {
		reqBody, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return nil, nil, fmt.Errorf("server error: %s - %s", resp.Status, apiErr.Message)
		}
		return nil, nil, fmt.Errorf("server error: %s - %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	return respBody, resp.Header, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, result any) error {
	body, _, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// =============================================================================
// PIPELINES
// =============================================================================

// GenerateNames asks the server for name suggestions.
func (c *Client) GenerateNames(ctx context.Context, prefs models.Preferences) ([]models.GeneratedName, error) {
	var result struct {
		Names []models.GeneratedName `json:"names"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/names", prefs, &result); err != nil {
		return nil, err
	}
	return result.Names, nil
}

// ChatReply is a chat answer with its rendered HTML.
type ChatReply struct {
	models.ChatResponse
	ContentHTML string `json:"contentHtml"`
}

// Chat sends one chat turn.
func (c *Client) Chat(ctx context.Context, message string, prefs models.Preferences) (*ChatReply, error) {
	var reply ChatReply
	req := models.ChatRequest{Message: message, Preferences: prefs}
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// =============================================================================
// EXPORT
// =============================================================================

// ExportCSV renders names as CSV on the server. It returns the file contents
// and the suggested file name.
func (c *Client) ExportCSV(ctx context.Context, names []models.GeneratedName, prefix string) ([]byte, string, error) {
	body, header, err := c.do(ctx, http.MethodPost, "/api/names/export", exportPayload(names, prefix))
	if err != nil {
		return nil, "", err
	}
	return body, fileNameFrom(header.Get("Content-Disposition")), nil
}

// ClipboardText renders names as plain text on the server.
func (c *Client) ClipboardText(ctx context.Context, names []models.GeneratedName) (string, error) {
	body, _, err := c.do(ctx, http.MethodPost, "/api/names/clipboard", exportPayload(names, ""))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func exportPayload(names []models.GeneratedName, prefix string) map[string]any {
	payload := map[string]any{"names": names}
	if prefix != "" {
		payload["prefix"] = prefix
	}
	return payload
}

func fileNameFrom(disposition string) string {
	const marker = "filename="
	i := strings.Index(disposition, marker)
	if i < 0 {
		return ""
	}
	return strings.Trim(disposition[i+len(marker):], `"`)
}

// =============================================================================
// STATS
// =============================================================================

// Stats returns the server's in-memory runtime statistics.
func (c *Client) Stats(ctx context.Context) (*metrics.Snapshot, error) {
	var snap metrics.Snapshot
	if err := c.doJSON(ctx, http.MethodGet, "/api/stats", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Healthy reports whether the server answers its health check.
func (c *Client) Healthy(ctx context.Context) bool {
	_, _, err := c.do(ctx, http.MethodGet, "/healthz", nil)
	return err == nil
}

// =============================================================================
// CHAT SESSION (websocket)
// =============================================================================

// ChatSession is an open websocket chat.
type ChatSession struct {
	conn     *websocket.Conn
	ID       string
	Greeting api.ChatFrame
}

// OpenChat connects to the chat websocket and reads the greeting frame.
func (c *Client) OpenChat(ctx context.Context) (*ChatSession, error) {
	u, err := url.Parse(c.baseURL + "/api/chat/ws")
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("websocket connect: %w", err)
	}

	var greeting api.ChatFrame
	if err := conn.ReadJSON(&greeting); err != nil {
		conn.Close()
		return nil, fmt.Errorf("read greeting: %w", err)
	}
	if greeting.Type != api.FrameGreeting {
		conn.Close()
		return nil, fmt.Errorf("expected greeting, got %s", greeting.Type)
	}

	return &ChatSession{conn: conn, ID: greeting.SessionID, Greeting: greeting}, nil
}

// Send asks one question and waits for the reply frame.
// Cancelling ctx closes the session.
func (s *ChatSession) Send(ctx context.Context, message string, prefs models.Preferences) (*api.ChatFrame, error) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.conn.Close()
		case <-done:
		}
	}()

	if err := s.conn.WriteJSON(models.ChatRequest{Message: message, Preferences: prefs}); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	var frame api.ChatFrame
	if err := s.conn.ReadJSON(&frame); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("read reply: %w", err)
	}
	if frame.Type == api.FrameError {
		return nil, fmt.Errorf("chat error: %s", frame.Error)
	}
	return &frame, nil
}

// Close ends the session with a normal closure.
func (s *ChatSession) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return s.conn.Close()
}
