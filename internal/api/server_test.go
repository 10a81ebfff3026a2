package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/raphaelgruber/astroname/internal/config"
	"github.com/raphaelgruber/astroname/internal/llm"
	"github.com/raphaelgruber/astroname/internal/metrics"
	"github.com/raphaelgruber/astroname/internal/models"
	"github.com/raphaelgruber/astroname/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) Generate(context.Context, string) (string, error) { return s.text, s.err }
func (s stubGenerator) Model() string                                    { return "stub" }

func newTestServer(t *testing.T, gen llm.Generator) (*Server, *metrics.Collector, *prometheus.Registry) {
	t.Helper()
	logger := config.QuietLogger(io.Discard)
	collector := metrics.NewCollector()
	reg := prometheus.NewRegistry()
	require.NoError(t, collector.Register(reg))

	srv := New(Options{
		Names:          service.NewNameService(gen, logger, collector),
		Chat:           service.NewChatService(gen, logger, collector),
		Metrics:        collector,
		Gatherer:       reg,
		Logger:         logger,
		RequestTimeout: time.Second,
		Now:            func() time.Time { return time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC) },
	})
	return srv, collector, reg
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthzAndRequestID(t *testing.T) {
	srv, _, _ := newTestServer(t, stubGenerator{})
	h := srv.Handler()

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}

func TestNamesEndpoint(t *testing.T) {
	srv, collector, _ := newTestServer(t, stubGenerator{err: errors.Join(llm.ErrTransport, errors.New("offline"))})
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/names", `{"fatherName":"Ravi","motherName":"Priya","gender":"girl"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp namesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Names, 3)
	for _, n := range resp.Names {
		assert.Equal(t, models.GenderGirl, n.Gender)
	}
	assert.Equal(t, int64(1), collector.Snapshot().Outcomes[metrics.OpNames][metrics.OutcomeFallback])
}

func TestNamesEndpointRejectsBadInput(t *testing.T) {
	srv, _, _ := newTestServer(t, stubGenerator{})
	h := srv.Handler()

	tests := []struct {
		name string
		body string
		code string
	}{
		{"empty body", "", "invalid_request"},
		{"invalid json", "{", "invalid_request"},
		{"missing fields", `{"fatherName":"Ravi"}`, "missing_preferences"},
		{"bad gender", `{"fatherName":"Ravi","motherName":"Priya","gender":"cat"}`, "invalid_preferences"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/names", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body apiError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error)
			assert.NotEmpty(t, body.RequestID)
		})
	}

	rec := do(t, h, http.MethodPost, "/api/names", `{"fatherName":"`+strings.Repeat("x", maxRequestBody)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestChatEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t, stubGenerator{text: "Try **Aarav**.<script>alert(1)</script>"})
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/chat", `{"message":"ideas?","preferences":{"gender":"boy"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Try **Aarav**.<script>alert(1)</script>", resp.Content)
	assert.Contains(t, resp.ContentHTML, "<strong>Aarav</strong>")
	assert.NotContains(t, resp.ContentHTML, "<script")
	assert.Len(t, resp.Suggestions, 3)

	rec = do(t, h, http.MethodPost, "/api/chat", `{"message":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatEndpointApology(t *testing.T) {
	srv, _, _ := newTestServer(t, stubGenerator{err: llm.ErrStatus})
	rec := do(t, srv.Handler(), http.MethodPost, "/api/chat", `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, service.Apology, resp.Content)
}

func TestExportEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t, stubGenerator{})
	h := srv.Handler()
	body := `{"prefix":"shortlist","names":[{"name":"Arjun","meaning":"Bright","origin":"Sanskrit","gender":"boy","pronunciation":"AR-jun","popularity":85}]}`

	rec := do(t, h, http.MethodPost, "/api/names/export", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="shortlist-2025-01-02.csv"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Name,Meaning,"))
	assert.Contains(t, rec.Body.String(), `"Arjun","Bright","Sanskrit","boy","AR-jun",85,"","",,"",No`)

	rec = do(t, h, http.MethodPost, "/api/names/clipboard", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Arjun - Bright\nOrigin: Sanskrit | Gender: boy\nPronunciation: AR-jun", rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/names/export", `{"names":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsAndMetrics(t *testing.T) {
	srv, _, _ := newTestServer(t, stubGenerator{text: `[{"name":"Kabir","gender":"boy"}]`})
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/names", `{"fatherName":"Ravi","motherName":"Priya","gender":"boy"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var snap metrics.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.NotNil(t, snap.Names)
	assert.Equal(t, int64(1), snap.Names.Count)
	assert.Equal(t, int64(1), snap.Outcomes[metrics.OpNames][metrics.OutcomeOK])

	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `astroname_pipeline_requests_total{outcome="ok",pipeline="names"} 1`)
}

func TestChatWebsocket(t *testing.T) {
	srv, _, _ := newTestServer(t, stubGenerator{text: "Consider *Mira*."})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var greeting ChatFrame
	require.NoError(t, conn.ReadJSON(&greeting))
	assert.Equal(t, FrameGreeting, greeting.Type)
	assert.Equal(t, service.Greeting, greeting.Content)
	assert.Len(t, greeting.Suggestions, 4)
	require.NotEmpty(t, greeting.SessionID)

	require.NoError(t, conn.WriteJSON(models.ChatRequest{Message: "girl names?"}))
	var reply ChatFrame
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, FrameReply, reply.Type)
	assert.Equal(t, greeting.SessionID, reply.SessionID)
	assert.Equal(t, "Consider *Mira*.", reply.Content)
	assert.Contains(t, reply.ContentHTML, "<em>Mira</em>")

	require.NoError(t, conn.WriteJSON(models.ChatRequest{}))
	var errFrame ChatFrame
	require.NoError(t, conn.ReadJSON(&errFrame))
	assert.Equal(t, FrameError, errFrame.Type)
	assert.Equal(t, "message is required", errFrame.Error)
}

func TestChatWebsocketRejectsOversizedFrame(t *testing.T) {
	srv, _, _ := newTestServer(t, stubGenerator{text: "ok"})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var greeting ChatFrame
	require.NoError(t, conn.ReadJSON(&greeting))

	require.NoError(t, conn.WriteJSON(models.ChatRequest{Message: strings.Repeat("a", maxRequestBody+1)}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var reply ChatFrame
	err = conn.ReadJSON(&reply)
	require.Error(t, err, "oversized frame must end the session")
	assert.Empty(t, reply.Type)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
