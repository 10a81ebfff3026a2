package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/raphaelgruber/astroname/internal/api"
	"github.com/raphaelgruber/astroname/internal/config"
	"github.com/raphaelgruber/astroname/internal/llm"
	"github.com/raphaelgruber/astroname/internal/metrics"
	"github.com/raphaelgruber/astroname/internal/models"
	"github.com/raphaelgruber/astroname/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type replyGenerator string

func (r replyGenerator) Generate(context.Context, string) (string, error) {
	if r == "" {
		return "", llm.ErrTransport
	}
	return string(r), nil
}
func (r replyGenerator) Model() string { return "reply" }

func newClient(t *testing.T, gen llm.Generator) *Client {
	t.Helper()
	logger := config.QuietLogger(io.Discard)
	collector := metrics.NewCollector()
	srv := api.New(api.Options{
		Names:   service.NewNameService(gen, logger, collector),
		Chat:    service.NewChatService(gen, logger, collector),
		Metrics: collector,
		Logger:  logger,
		Now:     func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) },
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return New(ts.URL + "/")
}

func TestNewDefaults(t *testing.T) {
	t.Setenv("ASTRONAME_SERVER_URL", "")
	t.Setenv("ASTRONAME_CLIENT_TIMEOUT", "5s")
	c := New("")
	assert.Equal(t, DefaultServerURL, c.BaseURL())
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)

	t.Setenv("ASTRONAME_SERVER_URL", "http://names.local:9000")
	assert.Equal(t, "http://names.local:9000", New("").BaseURL())
}

func TestGenerateAndExport(t *testing.T) {
	c := newClient(t, replyGenerator(""))
	ctx := context.Background()

	require.True(t, c.Healthy(ctx))

	names, err := c.GenerateNames(ctx, models.Preferences{FatherName: "Ravi", MotherName: "Priya", Gender: "girl"})
	require.NoError(t, err)
	require.Len(t, names, 3)
	assert.Equal(t, "Aaradhya", names[0].Name)

	data, fileName, err := c.ExportCSV(ctx, names, "")
	require.NoError(t, err)
	assert.Equal(t, "baby-names-2025-06-01.csv", fileName)
	assert.Contains(t, string(data), `"Aaradhya","Worshipped, blessed"`)

	text, err := c.ClipboardText(ctx, names[:1])
	require.NoError(t, err)
	assert.Equal(t, "Aaradhya - Worshipped, blessed\nOrigin: Sanskrit | Gender: girl\nPronunciation: aa-RAADH-ya", text)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Outcomes[metrics.OpNames][metrics.OutcomeFallback])
}

func TestServerErrorsSurface(t *testing.T) {
	c := newClient(t, replyGenerator(""))

	_, err := c.GenerateNames(context.Background(), models.Preferences{FatherName: "Ravi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400 Bad Request")
	assert.Contains(t, err.Error(), "motherName, gender")
}

func TestChat(t *testing.T) {
	c := newClient(t, replyGenerator("Try **Ira**."))
	ctx := context.Background()

	reply, err := c.Chat(ctx, "short names?", models.Preferences{Gender: "girl"})
	require.NoError(t, err)
	assert.Equal(t, "Try **Ira**.", reply.Content)
	assert.Contains(t, reply.ContentHTML, "<strong>Ira</strong>")

	session, err := c.OpenChat(ctx)
	require.NoError(t, err)
	defer session.Close()
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, service.Greeting, session.Greeting.Content)

	frame, err := session.Send(ctx, "more?", models.Preferences{})
	require.NoError(t, err)
	assert.Equal(t, "Try **Ira**.", frame.Content)
	assert.Equal(t, session.ID, frame.SessionID)

	_, err = session.Send(ctx, "", models.Preferences{})
	assert.ErrorContains(t, err, "message is required")
}

func TestUnreachableServer(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := New(url)
	assert.False(t, c.Healthy(context.Background()))
	_, err := c.OpenChat(context.Background())
	assert.ErrorContains(t, err, "websocket connect")
}
