package tools_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/astroname/internal/config"
	"github.com/raphaelgruber/astroname/internal/derive"
	"github.com/raphaelgruber/astroname/internal/llm"
	"github.com/raphaelgruber/astroname/internal/models"
	"github.com/raphaelgruber/astroname/internal/service"
	"github.com/raphaelgruber/astroname/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedGenerator struct {
	text string
	err  error
}

func (c cannedGenerator) Generate(context.Context, string) (string, error) { return c.text, c.err }
func (c cannedGenerator) Model() string                                    { return "canned" }

func connect(t *testing.T, gen llm.Generator) (context.Context, *mcp.ClientSession) {
	t.Helper()
	logger := config.QuietLogger(io.Discard)

	server := mcp.NewServer(&mcp.Implementation{Name: "test-astroname", Version: "0.0.1-test"}, nil)
	tools.RegisterAll(server, &tools.Dependencies{
		Names:   service.NewNameService(gen, logger, nil),
		Chat:    service.NewChatService(gen, logger, nil),
		Logger:  logger,
		Timeout: time.Second,
	})

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err, "client should connect successfully")
	t.Cleanup(func() { _ = session.Close() })
	return ctx, session
}

func call(t *testing.T, ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content should be TextContent")
	return text.Text, result.IsError
}

func TestToolsList(t *testing.T) {
	ctx, session := connect(t, cannedGenerator{})

	result, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"generate_names", "name_chat", "numerology", "astrology_sign", "sibling_match", "blend_parent_names",
	}, names)
}

func TestGenerateNamesTool(t *testing.T) {
	ctx, session := connect(t, cannedGenerator{err: llm.ErrTransport})

	t.Run("falls back to curated names", func(t *testing.T) {
		text, isErr := call(t, ctx, session, "generate_names", map[string]any{
			"fatherName": "Ravi", "motherName": "Priya", "gender": "boy", "birthDate": "2024-08-01",
		})
		require.False(t, isErr, text)

		var got tools.GenerateNamesResult
		require.NoError(t, json.Unmarshal([]byte(text), &got))
		require.Equal(t, 3, got.Count)
		assert.Equal(t, "Arjun", got.Names[0].Name)
		require.NotNil(t, got.Names[0].Astrology)
		assert.Equal(t, "Leo", *got.Names[0].Astrology)
	})

	t.Run("invalid gender is a tool error", func(t *testing.T) {
		text, isErr := call(t, ctx, session, "generate_names", map[string]any{
			"fatherName": "Ravi", "motherName": "Priya", "gender": "any",
		})
		assert.True(t, isErr)
		assert.Contains(t, text, "Use boy, girl or unisex")
	})
}

func TestNameChatTool(t *testing.T) {
	ctx, session := connect(t, cannedGenerator{text: "Consider Meera."})

	text, isErr := call(t, ctx, session, "name_chat", map[string]any{"message": "ideas?", "gender": "girl"})
	require.False(t, isErr)
	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	assert.Equal(t, "Consider Meera.", resp.Content)
	assert.Len(t, resp.Suggestions, 3)

	_, isErr = call(t, ctx, session, "name_chat", map[string]any{"message": " "})
	assert.True(t, isErr)
}

func TestDeriveTools(t *testing.T) {
	ctx, session := connect(t, cannedGenerator{})

	text, isErr := call(t, ctx, session, "numerology", map[string]any{"name": "Arjun"})
	require.False(t, isErr)
	assert.JSONEq(t, `{"name":"Arjun","numerology":1}`, text)

	_, isErr = call(t, ctx, session, "numerology", map[string]any{"name": "123"})
	assert.True(t, isErr)

	text, isErr = call(t, ctx, session, "astrology_sign", map[string]any{"birthDate": "2020-01-20"})
	require.False(t, isErr)
	assert.JSONEq(t, `{"birthDate":"2020-01-20","sign":"Aquarius"}`, text)

	_, isErr = call(t, ctx, session, "astrology_sign", map[string]any{"birthDate": "20/01/2020"})
	assert.True(t, isErr)

	text, isErr = call(t, ctx, session, "sibling_match", map[string]any{"name": "Anaya", "siblingNames": "Arav"})
	require.False(t, isErr)
	assert.JSONEq(t, `{"name":"Anaya","siblingMatch":true}`, text)

	text, isErr = call(t, ctx, session, "blend_parent_names", map[string]any{"fatherName": "Ravi", "motherName": "Priya"})
	require.False(t, isErr)
	var blend tools.BlendResult
	require.NoError(t, json.Unmarshal([]byte(text), &blend))
	assert.Equal(t, derive.BlendAll("Ravi", "Priya"), blend.Candidates)

	text, isErr = call(t, ctx, session, "blend_parent_names", map[string]any{"fatherName": "Al", "motherName": "Bo", "searchType": "syllable-blend"})
	require.False(t, isErr)
	assert.JSONEq(t, `{"candidates":[],"count":0}`, text)
}
