package tools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/astroname/internal/models"
)

// NameChatInput defines the input schema for the name_chat tool.
type NameChatInput struct {
	Message    string `json:"message" jsonschema:"The question to ask"`
	FatherName string `json:"fatherName,omitempty" jsonschema:"Father's first name for context"`
	MotherName string `json:"motherName,omitempty" jsonschema:"Mother's first name for context"`
	Gender     string `json:"gender,omitempty" jsonschema:"boy, girl or unisex"`
	Religion   string `json:"religion,omitempty" jsonschema:"Religious tradition"`
	Culture    string `json:"culture,omitempty" jsonschema:"Culture or language"`
}

// NewNameChatHandler creates the name_chat tool handler.
func NewNameChatHandler(deps *Dependencies) mcp.ToolHandlerFor[NameChatInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input NameChatInput) (
		*mcp.CallToolResult, any, error,
	) {
		if strings.TrimSpace(input.Message) == "" {
			return ErrorResult("Message cannot be empty", "Ask a question about baby names"), nil, nil
		}

		ctx, cancel := deps.withTimeout(ctx)
		defer cancel()

		resp := deps.Chat.Chat(ctx, input.Message, models.Preferences{
			FatherName: input.FatherName,
			MotherName: input.MotherName,
			Gender:     input.Gender,
			Religion:   input.Religion,
			Culture:    input.Culture,
		})
		return JSONResult(resp), nil, nil
	}
}
