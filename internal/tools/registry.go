package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_names",
		Description: "Generate baby name suggestions from parent names, gender and cultural preferences, with numerology, zodiac and sibling compatibility when birth date or sibling names are given",
	}, NewGenerateNamesHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "name_chat",
		Description: "Ask a free-form question about baby names, meanings or origins",
	}, NewNameChatHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "numerology",
		Description: "Compute the single-digit numerology number of a name",
	}, NewNumerologyHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "astrology_sign",
		Description: "Return the Western zodiac sign for a birth date (YYYY-MM-DD)",
	}, NewAstrologyHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sibling_match",
		Description: "Check whether a name pairs well with existing sibling names",
	}, NewSiblingMatchHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "blend_parent_names",
		Description: "Synthesize candidate names by blending the father's and mother's names",
	}, NewBlendHandler(deps))
}
