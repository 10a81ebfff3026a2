package tools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/astroname/internal/derive"
)

// NumerologyInput defines the input schema for the numerology tool.
type NumerologyInput struct {
	Name string `json:"name" jsonschema:"The name to evaluate"`
}

// NewNumerologyHandler creates the numerology tool handler.
func NewNumerologyHandler(deps *Dependencies) mcp.ToolHandlerFor[NumerologyInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input NumerologyInput) (
		*mcp.CallToolResult, any, error,
	) {
		n := derive.Numerology(input.Name)
		if n == 0 {
			return ErrorResult("Name has no letters", "Provide a name using A-Z letters"), nil, nil
		}
		return JSONResult(map[string]any{"name": input.Name, "numerology": n}), nil, nil
	}
}

// AstrologyInput defines the input schema for the astrology_sign tool.
type AstrologyInput struct {
	BirthDate string `json:"birthDate" jsonschema:"Birth date as YYYY-MM-DD"`
}

// NewAstrologyHandler creates the astrology_sign tool handler.
func NewAstrologyHandler(deps *Dependencies) mcp.ToolHandlerFor[AstrologyInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AstrologyInput) (
		*mcp.CallToolResult, any, error,
	) {
		sign := derive.AstrologySign(input.BirthDate)
		if sign == "" {
			return ErrorResult("Invalid birth date "+input.BirthDate, "Use the YYYY-MM-DD format"), nil, nil
		}
		return JSONResult(map[string]any{"birthDate": input.BirthDate, "sign": sign}), nil, nil
	}
}

// SiblingMatchInput defines the input schema for the sibling_match tool.
type SiblingMatchInput struct {
	Name         string `json:"name" jsonschema:"Candidate name"`
	SiblingNames string `json:"siblingNames" jsonschema:"Comma-separated names of existing siblings"`
}

// NewSiblingMatchHandler creates the sibling_match tool handler.
func NewSiblingMatchHandler(deps *Dependencies) mcp.ToolHandlerFor[SiblingMatchInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SiblingMatchInput) (
		*mcp.CallToolResult, any, error,
	) {
		if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.SiblingNames) == "" {
			return ErrorResult("Name and siblingNames are required", ""), nil, nil
		}
		match := derive.SiblingCompatible(input.Name, input.SiblingNames)
		return JSONResult(map[string]any{"name": input.Name, "siblingMatch": match}), nil, nil
	}
}

// BlendInput defines the input schema for the blend_parent_names tool.
type BlendInput struct {
	FatherName string   `json:"fatherName" jsonschema:"Father's first name"`
	MotherName string   `json:"motherName" jsonschema:"Mother's first name"`
	SearchType string   `json:"searchType,omitempty" jsonschema:"first-letters, syllable-blend or vowel-consonant; empty runs all three"`
	NameRules  []string `json:"nameRules,omitempty" jsonschema:"Naming rules that may enable extra strategies"`
}

// BlendResult is the JSON payload of blend_parent_names.
type BlendResult struct {
	Candidates []derive.BlendCandidate `json:"candidates"`
	Count      int                     `json:"count"`
}

// NewBlendHandler creates the blend_parent_names tool handler.
// Without a search type or rules every strategy runs.
func NewBlendHandler(deps *Dependencies) mcp.ToolHandlerFor[BlendInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input BlendInput) (
		*mcp.CallToolResult, any, error,
	) {
		if strings.TrimSpace(input.FatherName) == "" || strings.TrimSpace(input.MotherName) == "" {
			return ErrorResult("Both parent names are required", "Provide fatherName and motherName"), nil, nil
		}

		var candidates []derive.BlendCandidate
		if strings.TrimSpace(input.SearchType) == "" && len(input.NameRules) == 0 {
			candidates = derive.BlendAll(input.FatherName, input.MotherName)
		} else {
			candidates = derive.BlendNames(input.FatherName, input.MotherName, input.NameRules, input.SearchType)
		}
		if candidates == nil {
			candidates = []derive.BlendCandidate{}
		}

		deps.logger().Debug("blend computed", "father", input.FatherName, "mother", input.MotherName, "count", len(candidates))
		return JSONResult(BlendResult{Candidates: candidates, Count: len(candidates)}), nil, nil
	}
}
