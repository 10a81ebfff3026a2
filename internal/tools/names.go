package tools

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/astroname/internal/models"
)

// GenerateNamesInput defines the input schema for the generate_names tool.
type GenerateNamesInput struct {
	FatherName        string   `json:"fatherName" jsonschema:"Father's first name"`
	MotherName        string   `json:"motherName" jsonschema:"Mother's first name"`
	Gender            string   `json:"gender" jsonschema:"boy, girl or unisex"`
	Religion          string   `json:"religion,omitempty" jsonschema:"Religious tradition, default any"`
	Culture           string   `json:"culture,omitempty" jsonschema:"Culture or language, default any"`
	StartLetter       string   `json:"startLetter,omitempty" jsonschema:"Letter the name should start with"`
	EndLetter         string   `json:"endLetter,omitempty" jsonschema:"Letter the name should end with"`
	MustInclude       string   `json:"mustInclude,omitempty" jsonschema:"Letters the name must contain"`
	MeaningPreference string   `json:"meaningPreference,omitempty" jsonschema:"Desired meaning, e.g. light or strength"`
	SiblingNames      string   `json:"siblingNames,omitempty" jsonschema:"Comma-separated names of existing siblings"`
	BirthDate         string   `json:"birthDate,omitempty" jsonschema:"Expected birth date YYYY-MM-DD"`
	BirthTime         string   `json:"birthTime,omitempty" jsonschema:"Expected birth time HH:MM"`
	NameRules         []string `json:"nameRules,omitempty" jsonschema:"Free-form naming rules"`
	SearchType        string   `json:"searchType,omitempty" jsonschema:"traditional, first-letters, syllable-blend or vowel-consonant"`
}

func (in GenerateNamesInput) preferences() models.Preferences {
	return models.Preferences{
		FatherName:        in.FatherName,
		MotherName:        in.MotherName,
		Gender:            in.Gender,
		Religion:          in.Religion,
		Culture:           in.Culture,
		StartLetter:       in.StartLetter,
		EndLetter:         in.EndLetter,
		MustInclude:       in.MustInclude,
		MeaningPreference: in.MeaningPreference,
		SiblingNames:      in.SiblingNames,
		BirthDate:         in.BirthDate,
		BirthTime:         in.BirthTime,
		NameRules:         in.NameRules,
		SearchType:        in.SearchType,
	}
}

// GenerateNamesResult is the JSON payload of generate_names.
type GenerateNamesResult struct {
	Names []models.GeneratedName `json:"names"`
	Count int                    `json:"count"`
}

// NewGenerateNamesHandler creates the generate_names tool handler.
func NewGenerateNamesHandler(deps *Dependencies) mcp.ToolHandlerFor[GenerateNamesInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GenerateNamesInput) (
		*mcp.CallToolResult, any, error,
	) {
		prefs := input.preferences()
		if err := prefs.ValidateForGeneration(); err != nil {
			if errors.Is(err, models.ErrMissingPreferences) {
				return ErrorResult(err.Error(), "Provide fatherName, motherName and gender"), nil, nil
			}
			return ErrorResult(err.Error(), "Use boy, girl or unisex"), nil, nil
		}

		ctx, cancel := deps.withTimeout(ctx)
		defer cancel()

		names := deps.Names.Generate(ctx, prefs)
		deps.logger().Info("names generated", "count", len(names), "search_type", prefs.SearchType)

		return JSONResult(GenerateNamesResult{Names: names, Count: len(names)}), nil, nil
	}
}
