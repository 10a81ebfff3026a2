package cli

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/astroname/internal/models"
	"github.com/spf13/cobra"
)

var generateFormat string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Suggest baby names",
	Long: `Suggest up to 15 baby names for the given parents and preferences.

Blended parent names come first when a blend search type or rule is set.
Numerology and zodiac are added when --birth-date is given, sibling
compatibility when --siblings is given.

Examples:
  astroname generate -f Ravi -m Priya -g girl
  astroname generate -f John -m Mary -g boy --search-type syllable-blend
  astroname generate --prefs family.yaml --birth-date 2025-09-14 --format json`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	addPreferenceFlags(generateCmd)
	generateCmd.Flags().StringVarP(&generateFormat, "format", "o", FormatTable, "output format: table, json, yaml, csv or text")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := validFormat(generateFormat); err != nil {
		return err
	}
	prefs, err := loadPreferences(cmd)
	if err != nil {
		return err
	}

	names, err := generateNames(cmd.Context(), prefs)
	if err != nil {
		return err
	}
	return renderNames(cmd.OutOrStdout(), names, generateFormat, defaultTheme)
}

// generateNames validates prefs and runs the name pipeline behind the progress UI.
func generateNames(ctx context.Context, prefs models.Preferences) ([]models.GeneratedName, error) {
	if err := prefs.ValidateForGeneration(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	b, err := getBackend(ctx)
	if err != nil {
		return nil, err
	}

	var names []models.GeneratedName
	err = runWithProgress(ctx, "Generating names", func(ctx context.Context) error {
		ctx, cancel := withTimeout(ctx)
		defer cancel()

		var genErr error
		names, genErr = b.GenerateNames(ctx, prefs)
		return genErr
	})
	if err != nil {
		return nil, fmt.Errorf("generate names: %w", err)
	}

	logger.Debug("names generated", "count", len(names))
	return names, nil
}
