package cli

import (
	"fmt"
	"os"

	"github.com/raphaelgruber/astroname/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// prefFlags collects preference flags shared by generate and export.
var (
	prefsFile string
	prefFlags models.Preferences
)

func addPreferenceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&prefsFile, "prefs", "", "YAML file with preferences (flags override it)")
	f.StringVarP(&prefFlags.FatherName, "father", "f", "", "father's name")
	f.StringVarP(&prefFlags.MotherName, "mother", "m", "", "mother's name")
	f.StringVarP(&prefFlags.Gender, "gender", "g", "", "boy, girl or unisex")
	f.StringVar(&prefFlags.Religion, "religion", "", "religious tradition")
	f.StringVar(&prefFlags.Culture, "culture", "", "culture or language")
	f.StringVar(&prefFlags.StartLetter, "start", "", "letter the name starts with")
	f.StringVar(&prefFlags.EndLetter, "end", "", "letter the name ends with")
	f.StringVar(&prefFlags.MustInclude, "include", "", "letters the name must contain")
	f.StringVar(&prefFlags.MeaningPreference, "meaning", "", "preferred meaning")
	f.StringVar(&prefFlags.SiblingNames, "siblings", "", "comma-separated sibling names")
	f.StringVar(&prefFlags.BirthDate, "birth-date", "", "birth date YYYY-MM-DD")
	f.StringVar(&prefFlags.BirthTime, "birth-time", "", "birth time HH:MM")
	f.StringSliceVar(&prefFlags.NameRules, "rule", nil, "naming rule (repeatable)")
	f.StringVar(&prefFlags.SearchType, "search-type", "", "traditional, first-letters, syllable-blend or vowel-consonant")
}

// loadPreferences reads the optional YAML file and applies explicitly set flags on top.
func loadPreferences(cmd *cobra.Command) (models.Preferences, error) {
	var prefs models.Preferences
	if prefsFile != "" {
		data, err := os.ReadFile(prefsFile)
		if err != nil {
			return prefs, fmt.Errorf("read preferences: %w", err)
		}
		if err := yaml.Unmarshal(data, &prefs); err != nil {
			return prefs, fmt.Errorf("parse preferences %s: %w", prefsFile, err)
		}
	}

	return mergePreferences(prefs, prefFlags, cmd.Flags().Changed), nil
}

// mergePreferences overlays every field of over whose flag was changed.
func mergePreferences(base, over models.Preferences, changed func(string) bool) models.Preferences {
	set := func(flag string, dst *string, v string) {
		if changed(flag) {
			*dst = v
		}
	}
	set("father", &base.FatherName, over.FatherName)
	set("mother", &base.MotherName, over.MotherName)
	set("gender", &base.Gender, over.Gender)
	set("religion", &base.Religion, over.Religion)
	set("culture", &base.Culture, over.Culture)
	set("start", &base.StartLetter, over.StartLetter)
	set("end", &base.EndLetter, over.EndLetter)
	set("include", &base.MustInclude, over.MustInclude)
	set("meaning", &base.MeaningPreference, over.MeaningPreference)
	set("siblings", &base.SiblingNames, over.SiblingNames)
	set("birth-date", &base.BirthDate, over.BirthDate)
	set("birth-time", &base.BirthTime, over.BirthTime)
	set("search-type", &base.SearchType, over.SearchType)
	if changed("rule") {
		base.NameRules = over.NameRules
	}
	return base
}
