// Package models defines the records exchanged between the name pipelines and their callers.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Gender values accepted for generation.
const (
	GenderBoy    = "boy"
	GenderGirl   = "girl"
	GenderUnisex = "unisex"
)

// ErrMissingPreferences is returned by ValidateForGeneration when a required field is absent.
var ErrMissingPreferences = errors.New("missing required preferences")

// Preferences describes the parents, cultural constraints and optional birth data
// for one pipeline call. Pipelines never mutate it.
type Preferences struct {
	FatherName        string   `json:"fatherName" yaml:"father_name"`
	MotherName        string   `json:"motherName" yaml:"mother_name"`
	Gender            string   `json:"gender" yaml:"gender"`
	Religion          string   `json:"religion,omitempty" yaml:"religion,omitempty"`
	Culture           string   `json:"culture,omitempty" yaml:"culture,omitempty"`
	StartLetter       string   `json:"startLetter,omitempty" yaml:"start_letter,omitempty"`
	EndLetter         string   `json:"endLetter,omitempty" yaml:"end_letter,omitempty"`
	MustInclude       string   `json:"mustInclude,omitempty" yaml:"must_include,omitempty"`
	MeaningPreference string   `json:"meaningPreference,omitempty" yaml:"meaning_preference,omitempty"`
	SiblingNames      string   `json:"siblingNames,omitempty" yaml:"sibling_names,omitempty"`
	BirthDate         string   `json:"birthDate,omitempty" yaml:"birth_date,omitempty"`
	BirthTime         string   `json:"birthTime,omitempty" yaml:"birth_time,omitempty"`
	NameRules         []string `json:"nameRules,omitempty" yaml:"name_rules,omitempty"`
	SearchType        string   `json:"searchType,omitempty" yaml:"search_type,omitempty"`
}

// ValidateForGeneration checks the fields the name pipeline requires.
// Callers run it before invoking generation; the pipeline itself does not.
func (p Preferences) ValidateForGeneration() error {
	var missing []string
	if strings.TrimSpace(p.FatherName) == "" {
		missing = append(missing, "fatherName")
	}
	if strings.TrimSpace(p.MotherName) == "" {
		missing = append(missing, "motherName")
	}
	if strings.TrimSpace(p.Gender) == "" {
		missing = append(missing, "gender")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingPreferences, strings.Join(missing, ", "))
	}

	switch p.Gender {
	case GenderBoy, GenderGirl, GenderUnisex:
		return nil
	default:
		return fmt.Errorf("invalid gender %q: want boy, girl or unisex", p.Gender)
	}
}

// HasBirthDate reports whether birth-dependent derivations should be attached.
func (p Preferences) HasBirthDate() bool {
	return strings.TrimSpace(p.BirthDate) != ""
}

// HasSiblings reports whether the sibling compatibility check applies.
func (p Preferences) HasSiblings() bool {
	return strings.TrimSpace(p.SiblingNames) != ""
}
