package service

import (
	"fmt"
	"strings"

	"github.com/raphaelgruber/astroname/internal/models"
)

// requestedNames is how many names the generation prompt asks for.
const requestedNames = 12

const nameSchemaInstructions = `
For each name, provide detailed explanation of:
1. How it relates to the parent names (if applicable)
2. Cultural significance
3. Meaning derivation
4. Why it fits the preferences

Please provide each name in this exact JSON format:
{
  "name": "Name",
  "meaning": "Detailed meaning description",
  "origin": "Cultural origin",
  "gender": "boy/girl/unisex",
  "pronunciation": "phonetic pronunciation",
  "popularity": number between 1-100,
  "derivation": "How this name relates to or derives from the parent names and preferences",
  "parentConnection": "Specific connection to father/mother names if any"
}

Return an array of %d such name objects. Focus on meaningful connections and beautiful derivations.`

const chatInstructions = `Please provide a helpful response about baby names. If the user is asking for specific name suggestions, provide 3-5 names with brief explanations. Keep the response conversational and helpful.`

// buildNamesPrompt embeds every non-empty preference and the requested output schema.
func buildNamesPrompt(p models.Preferences) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d meaningful baby names with detailed explanations of how they connect to the parent names or preferences:\n\n", requestedNames)
	fmt.Fprintf(&b, "Father's name: %s\n", p.FatherName)
	fmt.Fprintf(&b, "Mother's name: %s\n", p.MotherName)
	fmt.Fprintf(&b, "Gender: %s\n", p.Gender)
	fmt.Fprintf(&b, "Religion: %s\n", orDefault(p.Religion, "any"))
	fmt.Fprintf(&b, "Culture/Language: %s\n", orDefault(p.Culture, "any"))
	fmt.Fprintf(&b, "Search Type: %s\n", orDefault(p.SearchType, "traditional"))

	optional := []struct{ label, value string }{
		{"Start with letter", p.StartLetter},
		{"End with letter", p.EndLetter},
		{"Must include letters", p.MustInclude},
		{"Preferred meaning", p.MeaningPreference},
		{"Sibling names for compatibility", p.SiblingNames},
		{"Birth date", p.BirthDate},
		{"Birth time", p.BirthTime},
	}
	for _, field := range optional {
		if v := strings.TrimSpace(field.value); v != "" {
			fmt.Fprintf(&b, "%s: %s\n", field.label, v)
		}
	}
	if len(p.NameRules) > 0 {
		fmt.Fprintf(&b, "Naming rules: %s\n", strings.Join(p.NameRules, "; "))
	}

	fmt.Fprintf(&b, nameSchemaInstructions, requestedNames)
	return b.String()
}

// buildChatPrompt prefixes the user's message with a compact preference summary.
func buildChatPrompt(message string, p models.Preferences) string {
	context := fmt.Sprintf("User preferences: Gender: %s, Religion: %s, Culture: %s, Father: %s, Mother: %s",
		p.Gender, p.Religion, p.Culture, p.FatherName, p.MotherName)

	return fmt.Sprintf("%s\n\nUser question: %s\n\n%s", context, message, chatInstructions)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
