package models

// GeneratedName is one suggestion returned by the name pipeline.
// Numerology and Astrology are set iff a birth date was supplied;
// SiblingMatch is set iff sibling names were supplied.
type GeneratedName struct {
	Name             string  `json:"name" yaml:"name"`
	Meaning          string  `json:"meaning" yaml:"meaning"`
	Origin           string  `json:"origin" yaml:"origin"`
	Gender           string  `json:"gender" yaml:"gender"`
	Pronunciation    string  `json:"pronunciation" yaml:"pronunciation"`
	Popularity       int     `json:"popularity" yaml:"popularity"`
	Numerology       *int    `json:"numerology,omitempty" yaml:"numerology,omitempty"`
	Astrology        *string `json:"astrology,omitempty" yaml:"astrology,omitempty"`
	SiblingMatch     *bool   `json:"siblingMatch,omitempty" yaml:"sibling_match,omitempty"`
	Derivation       string  `json:"derivation,omitempty" yaml:"derivation,omitempty"`
	ParentConnection string  `json:"parentConnection,omitempty" yaml:"parent_connection,omitempty"`
}

// ChatResponse is the reply of the chat pipeline.
type ChatResponse struct {
	Content     string   `json:"content" yaml:"content"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}

// ChatRequest is the inbound payload for a chat turn.
type ChatRequest struct {
	Message     string      `json:"message" yaml:"message"`
	Preferences Preferences `json:"preferences" yaml:"preferences"`
}
