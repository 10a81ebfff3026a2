package export

import (
	"strings"

	"github.com/raphaelgruber/astroname/internal/models"
)

const clipboardSeparator = "\n\n---\n\n"

// ClipboardText renders names as plain-text blocks for pasting.
func ClipboardText(names []models.GeneratedName) string {
	blocks := make([]string, 0, len(names))
	for _, n := range names {
		var b strings.Builder
		b.WriteString(n.Name + " - " + n.Meaning)
		b.WriteString("\nOrigin: " + n.Origin + " | Gender: " + n.Gender)
		b.WriteString("\nPronunciation: " + n.Pronunciation)
		if n.ParentConnection != "" {
			b.WriteString("\nParent Connection: " + n.ParentConnection)
		}
		if n.Derivation != "" {
			b.WriteString("\nDerivation: " + n.Derivation)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, clipboardSeparator)
}
