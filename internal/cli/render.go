package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/astroname/internal/export"
	"github.com/raphaelgruber/astroname/internal/models"
	"gopkg.in/yaml.v3"
)

// Output formats for name lists.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatCSV   = "csv"
	FormatText  = "text"
)

var formats = []string{FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatText}

func validFormat(f string) error {
	for _, known := range formats {
		if f == known {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q: want one of %s", f, strings.Join(formats, ", "))
}

// renderNames writes names in the requested format.
func renderNames(w io.Writer, names []models.GeneratedName, format string, theme Theme) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(names)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(names); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		if err := export.WriteCSV(w, names); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	case FormatText:
		_, err := io.WriteString(w, export.ClipboardText(names)+"\n")
		return err
	default:
		_, err := io.WriteString(w, renderCards(names, theme))
		return err
	}
}

// renderCards formats each name as a short styled card.
func renderCards(names []models.GeneratedName, theme Theme) string {
	if len(names) == 0 {
		return "No names found.\n"
	}

	title := theme.titleStyle()
	dim := theme.hintStyle()
	accent := theme.statusStyle()

	var b strings.Builder
	for i, n := range names {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s\n", title.Render(n.Name), dim.Render("("+n.Pronunciation+")"))
		fmt.Fprintf(&b, "  %s\n", n.Meaning)
		fmt.Fprintf(&b, "  %s\n", dim.Render(fmt.Sprintf("%s · %s · popularity %d", n.Origin, n.Gender, n.Popularity)))

		var extras []string
		if n.Numerology != nil {
			extras = append(extras, "numerology "+strconv.Itoa(*n.Numerology))
		}
		if n.Astrology != nil && *n.Astrology != "" {
			extras = append(extras, *n.Astrology)
		}
		if n.SiblingMatch != nil {
			if *n.SiblingMatch {
				extras = append(extras, "matches siblings")
			} else {
				extras = append(extras, "no sibling match")
			}
		}
		if len(extras) > 0 {
			fmt.Fprintf(&b, "  %s\n", accent.Render(strings.Join(extras, " · ")))
		}
		if n.ParentConnection != "" {
			fmt.Fprintf(&b, "  Parent connection: %s\n", n.ParentConnection)
		}
		if n.Derivation != "" {
			fmt.Fprintf(&b, "  Derivation: %s\n", n.Derivation)
		}
	}
	return b.String()
}

// renderChat formats a chat reply with numbered follow-up suggestions.
func renderChat(resp models.ChatResponse, theme Theme) string {
	var b strings.Builder
	b.WriteString(resp.Content)
	b.WriteString("\n")
	if len(resp.Suggestions) > 0 {
		b.WriteString("\n" + theme.hintStyle().Render("Try asking:") + "\n")
		for i, s := range resp.Suggestions {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
		}
	}
	return b.String()
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}
