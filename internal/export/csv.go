// Package export renders generated names for spreadsheets and the clipboard.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/raphaelgruber/astroname/internal/models"
)

// DefaultPrefix is the file name prefix used when none is given.
const DefaultPrefix = "baby-names"

var csvHeader = []string{
	"Name",
	"Meaning",
	"Origin",
	"Gender",
	"Pronunciation",
	"Popularity",
	"Parent Connection",
	"Derivation",
	"Numerology",
	"Astrology",
	"Sibling Match",
}

// WriteCSV writes a header line and one row per name. Text columns are
// always quoted; popularity and numerology are bare numbers. Rows are
// separated by "\n".
func WriteCSV(w io.Writer, names []models.GeneratedName) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(csvHeader, ",")); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, n := range names {
		numerology := ""
		if n.Numerology != nil && *n.Numerology != 0 {
			numerology = strconv.Itoa(*n.Numerology)
		}
		astrology := ""
		if n.Astrology != nil {
			astrology = *n.Astrology
		}
		sibling := "No"
		if n.SiblingMatch != nil && *n.SiblingMatch {
			sibling = "Yes"
		}

		row := []string{
			quote(n.Name),
			quote(n.Meaning),
			quote(n.Origin),
			quote(n.Gender),
			quote(n.Pronunciation),
			strconv.Itoa(n.Popularity),
			quote(n.ParentConnection),
			quote(n.Derivation),
			numerology,
			quote(astrology),
			sibling,
		}
		if _, err := bw.WriteString("\n" + strings.Join(row, ",")); err != nil {
			return fmt.Errorf("write csv row %q: %w", n.Name, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// quote wraps s in double quotes, doubling any embedded quote.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// FileName returns "<prefix>-YYYY-MM-DD.csv" for the UTC date of now.
func FileName(prefix string, now time.Time) string {
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s-%s.csv", prefix, now.UTC().Format(time.DateOnly))
}
