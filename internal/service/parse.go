package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/raphaelgruber/astroname/internal/models"
	"github.com/xeipuuv/gojsonschema"
)

// namesSchema accepts the array the names prompt asks for. Only name is
// mandatory; optional fields may be null, and popularity is coerced after
// decoding since models emit it as a number or a numeric string.
const namesSchema = `{
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["name"],
    "properties": {
      "name":             {"type": "string", "minLength": 1},
      "meaning":          {"type": ["string", "null"]},
      "origin":           {"type": ["string", "null"]},
      "gender":           {"type": ["string", "null"]},
      "pronunciation":    {"type": ["string", "null"]},
      "derivation":       {"type": ["string", "null"]},
      "parentConnection": {"type": ["string", "null"]}
    }
  }
}`

var compiledNamesSchema = mustSchema(namesSchema)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("compile names schema: %v", err))
	}
	return schema
}

type rawName struct {
	Name             string `json:"name"`
	Meaning          string `json:"meaning"`
	Origin           string `json:"origin"`
	Gender           string `json:"gender"`
	Pronunciation    string `json:"pronunciation"`
	Popularity       any    `json:"popularity"`
	Derivation       string `json:"derivation"`
	ParentConnection string `json:"parentConnection"`
}

// stripFences removes markdown code-fence delimiters around generated JSON.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```JSON", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// parseNames turns generated text into name records, or ErrContent.
func parseNames(text string) Result[[]models.GeneratedName] {
	body := stripFences(text)

	validation, err := compiledNamesSchema.Validate(gojsonschema.NewStringLoader(body))
	if err != nil {
		return Err[[]models.GeneratedName](fmt.Errorf("%w: %w", ErrContent, err))
	}
	if !validation.Valid() {
		msgs := make([]string, 0, len(validation.Errors()))
		for _, e := range validation.Errors() {
			msgs = append(msgs, e.String())
		}
		return Err[[]models.GeneratedName](fmt.Errorf("%w: %s", ErrContent, strings.Join(msgs, "; ")))
	}

	var raw []rawName
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return Err[[]models.GeneratedName](fmt.Errorf("%w: %w", ErrContent, err))
	}

	names := make([]models.GeneratedName, 0, len(raw))
	for _, r := range raw {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		names = append(names, models.GeneratedName{
			Name:             name,
			Meaning:          r.Meaning,
			Origin:           r.Origin,
			Gender:           r.Gender,
			Pronunciation:    r.Pronunciation,
			Popularity:       popularity(r.Popularity),
			Derivation:       r.Derivation,
			ParentConnection: r.ParentConnection,
		})
	}
	if len(names) == 0 {
		return Err[[]models.GeneratedName](fmt.Errorf("%w: no non-blank names", ErrContent))
	}
	return Ok(names)
}

// popularity coerces a decoded value into the 0-100 range. Anything
// non-numeric becomes 0.
func popularity(v any) int {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, f))))
}
