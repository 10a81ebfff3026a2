package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/raphaelgruber/astroname/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func sampleNames() []models.GeneratedName {
	return []models.GeneratedName{
		{
			Name: "Aarav", Meaning: "Peaceful", Origin: "Sanskrit", Gender: models.GenderBoy,
			Pronunciation: "AA-rav", Popularity: 80,
			Numerology: intPtr(6), Astrology: strPtr("Leo"), SiblingMatch: boolPtr(true),
		},
		{Name: "Ria", Meaning: "Singer", Origin: "Sanskrit", Gender: models.GenderGirl, Pronunciation: "REE-a", Popularity: 55},
	}
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMergePreferences(t *testing.T) {
	base := models.Preferences{FatherName: "Ravi", MotherName: "Priya", Gender: models.GenderBoy, NameRules: []string{"a"}}
	over := models.Preferences{FatherName: "John", Gender: models.GenderGirl, Culture: "Tamil", NameRules: []string{"b"}}

	changed := map[string]bool{"gender": true, "culture": true}
	got := mergePreferences(base, over, func(f string) bool { return changed[f] })

	assert.Equal(t, "Ravi", got.FatherName)
	assert.Equal(t, "Priya", got.MotherName)
	assert.Equal(t, models.GenderGirl, got.Gender)
	assert.Equal(t, "Tamil", got.Culture)
	assert.Equal(t, []string{"a"}, got.NameRules)

	changed["rule"] = true
	got = mergePreferences(base, over, func(f string) bool { return changed[f] })
	assert.Equal(t, []string{"b"}, got.NameRules)
}

func TestValidFormat(t *testing.T) {
	for _, f := range formats {
		assert.NoError(t, validFormat(f))
	}
	err := validFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table, json, yaml, csv, text")
}

func TestRenderNames(t *testing.T) {
	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{FormatJSON, func(t *testing.T, out string) {
			var got []models.GeneratedName
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, sampleNames(), got)
		}},
		{FormatYAML, func(t *testing.T, out string) {
			var got []map[string]any
			require.NoError(t, yaml.Unmarshal([]byte(out), &got))
			require.Len(t, got, 2)
			assert.Equal(t, "Aarav", got[0]["name"])
		}},
		{FormatCSV, func(t *testing.T, out string) {
			lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			require.Len(t, lines, 3)
			assert.True(t, strings.HasPrefix(lines[0], "Name,"))
			assert.True(t, strings.HasPrefix(lines[1], `"Aarav"`))
		}},
		{FormatText, func(t *testing.T, out string) {
			assert.Contains(t, out, "Aarav")
			assert.Contains(t, out, "---")
		}},
		{FormatTable, func(t *testing.T, out string) {
			assert.Contains(t, out, "Aarav")
			assert.Contains(t, out, "numerology 6")
			assert.Contains(t, out, "Leo")
			assert.Contains(t, out, "matches siblings")
			assert.Contains(t, out, "Ria")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, renderNames(&buf, sampleNames(), tt.format, defaultTheme))
			tt.check(t, buf.String())
		})
	}
}

func TestRenderCardsEmpty(t *testing.T) {
	assert.Equal(t, "No names found.\n", renderCards(nil, defaultTheme))
}

func TestRenderChat(t *testing.T) {
	out := renderChat(models.ChatResponse{Content: "Try Aarav.", Suggestions: []string{"More?", "Less?"}}, defaultTheme)
	assert.True(t, strings.HasPrefix(out, "Try Aarav.\n"))
	assert.Contains(t, out, "1. More?")
	assert.Contains(t, out, "2. Less?")
}

func TestFraction(t *testing.T) {
	tests := []struct {
		elapsed, timeout time.Duration
		want             float64
	}{
		{time.Second, 0, 0},
		{0, time.Minute, 0},
		{30 * time.Second, time.Minute, 0.5},
		{2 * time.Minute, time.Minute, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, fraction(tt.elapsed, tt.timeout), 1e-9)
	}
}

func TestChatLoop(t *testing.T) {
	in := strings.NewReader("names for twins\n\n  \nexit\nnever asked\n")
	var out bytes.Buffer
	var asked []string

	ask := func(_ context.Context, q string) (models.ChatResponse, error) {
		asked = append(asked, q)
		return models.ChatResponse{Content: "Luv and Kush"}, nil
	}
	err := chatLoop(context.Background(), in, &out, models.ChatResponse{Content: "Hello!"}, ask)
	require.NoError(t, err)

	assert.Equal(t, []string{"names for twins"}, asked)
	assert.True(t, strings.HasPrefix(out.String(), "Hello!\n"))
	assert.Contains(t, out.String(), "Luv and Kush")
}

func TestChatLoopReportsErrorsAndContinues(t *testing.T) {
	in := strings.NewReader("first\nsecond\n")
	var out bytes.Buffer
	calls := 0

	ask := func(_ context.Context, q string) (models.ChatResponse, error) {
		calls++
		if q == "first" {
			return models.ChatResponse{}, errors.New("server down")
		}
		return models.ChatResponse{Content: "ok"}, nil
	}
	require.NoError(t, chatLoop(context.Background(), in, &out, models.ChatResponse{}, ask))
	assert.Equal(t, 2, calls)
	assert.Contains(t, out.String(), "server down")
	assert.Contains(t, out.String(), "ok")
}

func TestExportPath(t *testing.T) {
	now := time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)
	dir := t.TempDir()

	assert.Equal(t, "baby-names-2025-03-09.csv", exportPath("", "", false, now))
	assert.Equal(t, "tamil-2025-03-09.txt", exportPath("", "tamil", true, now))
	assert.Equal(t, filepath.Join(dir, "tamil-2025-03-09.csv"), exportPath(dir, "tamil", false, now))
	assert.Equal(t, filepath.Join(dir, "list.csv"), exportPath(filepath.Join(dir, "list.csv"), "tamil", false, now))
}

func TestLocalExport(t *testing.T) {
	exportClipboard = false
	data, err := localExport(sampleNames())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Name,"))

	exportClipboard = true
	t.Cleanup(func() { exportClipboard = false })
	data, err = localExport(sampleNames())
	require.NoError(t, err)
	assert.Contains(t, string(data), "Aarav")
	assert.False(t, strings.HasPrefix(string(data), "Name,"))
}

func TestDeriveCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"derive", "numerology", "Arjun"}, "Arjun\t1\n"},
		{[]string{"derive", "astrology", "2020-01-20"}, "Aquarius\n"},
		{[]string{"derive", "sibling", "Anaya", "Arav"}, "yes\n"},
		{[]string{"version"}, "astroname " + Version + "\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestDeriveAstrologyRejectsBadDate(t *testing.T) {
	_, err := execute(t, "derive", "astrology", "2020-13-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid birth date")
}

func TestDeriveBlend(t *testing.T) {
	out, err := execute(t, "derive", "blend", "Ravi", "Priya")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Raiya\t"))
	assert.True(t, strings.HasPrefix(lines[2], "Pari\t"))
}

func TestGenerateRequiresPreferences(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("father_name: Ravi\n"), 0o644))

	_, err := execute(t, "generate", "--prefs", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "motherName")
}
