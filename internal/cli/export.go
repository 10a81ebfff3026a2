package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/raphaelgruber/astroname/internal/client"
	"github.com/raphaelgruber/astroname/internal/export"
	"github.com/raphaelgruber/astroname/internal/models"
	"github.com/spf13/cobra"
)

var (
	exportPrefix    string
	exportClipboard bool
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Generate names and save them as CSV",
	Long: `Generate names and write them as a CSV spreadsheet.

The path may be a file, a directory or "-" for stdout. Without a path, or
for a directory, the file is named <prefix>-YYYY-MM-DD.csv.
With --clipboard, the plain-text listing is written instead.

Examples:
  astroname export -f Ravi -m Priya -g girl
  astroname export ./shortlists --prefix tamil-names --prefs family.yaml
  astroname export - -f John -m Mary -g boy --clipboard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	addPreferenceFlags(exportCmd)
	exportCmd.Flags().StringVar(&exportPrefix, "prefix", export.DefaultPrefix, "file name prefix")
	exportCmd.Flags().BoolVar(&exportClipboard, "clipboard", false, "write the plain-text listing instead of CSV")
}

func runExport(cmd *cobra.Command, args []string) error {
	prefs, err := loadPreferences(cmd)
	if err != nil {
		return err
	}
	names, err := generateNames(cmd.Context(), prefs)
	if err != nil {
		return err
	}

	target := ""
	if len(args) == 1 {
		target = args[0]
	}

	var data []byte
	if serverURL != "" {
		data, err = remoteExport(cmd.Context(), names)
	} else {
		data, err = localExport(names)
	}
	if err != nil {
		return err
	}

	if target == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	path := exportPath(target, exportPrefix, exportClipboard, time.Now())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d names to %s\n", len(names), path)
	return nil
}

func localExport(names []models.GeneratedName) ([]byte, error) {
	if exportClipboard {
		return []byte(export.ClipboardText(names) + "\n"), nil
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, names); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// remoteExport lets the server render the file so both sides stay byte-identical.
func remoteExport(ctx context.Context, names []models.GeneratedName) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	c := client.New(serverURL)
	if exportClipboard {
		text, err := c.ClipboardText(ctx, names)
		if err != nil {
			return nil, err
		}
		return []byte(text + "\n"), nil
	}
	data, _, err := c.ExportCSV(ctx, names, exportPrefix)
	return data, err
}

// exportPath resolves the destination file. Empty targets and directories get
// the dated default name.
func exportPath(target, prefix string, text bool, now time.Time) string {
	name := export.FileName(prefix, now)
	if text {
		name = name[:len(name)-len(filepath.Ext(name))] + ".txt"
	}
	if target == "" {
		return name
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return filepath.Join(target, name)
	}
	return target
}
