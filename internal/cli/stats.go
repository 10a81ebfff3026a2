package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/raphaelgruber/astroname/internal/client"
	"github.com/raphaelgruber/astroname/internal/metrics"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show server runtime statistics",
	Long: `Show pipeline statistics of a running astroname-server.

Examples:
  astroname stats
  astroname stats --server http://names.internal:8585`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	stats, err := client.New(serverURL).Stats(ctx)
	if err != nil {
		return fmt.Errorf("get server stats: %w", err)
	}
	printServerStats(cmd.OutOrStdout(), stats)
	return nil
}

// printServerStats displays server runtime statistics.
func printServerStats(w io.Writer, stats *metrics.Snapshot) {
	fmt.Fprintf(w, "Server Statistics (in-memory, since restart)\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════\n")
	fmt.Fprintf(w, "Uptime: %.1f seconds\n", stats.UptimeSeconds)

	if stats.Names != nil {
		fmt.Fprintf(w, "\nName Generation:\n")
		printOpStats(w, stats.Names)
		printOutcomes(w, stats.Outcomes[metrics.OpNames])
	}

	if stats.Chat != nil {
		fmt.Fprintf(w, "\nChat:\n")
		printOpStats(w, stats.Chat)
		printOutcomes(w, stats.Outcomes[metrics.OpChat])
	}

	if stats.LLMGenerate != nil {
		fmt.Fprintf(w, "\nLLM Generate:\n")
		printOpStats(w, stats.LLMGenerate)
	}
}

// printOpStats displays timing statistics for an operation.
func printOpStats(w io.Writer, op *metrics.OperationSnapshot) {
	fmt.Fprintf(w, "  Calls: %d, Errors: %d, Total: %dms\n", op.Count, op.Errors, op.TotalTimeMs)
	fmt.Fprintf(w, "  Time: avg %.1fms, min %dms, max %dms\n",
		op.AvgTimeMs, op.MinTimeMs, op.MaxTimeMs)
}

func printOutcomes(w io.Writer, outcomes map[string]int64) {
	if len(outcomes) == 0 {
		return
	}
	keys := make([]string, 0, len(outcomes))
	for k := range outcomes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(w, "  Outcomes:")
	for _, k := range keys {
		fmt.Fprintf(w, " %s=%d", k, outcomes[k])
	}
	fmt.Fprintln(w)
}
