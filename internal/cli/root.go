// Package cli provides the command-line interface for astroname.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/raphaelgruber/astroname/internal/client"
	"github.com/raphaelgruber/astroname/internal/config"
	"github.com/raphaelgruber/astroname/internal/llm"
	"github.com/raphaelgruber/astroname/internal/models"
	"github.com/raphaelgruber/astroname/internal/service"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose   bool
	serverURL string

	// Global config and logger
	cfg    config.Config
	logger *slog.Logger

	// Lazy-initialized pipeline backend
	current backend
)

// backend runs the pipelines either in-process or on a remote server.
type backend interface {
	GenerateNames(ctx context.Context, prefs models.Preferences) ([]models.GeneratedName, error)
	Chat(ctx context.Context, message string, prefs models.Preferences) (models.ChatResponse, error)
}

// localBackend calls the generator directly.
type localBackend struct {
	names *service.NameService
	chat  *service.ChatService
}

func (b localBackend) GenerateNames(ctx context.Context, prefs models.Preferences) ([]models.GeneratedName, error) {
	return b.names.Generate(ctx, prefs), nil
}

func (b localBackend) Chat(ctx context.Context, message string, prefs models.Preferences) (models.ChatResponse, error) {
	return b.chat.Chat(ctx, message, prefs), nil
}

// remoteBackend delegates to an astroname server.
type remoteBackend struct {
	client *client.Client
}

func (b remoteBackend) GenerateNames(ctx context.Context, prefs models.Preferences) ([]models.GeneratedName, error) {
	return b.client.GenerateNames(ctx, prefs)
}

func (b remoteBackend) Chat(ctx context.Context, message string, prefs models.Preferences) (models.ChatResponse, error) {
	reply, err := b.client.Chat(ctx, message, prefs)
	if err != nil {
		return models.ChatResponse{}, err
	}
	return reply.ChatResponse, nil
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "astroname",
	Short: "AI-assisted baby name suggestions",
	Long: `AstroName suggests baby names from the parents' names, gender and cultural
preferences, blends parent names, and adds numerology, zodiac and sibling
compatibility when a birth date or sibling names are given.

Names are generated in-process using the configured LLM provider, or by a
running astroname-server when --server is set.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		// stdout carries data, so logs stay on stderr and only errors show by default.
		level := slog.LevelError
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		return nil
	},
}

// getBackend creates the pipeline backend on first use.
// Commands that never call the generator do not need credentials.
func getBackend(ctx context.Context) (backend, error) {
	if current != nil {
		return current, nil
	}

	if serverURL != "" {
		current = remoteBackend{client: client.New(serverURL)}
		return current, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	gen, err := llm.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init generator: %w", err)
	}
	current = localBackend{
		names: service.NewNameService(gen, logger, nil).WithMaxResults(cfg.MaxResults),
		chat:  service.NewChatService(gen, logger, nil),
	}
	return current, nil
}

// withTimeout bounds one pipeline call by the configured request timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.RequestTimeout)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "use a running astroname-server instead of calling the LLM directly")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "astroname %s\n", Version)
	},
}

// exitWithError prints an error message and exits with code 1.
func exitWithError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	os.Exit(1)
}

// Main runs the CLI and exits non-zero on failure.
func Main() {
	if err := Execute(); err != nil {
		exitWithError(os.Stderr, err)
	}
}
