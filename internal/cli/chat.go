package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/raphaelgruber/astroname/internal/client"
	"github.com/raphaelgruber/astroname/internal/models"
	"github.com/raphaelgruber/astroname/internal/service"
	"github.com/spf13/cobra"
)

var chatPrefs models.Preferences

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask the name assistant a question",
	Long: `Ask a free-form question about baby names.

With a question argument, prints one answer. Without one, starts an
interactive session that reads questions from stdin until EOF or "exit".
With --server, interactive sessions use the server's websocket chat.

Examples:
  astroname chat "Names that mean light?"
  astroname chat "Modern Tamil names" --gender girl --culture Tamil
  astroname chat --server http://localhost:8585`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	f := chatCmd.Flags()
	f.StringVar(&chatPrefs.FatherName, "father", "", "father's name for context")
	f.StringVar(&chatPrefs.MotherName, "mother", "", "mother's name for context")
	f.StringVarP(&chatPrefs.Gender, "gender", "g", "", "boy, girl or unisex")
	f.StringVar(&chatPrefs.Religion, "religion", "", "religious tradition")
	f.StringVar(&chatPrefs.Culture, "culture", "", "culture or language")
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		resp, err := askOnce(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(out, renderChat(resp, defaultTheme))
		return nil
	}

	if serverURL != "" {
		return chatOverWebsocket(ctx, cmd.InOrStdin(), out)
	}
	return chatLoop(ctx, cmd.InOrStdin(), out, service.Welcome(), askOnce)
}

func askOnce(ctx context.Context, question string) (models.ChatResponse, error) {
	if strings.TrimSpace(question) == "" {
		return models.ChatResponse{}, fmt.Errorf("question cannot be empty")
	}
	b, err := getBackend(ctx)
	if err != nil {
		return models.ChatResponse{}, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return b.Chat(ctx, question, chatPrefs)
}

// chatLoop prints the greeting and answers one question per input line.
func chatLoop(ctx context.Context, in io.Reader, out io.Writer, greeting models.ChatResponse, ask func(context.Context, string) (models.ChatResponse, error)) error {
	fmt.Fprint(out, renderChat(greeting, defaultTheme))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		resp, err := ask(ctx, line)
		if err != nil {
			fmt.Fprintln(out, defaultTheme.errorStyle().Render("Error: "+err.Error()))
			continue
		}
		fmt.Fprint(out, "\n"+renderChat(resp, defaultTheme))
	}
}

func chatOverWebsocket(ctx context.Context, in io.Reader, out io.Writer) error {
	session, err := client.New(serverURL).OpenChat(ctx)
	if err != nil {
		return err
	}
	defer session.Close()
	logger.Debug("chat session opened", "session", session.ID)

	greeting := models.ChatResponse{Content: session.Greeting.Content, Suggestions: session.Greeting.Suggestions}
	return chatLoop(ctx, in, out, greeting, func(ctx context.Context, q string) (models.ChatResponse, error) {
		ctx, cancel := withTimeout(ctx)
		defer cancel()
		frame, err := session.Send(ctx, q, chatPrefs)
		if err != nil {
			return models.ChatResponse{}, err
		}
		return models.ChatResponse{Content: frame.Content, Suggestions: frame.Suggestions}, nil
	})
}
