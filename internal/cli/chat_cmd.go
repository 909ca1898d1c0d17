package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/moodflix/internal/cli/formatter"
	"github.com/alexanderramin/moodflix/internal/service"
	"github.com/spf13/cobra"
)

const defaultLocalUser = "local"

func newChatCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the recommender from the terminal",
		Long: "Reads one message per line from stdin and prints the bot's reply.\n" +
			"The session ends on a farewell (\"chau\") or end of input.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, app, userID)
		},
	}
	cmd.Flags().StringVar(&userID, "user", defaultLocalUser, "conversation user ID")
	return cmd
}

func runChat(cmd *cobra.Command, app *App, userID string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	interactive := app.interactive()

	if interactive {
		fmt.Fprintln(out, formatter.Dim(`Escribí "hola" para empezar, "otra" para más opciones y "chau" para salir.`))
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		if interactive {
			fmt.Fprint(out, formatter.Prompt())
		}
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		stop := func() {}
		if interactive {
			stop = formatter.StartSpinner(cmd.ErrOrStderr(), "pensando...")
		}
		reply, err := app.Chat.HandleMessage(ctx, userID, text)
		stop()
		if err != nil {
			return fmt.Errorf("handling message: %w", err)
		}

		fmt.Fprintln(out, formatter.BotReply(reply.Text, string(reply.Kind)))
		fmt.Fprintln(out)
		if reply.Kind == service.ReplyFarewell {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}
