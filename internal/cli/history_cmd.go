package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/moodflix/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var (
		userID string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the stored conversation turns of a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return errors.New("history is not available")
			}
			turns, err := app.History.ListByUser(cmd.Context(), userID, limit)
			if err != nil {
				return fmt.Errorf("listing history: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderHistory(turns, app.now()))
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", defaultLocalUser, "conversation user ID")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of turns to show")
	return cmd
}
