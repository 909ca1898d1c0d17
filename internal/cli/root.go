package cli

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/moodflix/internal/domain"
	"github.com/alexanderramin/moodflix/internal/service"
	"github.com/spf13/cobra"
)

// ChatEngine handles one inbound message.
type ChatEngine interface {
	HandleMessage(ctx context.Context, userID, text string) (*service.Reply, error)
}

// HistoryLister lists stored turns, newest first.
type HistoryLister interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Turn, error)
}

// App holds what the commands need. Fields are wired by cmd/moodflix.
type App struct {
	Chat    ChatEngine
	History HistoryLister

	// Handler serves the HTTP API for "serve"; Addr is its default listen address.
	Handler http.Handler
	Addr    string

	// Background runs alongside "serve" until its context is cancelled
	// (session janitor).
	Background func(ctx context.Context)

	IsInteractive func() bool
	Logger        *slog.Logger
	Now           func() time.Time
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "moodflix" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "moodflix",
		Short:         "Conversational movie and series recommender",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newChatCmd(app),
		newServeCmd(app),
		newHistoryCmd(app),
	)

	return root
}
