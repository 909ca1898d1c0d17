// Package api exposes the chat engine over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/moodflix/internal/domain"
	"github.com/alexanderramin/moodflix/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxRequestBodySize caps chat request bodies at 64KB.
const maxRequestBodySize = 64 << 10

// ChatEngine handles one inbound message.
type ChatEngine interface {
	HandleMessage(ctx context.Context, userID, text string) (*service.Reply, error)
}

// HistoryLister lists stored turns, newest first.
type HistoryLister interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Turn, error)
}

type Options struct {
	Chat    ChatEngine
	History HistoryLister // optional; history routes answer 404 when nil
	Logger  *slog.Logger
	// RequestsPerMinute limits each client IP. Zero disables the limit.
	RequestsPerMinute int
}

type Handler struct {
	chat    ChatEngine
	history HistoryLister
	logger  *slog.Logger
}

// NewRouter builds the HTTP surface: chat, history, health and metrics.
func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{chat: opts.Chat, history: opts.History, logger: logger}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		if opts.RequestsPerMinute > 0 {
			r.Use(httprate.Limit(
				opts.RequestsPerMinute,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
					writeError(w, http.StatusTooManyRequests, "too many requests")
				}),
			))
		}
		r.Post("/chat", h.HandleChat)
		if h.history != nil {
			r.Get("/users/{userID}/history", h.HandleHistory)
		}
	})
	return r
}
