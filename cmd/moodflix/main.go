package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alexanderramin/moodflix/internal/api"
	"github.com/alexanderramin/moodflix/internal/catalog/tmdb"
	"github.com/alexanderramin/moodflix/internal/cli"
	"github.com/alexanderramin/moodflix/internal/config"
	"github.com/alexanderramin/moodflix/internal/db"
	"github.com/alexanderramin/moodflix/internal/domain"
	"github.com/alexanderramin/moodflix/internal/intelligence"
	"github.com/alexanderramin/moodflix/internal/llm"
	"github.com/alexanderramin/moodflix/internal/metrics"
	"github.com/alexanderramin/moodflix/internal/service"
	"github.com/alexanderramin/moodflix/internal/session"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	serving := len(os.Args) > 1 && os.Args[1] == "serve"
	logger := newLogger(os.Stderr, cfg.Log.Level, serving)
	slog.SetDefault(logger)

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	history := service.NewHistoryService(database, cfg.History.MaxTurns, logger)

	tmdbClient := tmdb.NewClient(tmdb.Config{
		APIKey:            cfg.TMDB.APIKey,
		BaseURL:           cfg.TMDB.BaseURL,
		Language:          cfg.TMDB.Language,
		Region:            cfg.TMDB.Region,
		Timeout:           cfg.TMDB.Timeout,
		RequestsPerSecond: cfg.TMDB.RequestsPerSecond,
		Burst:             cfg.TMDB.Burst,
	}, logger)
	if !tmdbClient.Configured() {
		logger.Warn("TMDB API key missing, recommendations will fail until MOODFLIX_TMDB__API_KEY is set")
	}
	catalogs := map[domain.ContentType]service.Catalog{
		domain.ContentMovie:  tmdb.NewMovieCatalog(tmdbClient),
		domain.ContentSeries: tmdb.NewSeriesCatalog(tmdbClient),
	}

	// Keyword extraction always works; the LLM is layered on top when enabled.
	var extractor service.SlotExtractor = intelligence.NewKeywordExtractor()
	if cfg.LLM.Enabled {
		var observer llm.Observer = metrics.LLMObserver{}
		if cfg.LLM.LogCalls {
			observer = llm.MultiObserver{llm.NewLogObserver(logger), observer}
		}
		llmClient := llm.NewOllamaClient(llm.Config{
			Endpoint:        cfg.LLM.Endpoint,
			Model:           cfg.LLM.Model,
			Timeout:         cfg.LLM.Timeout,
			MaxRetries:      cfg.LLM.MaxRetries,
			Temperature:     cfg.LLM.Temperature,
			MaxTokens:       cfg.LLM.MaxTokens,
			BreakerFailures: cfg.LLM.BreakerFailures,
			BreakerCooldown: cfg.LLM.BreakerCooldown,
		}, observer, logger)
		extractor = intelligence.NewSlotExtractor(llmClient, intelligence.NewKeywordExtractor(), logger)
	}

	store := session.NewMemoryStore(
		session.WithIdleTTL(cfg.Session.IdleTimeout),
		session.WithLogger(logger),
	)
	chat := service.NewChatService(store, extractor, catalogs,
		service.WithTurnRecorder(history),
		service.WithTurnObserver(service.NewLogTurnObserver(logger, service.DefaultSlowTurn)),
		service.WithChatLogger(logger),
		service.WithDefaultCount(cfg.Recommend.DefaultCount),
	)

	app := &cli.App{
		Chat:    chat,
		History: history,
		Handler: api.NewRouter(api.Options{
			Chat:              chat,
			History:           history,
			Logger:            logger,
			RequestsPerMinute: cfg.HTTP.RequestsPerMinute,
		}),
		Addr: cfg.HTTP.Addr,
		Background: func(ctx context.Context) {
			store.RunJanitor(ctx, cfg.Session.JanitorInterval)
		},
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
		Logger: logger,
	}

	return cli.NewRootCmd(app).Execute()
}

// newLogger writes JSON for the server and text for terminal commands.
func newLogger(w io.Writer, level string, jsonFormat bool) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if jsonFormat {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
