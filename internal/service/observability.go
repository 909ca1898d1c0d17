package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/moodflix/internal/domain"
)

// DefaultSlowTurn is the duration above which a successful turn is logged
// as slow. Catalog round trips dominate it.
const DefaultSlowTurn = 3 * time.Second

// TurnEvent describes one handled message.
type TurnEvent struct {
	UserID    string
	Intent    domain.Intent
	ReplyKind ReplyKind
	Page      int
	StartedAt time.Time
	Duration  time.Duration
	Err       error
}

// TurnObserver is told about every HandleMessage call, failed ones included.
type TurnObserver interface {
	ObserveTurn(ctx context.Context, event TurnEvent)
}

type NoopTurnObserver struct{}

func (NoopTurnObserver) ObserveTurn(context.Context, TurnEvent) {}

type logTurnObserver struct {
	logger   *slog.Logger
	slowTurn time.Duration
}

// NewLogTurnObserver logs turns at INFO, slow turns at WARN and failures at
// ERROR. A nil logger yields a no-op observer.
func NewLogTurnObserver(logger *slog.Logger, slowTurn time.Duration) TurnObserver {
	if logger == nil {
		return NoopTurnObserver{}
	}
	if slowTurn <= 0 {
		slowTurn = DefaultSlowTurn
	}
	return &logTurnObserver{logger: logger, slowTurn: slowTurn}
}

func (o *logTurnObserver) ObserveTurn(ctx context.Context, e TurnEvent) {
	attrs := []slog.Attr{
		slog.String("user_id", e.UserID),
		slog.Int64("duration_ms", e.Duration.Milliseconds()),
	}
	if e.ReplyKind != "" {
		attrs = append(attrs,
			slog.String("reply_kind", string(e.ReplyKind)),
			slog.String("intent", string(e.Intent)),
			slog.Int("page", e.Page),
		)
	}

	level, msg := slog.LevelInfo, "chat turn"
	switch {
	case e.Err != nil:
		level, msg = slog.LevelError, "chat turn failed"
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	case e.Duration > o.slowTurn:
		level, msg = slog.LevelWarn, "slow chat turn"
	}
	o.logger.LogAttrs(ctx, level, msg, attrs...)
}
