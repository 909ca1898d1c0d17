package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/alexanderramin/moodflix/internal/db"
	"github.com/alexanderramin/moodflix/internal/domain"
	"github.com/alexanderramin/moodflix/internal/repository"
)

// DefaultHistoryLimit bounds history listings when the caller passes no limit.
const DefaultHistoryLimit = 50

// HistoryService records and lists conversation turns. Each write also trims
// the user's history to the newest maxTurns rows in the same transaction.
type HistoryService struct {
	uow      db.UnitOfWork
	reader   repository.HistoryRepo
	maxTurns int
	logger   *slog.Logger
}

// NewHistoryService builds a HistoryService over database. A non-positive
// maxTurns keeps every turn.
func NewHistoryService(database *sql.DB, maxTurns int, logger *slog.Logger) *HistoryService {
	return NewHistoryServiceWithUoW(db.NewSQLiteUnitOfWork(database), repository.NewSQLiteHistoryRepo(database), maxTurns, logger)
}

// NewHistoryServiceWithUoW is NewHistoryService with an explicit unit of work.
func NewHistoryServiceWithUoW(uow db.UnitOfWork, reader repository.HistoryRepo, maxTurns int, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryService{uow: uow, reader: reader, maxTurns: maxTurns, logger: logger}
}

func (s *HistoryService) RecordTurn(ctx context.Context, turn domain.Turn) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteHistoryRepo(tx)
		if err := repo.Create(ctx, &turn); err != nil {
			return err
		}
		if s.maxTurns <= 0 {
			return nil
		}
		removed, err := repo.Trim(ctx, s.maxTurns)
		if err != nil {
			return err
		}
		if removed > 0 {
			s.logger.DebugContext(ctx, "history trimmed", "removed", removed, "keep", s.maxTurns)
		}
		return nil
	})
}

// ListByUser returns the newest turns for userID. A non-positive limit
// falls back to DefaultHistoryLimit.
func (s *HistoryService) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Turn, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.reader.ListByUser(ctx, userID, limit)
}

var (
	_ TurnRecorder  = (*HistoryService)(nil)
	_ HistoryReader = (*HistoryService)(nil)
)
