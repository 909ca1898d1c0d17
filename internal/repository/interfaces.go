package repository

import (
	"context"

	"github.com/alexanderramin/moodflix/internal/domain"
)

// HistoryRepo stores conversation turns. Listings are newest first.
type HistoryRepo interface {
	Create(ctx context.Context, t *domain.Turn) error
	GetByID(ctx context.Context, id string) (*domain.Turn, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Turn, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	// Trim keeps the newest keep turns per user and reports how many rows
	// were removed.
	Trim(ctx context.Context, keep int) (int64, error)
}
