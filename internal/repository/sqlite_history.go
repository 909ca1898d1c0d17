package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/moodflix/internal/db"
	"github.com/alexanderramin/moodflix/internal/domain"
	"github.com/google/uuid"
)

// SQLiteHistoryRepo implements HistoryRepo using a SQLite database or an
// open transaction.
type SQLiteHistoryRepo struct {
	db db.DBTX
}

// NewSQLiteHistoryRepo creates a new SQLiteHistoryRepo.
func NewSQLiteHistoryRepo(conn db.DBTX) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: conn}
}

const turnColumns = `id, user_id, user_message, bot_response, intent, reply_kind, slots_json, created_at`

// Create inserts t, assigning an ID and timestamp when they are unset.
func (r *SQLiteHistoryRepo) Create(ctx context.Context, t *domain.Turn) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = nowUTC()
	}
	slotsJSON, err := encodeSlots(t.Slots)
	if err != nil {
		return err
	}

	query := `INSERT INTO conversation_turns (` + turnColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		t.UserID,
		t.UserMessage,
		t.BotResponse,
		string(t.Intent),
		t.ReplyKind,
		slotsJSON,
		formatTime(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting turn: %w", err)
	}
	return nil
}

func (r *SQLiteHistoryRepo) GetByID(ctx context.Context, id string) (*domain.Turn, error) {
	query := `SELECT ` + turnColumns + ` FROM conversation_turns WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	t, err := scanTurn(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("turn: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning turn: %w", err)
	}
	return t, nil
}

// ListByUser returns up to limit turns for userID, newest first. A
// non-positive limit returns every turn.
func (r *SQLiteHistoryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Turn, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT ` + turnColumns + ` FROM conversation_turns
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing turns by user: %w", err)
	}
	defer rows.Close()

	var turns []*domain.Turn
	for rows.Next() {
		t, err := scanTurn(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning turn row: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating turns: %w", err)
	}
	return turns, nil
}

func (r *SQLiteHistoryRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM conversation_turns WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting turns: %w", err)
	}
	return n, nil
}

func (r *SQLiteHistoryRepo) Trim(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	query := `DELETE FROM conversation_turns WHERE id IN (
		SELECT id FROM (
			SELECT id, ROW_NUMBER() OVER (
				PARTITION BY user_id ORDER BY created_at DESC, rowid DESC
			) AS rn
			FROM conversation_turns
		) WHERE rn > ?
	)`
	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("trimming turns: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("trimming turns: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTurn(s rowScanner) (*domain.Turn, error) {
	var (
		t          domain.Turn
		intent     string
		slotsJSON  string
		createdStr string
	)
	err := s.Scan(&t.ID, &t.UserID, &t.UserMessage, &t.BotResponse, &intent, &t.ReplyKind, &slotsJSON, &createdStr)
	if err != nil {
		return nil, err
	}
	t.Intent = domain.Intent(intent)
	t.Slots = decodeSlots(slotsJSON)
	if t.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, err
	}
	return &t, nil
}
