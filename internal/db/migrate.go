package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillReplyKind(db); err != nil {
		return fmt.Errorf("backfilling reply kind: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS conversation_turns (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL,
		user_message TEXT NOT NULL,
		bot_response TEXT NOT NULL,
		intent       TEXT NOT NULL DEFAULT '',
		slots_json   TEXT NOT NULL DEFAULT '{}',
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_turns_user_created ON conversation_turns(user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_turns_created ON conversation_turns(created_at)`,

	// Reply kind lets history be filtered by outcome (question, recommendation, ...).
	`ALTER TABLE conversation_turns ADD COLUMN reply_kind TEXT NOT NULL DEFAULT ''`,
}

// migrateBackfillReplyKind labels turns recorded before reply_kind existed.
// Only greetings and farewells are recognizable from the stored text.
// Idempotent: touches rows whose reply_kind is still empty.
func migrateBackfillReplyKind(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversation_turns WHERE reply_kind = ''`).Scan(&count); err != nil {
		return fmt.Errorf("checking reply_kind: %w", err)
	}
	if count == 0 {
		return nil
	}

	updates := []struct {
		kind   string
		prefix string
	}{
		{"welcome", "👋 Hola"},
		{"farewell", "¡Gracias por usar el bot!"},
	}
	for _, u := range updates {
		if _, err := db.ExecContext(ctx,
			`UPDATE conversation_turns SET reply_kind = ? WHERE reply_kind = '' AND bot_response LIKE ? || '%'`,
			u.kind, u.prefix); err != nil {
			return fmt.Errorf("labelling %s turns: %w", u.kind, err)
		}
	}
	return nil
}
