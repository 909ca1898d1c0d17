package testutil

import (
	"context"
	"database/sql"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/moodflix/internal/db"
)

// FailOnNthExecUoW runs the callback in a real transaction but makes the
// FailOn-th matching ExecContext return Err. Only statements containing
// Match count; an empty Match counts every write. Reads are never counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Match  string
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	inner := db.NewSQLiteUnitOfWork(u.DB)
	return inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &execInjector{DBTX: tx, uow: u})
	})
}

type execInjector struct {
	db.DBTX
	uow  *FailOnNthExecUoW
	seen atomic.Int32
}

func (e *execInjector) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if e.uow.Match == "" || strings.Contains(query, e.uow.Match) {
		if e.seen.Add(1) == e.uow.FailOn {
			return nil, e.uow.Err
		}
	}
	return e.DBTX.ExecContext(ctx, query, args...)
}
